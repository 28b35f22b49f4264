/*
 * Copyright (c) 2026-Present, Okta, Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *      http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package sessions

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/okta/okta-fed-cli/internal/apiclient"
	"github.com/okta/okta-fed-cli/internal/okta"
)

func TestCreate(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v1/sessions", r.URL.Path)
		var payload map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		require.Equal(t, "20111token", payload["sessionToken"])
		// server set sid is superseded by the session id from the body
		http.SetCookie(w, &http.Cookie{Name: "sid", Value: "stale"})
		http.SetCookie(w, &http.Cookie{Name: "JSESSIONID", Value: "abc"})
		w.Write([]byte(`{"id":"102sessionid","status":"ACTIVE"}`))
	}))
	defer ts.Close()

	api := apiclient.NewClient(ts.Client(), "okta-fed-cli/test")
	session, err := Create(context.Background(), api, ts.URL, "20111token")
	require.NoError(t, err)
	require.Equal(t, "102sessionid", session.ID)

	names := map[string]string{}
	for _, c := range session.Cookies {
		names[c.Name] = c.Value
	}
	require.Equal(t, "102sessionid", names["sid"])
	require.Equal(t, "abc", names["JSESSIONID"])
	require.Len(t, session.Cookies, 2)
}

func TestCreateNoID(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"ACTIVE"}`))
	}))
	defer ts.Close()

	api := apiclient.NewClient(ts.Client(), "okta-fed-cli/test")
	_, err := Create(context.Background(), api, ts.URL, "20111token")
	var mre *okta.MalformedResponseError
	require.ErrorAs(t, err, &mre)
}
