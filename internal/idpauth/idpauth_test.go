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

package idpauth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/okta/okta-fed-cli/internal/config"
	"github.com/okta/okta-fed-cli/internal/logger"
)

func loginTestConfig(ts *httptest.Server) *config.Config {
	return &config.Config{
		OrgURL:      ts.URL,
		Username:    "tester@example.com",
		Password:    "correct-horse",
		PushTimeout: 300,
		HTTPClient:  ts.Client(),
		Logger:      &logger.FullLogger{},
	}
}

func webfingerHandler(identityType string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/jrd+json")
		w.Write([]byte(`{"links":[{"rel":"okta:idp","properties":{"okta:idp:type":"` + identityType + `"}}]}`))
	}
}

// TestLoginLocalOrg runs the whole local branch: webfinger says the org holds
// the credentials, primary auth succeeds, the session token becomes a sid
// cookie, and a classic pipeline needs no authorize step.
func TestLoginLocalOrg(t *testing.T) {
	mux := http.NewServeMux()
	ts := httptest.NewServer(mux)
	defer ts.Close()

	mux.HandleFunc("/.well-known/webfinger", webfingerHandler("OKTA"))
	mux.HandleFunc("/api/v1/authn", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"SUCCESS","sessionToken":"20111token"}`))
	})
	mux.HandleFunc("/api/v1/sessions", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id":"102sessionid","status":"ACTIVE"}`))
	})
	mux.HandleFunc("/.well-known/okta-organization", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id":"00o1org","pipeline":"v1"}`))
	})

	result, err := Login(context.Background(), loginTestConfig(ts))
	require.NoError(t, err)
	require.Nil(t, result.Token)
	require.Len(t, result.Cookies, 1)
	require.Equal(t, "sid", result.Cookies[0].Name)
	require.Equal(t, "102sessionid", result.Cookies[0].Value)
}

// TestLoginIdentityEngineSkipsAbsentGrant covers an idx org whose
// authorization server doesn't advertise the authorization code grant: login
// still succeeds, with session cookies and no token.
func TestLoginIdentityEngineSkipsAbsentGrant(t *testing.T) {
	mux := http.NewServeMux()
	ts := httptest.NewServer(mux)
	defer ts.Close()

	mux.HandleFunc("/.well-known/webfinger", webfingerHandler("OKTA"))
	mux.HandleFunc("/api/v1/authn", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"SUCCESS","sessionToken":"20111token"}`))
	})
	mux.HandleFunc("/api/v1/sessions", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id":"102sessionid","status":"ACTIVE"}`))
	})
	mux.HandleFunc("/.well-known/okta-organization", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id":"00o1org","pipeline":"idx"}`))
	})
	mux.HandleFunc("/.well-known/oauth-authorization-server", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"authorization_endpoint": "` + ts.URL + `/oauth2/v1/authorize",
			"token_endpoint": "` + ts.URL + `/oauth2/v1/token",
			"grant_types_supported": ["implicit"],
			"response_types_supported": ["token"],
			"scopes_supported": ["openid"]
		}`))
	})

	result, err := Login(context.Background(), loginTestConfig(ts))
	require.NoError(t, err)
	require.Nil(t, result.Token)
	require.Len(t, result.Cookies, 1)
}

func TestLoginUnknownIdentityType(t *testing.T) {
	mux := http.NewServeMux()
	ts := httptest.NewServer(mux)
	defer ts.Close()

	mux.HandleFunc("/.well-known/webfinger", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"links":[{"rel":"okta:idp","properties":{}}]}`))
	})

	_, err := Login(context.Background(), loginTestConfig(ts))
	var unknown *UnknownIdentityTypeError
	require.ErrorAs(t, err, &unknown)
}

func TestLoginUnsupportedIdentityType(t *testing.T) {
	mux := http.NewServeMux()
	ts := httptest.NewServer(mux)
	defer ts.Close()

	mux.HandleFunc("/.well-known/webfinger", webfingerHandler("IWA"))

	_, err := Login(context.Background(), loginTestConfig(ts))
	var unsupported *UnsupportedIdPDiscoveryError
	require.ErrorAs(t, err, &unsupported)
	require.Equal(t, "IWA", unsupported.Type)
}
