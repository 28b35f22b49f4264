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

package authn

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
)

// pushServer scripts a push factor transaction. The verify endpoint replies
// with each body from verifyBodies in turn, sticking on the last one.
func pushServer(t *testing.T, verifyBodies ...string) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var verifyCalls atomic.Int32
	mux := http.NewServeMux()
	var ts *httptest.Server
	mux.HandleFunc("/api/v1/authn", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{
			"stateToken": "00state",
			"status": "MFA_REQUIRED",
			"_embedded": {"factors": [
				{"id": "push1", "factorType": "push", "provider": "OKTA",
					"_links": {"verify": {"href": "%s/api/v1/authn/factors/push1/verify"}}}
			]}
		}`, ts.URL)
	})
	mux.HandleFunc("/api/v1/authn/factors/push1/verify", func(w http.ResponseWriter, r *http.Request) {
		n := int(verifyCalls.Add(1))
		if n > len(verifyBodies) {
			n = len(verifyBodies)
		}
		w.Write([]byte(verifyBodies[n-1]))
	})
	ts = httptest.NewServer(mux)
	t.Cleanup(ts.Close)
	return ts, &verifyCalls
}

const pushWaitingBody = `{
	"stateToken": "00state",
	"status": "MFA_CHALLENGE",
	"factorResult": "WAITING",
	"_embedded": {"factor": {
		"id": "push1", "factorType": "push", "provider": "OKTA",
		"_embedded": {"challenge": {"correctAnswer": 42}}
	}}
}`

func TestPushApproved(t *testing.T) {
	ts, calls := pushServer(t,
		pushWaitingBody,
		pushWaitingBody,
		`{"status":"SUCCESS","sessionToken":"20111push"}`,
	)

	a := NewAuthenticator(testConfig(ts))
	token, err := a.Authenticate(context.Background())
	require.NoError(t, err)
	require.Equal(t, "20111push", token)
	// the trigger call plus two polls
	require.Equal(t, int32(3), calls.Load())
}

func TestPushRejected(t *testing.T) {
	ts, _ := pushServer(t,
		pushWaitingBody,
		`{"stateToken":"00state","status":"MFA_CHALLENGE","factorResult":"REJECTED",
			"_embedded":{"factor":{"id":"push1","factorType":"push","provider":"OKTA"}}}`,
	)

	a := NewAuthenticator(testConfig(ts))
	_, err := a.Authenticate(context.Background())
	var rejected *PushRejectedError
	require.ErrorAs(t, err, &rejected)
}

func TestPushDeviceTimeout(t *testing.T) {
	ts, _ := pushServer(t,
		pushWaitingBody,
		`{"stateToken":"00state","status":"MFA_CHALLENGE","factorResult":"TIMEOUT",
			"_embedded":{"factor":{"id":"push1","factorType":"push","provider":"OKTA"}}}`,
	)

	a := NewAuthenticator(testConfig(ts))
	_, err := a.Authenticate(context.Background())
	var timeout *PushTimeoutError
	require.ErrorAs(t, err, &timeout)
}

func TestPushConfiguredWindowCloses(t *testing.T) {
	ts, _ := pushServer(t, pushWaitingBody)

	cfg := testConfig(ts)
	cfg.PushTimeout = 1

	a := NewAuthenticator(cfg)
	_, err := a.Authenticate(context.Background())
	var timeout *PushTimeoutError
	require.ErrorAs(t, err, &timeout)
}
