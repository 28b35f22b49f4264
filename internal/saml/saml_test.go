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

package saml

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/okta/okta-fed-cli/internal/config"
	"github.com/okta/okta-fed-cli/internal/logger"
	"github.com/okta/okta-fed-cli/internal/okta"
	"github.com/okta/okta-fed-cli/internal/utils"
)

func samlTestConfig(sp *httptest.Server) *config.Config {
	return &config.Config{
		OrgURL:     sp.URL,
		Username:   "tester@example.com",
		HTTPClient: sp.Client(),
		Logger:     &logger.FullLogger{},
	}
}

// TestAuthenticateHop runs a complete hop: the service provider hands out a
// SAML request aimed at a second org, the injected callback logs in there,
// and the response posted back mints service provider cookies.
func TestAuthenticateHop(t *testing.T) {
	spMux := http.NewServeMux()
	idpMux := http.NewServeMux()
	sp := httptest.NewServer(spMux)
	defer sp.Close()
	idp := httptest.NewServer(idpMux)
	defer idp.Close()

	spMux.HandleFunc("/sso/idps/0oa2idp", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", utils.TextHTML)
		fmt.Fprintf(w, `<html><body>
			<form id="appForm" method="post" action="%s/app/sso/saml">
				<input name="SAMLRequest" type="hidden" value="UkVRVUVTVA=="/>
				<input name="RelayState" type="hidden" value="relay123"/>
			</form></body></html>`, idp.URL)
	})
	idpMux.HandleFunc("/app/sso/saml", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "UkVRVUVTVA==", r.URL.Query().Get("SAMLRequest"))
		require.Equal(t, "relay123", r.URL.Query().Get("relayState"))
		c, err := r.Cookie("sid")
		require.NoError(t, err)
		require.Equal(t, "idp-session", c.Value)
		w.Header().Set("Content-Type", utils.TextHTML)
		fmt.Fprintf(w, `<html><body>
			<form id="appForm" method="post" action="%s/sso/saml2/response">
				<input name="SAMLResponse" type="hidden" value="UkVTUE9OU0U="/>
				<input name="RelayState" type="hidden" value="relay123"/>
			</form></body></html>`, sp.URL)
	})
	spMux.HandleFunc("/sso/saml2/response", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		require.Equal(t, "UkVTUE9OU0U=", r.PostFormValue("SAMLResponse"))
		require.Equal(t, "relay123", r.PostFormValue("RelayState"))
		http.SetCookie(w, &http.Cookie{Name: "sid", Value: "sp-session"})
		w.Header().Set("Content-Type", utils.TextHTML)
		w.Write([]byte(`<html><body>Done</body></html>`))
	})

	cfg := samlTestConfig(sp)
	authenticate := func(ctx context.Context, idpCfg *config.Config, depth int, visited map[string]bool) ([]*http.Cookie, error) {
		require.Equal(t, idp.URL, idpCfg.OrgURL)
		require.Equal(t, 1, depth)
		return []*http.Cookie{{Name: "sid", Value: "idp-session"}}, nil
	}

	h := NewHandler(cfg, authenticate)
	props := okta.IdentityProperties{
		Type:        okta.IdpTypeSAML2,
		MetadataURL: sp.URL + "/app/metadata",
		IdpID:       "0oa2idp",
	}
	visited := map[string]bool{sp.URL: true}
	cookies, err := h.Authenticate(context.Background(), props, 0, visited)
	require.NoError(t, err)
	require.Len(t, cookies, 1)
	require.Equal(t, "sid", cookies[0].Name)
	require.Equal(t, "sp-session", cookies[0].Value)
	require.True(t, visited[idp.URL])
}

// TestAuthenticateStateTokenInterstitial covers identity engine orgs that
// answer the response POST with a state token page instead of cookies.
func TestAuthenticateStateTokenInterstitial(t *testing.T) {
	spMux := http.NewServeMux()
	idpMux := http.NewServeMux()
	sp := httptest.NewServer(spMux)
	defer sp.Close()
	idp := httptest.NewServer(idpMux)
	defer idp.Close()

	spMux.HandleFunc("/sso/idps/0oa2idp", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `<form id="appForm" action="%s/app/sso/saml">
			<input name="SAMLRequest" value="UkVRVUVTVA=="/>
			<input name="RelayState" value=""/></form>`, idp.URL)
	})
	idpMux.HandleFunc("/app/sso/saml", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `<form id="appForm" action="%s/sso/saml2/response">
			<input name="SAMLResponse" value="UkVTUE9OU0U="/>
			<input name="RelayState" value=""/></form>`, sp.URL)
	})
	spMux.HandleFunc("/sso/saml2/response", func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: "oktaStateToken", Value: "transient"})
		w.Write([]byte(`<html><script>var stateToken = '00\x2Dinterstitial';</script></html>`))
	})
	spMux.HandleFunc("/login/token/redirect", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "00-interstitial", r.URL.Query().Get("stateToken"))
		http.SetCookie(w, &http.Cookie{Name: "sid", Value: "sp-final"})
	})

	cfg := samlTestConfig(sp)
	authenticate := func(ctx context.Context, idpCfg *config.Config, depth int, visited map[string]bool) ([]*http.Cookie, error) {
		return nil, nil
	}

	h := NewHandler(cfg, authenticate)
	props := okta.IdentityProperties{
		Type:        okta.IdpTypeSAML2,
		MetadataURL: sp.URL + "/app/metadata",
		IdpID:       "0oa2idp",
	}
	cookies, err := h.Authenticate(context.Background(), props, 0, map[string]bool{sp.URL: true})
	require.NoError(t, err)
	require.Len(t, cookies, 1)
	require.Equal(t, "sp-final", cookies[0].Value)
}

func TestAuthenticateDepthGuard(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected past the depth guard")
	}))
	defer ts.Close()

	h := NewHandler(samlTestConfig(ts), nil)
	_, err := h.Authenticate(context.Background(), okta.IdentityProperties{}, MaxChainDepth, map[string]bool{})
	var deep *ChainDepthExceededError
	require.ErrorAs(t, err, &deep)
}

func TestAuthenticateCycleGuard(t *testing.T) {
	mux := http.NewServeMux()
	ts := httptest.NewServer(mux)
	defer ts.Close()

	// the form points back at an origin the chain already visited
	mux.HandleFunc("/sso/idps/0oa2idp", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `<form id="appForm" action="%s/app/sso/saml">
			<input name="SAMLRequest" value="UkVRVUVTVA=="/>
			<input name="RelayState" value=""/></form>`, ts.URL)
	})

	h := NewHandler(samlTestConfig(ts), nil)
	props := okta.IdentityProperties{
		Type:        okta.IdpTypeSAML2,
		MetadataURL: ts.URL + "/app/metadata",
		IdpID:       "0oa2idp",
	}
	_, err := h.Authenticate(context.Background(), props, 0, map[string]bool{ts.URL: true})
	var cycle *ChainCycleError
	require.ErrorAs(t, err, &cycle)
	require.Equal(t, ts.URL, cycle.Origin)
}
