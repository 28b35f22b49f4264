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

// Package oauth2flow layers an OAuth2 authorization code grant with PKCE on
// top of an authenticated org session. Identity engine orgs require this
// authorize step after primary authentication; orgs that don't advertise the
// grant are skipped with a warning.
package oauth2flow

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/google/uuid"

	"github.com/okta/okta-fed-cli/internal/apiclient"
	"github.com/okta/okta-fed-cli/internal/config"
	"github.com/okta/okta-fed-cli/internal/okta"
	"github.com/okta/okta-fed-cli/internal/sensitive"
	"github.com/okta/okta-fed-cli/internal/utils"
)

// authorizeScope All scopes the enduser dashboard asks for.
const authorizeScope = "openid profile email okta.users.read.self okta.users.manage.self okta.internal.enduser.read okta.internal.enduser.manage okta.enduser.dashboard.read okta.enduser.dashboard.manage"

// CallbackError the authorize callback carried an OAuth2 error.
type CallbackError struct {
	ErrorCode   string
	Description string
}

// Error Error interface error message
func (e *CallbackError) Error() string {
	return fmt.Sprintf("oauth2 callback error %q: %s", e.ErrorCode, e.Description)
}

// StateMismatchError the authorize callback echoed a state value this flow
// never sent.
type StateMismatchError struct {
	Sent     string
	Received string
}

// Error Error interface error message
func (e *StateMismatchError) Error() string {
	return fmt.Sprintf("oauth2 state mismatch: sent %q received %q", e.Sent, e.Received)
}

// Token OAuth2 token response.
// https://developer.okta.com/docs/reference/api/oidc/#token
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
	Scope       string `json:"scope"`
	IDToken     string `json:"id_token,omitempty"`
}

// FlowState One authorization code flow attempt: the PKCE pair, the state
// nonce, and the endpoints in play.
type FlowState struct {
	ClientID      string
	RedirectURI   string
	ResponseType  string
	Scope         string
	State         string
	GrantType     string
	AuthzEndpoint string
	TokenEndpoint string
	CodeVerifier  string
	CodeChallenge string
}

// NewFlowState Builds the flow state for one attempt. The client id comes
// from config when set, otherwise an okta dot uuid placeholder is minted.
func NewFlowState(cfg *config.Config, oc *Configuration) (*FlowState, error) {
	clientID := cfg.OAuthClientID
	if clientID == "" {
		clientID = fmt.Sprintf("okta.%s", uuid.New().String())
	}
	state, err := State()
	if err != nil {
		return nil, err
	}
	verifier, err := CodeVerifier()
	if err != nil {
		return nil, err
	}

	return &FlowState{
		ClientID:      clientID,
		RedirectURI:   fmt.Sprintf("%s/enduser/callback", cfg.OrgURL),
		ResponseType:  "code",
		Scope:         authorizeScope,
		State:         state,
		GrantType:     "authorization_code",
		AuthzEndpoint: oc.AuthorizationEndpoint,
		TokenEndpoint: oc.TokenEndpoint,
		CodeVerifier:  verifier,
		CodeChallenge: CodeChallenge(verifier),
	}, nil
}

// Flow Authorization code flow runner for one org.
type Flow struct {
	config *config.Config
	api    *apiclient.Client
}

// NewFlow Flow constructor.
func NewFlow(cfg *config.Config) *Flow {
	return &Flow{
		config: cfg,
		api:    apiclient.NewClient(cfg.HTTPClient, cfg.UserAgent()),
	}
}

// Authorize Runs discovery and, when the grant is available, the full
// authorize plus token exchange riding on the given session. Returns nil
// without error when the org doesn't advertise the authorization code grant.
func (f *Flow) Authorize(ctx context.Context, sessionToken string, cookies []*http.Cookie) (*Token, error) {
	oc, err := Discover(ctx, f.api, f.config.OrgURL)
	if err != nil {
		return nil, err
	}
	if !oc.AuthorizationCodeEnabled() {
		f.config.Logger.Warn("Authorization Code is not enabled on %s, skipping oauth2.\n", f.config.OrgURL)
		return nil, nil
	}
	if !oc.CodeResponseTypeEnabled() {
		return nil, &UnsupportedGrantTypeError{Detail: fmt.Sprintf("code response type not found on %s", f.config.OrgURL)}
	}

	st, err := NewFlowState(f.config, oc)
	if err != nil {
		return nil, err
	}

	code, err := f.authorizeRequest(ctx, st, sessionToken, cookies)
	if err != nil {
		return nil, err
	}

	return f.exchangeCode(ctx, st, code)
}

// authorizeRequest calls the authorize endpoint with prompt none and parses
// the callback redirect for the authorization code.
func (f *Flow) authorizeRequest(ctx context.Context, st *FlowState, sessionToken string, cookies []*http.Cookie) (string, error) {
	params := url.Values{
		"client_id":             []string{st.ClientID},
		"redirect_uri":          []string{st.RedirectURI},
		"response_type":         []string{st.ResponseType},
		"scope":                 []string{st.Scope},
		"state":                 []string{st.State},
		"code_challenge":        []string{st.CodeChallenge},
		"code_challenge_method": []string{codeChallengeMethod},
		"prompt":                []string{"none"},
	}
	if sessionToken != "" {
		params.Set("sessionToken", sessionToken)
	}

	resp, err := f.api.Get(ctx, st.AuthzEndpoint,
		apiclient.WithQuery(params),
		apiclient.WithHeader(utils.Accept, utils.ApplicationJSON),
		apiclient.WithCookies(cookies),
	)
	if err != nil {
		return "", err
	}

	callback := resp.FinalURL.Query()
	if errCode := callback.Get("error"); errCode != "" {
		return "", &CallbackError{ErrorCode: errCode, Description: callback.Get("error_description")}
	}
	if echoed := callback.Get("state"); echoed != "" && echoed != st.State {
		return "", &StateMismatchError{Sent: st.State, Received: echoed}
	}
	code := callback.Get("code")
	if code == "" {
		return "", &UnsupportedGrantTypeError{Detail: fmt.Sprintf("no authorization code in callback %s", resp.FinalURL.Redacted())}
	}
	sensitive.Register(code)
	return code, nil
}

// exchangeCode trades the authorization code plus PKCE verifier for tokens.
func (f *Flow) exchangeCode(ctx context.Context, st *FlowState, code string) (*Token, error) {
	form := url.Values{
		"code":          []string{code},
		"state":         []string{st.State},
		"grant_type":    []string{st.GrantType},
		"redirect_uri":  []string{st.RedirectURI},
		"client_id":     []string{st.ClientID},
		"code_verifier": []string{st.CodeVerifier},
	}
	resp, err := f.api.PostForm(ctx, st.TokenEndpoint, form,
		apiclient.WithHeader(utils.Accept, utils.ApplicationJSON))
	if err != nil {
		return nil, err
	}
	if err = okta.NewAPIError(resp.StatusCode, resp.Header, resp.Body); err != nil {
		return nil, err
	}

	var token Token
	if err = resp.JSON(&token); err != nil {
		return nil, &okta.MalformedResponseError{URL: st.TokenEndpoint, Reason: err.Error()}
	}
	sensitive.Register(token.AccessToken)
	sensitive.Register(token.IDToken)
	return &token, nil
}
