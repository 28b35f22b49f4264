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

// Package saml runs the SAML2 federation hop between an Okta org acting as
// service provider and the external IdP that holds the user's credentials.
// The IdP may itself federate out again, so a hop authenticates against the
// IdP org through an injected callback that can recurse. Chains are bounded
// by a fixed depth and a visited origin set.
package saml

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/okta/okta-fed-cli/internal/apiclient"
	"github.com/okta/okta-fed-cli/internal/config"
	"github.com/okta/okta-fed-cli/internal/htmlutil"
	"github.com/okta/okta-fed-cli/internal/okta"
	"github.com/okta/okta-fed-cli/internal/sensitive"
	"github.com/okta/okta-fed-cli/internal/utils"
)

// MaxChainDepth Federation hops allowed before the chain is declared
// runaway.
const MaxChainDepth = 5

// RequestArtifact What the service provider hands over for the IdP: the form
// POST target, the relay state, and the base64 SAML request document.
// IdPOrigin is derived from the POST target and names the org to authenticate
// against next.
type RequestArtifact struct {
	IdPOrigin  string
	PostURL    string
	RelayState string
	Request    string
}

// ResponseArtifact What the IdP hands back for the service provider.
type ResponseArtifact struct {
	PostURL    string
	RelayState string
	Response   string
}

// ChainDepthExceededError the federation chain passed MaxChainDepth hops.
type ChainDepthExceededError struct {
	Depth int
}

// Error Error interface error message
func (e *ChainDepthExceededError) Error() string {
	return fmt.Sprintf("SAML federation chain exceeded %d hops", e.Depth)
}

// ChainCycleError an org origin appeared twice in the federation chain.
type ChainCycleError struct {
	Origin string
}

// Error Error interface error message
func (e *ChainCycleError) Error() string {
	return fmt.Sprintf("SAML federation chain loops back to %s", e.Origin)
}

// AuthenticateFunc authenticates the user against the IdP org the derived
// config points at and returns that org's session cookies. Recursion into
// further SAML hops happens behind this callback.
type AuthenticateFunc func(ctx context.Context, cfg *config.Config, depth int, visited map[string]bool) ([]*http.Cookie, error)

// Handler Runs one SAML2 hop for the org in config.
type Handler struct {
	config       *config.Config
	api          *apiclient.Client
	authenticate AuthenticateFunc
}

// NewHandler Handler constructor.
func NewHandler(cfg *config.Config, authenticate AuthenticateFunc) *Handler {
	return &Handler{
		config:       cfg,
		api:          apiclient.NewClient(cfg.HTTPClient, cfg.UserAgent()),
		authenticate: authenticate,
	}
}

// Authenticate Performs the full hop: fetch the SAML request from the
// service provider, authenticate on the IdP, trade the request for a
// response, and post the response back for service provider session cookies.
func (h *Handler) Authenticate(ctx context.Context, props okta.IdentityProperties, depth int, visited map[string]bool) ([]*http.Cookie, error) {
	if depth >= MaxChainDepth {
		return nil, &ChainDepthExceededError{Depth: MaxChainDepth}
	}

	artifact, err := h.fetchRequest(ctx, props)
	if err != nil {
		return nil, err
	}

	if visited[artifact.IdPOrigin] {
		return nil, &ChainCycleError{Origin: artifact.IdPOrigin}
	}
	visited[artifact.IdPOrigin] = true

	idpConfig, err := h.config.CopyWithOrgURL(artifact.IdPOrigin)
	if err != nil {
		return nil, err
	}
	h.config.Logger.Info("Authentication is being redirected to %s.\n", idpConfig.OrgURL)

	idpCookies, err := h.authenticate(ctx, idpConfig, depth+1, visited)
	if err != nil {
		return nil, err
	}

	response, err := h.sendRequest(ctx, artifact, idpCookies)
	if err != nil {
		return nil, err
	}

	return h.sendResponse(ctx, response)
}

// fetchRequest asks the service provider for the SAML request form aimed at
// the external IdP.
func (h *Handler) fetchRequest(ctx context.Context, props okta.IdentityProperties) (*RequestArtifact, error) {
	metadataOrigin, err := utils.BaseURL(props.MetadataURL)
	if err != nil {
		return nil, err
	}
	reqURL := fmt.Sprintf("%s/sso/idps/%s", metadataOrigin, props.IdpID)
	resp, err := h.api.Get(ctx, reqURL, apiclient.WithHeader(utils.Accept, utils.TextHTML))
	if err != nil {
		return nil, err
	}
	if err = okta.NewAPIError(resp.StatusCode, resp.Header, resp.Body); err != nil {
		return nil, err
	}

	body := string(resp.Body)
	postURL, err := htmlutil.FormPostURL(body)
	if err != nil {
		return nil, err
	}
	if postURL == "" {
		return nil, &okta.MalformedResponseError{URL: reqURL, Reason: "no SAML form in response"}
	}
	request, err := htmlutil.SAMLRequest(body, false)
	if err != nil {
		return nil, err
	}
	relayState, err := htmlutil.RelayState(body)
	if err != nil {
		return nil, err
	}
	idpOrigin, err := utils.BaseURL(postURL)
	if err != nil {
		return nil, err
	}
	sensitive.Register(request)

	return &RequestArtifact{
		IdPOrigin:  idpOrigin,
		PostURL:    postURL,
		RelayState: relayState,
		Request:    request,
	}, nil
}

// sendRequest submits the SAML request to the IdP riding on the IdP session
// cookies, and extracts the SAML response form it renders.
func (h *Handler) sendRequest(ctx context.Context, artifact *RequestArtifact, cookies []*http.Cookie) (*ResponseArtifact, error) {
	params := url.Values{
		"relayState":  []string{artifact.RelayState},
		"SAMLRequest": []string{artifact.Request},
	}
	resp, err := h.api.Get(ctx, artifact.PostURL,
		apiclient.WithQuery(params),
		apiclient.WithHeader(utils.Accept, utils.TextHTML),
		apiclient.WithCookies(cookies),
	)
	if err != nil {
		return nil, err
	}
	if err = okta.NewAPIError(resp.StatusCode, resp.Header, resp.Body); err != nil {
		return nil, err
	}

	body := string(resp.Body)
	response, err := htmlutil.SAMLResponse(body, false)
	if err != nil {
		return nil, err
	}
	if response == "" {
		return nil, &okta.MalformedResponseError{URL: artifact.PostURL, Reason: "no SAMLResponse in IdP response"}
	}
	postURL, err := htmlutil.FormPostURL(body)
	if err != nil {
		return nil, err
	}
	if postURL == "" {
		return nil, &okta.MalformedResponseError{URL: artifact.PostURL, Reason: "no form action in IdP response"}
	}
	relayState, err := htmlutil.RelayState(body)
	if err != nil {
		return nil, err
	}
	sensitive.Register(response)

	return &ResponseArtifact{
		PostURL:    postURL,
		RelayState: relayState,
		Response:   response,
	}, nil
}

// sendResponse posts the SAML response back to the service provider and
// collects the session cookies it mints. Identity engine orgs interpose an
// interstitial page carrying a state token; when one shows up it is traded
// at the token redirect endpoint for the real session cookies.
func (h *Handler) sendResponse(ctx context.Context, artifact *ResponseArtifact) ([]*http.Cookie, error) {
	form := url.Values{
		"SAMLResponse": []string{artifact.Response},
		"RelayState":   []string{artifact.RelayState},
	}
	resp, err := h.api.PostForm(ctx, artifact.PostURL, form,
		apiclient.WithHeader(utils.Accept, utils.TextHTML))
	if err != nil {
		return nil, err
	}
	if err = okta.NewAPIError(resp.StatusCode, resp.Header, resp.Body); err != nil {
		return nil, err
	}
	cookies := resp.Cookies

	stateToken, err := htmlutil.StateToken(string(resp.Body))
	if err != nil {
		return nil, err
	}
	if stateToken != "" {
		sensitive.Register(stateToken)
		redirectURL := h.config.OrgURL + "/login/token/redirect"
		redirectResp, err := h.api.Get(ctx, redirectURL,
			apiclient.WithQuery(url.Values{"stateToken": []string{stateToken}}),
			apiclient.WithCookies(cookies),
		)
		if err != nil {
			return nil, err
		}
		if err = okta.NewAPIError(redirectResp.StatusCode, redirectResp.Header, redirectResp.Body); err != nil {
			return nil, err
		}
		cookies = redirectResp.Cookies
	}

	return cookies, nil
}
