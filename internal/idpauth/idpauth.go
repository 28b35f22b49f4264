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

// Package idpauth orchestrates a full login against an Okta-family IdP:
// resolve how the org wants the user authenticated, run the local or
// federated branch, then layer the OAuth2 authorize step on top when the org
// runs the identity engine pipeline.
package idpauth

import (
	"context"
	"fmt"
	"net/http"

	"github.com/okta/okta-fed-cli/internal/apiclient"
	"github.com/okta/okta-fed-cli/internal/authn"
	"github.com/okta/okta-fed-cli/internal/config"
	"github.com/okta/okta-fed-cli/internal/oauth2flow"
	"github.com/okta/okta-fed-cli/internal/okta"
	"github.com/okta/okta-fed-cli/internal/saml"
	"github.com/okta/okta-fed-cli/internal/sessions"
	"github.com/okta/okta-fed-cli/internal/utils"
)

// UnknownIdentityTypeError webfinger had no identity type for the user.
type UnknownIdentityTypeError struct{}

// Error Error interface error message
func (e *UnknownIdentityTypeError) Error() string {
	return "Okta auth failed: unknown identity type"
}

// UnsupportedIdPDiscoveryError webfinger named an identity type this tool
// can't log in with.
type UnsupportedIdPDiscoveryError struct {
	Type string
}

// Error Error interface error message
func (e *UnsupportedIdPDiscoveryError) Error() string {
	return fmt.Sprintf("%s login via IdP Discovery is not currently supported", e.Type)
}

// Result An established login: the session cookies for the org the operator
// asked for, and an OAuth2 token when the org's pipeline called for the
// authorize step.
type Result struct {
	Cookies []*http.Cookie
	Token   *oauth2flow.Token
}

// Login Authenticates the configured user against the configured org,
// chasing SAML2 federation as far as it goes, and runs the identity engine
// authorize step on the original org when its pipeline is idx.
func Login(ctx context.Context, cfg *config.Config) (*Result, error) {
	visited := make(map[string]bool)
	if origin, err := utils.BaseURL(cfg.OrgURL); err == nil {
		visited[origin] = true
	}

	cookies, err := loginOrg(ctx, cfg, 0, visited)
	if err != nil {
		return nil, err
	}
	result := &Result{Cookies: cookies}

	api := apiclient.NewClient(cfg.HTTPClient, cfg.UserAgent())
	pipeline, err := okta.DetectPipeline(ctx, api, cfg.OrgURL)
	if err != nil {
		return nil, err
	}
	if pipeline == okta.PipelineIdentityEngine {
		token, err := oauth2flow.NewFlow(cfg).Authorize(ctx, "", cookies)
		if err != nil {
			return nil, err
		}
		result.Token = token
	}

	return result, nil
}

// loginOrg authenticates against a single org, recursing through SAML2 hops.
// It is the callback the SAML handler re-enters on each hop, with the derived
// config pointed at the next IdP.
func loginOrg(ctx context.Context, cfg *config.Config, depth int, visited map[string]bool) ([]*http.Cookie, error) {
	api := apiclient.NewClient(cfg.HTTPClient, cfg.UserAgent())

	props, err := okta.ResolveIdentity(ctx, api, cfg.OrgURL, cfg.Username)
	if err != nil {
		return nil, err
	}

	switch {
	case props.IsOkta():
		token, err := authn.NewAuthenticator(cfg).Authenticate(ctx)
		if err != nil {
			return nil, err
		}
		session, err := sessions.Create(ctx, api, cfg.OrgURL, token)
		if err != nil {
			return nil, err
		}
		return session.Cookies, nil

	case props.IsSAML2():
		handler := saml.NewHandler(cfg, loginOrg)
		return handler.Authenticate(ctx, props, depth, visited)

	case props.Type == "":
		return nil, &UnknownIdentityTypeError{}
	}
	return nil, &UnsupportedIdPDiscoveryError{Type: props.Type}
}
