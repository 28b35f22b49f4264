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

// Package authn implements username/password primary authentication against
// a classic Okta org, including the MFA step-up that may follow it. The
// result of a successful run is a one time session token the caller trades
// for session cookies or an OAuth2 authorization code.
package authn

import (
	"context"
	"fmt"

	"github.com/okta/okta-fed-cli/internal/apiclient"
	"github.com/okta/okta-fed-cli/internal/config"
	"github.com/okta/okta-fed-cli/internal/duo"
	"github.com/okta/okta-fed-cli/internal/okta"
	"github.com/okta/okta-fed-cli/internal/prompt"
	"github.com/okta/okta-fed-cli/internal/sensitive"
	"github.com/okta/okta-fed-cli/internal/utils"
)

// Authenticator Runs primary authentication for one org. Safe to construct
// per org; the SAML chaining path builds a new one for each hop.
type Authenticator struct {
	config *config.Config
	api    *apiclient.Client
	duo    *duo.Client
}

// NewAuthenticator Authenticator constructor.
func NewAuthenticator(cfg *config.Config) *Authenticator {
	api := apiclient.NewClient(cfg.HTTPClient, cfg.UserAgent())
	return &Authenticator{
		config: cfg,
		api:    api,
		duo:    duo.NewClient(api),
	}
}

// Authenticate Posts the primary credentials and works the transaction
// through to a session token, stepping up through MFA when the org demands
// it.
func (a *Authenticator) Authenticate(ctx context.Context) (string, error) {
	password := a.config.Password
	if password == "" {
		if !prompt.IsInteractive() {
			return "", fmt.Errorf("no password set and no terminal to ask for one")
		}
		var err error
		if password, err = prompt.Password(); err != nil {
			return "", err
		}
	}
	sensitive.Register(password)

	payload := map[string]string{
		"username": a.config.Username,
		"password": password,
	}
	resp, err := a.api.PostJSON(ctx, a.config.OrgURL+"/api/v1/authn", payload,
		apiclient.WithHeader(utils.Accept, utils.ApplicationJSON))
	if err != nil {
		return "", err
	}

	var primary okta.AuthnResponse
	if err = resp.JSON(&primary); err != nil {
		return "", &okta.MalformedResponseError{URL: a.config.OrgURL + "/api/v1/authn", Reason: err.Error()}
	}
	if primary.ErrorCode != "" {
		return "", &PrimaryAuthFailedError{
			Code:    primary.ErrorCode,
			Message: okta.AuthFailedMessage(primary.ErrorCode),
		}
	}
	if err = okta.NewAPIError(resp.StatusCode, resp.Header, resp.Body); err != nil {
		return "", err
	}

	token, err := a.sessionTokenFor(ctx, &primary)
	if err != nil {
		return "", err
	}
	sensitive.Register(token)
	a.config.Logger.Info("User has been successfully authenticated to %s.\n", a.config.OrgURL)
	return token, nil
}

// sessionTokenFor resolves a settled authn transaction to its session token.
func (a *Authenticator) sessionTokenFor(ctx context.Context, primary *okta.AuthnResponse) (string, error) {
	switch primary.Status {
	case okta.AuthnStatusSuccess:
		if primary.SessionToken != "" {
			return primary.SessionToken, nil
		}
	case okta.AuthnStatusMFARequired:
		return a.mfaChallenge(ctx, primary)
	}
	return "", &UnknownAuthStatusError{Status: primary.Status}
}
