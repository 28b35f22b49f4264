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

// Package sessions trades a one time session token for an org session. The
// session id doubles as the sid cookie the SAML and OAuth2 steps ride on.
package sessions

import (
	"context"
	"net/http"

	"github.com/okta/okta-fed-cli/internal/apiclient"
	"github.com/okta/okta-fed-cli/internal/okta"
	"github.com/okta/okta-fed-cli/internal/sensitive"
	"github.com/okta/okta-fed-cli/internal/utils"
)

// Session An established org session and the cookies that carry it.
type Session struct {
	ID      string
	Cookies []*http.Cookie
}

// Create Calls POST /api/v1/sessions with the session token and returns the
// session with its sid cookie.
// https://developer.okta.com/docs/reference/api/sessions/
func Create(ctx context.Context, api *apiclient.Client, orgURL, sessionToken string) (*Session, error) {
	reqURL := orgURL + "/api/v1/sessions"
	payload := map[string]string{"sessionToken": sessionToken}
	resp, err := api.PostJSON(ctx, reqURL, payload,
		apiclient.WithHeader(utils.Accept, utils.ApplicationJSON))
	if err != nil {
		return nil, err
	}
	if err = okta.NewAPIError(resp.StatusCode, resp.Header, resp.Body); err != nil {
		return nil, err
	}

	var s okta.Session
	if err = resp.JSON(&s); err != nil {
		return nil, &okta.MalformedResponseError{URL: reqURL, Reason: err.Error()}
	}
	if s.ID == "" {
		return nil, &okta.MalformedResponseError{URL: reqURL, Reason: "no id in session response"}
	}
	sensitive.Register(s.ID)

	cookies := []*http.Cookie{{Name: "sid", Value: s.ID, Path: "/"}}
	for _, c := range resp.Cookies {
		if c.Name == "sid" {
			continue
		}
		cookies = append(cookies, c)
	}

	return &Session{ID: s.ID, Cookies: cookies}, nil
}
