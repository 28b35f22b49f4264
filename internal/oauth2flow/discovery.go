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

package oauth2flow

import (
	"context"
	"fmt"

	"github.com/okta/okta-fed-cli/internal/apiclient"
	"github.com/okta/okta-fed-cli/internal/okta"
	"github.com/okta/okta-fed-cli/internal/utils"
)

// Configuration Authorization server metadata from the org's well known
// oauth-authorization-server endpoint.
// https://developer.okta.com/docs/reference/api/oidc/#well-known-oauth-authorization-server
type Configuration struct {
	Issuer                 string   `json:"issuer"`
	AuthorizationEndpoint  string   `json:"authorization_endpoint"`
	TokenEndpoint          string   `json:"token_endpoint"`
	GrantTypesSupported    []string `json:"grant_types_supported"`
	ResponseTypesSupported []string `json:"response_types_supported"`
	ScopesSupported        []string `json:"scopes_supported"`
}

// mandatory metadata fields this implementation refuses to run without.
var mandatoryFields = []string{
	"authorization_endpoint",
	"token_endpoint",
	"grant_types_supported",
	"response_types_supported",
	"scopes_supported",
}

// InvalidOAuth2ConfigError the authorization server metadata is missing a
// mandatory field.
type InvalidOAuth2ConfigError struct {
	MissingField string
}

// Error Error interface error message
func (e *InvalidOAuth2ConfigError) Error() string {
	return fmt.Sprintf("no %s found in oauth2 configuration", e.MissingField)
}

// UnsupportedGrantTypeError the authorization server can't complete an
// authorization code grant this tool initiated.
type UnsupportedGrantTypeError struct {
	Detail string
}

// Error Error interface error message
func (e *UnsupportedGrantTypeError) Error() string {
	return e.Detail
}

// AuthorizationCodeEnabled True when the server advertises the authorization
// code grant.
func (c *Configuration) AuthorizationCodeEnabled() bool {
	for _, g := range c.GrantTypesSupported {
		if g == "authorization_code" {
			return true
		}
	}
	return false
}

// CodeResponseTypeEnabled True when the server advertises the code response
// type.
func (c *Configuration) CodeResponseTypeEnabled() bool {
	for _, r := range c.ResponseTypesSupported {
		if r == "code" {
			return true
		}
	}
	return false
}

// Discover Fetches and validates the authorization server metadata for the
// org.
func Discover(ctx context.Context, api *apiclient.Client, orgURL string) (*Configuration, error) {
	reqURL := orgURL + "/.well-known/oauth-authorization-server"
	resp, err := api.Get(ctx, reqURL, apiclient.WithHeader(utils.Accept, utils.ApplicationJSON))
	if err != nil {
		return nil, err
	}
	if err = okta.NewAPIError(resp.StatusCode, resp.Header, resp.Body); err != nil {
		return nil, err
	}

	// Presence is validated against the raw document so an empty list is
	// distinguishable from an absent field.
	var raw map[string]any
	if err = resp.JSON(&raw); err != nil {
		return nil, &okta.MalformedResponseError{URL: reqURL, Reason: err.Error()}
	}
	for _, field := range mandatoryFields {
		if _, ok := raw[field]; !ok {
			return nil, &InvalidOAuth2ConfigError{MissingField: field}
		}
	}

	var conf Configuration
	if err = resp.JSON(&conf); err != nil {
		return nil, &okta.MalformedResponseError{URL: reqURL, Reason: err.Error()}
	}
	return &conf, nil
}
