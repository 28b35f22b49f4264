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

package okta

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/okta/okta-fed-cli/internal/apiclient"
	"github.com/okta/okta-fed-cli/internal/utils"
)

const (
	// IdpTypeOkta webfinger identity type for users that authenticate directly
	// against the org
	IdpTypeOkta = "OKTA"
	// IdpTypeSAML2 webfinger identity type for users federated out to another
	// IdP over SAML2
	IdpTypeSAML2 = "SAML2"
)

// IdentityProperties How the org wants the given user authenticated, per the
// webfinger endpoint. For SAML2 identities MetadataURL points at the external
// IdP and IdpID names the IdP app on the org.
type IdentityProperties struct {
	Type        string
	MetadataURL string
	IdpID       string
}

// IsSAML2 True when the identity federates out over SAML2.
func (p IdentityProperties) IsSAML2() bool {
	return strings.EqualFold(p.Type, IdpTypeSAML2)
}

// IsOkta True when the identity authenticates directly against the org.
func (p IdentityProperties) IsOkta() bool {
	return strings.EqualFold(p.Type, IdpTypeOkta)
}

type webfingerResponse struct {
	Links []struct {
		Rel        string            `json:"rel"`
		Properties map[string]string `json:"properties"`
	} `json:"links"`
}

// ResolveIdentity Looks up how the org authenticates the given user id via
// the webfinger endpoint. Absent properties come back as empty strings; a
// response with no links at all is a DiscoveryParseError.
func ResolveIdentity(ctx context.Context, client *apiclient.Client, orgURL, userID string) (IdentityProperties, error) {
	reqURL := orgURL + "/.well-known/webfinger"
	params := url.Values{
		"resource": []string{fmt.Sprintf("okta:acct:%s", userID)},
		"rel":      []string{"okta:idp"},
	}
	resp, err := client.Get(ctx, reqURL,
		apiclient.WithQuery(params),
		apiclient.WithHeader(utils.Accept, utils.ApplicationJRDJSON),
	)
	if err != nil {
		return IdentityProperties{}, err
	}
	if err = NewAPIError(resp.StatusCode, resp.Header, resp.Body); err != nil {
		return IdentityProperties{}, err
	}

	var wf webfingerResponse
	if err = resp.JSON(&wf); err != nil {
		return IdentityProperties{}, &MalformedResponseError{URL: reqURL, Reason: err.Error()}
	}
	if len(wf.Links) == 0 {
		return IdentityProperties{}, &MalformedResponseError{URL: reqURL, Reason: "no links in webfinger response"}
	}

	props := wf.Links[0].Properties
	return IdentityProperties{
		Type:        props["okta:idp:type"],
		MetadataURL: props["okta:idp:metadata"],
		IdpID:       props["okta:idp:id"],
	}, nil
}
