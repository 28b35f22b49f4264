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

	"github.com/okta/okta-fed-cli/internal/apiclient"
	"github.com/okta/okta-fed-cli/internal/utils"
)

// Pipeline Authentication pipeline kind of an Okta org.
type Pipeline string

const (
	// PipelineLegacy classic orgs, pipeline value "v1"
	PipelineLegacy Pipeline = "v1"
	// PipelineIdentityEngine identity engine orgs, pipeline value "idx"
	PipelineIdentityEngine Pipeline = "idx"
)

// Organization The well known Okta organization at GET /.well-known/okta-organization
type Organization struct {
	ID       string      `json:"id"`
	Pipeline Pipeline    `json:"pipeline"`
	Links    interface{} `json:"_links,omitempty"`
	Settings interface{} `json:"settings,omitempty"`
}

// UnsupportedPipelineError the org reports a pipeline kind this tool doesn't
// speak.
type UnsupportedPipelineError struct {
	Pipeline string
}

// Error Error interface error message
func (e *UnsupportedPipelineError) Error() string {
	return fmt.Sprintf("unsupported auth pipeline version %q", e.Pipeline)
}

// MalformedResponseError a discovery endpoint returned a body that couldn't be
// parsed.
type MalformedResponseError struct {
	URL    string
	Reason string
}

// Error Error interface error message
func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("failed to parse response from %s: %s", e.URL, e.Reason)
}

// DetectPipeline Queries the org's well known organization endpoint and
// returns which authentication pipeline the org runs. Any pipeline value
// other than "v1" or "idx" is an error.
func DetectPipeline(ctx context.Context, client *apiclient.Client, orgURL string) (Pipeline, error) {
	reqURL := orgURL + "/.well-known/okta-organization"
	resp, err := client.Get(ctx, reqURL, apiclient.WithHeader(utils.Accept, utils.ApplicationJSON))
	if err != nil {
		return "", err
	}
	if err = NewAPIError(resp.StatusCode, resp.Header, resp.Body); err != nil {
		return "", err
	}

	var org Organization
	if err = resp.JSON(&org); err != nil {
		return "", &MalformedResponseError{URL: reqURL, Reason: err.Error()}
	}
	switch org.Pipeline {
	case PipelineLegacy, PipelineIdentityEngine:
		return org.Pipeline, nil
	}
	return "", &UnsupportedPipelineError{Pipeline: string(org.Pipeline)}
}
