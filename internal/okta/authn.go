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

import "encoding/json"

const (
	// AuthnStatusSuccess authn transaction complete, sessionToken issued
	AuthnStatusSuccess = "SUCCESS"
	// AuthnStatusMFARequired authn transaction needs a factor verified
	AuthnStatusMFARequired = "MFA_REQUIRED"
	// AuthnStatusMFAChallenge a factor verification is in flight
	AuthnStatusMFAChallenge = "MFA_CHALLENGE"

	// FactorResultWaiting push factor awaiting the user's device
	FactorResultWaiting = "WAITING"
	// FactorResultRejected push factor denied on the user's device
	FactorResultRejected = "REJECTED"
	// FactorResultTimeout push factor approval window expired
	FactorResultTimeout = "TIMEOUT"
	// FactorResultSuccess push factor approved
	FactorResultSuccess = "SUCCESS"
)

// MfaFactor One factor from the authn response's embedded factor catalog.
// Profile is carried opaquely; its shape varies per factor type and it is
// echoed back verbatim on the verify call.
type MfaFactor struct {
	ID         string          `json:"id"`
	FactorType string          `json:"factorType"`
	Provider   string          `json:"provider"`
	VendorName string          `json:"vendorName,omitempty"`
	Profile    json.RawMessage `json:"profile,omitempty"`
	Links      struct {
		Verify struct {
			Href string `json:"href"`
		} `json:"verify"`
	} `json:"_links"`
}

// AuthnEmbeddedFactor The verify response's embedded factor, carrying the DUO
// verification material and the push number challenge when present.
type AuthnEmbeddedFactor struct {
	ID         string `json:"id"`
	FactorType string `json:"factorType"`
	Provider   string `json:"provider"`
	Embedded   struct {
		Verification struct {
			Host         string `json:"host"`
			Signature    string `json:"signature"`
			FactorResult string `json:"factorResult"`
			Links        struct {
				Complete struct {
					Href string `json:"href"`
				} `json:"complete"`
			} `json:"_links"`
		} `json:"verification"`
		Challenge struct {
			CorrectAnswer *int `json:"correctAnswer"`
		} `json:"challenge"`
	} `json:"_embedded"`
}

// AuthnResponse Okta API response for POST /api/v1/authn and its verify
// endpoints.
// https://developer.okta.com/docs/reference/api/authn/
type AuthnResponse struct {
	StateToken   string `json:"stateToken,omitempty"`
	SessionToken string `json:"sessionToken,omitempty"`
	Status       string `json:"status"`
	FactorResult string `json:"factorResult,omitempty"`
	ErrorCode    string `json:"errorCode,omitempty"`
	ErrorSummary string `json:"errorSummary,omitempty"`
	Embedded     struct {
		Factors []MfaFactor         `json:"factors,omitempty"`
		Factor  AuthnEmbeddedFactor `json:"factor,omitempty"`
	} `json:"_embedded,omitempty"`
}

// Session Okta API response for POST /api/v1/sessions
// https://developer.okta.com/docs/reference/api/sessions/
type Session struct {
	ID        string `json:"id"`
	UserID    string `json:"userId"`
	Login     string `json:"login"`
	Status    string `json:"status"`
	ExpiresAt string `json:"expiresAt,omitempty"`
}
