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

package authn

import (
	"fmt"
	"strings"
)

// PrimaryAuthFailedError the username/password call was rejected. Code is the
// Okta error or status code it was rejected with.
type PrimaryAuthFailedError struct {
	Code    string
	Message string
}

// Error Error interface error message
func (e *PrimaryAuthFailedError) Error() string {
	return e.Message
}

// UnknownAuthStatusError the authn transaction settled in a status this tool
// doesn't handle.
type UnknownAuthStatusError struct {
	Status string
}

// Error Error interface error message
func (e *UnknownAuthStatusError) Error() string {
	return fmt.Sprintf("Okta auth failed: unknown status %q", e.Status)
}

// AmbiguousFactorError a configured factor selector substring matched more
// than one factor label.
type AmbiguousFactorError struct {
	Selector string
	Labels   []string
}

// Error Error interface error message
func (e *AmbiguousFactorError) Error() string {
	return fmt.Sprintf("%q is not unique in %s. Please check your configuration.", e.Selector, strings.Join(e.Labels, ", "))
}

// UnsupportedFactorError the selected factor is a provider/type combination
// this tool can't verify.
type UnsupportedFactorError struct {
	Provider   string
	FactorType string
}

// Error Error interface error message
func (e *UnsupportedFactorError) Error() string {
	return fmt.Sprintf("the MFA provider %q with factor type %q is not supported. Please retry with another option.", e.Provider, e.FactorType)
}

// VerificationFailedError the factor verification settled without producing a
// session token.
type VerificationFailedError struct {
	Provider   string
	FactorType string
}

// Error Error interface error message
func (e *VerificationFailedError) Error() string {
	return fmt.Sprintf("could not verify MFA challenge with %s %s", e.Provider, e.FactorType)
}

// MalformedFactorListError the MFA_REQUIRED response had no usable embedded
// factor catalog.
type MalformedFactorListError struct {
	Reason string
}

// Error Error interface error message
func (e *MalformedFactorListError) Error() string {
	return fmt.Sprintf("wrong response structure for MFA factors: %s", e.Reason)
}

// PushRejectedError the push was denied on the device.
type PushRejectedError struct{}

// Error Error interface error message
func (e *PushRejectedError) Error() string {
	return "the Okta Verify push has been denied"
}

// PushTimeoutError the device approval window expired.
type PushTimeoutError struct{}

// Error Error interface error message
func (e *PushTimeoutError) Error() string {
	return "device approval window has expired"
}

// UnsupportedPushOutcomeError the push loop settled in a status/result pair
// this tool doesn't handle.
type UnsupportedPushOutcomeError struct {
	Status       string
	FactorResult string
}

// Error Error interface error message
func (e *UnsupportedPushOutcomeError) Error() string {
	return fmt.Sprintf("push response type %q for %q not implemented", e.FactorResult, e.Status)
}
