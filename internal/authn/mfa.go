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
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/okta/okta-fed-cli/internal/apiclient"
	"github.com/okta/okta-fed-cli/internal/duo"
	"github.com/okta/okta-fed-cli/internal/okta"
	"github.com/okta/okta-fed-cli/internal/prompt"
	"github.com/okta/okta-fed-cli/internal/sensitive"
	"github.com/okta/okta-fed-cli/internal/utils"
)

// factorKind Closed set of verification strategies. Every factor classifies
// to exactly one of these.
type factorKind int

const (
	factorKindDuo factorKind = iota
	factorKindPush
	factorKindOTP
	factorKindUnsupported
)

// classifyFactor maps a verified factor's provider/type pair to its
// verification strategy.
func classifyFactor(provider, factorType string) factorKind {
	switch {
	case provider == "DUO":
		return factorKindDuo
	case provider == "OKTA" && factorType == "push":
		return factorKindPush
	case (provider == "OKTA" || provider == "GOOGLE") &&
		(factorType == "token:software:totp" || factorType == "sms"):
		return factorKindOTP
	}
	return factorKindUnsupported
}

// FactorLabel The selector label for a factor, provider_factorType_id.
func FactorLabel(f okta.MfaFactor) string {
	return fmt.Sprintf("%s_%s_%s", f.Provider, f.FactorType, f.ID)
}

// selectFactorIndex picks a factor by substring match of the configured
// selector against the factor labels. A lone factor is taken as is. No
// selector, or a selector matching nothing, falls back to an interactive
// choice. More than one match is a configuration error.
func selectFactorIndex(selector string, factors []okta.MfaFactor) (int, error) {
	if len(factors) == 1 {
		return 0, nil
	}

	labels := make([]string, len(factors))
	for i, f := range factors {
		labels[i] = FactorLabel(f)
	}

	var matches []int
	if selector != "" {
		for i, label := range labels {
			if strings.Contains(label, selector) {
				matches = append(matches, i)
			}
		}
	}
	switch len(matches) {
	case 0:
		return prompt.SelectFactor(labels)
	case 1:
		return matches[0], nil
	}
	return -1, &AmbiguousFactorError{Selector: selector, Labels: labels}
}

// mfaChallenge works an MFA_REQUIRED transaction to a session token: pick a
// factor, trigger its verification, and run the provider specific protocol.
func (a *Authenticator) mfaChallenge(ctx context.Context, primary *okta.AuthnResponse) (string, error) {
	factors := primary.Embedded.Factors
	if len(factors) == 0 {
		return "", &MalformedFactorListError{Reason: "no factors in MFA_REQUIRED response"}
	}

	index, err := selectFactorIndex(a.config.MFAMethod, factors)
	if err != nil {
		return "", err
	}
	factor := factors[index]
	verifyURL := factor.Links.Verify.Href
	if verifyURL == "" {
		return "", &MalformedFactorListError{Reason: fmt.Sprintf("factor %s has no verify link", FactorLabel(factor))}
	}

	payload := map[string]any{
		"stateToken": primary.StateToken,
		"factorType": factor.FactorType,
		"provider":   factor.Provider,
		"profile":    json.RawMessage(factor.Profile),
	}
	if len(factor.Profile) == 0 {
		payload["profile"] = nil
	}

	selected, err := a.verify(ctx, verifyURL, payload)
	if err != nil {
		return "", err
	}

	provider := selected.Embedded.Factor.Provider
	factorType := selected.Embedded.Factor.FactorType

	var verified *okta.AuthnResponse
	switch classifyFactor(provider, factorType) {
	case factorKindDuo:
		verified, err = a.duoVerify(ctx, verifyURL, selected)
	case factorKindPush:
		verified, err = a.pollPush(ctx, verifyURL, map[string]any{"stateToken": primary.StateToken})
	case factorKindOTP:
		verified, err = a.otpVerify(ctx, verifyURL, primary.StateToken)
	default:
		return "", &UnsupportedFactorError{Provider: provider, FactorType: factorType}
	}
	if err != nil {
		return "", err
	}

	if verified.SessionToken == "" {
		return "", &VerificationFailedError{Provider: provider, FactorType: factorType}
	}
	return verified.SessionToken, nil
}

// duoVerify delegates to the DUO web protocol, then re-verifies the factor on
// Okta to collect the session token the completed DUO exchange unlocked.
func (a *Authenticator) duoVerify(ctx context.Context, verifyURL string, selected *okta.AuthnResponse) (*okta.AuthnResponse, error) {
	verification := selected.Embedded.Factor.Embedded.Verification
	v := duo.Verification{
		Host:         verification.Host,
		Signature:    verification.Signature,
		CompleteURL:  verification.Links.Complete.Href,
		FactorID:     selected.Embedded.Factor.ID,
		StateToken:   selected.StateToken,
		ParentOrigin: a.config.OrgURL,
	}
	if err := a.duo.Authenticate(ctx, v, a.config.MFAResponse); err != nil {
		return nil, err
	}

	return a.verify(ctx, verifyURL, map[string]any{"stateToken": selected.StateToken})
}

// otpVerify submits a TOTP or SMS passcode. The code comes from config when
// preset, the operator otherwise.
func (a *Authenticator) otpVerify(ctx context.Context, verifyURL, stateToken string) (*okta.AuthnResponse, error) {
	code := a.config.MFAResponse
	if code == "" {
		var err error
		if code, err = prompt.Code(); err != nil {
			return nil, err
		}
	}

	return a.verify(ctx, verifyURL, map[string]any{
		"stateToken": stateToken,
		"passCode":   code,
	})
}

// verify posts a payload at a factor verify endpoint and decodes the
// transaction that comes back.
func (a *Authenticator) verify(ctx context.Context, verifyURL string, payload map[string]any) (*okta.AuthnResponse, error) {
	resp, err := a.api.PostJSON(ctx, verifyURL, payload,
		apiclient.WithHeader(utils.Accept, utils.ApplicationJSON))
	if err != nil {
		return nil, err
	}
	if err = okta.NewAPIError(resp.StatusCode, resp.Header, resp.Body); err != nil {
		return nil, err
	}
	var r okta.AuthnResponse
	if err = resp.JSON(&r); err != nil {
		return nil, &okta.MalformedResponseError{URL: verifyURL, Reason: err.Error()}
	}
	if r.SessionToken != "" {
		sensitive.Register(r.SessionToken)
	}
	return &r, nil
}
