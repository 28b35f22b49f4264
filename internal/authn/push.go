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
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"

	boff "github.com/okta/okta-fed-cli/internal/backoff"
	"github.com/okta/okta-fed-cli/internal/okta"
	"github.com/okta/okta-fed-cli/internal/prompt"
)

const pushPollInterval = time.Second

// pollPush re-verifies a push factor until the device answers or the
// configured window closes. A number challenge, when the org presents one, is
// shown to the operator exactly once.
func (a *Authenticator) pollPush(ctx context.Context, verifyURL string, payload map[string]any) (*okta.AuthnResponse, error) {
	prompt.Notify("Waiting for an approval from the device...\n")

	pollCtx, cancel := context.WithTimeout(ctx, time.Duration(a.config.PushTimeout)*time.Second)
	defer cancel()

	var last *okta.AuthnResponse
	challengeShown := false

	poll := func() error {
		r, err := a.verify(pollCtx, verifyURL, payload)
		if err != nil {
			return backoff.Permanent(err)
		}
		last = r

		if answer := r.Embedded.Factor.Embedded.Challenge.CorrectAnswer; answer != nil && !challengeShown {
			prompt.Notify("Number Challenge response is %d\n", *answer)
			challengeShown = true
		}

		if r.Status == okta.AuthnStatusMFAChallenge && r.FactorResult == okta.FactorResultWaiting {
			return fmt.Errorf("waiting on push approval")
		}
		return nil
	}

	bOff := boff.NewBackoff(pollCtx, pushPollInterval)
	if err := backoff.Retry(poll, bOff); err != nil {
		if errors.Is(pollCtx.Err(), context.DeadlineExceeded) {
			return nil, &PushTimeoutError{}
		}
		return nil, err
	}

	if last.Status == okta.AuthnStatusSuccess && last.SessionToken != "" {
		return last, nil
	}
	switch last.FactorResult {
	case okta.FactorResultRejected:
		return nil, &PushRejectedError{}
	case okta.FactorResultTimeout:
		return nil, &PushTimeoutError{}
	}
	return nil, &UnsupportedPushOutcomeError{Status: last.Status, FactorResult: last.FactorResult}
}
