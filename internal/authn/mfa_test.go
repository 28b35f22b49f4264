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
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/okta/okta-fed-cli/internal/okta"
)

func TestClassifyFactor(t *testing.T) {
	tests := []struct {
		provider   string
		factorType string
		want       factorKind
	}{
		{"DUO", "web", factorKindDuo},
		{"DUO", "push", factorKindDuo},
		{"OKTA", "push", factorKindPush},
		{"OKTA", "token:software:totp", factorKindOTP},
		{"OKTA", "sms", factorKindOTP},
		{"GOOGLE", "token:software:totp", factorKindOTP},
		{"GOOGLE", "push", factorKindUnsupported},
		{"OKTA", "question", factorKindUnsupported},
		{"RSA", "token", factorKindUnsupported},
	}
	for _, tt := range tests {
		t.Run(tt.provider+"_"+tt.factorType, func(t *testing.T) {
			require.Equal(t, tt.want, classifyFactor(tt.provider, tt.factorType))
		})
	}
}

func TestFactorLabel(t *testing.T) {
	f := okta.MfaFactor{ID: "opf123", FactorType: "push", Provider: "OKTA"}
	require.Equal(t, "OKTA_push_opf123", FactorLabel(f))
}

func TestSelectFactorIndex(t *testing.T) {
	factors := []okta.MfaFactor{
		{ID: "opf1", FactorType: "push", Provider: "OKTA"},
		{ID: "ost2", FactorType: "token:software:totp", Provider: "OKTA"},
		{ID: "ost3", FactorType: "token:software:totp", Provider: "GOOGLE"},
	}

	t.Run("lone factor needs no selector", func(t *testing.T) {
		index, err := selectFactorIndex("", factors[:1])
		require.NoError(t, err)
		require.Equal(t, 0, index)
	})

	t.Run("unique substring match", func(t *testing.T) {
		index, err := selectFactorIndex("push", factors)
		require.NoError(t, err)
		require.Equal(t, 0, index)
	})

	t.Run("full label match", func(t *testing.T) {
		index, err := selectFactorIndex("GOOGLE_token:software:totp_ost3", factors)
		require.NoError(t, err)
		require.Equal(t, 2, index)
	})

	t.Run("ambiguous selector", func(t *testing.T) {
		_, err := selectFactorIndex("totp", factors)
		var ambiguous *AmbiguousFactorError
		require.ErrorAs(t, err, &ambiguous)
		require.Equal(t, "totp", ambiguous.Selector)
		require.Len(t, ambiguous.Labels, 3)
	})
}
