/*
 * Copyright (c) 2023-Present, Okta, Inc.
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

package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeOrgURL(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"already normal", "https://example.okta.com", "https://example.okta.com"},
		{"bare domain", "example.okta.com", "https://example.okta.com"},
		{"trailing path dropped", "https://example.okta.com/app/whatever", "https://example.okta.com"},
		{"admin domain corrected", "https://example-admin.okta.com", "https://example.okta.com"},
		{"admin preview corrected", "https://example-admin.oktapreview.com", "https://example.oktapreview.com"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := normalizeOrgURL(tt.in)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeOrgURLRejectsBadScheme(t *testing.T) {
	_, err := normalizeOrgURL("ftp://example.okta.com")
	require.Error(t, err)
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	require.Equal(t, OrgURLFlag, ve.Field)
}

func TestCopyWithOrgURLLeavesReceiverUntouched(t *testing.T) {
	orig := &Config{
		OrgURL:   "https://sp.okta.com",
		Username: "tester@example.com",
	}
	dup, err := orig.CopyWithOrgURL("https://idp.okta.com/sso/saml")
	require.NoError(t, err)

	require.Equal(t, "https://idp.okta.com", dup.OrgURL)
	require.Equal(t, "tester@example.com", dup.Username)
	require.Equal(t, "https://sp.okta.com", orig.OrgURL)
}

func TestCheckConfig(t *testing.T) {
	c := &Config{}
	err := c.CheckConfig()
	require.Error(t, err)
	require.Contains(t, err.Error(), "Org URL")
	require.Contains(t, err.Error(), "Username")

	c = &Config{OrgURL: "https://example.okta.com", Username: "tester", PushTimeout: 300}
	require.NoError(t, c.CheckConfig())

	c.PushTimeout = -1
	require.Error(t, c.CheckConfig())
}
