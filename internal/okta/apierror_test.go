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

package okta

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAuthFailedMessage(t *testing.T) {
	tests := []struct {
		code string
		want string
	}{
		{"E0000004", "Okta auth failed: Authentication failed"},
		{"E0000047", "Okta auth failed: API call exceeded rate limit due to too many requests"},
		{"PASSWORD_EXPIRED", "Okta auth failed: Your password has expired"},
		{"LOCKED_OUT", "Okta auth failed: Your account is locked out"},
		{"E0000999", "Okta auth failed: E0000999. Please verify your settings and try again."},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			require.Equal(t, tt.want, AuthFailedMessage(tt.code))
		})
	}
}

func TestNewAPIErrorSuccessIsNil(t *testing.T) {
	require.NoError(t, NewAPIError(http.StatusOK, http.Header{}, nil))
	require.NoError(t, NewAPIError(http.StatusFound, http.Header{}, nil))
}

func TestNewAPIErrorSummaryBody(t *testing.T) {
	body := []byte(`{"errorCode":"E0000004","errorSummary":"Authentication failed"}`)
	err := NewAPIError(http.StatusUnauthorized, http.Header{}, body)
	require.Error(t, err)
	var ae *APIError
	require.ErrorAs(t, err, &ae)
	require.Equal(t, "E0000004", ae.ErrorCode)
	require.Contains(t, ae.Error(), "Authentication failed")
}

func TestNewAPIErrorBearerHeader(t *testing.T) {
	header := http.Header{}
	header.Set(HTTPHeaderWwwAuthenticate, `Bearer error="invalid_token", error_description="The token is expired"`)
	err := NewAPIError(http.StatusUnauthorized, header, nil)
	require.Error(t, err)
	var ae *APIError
	require.ErrorAs(t, err, &ae)
	require.Contains(t, ae.Error(), "The token is expired")
}
