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
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"regexp"
)

const codeChallengeMethod = "S256"

var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9]+`)

// CodeVerifier Random PKCE code verifier.
// https://www.oauth.com/oauth2-servers/pkce/authorization-request/
func CodeVerifier() (string, error) {
	raw := make([]byte, 40)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}
	verifier := base64.URLEncoding.EncodeToString(raw)
	return nonAlphanumeric.ReplaceAllString(verifier, ""), nil
}

// CodeChallenge Unpadded base64url SHA256 digest of the verifier.
func CodeChallenge(codeVerifier string) string {
	digest := sha256.Sum256([]byte(codeVerifier))
	return base64.RawURLEncoding.EncodeToString(digest[:])
}

// State Random state value for the authorize request, hex digest of random
// input.
// https://developer.okta.com/docs/guides/implement-grant-type/authcodepkce/main/
func State() (string, error) {
	raw := make([]byte, 1024)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}
	digest := sha256.Sum256(raw)
	return hex.EncodeToString(digest[:]), nil
}
