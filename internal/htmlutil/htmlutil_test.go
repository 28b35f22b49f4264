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

package htmlutil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

const samlFormPage = `
<html>
  <body>
    <form id="appForm" method="POST" action="https://idp.dne-okta.com/sso/saml">
      <input type="hidden" name="SAMLRequest" value="QUJD"/>
      <input type="hidden" name="RelayState" value="relay-123"/>
    </form>
  </body>
</html>`

func TestSAMLRequestExtraction(t *testing.T) {
	raw, err := SAMLRequest(samlFormPage, false)
	require.NoError(t, err)
	require.Equal(t, "QUJD", raw)

	decoded, err := SAMLRequest(samlFormPage, true)
	require.NoError(t, err)
	require.Equal(t, "ABC", decoded)
}

func TestSAMLResponseExtraction(t *testing.T) {
	page := `<html><body><form><input name="SAMLResponse" value="QUJD"/></form></body></html>`
	raw, err := SAMLResponse(page, false)
	require.NoError(t, err)
	require.Equal(t, "QUJD", raw)

	decoded, err := SAMLResponse(page, true)
	require.NoError(t, err)
	require.Equal(t, "ABC", decoded)

	// absent input is not an error
	missing, err := SAMLResponse(samlFormPage, false)
	require.NoError(t, err)
	require.Empty(t, missing)
}

func TestRelayState(t *testing.T) {
	relay, err := RelayState(samlFormPage)
	require.NoError(t, err)
	require.Equal(t, "relay-123", relay)
}

func TestFormPostURL(t *testing.T) {
	postURL, err := FormPostURL(samlFormPage)
	require.NoError(t, err)
	require.Equal(t, "https://idp.dne-okta.com/sso/saml", postURL)

	// only the appForm form counts
	other := `<html><body><form id="other" action="https://elsewhere.example.com/x"></form></body></html>`
	postURL, err = FormPostURL(other)
	require.NoError(t, err)
	require.Empty(t, postURL)
}

func TestInputValueStopsAtFirstMatch(t *testing.T) {
	page := `<html><body>
	  <input name="SAMLRequest" value="first"/>
	  <input name="SAMLRequest" value="second"/>
	</body></html>`
	val, err := InputValue(page, "SAMLRequest")
	require.NoError(t, err)
	require.Equal(t, "first", val)
}

func TestStateToken(t *testing.T) {
	page := `<html><body><script type="text/javascript">
	  var stateToken = '00Tok\x2Den-value';
	</script></body></html>`
	token, err := StateToken(page)
	require.NoError(t, err)
	require.Equal(t, "00Tok-en-value", token)
}

func TestStateTokenAbsent(t *testing.T) {
	token, err := StateToken(samlFormPage)
	require.NoError(t, err)
	require.Empty(t, token)
}
