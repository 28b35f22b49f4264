/*
 * Copyright (c) 2025-Present, Okta, Inc.
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

package sensitive

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRedact(t *testing.T) {
	defer Reset()

	Register("hunter2")
	Register("00sessiontoken")
	Register("")

	out := Redact("password is hunter2, token is 00sessiontoken")
	require.Equal(t, "password is *****, token is *****", out)

	// unregistered values pass through
	require.Equal(t, "nothing to hide", Redact("nothing to hide"))
}

func TestRegisterDedups(t *testing.T) {
	defer Reset()

	Register("secret")
	Register("secret")
	require.Equal(t, "***** *****", Redact("secret secret"))
}
