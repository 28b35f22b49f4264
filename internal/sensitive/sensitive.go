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

// Package sensitive is a process wide registry of secret values. Components
// register session tokens, SAML blobs, and passwords as they are extracted;
// the logger and the API debug transport redact registered values before
// anything is written to the console. The registry is append-only for the
// duration of a run.
package sensitive

import (
	"strings"
	"sync"
)

const mask = "*****"

var (
	mu     sync.Mutex
	values []string
)

// Register Adds a value to the set of secrets that will be redacted from any
// console output. Empty values are ignored. Fire and forget.
func Register(value string) {
	if value == "" {
		return
	}
	mu.Lock()
	defer mu.Unlock()
	for _, v := range values {
		if v == value {
			return
		}
	}
	values = append(values, value)
}

// Redact Replaces every registered secret occurring in s with a mask.
func Redact(s string) string {
	mu.Lock()
	defer mu.Unlock()
	for _, v := range values {
		s = strings.ReplaceAll(s, v, mask)
	}
	return s
}

// Reset Clears the registry. Only tests use this.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	values = nil
}
