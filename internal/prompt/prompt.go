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

// Package prompt gathers interactive input from the operator. Prompts render
// on stderr so stdout stays clean for anything the caller pipes.
package prompt

import (
	"fmt"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/mattn/go-isatty"

	"github.com/okta/okta-fed-cli/internal/picker"
	"github.com/okta/okta-fed-cli/internal/sensitive"
)

var stderrIsOutAskOpt = func(options *survey.AskOptions) error {
	options.Stdio = terminal.Stdio{
		In:  os.Stdin,
		Out: os.Stderr,
		Err: os.Stderr,
	}
	return nil
}

// IsInteractive True when stdin is attached to a terminal.
func IsInteractive() bool {
	return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
}

// Code Asks the operator for an MFA verification code. The value is
// registered for masking before it is returned.
func Code() (string, error) {
	var code string
	prompt := &survey.Input{
		Message: "Enter your verification code:",
	}
	err := survey.AskOne(prompt, &code, survey.WithValidator(survey.Required), stderrIsOutAskOpt)
	if err != nil {
		return "", err
	}
	sensitive.Register(code)
	return code, nil
}

// Password Asks the operator for their password without echo. The value is
// registered for masking before it is returned.
func Password() (string, error) {
	var password string
	prompt := &survey.Password{
		Message: "Password:",
	}
	err := survey.AskOne(prompt, &password, survey.WithValidator(survey.Required), stderrIsOutAskOpt)
	if err != nil {
		return "", err
	}
	sensitive.Register(password)
	return password, nil
}

// SelectFactor Has the operator choose one factor label from the list. Falls
// back to an error when there is no terminal to ask on.
func SelectFactor(labels []string) (int, error) {
	if !IsInteractive() {
		return -1, fmt.Errorf("multiple MFA factors available and no terminal to choose one; set a factor selector")
	}
	return picker.Pick("Select your MFA factor", labels)
}

// Notify Writes a status line for the operator on stderr.
func Notify(format string, a ...any) {
	fmt.Fprint(os.Stderr, sensitive.Redact(fmt.Sprintf(format, a...)))
}
