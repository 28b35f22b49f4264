/**
 * Copyright (c) 2022-Present, Okta, Inc.
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

package root

import (
	"fmt"
	"os"

	"github.com/logrusorgru/aurora"
	"github.com/spf13/cobra"

	"github.com/okta/okta-fed-cli/cmd/root/debug"
	"github.com/okta/okta-fed-cli/cmd/root/login"
	"github.com/okta/okta-fed-cli/internal/config"
	cliFlag "github.com/okta/okta-fed-cli/internal/flag"
)

var flags = []cliFlag.Flag{
	{
		Name:   config.OrgURLFlag,
		Short:  "o",
		Value:  "",
		Usage:  "Okta Org URL",
		EnvVar: config.OrgURLEnvVar,
	},
	{
		Name:   config.UsernameFlag,
		Short:  "u",
		Value:  "",
		Usage:  "Username to authenticate with",
		EnvVar: config.UsernameEnvVar,
	},
	{
		Name:   config.PasswordFlag,
		Short:  "p",
		Value:  "",
		Usage:  "Password; prompted for when not set",
		EnvVar: config.PasswordEnvVar,
	},
	{
		Name:   config.MFAMethodFlag,
		Short:  "m",
		Value:  "",
		Usage:  "Preset MFA factor selector, e.g. OKTA_push or a substring of a factor label",
		EnvVar: config.MFAMethodEnvVar,
	},
	{
		Name:   config.MFAResponseFlag,
		Short:  "r",
		Value:  "",
		Usage:  "Preset MFA verification code",
		EnvVar: config.MFAResponseEnvVar,
	},
	{
		Name:   config.OAuthClientIDFlag,
		Short:  "c",
		Value:  "",
		Usage:  "OAuth2 client ID for the identity engine authorize step",
		EnvVar: config.OAuthClientIDEnvVar,
	},
	{
		Name:   config.PushTimeoutFlag,
		Short:  "t",
		Value:  int64(0),
		Usage:  "Seconds to wait on a push approval before giving up",
		EnvVar: config.PushTimeoutEnvVar,
	},
	{
		Name:   config.DebugAPICallsFlag,
		Short:  "d",
		Value:  false,
		Usage:  "Verbosely print all API calls/responses to the screen",
		EnvVar: config.DebugAPICallsEnvVar,
	},
}

// NewRootCommand Sets up the root cobra command with its persistent flags and
// sub commands.
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "okta-fed-cli",
		Short: "okta-fed-cli - Okta federated identity for the CLI",
		Long: `okta-fed-cli - Okta federated identity for the CLI

Authenticates an operator against an Okta-family IdP from the command line,
following SAML2 federation between orgs and completing the OAuth2 authorize
step on identity engine orgs.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cliFlag.MakeFlagBindings(cmd, flags, true)

	cmd.AddCommand(login.NewLoginCommand())
	cmd.AddCommand(debug.NewDebugCommand())

	return cmd
}

// Execute Executes the root command.
func Execute(cmd *cobra.Command) {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%s %s\n", aurora.Red("Error:"), err)
		os.Exit(1)
	}
}
