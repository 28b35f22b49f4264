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

package debug

import (
	"github.com/spf13/cobra"

	"github.com/okta/okta-fed-cli/internal/config"
)

// NewDebugCommand Sets up the debug cobra sub command
func NewDebugCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "debug",
		Short: "Print the evaluated configuration and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.NewConfig()
			if err != nil {
				return err
			}
			err = cfg.CheckConfig()
			// NOTE: still print out the done message, even if there was an error it will get printed as well
			cfg.Logger.Warn("debugging okta-fed-cli config is complete\n")
			if err != nil {
				return err
			}
			cfg.Logger.Info("org url:        %s\n", cfg.OrgURL)
			cfg.Logger.Info("username:       %s\n", cfg.Username)
			cfg.Logger.Info("mfa method:     %s\n", cfg.MFAMethod)
			cfg.Logger.Info("oauth client:   %s\n", cfg.OAuthClientID)
			cfg.Logger.Info("push timeout:   %ds\n", cfg.PushTimeout)
			return nil
		},
	}
}
