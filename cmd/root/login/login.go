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

package login

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/okta/okta-fed-cli/internal/config"
	cliFlag "github.com/okta/okta-fed-cli/internal/flag"
	"github.com/okta/okta-fed-cli/internal/idpauth"
)

var requiredFlags = []string{config.OrgURLFlag, config.UsernameFlag}

// NewLoginCommand Sets up the login cobra sub command
func NewLoginCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Authenticate against the configured Okta org",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.NewConfig()
			if err != nil {
				return err
			}
			if err = cliFlag.CheckRequiredFlags(requiredFlags); err != nil {
				return err
			}
			if err = cfg.CheckConfig(); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			result, err := idpauth.Login(ctx, cfg)
			if err != nil {
				return err
			}

			if result.Token != nil {
				cfg.Logger.Info("Authorized on %s, received a %s token.\n", cfg.OrgURL, result.Token.TokenType)
				return nil
			}
			cfg.Logger.Info("Established a session on %s.\n", cfg.OrgURL)
			return nil
		},
	}
}
