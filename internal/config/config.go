/*
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

package config

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/okta/okta-fed-cli/internal/logger"
)

const (
	// Version app version
	Version = "0.1.0"

	// OrgURLFlag cli flag const
	OrgURLFlag = "org-url"
	// UsernameFlag cli flag const
	UsernameFlag = "username"
	// PasswordFlag cli flag const
	PasswordFlag = "password"
	// MFAMethodFlag cli flag const
	MFAMethodFlag = "mfa-method"
	// MFAResponseFlag cli flag const
	MFAResponseFlag = "mfa-response"
	// OAuthClientIDFlag cli flag const
	OAuthClientIDFlag = "oauth-client-id"
	// DebugAPICallsFlag cli flag const
	DebugAPICallsFlag = "debug-api-calls"
	// PushTimeoutFlag cli flag const
	PushTimeoutFlag = "push-timeout"

	// OrgURLEnvVar env var const
	OrgURLEnvVar = "OKTA_FEDCLI_ORG_URL"
	// UsernameEnvVar env var const
	UsernameEnvVar = "OKTA_FEDCLI_USERNAME"
	// PasswordEnvVar env var const
	PasswordEnvVar = "OKTA_FEDCLI_PASSWORD"
	// MFAMethodEnvVar env var const
	MFAMethodEnvVar = "OKTA_FEDCLI_MFA_METHOD"
	// MFAResponseEnvVar env var const
	MFAResponseEnvVar = "OKTA_FEDCLI_MFA_RESPONSE"
	// OAuthClientIDEnvVar env var const
	OAuthClientIDEnvVar = "OKTA_FEDCLI_OAUTH_CLIENT_ID"
	// DebugAPICallsEnvVar env var const
	DebugAPICallsEnvVar = "OKTA_FEDCLI_DEBUG_API_CALLS"
	// PushTimeoutEnvVar env var const
	PushTimeoutEnvVar = "OKTA_FEDCLI_PUSH_TIMEOUT"

	defaultPushTimeout = 300
)

// Config A config object for the CLI. The SAML chaining path works on derived
// copies made with CopyWithOrgURL; a Config is never mutated once handed to
// the orchestrator.
type Config struct {
	OrgURL        string
	Username      string
	Password      string
	MFAMethod     string
	MFAResponse   string
	OAuthClientID string
	DebugAPICalls bool
	PushTimeout   int64
	HTTPClient    *http.Client
	Logger        logger.Logger
}

// NewConfig Creates a new config gathering values in this order of precedence:
//  1. CLI flags
//  2. ENV variables
//  3. .env file
//  4. $HOME/.okta/okta.yaml
func NewConfig() (*Config, error) {
	cfg := Config{
		OrgURL:        viper.GetString(OrgURLFlag),
		Username:      viper.GetString(UsernameFlag),
		Password:      viper.GetString(PasswordFlag),
		MFAMethod:     viper.GetString(MFAMethodFlag),
		MFAResponse:   viper.GetString(MFAResponseFlag),
		OAuthClientID: viper.GetString(OAuthClientIDFlag),
		DebugAPICalls: viper.GetBool(DebugAPICallsFlag),
		PushTimeout:   viper.GetInt64(PushTimeoutFlag),
		Logger:        &logger.FullLogger{},
	}

	// Viper binds ENV VARs to a lower snake version, set the configs with them
	// if they haven't already been set by cli flag binding.
	if cfg.OrgURL == "" {
		cfg.OrgURL = viper.GetString(downCase(OrgURLEnvVar))
	}
	if cfg.Username == "" {
		cfg.Username = viper.GetString(downCase(UsernameEnvVar))
	}
	if cfg.Password == "" {
		cfg.Password = viper.GetString(downCase(PasswordEnvVar))
	}
	if cfg.MFAMethod == "" {
		cfg.MFAMethod = viper.GetString(downCase(MFAMethodEnvVar))
	}
	if cfg.MFAResponse == "" {
		cfg.MFAResponse = viper.GetString(downCase(MFAResponseEnvVar))
	}
	if cfg.OAuthClientID == "" {
		cfg.OAuthClientID = viper.GetString(downCase(OAuthClientIDEnvVar))
	}
	if !cfg.DebugAPICalls {
		cfg.DebugAPICalls = viper.GetBool(downCase(DebugAPICallsEnvVar))
	}
	if cfg.PushTimeout == 0 {
		cfg.PushTimeout = viper.GetInt64(downCase(PushTimeoutEnvVar))
	}
	if cfg.PushTimeout == 0 {
		cfg.PushTimeout = defaultPushTimeout
	}

	// okta.yaml is the last fallback for org and username values.
	if yamlConfig, err := NewOktaYamlConfig(); err == nil {
		if cfg.OrgURL == "" {
			cfg.OrgURL = yamlConfig.FedCLI.OrgURL
		}
		if cfg.Username == "" {
			cfg.Username = yamlConfig.FedCLI.Username
		}
		if cfg.MFAMethod == "" {
			cfg.MFAMethod = yamlConfig.FedCLI.MFAMethod
		}
		if cfg.OAuthClientID == "" {
			cfg.OAuthClientID = yamlConfig.FedCLI.OAuthClientID
		}
	}

	orgURL, err := normalizeOrgURL(cfg.OrgURL)
	if err != nil {
		return nil, err
	}
	if orgURL != cfg.OrgURL && cfg.OrgURL != "" {
		fmt.Printf("Warning: proactively correcting org URL %q to %q.\n\n", cfg.OrgURL, orgURL)
	}
	cfg.OrgURL = orgURL

	cfg.HTTPClient = &http.Client{
		Transport: newConfigTransport(cfg.DebugAPICalls),
		Timeout:   time.Second * time.Duration(60),
	}

	return &cfg, nil
}

// CheckConfig Checks that required configuration variables are set.
func (c *Config) CheckConfig() error {
	var errors []string
	if c.OrgURL == "" {
		errors = append(errors, "  Okta Org URL value is not set")
	}
	if c.Username == "" {
		errors = append(errors, "  Username value is not set")
	}
	if c.PushTimeout < 0 {
		errors = append(errors, "  Push timeout must not be negative")
	}
	if len(errors) > 0 {
		return fmt.Errorf("%s", strings.Join(errors, "\n"))
	}

	return nil
}

// CopyWithOrgURL Returns a copy of the config pointed at another org. The
// receiver is left untouched, which is what makes the recursive SAML chaining
// path safe.
func (c *Config) CopyWithOrgURL(orgURL string) (*Config, error) {
	normalized, err := normalizeOrgURL(orgURL)
	if err != nil {
		return nil, err
	}
	dup := *c
	dup.OrgURL = normalized
	return &dup, nil
}

// UserAgent The user agent value for API calls.
func (c *Config) UserAgent() string {
	return fmt.Sprintf("okta-fed-cli/%s", Version)
}

// normalizeOrgURL reduces an org value to an absolute https origin with no
// trailing slash, correcting admin form domains along the way.
func normalizeOrgURL(orgURL string) (string, error) {
	if orgURL == "" {
		return "", nil
	}
	s := strings.TrimSpace(orgURL)
	if !strings.Contains(s, "://") {
		s = "https://" + s
	}
	u, err := url.Parse(s)
	if err != nil {
		return "", &ValidationError{Field: OrgURLFlag, Message: err.Error()}
	}
	if u.Scheme != "https" && u.Scheme != "http" {
		return "", &ValidationError{Field: OrgURLFlag, Message: fmt.Sprintf("unsupported scheme %q", u.Scheme)}
	}
	host := strings.Replace(u.Host, "-admin", "", -1)
	return fmt.Sprintf("%s://%s", u.Scheme, host), nil
}

// downCase ToLower all alpha chars e.g. HELLO_WORLD -> hello_world
func downCase(s string) string {
	return strings.ToLower(s)
}
