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

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v2"

	"github.com/okta/okta-fed-cli/internal/utils"
)

// OktaYamlConfig represents config settings from $HOME/.okta/okta.yaml
type OktaYamlConfig struct {
	FedCLI struct {
		OrgURL        string `yaml:"org-url"`
		Username      string `yaml:"username"`
		MFAMethod     string `yaml:"mfa-method"`
		OAuthClientID string `yaml:"oauth-client-id"`
	} `yaml:"fedcli"`
}

// NewOktaYamlConfig Parses the okta.yaml file and returns an OktaYamlConfig
// object if it exists.
func NewOktaYamlConfig() (*OktaYamlConfig, error) {
	configPath, err := OktaConfigPath()
	if err != nil {
		return nil, err
	}
	yamlConfig, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}
	conf := OktaYamlConfig{}
	err = yaml.Unmarshal(yamlConfig, &conf)
	if err != nil {
		return nil, err
	}

	return &conf, nil
}

// OktaConfigPath Returns the path of the okta config file e.g.
// $HOME/.okta/okta.yaml
func OktaConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	configPath := filepath.Join(homeDir, utils.DotOktaDir, utils.OktaYamlConfigFileName)
	if _, err = os.Stat(configPath); errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("okta config %q doesn't exist", configPath)
	}

	return configPath, nil
}
