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

package utils

import (
	"fmt"
	"net/url"
	"strings"
)

const (
	// ContentType http header content type
	ContentType = "Content-Type"
	// ApplicationJSON content value for json
	ApplicationJSON = "application/json"
	// ApplicationJRDJSON content value for webfinger json
	ApplicationJRDJSON = "application/jrd+json"
	// ApplicationXFORM content type value for web form
	ApplicationXFORM = "application/x-www-form-urlencoded"
	// TextHTML accept value for html documents
	TextHTML = "text/html,application/xhtml+xml,application/xml"
	// Accept HTTP Accept header
	Accept = "Accept"
	// UserAgentHeader user agent header
	UserAgentHeader = "User-Agent"
	// XOktaFedCLIOperationHeader the okta fed cli header
	XOktaFedCLIOperationHeader = "X-Okta-Fed-Cli-Operation"
	// XOktaFedCLILoginOperation login op value for the x okta fed cli header
	XOktaFedCLILoginOperation = "login"
	// PassThroughStringNewLineFMT string formatter to make lint happy
	PassThroughStringNewLineFMT = "%s\n"

	// DotOktaDir The dot dirctory for Okta apps
	DotOktaDir = ".okta"
	// OktaYamlConfigFileName file name of the okta config file
	OktaYamlConfigFileName = "okta.yaml"
)

// BaseURL Reduces a URL to its origin, scheme://host, with no trailing slash.
// SAML post targets and IdP metadata URLs are collapsed through this before
// they are used as an org value.
func BaseURL(rawURL string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return "", err
	}
	if !u.IsAbs() || u.Host == "" {
		return "", fmt.Errorf("URL %q is not an absolute URL", rawURL)
	}
	return fmt.Sprintf("%s://%s", u.Scheme, u.Host), nil
}
