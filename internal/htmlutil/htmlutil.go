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

// Package htmlutil extracts the SAML form values and interstitial state
// tokens Okta embeds in the HTML pages exchanged during federation. Every
// extractor treats absence as the empty string; only unparseable HTML is an
// error.
package htmlutil

import (
	"encoding/base64"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/net/html"
)

const (
	nameKey   = "name"
	valueKey  = "value"
	appFormID = "appForm"
)

// stateTokenPattern matches the inline script assignment Okta renders on
// interstitial pages.
var stateTokenPattern = regexp.MustCompile(`var stateToken = '(.*?)';`)

// InputValue Returns the value attribute of the first <input> whose name
// attribute equals name, or the empty string.
func InputValue(htmlText, name string) (string, error) {
	doc, err := html.Parse(strings.NewReader(htmlText))
	if err != nil {
		return "", err
	}
	val, _ := findInputValue(doc, name)
	return val, nil
}

// SAMLRequest Returns the base64 SAMLRequest form value. With decode true the
// value is base64 decoded into the underlying XML document.
func SAMLRequest(htmlText string, decode bool) (string, error) {
	return samlFormValue(htmlText, "SAMLRequest", decode)
}

// SAMLResponse Returns the base64 SAMLResponse form value. With decode true
// the value is base64 decoded into the underlying XML document.
func SAMLResponse(htmlText string, decode bool) (string, error) {
	return samlFormValue(htmlText, "SAMLResponse", decode)
}

// RelayState Returns the RelayState form value, or the empty string.
func RelayState(htmlText string) (string, error) {
	return InputValue(htmlText, "RelayState")
}

// FormPostURL Returns the action attribute of the form with id "appForm", or
// the empty string.
func FormPostURL(htmlText string) (string, error) {
	doc, err := html.Parse(strings.NewReader(htmlText))
	if err != nil {
		return "", err
	}
	val, _ := findAppFormAction(doc)
	return val, nil
}

// StateToken Returns the state token assigned in an inline script, with any
// JavaScript string escapes decoded, or the empty string when no script
// carries one.
func StateToken(htmlText string) (string, error) {
	doc, err := html.Parse(strings.NewReader(htmlText))
	if err != nil {
		return "", err
	}
	script, ok := findScriptWithStateToken(doc)
	if !ok {
		return "", nil
	}
	m := stateTokenPattern.FindStringSubmatch(script)
	if m == nil {
		return "", nil
	}
	return decodeJSEscapes(m[1]), nil
}

func samlFormValue(htmlText, name string, decode bool) (string, error) {
	val, err := InputValue(htmlText, name)
	if err != nil || val == "" || !decode {
		return val, err
	}
	decoded, err := base64.StdEncoding.DecodeString(val)
	if err != nil {
		return "", err
	}
	return string(decoded), nil
}

func findInputValue(n *html.Node, name string) (val string, found bool) {
	if n == nil {
		return
	}
	if n.Type == html.ElementNode && n.Data == "input" {
		for _, a := range n.Attr {
			if a.Key == nameKey && a.Val == name {
				found = true
			}
			if a.Key == valueKey {
				val = a.Val
			}
		}
		if found {
			return
		}
		val = ""
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if val, found = findInputValue(c, name); found {
			return
		}
	}
	return "", false
}

func findAppFormAction(n *html.Node) (val string, found bool) {
	if n == nil {
		return
	}
	if n.Type == html.ElementNode && n.Data == "form" {
		var action string
		for _, a := range n.Attr {
			if a.Key == "id" && a.Val == appFormID {
				found = true
			}
			if a.Key == "action" {
				action = a.Val
			}
		}
		if found {
			return action, true
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if val, found = findAppFormAction(c); found {
			return
		}
	}
	return "", false
}

func findScriptWithStateToken(n *html.Node) (text string, found bool) {
	if n == nil {
		return
	}
	if n.Type == html.ElementNode && n.Data == "script" {
		var sb strings.Builder
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.TextNode {
				sb.WriteString(c.Data)
			}
		}
		if stateTokenPattern.MatchString(sb.String()) {
			return sb.String(), true
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if text, found = findScriptWithStateToken(c); found {
			return
		}
	}
	return "", false
}

// decodeJSEscapes resolves \xNN and \uNNNN escapes that Okta applies to
// state tokens rendered into script bodies. Malformed escapes are passed
// through untouched.
func decodeJSEscapes(s string) string {
	var sb strings.Builder
	for i := 0; i < len(s); {
		if s[i] != '\\' || i+1 >= len(s) {
			sb.WriteByte(s[i])
			i++
			continue
		}
		switch s[i+1] {
		case 'x':
			if i+4 <= len(s) {
				if v, err := strconv.ParseUint(s[i+2:i+4], 16, 32); err == nil {
					sb.WriteRune(rune(v))
					i += 4
					continue
				}
			}
		case 'u':
			if i+6 <= len(s) {
				if v, err := strconv.ParseUint(s[i+2:i+6], 16, 32); err == nil {
					sb.WriteRune(rune(v))
					i += 6
					continue
				}
			}
		}
		sb.WriteByte(s[i])
		i++
	}
	return sb.String()
}
