/*
 * Copyright (c) 2024-Present, Okta, Inc.
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

// Package apiclient is a thin request/response wrapper over the shared
// *http.Client. Cookies are threaded explicitly: each call gets a fresh jar
// seeded from the caller's cookies, so a hand-off between a federated IdP
// session and the relying party session replaces cookies rather than merging
// them into long lived shared state.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"

	"github.com/okta/okta-fed-cli/internal/utils"
)

// Response Flattened HTTP response. FinalURL is the URL after any redirect
// chain, which the OAuth2 authorize step parses for code/error parameters.
type Response struct {
	StatusCode int
	Status     string
	Header     http.Header
	Body       []byte
	Cookies    []*http.Cookie
	FinalURL   *url.URL
}

// JSON Decodes the response body into v.
func (r *Response) JSON(v any) error {
	return json.NewDecoder(bytes.NewReader(r.Body)).Decode(v)
}

// Cookie Returns the named cookie value, or the empty string.
func (r *Response) Cookie(name string) string {
	for _, c := range r.Cookies {
		if c.Name == name {
			return c.Value
		}
	}
	return ""
}

// Client HTTP transport collaborator for the authentication flows. TLS,
// proxy, and timeout policy live on the wrapped *http.Client owned by config.
type Client struct {
	httpClient *http.Client
	userAgent  string
}

// NewClient Client constructor.
func NewClient(httpClient *http.Client, userAgent string) *Client {
	return &Client{
		httpClient: httpClient,
		userAgent:  userAgent,
	}
}

type request struct {
	header  http.Header
	query   url.Values
	cookies []*http.Cookie
}

// Option mutates a single request.
type Option func(*request)

// WithHeader Adds a request header.
func WithHeader(key, value string) Option {
	return func(r *request) {
		r.header.Set(key, value)
	}
}

// WithQuery Adds URL query parameters.
func WithQuery(params url.Values) Option {
	return func(r *request) {
		for k, vals := range params {
			for _, v := range vals {
				r.query.Add(k, v)
			}
		}
	}
}

// WithCookies Sends the given cookies with the request and any redirects it
// triggers.
func WithCookies(cookies []*http.Cookie) Option {
	return func(r *request) {
		r.cookies = append(r.cookies, cookies...)
	}
}

// Get Issues a GET, following redirects.
func (c *Client) Get(ctx context.Context, rawURL string, opts ...Option) (*Response, error) {
	return c.do(ctx, http.MethodGet, rawURL, nil, opts...)
}

// PostJSON Issues a POST with a JSON body.
func (c *Client) PostJSON(ctx context.Context, rawURL string, payload any, opts ...Option) (*Response, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	opts = append(opts, WithHeader(utils.ContentType, utils.ApplicationJSON))
	return c.do(ctx, http.MethodPost, rawURL, bytes.NewReader(body), opts...)
}

// PostForm Issues a POST with a form encoded body.
func (c *Client) PostForm(ctx context.Context, rawURL string, form url.Values, opts ...Option) (*Response, error) {
	opts = append(opts, WithHeader(utils.ContentType, utils.ApplicationXFORM))
	return c.do(ctx, http.MethodPost, rawURL, strings.NewReader(form.Encode()), opts...)
}

func (c *Client) do(ctx context.Context, method, rawURL string, body io.Reader, opts ...Option) (*Response, error) {
	r := &request{
		header: http.Header{},
		query:  url.Values{},
	}
	for _, opt := range opts {
		opt(r)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, body)
	if err != nil {
		return nil, err
	}
	if len(r.query) > 0 {
		q := req.URL.Query()
		for k, vals := range r.query {
			for _, v := range vals {
				q.Add(k, v)
			}
		}
		req.URL.RawQuery = q.Encode()
	}
	for k, vals := range r.header {
		for _, v := range vals {
			req.Header.Set(k, v)
		}
	}
	req.Header.Set(utils.UserAgentHeader, c.userAgent)
	req.Header.Set(utils.XOktaFedCLIOperationHeader, utils.XOktaFedCLILoginOperation)

	// A fresh jar per call keeps cookie state bound to this request and its
	// redirect chain only.
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	jar.SetCookies(req.URL, r.cookies)

	hc := *c.httpClient
	hc.Jar = jar

	resp, err := hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s API error: %w", method, rawURL, err)
	}
	defer resp.Body.Close()
	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	finalURL := req.URL
	if resp.Request != nil {
		finalURL = resp.Request.URL
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		Header:     resp.Header,
		Body:       bodyBytes,
		Cookies:    mergeCookies(resp.Cookies(), jar.Cookies(finalURL)),
		FinalURL:   finalURL,
	}, nil
}

// mergeCookies combines the final response's Set-Cookie values with whatever
// the per-call jar accumulated across redirects. The response wins on name
// collision.
func mergeCookies(respCookies, jarCookies []*http.Cookie) []*http.Cookie {
	seen := make(map[string]bool, len(respCookies))
	merged := make([]*http.Cookie, 0, len(respCookies)+len(jarCookies))
	for _, c := range respCookies {
		seen[c.Name] = true
		merged = append(merged, c)
	}
	for _, c := range jarCookies {
		if !seen[c.Name] {
			merged = append(merged, c)
		}
	}
	return merged
}
