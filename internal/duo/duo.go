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

// Package duo speaks the DUO iframe web protocol that Okta delegates to for
// DUO factors. The exchange runs against the DUO api host named in the
// factor's verification material: fetch a sid from the auth frame, open a
// transaction that fires the push or passcode prompt, poll the transaction to
// completion, then post the signed response back to Okta's completion link.
package duo

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/pkg/errors"

	"github.com/okta/okta-fed-cli/internal/apiclient"
	"github.com/okta/okta-fed-cli/internal/utils"
)

const statusPollInterval = time.Second

// Verification The DUO material Okta embeds in the verify response for a DUO
// factor. Signature is the colon joined TX:APP pair; CompleteURL is the Okta
// callback that closes the factor.
type Verification struct {
	Host        string
	Signature   string
	CompleteURL string
	FactorID    string
	StateToken  string
	// ParentOrigin is the Okta org origin hosting the iframe.
	ParentOrigin string
}

type txnResponse struct {
	Stat     string `json:"stat"`
	Response struct {
		Txid string `json:"txid"`
	} `json:"response"`
}

type statusResponse struct {
	Stat     string `json:"stat"`
	Message  string `json:"message"`
	Response struct {
		Cookie    string `json:"cookie"`
		Result    string `json:"result"`
		ResultURL string `json:"result_url"`
		Sid       string `json:"sid"`
		Status    string `json:"status"`
	} `json:"response"`
}

// Client DUO protocol collaborator.
type Client struct {
	api *apiclient.Client
}

// NewClient Client constructor.
func NewClient(api *apiclient.Client) *Client {
	return &Client{api: api}
}

// Authenticate Runs the full DUO exchange. With a passcode set the passcode
// factor is used, otherwise a push is fired at the user's first phone. On
// success the completion link has been posted back to Okta and the caller can
// re-verify the factor to collect its session token.
func (c *Client) Authenticate(ctx context.Context, v Verification, passcode string) error {
	sigParts := strings.Split(v.Signature, ":")
	if len(sigParts) != 2 {
		return errors.Errorf("malformed DUO signature %q", v.Signature)
	}

	sid, err := c.fetchSid(ctx, v, sigParts[0])
	if err != nil {
		return errors.Wrap(err, "fetching DUO sid")
	}

	txid, err := c.openTxn(ctx, v.Host, sid, passcode)
	if err != nil {
		return errors.Wrap(err, "opening DUO transaction")
	}

	cookie, err := c.pollStatus(ctx, v.Host, sid, txid)
	if err != nil {
		return errors.Wrap(err, "waiting on DUO transaction")
	}

	form := url.Values{
		"id":           []string{v.FactorID},
		"stateToken":   []string{v.StateToken},
		"sig_response": []string{fmt.Sprintf("%s:%s", cookie, sigParts[1])},
	}
	resp, err := c.api.PostForm(ctx, v.CompleteURL, form)
	if err != nil {
		return errors.Wrap(err, "completing DUO factor")
	}
	if resp.StatusCode >= 400 {
		return errors.Errorf("completing DUO factor received API response %q", resp.Status)
	}
	return nil
}

// fetchSid posts to the DUO auth frame and scrapes the sid value out of the
// returned form.
func (c *Client) fetchSid(ctx context.Context, v Verification, txSig string) (string, error) {
	form := url.Values{}
	form.Add("parent", fmt.Sprintf("%s/signin/verify/duo/web", v.ParentOrigin))
	form.Add("java_version", "")
	form.Add("flash_version", "")
	form.Add("screen_resolution_width", "3008")
	form.Add("screen_resolution_height", "1692")
	form.Add("color_depth", "24")

	authURL := fmt.Sprintf("https://%s/frame/web/v1/auth", v.Host)
	resp, err := c.api.PostForm(ctx, authURL, form,
		apiclient.WithQuery(url.Values{"tx": []string{txSig}}),
		apiclient.WithHeader(utils.Accept, utils.TextHTML),
	)
	if err != nil {
		return "", err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(resp.Body)))
	if err != nil {
		return "", err
	}
	sid, ok := doc.Find(`input[name="sid"]`).Attr("value")
	if !ok {
		return "", errors.New("no sid in DUO auth frame")
	}
	return sid, nil
}

// openTxn fires the prompt on the user's device and returns the transaction id.
func (c *Client) openTxn(ctx context.Context, host, sid, passcode string) (string, error) {
	form := url.Values{}
	form.Add("sid", sid)
	form.Add("device", "phone1")
	form.Add("out_of_date", "false")
	if passcode != "" {
		form.Add("factor", "Passcode")
		form.Add("passcode", passcode)
	} else {
		form.Add("factor", "Duo Push")
	}

	resp, err := c.api.PostForm(ctx, fmt.Sprintf("https://%s/frame/prompt", host), form)
	if err != nil {
		return "", err
	}

	var txn txnResponse
	if err = resp.JSON(&txn); err != nil {
		return "", err
	}
	if txn.Stat != "OK" {
		return "", errors.Errorf("DUO transaction stat %q", txn.Stat)
	}
	return txn.Response.Txid, nil
}

// pollStatus blocks on the DUO status endpoint until the transaction settles,
// then follows result_url to pick up the response cookie.
func (c *Client) pollStatus(ctx context.Context, host, sid, txid string) (string, error) {
	statusURL := fmt.Sprintf("https://%s/frame/status", host)
	form := url.Values{
		"sid":  []string{sid},
		"txid": []string{txid},
	}

	var status statusResponse
	for {
		resp, err := c.api.PostForm(ctx, statusURL, form)
		if err != nil {
			return "", err
		}
		if err = resp.JSON(&status); err != nil {
			return "", err
		}

		if status.Response.Result == "SUCCESS" {
			break
		}
		if status.Response.Result == "FAILURE" {
			return "", errors.New("DUO verification failed")
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(statusPollInterval):
		}
	}

	if status.Response.Sid != "" {
		sid = status.Response.Sid
	}
	resultForm := url.Values{"sid": []string{sid}}
	resp, err := c.api.PostForm(ctx, fmt.Sprintf("https://%s%s", host, status.Response.ResultURL), resultForm)
	if err != nil {
		return "", err
	}
	var result statusResponse
	if err = resp.JSON(&result); err != nil {
		return "", err
	}
	if result.Stat != "OK" {
		return "", errors.Errorf("DUO result stat %q message %q", result.Stat, result.Message)
	}
	return result.Response.Cookie, nil
}
