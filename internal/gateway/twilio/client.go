// Package twilio is a minimal client for the Twilio Messages REST API plus
// TwiML response building for the inbound webhook.
package twilio

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultBaseURL = "https://api.twilio.com/2010-04-01"

var ErrNotConfigured = errors.New("twilio: client is not configured")

type Client struct {
	AccountSID  string
	AuthToken   string
	PhoneNumber string
	BaseURL     string
	HTTPClient  *http.Client
}

func NewClient(accountSID, authToken, phoneNumber string) *Client {
	return &Client{
		AccountSID:  accountSID,
		AuthToken:   authToken,
		PhoneNumber: phoneNumber,
		BaseURL:     defaultBaseURL,
		HTTPClient:  &http.Client{Timeout: 15 * time.Second},
	}
}

// IsConfigured reports whether credentials look usable: Twilio account SIDs
// always start with "AC", and sending needs a token and a from number.
func (c *Client) IsConfigured() bool {
	return strings.HasPrefix(c.AccountSID, "AC") && c.AuthToken != "" && c.PhoneNumber != ""
}

type Message struct {
	SID    string `json:"sid"`
	Status string `json:"status"`
	To     string `json:"to"`
	From   string `json:"from"`
}

type apiError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// SendMessage delivers an SMS from the configured number.
func (c *Client) SendMessage(ctx context.Context, to, body string) (*Message, error) {
	if !c.IsConfigured() {
		return nil, ErrNotConfigured
	}

	form := url.Values{}
	form.Set("To", to)
	form.Set("From", c.PhoneNumber)
	form.Set("Body", body)

	endpoint := fmt.Sprintf("%s/Accounts/%s/Messages.json", c.BaseURL, c.AccountSID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.SetBasicAuth(c.AccountSID, c.AuthToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("twilio: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		var apiErr apiError
		if err := json.NewDecoder(resp.Body).Decode(&apiErr); err == nil && apiErr.Message != "" {
			return nil, fmt.Errorf("twilio: send failed (%d): %s", apiErr.Code, apiErr.Message)
		}
		return nil, fmt.Errorf("twilio: send failed with status %d", resp.StatusCode)
	}

	var msg Message
	if err := json.NewDecoder(resp.Body).Decode(&msg); err != nil {
		return nil, fmt.Errorf("twilio: failed to decode response: %w", err)
	}
	return &msg, nil
}
