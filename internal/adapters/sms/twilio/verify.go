package twilio

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const baseURL = "https://verify.twilio.com/v2"

// Client wraps the Verify API. The provider generates, delivers and stores the
// codes; we only keep the session id it hands back.
type Client struct {
	accountSID string
	authToken  string
	serviceSID string
	httpClient *http.Client
}

func NewClient(accountSID, authToken, serviceSID string) (*Client, error) {
	if accountSID == "" || authToken == "" || serviceSID == "" {
		return nil, errors.New("twilio credentials missing")
	}
	return &Client{
		accountSID: accountSID,
		authToken:  authToken,
		serviceSID: serviceSID,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}, nil
}

type verificationResp struct {
	Sid    string `json:"sid"`
	Status string `json:"status"`
}

func (c *Client) StartVerification(ctx context.Context, phone string) (string, error) {
	form := url.Values{"To": {phone}, "Channel": {"sms"}}
	var out verificationResp
	endpoint := fmt.Sprintf("%s/Services/%s/Verifications", baseURL, c.serviceSID)
	if err := c.post(ctx, endpoint, form, &out); err != nil {
		return "", err
	}
	return out.Sid, nil
}

func (c *Client) CheckVerification(ctx context.Context, phone, code string) (bool, error) {
	form := url.Values{"To": {phone}, "Code": {code}}
	var out verificationResp
	endpoint := fmt.Sprintf("%s/Services/%s/VerificationCheck", baseURL, c.serviceSID)
	if err := c.post(ctx, endpoint, form, &out); err != nil {
		return false, err
	}
	return out.Status == "approved", nil
}

func (c *Client) post(ctx context.Context, endpoint string, form url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.SetBasicAuth(c.accountSID, c.authToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("twilio verify: %w", err)
	}
	defer res.Body.Close()
	if res.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(res.Body, 4<<10))
		var e struct {
			Message string `json:"message"`
		}
		if err := json.Unmarshal(raw, &e); err == nil && e.Message != "" {
			return fmt.Errorf("twilio verify status %d: %s", res.StatusCode, e.Message)
		}
		return fmt.Errorf("twilio verify status %d", res.StatusCode)
	}
	return json.NewDecoder(res.Body).Decode(out)
}
