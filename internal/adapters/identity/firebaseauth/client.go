package firebaseauth

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/cistech/market/internal/domain"
)

const (
	lookupURL   = "https://identitytoolkit.googleapis.com/v1/accounts:lookup"
	updateURL   = "https://identitytoolkit.googleapis.com/v1/projects/%s/accounts:update"
	adminScope  = "https://www.googleapis.com/auth/identitytoolkit"
	httpTimeout = 10 * time.Second
)

// Client talks to the identity provider over its REST API. Token verification
// uses the public API key; claim updates use a service-account token source.
type Client struct {
	apiKey      string
	projectID   string
	tokenSource oauth2.TokenSource
	httpClient  *http.Client
}

func NewClient(apiKey, projectID string, serviceAccountJSON []byte) (*Client, error) {
	if apiKey == "" {
		return nil, errors.New("identity api key missing")
	}
	c := &Client{
		apiKey:     apiKey,
		projectID:  projectID,
		httpClient: &http.Client{Timeout: httpTimeout},
	}
	if len(serviceAccountJSON) > 0 {
		cfg, err := google.JWTConfigFromJSON(serviceAccountJSON, adminScope)
		if err != nil {
			return nil, fmt.Errorf("parse service account: %w", err)
		}
		c.tokenSource = cfg.TokenSource(context.Background())
	}
	return c, nil
}

type lookupReq struct {
	IDToken string `json:"idToken"`
}

type lookupResp struct {
	Users []struct {
		LocalID          string `json:"localId"`
		CustomAttributes string `json:"customAttributes"`
	} `json:"users"`
}

type customAttributes struct {
	UserType     string `json:"user_type"`
	VendorStatus string `json:"vendor_status"`
}

// VerifyToken asks the provider to validate the bearer token and returns the
// subject plus whatever custom claims are attached. Signature checks stay on
// the provider side.
func (c *Client) VerifyToken(ctx context.Context, token string) (*domain.TokenClaims, error) {
	body, err := json.Marshal(lookupReq{IDToken: token})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, lookupURL+"?key="+c.apiKey, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("identity lookup: %w", err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return nil, providerError("lookup", res)
	}

	var out lookupResp
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return nil, err
	}
	if len(out.Users) == 0 {
		return nil, errors.New("token subject not found")
	}

	claims := &domain.TokenClaims{Subject: out.Users[0].LocalID, UserType: domain.UserTypeUser}
	if raw := out.Users[0].CustomAttributes; raw != "" {
		var attrs customAttributes
		if err := json.Unmarshal([]byte(raw), &attrs); err == nil {
			if t := domain.UserType(attrs.UserType); t.Valid() {
				claims.UserType = t
			}
			if s := domain.VendorStatus(attrs.VendorStatus); s.Valid() {
				claims.VendorStatus = s
			}
		}
	}
	return claims, nil
}

type updateReq struct {
	LocalID          string `json:"localId"`
	CustomAttributes string `json:"customAttributes"`
}

// SetCustomClaims replaces the custom claims on the provider's user record.
// Tokens issued after the call carry the new claims.
func (c *Client) SetCustomClaims(ctx context.Context, uid string, claims map[string]any) error {
	if c.tokenSource == nil {
		return errors.New("identity admin credentials not configured")
	}
	attrs, err := json.Marshal(claims)
	if err != nil {
		return err
	}
	body, err := json.Marshal(updateReq{LocalID: uid, CustomAttributes: string(attrs)})
	if err != nil {
		return err
	}
	tok, err := c.tokenSource.Token()
	if err != nil {
		return fmt.Errorf("identity admin token: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, fmt.Sprintf(updateURL, c.projectID), bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	tok.SetAuthHeader(req)

	res, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("identity update: %w", err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return providerError("update", res)
	}
	return nil
}

func providerError(op string, res *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(res.Body, 4<<10))
	var e struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(raw, &e); err == nil && e.Error.Message != "" {
		return fmt.Errorf("identity %s status %d: %s", op, res.StatusCode, e.Error.Message)
	}
	return fmt.Errorf("identity %s status %d", op, res.StatusCode)
}
