package supabase

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Client uploads objects to a storage bucket and returns public URLs. Deletion
// works backwards from a previously issued URL.
type Client struct {
	baseURL    string
	bucket     string
	serviceKey string
	httpClient *http.Client
}

func NewClient(baseURL, bucket, serviceKey string) (*Client, error) {
	if baseURL == "" || bucket == "" || serviceKey == "" {
		return nil, errors.New("storage credentials missing")
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		bucket:     bucket,
		serviceKey: serviceKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}, nil
}

// Upload writes the bytes under folder with a random object name so client
// file names never collide or leak into URLs.
func (c *Client) Upload(ctx context.Context, folder, name string, data []byte, contentType string) (string, error) {
	ext := path.Ext(name)
	objectPath := fmt.Sprintf("%s/%s%s", strings.Trim(folder, "/"), uuid.NewString(), ext)

	endpoint := fmt.Sprintf("%s/storage/v1/object/%s/%s", c.baseURL, c.bucket, objectPath)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(data))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.serviceKey)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("storage upload: %w", err)
	}
	defer res.Body.Close()
	if res.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(res.Body, 4<<10))
		return "", fmt.Errorf("storage upload status %d: %s", res.StatusCode, string(raw))
	}
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", c.baseURL, c.bucket, objectPath), nil
}

func (c *Client) Delete(ctx context.Context, fileURL string) error {
	prefix := fmt.Sprintf("%s/storage/v1/object/public/%s/", c.baseURL, c.bucket)
	if !strings.HasPrefix(fileURL, prefix) {
		return fmt.Errorf("url %q is not managed by this bucket", fileURL)
	}
	objectPath := strings.TrimPrefix(fileURL, prefix)

	endpoint := fmt.Sprintf("%s/storage/v1/object/%s/%s", c.baseURL, c.bucket, objectPath)
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.serviceKey)

	res, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("storage delete: %w", err)
	}
	defer res.Body.Close()
	if res.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(res.Body, 4<<10))
		return fmt.Errorf("storage delete status %d: %s", res.StatusCode, string(raw))
	}
	return nil
}
