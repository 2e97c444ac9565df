// Package client provides a typed Go client for the Capsule API plus an
// explicit view-model for the wardrobe item list.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Item is the wire shape of a clothing item as returned by the API.
type Item struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Brand         *string   `json:"brand"`
	Type          *string   `json:"type"`
	Color         *string   `json:"color"`
	Description   *string   `json:"description"`
	Size          *string   `json:"size"`
	ImageURLFront string    `json:"image_url_front"`
	ImageURLBack  string    `json:"image_url_back"`
	Price         *float64  `json:"price"`
	DatePurchased *string   `json:"date_purchased"`
	InCapsule     bool      `json:"in_capsule"`
	CreatedAt     time.Time `json:"created_at"`
}

// CreateItemParams are the fields for item creation. Price and DatePurchased
// are strings straight from form inputs; empty means unset.
type CreateItemParams struct {
	Name          string `json:"name"`
	ImageURLFront string `json:"image_url_front"`
	ImageURLBack  string `json:"image_url_back"`
	Brand         string `json:"brand,omitempty"`
	Type          string `json:"type,omitempty"`
	Color         string `json:"color,omitempty"`
	Description   string `json:"description,omitempty"`
	Size          string `json:"size,omitempty"`
	Price         string `json:"price,omitempty"`
	DatePurchased string `json:"date_purchased,omitempty"`
}

// UpdateItemParams is a partial update: only keys present in the encoded JSON
// are touched server-side, and an explicit null clears a field. Use the raw
// map form so tri-state semantics survive encoding.
type UpdateItemParams map[string]any

// ToggleResult is the server's answer to a capsule toggle.
type ToggleResult struct {
	InCapsule bool   `json:"in_capsule"`
	Message   string `json:"message"`
}

// UploadGrant is a presigned upload slot.
type UploadGrant struct {
	UploadURL string `json:"upload_url"`
	PublicURL string `json:"public_url"`
}

// Suggestion is the AI metadata proposal for a pair of garment photos.
type Suggestion struct {
	Brand       string `json:"brand"`
	Type        string `json:"type"`
	Color       string `json:"color"`
	Description string `json:"description"`
}

// APIError is a non-2xx response. Fields is populated for validation
// failures (field name to messages).
type APIError struct {
	StatusCode int
	Message    string
	Fields     map[string][]string
}

func (e *APIError) Error() string {
	if len(e.Fields) > 0 {
		return fmt.Sprintf("api: %d %s (%d invalid fields)", e.StatusCode, e.Message, len(e.Fields))
	}
	return fmt.Sprintf("api: %d %s", e.StatusCode, e.Message)
}

// Client is a session-aware HTTP client for the Capsule API. The cookie jar
// carries the session cookie issued by the sign-in flow.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a Client for the API rooted at baseURL (e.g.
// "http://localhost:8080/api"). A cookie jar is installed so the session
// survives across calls.
func New(baseURL string) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("client: create cookie jar: %w", err)
	}
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		http:    &http.Client{Jar: jar},
	}, nil
}

// NewWithHTTPClient creates a Client using the given http.Client. The caller
// is responsible for session cookie handling.
func NewWithHTTPClient(baseURL string, hc *http.Client) *Client {
	return &Client{baseURL: strings.TrimSuffix(baseURL, "/"), http: hc}
}

// ListItems fetches the session user's items, newest first.
func (c *Client) ListItems(ctx context.Context) ([]Item, error) {
	var resp struct {
		Items []Item `json:"items"`
	}
	if err := c.do(ctx, http.MethodGet, "/items", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Items, nil
}

// CreateItem creates a new clothing item.
func (c *Client) CreateItem(ctx context.Context, params CreateItemParams) (*Item, error) {
	var item Item
	if err := c.do(ctx, http.MethodPost, "/items", params, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// UpdateItem applies a partial update to an item.
func (c *Client) UpdateItem(ctx context.Context, id uuid.UUID, params UpdateItemParams) (*Item, error) {
	var item Item
	if err := c.do(ctx, http.MethodPatch, "/items/"+id.String(), params, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// DeleteItem permanently deletes an item.
func (c *Client) DeleteItem(ctx context.Context, id uuid.UUID) error {
	return c.do(ctx, http.MethodDelete, "/items/"+id.String(), nil, nil)
}

// ToggleCapsule flips an item's capsule membership.
func (c *Client) ToggleCapsule(ctx context.Context, id uuid.UUID) (*ToggleResult, error) {
	var result ToggleResult
	if err := c.do(ctx, http.MethodPost, "/items/"+id.String()+"/capsule", nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// RequestUploadGrant asks for a presigned PUT URL for a new image object.
func (c *Client) RequestUploadGrant(ctx context.Context, contentType, fileExtension string) (*UploadGrant, error) {
	var grant UploadGrant
	body := map[string]string{"content_type": contentType, "file_extension": fileExtension}
	if err := c.do(ctx, http.MethodPost, "/uploads/presign", body, &grant); err != nil {
		return nil, err
	}
	return &grant, nil
}

// RequestDownloadGrant resolves a stored permanent URL to a temporary signed URL.
func (c *Client) RequestDownloadGrant(ctx context.Context, storedURL string) (string, error) {
	var resp struct {
		URL string `json:"url"`
	}
	if err := c.do(ctx, http.MethodPost, "/uploads/presign-get", map[string]string{"url": storedURL}, &resp); err != nil {
		return "", err
	}
	return resp.URL, nil
}

// UploadImage PUTs the image bytes to a presigned upload URL. The content
// type must match the one the grant was issued for.
func (c *Client) UploadImage(ctx context.Context, uploadURL, contentType string, body io.Reader) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, uploadURL, body)
	if err != nil {
		return fmt.Errorf("client: build upload request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("client: upload image: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{StatusCode: resp.StatusCode, Message: "upload failed"}
	}
	return nil
}

// AnalyzeItem asks the AI to suggest metadata from the stored image URLs.
func (c *Client) AnalyzeItem(ctx context.Context, frontURL, backURL string) (*Suggestion, error) {
	var suggestion Suggestion
	body := map[string]string{"image_url_front": frontURL, "image_url_back": backURL}
	if err := c.do(ctx, http.MethodPost, "/ai/analyze-item", body, &suggestion); err != nil {
		return nil, err
	}
	return &suggestion, nil
}

// Me returns the session user's ID, or an APIError with status 401.
func (c *Client) Me(ctx context.Context) (uuid.UUID, error) {
	var resp struct {
		UserID uuid.UUID `json:"user_id"`
	}
	if err := c.do(ctx, http.MethodGet, "/auth/me", nil, &resp); err != nil {
		return uuid.Nil, err
	}
	return resp.UserID, nil
}

// Logout destroys the session.
func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/auth/logout", nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("client: encode request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("client: build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("client: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeAPIError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("client: decode response: %w", err)
	}
	return nil
}

func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
	var body struct {
		Error  string              `json:"error"`
		Fields map[string][]string `json:"fields"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil && body.Error != "" {
		apiErr.Message = body.Error
		apiErr.Fields = body.Fields
	}
	return apiErr
}
