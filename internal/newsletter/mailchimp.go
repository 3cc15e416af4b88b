// internal/newsletter/mailchimp.go
package newsletter

import (
	"bytes"
	"context"
	"crypto/md5"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gamedia/editorial-backend/internal/metrics"
)

// MailchimpClient talks to the Mailchimp Marketing API. It only covers
// subscriber management; campaign sending stays on Brevo.
// Docs: https://mailchimp.com/developer/marketing/api/
type MailchimpClient struct {
	apiKey  string
	listID  string
	baseURL string
	http    *http.Client
}

func NewMailchimpClient(apiKey, listID string) *MailchimpClient {
	c := &MailchimpClient{
		apiKey: apiKey,
		listID: listID,
		http:   &http.Client{Timeout: 10 * time.Second},
	}
	// Datacenter is the API key suffix: xxxx-us21 -> us21.api.mailchimp.com
	if idx := strings.LastIndex(apiKey, "-"); idx != -1 {
		dc := apiKey[idx+1:]
		c.baseURL = fmt.Sprintf("https://%s.api.mailchimp.com/3.0", dc)
	}
	return c
}

// NewMailchimpClientWithBaseURL is used by tests to point the client at a stub server.
func NewMailchimpClientWithBaseURL(baseURL, apiKey, listID string) *MailchimpClient {
	c := NewMailchimpClient(apiKey, listID)
	c.baseURL = baseURL
	return c
}

func (c *MailchimpClient) Name() string { return "mailchimp" }

func (c *MailchimpClient) request(ctx context.Context, method, endpoint, operation string, payload any) (*http.Response, error) {
	if c.baseURL == "" {
		return nil, NewServiceError("mailchimp", "invalid configuration: no datacenter in API key")
	}

	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, NewServiceError("mailchimp", "encode %s payload: %v", endpoint, err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+"/"+endpoint, body)
	if err != nil {
		return nil, NewServiceError("mailchimp", "build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth("anystring", c.apiKey)

	start := time.Now()
	resp, err := c.http.Do(req)
	metrics.ObserveProviderRequest("mailchimp", operation, err, time.Since(start))
	if err != nil {
		return nil, NewServiceError("mailchimp", "connection error: %v", err)
	}
	return resp, nil
}

func subscriberHash(email string) string {
	return fmt.Sprintf("%x", md5.Sum([]byte(strings.ToLower(email))))
}

func (c *MailchimpClient) Subscribe(ctx context.Context, email, firstName, lastName string) (*SubscribeResult, error) {
	payload := map[string]any{
		"email_address": email,
		"status":        "subscribed",
	}
	mergeFields := map[string]string{}
	if firstName != "" {
		mergeFields["FNAME"] = firstName
	}
	if lastName != "" {
		mergeFields["LNAME"] = lastName
	}
	if len(mergeFields) > 0 {
		payload["merge_fields"] = mergeFields
	}

	endpoint := fmt.Sprintf("lists/%s/members", c.listID)
	resp, err := c.request(ctx, http.MethodPost, endpoint, "subscribe", payload)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)

	switch {
	case resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusCreated:
		var decoded struct {
			ID string `json:"id"`
		}
		_ = json.Unmarshal(raw, &decoded)
		return &SubscribeResult{ID: decoded.ID}, nil
	case resp.StatusCode == http.StatusBadRequest:
		if strings.Contains(strings.ToLower(string(raw)), "already a list member") {
			return &SubscribeResult{AlreadySubscribed: true}, nil
		}
		return nil, NewServiceError("mailchimp", "subscribe failed: %s", string(raw))
	default:
		return nil, NewServiceError("mailchimp", "subscribe failed: status %d", resp.StatusCode)
	}
}

func (c *MailchimpClient) Unsubscribe(ctx context.Context, email string) error {
	payload := map[string]any{"status": "unsubscribed"}
	endpoint := fmt.Sprintf("lists/%s/members/%s", c.listID, subscriberHash(email))

	resp, err := c.request(ctx, http.MethodPatch, endpoint, "unsubscribe", payload)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	raw, _ := io.ReadAll(resp.Body)
	return NewServiceError("mailchimp", "unsubscribe failed: %s", string(raw))
}

func (c *MailchimpClient) GetSubscriber(ctx context.Context, email string) (map[string]any, error) {
	endpoint := fmt.Sprintf("lists/%s/members/%s", c.listID, subscriberHash(email))

	resp, err := c.request(ctx, http.MethodGet, endpoint, "get_subscriber", nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		var decoded map[string]any
		if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
			return nil, NewServiceError("mailchimp", "decode subscriber: %v", err)
		}
		return decoded, nil
	case http.StatusNotFound:
		return nil, nil
	default:
		return nil, NewServiceError("mailchimp", "get subscriber failed: status %d", resp.StatusCode)
	}
}

var _ Provider = (*MailchimpClient)(nil)
