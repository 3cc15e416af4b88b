// internal/newsletter/brevo.go
package newsletter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gamedia/editorial-backend/internal/metrics"
)

const brevoBaseURL = "https://api.brevo.com/v3"

// BrevoClient talks to the Brevo (ex-Sendinblue) v3 API.
// Docs: https://developers.brevo.com/
type BrevoClient struct {
	apiKey      string
	listID      string
	senderName  string
	senderEmail string
	baseURL     string
	http        *http.Client
}

func NewBrevoClient(apiKey, listID, senderName, senderEmail string) *BrevoClient {
	return &BrevoClient{
		apiKey:      apiKey,
		listID:      listID,
		senderName:  senderName,
		senderEmail: senderEmail,
		baseURL:     brevoBaseURL,
		http:        &http.Client{Timeout: 10 * time.Second},
	}
}

// NewBrevoClientWithBaseURL is used by tests to point the client at a stub server.
func NewBrevoClientWithBaseURL(baseURL, apiKey, listID, senderName, senderEmail string) *BrevoClient {
	c := NewBrevoClient(apiKey, listID, senderName, senderEmail)
	c.baseURL = baseURL
	return c
}

func (c *BrevoClient) Name() string { return "brevo" }

func (c *BrevoClient) request(ctx context.Context, method, endpoint, operation string, payload any) (*http.Response, error) {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, NewServiceError("brevo", "encode %s payload: %v", endpoint, err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+"/"+endpoint, body)
	if err != nil {
		return nil, NewServiceError("brevo", "build request: %v", err)
	}
	req.Header.Set("api-key", c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	metrics.ObserveProviderRequest("brevo", operation, err, time.Since(start))
	if err != nil {
		return nil, NewServiceError("brevo", "connection error: %v", err)
	}
	return resp, nil
}

// Subscribe adds a contact to the configured list, updating it if it exists.
func (c *BrevoClient) Subscribe(ctx context.Context, email, firstName, lastName string) (*SubscribeResult, error) {
	listIDs := []int{}
	if c.listID != "" {
		if id, err := strconv.Atoi(c.listID); err == nil {
			listIDs = append(listIDs, id)
		}
	}

	payload := map[string]any{
		"email":         email,
		"listIds":       listIDs,
		"updateEnabled": true,
	}
	attributes := map[string]string{}
	if firstName != "" {
		attributes["PRENOM"] = firstName
	}
	if lastName != "" {
		attributes["NOM"] = lastName
	}
	if len(attributes) > 0 {
		payload["attributes"] = attributes
	}

	resp, err := c.request(ctx, http.MethodPost, "contacts", "subscribe", payload)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)

	switch {
	case resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusCreated || resp.StatusCode == http.StatusNoContent:
		// 204 carries no body
		result := &SubscribeResult{}
		var decoded struct {
			ID json.Number `json:"id"`
		}
		if len(raw) > 0 && json.Unmarshal(raw, &decoded) == nil {
			result.ID = decoded.ID.String()
		}
		return result, nil
	case resp.StatusCode == http.StatusBadRequest:
		if strings.Contains(strings.ToLower(string(raw)), "duplicate") {
			return &SubscribeResult{AlreadySubscribed: true}, nil
		}
		return nil, NewServiceError("brevo", "subscribe failed: %s", string(raw))
	default:
		return nil, NewServiceError("brevo", "subscribe failed: status %d", resp.StatusCode)
	}
}

// Unsubscribe removes the contact from the configured list.
func (c *BrevoClient) Unsubscribe(ctx context.Context, email string) error {
	if c.listID == "" {
		return nil
	}

	payload := map[string]any{"emails": []string{email}}
	endpoint := fmt.Sprintf("contacts/lists/%s/contacts/remove", c.listID)

	resp, err := c.request(ctx, http.MethodPost, endpoint, "unsubscribe", payload)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusCreated || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	raw, _ := io.ReadAll(resp.Body)
	return NewServiceError("brevo", "unsubscribe failed: %s", string(raw))
}

// GetSubscriber returns contact details, or nil when the contact is unknown.
func (c *BrevoClient) GetSubscriber(ctx context.Context, email string) (map[string]any, error) {
	resp, err := c.request(ctx, http.MethodGet, "contacts/"+email, "get_subscriber", nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		var decoded map[string]any
		if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
			return nil, NewServiceError("brevo", "decode subscriber: %v", err)
		}
		return decoded, nil
	case http.StatusNotFound:
		return nil, nil
	default:
		return nil, NewServiceError("brevo", "get subscriber failed: status %d", resp.StatusCode)
	}
}

// CreateCampaign creates a classic email campaign addressed to the
// configured list and returns the provider-assigned campaign id.
func (c *BrevoClient) CreateCampaign(ctx context.Context, name, subject, html string) (string, error) {
	if c.listID == "" {
		return "", NewServiceError("brevo", "BREVO_LIST_ID not configured")
	}
	listID, err := strconv.Atoi(c.listID)
	if err != nil {
		return "", NewServiceError("brevo", "invalid BREVO_LIST_ID: %s", c.listID)
	}

	payload := map[string]any{
		"name":    name,
		"subject": subject,
		"sender": map[string]string{
			"name":  c.senderName,
			"email": c.senderEmail,
		},
		"type":        "classic",
		"htmlContent": html,
		"recipients": map[string]any{
			"listIds": []int{listID},
		},
	}

	resp, err := c.request(ctx, http.MethodPost, "emailCampaigns", "create_campaign", payload)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		raw, _ := io.ReadAll(resp.Body)
		return "", NewServiceError("brevo", "campaign creation failed: status %d: %s", resp.StatusCode, string(raw))
	}

	var decoded struct {
		ID json.Number `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", NewServiceError("brevo", "decode campaign id: %v", err)
	}
	return decoded.ID.String(), nil
}

// SendCampaign sends a previously created campaign immediately.
func (c *BrevoClient) SendCampaign(ctx context.Context, campaignID string) error {
	endpoint := fmt.Sprintf("emailCampaigns/%s/sendNow", campaignID)

	resp, err := c.request(ctx, http.MethodPost, endpoint, "send_campaign", nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusCreated || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	raw, _ := io.ReadAll(resp.Body)
	return NewServiceError("brevo", "campaign send failed: status %d: %s", resp.StatusCode, string(raw))
}

// SendEmail delivers a transactional email (contact notifications,
// confirmations) through the Brevo SMTP API.
func (c *BrevoClient) SendEmail(ctx context.Context, msg TransactionalEmail) (string, error) {
	payload := map[string]any{
		"sender": map[string]string{
			"name":  c.senderName,
			"email": c.senderEmail,
		},
		"to": []map[string]string{
			{"email": msg.ToEmail, "name": msg.ToName},
		},
		"subject":     msg.Subject,
		"htmlContent": msg.HTML,
	}
	if msg.ReplyToEmail != "" {
		replyName := msg.ReplyToName
		if replyName == "" {
			replyName = msg.ReplyToEmail
		}
		payload["replyTo"] = map[string]string{
			"email": msg.ReplyToEmail,
			"name":  replyName,
		}
	}

	resp, err := c.request(ctx, http.MethodPost, "smtp/email", "send_email", payload)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusAccepted {
		raw, _ := io.ReadAll(resp.Body)
		return "", NewServiceError("brevo", "transactional email failed: status %d: %s", resp.StatusCode, string(raw))
	}

	var decoded struct {
		MessageID string `json:"messageId"`
	}
	_ = json.NewDecoder(resp.Body).Decode(&decoded)
	return decoded.MessageID, nil
}

var (
	_ Provider            = (*BrevoClient)(nil)
	_ CampaignSender      = (*BrevoClient)(nil)
	_ TransactionalSender = (*BrevoClient)(nil)
)
