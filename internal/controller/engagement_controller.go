// internal/controller/engagement_controller.go
package controller

import (
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"strings"

	appErrors "github.com/gamedia/editorial-backend/internal/errors"
	"github.com/gamedia/editorial-backend/internal/model"
	"github.com/gamedia/editorial-backend/internal/service"
)

type EngagementController struct {
	NewsletterService *service.NewsletterService
	ContactService    *service.ContactService
}

func (c *EngagementController) Subscribe(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email  string `json:"email"`
		Source string `json:"source"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	if !validEmail(body.Email) {
		http.Error(w, "invalid email", http.StatusBadRequest)
		return
	}

	sub, err := c.NewsletterService.Subscribe(r.Context(), body.Email, clientIP(r), body.Source)
	if err != nil {
		http.Error(w, "failed to subscribe: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"email":  sub.Email,
		"status": sub.Status,
	})
}

func (c *EngagementController) Unsubscribe(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}

	if err := c.NewsletterService.Unsubscribe(r.Context(), body.Email); err != nil {
		var notFound *appErrors.ErrSubscriptionNotFound
		if errors.As(err, &notFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, "failed to unsubscribe: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"email":  strings.ToLower(strings.TrimSpace(body.Email)),
		"status": model.SubscriptionUnsubscribed,
	})
}

func (c *EngagementController) SubscriptionStats(w http.ResponseWriter, r *http.Request) {
	stats, err := c.NewsletterService.Stats(r.Context())
	if err != nil {
		http.Error(w, "failed to fetch stats: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(stats)
}

func (c *EngagementController) SubmitContact(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name    string `json:"name"`
		Email   string `json:"email"`
		Subject string `json:"subject"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	if body.Name == "" || body.Subject == "" || body.Message == "" {
		http.Error(w, "name, subject and message are required", http.StatusBadRequest)
		return
	}
	if !validEmail(body.Email) {
		http.Error(w, "invalid email", http.StatusBadRequest)
		return
	}

	msg := &model.ContactMessage{
		Name:      body.Name,
		Email:     strings.ToLower(strings.TrimSpace(body.Email)),
		Subject:   body.Subject,
		Message:   body.Message,
		IPAddress: clientIP(r),
	}
	if err := c.ContactService.Submit(r.Context(), msg); err != nil {
		http.Error(w, "failed to submit message: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"id":     msg.ID,
		"status": msg.Status,
	})
}

func validEmail(email string) bool {
	email = strings.TrimSpace(email)
	at := strings.Index(email, "@")
	return at > 0 && strings.Contains(email[at:], ".")
}

func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		return strings.TrimSpace(strings.Split(fwd, ",")[0])
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
