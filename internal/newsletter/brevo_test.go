package newsletter_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gamedia/editorial-backend/internal/newsletter"
)

func newStubBrevo(t *testing.T, handler http.HandlerFunc) *newsletter.BrevoClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return newsletter.NewBrevoClientWithBaseURL(srv.URL, "test-key", "5", "GAM", "gam@example.com")
}

func TestBrevoSubscribe(t *testing.T) {
	var gotPayload map[string]any
	client := newStubBrevo(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/contacts" || r.Method != http.MethodPost {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if r.Header.Get("api-key") != "test-key" {
			t.Errorf("missing api-key header")
		}
		json.NewDecoder(r.Body).Decode(&gotPayload)
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]any{"id": 987})
	})

	result, err := client.Subscribe(context.Background(), "reader@example.com", "Awa", "Ba")
	if err != nil {
		t.Fatalf("Subscribe: %v", err)
	}
	if result.ID != "987" {
		t.Errorf("expected external id 987, got %q", result.ID)
	}
	if result.AlreadySubscribed {
		t.Error("fresh contact should not be flagged as already subscribed")
	}
	if gotPayload["updateEnabled"] != true {
		t.Error("updateEnabled must be set")
	}
	attrs, _ := gotPayload["attributes"].(map[string]any)
	if attrs["PRENOM"] != "Awa" || attrs["NOM"] != "Ba" {
		t.Errorf("unexpected attributes: %v", attrs)
	}
}

func TestBrevoSubscribeDuplicate(t *testing.T) {
	client := newStubBrevo(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"code":"duplicate_parameter","message":"Contact already exist"}`))
	})

	result, err := client.Subscribe(context.Background(), "reader@example.com", "", "")
	if err != nil {
		t.Fatalf("duplicate contact must not be an error: %v", err)
	}
	if !result.AlreadySubscribed {
		t.Error("expected AlreadySubscribed")
	}
}

func TestBrevoSubscribeServerError(t *testing.T) {
	client := newStubBrevo(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	if _, err := client.Subscribe(context.Background(), "reader@example.com", "", ""); err == nil {
		t.Fatal("expected an error on status 500")
	}
}

func TestBrevoGetSubscriberNotFound(t *testing.T) {
	client := newStubBrevo(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	sub, err := client.GetSubscriber(context.Background(), "ghost@example.com")
	if err != nil {
		t.Fatalf("unknown contact must not be an error: %v", err)
	}
	if sub != nil {
		t.Errorf("expected nil subscriber, got %v", sub)
	}
}

func TestBrevoCreateAndSendCampaign(t *testing.T) {
	var createPayload map[string]any
	client := newStubBrevo(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/emailCampaigns":
			json.NewDecoder(r.Body).Decode(&createPayload)
			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode(map[string]any{"id": 321})
		case "/emailCampaigns/321/sendNow":
			w.WriteHeader(http.StatusNoContent)
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	})

	id, err := client.CreateCampaign(context.Background(), "Nouvel article: Titre", "\U0001F195 Titre", "<html></html>")
	if err != nil {
		t.Fatalf("CreateCampaign: %v", err)
	}
	if id != "321" {
		t.Errorf("expected campaign id 321, got %q", id)
	}
	if createPayload["type"] != "classic" {
		t.Errorf("campaign type must be classic, got %v", createPayload["type"])
	}
	recipients, _ := createPayload["recipients"].(map[string]any)
	listIDs, _ := recipients["listIds"].([]any)
	if len(listIDs) != 1 || listIDs[0] != float64(5) {
		t.Errorf("campaign must target the configured list, got %v", listIDs)
	}

	if err := client.SendCampaign(context.Background(), id); err != nil {
		t.Fatalf("SendCampaign: %v", err)
	}
}

func TestBrevoCreateCampaignWithoutListID(t *testing.T) {
	client := newsletter.NewBrevoClientWithBaseURL("http://127.0.0.1:0", "key", "", "GAM", "gam@example.com")

	_, err := client.CreateCampaign(context.Background(), "name", "subject", "<html></html>")
	if err == nil {
		t.Fatal("expected an error when no list id is configured")
	}
}

func TestBrevoSendEmail(t *testing.T) {
	var payload map[string]any
	client := newStubBrevo(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/smtp/email" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		json.NewDecoder(r.Body).Decode(&payload)
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]any{"messageId": "<msg-1@smtp-relay>"})
	})

	msgID, err := client.SendEmail(context.Background(), newsletter.TransactionalEmail{
		ToEmail:      "admin@example.com",
		ToName:       "Admin",
		Subject:      "\U0001F4E9 Contact: Question",
		HTML:         "<html></html>",
		ReplyToEmail: "reader@example.com",
		ReplyToName:  "Reader",
	})
	if err != nil {
		t.Fatalf("SendEmail: %v", err)
	}
	if msgID != "<msg-1@smtp-relay>" {
		t.Errorf("unexpected message id %q", msgID)
	}
	replyTo, _ := payload["replyTo"].(map[string]any)
	if replyTo["email"] != "reader@example.com" {
		t.Errorf("reply-to must point at the visitor, got %v", replyTo)
	}
}
