package newsletter_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gamedia/editorial-backend/internal/newsletter"
)

func newStubMailchimp(t *testing.T, handler http.HandlerFunc) *newsletter.MailchimpClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return newsletter.NewMailchimpClientWithBaseURL(srv.URL, "key-us21", "list1")
}

func TestMailchimpSubscribe(t *testing.T) {
	client := newStubMailchimp(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/lists/list1/members" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		user, pass, ok := r.BasicAuth()
		if !ok || user != "anystring" || pass != "key-us21" {
			t.Error("expected basic auth with the API key")
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"id":"abc123","status":"subscribed"}`))
	})

	result, err := client.Subscribe(context.Background(), "reader@example.com", "", "")
	if err != nil {
		t.Fatalf("Subscribe: %v", err)
	}
	if result.ID != "abc123" {
		t.Errorf("expected member id abc123, got %q", result.ID)
	}
}

func TestMailchimpSubscribeExistingMember(t *testing.T) {
	client := newStubMailchimp(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"title":"Member Exists","detail":"reader@example.com is already a list member."}`))
	})

	result, err := client.Subscribe(context.Background(), "reader@example.com", "", "")
	if err != nil {
		t.Fatalf("existing member must not be an error: %v", err)
	}
	if !result.AlreadySubscribed {
		t.Error("expected AlreadySubscribed")
	}
}

func TestMailchimpUnsubscribeUsesEmailHash(t *testing.T) {
	// md5 of the lowercased email, per the Mailchimp member endpoint contract
	const wantPath = "/lists/list1/members/baa0f4114eafbdd39ce828d01b849ae6"

	var gotPath string
	client := newStubMailchimp(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if r.Method != http.MethodPatch {
			t.Errorf("expected PATCH, got %s", r.Method)
		}
		w.WriteHeader(http.StatusOK)
	})

	if err := client.Unsubscribe(context.Background(), "Reader@Example.com"); err != nil {
		t.Fatalf("Unsubscribe: %v", err)
	}
	if gotPath != wantPath {
		t.Errorf("path = %q, want %q", gotPath, wantPath)
	}
}

func TestMailchimpMissingDatacenter(t *testing.T) {
	client := newsletter.NewMailchimpClient("nodatacenter", "list1")

	if _, err := client.Subscribe(context.Background(), "reader@example.com", "", ""); err == nil {
		t.Fatal("expected configuration error for an API key without datacenter suffix")
	}
}
