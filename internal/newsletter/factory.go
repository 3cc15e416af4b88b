// internal/newsletter/factory.go
package newsletter

import "github.com/gamedia/editorial-backend/internal/config"

// FromConfig builds the configured provider once, at process start. The
// campaign and transactional capabilities are nil when the active provider
// does not offer them (Mailchimp).
func FromConfig(cfg *config.Config) (Provider, CampaignSender, TransactionalSender) {
	if cfg.NewsletterProvider == "mailchimp" {
		return NewMailchimpClient(cfg.MailchimpAPIKey, cfg.MailchimpListID), nil, nil
	}

	brevo := NewBrevoClient(cfg.BrevoAPIKey, cfg.BrevoListID, cfg.SenderName, cfg.SenderEmail)
	return brevo, brevo, brevo
}
