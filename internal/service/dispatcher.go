// internal/service/dispatcher.go
package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/gamedia/editorial-backend/internal/model"
	"github.com/gamedia/editorial-backend/internal/newsletter"
)

const videoDescriptionLimit = 300

// Dispatcher builds and sends the announcement campaign for one content item.
type Dispatcher interface {
	Dispatch(ctx context.Context, item model.ContentView) model.Outcome
}

// CampaignDispatcher sends publication announcements through the configured
// newsletter provider. Dispatch never returns an error: every failure mode is
// folded into the Outcome so the trigger has a single code path.
type CampaignDispatcher struct {
	Sender      newsletter.CampaignSender
	SiteName    string
	FrontendURL string
	BackendURL  string
	Logger      *zap.Logger
}

func (d *CampaignDispatcher) Dispatch(ctx context.Context, item model.ContentView) model.Outcome {
	if d.Sender == nil {
		return model.Outcome{Success: false, Error: "newsletter provider does not support campaigns"}
	}

	name, subject, html, err := d.buildCampaign(item)
	if err != nil {
		d.Logger.Error("failed to render campaign email",
			zap.String("kind", item.Kind),
			zap.Int64("content_id", item.ID),
			zap.Error(err),
		)
		return model.Outcome{Success: false, Error: err.Error()}
	}

	campaignID, err := d.Sender.CreateCampaign(ctx, name, subject, html)
	if err != nil {
		return model.Outcome{Success: false, Error: err.Error()}
	}

	if err := d.Sender.SendCampaign(ctx, campaignID); err != nil {
		return model.Outcome{Success: false, CampaignID: campaignID, Error: err.Error()}
	}

	d.Logger.Info("campaign sent",
		zap.String("kind", item.Kind),
		zap.Int64("content_id", item.ID),
		zap.String("campaign_id", campaignID),
	)
	return model.Outcome{Success: true, CampaignID: campaignID}
}

func (d *CampaignDispatcher) buildCampaign(item model.ContentView) (name, subject, html string, err error) {
	switch item.Kind {
	case model.KindVideo:
		name = "Nouvelle vidéo: " + truncateRunes(item.Title, 50)
		subject = "\U0001F4FA " + item.Title
		html, err = renderVideoEmail(videoEmailData{
			SiteName:     d.SiteName,
			Title:        item.Title,
			Description:  truncateWithEllipsis(item.Excerpt, videoDescriptionLimit),
			VideoType:    item.VideoType,
			ThumbnailURL: d.resolveMediaURL(item.ThumbnailURL),
			ContentURL:   d.contentURL(item),
			YouTubeURL:   item.YouTubeURL,
		})
	default:
		name = "Nouvel article: " + truncateRunes(item.Title, 50)
		subject = "\U0001F195 " + item.Title
		html, err = renderArticleEmail(articleEmailData{
			SiteName:     d.SiteName,
			Title:        item.Title,
			Excerpt:      item.Excerpt,
			CategoryName: item.CategoryName,
			AuthorName:   item.AuthorName,
			ImageURL:     d.resolveMediaURL(item.ThumbnailURL),
			ContentURL:   d.contentURL(item),
		})
	}
	return name, subject, html, err
}

func (d *CampaignDispatcher) contentURL(item model.ContentView) string {
	if item.Kind == model.KindVideo {
		return d.FrontendURL + "/web-tv/" + item.Slug
	}
	return d.FrontendURL + "/articles/" + item.Slug
}

// resolveMediaURL leaves absolute URLs untouched and prefixes relative media
// paths with the backend origin so they load inside email clients.
func (d *CampaignDispatcher) resolveMediaURL(url string) string {
	if url == "" {
		return ""
	}
	if strings.HasPrefix(url, "http") {
		return url
	}
	return d.BackendURL + url
}

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

// truncateWithEllipsis appends "..." only when the text was actually cut.
func truncateWithEllipsis(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
