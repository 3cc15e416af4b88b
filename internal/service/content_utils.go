// internal/service/content_utils.go
package service

import (
	"regexp"
	"strings"
)

var (
	htmlTagRe = regexp.MustCompile(`<[^>]+>`)

	youtubeWatchRe  = regexp.MustCompile(`(?:watch\?v=|youtu\.be/|embed/)([a-zA-Z0-9_-]{11})`)
	youtubeShortsRe = regexp.MustCompile(`/shorts/([a-zA-Z0-9_-]{11})`)

	slugInvalidRe  = regexp.MustCompile(`[^a-z0-9]+`)
	slugAccentRepl = strings.NewReplacer(
		"à", "a", "â", "a", "ä", "a", "é", "e", "è", "e", "ê", "e", "ë", "e",
		"î", "i", "ï", "i", "ô", "o", "ö", "o", "ù", "u", "û", "u", "ü", "u",
		"ç", "c", "œ", "oe", "æ", "ae",
	)
)

// StripTags removes HTML markup, leaving plain text.
func StripTags(html string) string {
	return htmlTagRe.ReplaceAllString(html, " ")
}

// ReadingTime estimates the reading time of an HTML body in minutes,
// rounding up and never returning less than one minute.
func ReadingTime(html string, wordsPerMinute int) int {
	if wordsPerMinute <= 0 {
		wordsPerMinute = 200
	}
	words := len(strings.Fields(StripTags(html)))
	minutes := (words + wordsPerMinute - 1) / wordsPerMinute
	if minutes < 1 {
		minutes = 1
	}
	return minutes
}

// GenerateExcerpt derives a plain-text excerpt from an HTML body,
// capped at maxLen runes.
func GenerateExcerpt(html string, maxLen int) string {
	text := strings.Join(strings.Fields(StripTags(html)), " ")
	runes := []rune(text)
	if len(runes) <= maxLen {
		return text
	}
	cut := string(runes[:maxLen])
	if i := strings.LastIndex(cut, " "); i > 0 {
		cut = cut[:i]
	}
	return cut + "..."
}

// ExtractYouTubeID pulls the 11-character video ID out of any of the usual
// YouTube URL shapes (watch, youtu.be, embed, shorts). Empty when no match.
func ExtractYouTubeID(url string) string {
	if m := youtubeWatchRe.FindStringSubmatch(url); m != nil {
		return m[1]
	}
	if m := youtubeShortsRe.FindStringSubmatch(url); m != nil {
		return m[1]
	}
	return ""
}

// YouTubeThumbnail returns the max resolution thumbnail URL for a video ID.
func YouTubeThumbnail(videoID string) string {
	if videoID == "" {
		return ""
	}
	return "https://img.youtube.com/vi/" + videoID + "/maxresdefault.jpg"
}

// Slugify builds a URL-safe slug from a title. French accents are folded to
// their ASCII equivalents before non-alphanumerics collapse to hyphens.
func Slugify(title string) string {
	s := strings.ToLower(strings.TrimSpace(title))
	s = slugAccentRepl.Replace(s)
	s = slugInvalidRe.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
