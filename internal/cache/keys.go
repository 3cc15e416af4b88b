package cache

import "fmt"

// Cache keys for editorial content. Lists are cached as a whole and dropped
// on any save of the matching kind.
const (
	KeyArticleList = "articles:list"
	KeyVideoList   = "videos:list"
)

func KeyArticle(slug string) string {
	return fmt.Sprintf("article:%s", slug)
}

func KeyVideo(slug string) string {
	return fmt.Sprintf("video:%s", slug)
}
