package analyze

import "regexp"

const (
	MediaImage    = "画像含む"
	MediaTable    = "テーブル含む"
	MediaLink     = "リンク含む"
	MediaTextOnly = "テキストのみ"
)

var (
	linkMarker  = regexp.MustCompile(`https?://`)
	imageMarker = regexp.MustCompile(`!\[.*?\]\(.*?\)|<img|src=`)
	tableMarker = regexp.MustCompile(`<table|---------|\|.*\|`)
)

// DetectMediaType reports the richest media kind embedded in an answer.
// Images outrank tables outrank links: an answer with an inline image
// almost always also carries its source link.
func DetectMediaType(answer string) string {
	switch {
	case answer == "":
		return MediaTextOnly
	case imageMarker.MatchString(answer):
		return MediaImage
	case tableMarker.MatchString(answer):
		return MediaTable
	case linkMarker.MatchString(answer):
		return MediaLink
	default:
		return MediaTextOnly
	}
}
