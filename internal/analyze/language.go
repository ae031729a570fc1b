package analyze

import (
	"regexp"
	"strings"
)

// Language labels match the reporting vocabulary used downstream, so
// they are emitted in Japanese.
const (
	LangJapanese = "日本語"
	LangEnglish  = "英語"
	LangChinese  = "中国語"
	LangKorean   = "韓国語"
	LangOther    = "その他"
)

// Chinese uses the CJK ideograph block shared with Japanese, so a bare
// ideograph match is not enough. Common Mandarin function characters
// disambiguate.
const chineseFunctionChars = "的是在一不了有和个人我这上个为到"

var (
	asciiOnly = regexp.MustCompile(`^[a-zA-Z\s\d\W]+$`)
	asciiWord = regexp.MustCompile(`[a-zA-Z]{2,}`)
)

// DetectLanguage guesses the language of a question by script ranges.
// Korean wins over Japanese because Hangul never appears in Japanese
// text, and kana checks run before ideographs for the same reason.
func DetectLanguage(text string) string {
	if text == "" {
		return LangOther
	}

	hasKana := false
	hasHan := false
	for _, r := range text {
		switch {
		case r >= 0xAC00 && r <= 0xD7A3:
			return LangKorean
		case (r >= 0x3040 && r <= 0x309F) || (r >= 0x30A0 && r <= 0x30FF):
			hasKana = true
		case r >= 0x4E00 && r <= 0x9FFF:
			hasHan = true
		}
	}
	if hasKana {
		return LangJapanese
	}
	if hasHan && strings.ContainsAny(text, chineseFunctionChars) {
		return LangChinese
	}
	if asciiOnly.MatchString(text) && len(asciiWord.FindAllString(text, -1)) > 2 {
		return LangEnglish
	}

	return LangOther
}
