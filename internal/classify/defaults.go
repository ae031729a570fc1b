package classify

// Default thresholds for the two call sites. The evaluation harness is
// stricter because test replies are short by construction; the log
// analyzer sees fuller production answers.
const (
	DefaultEvalThreshold    = 5
	DefaultAnalyzeThreshold = 20
)

// DefaultErrorPatterns are system-error phrases observed in production
// replies. Matched case-insensitively.
var DefaultErrorPatterns = []string{
	"エラーが発生",
	"システムエラー",
	"障害が発生",
	"不具合が発生",
	"internal server error",
	"internal error",
	"something went wrong",
	"an error occurred",
}

// DefaultNotFoundPatterns are "could not be found" style phrases.
var DefaultNotFoundPatterns = []string{
	"見つかりませんでした",
	"見つけることができませんでした",
	"情報が見つかりません",
	"該当する情報はありません",
	"該当する情報がありません",
	"該当する情報はございません",
	"一致する情報はありません",
	"一致する情報は見つかりませんでした",
	"お探しの情報はありません",
	"回答できません",
	"お答えすることができません",
	"お答えすることが難しい",
	"お答えできません",
	"対応しておりません",
}

// DefaultFillerPhrases are scripted content-free lead-ins a bot may
// prepend before (or instead of) substantive content.
var DefaultFillerPhrases = []string{
	"お調べいたします",
	"お探しいたします",
	"確認いたします",
	"お待ちください",
	"少々お待ち",
}

// DefaultEvalRules returns the rule set used by the evaluation harness.
func DefaultEvalRules() Rules {
	return defaultRules(DefaultEvalThreshold)
}

// DefaultAnalyzeRules returns the rule set used by the log analyzer.
func DefaultAnalyzeRules() Rules {
	return defaultRules(DefaultAnalyzeThreshold)
}

func defaultRules(threshold int) Rules {
	return Rules{
		ErrorPatterns:    append([]string(nil), DefaultErrorPatterns...),
		NotFoundPatterns: append([]string(nil), DefaultNotFoundPatterns...),
		FillerPhrases:    append([]string(nil), DefaultFillerPhrases...),
		FillerThreshold:  threshold,
	}
}
