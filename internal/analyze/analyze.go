// Package analyze turns a month of chat-log rows into the statistics
// behind a monthly operations report: answer quality, question
// categories, language mix, session depth, media usage, traffic
// distribution, and a drill-down list of unanswered questions.
package analyze

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/gbase-tools/chateval/internal/category"
	"github.com/gbase-tools/chateval/internal/classify"
	"github.com/gbase-tools/chateval/internal/models"
)

var ErrNoRows = errors.New("analyze: no log rows")

const (
	ErrorTypeInfoMissing  = "情報なし"
	ErrorTypeSearchFailed = "検索失敗"
	ErrorTypeReconfirm    = "再確認"
)

// infoMissingKeywords marks answers where the bot stated outright that
// it has no information. searchFailedMarkers catch softer retrieval
// misses; they are checked second because they are substrings of several
// info-missing phrasings.
var (
	infoMissingKeywords = []string{
		"見つかりませんでした",
		"情報が見つかりません",
		"お答えできません",
		"一致する情報は見つかりませんでした",
	}
	searchFailedMarkers = []string{"該当する", "見つかりません", "一致しません"}
)

// KPI is the headline block of a monthly report.
type KPI struct {
	TotalMessages    int     `json:"total_messages"`
	AnsweredCount    int     `json:"answered_count"`
	UnansweredCount  int     `json:"unanswered_count"`
	GoodFeedback     int     `json:"good_feedback"`
	BadFeedback      int     `json:"bad_feedback"`
	FeedbackCount    int     `json:"feedback_count"`
	NormalAnswerRate float64 `json:"normal_answer_rate"`
	UnansweredRate   float64 `json:"unanswered_rate"`
	GoodRate         float64 `json:"good_rate"`
	FeedbackRate     float64 `json:"feedback_rate"`
}

type DayCount struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

type CategoryCount struct {
	Name    string  `json:"name"`
	Count   int     `json:"count"`
	Percent float64 `json:"percent"`
}

// SessionDepth buckets chat sessions by how many messages they hold.
type SessionDepth struct {
	One      int `json:"one"`
	Two      int `json:"two"`
	Three    int `json:"three"`
	FourPlus int `json:"four_plus"`
}

type ErrorTypeCounts struct {
	InfoMissing  int `json:"info_nashi"`
	SearchFailed int `json:"search_fail"`
	Reconfirm    int `json:"reconfirm"`
}

// UnansweredRow is one drill-down entry. Question and answer text is
// truncated for storage.
type UnansweredRow struct {
	Timestamp string `json:"timestamp"`
	ErrorType string `json:"error_type"`
	Question  string `json:"question"`
	Answer    string `json:"answer"`
}

type MonthlyReport struct {
	Client    string `json:"client"`
	Period    string `json:"period"`
	YearMonth string `json:"year_month"`

	KPI KPI `json:"kpi"`

	Daily        []DayCount `json:"daily"`
	DailyAverage float64    `json:"daily_average"`
	BusiestDay   DayCount   `json:"busiest_day"`
	QuietestDay  DayCount   `json:"quietest_day"`
	// Monday first, matching the reporting convention.
	Weekday [7]int `json:"weekday_counts"`
	// Buckets: 0-6, 6-9, 9-12, 12-15, 15-18, 18-21, 21-24.
	HourBuckets [7]int `json:"hour_buckets"`

	Categories         []CategoryCount `json:"categories"`
	SessionDepth       SessionDepth    `json:"session_depth"`
	Languages          map[string]int  `json:"languages"`
	ForeignLanguagePct float64         `json:"foreign_language_pct"`
	Media              map[string]int  `json:"media"`

	ErrorTypes ErrorTypeCounts `json:"error_types"`
	Unanswered []UnansweredRow `json:"unanswered"`

	UniqueUsers       int     `json:"unique_users"`
	HumanTransferRate float64 `json:"human_transfer_rate"`
}

// Analyzer runs the log-analysis pass. The classifier should carry the
// analysis threshold, which is stricter than the evaluation one because
// production answers are longer than test-bench fillers.
type Analyzer struct {
	classifier *classify.Classifier
	categories *category.Classifier
	logger     *zerolog.Logger
}

func New(classifier *classify.Classifier, categories *category.Classifier, logger *zerolog.Logger) *Analyzer {
	return &Analyzer{
		classifier: classifier,
		categories: categories,
		logger:     logger,
	}
}

var weekdayNamesJA = [7]string{"月", "火", "水", "木", "金", "土", "日"}

// mondayIndex converts Go's Sunday-first weekday to Monday-first.
func mondayIndex(wd time.Weekday) int {
	return (int(wd) + 6) % 7
}

// Analyze computes the full monthly report over rows from a single
// calendar month. Rows carrying a zero timestamp are dropped up front.
func (a *Analyzer) Analyze(client, period string, rows []models.LogRow) (*MonthlyReport, error) {
	kept := make([]models.LogRow, 0, len(rows))
	for _, row := range rows {
		if !row.Timestamp.IsZero() {
			kept = append(kept, row)
		}
	}
	if len(kept) == 0 {
		return nil, ErrNoRows
	}
	if dropped := len(rows) - len(kept); dropped > 0 {
		a.logger.Warn().Int("dropped", dropped).Msg("rows without timestamps excluded from analysis")
	}

	report := &MonthlyReport{
		Client:    client,
		Period:    period,
		YearMonth: kept[0].Timestamp.Format("2006-01"),
		Languages: make(map[string]int),
		Media:     make(map[string]int),
	}

	total := len(kept)
	report.KPI.TotalMessages = total

	categoryCounts := make(map[string]int)
	sessionSizes := make(map[string]int)
	users := make(map[string]struct{})
	dayCounts := make(map[int]int)
	transferred := 0
	foreign := 0

	for _, row := range kept {
		outcome := a.classifier.Classify(row.Answer)
		if outcome == models.OutcomeAnswered {
			report.KPI.AnsweredCount++
		} else {
			report.KPI.UnansweredCount++
			errType := classifyError(row.Answer)
			switch errType {
			case ErrorTypeInfoMissing:
				report.ErrorTypes.InfoMissing++
			case ErrorTypeSearchFailed:
				report.ErrorTypes.SearchFailed++
			case ErrorTypeReconfirm:
				report.ErrorTypes.Reconfirm++
			}
			report.Unanswered = append(report.Unanswered, UnansweredRow{
				Timestamp: row.Timestamp.Format("2006-01-02 15:04:05"),
				ErrorType: errType,
				Question:  truncate(row.Question, 100),
				Answer:    truncate(row.Answer, 150),
			})
		}

		switch row.Feedback {
		case models.FeedbackGood:
			report.KPI.GoodFeedback++
		case models.FeedbackBad:
			report.KPI.BadFeedback++
		}

		categoryCounts[a.categories.Categorize(row.Question)]++

		lang := DetectLanguage(row.Question)
		report.Languages[lang]++
		if lang == LangEnglish || lang == LangChinese || lang == LangKorean {
			foreign++
		}

		report.Media[DetectMediaType(row.Answer)]++

		if row.SessionID != "" {
			sessionSizes[row.SessionID]++
		}
		if row.UserID != "" {
			users[row.UserID] = struct{}{}
		}
		if row.Transferred {
			transferred++
		}

		dayCounts[row.Timestamp.Day()]++
		report.Weekday[mondayIndex(row.Timestamp.Weekday())]++
		report.HourBuckets[hourBucket(row.Timestamp.Hour())]++
	}

	report.KPI.FeedbackCount = report.KPI.GoodFeedback + report.KPI.BadFeedback
	report.KPI.NormalAnswerRate = percent(report.KPI.AnsweredCount, total)
	report.KPI.UnansweredRate = percent(report.KPI.UnansweredCount, total)
	report.KPI.GoodRate = percent(report.KPI.GoodFeedback, report.KPI.FeedbackCount)
	report.KPI.FeedbackRate = percent(report.KPI.FeedbackCount, total)

	for _, name := range a.categories.Names() {
		count := categoryCounts[name]
		report.Categories = append(report.Categories, CategoryCount{
			Name:    name,
			Count:   count,
			Percent: percent(count, total),
		})
	}

	for _, size := range sessionSizes {
		switch {
		case size == 1:
			report.SessionDepth.One++
		case size == 2:
			report.SessionDepth.Two++
		case size == 3:
			report.SessionDepth.Three++
		default:
			report.SessionDepth.FourPlus++
		}
	}

	report.ForeignLanguagePct = percent(foreign, total)
	report.UniqueUsers = len(users)
	report.HumanTransferRate = percent(transferred, total)

	a.fillDaily(report, kept[0].Timestamp, dayCounts)

	a.logger.Info().
		Str("client", client).
		Str("period", period).
		Int("rows", total).
		Float64("answer_rate", report.KPI.NormalAnswerRate).
		Msg("monthly analysis complete")

	return report, nil
}

// fillDaily builds the per-day series from the first to the last day
// seen in the data, zero-filling gaps, and picks the busiest and
// quietest days.
func (a *Analyzer) fillDaily(report *MonthlyReport, ref time.Time, dayCounts map[int]int) {
	minDay, maxDay := 0, 0
	for day := range dayCounts {
		if minDay == 0 || day < minDay {
			minDay = day
		}
		if day > maxDay {
			maxDay = day
		}
	}

	year, month := ref.Year(), ref.Month()
	for day := minDay; day <= maxDay; day++ {
		date := time.Date(year, month, day, 0, 0, 0, 0, ref.Location())
		label := fmt.Sprintf("%d/%d(%s)", int(month), day, weekdayNamesJA[mondayIndex(date.Weekday())])
		count, active := dayCounts[day]
		report.Daily = append(report.Daily, DayCount{Label: label, Count: count})

		// Zero-filled gap days chart as zero but never rank as the
		// quietest day.
		if !active {
			continue
		}
		if report.BusiestDay.Label == "" || count > report.BusiestDay.Count {
			report.BusiestDay = DayCount{Label: fmt.Sprintf("%d/%d", int(month), day), Count: count}
		}
		if report.QuietestDay.Label == "" || count < report.QuietestDay.Count {
			report.QuietestDay = DayCount{Label: fmt.Sprintf("%d/%d", int(month), day), Count: count}
		}
	}

	// Days with traffic, not span days: a quiet gap must not drag the
	// average down.
	if activeDays := len(dayCounts); activeDays > 0 {
		report.DailyAverage = float64(report.KPI.TotalMessages) / float64(activeDays)
	}
}

// classifyError sub-types an unanswered row for the error breakdown.
func classifyError(answer string) string {
	if strings.TrimSpace(answer) == "" {
		return ErrorTypeInfoMissing
	}
	for _, kw := range infoMissingKeywords {
		if strings.Contains(answer, kw) {
			return ErrorTypeInfoMissing
		}
	}
	for _, marker := range searchFailedMarkers {
		if strings.Contains(answer, marker) {
			return ErrorTypeSearchFailed
		}
	}
	return ErrorTypeReconfirm
}

func hourBucket(hour int) int {
	switch {
	case hour < 6:
		return 0
	case hour < 9:
		return 1
	case hour < 12:
		return 2
	case hour < 15:
		return 3
	case hour < 18:
		return 4
	case hour < 21:
		return 5
	default:
		return 6
	}
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}

func percent(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) / float64(total) * 100
}
