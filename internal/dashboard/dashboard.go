// Package dashboard maintains the per-client dashboard-data.json that
// the reporting site reads: one entry per analyzed month, replaced in
// place when a month is re-run.
package dashboard

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/gbase-tools/chateval/internal/analyze"
)

// MonthStats is the dashboard slice of a monthly report.
type MonthStats struct {
	Period             string  `json:"period"`
	YearMonth          string  `json:"year_month"`
	TotalMessages      int     `json:"total_messages"`
	NormalAnswerRate   float64 `json:"normal_answer_rate"`
	UnansweredRate     float64 `json:"unanswered_rate"`
	GoodRatingRate     float64 `json:"good_rating_rate"`
	FeedbackRate       float64 `json:"feedback_rate"`
	DailyAverage       float64 `json:"daily_average"`
	UniqueUsers        int     `json:"unique_users"`
	HumanTransferRate  float64 `json:"human_transfer_rate"`
	ForeignLanguagePct float64 `json:"foreign_language_pct"`
	WeekdayCounts      [7]int  `json:"weekday_counts"`
	ReportFile         string  `json:"report_file,omitempty"`
}

// Data is one client's full dashboard file.
type Data struct {
	Client     string       `json:"client"`
	ClientSlug string       `json:"client_slug"`
	UpdatedAt  string       `json:"updated_at"`
	Months     []MonthStats `json:"months"`
}

// FromReport projects a monthly report onto the dashboard schema.
// Rates are rounded to one decimal, matching the site's display
// precision.
func FromReport(r *analyze.MonthlyReport) MonthStats {
	return MonthStats{
		Period:             r.Period,
		YearMonth:          r.YearMonth,
		TotalMessages:      r.KPI.TotalMessages,
		NormalAnswerRate:   round1(r.KPI.NormalAnswerRate),
		UnansweredRate:     round1(r.KPI.UnansweredRate),
		GoodRatingRate:     round1(r.KPI.GoodRate),
		FeedbackRate:       round1(r.KPI.FeedbackRate),
		DailyAverage:       round1(r.DailyAverage),
		UniqueUsers:        r.UniqueUsers,
		HumanTransferRate:  round1(r.HumanTransferRate),
		ForeignLanguagePct: round1(r.ForeignLanguagePct),
		WeekdayCounts:      r.Weekday,
		ReportFile:         fmt.Sprintf("reports/%s.html", r.YearMonth),
	}
}

// Update loads (or initializes) the client's dashboard file, replaces
// any existing entry for the same year-month, appends the new stats,
// and writes the file back atomically. It returns the file path.
func Update(siteDir, clientSlug, clientName string, stats MonthStats) (string, error) {
	clientDir := filepath.Join(siteDir, "clients", clientSlug)
	if err := os.MkdirAll(clientDir, 0o755); err != nil {
		return "", fmt.Errorf("create client dir: %w", err)
	}
	path := filepath.Join(clientDir, "dashboard-data.json")

	data := Data{Client: clientName, ClientSlug: clientSlug}
	if raw, err := os.ReadFile(path); err == nil {
		if err := json.Unmarshal(raw, &data); err != nil {
			return "", fmt.Errorf("parse existing dashboard %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return "", fmt.Errorf("read dashboard %s: %w", path, err)
	}

	months := data.Months[:0]
	for _, m := range data.Months {
		if m.YearMonth != stats.YearMonth {
			months = append(months, m)
		}
	}
	months = append(months, stats)
	sort.Slice(months, func(i, j int) bool { return months[i].YearMonth < months[j].YearMonth })

	data.Months = months
	data.Client = clientName
	data.ClientSlug = clientSlug
	data.UpdatedAt = time.Now().Format(time.RFC3339)

	out, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode dashboard: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, out, 0o644); err != nil {
		return "", fmt.Errorf("write dashboard: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return "", fmt.Errorf("replace dashboard: %w", err)
	}

	return path, nil
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
