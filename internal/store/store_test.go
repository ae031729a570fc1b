package store

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/gbase-tools/chateval/internal/models"
)

func sampleSet() *models.CaseSet {
	ts := time.Date(2026, 2, 20, 10, 30, 0, 0, time.UTC)
	return &models.CaseSet{
		Meta: models.Meta{
			BotID:      "fa228b57-59e1-447b-87e2-02c494195961",
			CasesFile:  "cases.yaml",
			Timestamp:  ts,
			TotalCases: 2,
		},
		Results: []models.ClassifiedCase{
			{
				Index:     1,
				Category:  "hours",
				Question:  "営業時間?",
				Answer:    "10:00〜20:00です。",
				Outcome:   models.OutcomeAnswered,
				Source:    models.SourceRAG,
				Elapsed:   1500 * time.Millisecond,
				Timestamp: ts,
			},
			{
				Index:        2,
				Category:     "shops",
				Question:     "ペット同伴は可能ですか",
				Outcome:      models.OutcomeError,
				Source:       models.SourceError,
				FailureCause: "timeout",
				Timestamp:    ts,
			},
		},
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results", "eval.json")
	original := sampleSet()

	if err := Save(path, original); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if !reflect.DeepEqual(original, loaded) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", loaded, original)
	}

	// Record order is part of the artifact.
	for i, c := range loaded.Results {
		if c.Index != i+1 {
			t.Errorf("record %d has index %d", i, c.Index)
		}
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoad_MalformedJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected decode error")
	}
}

func TestLoad_SchemaViolationsAreFatal(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*models.CaseSet)
	}{
		{"missing bot id", func(s *models.CaseSet) { s.Meta.BotID = "" }},
		{"count mismatch", func(s *models.CaseSet) { s.Meta.TotalCases = 99 }},
		{"missing question", func(s *models.CaseSet) { s.Results[0].Question = "" }},
		{"invalid outcome", func(s *models.CaseSet) { s.Results[1].Outcome = "maybe" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set := sampleSet()
			tt.mutate(set)

			path := filepath.Join(t.TempDir(), "set.json")
			if err := Save(path, set); err != nil {
				t.Fatalf("Save failed: %v", err)
			}
			if _, err := Load(path); err == nil {
				t.Error("expected validation error, got none")
			}
		})
	}
}
