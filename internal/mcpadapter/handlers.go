package mcpadapter

import (
	"context"
	"errors"
	"unicode/utf8"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/gbase-tools/chateval/internal/aggregate"
	"github.com/gbase-tools/chateval/internal/category"
	"github.com/gbase-tools/chateval/internal/classify"
	"github.com/gbase-tools/chateval/internal/models"
)

// ClassifyInput is the MCP tool input schema (matches HTTP API field names).
type ClassifyInput struct {
	Reply    string `json:"reply" jsonschema:"bot reply text to classify"`
	Question string `json:"question,omitempty" jsonschema:"optional question that produced the reply, for category assignment"`
}

// ClassifyOutput carries the outcome plus the substantive-content length
// after boilerplate stripping, so a caller can see how close a reply was
// to the filler threshold.
type ClassifyOutput struct {
	Outcome       models.Outcome `json:"outcome"`
	RAGSuccess    bool           `json:"rag_success"`
	ContentLength int            `json:"content_length"`
	Category      string         `json:"category,omitempty"`
	Subcategory   string         `json:"subcategory,omitempty"`
}

// SummarizeInput is the MCP tool input schema for result aggregation.
type SummarizeInput struct {
	Results []models.ClassifiedCase `json:"results" jsonschema:"classified case records to aggregate"`
}

// NewClassifyHandler returns a tool handler over the given classifiers.
// Pass the returned function to mcp.AddTool.
func NewClassifyHandler(classifier *classify.Classifier, categories *category.Classifier) func(context.Context, *mcp.CallToolRequest, ClassifyInput) (*mcp.CallToolResult, ClassifyOutput, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input ClassifyInput) (*mcp.CallToolResult, ClassifyOutput, error) {
		outcome := classifier.Classify(input.Reply)

		out := ClassifyOutput{
			Outcome:       outcome,
			RAGSuccess:    outcome.RAGSuccess(),
			ContentLength: utf8.RuneCountInString(classify.StripBoilerplate(input.Reply, classifier.FillerPhrases())),
		}
		if input.Question != "" {
			out.Category = categories.Categorize(input.Question)
			out.Subcategory = categories.Subcategorize(input.Question)
		}

		return nil, out, nil
	}
}

// NewSummarizeHandler returns a tool handler that aggregates classified
// records. Pass the returned function to mcp.AddTool.
func NewSummarizeHandler() func(context.Context, *mcp.CallToolRequest, SummarizeInput) (*mcp.CallToolResult, models.AggregateSummary, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input SummarizeInput) (*mcp.CallToolResult, models.AggregateSummary, error) {
		if len(input.Results) == 0 {
			return nil, models.AggregateSummary{}, errors.New("results must not be empty")
		}
		for _, rec := range input.Results {
			if !rec.Outcome.Valid() {
				return nil, models.AggregateSummary{}, errors.New("invalid outcome in results")
			}
		}
		return nil, aggregate.Summarize(input.Results), nil
	}
}
