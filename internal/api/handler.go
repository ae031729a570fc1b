package api

import (
	"errors"
	"net/http"

	"github.com/emicklei/go-restful/v3"
	"github.com/rs/zerolog"

	"github.com/gbase-tools/chateval/internal/aggregate"
	"github.com/gbase-tools/chateval/internal/api/middleware"
	"github.com/gbase-tools/chateval/internal/category"
	"github.com/gbase-tools/chateval/internal/classify"
	"github.com/gbase-tools/chateval/internal/models"
)

type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// ClassifyRequest carries one bot reply, optionally with the question
// that produced it for category assignment.
type ClassifyRequest struct {
	Reply    string `json:"reply"`
	Question string `json:"question,omitempty"`
}

type ClassifyResponse struct {
	Outcome     models.Outcome `json:"outcome"`
	RAGSuccess  bool           `json:"rag_success"`
	Category    string         `json:"category,omitempty"`
	Subcategory string         `json:"subcategory,omitempty"`
}

type SummarizeRequest struct {
	Results []models.ClassifiedCase `json:"results"`
}

type Handler struct {
	classifier *classify.Classifier
	categories *category.Classifier
	logger     *zerolog.Logger
}

func NewHandler(classifier *classify.Classifier, categories *category.Classifier, logger *zerolog.Logger) *Handler {
	return &Handler{
		classifier: classifier,
		categories: categories,
		logger:     logger,
	}
}

// POST /api/v1/classify
// Body: ClassifyRequest
// Returns: ClassifyResponse
func (h *Handler) Classify(req *restful.Request, resp *restful.Response) {
	var classifyReq ClassifyRequest
	if err := req.ReadEntity(&classifyReq); err != nil {
		h.logger.Error().Err(err).Msg("Failed to parse request body")
		middleware.HandleError(resp, err, http.StatusBadRequest)
		return
	}

	outcome := h.classifier.Classify(classifyReq.Reply)

	result := ClassifyResponse{
		Outcome:    outcome,
		RAGSuccess: outcome.RAGSuccess(),
	}
	if classifyReq.Question != "" {
		result.Category = h.categories.Categorize(classifyReq.Question)
		result.Subcategory = h.categories.Subcategorize(classifyReq.Question)
	}

	h.logger.Info().
		Str("outcome", string(outcome)).
		Str("category", result.Category).
		Msg("reply classified")

	resp.WriteHeaderAndEntity(http.StatusOK, result)
}

// POST /api/v1/summarize
// Body: SummarizeRequest
// Returns: models.AggregateSummary
func (h *Handler) Summarize(req *restful.Request, resp *restful.Response) {
	var sumReq SummarizeRequest
	if err := req.ReadEntity(&sumReq); err != nil {
		h.logger.Error().Err(err).Msg("Failed to parse request body")
		middleware.HandleError(resp, err, http.StatusBadRequest)
		return
	}

	if len(sumReq.Results) == 0 {
		middleware.HandleError(resp, errors.New("results must not be empty"), http.StatusBadRequest)
		return
	}
	for i, rec := range sumReq.Results {
		if !rec.Outcome.Valid() {
			h.logger.Error().Int("index", i).Str("outcome", string(rec.Outcome)).Msg("invalid outcome in request")
			middleware.HandleError(resp, errors.New("invalid outcome in results"), http.StatusBadRequest)
			return
		}
	}

	summary := aggregate.Summarize(sumReq.Results)

	h.logger.Info().
		Int("records", summary.Total).
		Float64("answer_rate", summary.AnswerRate).
		Msg("summary computed")

	resp.WriteHeaderAndEntity(http.StatusOK, summary)
}

// Health handler GET /api/v1/health
func (h *Handler) Health(req *restful.Request, resp *restful.Response) {
	resp.WriteHeaderAndEntity(http.StatusOK, HealthResponse{
		Status:  "ok",
		Version: "1.0.0",
	})
}
