package api

import (
	restfulspec "github.com/emicklei/go-restful-openapi/v2"
	"github.com/emicklei/go-restful/v3"

	"github.com/gbase-tools/chateval/internal/api/middleware"
	"github.com/gbase-tools/chateval/internal/models"
)

func RegisterRoutes(container *restful.Container, handler *Handler) {
	ws := new(restful.WebService)

	ws.
		Path("/api/v1").
		Consumes(restful.MIME_JSON).
		Produces(restful.MIME_JSON)

	// Health endpoint
	ws.
		Route(ws.GET("health").
			To(handler.Health).
			Doc("Health check").
			Metadata(restfulspec.KeyOpenAPITags, []string{"health"}).
			Writes(HealthResponse{}).
			Returns(200, "OK", HealthResponse{}))

	ws.
		Route(ws.POST("/classify").
			To(handler.Classify).
			Doc("Classify one bot reply").
			Metadata(restfulspec.KeyOpenAPITags, []string{"classify"}).
			Reads(ClassifyRequest{}).
			Writes(ClassifyResponse{}).
			Returns(200, "OK", ClassifyResponse{}).
			Returns(400, "Bad Request", middleware.ErrorResponse{}).
			Returns(500, "Internal Server Error", middleware.ErrorResponse{}))

	ws.
		Route(ws.POST("/summarize").
			To(handler.Summarize).
			Doc("Aggregate classified records into a summary").
			Metadata(restfulspec.KeyOpenAPITags, []string{"summarize"}).
			Reads(SummarizeRequest{}).
			Writes(models.AggregateSummary{}).
			Returns(200, "OK", models.AggregateSummary{}).
			Returns(400, "Bad Request", middleware.ErrorResponse{}).
			Returns(500, "Internal Server Error", middleware.ErrorResponse{}))

	container.Add(ws)
}
