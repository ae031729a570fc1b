// Package middleware carries the container-level filters and the shared
// error envelope for the HTTP API.
package middleware

import (
	"net/http"
	"runtime/debug"
	"time"

	"github.com/emicklei/go-restful/v3"
	"github.com/rs/zerolog/log"
)

// ErrorResponse is the JSON body of every non-2xx reply.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  int    `json:"code"`
}

// HandleError writes the error envelope with the given status.
func HandleError(resp *restful.Response, err error, status int) {
	resp.WriteHeaderAndEntity(status, ErrorResponse{
		Error: err.Error(),
		Code:  status,
	})
}

// Logger logs one line per request with method, path, status and
// duration.
func Logger(req *restful.Request, resp *restful.Response, chain *restful.FilterChain) {
	start := time.Now()
	chain.ProcessFilter(req, resp)
	log.Info().
		Str("method", req.Request.Method).
		Str("path", req.Request.URL.Path).
		Int("status", resp.StatusCode()).
		Dur("elapsed", time.Since(start)).
		Msg("request handled")
}

// RecoverPanic converts a handler panic into a 500 instead of tearing
// down the connection.
func RecoverPanic(req *restful.Request, resp *restful.Response, chain *restful.FilterChain) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().
				Interface("panic", r).
				Bytes("stack", debug.Stack()).
				Str("path", req.Request.URL.Path).
				Msg("handler panicked")
			resp.WriteHeaderAndEntity(http.StatusInternalServerError, ErrorResponse{
				Error: "internal server error",
				Code:  http.StatusInternalServerError,
			})
		}
	}()
	chain.ProcessFilter(req, resp)
}
