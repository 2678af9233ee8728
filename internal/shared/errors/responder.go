package errors

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Responder sends APIError responses.
type Responder struct {
	// Logger receives the cause of errors answered with ErrInternal.
	Logger *slog.Logger
}

// NewResponder creates a responder that logs unexpected failures to logger.
func NewResponder(logger *slog.Logger) *Responder {
	return &Responder{Logger: logger}
}

// DefaultResponder logs through slog's default logger.
var DefaultResponder = NewResponder(nil)

// Respond writes the error body with its status.
func (r *Responder) Respond(c *gin.Context, apiErr APIError) {
	c.JSON(apiErr.Status, apiErr)
}

// RespondError sends err as-is when it is an APIError, otherwise as a 500.
func (r *Responder) RespondError(c *gin.Context, err error) {
	var apiErr APIError
	if errors.As(err, &apiErr) {
		r.Respond(c, apiErr)
		return
	}
	r.logger().LogAttrs(c.Request.Context(), slog.LevelError, "unhandled request error",
		slog.String("path", c.Request.URL.Path),
		slog.String("error", err.Error()))
	r.Respond(c, ErrInternal)
}

// AbortWithError responds and stops the handler chain.
func (r *Responder) AbortWithError(c *gin.Context, err error) {
	r.RespondError(c, err)
	c.Abort()
}

func (r *Responder) logger() *slog.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return slog.Default()
}

// Respond is a convenience function using the default responder.
func Respond(c *gin.Context, apiErr APIError) {
	DefaultResponder.Respond(c, apiErr)
}

// RespondError is a convenience function using the default responder.
func RespondError(c *gin.Context, err error) {
	DefaultResponder.RespondError(c, err)
}

// ErrorMapper maps domain/application errors to APIError.
type ErrorMapper func(err error) (APIError, bool)

// ChainedResponder supports custom error mapping.
type ChainedResponder struct {
	*Responder
	mappers []ErrorMapper
}

// NewChainedResponder creates a responder with custom error mappers.
func NewChainedResponder(logger *slog.Logger, mappers ...ErrorMapper) *ChainedResponder {
	return &ChainedResponder{
		Responder: NewResponder(logger),
		mappers:   mappers,
	}
}

// AddMapper adds an error mapper to the chain.
func (r *ChainedResponder) AddMapper(mapper ErrorMapper) {
	r.mappers = append(r.mappers, mapper)
}

// RespondError tries each mapper before falling back to default handling.
func (r *ChainedResponder) RespondError(c *gin.Context, err error) {
	for _, mapper := range r.mappers {
		if apiErr, ok := mapper(err); ok {
			r.Respond(c, apiErr)
			return
		}
	}
	r.Responder.RespondError(c, err)
}

// HTTPStatusFromError extracts HTTP status from an error if possible.
func HTTPStatusFromError(err error) int {
	var apiErr APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return http.StatusInternalServerError
}
