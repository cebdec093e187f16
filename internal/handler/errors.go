package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jengzang/tour-planner-go/internal/planner"
	"github.com/jengzang/tour-planner-go/internal/provider"
	"github.com/jengzang/tour-planner-go/internal/repository"
	"github.com/jengzang/tour-planner-go/internal/service"
	"github.com/jengzang/tour-planner-go/pkg/response"
)

// statusFor maps a service error to an HTTP status
func statusFor(err error) int {
	switch {
	case planner.IsNotFound(err),
		errors.Is(err, repository.ErrNotFound),
		errors.Is(err, service.ErrSessionNotFound),
		errors.Is(err, provider.ErrNotFound):
		return http.StatusNotFound
	case planner.IsValidation(err),
		errors.Is(err, service.ErrInvalidInput),
		errors.Is(err, service.ErrParentMismatch):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrInvalidCredentials), errors.Is(err, service.ErrInvalidToken):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, service.ErrUsernameTaken), errors.Is(err, repository.ErrConflict):
		return http.StatusConflict
	case provider.IsFailure(err):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// fail writes err as an envelope. message is used for server-side failures;
// client errors carry their own text.
func fail(c *gin.Context, message string, err error) {
	code := statusFor(err)
	switch code {
	case http.StatusInternalServerError, http.StatusBadGateway:
		response.Error(c, code, message, err)
	default:
		response.Error(c, code, err.Error(), err)
	}
}

func paramInt64(c *gin.Context, name string) (int64, bool) {
	v, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		response.BadRequest(c, "Invalid "+name, err)
		return 0, false
	}
	return v, true
}

func paramInt(c *gin.Context, name string) (int, bool) {
	v, err := strconv.Atoi(c.Param(name))
	if err != nil {
		response.BadRequest(c, "Invalid "+name, err)
		return 0, false
	}
	return v, true
}
