package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/reagan13/backend-itservice/internal/domain"
	accountsvc "github.com/reagan13/backend-itservice/internal/service/account"
)

type errorBody struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}

type errorResponse struct {
	Error errorBody `json:"error"`
}

// writeError maps domain error kinds to HTTP statuses. Internal detail is
// only exposed when diagnostics mode is on.
func writeError(c *gin.Context, diagnostics bool, err error) {
	status := http.StatusInternalServerError
	body := errorBody{Kind: "internal", Message: "internal error"}

	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		status = http.StatusBadRequest
		body = errorBody{Kind: "invalid_input", Message: err.Error()}
	case errors.Is(err, domain.ErrNotFound):
		status = http.StatusNotFound
		body = errorBody{Kind: "not_found", Message: err.Error()}
	case errors.Is(err, domain.ErrAlreadyExists):
		status = http.StatusConflict
		body = errorBody{Kind: "conflict", Message: err.Error()}
	case errors.Is(err, domain.ErrUnavailable):
		status = http.StatusServiceUnavailable
		body = errorBody{Kind: "unavailable", Message: "service unavailable"}
	case errors.Is(err, accountsvc.ErrInvalidCredentials), errors.Is(err, accountsvc.ErrInvalidToken):
		status = http.StatusUnauthorized
		body = errorBody{Kind: "unauthorized", Message: err.Error()}
	}

	if diagnostics && status >= http.StatusInternalServerError {
		body.Detail = err.Error()
	}
	c.JSON(status, errorResponse{Error: body})
}

func writeBindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, errorResponse{Error: errorBody{
		Kind:    "invalid_input",
		Message: "malformed request: " + err.Error(),
	}})
}
