package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/nikolayk812/storefront/internal/apperr"
	"github.com/nikolayk812/storefront/internal/logger"
)

type successEnvelope struct {
	Data any `json:"data"`
}

type errorEnvelope struct {
	Error apiError `json:"error"`
}

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

func writeSuccess(w http.ResponseWriter, data any) {
	writeSuccessStatus(w, http.StatusOK, data)
}

func writeSuccessStatus(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, successEnvelope{Data: data})
}

// writeError renders err by its application code. Internal errors are logged
// and replaced by the public message.
func writeError(ctx context.Context, log *logger.Logger, w http.ResponseWriter, err error) {
	if err == nil {
		err = errors.New("unknown error")
	}

	typed := apperr.As(err)
	if typed == nil {
		typed = apperr.Wrap(apperr.CodeInternal, err, "unexpected error")
	}

	meta := apperr.MetadataFor(typed.Code())

	msg := meta.PublicMessage
	switch typed.Code() {
	case apperr.CodeValidation,
		apperr.CodeUnauthorized,
		apperr.CodeForbidden,
		apperr.CodeNotFound,
		apperr.CodeConflict:
		if m := typed.Message(); m != "" {
			msg = m
		}
	}

	payload := errorEnvelope{
		Error: apiError{
			Code:    string(typed.Code()),
			Message: msg,
		},
	}
	if meta.DetailsAllowed {
		payload.Error.Details = typed.Details()
	}

	if log != nil {
		ctx = log.WithField(ctx, "error_code", string(typed.Code()))
		if meta.HTTPStatus >= http.StatusInternalServerError {
			log.Error(ctx, "request.error", err)
		} else {
			log.Debug(log.WithField(ctx, "error", err.Error()), "request.rejected")
		}
	}

	writeJSON(w, meta.HTTPStatus, payload)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
