package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/zeromicro/go-zero/core/logx"

	"pricetrack-api/internal/logic"
	"pricetrack-api/internal/persistence/quotes"
	"pricetrack-api/pkg/ingest"
)

// ErrorBody is the JSON payload of every error response.
type ErrorBody struct {
	Error string `json:"error"`
}

// ErrorHandler maps logic errors onto HTTP statuses for httpx.ErrorCtx.
func ErrorHandler(ctx context.Context, err error) (int, any) {
	status := http.StatusInternalServerError
	var se *logic.StatusError
	switch {
	case errors.As(err, &se):
		status = se.Status
	case errors.Is(err, quotes.ErrAssetNotFound):
		status = http.StatusNotFound
	case errors.Is(err, ingest.ErrFatalIngestion):
		status = http.StatusBadGateway
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		status = http.StatusServiceUnavailable
	}
	if status >= http.StatusInternalServerError {
		logx.WithContext(ctx).Errorf("request failed: status=%d err=%v", status, err)
	}
	return status, ErrorBody{Error: err.Error()}
}
