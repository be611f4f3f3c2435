package submission

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/gmit-kupang/sensus-jemaat/internal/formulir/models"
)

const congregantsPath = "/api/congregants"

// createResponse menerima {"id":N} maupun amplop {"status","message","data":{"id":N}}.
type createResponse struct {
	ID      *int64 `json:"id"`
	Message string `json:"message"`
	Data    *struct {
		ID *int64 `json:"id"`
	} `json:"data"`
}

func (r *createResponse) registrationID() (int64, bool) {
	if r.ID != nil {
		return *r.ID, true
	}
	if r.Data != nil && r.Data.ID != nil {
		return *r.Data.ID, true
	}
	return 0, false
}

// HTTPBackend mengirim formulir ke layanan jemaat lewat HTTP.
type HTTPBackend struct {
	httpClient *resty.Client
	logger     *zap.Logger
}

func NewHTTPBackend(baseURL string, timeout time.Duration, logger *zap.Logger) *HTTPBackend {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetRetryCount(0).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	return &HTTPBackend{httpClient: client, logger: logger}
}

func (b *HTTPBackend) CreateCongregant(ctx context.Context, f *models.FormAggregate) (int64, error) {
	var result, failure createResponse
	resp, err := b.httpClient.R().
		SetContext(ctx).
		SetBody(f).
		SetResult(&result).
		SetError(&failure).
		Post(congregantsPath)
	if err != nil {
		return 0, fmt.Errorf("POST %s: %w", congregantsPath, err)
	}

	if resp.IsError() {
		b.logger.Warn("backend jemaat menolak formulir",
			zap.Int("status_code", resp.StatusCode()),
			zap.String("message", failure.Message),
		)
		return 0, &StatusError{Code: resp.StatusCode(), Message: failure.Message}
	}

	id, ok := result.registrationID()
	if !ok {
		return 0, errors.New("respons backend tidak memuat id")
	}
	return id, nil
}

// StatusError adalah respons non-2xx dari backend.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend membalas %d %s", e.Code, http.StatusText(e.Code))
	}
	return fmt.Sprintf("backend membalas %d: %s", e.Code, e.Message)
}
