package authorizer

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/DanielPopoola/walletgate/internal/application"
	"github.com/DanielPopoola/walletgate/internal/config"
)

// Client calls the external authorization service. One bounded-timeout GET
// per transfer, no retries. Outcomes are classified into a typed decision so
// callers never match on message text.
type Client struct {
	url        string
	httpClient *http.Client
	logger     *slog.Logger
}

func NewClient(cfg config.AuthorizerConfig, logger *slog.Logger) *Client {
	return &Client{
		url: cfg.URL,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		logger: logger,
	}
}

type authorizerResponse struct {
	Data struct {
		Authorization bool `json:"authorization"`
	} `json:"data"`
}

// Authorize performs the call. Transport errors, timeouts and non-2xx
// statuses classify as unavailable; a well-formed response with a missing or
// false flag classifies as denied.
func (c *Client) Authorize(ctx context.Context) (*application.AuthorizationResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("authorization service error", "error", err)
		return &application.AuthorizationResult{
			Decision: application.AuthorizationUnavailable,
			Reason:   "failed to contact authorization service",
		}, nil
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logger.Error("failed to read authorization response", "error", err)
		return &application.AuthorizationResult{
			Decision: application.AuthorizationUnavailable,
			Reason:   "authorization service unavailable",
		}, nil
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Warn("authorization service returned non-success status",
			"status", resp.StatusCode,
		)
		return &application.AuthorizationResult{
			Decision: application.AuthorizationUnavailable,
			Reason:   "authorization service unavailable",
			Payload:  json.RawMessage(body),
		}, nil
	}

	var parsed authorizerResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		c.logger.Error("malformed authorization response", "error", err)
		return &application.AuthorizationResult{
			Decision: application.AuthorizationUnavailable,
			Reason:   "authorization service unavailable",
		}, nil
	}

	if !parsed.Data.Authorization {
		c.logger.Info("transfer authorization denied")
		return &application.AuthorizationResult{
			Decision: application.AuthorizationDenied,
			Reason:   "transfer not authorized",
			Payload:  json.RawMessage(body),
		}, nil
	}

	return &application.AuthorizationResult{
		Decision: application.AuthorizationAuthorized,
		Payload:  json.RawMessage(body),
	}, nil
}
