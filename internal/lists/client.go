package lists

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"outsps/pkg/schema"
)

// Client talks to the Lists web service of one site.
type Client struct {
	config *Config
	http   *http.Client
}

// NewClient creates a new Lists client.
func NewClient(config *Config) (*Client, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	config.SetDefaults()

	return &Client{
		config: config,
		http: &http.Client{
			Timeout: config.Timeout,
		},
	}, nil
}

// AddList creates a list from template and returns the server-assigned list ID.
func (c *Client) AddList(ctx context.Context, title, description string, template schema.ListTemplate) (string, error) {
	raw, err := c.call(ctx, OpAddList, addListRequest{
		ListName:    title,
		Description: description,
		TemplateID:  int(template),
	})
	if err != nil {
		return "", err
	}
	return parseAddListResponse(raw)
}

// GetList fetches the schema of the list identified by title or GUID.
func (c *Client) GetList(ctx context.Context, listName string) (*schema.ListSchema, error) {
	raw, err := c.call(ctx, OpGetList, getListRequest{ListName: listName})
	if err != nil {
		return nil, err
	}
	return ParseGetListResponse(raw)
}

// DeleteList removes the list identified by title or GUID.
func (c *Client) DeleteList(ctx context.Context, listName string) error {
	_, err := c.call(ctx, OpDeleteList, deleteListRequest{ListName: listName})
	return err
}

// call sends one SOAP request, retrying network failures with linear backoff.
func (c *Client) call(ctx context.Context, op string, body any) ([]byte, error) {
	envelope, err := wrapEnvelope(body)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	var lastErr error
	for attempt := 1; attempt <= c.config.MaxRetries; attempt++ {
		raw, err := c.post(ctx, op, envelope)
		if err == nil {
			return raw, nil
		}
		lastErr = err

		var lErr *Error
		if !errors.As(err, &lErr) || !lErr.Retryable() {
			return nil, err
		}
		if attempt == c.config.MaxRetries {
			break
		}

		slog.Warn("Lists request failed, retrying",
			"operation", op,
			"attempt", attempt,
			"error", err.Error(),
		)

		select {
		case <-ctx.Done():
			return nil, NewTimeoutError(op, ctx.Err())
		case <-time.After(c.config.RetryBackoff * time.Duration(attempt)):
		}
	}

	return nil, fmt.Errorf("%s failed after %d attempts: %w", op, c.config.MaxRetries, lastErr)
}

// post makes a single HTTP call to the Lists endpoint.
func (c *Client) post(ctx context.Context, op, envelope string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.Endpoint(), strings.NewReader(envelope))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Content-Type", "text/xml; charset=utf-8")
	req.Header.Set("SOAPAction", soapAction(op))
	if c.config.Username != "" {
		req.SetBasicAuth(c.config.Username, c.config.Password)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	duration := time.Since(start)

	if err != nil {
		slog.Error("Lists HTTP request failed",
			"operation", op,
			"error", err.Error(),
			"duration", duration,
		)
		if isTimeout(ctx, err) {
			return nil, NewTimeoutError(op, err)
		}
		return nil, NewNetworkError(op, err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			slog.Warn("Failed to close response body", "error", err)
		}
	}()

	slog.Debug("Lists HTTP request completed",
		"operation", op,
		"status_code", resp.StatusCode,
		"duration", duration,
	)

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(resp.Body); err != nil {
		return nil, NewNetworkError(op, err)
	}
	raw := buf.Bytes()

	// Faults arrive with status 500, so look for one before checking the code.
	if fault := parseFault(raw); fault != nil {
		return nil, NewFaultError(op, resp.StatusCode, fault)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, NewAPIError(op, resp.StatusCode, http.StatusText(resp.StatusCode))
	}

	return raw, nil
}

func isTimeout(ctx context.Context, err error) bool {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
