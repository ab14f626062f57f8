package telestream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"tcloud/internal/logging"
	"tcloud/internal/services"
)

const errorBodyLimit = 4096

// invoke sends req and decodes the JSON response into a T.
func invoke[T any](ctx context.Context, c *Client, req Request) (T, error) {
	var out T
	if err := c.do(ctx, req, &out); err != nil {
		var zero T
		return zero, err
	}
	return out, nil
}

// do signs and sends req. When out is nil the response body is discarded.
func (c *Client) do(ctx context.Context, req Request, out any) error {
	if c == nil {
		return errors.New("telestream: client is nil")
	}

	var reader io.Reader
	if req.Body != nil {
		data, err := json.Marshal(req.Body)
		if err != nil {
			return services.Wrap(services.ErrValidation, req.Path, "encode request body", "", err)
		}
		reader = bytes.NewReader(data)
	}

	params := req.Query.Clone()
	signature := c.signer.sign(req.Method, c.host, req.Path, params)
	params.Add(signatureParam, signature)
	endpoint := c.baseURL + "/" + req.Path + "?" + params.Encode()

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("telestream: build %s request: %w", req.Path, err)
	}
	requestID := uuid.NewString()
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", c.userAgent)
	httpReq.Header.Set("X-Request-Id", requestID)
	if req.Body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	logger := logging.WithContext(services.WithRequestID(ctx, requestID), c.logger)
	start := time.Now()
	resp, err := c.http.Do(httpReq)
	if err != nil {
		logger.Debug("api request failed",
			logging.String("method", req.Method),
			logging.String("path", req.Path),
			logging.Error(err),
		)
		return &TransportError{Method: req.Method, Path: req.Path, Err: err}
	}
	defer resp.Body.Close()

	logger.Debug("api request completed",
		logging.String("method", req.Method),
		logging.String("path", req.Path),
		logging.Int("status", resp.StatusCode),
		logging.Duration("elapsed", time.Since(start)),
	)

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyLimit))
		return &ProtocolError{
			StatusCode: resp.StatusCode,
			Method:     req.Method,
			Path:       req.Path,
			Body:       strings.TrimSpace(string(body)),
		}
	}

	if out == nil {
		if _, err := io.Copy(io.Discard, resp.Body); err != nil {
			return &TransportError{Method: req.Method, Path: req.Path, Err: err}
		}
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		var netErr interface{ Timeout() bool }
		if errors.As(err, &netErr) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return &TransportError{Method: req.Method, Path: req.Path, Err: err}
		}
		return &DeserializationError{Path: req.Path, Err: err}
	}
	return nil
}
