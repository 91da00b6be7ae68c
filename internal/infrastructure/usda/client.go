package usda

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/macrolens/fdc2csv/internal/domain"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const maxAttempts = 3

// Client handles communication with the USDA FoodData Central API
type Client struct {
	httpClient  *http.Client
	apiKey      string
	baseURL     string
	rateLimiter *rate.Limiter
	backoff     func(attempt int) time.Duration
	logger      *zap.Logger
}

// NewClient creates a new USDA API client limited to requestsPerHour.
func NewClient(apiKey, baseURL string, requestsPerHour int, logger *zap.Logger) *Client {
	if requestsPerHour <= 0 {
		requestsPerHour = 1000
	}
	// burst of 10 requests
	limiter := rate.NewLimiter(rate.Every(time.Hour/time.Duration(requestsPerHour)), 10)

	return &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		apiKey:      apiKey,
		baseURL:     baseURL,
		rateLimiter: limiter,
		backoff:     exponentialBackoff,
		logger:      logger.Named("usda"),
	}
}

// exponentialBackoff returns 500ms, 1s, 2s, ... for attempts 1, 2, 3, ...
func exponentialBackoff(attempt int) time.Duration {
	return time.Duration(500<<(attempt-1)) * time.Millisecond
}

// doRequest executes an HTTP GET request with proper headers and error handling
func (c *Client) doRequest(ctx context.Context, reqURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "fdc2csv/1.0")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUSDAAPIFailure, err)
	}

	return resp, nil
}

// GetFood retrieves one food by FDC ID. Server errors and 429 responses are
// retried with exponential backoff; other 4xx responses are not.
func (c *Client) GetFood(ctx context.Context, fdcID string) (*domain.SourceFood, error) {
	endpoint := fmt.Sprintf("%s/v1/food/%s", c.baseURL, url.PathEscape(fdcID))
	params := url.Values{}
	params.Add("api_key", c.apiKey)
	params.Add("format", "full")
	reqURL := fmt.Sprintf("%s?%s", endpoint, params.Encode())

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if attempt > 1 {
			if err := c.sleep(ctx, c.backoff(attempt-1)); err != nil {
				return nil, err
			}
		}

		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter error: %w", err)
		}

		resp, err := c.doRequest(ctx, reqURL)
		if err != nil {
			c.logger.Warn("request failed", zap.String("fdc_id", fdcID), zap.Int("attempt", attempt), zap.Error(err))
			lastErr = err
			continue
		}

		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			lastErr = fmt.Errorf("%w: reading body: %v", domain.ErrUSDAAPIFailure, err)
			continue
		}

		switch {
		case resp.StatusCode == http.StatusOK:
			food, err := DecodeAPIFood(body)
			if err != nil {
				return nil, err
			}
			c.logger.Debug("fetched food", zap.String("fdc_id", fdcID), zap.String("data_type", food.Source))
			return food, nil
		case resp.StatusCode == http.StatusNotFound:
			return nil, domain.ErrProductNotFound
		case resp.StatusCode == http.StatusTooManyRequests:
			lastErr = fmt.Errorf("%w: status %d", domain.ErrRateLimited, resp.StatusCode)
		case resp.StatusCode >= http.StatusInternalServerError:
			lastErr = fmt.Errorf("%w: status %d", domain.ErrUSDAAPIFailure, resp.StatusCode)
		default:
			return nil, fmt.Errorf("%w: status %d, body: %s", domain.ErrUSDAAPIFailure, resp.StatusCode, string(body))
		}

		c.logger.Warn("retryable API error",
			zap.String("fdc_id", fdcID),
			zap.Int("attempt", attempt),
			zap.Int("status", resp.StatusCode))
	}

	c.logger.Error("all retries failed", zap.String("fdc_id", fdcID), zap.Error(lastErr))
	return nil, lastErr
}

func (c *Client) sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
