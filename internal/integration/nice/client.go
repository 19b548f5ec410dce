package nice

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Dhoini/nice-proxy/internal/domain"
	"github.com/Dhoini/nice-proxy/internal/metrics"
	"github.com/Dhoini/nice-proxy/pkg/logger"
)

const (
	tokenPath = "/oauth2/token"

	// maxTokenResponseBytes ограничивает размер ответа провайдера
	maxTokenResponseBytes = 1 << 20
)

// ErrNotConfigured возвращается, если не задан адрес провайдера авторизации
var ErrNotConfigured = errors.New("NICE auth URL is not configured")

// Config конфигурация клиента NICE
type Config struct {
	AuthURL      string
	ClientID     string
	ClientSecret string
	Timeout      time.Duration
}

// Client запрашивает токены client-credentials у NICE и возвращает ответ без изменений
type Client struct {
	baseURL      string
	clientID     string
	clientSecret string
	httpClient   *http.Client
	metrics      metrics.CustomerMetrics
	log          *logger.Logger
}

// NewClient создает новый клиент NICE
func NewClient(cfg Config, m metrics.CustomerMetrics, log *logger.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &Client{
		baseURL:      strings.TrimRight(cfg.AuthURL, "/"),
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
		httpClient:   &http.Client{Timeout: timeout},
		metrics:      m,
		log:          log,
	}
}

// TokenURL возвращает полный адрес token endpoint
func (c *Client) TokenURL() string {
	return c.baseURL + tokenPath
}

// FetchToken выполняет client-credentials грант и возвращает тело ответа как есть.
// Каждый вызов заново аутентифицируется: токен не кэшируется и запрос не повторяется.
func (c *Client) FetchToken(ctx context.Context) (json.RawMessage, error) {
	body, err := c.fetchToken(ctx)
	if err != nil {
		c.metrics.IncTokenRequest(metrics.OutcomeError)
		return nil, err
	}
	c.metrics.IncTokenRequest(metrics.OutcomeSuccess)
	return body, nil
}

func (c *Client) fetchToken(ctx context.Context) (json.RawMessage, error) {
	if c.baseURL == "" {
		return nil, ErrNotConfigured
	}

	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("client_id", c.clientID)
	form.Set("client_secret", c.clientSecret)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.TokenURL(), strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to build token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Errorw("Token request failed", "url", c.TokenURL(), "error", err)
		return nil, fmt.Errorf("failed to request token: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxTokenResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read token response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.log.Warnw("Upstream rejected token request", "status", resp.StatusCode)
		return nil, domain.NewUpstreamError(resp.StatusCode, string(body))
	}

	if !json.Valid(body) {
		return nil, fmt.Errorf("upstream token response is not valid JSON")
	}

	c.log.Debugw("Token relayed", "status", resp.StatusCode, "bytes", len(body))
	return json.RawMessage(body), nil
}
