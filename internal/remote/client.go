package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/stitchworks/imagelib/internal/domain"
	"github.com/stitchworks/imagelib/internal/ports"
	"github.com/stitchworks/imagelib/pkg/metrics"
)

// Client — общая часть HTTP-клиентов удалённых контрактов: базовый URL,
// таймаут на вызов и источник bearer-токена для мутирующих операций.
type Client struct {
	http    *http.Client
	baseURL string
	tokens  ports.TokenProvider
	log     ports.Logger
}

// NewClient — конструктор. timeout ограничивает каждый вызов
// (у исходного контракта таймаутов не было — здесь осознанное улучшение).
func NewClient(baseURL string, timeout time.Duration, tokens ports.TokenProvider, log ports.Logger) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		http:    &http.Client{Timeout: timeout},
		baseURL: strings.TrimRight(baseURL, "/"),
		tokens:  tokens,
		log:     log,
	}
}

// authToken — токен для мутирующего вызова. Пустой токен — локальная
// ошибка предусловия, запрос к серверу не выполняется.
func (c *Client) authToken(ctx context.Context) (string, error) {
	if c.tokens == nil {
		return "", domain.ErrAuthTokenMissing
	}
	token, err := c.tokens.Token(ctx)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrAuthTokenMissing, err)
	}
	if token == "" {
		return "", domain.ErrAuthTokenMissing
	}
	return token, nil
}

// doJSON — выполняет запрос с JSON-телом (или без) и декодирует JSON-ответ
// в out (nil = тело не нужно). token прикладывается как Bearer, если задан.
func (c *Client) doJSON(ctx context.Context, method, path, token string, body, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	return c.send(req, out)
}

// doMultipart — выполняет multipart-запрос с файлом и текстовыми полями.
func (c *Client) doMultipart(ctx context.Context, method, path, token string, file domain.FileUpload, fields map[string]string, out any) error {
	var buf bytes.Buffer
	mp := multipart.NewWriter(&buf)

	part, err := mp.CreateFormFile("file", file.Name)
	if err != nil {
		return fmt.Errorf("build multipart: %w", err)
	}
	if _, err := part.Write(file.Content); err != nil {
		return fmt.Errorf("write multipart file: %w", err)
	}
	for k, v := range fields {
		if err := mp.WriteField(k, v); err != nil {
			return fmt.Errorf("write multipart field %q: %w", k, err)
		}
	}
	if err := mp.Close(); err != nil {
		return fmt.Errorf("finalize multipart: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, &buf)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", mp.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	return c.send(req, out)
}

// send — отправка и разбор ответа. 404 превращается в domain.ErrNotFound,
// прочие не-2xx — в ошибку с телом ответа.
func (c *Client) send(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound {
		return domain.ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("%s %s: status %d: %s", req.Method, req.URL.Path, resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// observe — учёт результата вызова в метриках.
func observe(service, op string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	metrics.RemoteCalls.WithLabelValues(service, op, outcome).Inc()
}
