// Copyright 2025 Zintix Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package apiclient 是平台 REST API 的 HTTP 包裝。
//
// 所有失敗（傳輸錯誤、非 2xx、isSuccess:false、hasError:true）都以 *errs.E 回傳，
// 呼叫端只需要一條錯誤路徑：
//   - 平台拒絕（有訊息）：Warn，Message 為平台原文，Status 為 HTTP 狀態碼。
//   - 傳輸 / 解碼 / 無訊息的非 2xx：Fatal。
package apiclient

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/leonardoelit/backoffice/errs"
)

const maxBody = 16 << 20

// TokenSource 提供 bearer token。
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// StaticToken 是固定 token 的 TokenSource。
type StaticToken string

func (s StaticToken) Token(context.Context) (string, error) { return string(s), nil }

type ctxKey int

const (
	tokenKey ctxKey = iota
	idemKey
)

// WithToken 讓單次呼叫使用指定 token（BFF 轉送操作員自己的 token），優先於 TokenSource。
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey, token)
}

// TokenFrom 取出 WithToken 設定的 token。
func TokenFrom(ctx context.Context) (string, bool) {
	tok, ok := ctx.Value(tokenKey).(string)
	return tok, ok && tok != ""
}

// WithIdempotencyKey 為 mutation 附加 Idempotency-Key header。
func WithIdempotencyKey(ctx context.Context, key string) context.Context {
	return context.WithValue(ctx, idemKey, key)
}

// Client 是平台 API 的 HTTP client；可被多個 goroutine 同時使用。
type Client struct {
	base   *url.URL
	hc     *http.Client
	tokens TokenSource
	log    *slog.Logger
	agent  string
}

// Option 設定 Client。
type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.hc = hc
		}
	}
}

func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) { c.tokens = ts }
}

func WithLogger(log *slog.Logger) Option {
	return func(c *Client) {
		if log != nil {
			c.log = log
		}
	}
}

// WithTimeout 設定整體請求逾時（包含讀取 body）。
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.hc.Timeout = d
		}
	}
}

func WithUserAgent(ua string) Option {
	return func(c *Client) { c.agent = ua }
}

// New 建立 Client；baseURL 例如 https://api.example.com。
func New(baseURL string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errs.NewFatal("apiclient: base url is required")
	}
	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, errs.Fatalf("apiclient: invalid base url %q", baseURL)
	}
	u.Path = strings.TrimRight(u.Path, "/")
	c := &Client{
		base:  u,
		hc:    &http.Client{Timeout: 30 * time.Second},
		log:   slog.New(slog.DiscardHandler),
		agent: "backoffice",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL 回傳正規化後的 base url。
func (c *Client) BaseURL() string { return c.base.String() }

func (c *Client) endpoint(path string, q url.Values) string {
	u := *c.base
	u.Path = c.base.Path + "/" + strings.TrimLeft(path, "/")
	if len(q) > 0 {
		u.RawQuery = q.Encode()
	}
	return u.String()
}

func (c *Client) token(ctx context.Context) (string, error) {
	if tok, ok := TokenFrom(ctx); ok {
		return tok, nil
	}
	if c.tokens == nil {
		return "", nil
	}
	tok, err := c.tokens.Token(ctx)
	if err != nil {
		return "", &errs.E{Message: "Not authenticated", Status: http.StatusUnauthorized, Cause: err, ErrLv: errs.Warn}
	}
	return tok, nil
}

// ============================================================
// ** 核心呼叫 **
// ============================================================

// Do 送出請求並回傳已確認成功的原始 body。
//
// q 為 query string（可為 nil），body 非 nil 時以 JSON 送出。
func (c *Client) Do(ctx context.Context, method, path string, q url.Values, body any) ([]byte, error) {
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, errs.WrapWithExtra(err, "encode request body", path)
		}
		rd = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(path, q), rd)
	if err != nil {
		return nil, errs.WrapWithExtra(err, "build request", path)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.agent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	tok, err := c.token(ctx)
	if err != nil {
		return nil, err
	}
	if tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	if key, ok := ctx.Value(idemKey).(string); ok && key != "" {
		req.Header.Set("Idempotency-Key", key)
	}

	start := time.Now()
	resp, err := c.hc.Do(req)
	if err != nil {
		c.log.Debug("platform.call", "method", method, "endpoint", path, "err", err, "latency", time.Since(start))
		if ctx.Err() != nil {
			return nil, errs.WrapWithExtra(ctx.Err(), "request cancelled", path)
		}
		return nil, errs.WrapWithExtra(err, "network error", path)
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	c.log.Debug("platform.call", "method", method, "endpoint", path, "status", resp.StatusCode, "latency", time.Since(start))
	if err != nil {
		return nil, errs.WrapWithExtra(err, "read response", path)
	}

	var env Envelope
	decodeErr := json.Unmarshal(raw, &env)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if decodeErr == nil && env.Text() != "" {
			e := errs.Rejected(env.Text(), resp.StatusCode)
			e.Extra = path
			return nil, e
		}
		return nil, &errs.E{
			Message: "HTTP " + resp.Status,
			Extra:   path,
			Status:  resp.StatusCode,
			ErrLv:   errs.Fatal,
		}
	}
	if decodeErr != nil {
		e := errs.WrapWithExtra(decodeErr, "decode response", path)
		e.Status = resp.StatusCode
		return nil, e
	}
	if !env.OK() {
		msg := env.Text()
		if msg == "" {
			msg = "Request failed"
		}
		e := errs.Rejected(msg, resp.StatusCode)
		e.Extra = path
		return nil, e
	}
	return raw, nil
}

// Get 讀取並把整個 body 解碼到 out（out 可為 nil）。
func (c *Client) Get(ctx context.Context, path string, q url.Values, out any) error {
	raw, err := c.Do(ctx, http.MethodGet, path, q, nil)
	if err != nil {
		return err
	}
	return decodeInto(raw, out, path)
}

// Mutate 送出 mutation 並回傳平台的成功訊息與 payload（data 欄位）。
func (c *Client) Mutate(ctx context.Context, method, path string, q url.Values, body any) (Result, error) {
	raw, err := c.Do(ctx, method, path, q, body)
	if err != nil {
		return Result{}, err
	}
	var env struct {
		Envelope
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(raw, &env); err != nil {
		return Result{}, errs.WrapWithExtra(err, "decode response", path)
	}
	return Result{Message: env.Text(), Data: env.Data}, nil
}

func decodeInto(raw []byte, out any, path string) error {
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return errs.WrapWithExtra(err, "decode response", path)
	}
	return nil
}
