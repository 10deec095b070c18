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

package middleware

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/leonardoelit/backoffice/apiclient"
)

var ok = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
	_, _ = w.Write([]byte(strings.Repeat(`{"isSuccess":true}`, 50)))
})

func TestRateLimitPerIP(t *testing.T) {
	h := RateLimit(0.001, 2)(ok)
	do := func(ip string) int {
		r := httptest.NewRequest(http.MethodGet, "/v1/players", nil)
		r.RemoteAddr = ip + ":5000"
		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)
		return w.Code
	}
	if do("10.0.0.1") != 200 || do("10.0.0.1") != 200 {
		t.Fatalf("burst must be allowed")
	}
	if code := do("10.0.0.1"); code != http.StatusTooManyRequests {
		t.Fatalf("third request must be limited, got %d", code)
	}
	if do("10.0.0.2") != 200 {
		t.Fatalf("other clients are not affected")
	}

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")
	if got := clientIP(r); got != "203.0.113.9" {
		t.Fatalf("unexpected client ip %q", got)
	}
	if RateLimit(0, 0)(ok) == nil {
		t.Fatalf("disabled limiter must pass through")
	}
}

func TestBearerPassthrough(t *testing.T) {
	var got string
	var has bool
	h := Bearer(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		got, has = apiclient.TokenFrom(r.Context())
	}))
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "bearer  abc.def ")
	h.ServeHTTP(httptest.NewRecorder(), r)
	if !has || got != "abc.def" {
		t.Fatalf("unexpected token %q %v", got, has)
	}

	r = httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "Basic Zm9vOmJhcg==")
	h.ServeHTTP(httptest.NewRecorder(), r)
	if has {
		t.Fatalf("non-bearer credentials must be ignored")
	}
}

func TestRecoverWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	h := RequestID(Recover(slog.New(slog.NewTextHandler(&buf, nil)))(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	})))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/players", nil))
	if w.Code != http.StatusInternalServerError || !strings.Contains(w.Body.String(), `"isSuccess":false`) {
		t.Fatalf("unexpected response %d %s", w.Code, w.Body.String())
	}
	if w.Header().Get(RequestIDHeader) == "" || !strings.Contains(buf.String(), "http.panic") {
		t.Fatalf("panic must be logged with a request id")
	}
}

func TestCompressGzipAndSkip(t *testing.T) {
	h := Compression(ok)
	r := httptest.NewRequest(http.MethodGet, "/v1/players", nil)
	r.Header.Set("Accept-Encoding", "gzip")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	if w.Header().Get("Content-Encoding") != "gzip" {
		t.Fatalf("expected gzip, got %q", w.Header().Get("Content-Encoding"))
	}
	zr, err := gzip.NewReader(w.Body)
	if err != nil {
		t.Fatalf("gzip reader: %v", err)
	}
	raw, err := io.ReadAll(zr)
	if err != nil || !strings.HasPrefix(string(raw), `{"isSuccess":true}`) {
		t.Fatalf("unexpected body %q %v", raw, err)
	}

	r = httptest.NewRequest(http.MethodGet, "/healthz", nil)
	r.Header.Set("Accept-Encoding", "gzip")
	w = httptest.NewRecorder()
	h.ServeHTTP(w, r)
	if w.Header().Get("Content-Encoding") != "" {
		t.Fatalf("skipped paths must not be compressed")
	}
}
