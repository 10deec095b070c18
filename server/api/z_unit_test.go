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

package api

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/golang-jwt/jwt/v5"
	"github.com/leonardoelit/backoffice"
	"github.com/leonardoelit/backoffice/audit"
	"github.com/leonardoelit/backoffice/config"
	"github.com/leonardoelit/backoffice/dto"
	"github.com/leonardoelit/backoffice/server/netsvr"
	"github.com/leonardoelit/backoffice/server/svrcfg"
)

// fakePlatform 模擬平台 API 的部分端點。
type fakePlatform struct {
	mu      sync.Mutex
	queries map[string][]string
	bodies  map[string][]string
}

func (f *fakePlatform) record(r *http.Request) {
	raw, _ := io.ReadAll(r.Body)
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queries[r.URL.Path] = append(f.queries[r.URL.Path], r.URL.RawQuery)
	if len(raw) > 0 {
		f.bodies[r.URL.Path] = append(f.bodies[r.URL.Path], string(raw))
	}
}

func (f *fakePlatform) seen(path string) (queries, bodies []string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.queries[path]...), append([]string(nil), f.bodies[path]...)
}

func (f *fakePlatform) router() http.Handler {
	r := chi.NewRouter()
	reply := func(body string) http.HandlerFunc {
		return func(w http.ResponseWriter, req *http.Request) {
			f.record(req)
			_, _ = w.Write([]byte(body))
		}
	}
	r.Get("/api/Client/getAllPlayers", reply(`{"isSuccess":true,"players":[{"playerId":"7","username":"john","balance":"12.50"}],"currentPage":1,"totalPages":1,"totalCount":1}`))
	r.Get("/api/Client/getPlayersFinancialTransactions", reply(`{"isSuccess":true,"financialTransactions":[`+
		`{"id":42,"playerId":"7","username":"john","amount":"100","typeName":"withdraw","status":"Pending"}],"currentPage":1,"totalPages":1,"totalCount":1}`))
	r.Post("/api/Client/acceptOrRejectFinancialTransaction", reply(`{"isSuccess":true,"message":"Withdrawal accepted"}`))
	r.Get("/api/Wheel/getPrizes", reply(`{"isSuccess":true,"prizes":[`+
		`{"id":1,"name":"A","type":"Cash","percentage":"60","isActive":true},`+
		`{"id":2,"name":"B","type":"Cash","percentage":"30","isActive":true}],"currentPage":1,"totalPages":1,"totalCount":2}`))
	r.Post("/api/Wheel/createPrize", reply(`{"isSuccess":true,"message":"Prize created"}`))
	r.Post("/api/Client/addPlayerNote", reply(`{"isSuccess":false,"message":"Player is locked"}`))
	return r
}

type fixture struct {
	srv  *httptest.Server
	fake *fakePlatform
	mem  *audit.Memory
	b    *backoffice.Backoffice
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	fake := &fakePlatform{queries: map[string][]string{}, bodies: map[string][]string{}}
	upstream := httptest.NewServer(fake.router())
	t.Cleanup(upstream.Close)

	cfg := config.Default()
	cfg.APIURL = upstream.URL
	cfg.RateLimit = config.RateLimit{}
	mem := &audit.Memory{}
	b, err := backoffice.New(cfg, nil, backoffice.WithJournal(mem))
	if err != nil {
		t.Fatalf("backoffice: %v", err)
	}
	t.Cleanup(func() { _ = b.Close() })

	svr := netsvr.NewChiServer(":0")
	sCfg := &svrcfg.SvrCfg{Log: slog.New(slog.DiscardHandler), Backoffice: b}
	if err := RegisterRoutes(svr, sCfg); err != nil {
		t.Fatalf("routes: %v", err)
	}
	srv := httptest.NewServer(svr.Handler())
	t.Cleanup(srv.Close)
	return &fixture{srv: srv, fake: fake, mem: mem, b: b}
}

func (f *fixture) do(t *testing.T, method, path, body string, header ...string) (*http.Response, []byte) {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, f.srv.URL+path, rd)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer res.Body.Close()
	raw, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	return res, raw
}

func TestHealthz(t *testing.T) {
	f := newFixture(t)
	res, raw := f.do(t, http.MethodGet, "/healthz", "")
	var h dto.Health
	if err := json.Unmarshal(raw, &h); err != nil || res.StatusCode != http.StatusOK {
		t.Fatalf("healthz: %d %s", res.StatusCode, raw)
	}
	if h.Status != "ok" || h.Version != backoffice.Version || res.Header.Get("X-Request-Id") == "" {
		t.Fatalf("unexpected health: %+v", h)
	}
}

func TestListRestoresStateFromQuery(t *testing.T) {
	f := newFixture(t)
	res, raw := f.do(t, http.MethodGet, "/v1/players?pageSize=50&username=jo", "")
	if res.StatusCode != http.StatusOK {
		t.Fatalf("status %d: %s", res.StatusCode, raw)
	}
	var v struct {
		Screen   string
		Query    string
		FilterOn bool
		Grid     struct {
			Rows     [][]string
			PageSize int
		}
	}
	if err := json.Unmarshal(raw, &v); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if v.Screen != "players" || !v.FilterOn || len(v.Grid.Rows) != 1 || v.Grid.Rows[0][1] != "john" {
		t.Fatalf("unexpected view: %+v", v)
	}
	if !strings.Contains(v.Query, "username=jo") || !strings.Contains(v.Query, "pageSize=50") {
		t.Fatalf("query must reflect the list state: %q", v.Query)
	}
	q, _ := f.fake.seen("/api/Client/getAllPlayers")
	if len(q) != 1 || !strings.Contains(q[0], "username=jo") || !strings.Contains(q[0], "pageSize=50") {
		t.Fatalf("unexpected upstream query: %v", q)
	}
}

func TestListReportsDateRange(t *testing.T) {
	f := newFixture(t)
	res, raw := f.do(t, http.MethodGet, "/v1/players?preset=yesterday", "")
	if res.StatusCode != http.StatusOK {
		t.Fatalf("status %d: %s", res.StatusCode, raw)
	}
	var v struct {
		Range *struct {
			Field    string
			Preset   string
			Modified bool
			Bounds   struct{ MinCreatedLocal, MaxCreatedLocal string }
		}
	}
	if err := json.Unmarshal(raw, &v); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if v.Range == nil || v.Range.Preset != "yesterday" || !v.Range.Modified || v.Range.Field != "MinCreatedLocal" {
		t.Fatalf("unexpected range: %s", raw)
	}
	if v.Range.Bounds.MinCreatedLocal == "" || v.Range.Bounds.MinCreatedLocal != v.Range.Bounds.MaxCreatedLocal {
		t.Fatalf("yesterday covers a single day: %+v", v.Range.Bounds)
	}
	q, _ := f.fake.seen("/api/Client/getAllPlayers")
	if len(q) != 1 || !strings.Contains(q[0], "MinCreatedLocal="+v.Range.Bounds.MinCreatedLocal) {
		t.Fatalf("upstream must receive the same bounds: %v", q)
	}
}

func TestListRejectsUnknownPageSize(t *testing.T) {
	f := newFixture(t)
	res, raw := f.do(t, http.MethodGet, "/v1/players?pageSize=30", "")
	var e dto.ErrorBody
	_ = json.Unmarshal(raw, &e)
	if res.StatusCode != http.StatusBadRequest || e.IsSuccess || e.Message == "" {
		t.Fatalf("expected a 400 with a message: %d %s", res.StatusCode, raw)
	}
	if q, _ := f.fake.seen("/api/Client/getAllPlayers"); len(q) != 0 {
		t.Fatalf("invalid state must not reach the platform: %v", q)
	}
}

func TestFinancialAcceptLooksUpStatus(t *testing.T) {
	f := newFixture(t)
	res, raw := f.do(t, http.MethodPost, "/v1/financial/42/accept", `{"playerId":"7"}`)
	if res.StatusCode != http.StatusOK {
		t.Fatalf("status %d: %s", res.StatusCode, raw)
	}
	var out dto.ActionResult
	if err := json.Unmarshal(raw, &out); err != nil || !out.IsSuccess || out.Message != "Withdrawal accepted" {
		t.Fatalf("unexpected result: %s", raw)
	}
	_, bodies := f.fake.seen("/api/Client/acceptOrRejectFinancialTransaction")
	if len(bodies) != 1 || !strings.Contains(bodies[0], `"isAccept":true`) || !strings.Contains(bodies[0], `"typeName":"withdraw"`) {
		t.Fatalf("unexpected decide body: %v", bodies)
	}
	entries := f.mem.Entries()
	if len(entries) != 1 || entries[0].Action != "financial.accept" || entries[0].Target != "financial:42" {
		t.Fatalf("unexpected audit: %+v", entries)
	}
}

func TestFinancialRejectsTerminalStatus(t *testing.T) {
	f := newFixture(t)
	res, raw := f.do(t, http.MethodPost, "/v1/financial/42/cancel", `{"playerId":"7","typeName":"withdraw","status":"Success"}`)
	if res.StatusCode != http.StatusBadRequest {
		t.Fatalf("terminal status must be rejected: %d %s", res.StatusCode, raw)
	}
	if q, _ := f.fake.seen("/api/Client/getPlayersFinancialTransactions"); len(q) != 0 {
		t.Fatalf("status in the body must skip the lookup")
	}
	if len(f.mem.Entries()) != 0 {
		t.Fatalf("failed actions are not audited")
	}
}

func TestFinancialActions(t *testing.T) {
	f := newFixture(t)
	_, raw := f.do(t, http.MethodGet, "/v1/financial/actions?status=Transferring", "")
	var out struct {
		Status  string
		Actions []string
	}
	if err := json.Unmarshal(raw, &out); err != nil || out.Status != "Transferring" || len(out.Actions) == 0 {
		t.Fatalf("unexpected actions: %s", raw)
	}
}

func TestSavePrizeReportsWeights(t *testing.T) {
	f := newFixture(t)
	body := `{"name":"C","type":"Cash","amount":"5","percentage":"5","isActive":true}`
	res, raw := f.do(t, http.MethodPost, "/v1/prizes", body)
	if res.StatusCode != http.StatusOK {
		t.Fatalf("status %d: %s", res.StatusCode, raw)
	}
	var out dto.ActionResult
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !out.IsSuccess || out.Wheel == nil || !out.Wheel.Warn || out.Wheel.Sum.String() != "90" {
		t.Fatalf("saving must succeed with a weight warning: %s", raw)
	}

	_, raw = f.do(t, http.MethodPost, "/v1/prizes/check", `{"name":"C","type":"Cash","percentage":"10","isActive":true}`)
	if !strings.Contains(string(raw), `"warn":false`) {
		t.Fatalf("60+30+10 must not warn: %s", raw)
	}
}

func TestActionFailureKeepsPlatformMessage(t *testing.T) {
	f := newFixture(t)
	res, raw := f.do(t, http.MethodPost, "/v1/players/7/notes", `{"content":"vip"}`)
	var e dto.ErrorBody
	_ = json.Unmarshal(raw, &e)
	if res.StatusCode != http.StatusBadRequest || e.Message != "Player is locked" {
		t.Fatalf("platform rejection must be shown as is: %d %s", res.StatusCode, raw)
	}
	_, raw = f.do(t, http.MethodGet, "/v1/toasts?after=0", "")
	var page dto.ToastPage
	if err := json.Unmarshal(raw, &page); err != nil || len(page.Toasts) != 1 || page.Toasts[0].Message != "Player is locked" || page.Last != page.Toasts[0].ID {
		t.Fatalf("failure toast must reach the feed: %s", raw)
	}
}

func TestMeAndAudit(t *testing.T) {
	f := newFixture(t)
	if res, _ := f.do(t, http.MethodGet, "/v1/me", ""); res.StatusCode != http.StatusUnauthorized {
		t.Fatalf("me without token: %d", res.StatusCode)
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "3", "unique_name": "ops.kim"}).SignedString([]byte("k"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	res, raw := f.do(t, http.MethodGet, "/v1/me", "", "Authorization", "Bearer "+tok)
	if res.StatusCode != http.StatusOK || !strings.Contains(string(raw), `"username":"ops.kim"`) {
		t.Fatalf("me: %d %s", res.StatusCode, raw)
	}
	if res, _ := f.do(t, http.MethodGet, "/v1/audit", ""); res.StatusCode != http.StatusNotFound {
		t.Fatalf("audit without a store: %d", res.StatusCode)
	}
}
