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

package apiclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/leonardoelit/backoffice/errs"
)

type row struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func newFake(t *testing.T) (*Client, *http.Header) {
	t.Helper()
	var seen http.Header
	r := chi.NewRouter()
	r.Get("/api/rows", func(w http.ResponseWriter, req *http.Request) {
		seen = req.Header.Clone()
		if req.URL.Query().Has("name") {
			_, _ = w.Write([]byte(`{"isSuccess":true,"rows":[{"id":1,"name":"` + req.URL.Query().Get("name") + `"}],"currentPage":1,"totalPages":1,"totalCount":1}`))
			return
		}
		_, _ = w.Write([]byte(`{"isSuccess":true,"rows":[{"id":1,"name":"a"},{"id":2,"name":"b"}],"currentPage":2,"totalPages":4,"totalCount":80}`))
	})
	r.Get("/api/rejected", func(w http.ResponseWriter, req *http.Request) {
		_, _ = w.Write([]byte(`{"isSuccess":false,"message":"Player is blocked"}`))
	})
	r.Post("/api/legacy-ok", func(w http.ResponseWriter, req *http.Request) {
		seen = req.Header.Clone()
		_, _ = w.Write([]byte(`{"description":"OK"}`))
	})
	r.Post("/api/legacy-fail", func(w http.ResponseWriter, req *http.Request) {
		_, _ = w.Write([]byte(`{"hasError":true,"description":"Insufficient funds"}`))
	})
	r.Get("/api/bad-request", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"isSuccess":false,"message":"pageSize out of range"}`))
	})
	r.Get("/api/gateway", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(`<html>bad gateway</html>`))
	})
	r.Get("/api/player", func(w http.ResponseWriter, req *http.Request) {
		_, _ = w.Write([]byte(`{"isSuccess":true,"player":{"id":7,"name":"john"}}`))
	})
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	c, err := New(srv.URL+"/", WithTokenSource(StaticToken("svc-token")))
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return c, &seen
}

func TestEnvelopeNormalisation(t *testing.T) {
	yes, no := true, false
	cases := []struct {
		env  Envelope
		ok   bool
		text string
	}{
		{Envelope{IsSuccess: &yes, Message: "done"}, true, "done"},
		{Envelope{IsSuccess: &no, Message: "nope"}, false, "nope"},
		{Envelope{HasError: true, Description: "Insufficient funds"}, false, "Insufficient funds"},
		{Envelope{Description: "OK"}, true, "OK"},
		{Envelope{IsSuccess: &yes, HasError: true, Description: "conflict"}, false, "conflict"},
	}
	for i, c := range cases {
		if c.env.OK() != c.ok || c.env.Text() != c.text {
			t.Fatalf("case %d: ok=%v text=%q", i, c.env.OK(), c.env.Text())
		}
	}
}

func TestGetListExtractsEntityKey(t *testing.T) {
	c, seen := newFake(t)
	page, err := GetList[row](context.Background(), c, "/api/rows", "rows", nil)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(page.Items) != 2 || page.CurrentPage != 2 || page.TotalPages != 4 || page.TotalCount != 80 {
		t.Fatalf("unexpected page: %+v", page)
	}
	if got := seen.Get("Authorization"); got != "Bearer svc-token" {
		t.Fatalf("unexpected auth header %q", got)
	}

	ctx := WithToken(context.Background(), "operator-token")
	page, err = GetList[row](ctx, c, "api/rows", "rows", url.Values{"name": {"john"}})
	if err != nil || page.Items[0].Name != "john" {
		t.Fatalf("filtered list: %+v %v", page, err)
	}
	if got := seen.Get("Authorization"); got != "Bearer operator-token" {
		t.Fatalf("context token must win, got %q", got)
	}
}

func TestBusinessRejectionIsWarn(t *testing.T) {
	c, _ := newFake(t)
	_, err := GetList[row](context.Background(), c, "/api/rejected", "rows", nil)
	e, ok := errs.AsErr(err)
	if !ok || e.ErrLv != errs.Warn || e.Message != "Player is blocked" {
		t.Fatalf("unexpected error: %v", err)
	}
	_, err = c.Mutate(context.Background(), http.MethodPost, "/api/legacy-fail", nil, map[string]any{"id": 42})
	if got := errs.UserMessage(err, "fallback"); got != "Insufficient funds" {
		t.Fatalf("unexpected message %q", got)
	}
}

func TestNon2xxIsNormalised(t *testing.T) {
	c, _ := newFake(t)
	err := c.Get(context.Background(), "/api/bad-request", nil, nil)
	e, ok := errs.AsErr(err)
	if !ok || e.Status != http.StatusBadRequest || e.Message != "pageSize out of range" {
		t.Fatalf("unexpected 400 error: %v", err)
	}
	err = c.Get(context.Background(), "/api/gateway", nil, nil)
	e, ok = errs.AsErr(err)
	if !ok || e.ErrLv != errs.Fatal || e.Status != http.StatusBadGateway {
		t.Fatalf("unexpected 502 error: %v", err)
	}
	if got := errs.UserMessage(err, "Failed to fetch data"); got != "Failed to fetch data" {
		t.Fatalf("gateway errors must use the fallback, got %q", got)
	}
}

func TestMutateSendsIdempotencyKey(t *testing.T) {
	c, seen := newFake(t)
	ctx := WithIdempotencyKey(context.Background(), "key-1")
	res, err := c.Mutate(ctx, http.MethodPost, "/api/legacy-ok", nil, map[string]any{"id": 42})
	if err != nil {
		t.Fatalf("mutate: %v", err)
	}
	if res.Message != "OK" {
		t.Fatalf("unexpected message %q", res.Message)
	}
	if seen.Get("Idempotency-Key") != "key-1" || seen.Get("Content-Type") != "application/json" {
		t.Fatalf("unexpected headers: %v", *seen)
	}
}

func TestGetOneAndTransportError(t *testing.T) {
	c, _ := newFake(t)
	r, err := GetOne[row](context.Background(), c, "/api/player", "player", nil)
	if err != nil || r.ID != 7 {
		t.Fatalf("get one: %+v %v", r, err)
	}

	dead, _ := New("http://127.0.0.1:1")
	err = dead.Get(context.Background(), "/x", nil, nil)
	e, ok := errs.AsErr(err)
	if !ok || e.ErrLv != errs.Fatal {
		t.Fatalf("transport errors must be fatal: %v", err)
	}
	if _, err := New("not a url"); err == nil {
		t.Fatalf("expected invalid base url error")
	}
}
