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

package platform

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/leonardoelit/backoffice/action"
	"github.com/leonardoelit/backoffice/apiclient"
	"github.com/leonardoelit/backoffice/collection"
	"github.com/leonardoelit/backoffice/finstate"
	"github.com/leonardoelit/backoffice/model"
	"github.com/leonardoelit/backoffice/notify"
	"github.com/shopspring/decimal"
)

const pendingWithdrawal = `{"isSuccess":true,"financialTransactions":[` +
	`{"id":42,"playerId":"7","username":"john","amount":"150.00","typeName":"withdraw","status":"Pending","createdAt":"2024-03-15T10:00:00Z"}` +
	`],"currentPage":1,"totalPages":1,"totalCount":1}`

type fakePlatform struct {
	mu        sync.Mutex
	lists     int
	queries   []string
	decisions []decideRequest
	keys      []string
	posts     int
	reply     string
}

func (f *fakePlatform) listCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lists
}

func (f *fakePlatform) seen() (decisions []decideRequest, keys []string, posts int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]decideRequest(nil), f.decisions...), append([]string(nil), f.keys...), f.posts
}

func newPlatform(t *testing.T, fake *fakePlatform) *Platform {
	t.Helper()
	r := chi.NewRouter()
	r.Get(pathFinancial, func(w http.ResponseWriter, req *http.Request) {
		fake.mu.Lock()
		fake.lists++
		fake.queries = append(fake.queries, req.URL.RawQuery)
		fake.mu.Unlock()
		_, _ = w.Write([]byte(pendingWithdrawal))
	})
	r.Post(pathDecideFinancial, func(w http.ResponseWriter, req *http.Request) {
		var body decideRequest
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		fake.mu.Lock()
		fake.posts++
		fake.decisions = append(fake.decisions, body)
		fake.keys = append(fake.keys, req.Header.Get("Idempotency-Key"))
		reply := fake.reply
		fake.mu.Unlock()
		_, _ = w.Write([]byte(reply))
	})
	r.Post(pathResolveBonus, func(w http.ResponseWriter, req *http.Request) {
		fake.mu.Lock()
		fake.posts++
		fake.mu.Unlock()
		_, _ = w.Write([]byte(`{"isSuccess":true,"message":"Resolved"}`))
	})
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	c, err := apiclient.New(srv.URL, apiclient.WithTokenSource(apiclient.StaticToken("t")))
	if err != nil {
		t.Fatalf("client: %v", err)
	}
	return New(c)
}

// acceptPending 載入待審核列表後核准 #42。
func acceptPending(t *testing.T, reply string) (*fakePlatform, *notify.Recorder) {
	t.Helper()
	fake := &fakePlatform{reply: reply}
	p := newPlatform(t, fake)
	rec := &notify.Recorder{}
	ctx := context.Background()

	pending := collection.New(p.Financial.List, model.PendingDefaults(), model.FinancialFilter{}, collection.WithNotifier(rec))
	if err := pending.Refetch(ctx); err != nil {
		t.Fatalf("initial load: %v", err)
	}
	items := pending.State().Items
	if len(items) != 1 || items[0].ID != 42 {
		t.Fatalf("unexpected items: %+v", items)
	}
	tx := items[0]

	runner := action.NewRunner(action.WithNotifier(rec))
	runner.Open()
	_ = runner.Submit(ctx, action.Action{
		Name:   "financial.accept",
		Target: "financial:42",
		Do: func(ctx context.Context) (string, error) {
			return p.Financial.Decide(ctx, tx.ID, tx.PlayerID, tx.TypeName, true)
		},
	}, func(ctx context.Context) error { return pending.Refetch(ctx) })
	return fake, rec
}

func TestAcceptWithdrawalSuccess(t *testing.T) {
	fake, rec := acceptPending(t, `{"isSuccess":true,"description":"OK"}`)

	decisions, keys, _ := fake.seen()
	if len(decisions) != 1 {
		t.Fatalf("expected one mutation, got %d", len(decisions))
	}
	want := decideRequest{ID: 42, PlayerID: "7", TypeName: "withdraw", IsAccept: true}
	if decisions[0] != want {
		t.Fatalf("unexpected mutation body: %+v", decisions[0])
	}
	if keys[0] == "" {
		t.Fatalf("mutations must carry an idempotency key")
	}
	if got := fake.listCalls(); got != 2 {
		t.Fatalf("expected exactly one refetch after success, list calls=%d", got)
	}
	ts := rec.Toasts()
	if len(ts) != 1 || ts[0].Level != notify.LevelSuccess || ts[0].Message != "OK" {
		t.Fatalf("unexpected toasts: %+v", ts)
	}
	fake.mu.Lock()
	first := fake.queries[0]
	fake.mu.Unlock()
	if first != "pageNumber=1&pageSize=25&status=Pending" {
		t.Fatalf("unexpected list query: %s", first)
	}
}

func TestAcceptWithdrawalRejected(t *testing.T) {
	fake, rec := acceptPending(t, `{"hasError":true,"description":"Insufficient funds"}`)

	if decisions, _, _ := fake.seen(); len(decisions) != 1 {
		t.Fatalf("expected one mutation, got %d", len(decisions))
	}
	if got := fake.listCalls(); got != 1 {
		t.Fatalf("failure must not refetch, list calls=%d", got)
	}
	ts := rec.Toasts()
	if len(ts) != 1 || ts[0].Level != notify.LevelError || ts[0].Message != "Insufficient funds" {
		t.Fatalf("unexpected toasts: %+v", ts)
	}
}

func TestApplyChecksTransitionTable(t *testing.T) {
	fake := &fakePlatform{reply: `{"isSuccess":true}`}
	p := newPlatform(t, fake)
	done := model.FinancialTransaction{ID: 42, PlayerID: "7", TypeName: "withdraw", Status: "Success"}
	if _, err := p.Financial.Apply(context.Background(), done, finstate.Accept); err == nil {
		t.Fatalf("terminal requests cannot be accepted")
	}
	if _, _, posts := fake.seen(); posts != 0 {
		t.Fatalf("rejected transitions must not reach the platform")
	}
	pending := done
	pending.Status = "Pending"
	if _, err := p.Financial.Apply(context.Background(), pending, finstate.Reject); err != nil {
		t.Fatalf("reject pending: %v", err)
	}
	if decisions, _, _ := fake.seen(); len(decisions) != 1 || decisions[0].IsAccept {
		t.Fatalf("reject must post isAccept=false: %+v", decisions)
	}
}

func TestResolveValidatesBeforeCalling(t *testing.T) {
	fake := &fakePlatform{}
	p := newPlatform(t, fake)
	ctx := context.Background()
	req := model.BonusData{ID: 9, PlayerID: "7", BonusType: "Deposit"}

	if _, err := p.Bonuses.Resolve(ctx, req, action.Resolution{Accept: true}); err == nil {
		t.Fatalf("accept without an amount must fail")
	}
	if _, _, posts := fake.seen(); posts != 0 {
		t.Fatalf("invalid input must not reach the platform")
	}
	if _, err := p.Bonuses.Resolve(ctx, req, action.Resolution{Accept: false, Note: "duplicate"}); err != nil {
		t.Fatalf("reject: %v", err)
	}
	free := req
	free.BonusType = "Freespin"
	msg, err := p.Bonuses.Resolve(ctx, free, action.Resolution{Accept: true})
	if err != nil || msg != "Resolved" {
		t.Fatalf("zero-value accept: %q %v", msg, err)
	}
	if _, err := p.Bonuses.Resolve(ctx, req, action.Resolution{Accept: true, Amount: decimal.NewFromInt(25)}); err != nil {
		t.Fatalf("accept with amount: %v", err)
	}
	if _, _, posts := fake.seen(); posts != 3 {
		t.Fatalf("expected three posts, got %d", posts)
	}
}
