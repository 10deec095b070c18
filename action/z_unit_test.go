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

package action

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/leonardoelit/backoffice/audit"
	"github.com/leonardoelit/backoffice/errs"
	"github.com/leonardoelit/backoffice/notify"
	"github.com/shopspring/decimal"
)

func TestSubmitSuccess(t *testing.T) {
	rec := &notify.Recorder{}
	mem := &audit.Memory{}
	r := NewRunner(WithNotifier(rec), WithJournal(mem), WithKeys(func() string { return "k-1" }),
		WithOperator(func(context.Context) string { return "anna" }))
	r.Open()

	calls, refetches := 0, 0
	err := r.Submit(context.Background(), Action{Name: "financial.accept", Target: "financial:42", Do: func(ctx context.Context) (string, error) {
		calls++
		return "OK", nil
	}}, func(context.Context) error { refetches++; return nil })
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if calls != 1 || refetches != 1 {
		t.Fatalf("calls=%d refetches=%d", calls, refetches)
	}
	if rec.Count(notify.LevelSuccess) != 1 || rec.Count(notify.LevelError) != 0 {
		t.Fatalf("unexpected toasts: %+v", rec.Toasts())
	}
	if rec.Toasts()[0].Message != "OK" {
		t.Fatalf("toast should carry the platform message: %+v", rec.Toasts())
	}
	if r.IsOpen() || r.Submitting() {
		t.Fatalf("runner should be closed and idle")
	}
	es := mem.Entries()
	if len(es) != 1 || es[0].Operator != "anna" || es[0].Key != "k-1" || es[0].Target != "financial:42" {
		t.Fatalf("unexpected audit entries: %+v", es)
	}
}

func TestSubmitFailureStaysOpen(t *testing.T) {
	rec := &notify.Recorder{}
	mem := &audit.Memory{}
	r := NewRunner(WithNotifier(rec), WithJournal(mem))
	r.Open()

	refetches := 0
	err := r.Submit(context.Background(), Action{Name: "financial.accept", Do: func(context.Context) (string, error) {
		return "", errs.Wrap(errs.Rejected("Insufficient funds", 200), "accept financial transaction")
	}}, func(context.Context) error { refetches++; return nil })
	if err == nil {
		t.Fatalf("expected an error")
	}
	if refetches != 0 {
		t.Fatalf("failure must not refetch")
	}
	ts := rec.Toasts()
	if len(ts) != 1 || ts[0].Level != notify.LevelError || ts[0].Message != "Insufficient funds" {
		t.Fatalf("unexpected toasts: %+v", ts)
	}
	if !r.IsOpen() || r.Submitting() {
		t.Fatalf("runner should stay open and accept a retry")
	}
	if len(mem.Entries()) != 0 {
		t.Fatalf("failures are not audited")
	}
}

func TestSubmitTransportFailureUsesFallback(t *testing.T) {
	rec := &notify.Recorder{}
	r := NewRunner(WithNotifier(rec))
	_ = r.Submit(context.Background(), Action{Do: func(context.Context) (string, error) {
		return "", errs.Wrap(errors.New("connection refused"), "call platform")
	}}, nil)
	if ts := rec.Toasts(); len(ts) != 1 || ts[0].Message != DefaultErrorMessage {
		t.Fatalf("unexpected toasts: %+v", ts)
	}
}

func TestSubmitRejectsDoubleSubmit(t *testing.T) {
	r := NewRunner()
	entered := make(chan struct{})
	release := make(chan struct{})
	done := make(chan error, 1)
	go func() {
		done <- r.Submit(context.Background(), Action{Do: func(context.Context) (string, error) {
			close(entered)
			<-release
			return "OK", nil
		}}, nil)
	}()
	<-entered
	if !r.Submitting() {
		t.Fatalf("runner should report submitting")
	}
	if r.Close() {
		t.Fatalf("close must be refused while submitting")
	}
	if err := r.Submit(context.Background(), Action{Do: func(context.Context) (string, error) { return "", nil }}, nil); err != ErrBusy {
		t.Fatalf("expected ErrBusy, got %v", err)
	}
	close(release)
	if err := <-done; err != nil {
		t.Fatalf("first submit: %v", err)
	}
}

func TestResolutionValidation(t *testing.T) {
	if err := Validate(Resolution{Accept: true, Amount: decimal.Zero}); err == nil || !strings.Contains(err.Error(), "amount must be greater than 0") {
		t.Fatalf("accept without amount must fail, got %v", err)
	}
	if err := Validate(Resolution{Accept: true, ZeroValue: true}); err != nil {
		t.Fatalf("zero-value bonus types accept without amount: %v", err)
	}
	if err := Validate(Resolution{Accept: false}); err != nil {
		t.Fatalf("reject needs no amount: %v", err)
	}
	if err := Validate(Resolution{Accept: true, Amount: decimal.NewFromInt(50)}); err != nil {
		t.Fatalf("valid resolution: %v", err)
	}
	err := Validate(Resolution{Accept: true})
	if e, ok := errs.AsErr(err); !ok || e.ErrLv != errs.Warn {
		t.Fatalf("validation errors must be Warn: %v", err)
	}
}

func TestAdjustmentAndBanValidation(t *testing.T) {
	ok := Adjustment{PlayerID: "7", Amount: decimal.RequireFromString("10.50"), Direction: "Inc", Reason: "goodwill"}
	if err := Validate(ok); err != nil {
		t.Fatalf("valid adjustment: %v", err)
	}
	bad := ok
	bad.Direction = "Up"
	bad.Amount = decimal.NewFromInt(-1)
	err := Validate(bad)
	if err == nil || !strings.Contains(err.Error(), "direction") || !strings.Contains(err.Error(), "amount") {
		t.Fatalf("expected direction and amount errors, got %v", err)
	}
	if err := Validate(IPBan{IP: "10.0.0.300", Reason: "abuse"}); err == nil {
		t.Fatalf("invalid ip must fail")
	}
	if err := Validate(IPBan{IP: "10.0.0.3", Reason: "abuse", Days: 7}); err != nil {
		t.Fatalf("valid ban: %v", err)
	}
}
