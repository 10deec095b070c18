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

package errs

import (
	"errors"
	"fmt"
	"testing"
)

func TestWrapKeepsLevelAndStatus(t *testing.T) {
	inner := Rejected("Insufficient funds", 200)
	outer := Wrap(inner, "decide financial transaction")
	if outer.ErrLv != Warn {
		t.Fatalf("expected warn level, got %s", ErrLv(outer.ErrLv))
	}
	if outer.Status != 200 {
		t.Fatalf("expected status to be carried, got %d", outer.Status)
	}
	if !errors.Is(outer, inner) {
		t.Fatalf("expected errors.Is to find the cause")
	}
}

func TestWrapForeignErrorIsFatal(t *testing.T) {
	e := Wrap(errors.New("dial tcp: refused"), "network error")
	if e.ErrLv != Fatal {
		t.Fatalf("expected fatal, got %s", ErrLv(e.ErrLv))
	}
}

func TestUserMessagePrefersInnermost(t *testing.T) {
	err := fmt.Errorf("screen deposits: %w", Wrap(Rejected("Player is blocked", 200), "list deposits"))
	if got := UserMessage(err, "fallback"); got != "Player is blocked" {
		t.Fatalf("unexpected message %q", got)
	}
	if got := UserMessage(errors.New("boom"), "Failed to fetch data"); got != "Failed to fetch data" {
		t.Fatalf("expected fallback, got %q", got)
	}
	if got := UserMessage(Wrap(errors.New("eof"), "decode envelope"), "Failed to fetch data"); got != "Failed to fetch data" {
		t.Fatalf("fatal messages must not reach the operator, got %q", got)
	}
	if got := UserMessage(nil, "x"); got != "" {
		t.Fatalf("expected empty message for nil error, got %q", got)
	}
}

func TestAsErr(t *testing.T) {
	if _, ok := AsErr(errors.New("plain")); ok {
		t.Fatalf("plain error must not convert")
	}
	e, ok := AsErr(fmt.Errorf("x: %w", NewWarn("bad page size")))
	if !ok || e.Message != "bad page size" {
		t.Fatalf("unexpected conversion: %v %v", e, ok)
	}
}
