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

package app

import (
	"context"
	"errors"
	"net/http"
	"sync/atomic"
	"testing"
	"time"
)

type blocking struct {
	stop     chan struct{}
	shutdown atomic.Int32
	fail     error
}

func newBlocking(fail error) *blocking { return &blocking{stop: make(chan struct{}), fail: fail} }

func (b *blocking) Run() error {
	if b.fail != nil {
		return b.fail
	}
	<-b.stop
	return http.ErrServerClosed
}

func (b *blocking) Shutdown(context.Context) error {
	if b.shutdown.Add(1) == 1 && b.fail == nil {
		close(b.stop)
	}
	return nil
}

func TestRunContextCancelShutsDownAll(t *testing.T) {
	a, b := newBlocking(nil), newBlocking(nil)
	closed := atomic.Bool{}
	app := NewWith(a, b)
	app.OnStop(func() error { closed.Store(true); return nil })

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if err := app.RunContext(ctx); err != nil {
		t.Fatalf("cancel is a normal stop: %v", err)
	}
	if a.shutdown.Load() != 1 || b.shutdown.Load() != 1 || !closed.Load() {
		t.Fatalf("every component must be shut down once")
	}
}

func TestRunReturnsComponentError(t *testing.T) {
	boom := errors.New("listen: address in use")
	ok := newBlocking(nil)
	app := NewWith(ok, newBlocking(boom))
	if err := app.RunContext(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("expected component error, got %v", err)
	}
	if ok.shutdown.Load() != 1 {
		t.Fatalf("healthy components must be shut down after a failure")
	}
}
