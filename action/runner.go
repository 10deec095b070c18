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

// Package action 執行操作員的確認動作（核准、拒絕、加值 ...）。
//
// 流程固定為：確認 -> 呼叫一次 mutation ->
//   - 成功：成功提示、呼叫端的 refetch 恰好一次、關閉。
//   - 失敗：以平台訊息發錯誤提示、保持開啟、可再次送出。
//
// submitting 旗標只擋住同一個 Runner 的重複送出，不是伺服器端的冪等保證；
// 每次送出另外附上 Idempotency-Key 供平台對帳。
package action

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/leonardoelit/backoffice/apiclient"
	"github.com/leonardoelit/backoffice/audit"
	"github.com/leonardoelit/backoffice/errs"
	"github.com/leonardoelit/backoffice/notify"
)

// DefaultErrorMessage 是平台沒有給訊息時的錯誤提示。
const DefaultErrorMessage = "Action failed"

// ErrBusy 表示上一次送出尚未完成。
var ErrBusy = errs.NewWarn("action already in progress")

// Mutation 呼叫一次平台 mutation，回傳平台的成功訊息。
type Mutation func(ctx context.Context) (string, error)

// Action 描述一次動作。
type Action struct {
	Name   string // 例如 financial.accept
	Target string // 例如 financial:42
	Do     Mutation
}

// Runner 是一個動作對話框的狀態。
type Runner struct {
	notifier notify.Notifier
	journal  audit.Journal
	log      *slog.Logger
	operator func(ctx context.Context) string
	newKey   func() string

	mu         sync.Mutex
	open       bool
	submitting bool
}

// Option 設定 Runner。
type Option func(*Runner)

func WithNotifier(n notify.Notifier) Option {
	return func(r *Runner) {
		if n != nil {
			r.notifier = n
		}
	}
}

func WithJournal(j audit.Journal) Option {
	return func(r *Runner) {
		if j != nil {
			r.journal = j
		}
	}
}

func WithLogger(log *slog.Logger) Option {
	return func(r *Runner) {
		if log != nil {
			r.log = log
		}
	}
}

// WithOperator 設定取得操作員名稱的方式（寫入稽核紀錄）。
func WithOperator(fn func(ctx context.Context) string) Option {
	return func(r *Runner) {
		if fn != nil {
			r.operator = fn
		}
	}
}

// WithKeys 替換 Idempotency-Key 產生器（測試用）。
func WithKeys(fn func() string) Option {
	return func(r *Runner) {
		if fn != nil {
			r.newKey = fn
		}
	}
}

// NewRunner 建立 Runner。
func NewRunner(opts ...Option) *Runner {
	r := &Runner{
		notifier: notify.Nop{},
		journal:  audit.Nop{},
		log:      slog.New(slog.DiscardHandler),
		operator: func(context.Context) string { return "" },
		newKey:   uuid.NewString,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Open 開啟對話框。
func (r *Runner) Open() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.open = true
}

// Close 關閉對話框；送出中不可關閉。
func (r *Runner) Close() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.submitting {
		return false
	}
	r.open = false
	return true
}

func (r *Runner) IsOpen() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.open
}

// Submitting 回報是否正在送出（送出按鈕應停用）。
func (r *Runner) Submitting() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.submitting
}

// Submit 執行 a；成功後呼叫 refetch（可為 nil）恰好一次並關閉。
func (r *Runner) Submit(ctx context.Context, a Action, refetch func(context.Context) error) error {
	r.mu.Lock()
	if r.submitting {
		r.mu.Unlock()
		return ErrBusy
	}
	r.submitting = true
	r.open = true
	r.mu.Unlock()

	key := r.newKey()
	msg, err := a.Do(apiclient.WithIdempotencyKey(ctx, key))

	r.mu.Lock()
	r.submitting = false
	r.mu.Unlock()

	if err != nil {
		text := errs.UserMessage(err, DefaultErrorMessage)
		r.log.Warn("action.failed", "action", a.Name, "target", a.Target, "key", key, "err", err)
		r.notifier.Error(text)
		return err
	}

	if msg == "" {
		msg = "Done"
	}
	r.notifier.Success(msg)
	entry := audit.Entry{At: time.Now(), Operator: r.operator(ctx), Action: a.Name, Target: a.Target, Key: key, Message: msg}
	if jerr := r.journal.Record(ctx, entry); jerr != nil {
		r.log.Warn("action.audit", "action", a.Name, "err", jerr)
	}
	if refetch != nil {
		if rerr := refetch(ctx); rerr != nil {
			r.log.Debug("action.refetch", "action", a.Name, "err", rerr)
		}
	}
	r.Close()
	return nil
}
