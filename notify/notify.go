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

// Package notify 是操作員提示（toast）的出口。
//
// 列表抓取失敗與動作成功 / 失敗都只會發出一則短暫訊息，不重試、不阻塞畫面。
package notify

import (
	"log/slog"
	"sync"
	"time"
)

// Level 是提示的種類。
type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

// Notifier 接收提示；實作需可被多個 goroutine 使用。
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

// Toast 是一則已發出的提示。
type Toast struct {
	ID      uint64    `json:"id"`
	Level   Level     `json:"level"`
	Message string    `json:"message"`
	At      time.Time `json:"at"`
}

// Nop 丟棄所有提示。
type Nop struct{}

func (Nop) Success(string) {}
func (Nop) Error(string)   {}

// ============================================================
// ** Slog **
// ============================================================

// Slog 把提示寫成結構化 log（server 端預設）。
type Slog struct {
	Log *slog.Logger
}

func (s Slog) Success(msg string) {
	if s.Log != nil {
		s.Log.Info("toast", "level", LevelSuccess, "msg", msg)
	}
}

func (s Slog) Error(msg string) {
	if s.Log != nil {
		s.Log.Warn("toast", "level", LevelError, "msg", msg)
	}
}

// ============================================================
// ** Feed **
// ============================================================

// Feed 以固定大小的環狀緩衝保存最近的提示，供輪詢（/v1/toasts、console）讀取。
type Feed struct {
	mu   sync.Mutex
	buf  []Toast
	next int
	full bool
	seq  uint64
	now  func() time.Time
}

// NewFeed 建立容量為 size 的 Feed（size <= 0 時為 64）。
func NewFeed(size int) *Feed {
	if size <= 0 {
		size = 64
	}
	return &Feed{buf: make([]Toast, size), now: time.Now}
}

func (f *Feed) Success(msg string) { f.push(LevelSuccess, msg) }
func (f *Feed) Error(msg string)   { f.push(LevelError, msg) }

func (f *Feed) push(lv Level, msg string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	f.buf[f.next] = Toast{ID: f.seq, Level: lv, Message: msg, At: f.now()}
	f.next = (f.next + 1) % len(f.buf)
	if f.next == 0 {
		f.full = true
	}
}

// Since 回傳 ID 大於 after 的提示（由舊到新）；已被覆寫的舊提示不再回傳。
func (f *Feed) Since(after uint64) []Toast {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Toast, 0, len(f.buf))
	start, n := 0, f.next
	if f.full {
		start, n = f.next, len(f.buf)
	}
	for i := 0; i < n; i++ {
		t := f.buf[(start+i)%len(f.buf)]
		if t.ID > after {
			out = append(out, t)
		}
	}
	return out
}

// Last 回傳最新一則提示的 ID（尚無提示時為 0）。
func (f *Feed) Last() uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.seq
}

// ============================================================
// ** Recorder / Multi **
// ============================================================

// Recorder 記錄所有提示，用於測試。
type Recorder struct {
	mu     sync.Mutex
	toasts []Toast
}

func (r *Recorder) Success(msg string) { r.add(LevelSuccess, msg) }
func (r *Recorder) Error(msg string)   { r.add(LevelError, msg) }

func (r *Recorder) add(lv Level, msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.toasts = append(r.toasts, Toast{ID: uint64(len(r.toasts) + 1), Level: lv, Message: msg, At: time.Now()})
}

// Toasts 回傳所有提示的副本。
func (r *Recorder) Toasts() []Toast {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Toast(nil), r.toasts...)
}

// Count 回傳指定種類的提示數量。
func (r *Recorder) Count(lv Level) int {
	n := 0
	for _, t := range r.Toasts() {
		if t.Level == lv {
			n++
		}
	}
	return n
}

// Multi 把同一則提示送給多個 Notifier。
type Multi []Notifier

func (m Multi) Success(msg string) {
	for _, n := range m {
		n.Success(msg)
	}
}

func (m Multi) Error(msg string) {
	for _, n := range m {
		n.Error(msg)
	}
}
