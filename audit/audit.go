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

// Package audit 記錄操作員成功執行的動作（核准、拒絕、加值、封鎖 ...）。
//
// 紀錄只在平台回覆成功後寫入；寫入失敗只記 log，不影響動作本身的結果。
package audit

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Entry 是一筆操作紀錄。
type Entry struct {
	At       time.Time `json:"at"`
	Operator string    `json:"operator"`
	Action   string    `json:"action"`
	Target   string    `json:"target"`
	Key      string    `json:"key"`
	Message  string    `json:"message,omitempty"`
}

// Journal 保存操作紀錄。
type Journal interface {
	Record(ctx context.Context, e Entry) error
}

// Nop 不保存任何紀錄。
type Nop struct{}

func (Nop) Record(context.Context, Entry) error { return nil }

// Slog 把紀錄寫成結構化 log。
type Slog struct {
	Log *slog.Logger
}

func (s Slog) Record(ctx context.Context, e Entry) error {
	if s.Log == nil {
		return nil
	}
	s.Log.InfoContext(ctx, "audit",
		"operator", e.Operator,
		"action", e.Action,
		"target", e.Target,
		"key", e.Key,
		"message", e.Message,
	)
	return nil
}

// Memory 把紀錄保存在記憶體（console 的 history 與測試）。
type Memory struct {
	mu      sync.Mutex
	entries []Entry
}

func (m *Memory) Record(_ context.Context, e Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, e)
	return nil
}

// Entries 回傳紀錄副本（由舊到新）。
func (m *Memory) Entries() []Entry {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Entry(nil), m.entries...)
}

// Multi 把紀錄寫入多個 Journal，回傳第一個錯誤。
type Multi []Journal

func (m Multi) Record(ctx context.Context, e Entry) error {
	var first error
	for _, j := range m {
		if err := j.Record(ctx, e); err != nil && first == nil {
			first = err
		}
	}
	return first
}
