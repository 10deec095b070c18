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

// Package filterpanel 保存篩選器的草稿，與 collection 已提交的 filter 分開。
//
// 操作員改的是草稿；只有 Apply 會把草稿提交出去並發請求。
package filterpanel

import (
	"context"
	"net/url"
	"sync"

	"github.com/leonardoelit/backoffice/collection"
	"github.com/leonardoelit/backoffice/daterange"
	"github.com/leonardoelit/backoffice/query"
)

// Panel 是一個列表的篩選面板。
type Panel[F, T any] struct {
	coll *collection.Collection[F, T]

	opts []query.Option

	mu       sync.Mutex
	draft    F
	filterOn bool
}

// New 以集合目前的 filter 作為初始草稿；opts 用於解析操作員輸入的日期（時鐘、時區）。
func New[F, T any](c *collection.Collection[F, T], opts ...query.Option) *Panel[F, T] {
	p := &Panel[F, T]{coll: c, opts: opts, draft: c.Filter()}
	p.filterOn = query.Changed(p.draft, c.Defaults(), query.PagingKeys...)
	return p
}

// Draft 回傳目前草稿。
func (p *Panel[F, T]) Draft() F {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.draft
}

// Edit 直接修改草稿（不發請求）。
func (p *Panel[F, T]) Edit(fn func(*F)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fn(&p.draft)
}

// Set 以參數名稱設定草稿欄位；空字串代表清除該欄位。
func (p *Panel[F, T]) Set(field, value string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return query.SetField(&p.draft, field, value, p.opts...)
}

// SetRange 以日期區間設定草稿中的區間欄位。
func (p *Panel[F, T]) SetRange(field string, iv daterange.Interval) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return query.SetInterval(&p.draft, field, iv)
}

// Load 以 url.Values 覆寫草稿中對應的欄位（server 以 query string 帶入篩選）。
func (p *Panel[F, T]) Load(values url.Values) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return query.Decode(values, &p.draft, p.opts...)
}

// IsFilterOn 回報最近一次提交的草稿是否與預設不同（分頁與排序不算）。
func (p *Panel[F, T]) IsFilterOn() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.filterOn
}

// Apply 提交草稿：沿用目前的頁大小與排序，頁碼回到 1，並發出一次請求。
func (p *Panel[F, T]) Apply(ctx context.Context) error {
	committed := query.PagingOf(p.coll.Filter())
	committed.PageNumber = 1

	p.mu.Lock()
	f := query.WithPaging(p.draft, committed)
	p.draft = f
	p.filterOn = query.Changed(f, p.coll.Defaults(), query.PagingKeys...)
	p.mu.Unlock()

	return p.coll.SetFilter(ctx, f)
}

// Submit 原樣提交草稿（包含草稿中的分頁與排序），用於由 URL 還原整個列表狀態。
func (p *Panel[F, T]) Submit(ctx context.Context) error {
	p.mu.Lock()
	f := p.draft
	p.filterOn = query.Changed(f, p.coll.Defaults(), query.PagingKeys...)
	p.mu.Unlock()
	return p.coll.SetFilter(ctx, f)
}

// Clear 把草稿與提交的 filter 都重設為該實體的預設，並重新請求。
func (p *Panel[F, T]) Clear(ctx context.Context) error {
	d := p.coll.Defaults()
	p.mu.Lock()
	p.draft = d
	p.filterOn = false
	p.mu.Unlock()
	return p.coll.SetFilter(ctx, d)
}

// Discard 丟棄未提交的草稿，回到目前提交的 filter。
func (p *Panel[F, T]) Discard() {
	f := p.coll.Filter()
	p.mu.Lock()
	defer p.mu.Unlock()
	p.draft = f
}
