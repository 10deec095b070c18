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

// Package collection 是「遠端分頁集合」：一個 filter、一個 endpoint、一份目前頁面的資料。
//
// 每個列表畫面都是 Collection[F, T] 的一個實例：F 是該實體的 filter（嵌入 query.Paging），
// T 是列的型別。提交的 filter 每變一次就發一次請求。
//
// 並發規則：
//   - 每次請求都帶遞增序號；序號不是最新的回應一律丟棄（ErrStale），並取消其 context。
//   - WithoutStaleGuard() 回到「誰最後回來誰贏」的舊行為。
//   - 失敗不重試；清空 items、設定 Err，並只發一則錯誤提示。
package collection

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/leonardoelit/backoffice/errs"
	"github.com/leonardoelit/backoffice/model"
	"github.com/leonardoelit/backoffice/notify"
	"github.com/leonardoelit/backoffice/query"
)

// DefaultErrorMessage 是平台沒有給訊息時顯示的文字。
const DefaultErrorMessage = "Failed to fetch data"

// ErrStale 表示回應到達時已有更新的請求，結果被丟棄。
var ErrStale = errs.NewLog("stale response discarded")

// Fetcher 以 filter 呼叫一個列表 endpoint。
type Fetcher[F, T any] func(ctx context.Context, filter F) (model.Page[T], error)

// Pagination 是目前頁面的分頁資訊。
type Pagination struct {
	CurrentPage int `json:"currentPage"`
	TotalPages  int `json:"totalPages"`
	TotalCount  int `json:"totalCount"`
	PageSize    int `json:"pageSize"`
}

// State 是 Collection 的快照。
type State[F, T any] struct {
	Items      []T        `json:"items"`
	Pagination Pagination `json:"pagination"`
	Loading    bool       `json:"loading"`
	Err        string     `json:"error,omitempty"`
	Filter     F          `json:"filter"`
}

// Collection 保存一個列表的提交 filter 與最近一次的結果。可被多個 goroutine 使用。
type Collection[F, T any] struct {
	fetch    Fetcher[F, T]
	defaults F

	mu       sync.Mutex
	filter   F
	items    []T
	page     Pagination
	loading  bool
	errMsg   string
	seq      uint64
	inflight int
	cancel   context.CancelFunc

	listeners map[int]func(State[F, T])
	nextID    int

	guard    bool
	notifier notify.Notifier
	log      *slog.Logger
	fallback string
}

// Option 設定 Collection。
type Option func(*options)

type options struct {
	guard    bool
	notifier notify.Notifier
	log      *slog.Logger
	fallback string
}

func WithNotifier(n notify.Notifier) Option {
	return func(o *options) {
		if n != nil {
			o.notifier = n
		}
	}
}

func WithLogger(log *slog.Logger) Option {
	return func(o *options) {
		if log != nil {
			o.log = log
		}
	}
}

// WithFallbackMessage 替換預設的錯誤訊息。
func WithFallbackMessage(msg string) Option {
	return func(o *options) { o.fallback = msg }
}

// WithoutStaleGuard 關閉序號檢查與取消：所有回應都會寫入狀態，最後回來的覆蓋先前的。
func WithoutStaleGuard() Option {
	return func(o *options) { o.guard = false }
}

// New 建立 Collection；初始 filter = defaults 上覆蓋 initial 中有帶的欄位。
// pageNumber / pageSize 一定存在。建立時不會發請求，呼叫 Refetch 開始第一次載入。
func New[F, T any](fetch Fetcher[F, T], defaults F, initial F, opts ...Option) *Collection[F, T] {
	o := options{
		guard:    true,
		notifier: notify.Nop{},
		log:      slog.New(slog.DiscardHandler),
		fallback: DefaultErrorMessage,
	}
	for _, opt := range opts {
		opt(&o)
	}
	defaults = normalize(defaults, model.DefaultPageSize)
	c := &Collection[F, T]{
		fetch:     fetch,
		defaults:  defaults,
		items:     []T{},
		listeners: map[int]func(State[F, T]){},
		guard:     o.guard,
		notifier:  o.notifier,
		log:       o.log,
		fallback:  o.fallback,
	}
	c.filter = normalize(query.Merge(defaults, initial), query.PagingOf(defaults).PageSize)
	c.page = Pagination{CurrentPage: query.PagingOf(c.filter).PageNumber, PageSize: query.PagingOf(c.filter).PageSize}
	return c
}

func normalize[F any](f F, size int) F {
	return query.UpdatePaging(f, func(p *query.Paging) {
		if p.PageNumber < 1 {
			p.PageNumber = 1
		}
		if p.PageSize < 1 {
			p.PageSize = size
		}
		p.SortDirection = query.NormDirection(p.SortDirection)
		if p.SortField == "" {
			p.SortDirection = ""
		}
	})
}

// Defaults 回傳該實體的預設 filter。
func (c *Collection[F, T]) Defaults() F { return c.defaults }

// Filter 回傳目前提交的 filter。
func (c *Collection[F, T]) Filter() F {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.filter
}

// State 回傳目前狀態的快照。
func (c *Collection[F, T]) State() State[F, T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshot()
}

func (c *Collection[F, T]) snapshot() State[F, T] {
	return State[F, T]{
		Items:      c.items,
		Pagination: c.page,
		Loading:    c.loading,
		Err:        c.errMsg,
		Filter:     c.filter,
	}
}

// OnChange 註冊狀態變化的回呼（開始載入、載入完成、失敗），回傳取消註冊的函式。
// 回呼在觸發變化的 goroutine 上執行，不持有內部鎖。
func (c *Collection[F, T]) OnChange(fn func(State[F, T])) func() {
	c.mu.Lock()
	defer c.mu.Unlock()
	id := c.nextID
	c.nextID++
	c.listeners[id] = fn
	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.listeners, id)
	}
}

func (c *Collection[F, T]) emit(s State[F, T]) {
	c.mu.Lock()
	fns := make([]func(State[F, T]), 0, len(c.listeners))
	for _, fn := range c.listeners {
		fns = append(fns, fn)
	}
	c.mu.Unlock()
	for _, fn := range fns {
		fn(s)
	}
}

// ============================================================
// ** 觸發 **
// ============================================================

// SetFilter 以 f 取代提交的 filter，並發出一次請求（等待其完成）。
func (c *Collection[F, T]) SetFilter(ctx context.Context, f F) error {
	return c.load(ctx, normalize(f, query.PagingOf(c.defaults).PageSize))
}

// Refetch 把 partial 中有帶的欄位覆蓋到目前 filter 上並立即請求；沒有 partial 時以目前 filter 重抓。
// 合併結果成為新的提交 filter。
func (c *Collection[F, T]) Refetch(ctx context.Context, partial ...F) error {
	f := c.Filter()
	for _, p := range partial {
		f = query.Merge(f, p)
	}
	return c.SetFilter(ctx, f)
}

// Reset 回到預設 filter 並請求。
func (c *Collection[F, T]) Reset(ctx context.Context) error {
	return c.SetFilter(ctx, c.defaults)
}

func (c *Collection[F, T]) load(ctx context.Context, f F) error {
	c.mu.Lock()
	c.seq++
	seq := c.seq
	if c.guard && c.cancel != nil {
		c.cancel()
	}
	fctx, cancel := context.WithCancel(ctx)
	if c.guard {
		c.cancel = cancel
	}
	c.filter = f
	c.loading = true
	c.inflight++
	started := c.snapshot()
	c.mu.Unlock()
	c.emit(started)
	defer cancel()

	page, err := c.fetch(fctx, f)

	c.mu.Lock()
	c.inflight--
	if c.guard && seq != c.seq {
		c.mu.Unlock()
		c.log.Debug("collection.stale", "seq", seq)
		return ErrStale
	}
	if c.guard {
		c.cancel = nil
	}
	c.loading = false
	paging := query.PagingOf(f)

	if err != nil {
		if errors.Is(err, context.Canceled) && ctx.Err() != nil {
			done := c.snapshot()
			c.mu.Unlock()
			c.emit(done)
			return err
		}
		c.items = []T{}
		c.page = Pagination{CurrentPage: paging.PageNumber, PageSize: paging.PageSize}
		c.errMsg = errs.UserMessage(err, c.fallback)
		done := c.snapshot()
		c.mu.Unlock()

		c.log.Warn("collection.fetch", "err", err)
		c.notifier.Error(done.Err)
		c.emit(done)
		return err
	}

	items := page.Items
	if items == nil {
		items = []T{}
	}
	cur := page.CurrentPage
	if cur == 0 {
		cur = paging.PageNumber
	}
	c.items = items
	c.page = Pagination{CurrentPage: cur, TotalPages: page.TotalPages, TotalCount: page.TotalCount, PageSize: paging.PageSize}
	c.errMsg = ""
	done := c.snapshot()
	c.mu.Unlock()
	c.emit(done)
	return nil
}
