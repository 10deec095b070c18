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

// Package screen 把「集合 + 篩選面板 + 表格」組成一個列表畫面。
//
// Def 以具體型別描述一個畫面；Open 回傳與型別無關的 Session，
// 讓 console 與 server 以欄位名稱操作所有列表。
package screen

import (
	"context"
	"io"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/leonardoelit/backoffice/collection"
	"github.com/leonardoelit/backoffice/daterange"
	"github.com/leonardoelit/backoffice/errs"
	"github.com/leonardoelit/backoffice/filterpanel"
	"github.com/leonardoelit/backoffice/query"
	"github.com/leonardoelit/backoffice/table"
)

// Def 描述一個列表畫面。
type Def[F, T any] struct {
	Name     string
	Title    string
	Defaults func() F
	Fetch    collection.Fetcher[F, T]
	Columns  []table.Column[T]
	// Notice 依目前頁面的資料產生提示（例如輪盤權重）；可為 nil。
	Notice func(items []T) []string
	// Now 是日期預設與輸入日期使用的時鐘（含時區）；nil 時為 time.Now。
	Now func() time.Time
}

// Range 是已提交的日期區間狀態。Modified 代表操作員動過區間（不是預設的 All Time）。
type Range struct {
	Field    string           `json:"field"`
	Preset   daterange.Preset `json:"preset"`
	Bounds   daterange.Bounds `json:"bounds"`
	Modified bool             `json:"modified"`
}

// Info 是畫面的名稱與標題。
type Info struct {
	Name  string `json:"name"`
	Title string `json:"title"`
}

// Builder 是型別抹除後的 Def。
type Builder interface {
	Info() Info
	Open(opts ...collection.Option) Session
}

// Session 是一個開啟中的列表畫面。
type Session interface {
	Name() string
	Title() string
	Fields() []string

	Set(field, value string) error
	SetRange(field string, iv daterange.Interval) error
	Custom(field string, from, to time.Time) error
	Preset(p daterange.Preset) error
	Discard()

	Apply(ctx context.Context) error
	Clear(ctx context.Context) error
	Refresh(ctx context.Context) error
	Load(ctx context.Context, values url.Values) error

	Next(ctx context.Context) error
	Prev(ctx context.Context) error
	Goto(ctx context.Context, page int) error
	PageSize(ctx context.Context, size int) error
	Sort(ctx context.Context, field string) error

	View() table.Grid
	FilterOn() bool
	Range() (Range, bool)
	Query() (url.Values, error)
	Item(row int) (any, bool)
	OnChange(fn func()) func()

	Export(ctx context.Context, w io.Writer, format Format, progress io.Writer) (int, error)
}

func (d Def[F, T]) Info() Info { return Info{Name: d.Name, Title: d.Title} }

// Open 建立新的 Session；不會發出請求。
func (d Def[F, T]) Open(opts ...collection.Option) Session {
	var zero F
	now := d.Now
	if now == nil {
		now = time.Now
	}
	c := collection.New(d.Fetch, d.Defaults(), zero, opts...)
	s := &session[F, T]{def: d, coll: c, panel: filterpanel.New(c, query.At(now))}
	if rf, ok := query.IntervalField(c.Defaults()); ok {
		s.rf = rf
		s.picker = daterange.NewPrecise(rf.Layout, func(b daterange.Bounds) { s.bounds = b })
		s.picker.Now = now
		s.follow(c.Defaults(), false)
		s.commit()
	}
	return s
}

type session[F, T any] struct {
	def   Def[F, T]
	coll  *collection.Collection[F, T]
	panel *filterpanel.Panel[F, T]

	// 日期區間（沒有區間欄位時 picker 為 nil）
	rf      query.RangeField
	picker  *daterange.Precise
	bounds  daterange.Bounds
	saved   daterange.Precise
	applied Range
}

func (s *session[F, T]) Name() string  { return s.def.Name }
func (s *session[F, T]) Title() string { return s.def.Title }

// Fields 回傳可以篩選的參數名稱（不含分頁）。
func (s *session[F, T]) Fields() []string {
	var out []string
	for _, n := range query.Names(s.coll.Defaults()) {
		if !isPagingKey(n) {
			out = append(out, n)
		}
	}
	return out
}

func isPagingKey(name string) bool {
	for _, k := range query.PagingKeys {
		if strings.EqualFold(k, name) {
			return true
		}
	}
	return false
}

// ==== ** 日期區間 ** ====

func (s *session[F, T]) rangeField(field string) error {
	if s.picker == nil {
		return errs.Warnf("%s has no date range", s.def.Name)
	}
	if field != "" && !s.rf.Has(field) {
		return errs.Warnf("%s is not the date range of %s (use %s)", field, s.def.Name, s.rf.Name)
	}
	return nil
}

// follow 讓 picker 跟上 filter 中的區間；modified 為 false 時不標記為操作員變更。
func (s *session[F, T]) follow(f F, modified bool) {
	iv, _ := query.IntervalOf(f, s.rf.Name)
	if modified {
		s.picker.SelectInterval(iv)
		return
	}
	s.picker.Reset()
	if !iv.IsZero() {
		s.picker.Picker.SelectInterval(iv)
	}
}

// commit 記下已提交的區間狀態（Discard 會回到這裡）。
func (s *session[F, T]) commit() {
	if s.picker == nil {
		return
	}
	s.saved = *s.picker
	s.applied = Range{Field: s.rf.Name, Preset: s.picker.Preset(), Bounds: s.bounds, Modified: s.picker.Modified()}
}

// Set 設定草稿欄位；區間欄位接受預設名稱或日期，並同步到日期選擇器。
func (s *session[F, T]) Set(field, value string) error {
	if s.picker == nil || !s.rf.Has(field) {
		return s.panel.Set(field, value)
	}
	if strings.EqualFold(field, s.rf.Name) {
		if p, err := daterange.ParsePreset(value); err == nil && p != daterange.Custom {
			return s.Preset(p)
		}
	}
	if err := s.panel.Set(field, value); err != nil {
		return err
	}
	s.follow(s.panel.Draft(), true)
	return nil
}

func (s *session[F, T]) SetRange(field string, iv daterange.Interval) error {
	if err := s.rangeField(field); err != nil {
		return err
	}
	if err := s.panel.SetRange(s.rf.Name, iv); err != nil {
		return err
	}
	s.picker.SelectInterval(iv)
	return nil
}

// Custom 以整天為單位設定自訂區間，to 當天包含在內。
func (s *session[F, T]) Custom(field string, from, to time.Time) error {
	if err := s.rangeField(field); err != nil {
		return err
	}
	if err := s.picker.SelectCustom(from, to); err != nil {
		return err
	}
	return s.panel.SetRange(s.rf.Name, s.picker.Interval())
}

// Preset 把日期區間欄位設為 p（以 Def.Now 計算）。
func (s *session[F, T]) Preset(p daterange.Preset) error {
	if err := s.rangeField(""); err != nil {
		return err
	}
	if err := s.picker.Select(p); err != nil {
		return err
	}
	return s.panel.SetRange(s.rf.Name, s.picker.Interval())
}

// Range 回傳已提交的日期區間；畫面沒有區間欄位時 ok 為 false。
func (s *session[F, T]) Range() (Range, bool) {
	return s.applied, s.picker != nil
}

func (s *session[F, T]) Discard() {
	s.panel.Discard()
	if s.picker != nil {
		*s.picker = s.saved
		s.bounds = s.applied.Bounds
	}
}

func (s *session[F, T]) Apply(ctx context.Context) error {
	s.commit()
	return s.panel.Apply(ctx)
}

func (s *session[F, T]) Clear(ctx context.Context) error {
	if s.picker != nil {
		s.follow(s.coll.Defaults(), false)
		s.commit()
	}
	return s.panel.Clear(ctx)
}

func (s *session[F, T]) Refresh(ctx context.Context) error { return s.coll.Refetch(ctx) }

// Load 以 URL 參數還原整個列表狀態並請求一次。
//
// 除了 filter 欄位與分頁欄位，另外接受 sort / dir（排序）與 preset（日期區間）。
func (s *session[F, T]) Load(ctx context.Context, values url.Values) error {
	v := url.Values{}
	var preset string
	dated := false
	for k, vs := range values {
		switch strings.ToLower(k) {
		case "sort":
			v["sortField"] = vs
		case "dir":
			v["sortDirection"] = vs
		case "preset":
			if len(vs) > 0 {
				preset = vs[0]
			}
		default:
			v[k] = vs
			dated = dated || (s.picker != nil && s.rf.Has(k))
		}
	}
	if err := s.panel.Load(v); err != nil {
		return err
	}
	switch {
	case preset != "":
		p, err := daterange.ParsePreset(preset)
		if err != nil {
			return err
		}
		if err := s.Preset(p); err != nil {
			return err
		}
	case dated:
		s.follow(s.panel.Draft(), true)
	}
	if size := query.PagingOf(s.panel.Draft()).PageSize; size != 0 && !table.ValidPageSize(size) {
		return errs.Warnf("page size must be one of %v", table.PageSizes)
	}
	s.commit()
	return s.panel.Submit(ctx)
}

func (s *session[F, T]) Next(ctx context.Context) error { return table.Next(ctx, s.coll) }
func (s *session[F, T]) Prev(ctx context.Context) error { return table.Prev(ctx, s.coll) }

func (s *session[F, T]) Goto(ctx context.Context, page int) error {
	return table.Goto(ctx, s.coll, page)
}

func (s *session[F, T]) PageSize(ctx context.Context, size int) error {
	return table.SetPageSize(ctx, s.coll, size)
}

func (s *session[F, T]) Sort(ctx context.Context, field string) error {
	return table.Sort(ctx, s.coll, field)
}

// View 建立目前狀態的表格；有 Notice 時附加在 Grid.Notices。
func (s *session[F, T]) View() table.Grid {
	st := s.coll.State()
	g := table.Build(s.def.Columns, st)
	if s.def.Notice != nil && !st.Loading && st.Err == "" {
		g.Notices = s.def.Notice(st.Items)
	}
	return g
}

func (s *session[F, T]) FilterOn() bool { return s.panel.IsFilterOn() }

// Query 回傳目前提交的 filter 的 URL 參數（可分享的連結）。
func (s *session[F, T]) Query() (url.Values, error) {
	return query.Encode(s.coll.Filter())
}

// Item 回傳目前頁面第 row 列（從 1 起算）的資料。
func (s *session[F, T]) Item(row int) (any, bool) {
	items := s.coll.State().Items
	if row < 1 || row > len(items) {
		return nil, false
	}
	return items[row-1], true
}

func (s *session[F, T]) OnChange(fn func()) func() {
	return s.coll.OnChange(func(collection.State[F, T]) { fn() })
}

// ParseRow 解析 console 輸入的列號。
func ParseRow(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return 0, errs.Warnf("invalid row %q", s)
	}
	return n, nil
}
