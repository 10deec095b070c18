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

package query

import (
	"net/url"
	"testing"
	"time"

	"github.com/leonardoelit/backoffice/daterange"
	"github.com/shopspring/decimal"
)

type sampleFilter struct {
	Paging
	PlayerID  string             `query:"playerId"`
	TypeName  string             `query:"typeName"`
	IsOnline  *bool              `query:"isOnline"`
	Blocked   bool               `query:"blocked"`
	MinAmount decimal.Decimal    `query:"minAmount"`
	Created   daterange.Interval `query:"MinCreatedLocal,to=MaxCreatedLocal,layout=dmy"`
	Statuses  []string           `query:"status"`
	Internal  string
}

func ptr[T any](v T) *T { return &v }

func TestEncodeOmitsUnsetFields(t *testing.T) {
	f := sampleFilter{Paging: Paging{PageNumber: 1, PageSize: 25}, PlayerID: "7"}
	q, err := Encode(f)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	want := url.Values{"pageNumber": {"1"}, "pageSize": {"25"}, "playerId": {"7"}}
	if q.Encode() != want.Encode() {
		t.Fatalf("got %q want %q", q.Encode(), want.Encode())
	}
	for _, k := range []string{"typeName", "isOnline", "blocked", "minAmount", "MinCreatedLocal", "status", "Internal"} {
		if _, ok := q[k]; ok {
			t.Fatalf("%s must be absent, got %q", k, q.Get(k))
		}
	}
}

func TestEncodeSendsScalarsAsStrings(t *testing.T) {
	day := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	f := sampleFilter{
		IsOnline:  ptr(false),
		Blocked:   true,
		MinAmount: decimal.RequireFromString("12.50"),
		Created:   daterange.Interval{From: day, To: day.AddDate(0, 0, 1)},
		Statuses:  []string{"Pending", "Success"},
	}
	q, err := Encode(&f)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if q.Get("isOnline") != "false" {
		t.Fatalf("explicit false must be sent, got %q", q.Get("isOnline"))
	}
	if q.Get("blocked") != "true" || q.Get("minAmount") != "12.5" {
		t.Fatalf("unexpected scalars: %v", q)
	}
	if q.Get("MinCreatedLocal") != "15-03-24" || q.Get("MaxCreatedLocal") != "15-03-24" {
		t.Fatalf("unexpected date bounds: %v", q)
	}
	if len(q["status"]) != 2 {
		t.Fatalf("slice must repeat the key: %v", q["status"])
	}
}

func TestEncodeRejectsNonStruct(t *testing.T) {
	if _, err := Encode(42); err == nil {
		t.Fatalf("expected error for non-struct filter")
	}
	var nilFilter *sampleFilter
	if _, err := Encode(nilFilter); err == nil {
		t.Fatalf("expected error for nil filter")
	}
}

func TestMergeKeepsUnrelatedFields(t *testing.T) {
	base := sampleFilter{Paging: Paging{PageNumber: 3, PageSize: 50}, PlayerID: "7", TypeName: "deposit"}
	got := Merge(base, sampleFilter{Paging: Paging{PageNumber: 1}})
	if got.PageNumber != 1 {
		t.Fatalf("page number must be overridden, got %d", got.PageNumber)
	}
	if got.PageSize != 50 || got.PlayerID != "7" || got.TypeName != "deposit" {
		t.Fatalf("unrelated fields changed: %+v", got)
	}
	if base.PageNumber != 3 {
		t.Fatalf("merge must not mutate base")
	}
}

func TestChangedIgnoresPaging(t *testing.T) {
	defaults := sampleFilter{Paging: Paging{PageNumber: 1, PageSize: 25}, TypeName: "deposit"}
	draft := WithPaging(defaults, Paging{PageNumber: 4, PageSize: 100, SortField: "amount", SortDirection: Desc})
	if Changed(draft, defaults, PagingKeys...) {
		t.Fatalf("paging alone must not count as a filter")
	}
	draft.PlayerID = "9"
	if !Changed(draft, defaults, PagingKeys...) {
		t.Fatalf("player id must count as a filter")
	}
}

func TestPagingRoundTrip(t *testing.T) {
	f := sampleFilter{}
	f = UpdatePaging(f, func(p *Paging) { p.PageNumber = 2; p.SortField = "id" })
	if p := PagingOf(f); p.PageNumber != 2 || p.SortField != "id" {
		t.Fatalf("unexpected paging: %+v", p)
	}
	if p := PagingOf(struct{ X int }{}); p != (Paging{}) {
		t.Fatalf("filters without paging must report zero paging")
	}
	if NormDirection("DESC") != Desc || NormDirection("up") != "" {
		t.Fatalf("unexpected direction normalization")
	}
}

func TestSetFieldAndDecode(t *testing.T) {
	clock := At(func() time.Time { return time.Date(2024, 3, 15, 10, 0, 0, 0, time.Local) })

	var f sampleFilter
	if err := SetField(&f, "isonline", "true"); err != nil || f.IsOnline == nil || !*f.IsOnline {
		t.Fatalf("isOnline: %v %v", f.IsOnline, err)
	}
	if err := SetField(&f, "isOnline", ""); err != nil || f.IsOnline != nil {
		t.Fatalf("empty value must clear the pointer")
	}
	if err := SetField(&f, "minAmount", "abc"); err == nil {
		t.Fatalf("expected invalid amount error")
	}
	if err := SetField(&f, "nope", "1"); err == nil {
		t.Fatalf("expected unknown field error")
	}
	if err := SetField(&f, "MinCreatedLocal", "today", clock); err != nil {
		t.Fatalf("preset: %v", err)
	}
	if f.Created.From.Day() != 15 || f.Created.To.Day() != 16 {
		t.Fatalf("unexpected preset interval: %+v", f.Created)
	}

	var g sampleFilter
	err := Decode(url.Values{
		"pageNumber":      {"2"},
		"status":          {"Pending", "Fail"},
		"MinCreatedLocal": {"2024-03-01"},
		"MaxCreatedLocal": {"2024-03-05"},
		"tab":             {"overview"},
	}, &g)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if g.PageNumber != 2 || len(g.Statuses) != 2 {
		t.Fatalf("unexpected decode: %+v", g)
	}
	if g.Created.To.Day() != 6 {
		t.Fatalf("date-only upper bound must include the whole day, got %v", g.Created.To)
	}
	if err := SetField(&g, "MaxCreatedLocal", "2024-02-01"); err == nil {
		t.Fatalf("expected inverted range error")
	}
}

func TestBodyMatchesEncode(t *testing.T) {
	b, err := Body(sampleFilter{PlayerID: "7", Statuses: []string{"a", "b"}})
	if err != nil {
		t.Fatalf("body: %v", err)
	}
	if b["playerId"] != "7" {
		t.Fatalf("unexpected body: %v", b)
	}
	if s, ok := b["status"].([]string); !ok || len(s) != 2 {
		t.Fatalf("multi values must be a list: %v", b["status"])
	}
	rf, ok := IntervalField(sampleFilter{})
	if !ok || rf.Name != "MinCreatedLocal" || rf.To != "MaxCreatedLocal" || rf.Layout != daterange.LayoutDMY {
		t.Fatalf("unexpected interval field: %+v", rf)
	}
	if !rf.Has("maxcreatedlocal") || rf.Has("playerId") {
		t.Fatalf("unexpected Has result")
	}
	if _, ok := IntervalField(Paging{}); ok {
		t.Fatalf("paging has no interval")
	}
}

func TestDatesUseTheClockLocation(t *testing.T) {
	plus3 := time.FixedZone("UTC+3", 3*60*60)
	clock := At(func() time.Time { return time.Date(2024, 3, 5, 1, 0, 0, 0, plus3) })

	var preset, explicit sampleFilter
	if err := SetField(&preset, "MinCreatedLocal", "today", clock); err != nil {
		t.Fatalf("preset: %v", err)
	}
	if err := Decode(url.Values{"MinCreatedLocal": {"2024-03-05"}, "MaxCreatedLocal": {"2024-03-05"}}, &explicit, clock); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !preset.Created.From.Equal(explicit.Created.From) || !preset.Created.To.Equal(explicit.Created.To) {
		t.Fatalf("preset and explicit dates disagree: %+v vs %+v", preset.Created, explicit.Created)
	}
	if explicit.Created.From.Location() != plus3 {
		t.Fatalf("explicit dates must be parsed in the clock zone, got %v", explicit.Created.From.Location())
	}
	iv, ok := IntervalOf(&explicit, "minCreatedLocal")
	if !ok || !iv.From.Equal(explicit.Created.From) {
		t.Fatalf("IntervalOf: %+v %v", iv, ok)
	}
}
