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

package table

import (
	"fmt"

	"github.com/leonardoelit/backoffice/collection"
	"github.com/leonardoelit/backoffice/query"
)

// SkeletonCell 是載入中時每一格顯示的佔位字串。
const SkeletonCell = "░░░░"

// Column 描述一個欄位：標題、是否可排序（Key 即排序欄位名稱）、取值函式。
type Column[T any] struct {
	Key      string
	Title    string
	Sortable bool
	Right    bool
	Value    func(T) string
}

// Header 是呈現用的欄位標題。
type Header struct {
	Key       string `json:"key"`
	Title     string `json:"title"`
	Sortable  bool   `json:"sortable"`
	Right     bool   `json:"right,omitempty"`
	Direction string `json:"direction,omitempty"`
}

// Grid 是與實體型別無關的表格模型；console 與 server 共用。
type Grid struct {
	Headers   []Header   `json:"headers"`
	Rows      [][]string `json:"rows"`
	Skeleton  bool       `json:"skeleton,omitempty"`
	Error     string     `json:"error,omitempty"`
	Summary   string     `json:"summary"`
	Page      int        `json:"page"`
	Pages     int        `json:"pages"`
	PageSize  int        `json:"pageSize"`
	PageSizes []int      `json:"pageSizes"`
	CanPrev   bool       `json:"canPrev"`
	CanNext   bool       `json:"canNext"`
	Notices   []string   `json:"notices,omitempty"`
}

// Build 依集合狀態建立 Grid。
//
//   - 載入中：PageSize 列佔位列。
//   - 失敗：不輸出列，Error 為 "Error: <訊息>"。
//   - 其他：每個 item 一列。
func Build[F, T any](cols []Column[T], s collection.State[F, T]) Grid {
	paging := query.PagingOf(s.Filter)
	g := Grid{
		Headers:   make([]Header, len(cols)),
		Page:      s.Pagination.CurrentPage,
		Pages:     s.Pagination.TotalPages,
		PageSize:  s.Pagination.PageSize,
		PageSizes: PageSizes,
	}
	for i, c := range cols {
		h := Header{Key: c.Key, Title: c.Title, Sortable: c.Sortable, Right: c.Right}
		if c.Sortable && paging.SortField == c.Key {
			h.Direction = paging.SortDirection
		}
		g.Headers[i] = h
	}
	_, g.CanPrev = PrevPage(s.Pagination)
	_, g.CanNext = NextPage(s.Pagination)

	switch {
	case s.Loading:
		g.Skeleton = true
		n := s.Pagination.PageSize
		if n <= 0 {
			n = paging.PageSize
		}
		g.Rows = make([][]string, n)
		for i := range g.Rows {
			row := make([]string, len(cols))
			for j := range row {
				row[j] = SkeletonCell
			}
			g.Rows[i] = row
		}
		g.CanPrev, g.CanNext = false, false
	case s.Err != "":
		g.Error = "Error: " + s.Err
		g.Rows = [][]string{}
	default:
		g.Rows = make([][]string, len(s.Items))
		for i, it := range s.Items {
			row := make([]string, len(cols))
			for j, c := range cols {
				row[j] = c.Value(it)
			}
			g.Rows[i] = row
		}
	}
	g.Summary = Summary(s.Pagination, len(s.Items))
	return g
}

// Summary 回傳 "Showing a-b of n"；沒有資料時為 "No results"。
func Summary(pg collection.Pagination, shown int) string {
	if pg.TotalCount <= 0 || shown <= 0 {
		return "No results"
	}
	size := max(pg.PageSize, 1)
	from := (max(pg.CurrentPage, 1)-1)*size + 1
	to := min(from+shown-1, pg.TotalCount)
	return fmt.Sprintf("Showing %d-%d of %d", from, to, pg.TotalCount)
}
