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

// Package table 是列表的排序、分頁控制與呈現。
//
// 控制函式只改提交 filter 的分頁 / 排序欄位並交給 collection 發請求：
//   - 頁碼永遠在 [1, totalPages] 內；已在邊界時 Next / Prev 不發請求。
//   - 點同一欄切換 asc / desc，點新欄回到 asc，兩者都回到第 1 頁。
package table

import (
	"context"
	"slices"

	"github.com/leonardoelit/backoffice/collection"
	"github.com/leonardoelit/backoffice/errs"
	"github.com/leonardoelit/backoffice/query"
)

// PageSizes 是可選的頁大小。
var PageSizes = []int{25, 50, 75, 100}

// ValidPageSize 回報 n 是否為可選的頁大小。
func ValidPageSize(n int) bool { return slices.Contains(PageSizes, n) }

// ToggleSort 回傳點擊 field 欄位後的 Paging。
func ToggleSort(p query.Paging, field string) query.Paging {
	if p.SortField == field {
		if p.SortDirection == query.Asc {
			p.SortDirection = query.Desc
		} else {
			p.SortDirection = query.Asc
		}
	} else {
		p.SortField = field
		p.SortDirection = query.Asc
	}
	p.PageNumber = 1
	return p
}

func lastPage(pg collection.Pagination) int {
	return max(pg.TotalPages, 1)
}

// Clamp 把頁碼限制在 [1, totalPages]（沒有資料時為 1）。
func Clamp(page int, pg collection.Pagination) int {
	return min(max(page, 1), lastPage(pg))
}

// NextPage 回傳下一頁；已在最後一頁時 ok 為 false。
func NextPage(pg collection.Pagination) (int, bool) {
	if pg.CurrentPage >= lastPage(pg) {
		return pg.CurrentPage, false
	}
	return Clamp(pg.CurrentPage+1, pg), true
}

// PrevPage 回傳上一頁；已在第一頁時 ok 為 false。
func PrevPage(pg collection.Pagination) (int, bool) {
	if pg.CurrentPage <= 1 {
		return pg.CurrentPage, false
	}
	return Clamp(pg.CurrentPage-1, pg), true
}

// ============================================================
// ** 對 Collection 的控制 **
// ============================================================

// Sort 切換排序欄位並重抓第 1 頁。
func Sort[F, T any](ctx context.Context, c *collection.Collection[F, T], field string) error {
	if field == "" {
		return errs.NewWarn("sort field is required")
	}
	f := query.UpdatePaging(c.Filter(), func(p *query.Paging) { *p = ToggleSort(*p, field) })
	return c.SetFilter(ctx, f)
}

// Next 前往下一頁；已在最後一頁時不做任何事。
func Next[F, T any](ctx context.Context, c *collection.Collection[F, T]) error {
	page, ok := NextPage(c.State().Pagination)
	if !ok {
		return nil
	}
	return gotoPage(ctx, c, page)
}

// Prev 前往上一頁；已在第一頁時不做任何事。
func Prev[F, T any](ctx context.Context, c *collection.Collection[F, T]) error {
	page, ok := PrevPage(c.State().Pagination)
	if !ok {
		return nil
	}
	return gotoPage(ctx, c, page)
}

// Goto 前往指定頁（會被限制在範圍內）；與目前頁相同時不做任何事。
func Goto[F, T any](ctx context.Context, c *collection.Collection[F, T], page int) error {
	pg := c.State().Pagination
	page = Clamp(page, pg)
	if page == pg.CurrentPage {
		return nil
	}
	return gotoPage(ctx, c, page)
}

func gotoPage[F, T any](ctx context.Context, c *collection.Collection[F, T], page int) error {
	f := query.UpdatePaging(c.Filter(), func(p *query.Paging) { p.PageNumber = page })
	return c.SetFilter(ctx, f)
}

// SetPageSize 改變頁大小並回到第 1 頁。
func SetPageSize[F, T any](ctx context.Context, c *collection.Collection[F, T], size int) error {
	if !ValidPageSize(size) {
		return errs.Warnf("page size must be one of %v", PageSizes)
	}
	f := query.UpdatePaging(c.Filter(), func(p *query.Paging) {
		p.PageSize = size
		p.PageNumber = 1
	})
	return c.SetFilter(ctx, f)
}
