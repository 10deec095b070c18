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
	"reflect"
	"strings"
)

// 排序方向
const (
	Asc  = "asc"
	Desc = "desc"
)

// Paging 是每個列表 filter 都嵌入的分頁與排序欄位。
type Paging struct {
	PageNumber    int    `json:"pageNumber,omitempty"    yaml:"pageNumber,omitempty"    query:"pageNumber"`
	PageSize      int    `json:"pageSize,omitempty"      yaml:"pageSize,omitempty"      query:"pageSize"`
	SortField     string `json:"sortField,omitempty"     yaml:"sortField,omitempty"     query:"sortField"`
	SortDirection string `json:"sortDirection,omitempty" yaml:"sortDirection,omitempty" query:"sortDirection"`
}

// PagingKeys 是分頁相關的參數名稱；判斷篩選器是否開啟時會忽略它們。
var PagingKeys = []string{"pageNumber", "pageSize", "sortField", "sortDirection"}

var pagingType = reflect.TypeOf(Paging{})

// NormDirection 將任意大小寫的方向轉成 asc / desc；未知值回傳空字串。
func NormDirection(dir string) string {
	switch strings.ToLower(strings.TrimSpace(dir)) {
	case Asc:
		return Asc
	case Desc:
		return Desc
	default:
		return ""
	}
}

func pagingIndex(t reflect.Type) []int {
	if t.Kind() != reflect.Struct {
		return nil
	}
	if t == pagingType {
		return []int{}
	}
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if sf.Type == pagingType {
			return []int{i}
		}
	}
	return nil
}

// PagingOf 取出 filter 內嵌的 Paging；沒有時回傳零值。
func PagingOf(filter any) Paging {
	v, err := structValue(filter)
	if err != nil {
		return Paging{}
	}
	idx := pagingIndex(v.Type())
	if idx == nil {
		return Paging{}
	}
	if len(idx) == 0 {
		return v.Interface().(Paging)
	}
	return v.FieldByIndex(idx).Interface().(Paging)
}

// WithPaging 回傳替換掉 Paging 後的 filter 副本；filter 沒有 Paging 時原樣回傳。
func WithPaging[F any](filter F, p Paging) F {
	out := filter
	v := reflect.ValueOf(&out).Elem()
	idx := pagingIndex(v.Type())
	if idx == nil {
		return filter
	}
	if len(idx) == 0 {
		v.Set(reflect.ValueOf(p))
		return out
	}
	v.FieldByIndex(idx).Set(reflect.ValueOf(p))
	return out
}

// UpdatePaging 以 fn 修改 filter 的 Paging 並回傳副本。
func UpdatePaging[F any](filter F, fn func(*Paging)) F {
	p := PagingOf(filter)
	fn(&p)
	return WithPaging(filter, p)
}
