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

package apiclient

import (
	"context"
	"net/http"
	"net/url"

	"github.com/goccy/go-json"
	"github.com/leonardoelit/backoffice/errs"
	"github.com/leonardoelit/backoffice/model"
)

// 找不到指定 key 時依序嘗試的 fallback。
var fallbackKeys = []string{"items", "data"}

// GetList 讀取列表 endpoint。
//
// 平台的列表回應形如 {isSuccess, <entityPlural>: [...], currentPage, totalPages, totalCount}，
// key 是 <entityPlural> 的名稱（例如 "players"、"transactions"）。
func GetList[T any](ctx context.Context, c *Client, path, key string, q url.Values) (model.Page[T], error) {
	return list[T](ctx, c, http.MethodGet, path, key, q, nil)
}

// PostList 與 GetList 相同，但 filter 以 JSON body 送出（少數 endpoint 只接受 POST 篩選）。
func PostList[T any](ctx context.Context, c *Client, path, key string, body any) (model.Page[T], error) {
	return list[T](ctx, c, http.MethodPost, path, key, nil, body)
}

func list[T any](ctx context.Context, c *Client, method, path, key string, q url.Values, body any) (model.Page[T], error) {
	raw, err := c.Do(ctx, method, path, q, body)
	if err != nil {
		return model.Page[T]{}, err
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return model.Page[T]{}, errs.WrapWithExtra(err, "decode list", path)
	}
	var page model.Page[T]
	for _, k := range []struct {
		name string
		dst  *int
	}{
		{"currentPage", &page.CurrentPage},
		{"totalPages", &page.TotalPages},
		{"totalCount", &page.TotalCount},
	} {
		if v, ok := fields[k.name]; ok {
			if err := json.Unmarshal(v, k.dst); err != nil {
				return model.Page[T]{}, errs.WrapWithExtra(err, "decode "+k.name, path)
			}
		}
	}
	items, ok := pick(fields, key)
	if ok {
		if err := json.Unmarshal(items, &page.Items); err != nil {
			return model.Page[T]{}, errs.WrapWithExtra(err, "decode "+key, path)
		}
	}
	if page.Items == nil {
		page.Items = []T{}
	}
	if page.TotalCount == 0 {
		page.TotalCount = len(page.Items)
	}
	if page.TotalPages == 0 && page.TotalCount > 0 {
		page.TotalPages = 1
	}
	if page.CurrentPage == 0 && page.TotalPages > 0 {
		page.CurrentPage = 1
	}
	return page, nil
}

// GetOne 讀取單筆實體；實體位於 key（找不到時嘗試 data）。
func GetOne[T any](ctx context.Context, c *Client, path, key string, q url.Values) (T, error) {
	var zero T
	raw, err := c.Do(ctx, http.MethodGet, path, q, nil)
	if err != nil {
		return zero, err
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return zero, errs.WrapWithExtra(err, "decode entity", path)
	}
	v, ok := pick(fields, key)
	if !ok {
		return zero, errs.Rejected("Not found", http.StatusNotFound)
	}
	var out T
	if err := json.Unmarshal(v, &out); err != nil {
		return zero, errs.WrapWithExtra(err, "decode "+key, path)
	}
	return out, nil
}

func pick(fields map[string]json.RawMessage, key string) (json.RawMessage, bool) {
	if v, ok := fields[key]; ok && string(v) != "null" {
		return v, true
	}
	for _, k := range fallbackKeys {
		if v, ok := fields[k]; ok && string(v) != "null" {
			return v, true
		}
	}
	return nil, false
}
