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

package v1

import (
	"bytes"
	"net/http"
	"net/url"

	"github.com/leonardoelit/backoffice/dto"
	"github.com/leonardoelit/backoffice/notify"
	"github.com/leonardoelit/backoffice/screen"
)

// Screens 列出所有列表畫面。
func (h *Handler) Screens(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.b.Screens())
}

// List 回傳 GET /v1/<name>：以 URL query 還原列表狀態並載入一頁。
//
// 支援 filter 欄位、pageNumber、pageSize、sort/dir（或 sortField/sortDirection）與 preset（日期區間）。
func (h *Handler) List(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := h.ctx(r)
		defer cancel()
		n, rec := h.notifier()
		s, err := h.open(name, n)
		if err != nil {
			h.fail(w, r, "list", err)
			return
		}
		if err := s.Load(ctx, r.URL.Query()); err != nil {
			h.fail(w, r, "list", err)
			return
		}
		h.view(w, r, s, rec.Toasts())
	}
}

// Clear 回傳 POST /v1/<name>/clear：清除篩選並回到預設的第一頁。
func (h *Handler) Clear(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := h.ctx(r)
		defer cancel()
		n, rec := h.notifier()
		s, err := h.open(name, n)
		if err != nil {
			h.fail(w, r, "clear", err)
			return
		}
		if err := s.Clear(ctx); err != nil {
			h.fail(w, r, "clear", err)
			return
		}
		h.view(w, r, s, rec.Toasts())
	}
}

func (h *Handler) view(w http.ResponseWriter, r *http.Request, s screen.Session, toasts []notify.Toast) {
	v, err := dto.NewListView(s, toasts)
	if err != nil {
		h.fail(w, r, "view", err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

// Export 回傳 GET /v1/<name>/export?format=csv|json|yaml：依 query 的篩選匯出所有頁面。
func (h *Handler) Export(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		format, err := screen.ParseFormat(q.Get("format"))
		if err != nil {
			h.fail(w, r, "export", err)
			return
		}
		ctx := r.Context()
		s, err := h.open(name, h.b.Notifier())
		if err != nil {
			h.fail(w, r, "export", err)
			return
		}
		if err := s.Load(ctx, without(q, "format")); err != nil {
			h.fail(w, r, "export", err)
			return
		}
		var buf bytes.Buffer
		rows, err := s.Export(ctx, &buf, format, nil)
		if err != nil {
			h.fail(w, r, "export", err)
			return
		}
		h.log.Debug("v1.export", "screen", name, "rows", rows, "format", format)
		w.Header().Set("Content-Type", contentTypes[format])
		w.Header().Set("Content-Disposition", `attachment; filename="`+s.Name()+"."+string(format)+`"`)
		_, _ = buf.WriteTo(w)
	}
}

var contentTypes = map[screen.Format]string{
	screen.CSV:  "text/csv; charset=utf-8",
	screen.JSON: "application/json; charset=utf-8",
	screen.YAML: "application/yaml; charset=utf-8",
}

func without(q url.Values, keys ...string) url.Values {
	out := url.Values{}
	for k, vs := range q {
		out[k] = vs
	}
	for _, k := range keys {
		out.Del(k)
	}
	return out
}
