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
	"net/http"
	"strconv"

	"github.com/leonardoelit/backoffice/dto"
	"github.com/leonardoelit/backoffice/errs"
)

// Toasts 回傳 GET /v1/toasts?after=：序號大於 after 的提示（最舊在前）。
func (h *Handler) Toasts(w http.ResponseWriter, r *http.Request) {
	var after uint64
	if s := r.URL.Query().Get("after"); s != "" {
		n, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			h.fail(w, r, "toasts", errs.NewWarn("after must be a non-negative integer"))
			return
		}
		after = n
	}
	feed := h.b.Feed()
	writeJSON(w, http.StatusOK, dto.ToastPage{Toasts: feed.Since(after), Last: feed.Last()})
}

// Me 回傳 GET /v1/me：目前 token 的操作員。
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	op, err := h.b.WhoAmI(r.Context())
	if err != nil {
		h.fail(w, r, "me", &errs.E{Message: errs.UserMessage(err, "Not authenticated"), Cause: err, Status: http.StatusUnauthorized, ErrLv: errs.Warn})
		return
	}
	writeJSON(w, http.StatusOK, op)
}

const (
	defaultAuditLimit = 50
	maxAuditLimit     = 500
)

// Audit 回傳 GET /v1/audit?operator=&limit=：最近的稽核紀錄（需設定 audit_dsn）。
func (h *Handler) Audit(w http.ResponseWriter, r *http.Request) {
	store, ok := h.b.AuditStore()
	if !ok {
		h.fail(w, r, "audit", &errs.E{Message: "audit store is not configured", Status: http.StatusNotFound, ErrLv: errs.Warn})
		return
	}
	q := r.URL.Query()
	limit := defaultAuditLimit
	if s := q.Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n <= 0 {
			h.fail(w, r, "audit", errs.Warnf("invalid limit %q", s))
			return
		}
		limit = min(n, maxAuditLimit)
	}
	ctx, cancel := h.ctx(r)
	defer cancel()
	entries, err := store.Recent(ctx, q.Get("operator"), limit)
	if err != nil {
		h.fail(w, r, "audit", err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}
