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

// Package v1 是 backoffice 的 HTTP API（BFF）。
//
// 每個請求各自開啟一個列表 Session / 詳細頁 / 動作對話框，伺服器不保存畫面狀態；
// 列表狀態完全由 URL query 表示（與前端網址列相同）。請求期間產生的提示會同時寫入
// Feed（/v1/toasts 輪詢）與回應的 toasts 欄位。
package v1

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/leonardoelit/backoffice"
	"github.com/leonardoelit/backoffice/action"
	"github.com/leonardoelit/backoffice/collection"
	"github.com/leonardoelit/backoffice/dto"
	"github.com/leonardoelit/backoffice/errs"
	"github.com/leonardoelit/backoffice/notify"
	"github.com/leonardoelit/backoffice/screen"
	"github.com/leonardoelit/backoffice/server/httperr"
	"github.com/leonardoelit/backoffice/server/svrcfg"
)

// ============================================================
// ** Handler **
// ============================================================

type Handler struct {
	b       *backoffice.Backoffice
	log     *slog.Logger
	timeout time.Duration
}

func NewHandler(sCfg *svrcfg.SvrCfg) (*Handler, error) {
	if sCfg == nil || sCfg.Backoffice == nil {
		return nil, errs.NewFatal("backoffice is required")
	}
	log := sCfg.Log
	if log == nil {
		log = sCfg.Backoffice.Logger()
	}
	// 詳細頁一次可能打兩到三個平台 API
	timeout := 3 * sCfg.Backoffice.Config().RequestTimeout
	return &Handler{b: sCfg.Backoffice, log: log.With("api", "v1"), timeout: timeout}, nil
}

func (h *Handler) ctx(r *http.Request) (context.Context, context.CancelFunc) {
	return context.WithTimeout(r.Context(), h.timeout)
}

// notifier 回傳同時寫入 Feed 與本次回應的 notifier。
func (h *Handler) notifier() (notify.Notifier, *notify.Recorder) {
	rec := &notify.Recorder{}
	return notify.Multi{h.b.Notifier(), rec}, rec
}

func (h *Handler) open(name string, n notify.Notifier) (screen.Session, error) {
	return h.b.Open(name, collection.WithNotifier(n))
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, op string, err error) {
	httperr.Log(h.log, "v1."+op, err)
	httperr.Errs(w, r, err)
}

// act 透過動作對話框送出 a；成功時回傳結果（訊息取最後一則成功提示），失敗時已寫回錯誤。
func (h *Handler) act(w http.ResponseWriter, r *http.Request, a action.Action) (dto.ActionResult, bool) {
	ctx, cancel := h.ctx(r)
	defer cancel()
	n, rec := h.notifier()
	if err := h.b.Runner(action.WithNotifier(n)).Submit(ctx, a, nil); err != nil {
		h.fail(w, r, a.Name, err)
		return dto.ActionResult{}, false
	}
	res := dto.ActionResult{IsSuccess: true, Toasts: rec.Toasts()}
	for _, t := range res.Toasts {
		if t.Level == notify.LevelSuccess {
			res.Message = t.Message
		}
	}
	return res, true
}

func (h *Handler) run(w http.ResponseWriter, r *http.Request, a action.Action) {
	if res, ok := h.act(w, r, a); ok {
		writeJSON(w, http.StatusOK, res)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// id 解析路徑參數；失敗時已寫回 400。
func (h *Handler) id(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := dto.ParseID(name, chi.URLParam(r, name))
	if err != nil {
		h.fail(w, r, "param", err)
		return 0, false
	}
	return id, true
}

// decode 解析 JSON body；失敗時已寫回 400。
func decode[T any](h *Handler, w http.ResponseWriter, r *http.Request) (*T, bool) {
	v, err := dto.Decode[T](r)
	if err != nil {
		h.fail(w, r, "decode", err)
		return nil, false
	}
	return v, true
}
