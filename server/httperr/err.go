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

package httperr

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/goccy/go-json"
	"github.com/leonardoelit/backoffice/dto"
	"github.com/leonardoelit/backoffice/errs"
	"github.com/leonardoelit/backoffice/server/netsvr/middleware"
)

// FallbackMessage 是沒有可顯示訊息（Fatal）時給操作員的文字。
const FallbackMessage = "Something went wrong"

// StatusCode 將錯誤映射成 HTTP status code。
//
// 規則（邊界層最小映射、可預期）：
//   - ctx timeout/cancel → 504/408（請求生命週期問題）
//   - 平台回的 401/403/404 → 原樣轉出（token 失效、權限不足、找不到）
//   - errs.Warn         → 400（操作員輸入或平台業務拒絕）
//   - errs.Fatal        → 502（平台不可用或回應無法解讀）；其他錯誤 500
//
// 注意：本函數屬於 HTTP 邊界層，因此放在 server/*（而不是 core errs）。
func StatusCode(err error) int {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout // 504
	case errors.Is(err, context.Canceled):
		return http.StatusRequestTimeout // 408
	}

	var e *errs.E
	if !errors.As(err, &e) {
		return http.StatusInternalServerError
	}
	switch e.Status {
	case http.StatusUnauthorized, http.StatusForbidden, http.StatusNotFound:
		return e.Status
	}
	switch e.ErrLv {
	case errs.Warn:
		return http.StatusBadRequest // 400
	case errs.Fatal:
		if e.Status != 0 {
			return http.StatusBadGateway // 502
		}
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// Errs 寫回與平台同形的 JSON 錯誤：{isSuccess:false, message}。
//
// message 只會是可以顯示給操作員的內容（errs.UserMessage）；技術細節只進 log。
func Errs(w http.ResponseWriter, r *http.Request, err error) {
	if err == nil {
		return
	}
	status := StatusCode(err)
	body := dto.ErrorBody{Message: errs.UserMessage(err, FallbackMessage)}
	if r != nil {
		body.RequestID = middleware.GetReqId(r)
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// Log 依狀態碼決定 log 等級；400 類的業務拒絕只在 Debug 記錄。
func Log(log *slog.Logger, msg string, err error) {
	if err == nil || log == nil {
		return
	}
	status := StatusCode(err)
	switch {
	case status == 408 || status == 409 || status == 429:
		log.Warn(msg, slog.Int("status", status), slog.Any("err", err))
	case status >= 500 && status < 600:
		log.Error(msg, slog.Int("status", status), slog.Any("err", err))
	default:
		log.Debug(msg, slog.Int("status", status), slog.Any("err", err))
	}
}
