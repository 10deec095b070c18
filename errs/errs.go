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

// Package errs 是整個 backoffice 共用的錯誤型別。
//
// 平台回應的失敗只有一種樣貌（isSuccess:false + message），但對於 HTTP 邊界與 log
// 仍需要知道嚴重度，因此以 ErrLevel 分級：
//   - Warn ：業務拒絕（平台回 isSuccess:false）或操作員輸入不合法。
//   - Fatal：傳輸層失敗、非 2xx、回應無法解碼。
//   - Log  ：只需記錄、不需提示的情況（例如過期回應被丟棄）。
package errs

import (
	"errors"
	"fmt"
)

// ErrLevel : Error 分級，使最上層理解問題嚴重程度
type ErrLevel uint8

const (
	None ErrLevel = iota
	Fatal
	Warn
	Log
)

var errLvMap = map[ErrLevel]string{
	None:  "",
	Fatal: "fatal",
	Warn:  "warn",
	Log:   "log",
}

func ErrLv(errlv ErrLevel) string {
	if str, ok := errLvMap[errlv]; ok {
		return str
	}
	return ""
}

// E 是統一的錯誤型別。
//
// Message 是可以直接顯示給操作員的訊息（toast 內容）；Status 記錄平台回應的 HTTP 狀態碼
// （0 代表不是來自平台回應）；Cause 串接下層錯誤。
type E struct {
	Message string
	Extra   string
	Status  int
	Cause   error
	ErrLv   ErrLevel
}

// Error 實作 error 介面並回傳格式化後的錯誤訊息。
func (e *E) Error() string {
	base := fmt.Sprintf("errlv=%s %s", ErrLv(e.ErrLv), e.Message)
	if e.Status != 0 {
		base += fmt.Sprintf(" [status %d]", e.Status)
	}
	if e.Extra != "" {
		base += " | extra: " + e.Extra
	}
	if e.Cause != nil {
		base += fmt.Sprintf(" (cause: %v)", e.Cause)
	}
	return base
}

// Unwrap 讓 errors.Is / errors.As 能夠向下展開。
func (e *E) Unwrap() error { return e.Cause }

func New(errLv ErrLevel, msg string) *E {
	return &E{Message: msg, ErrLv: errLv}
}

func NewFatal(msg string) *E {
	return &E{Message: msg, ErrLv: Fatal}
}

func NewWarn(msg string) *E {
	return &E{Message: msg, ErrLv: Warn}
}

func NewLog(msg string) *E {
	return &E{Message: msg, ErrLv: Log}
}

func Fatalf(format string, a ...any) *E {
	return NewFatal(fmt.Sprintf(format, a...))
}

func Warnf(format string, a ...any) *E {
	return NewWarn(fmt.Sprintf(format, a...))
}

// Rejected 建立一個「平台業務拒絕」錯誤：訊息原樣保留，讓操作員看到伺服器給的理由。
func Rejected(msg string, status int) *E {
	return &E{Message: msg, Status: status, ErrLv: Warn}
}

// Wrap 以訊息包裝底層錯誤。
//
// ErrLevel 規則：
//   - cause 已經是 *E：沿用其 ErrLv 與 Status。
//   - 其他錯誤（標準庫、三方依賴、網路）：一律視為 Fatal。
func Wrap(cause error, msg string) *E {
	var e *E
	r := New(Fatal, msg)
	if errors.As(cause, &e) {
		r.ErrLv = e.ErrLv
		r.Status = e.Status
	}
	r.Cause = cause
	return r
}

// WrapWithExtra 與 Wrap 相同，但附加上下文字串（例如 endpoint）。
func WrapWithExtra(cause error, msg string, extra string) *E {
	r := Wrap(cause, msg)
	r.Extra = extra
	return r
}

func AsErr(err error) (*E, bool) {
	var e *E
	if errors.As(err, &e) {
		return e, true
	}
	return e, false
}

// UserMessage 取出最適合顯示給操作員的訊息。
//
// 找到最內層帶訊息的 Warn 等級 *E（平台原始訊息通常在最內層）；找不到時回傳 fallback。
// Fatal 的訊息屬於技術細節，只進 log，不顯示給操作員。
func UserMessage(err error, fallback string) string {
	if err == nil {
		return ""
	}
	msg := ""
	for cur := err; cur != nil; cur = errors.Unwrap(cur) {
		if e, ok := cur.(*E); ok && e.ErrLv == Warn && e.Message != "" {
			msg = e.Message
		}
	}
	if msg == "" {
		return fallback
	}
	return msg
}
