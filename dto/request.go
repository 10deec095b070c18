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

package dto

import (
	"bytes"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"github.com/leonardoelit/backoffice/errs"
	"github.com/shopspring/decimal"
)

// maxBody 是 JSON body 的大小上限（1MiB）。
const maxBody = 1 << 20

// FinancialAction 是出入金審核的 body。
//
// Status / TypeName 是操作員畫面上看到的狀態；缺少 Status 時 server 會向平台查詢該筆申請。
type FinancialAction struct {
	PlayerID      string `json:"playerId"`
	TypeName      string `json:"typeName,omitempty"`
	Status        string `json:"status,omitempty"`
	CryptoAddress string `json:"cryptoAddress,omitempty"`
}

// BonusResolve 是 bonus 申請審核的 body。
type BonusResolve struct {
	PlayerID  string          `json:"playerId"`
	BonusID   int64           `json:"bonusId"`
	BonusType string          `json:"bonusType"`
	Accept    bool            `json:"accept"`
	Amount    decimal.Decimal `json:"amount"`
	Note      string          `json:"note,omitempty"`
}

// BalanceAdjust 是手動調整餘額的 body（玩家由路徑決定）。
type BalanceAdjust struct {
	Amount    decimal.Decimal `json:"amount"`
	Direction string          `json:"direction"`
	Reason    string          `json:"reason"`
}

// BonusCredit 是手動加值 bonus 的 body。
type BonusCredit struct {
	Amount decimal.Decimal `json:"amount"`
	Reason string          `json:"reason"`
}

type NoteInput struct {
	Content string `json:"content"`
}

// Decode 把 POST / PUT 的 JSON body 解碼成 T。
//
// 注意：
//   - 這裡只負責解碼，不做業務檢查；欄位規則由 action / platform 的 validator 決定。
//   - body 超過 1MiB 視為錯誤。
//   - 開啟 DisallowUnknownFields()，未知欄位直接拒絕，避免靜默丟資料。
func Decode[T any](r *http.Request) (*T, error) {
	if r == nil {
		return nil, errs.NewWarn("nil request")
	}
	switch r.Method {
	case http.MethodPost, http.MethodPut, http.MethodPatch:
	default:
		return nil, errs.Warnf("method %s has no body", r.Method)
	}
	if ct := r.Header.Get("Content-Type"); ct != "" && !strings.HasPrefix(ct, "application/json") {
		return nil, errs.Warnf("unsupported content type %q", ct)
	}

	raw, err := io.ReadAll(io.LimitReader(r.Body, maxBody+1))
	if err != nil {
		return nil, errs.Wrap(err, "read body")
	}
	if len(raw) > maxBody {
		return nil, errs.NewWarn("request body too large")
	}
	out := new(T)
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, errs.NewWarn("request body is required")
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(out); err != nil {
		return nil, &errs.E{Message: "invalid json: " + err.Error(), Cause: err, ErrLv: errs.Warn}
	}
	return out, nil
}

// ParseID 解析路徑上的數字 id（必須大於 0）。
func ParseID(name, raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, errs.Warnf("invalid %s %q", name, raw)
	}
	return id, nil
}
