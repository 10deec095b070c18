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

package action

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/leonardoelit/backoffice/errs"
	"github.com/shopspring/decimal"
)

// Decision 是不需額外輸入的核准 / 拒絕（出入金審核）。
type Decision struct {
	Accept bool `json:"accept"`
}

// Verb 回傳 accept 或 reject。
func (d Decision) Verb() string {
	if d.Accept {
		return "accept"
	}
	return "reject"
}

// Resolution 是帶金額與備註的核准 / 拒絕（bonus 申請）。
// 只有 accept 且 bonus 類型不是零金額類型時，金額必須大於 0。
type Resolution struct {
	Accept    bool            `json:"accept"`
	Amount    decimal.Decimal `json:"amount"`
	Note      string          `json:"note"      validate:"max=500"`
	ZeroValue bool            `json:"-"`
}

// Adjustment 是手動調整餘額或手動加值 bonus。
type Adjustment struct {
	PlayerID  string          `json:"playerId"  validate:"required"`
	Amount    decimal.Decimal `json:"amount"`
	Direction string          `json:"direction" validate:"oneof=Inc Dec"`
	Reason    string          `json:"reason"    validate:"required,max=500"`
}

// IPBan 是封鎖 IP 的輸入。
type IPBan struct {
	IP     string `json:"ip"     validate:"required,ip"`
	Reason string `json:"reason" validate:"required,max=500"`
	Days   int    `json:"days"   validate:"gte=0,lte=3650"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterStructValidation(func(sl validator.StructLevel) {
		r := sl.Current().Interface().(Resolution)
		if r.Accept && !r.ZeroValue && !r.Amount.IsPositive() {
			sl.ReportError(r.Amount, "Amount", "amount", "gt0", "")
		}
	}, Resolution{})
	v.RegisterStructValidation(func(sl validator.StructLevel) {
		a := sl.Current().Interface().(Adjustment)
		if !a.Amount.IsPositive() {
			sl.ReportError(a.Amount, "Amount", "amount", "gt0", "")
		}
	}, Adjustment{})
	return v
}

// Validate 檢查動作輸入；錯誤以 Warn 回傳，訊息可直接顯示給操作員。
func Validate(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return errs.Wrap(err, "validate input")
	}
	msgs := make([]string, 0, len(ve))
	for _, fe := range ve {
		msgs = append(msgs, describe(fe))
	}
	return errs.NewWarn(strings.Join(msgs, "; "))
}

func describe(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field()[:1]) + fe.Field()[1:]
	switch fe.Tag() {
	case "gt0":
		return field + " must be greater than 0"
	case "required":
		return field + " is required"
	case "oneof":
		return field + " must be one of " + fe.Param()
	case "ip":
		return field + " must be a valid IP address"
	case "max":
		return field + " must be at most " + fe.Param() + " characters"
	default:
		return field + " is invalid"
	}
}
