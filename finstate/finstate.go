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

// Package finstate 是出入金申請的狀態機。
//
// 平台以字串回傳狀態；這裡把它收斂成封閉列舉並集中定義轉移表：
//
//	from          accept                         reject                    confirm   cancel
//	Pending       Success / Transferring(crypto  Rejected(withdraw) /      -         Cancel
//	              withdraw)                      Fail(deposit)
//	Transferring  -                              Fail                      Success   Cancel
//
// Success、Fail、Cancel、Rejected 為終態。平台自訂的其他字串解析為 Unknown，原樣顯示、不可操作。
package finstate

import (
	"strings"

	"github.com/leonardoelit/backoffice/errs"
)

// Status 是申請狀態。
type Status uint8

const (
	Unknown Status = iota
	Pending
	Transferring
	Success
	Fail
	Cancel
	Rejected
)

var statusNames = map[Status]string{
	Unknown:      "Unknown",
	Pending:      "Pending",
	Transferring: "Transferring",
	Success:      "Success",
	Fail:         "Fail",
	Cancel:       "Cancel",
	Rejected:     "Rejected",
}

func (s Status) String() string {
	if n, ok := statusNames[s]; ok {
		return n
	}
	return "Unknown"
}

// Terminal 回報狀態是否為終態。
func (s Status) Terminal() bool {
	switch s {
	case Success, Fail, Cancel, Rejected:
		return true
	}
	return false
}

// Parse 解析平台的狀態字串（不分大小寫，接受常見別名）。
func Parse(s string) Status {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pending", "waiting", "new":
		return Pending
	case "transferring", "in_transfer", "intransfer", "processing":
		return Transferring
	case "success", "successful", "completed", "approved":
		return Success
	case "fail", "failed", "error":
		return Fail
	case "cancel", "cancelled", "canceled":
		return Cancel
	case "rejected", "declined":
		return Rejected
	default:
		return Unknown
	}
}

// Event 是操作員可以觸發的動作。
type Event uint8

const (
	Accept Event = iota + 1
	Reject
	Confirm
	CancelEvent
)

var eventNames = map[Event]string{Accept: "accept", Reject: "reject", Confirm: "confirm", CancelEvent: "cancel"}

func (e Event) String() string { return eventNames[e] }

// ParseEvent 解析動作名稱。
func ParseEvent(s string) (Event, error) {
	for e, n := range eventNames {
		if strings.EqualFold(n, strings.TrimSpace(s)) {
			return e, nil
		}
	}
	return 0, errs.Warnf("unknown action %q", s)
}

// Kind 是申請的種類，決定 accept / reject 的落點。
type Kind struct {
	Withdraw bool
	Crypto   bool
}

// KindOf 由 typeName 與是否為加密貨幣建立 Kind。
func KindOf(typeName string, crypto bool) Kind {
	return Kind{Withdraw: strings.EqualFold(typeName, "withdraw"), Crypto: crypto}
}

// Can 回報 from 狀態是否允許 ev。
func Can(from Status, ev Event) bool {
	switch from {
	case Pending:
		return ev == Accept || ev == Reject || ev == CancelEvent
	case Transferring:
		return ev == Reject || ev == Confirm || ev == CancelEvent
	}
	return false
}

// Next 依轉移表回傳 ev 之後的狀態；不允許時回傳 Warn 錯誤。
func Next(from Status, ev Event, k Kind) (Status, error) {
	if !Can(from, ev) {
		return from, errs.Warnf("cannot %s a %s request", ev, from)
	}
	switch ev {
	case Accept:
		if k.Withdraw && k.Crypto {
			return Transferring, nil
		}
		return Success, nil
	case Reject:
		if from == Transferring {
			return Fail, nil
		}
		if k.Withdraw {
			return Rejected, nil
		}
		return Fail, nil
	case Confirm:
		return Success, nil
	case CancelEvent:
		return Cancel, nil
	}
	return from, errs.Warnf("cannot %s a %s request", ev, from)
}

// Actions 列出 from 狀態下可用的動作（依畫面按鈕順序）。
func Actions(from Status) []Event {
	var out []Event
	for _, ev := range []Event{Accept, Confirm, Reject, CancelEvent} {
		if Can(from, ev) {
			out = append(out, ev)
		}
	}
	return out
}
