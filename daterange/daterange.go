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

// Package daterange 提供日期區間的預設選項（Today / Last 7 Days ...）與兩種選擇器。
//
// 核心只使用一種交換型別：Interval（半開區間 [From, To)）。
// 平台各 endpoint 期待的字串格式並不一致（dd-MM-yy、ISO-8601、yyyy-MM-dd HH:mm:ss），
// 這些格式只在序列化邊界（query 套件、Bounds）才套用，不會滲透到核心邏輯。
package daterange

import (
	"strings"
	"time"

	"github.com/leonardoelit/backoffice/errs"
)

// 平台上出現過的三種時間格式。
const (
	LayoutDMY = "02-01-06"            // dd-MM-yy
	LayoutISO = time.RFC3339          // ISO-8601
	LayoutSQL = "2006-01-02 15:04:05" // yyyy-MM-dd HH:mm:ss
)

// LayoutByName 將 tag 內的短名稱轉成 time layout；未知名稱回傳 ISO。
func LayoutByName(name string) string {
	switch strings.ToLower(name) {
	case "dmy":
		return LayoutDMY
	case "sql":
		return LayoutSQL
	default:
		return LayoutISO
	}
}

// Preset 是具名的日期區間。
type Preset string

const (
	Today      Preset = "today"
	Yesterday  Preset = "yesterday"
	Last7Days  Preset = "last7"
	Last30Days Preset = "last30"
	ThisMonth  Preset = "thismonth"
	LastMonth  Preset = "lastmonth"
	AllTime    Preset = "all"
	Custom     Preset = "custom"
)

// Presets 依畫面上的順序列出所有預設。
var Presets = []Preset{Today, Yesterday, Last7Days, Last30Days, ThisMonth, LastMonth, AllTime, Custom}

func (p Preset) Label() string {
	switch p {
	case Today:
		return "Today"
	case Yesterday:
		return "Yesterday"
	case Last7Days:
		return "Last 7 Days"
	case Last30Days:
		return "Last 30 Days"
	case ThisMonth:
		return "This Month"
	case LastMonth:
		return "Last Month"
	case AllTime:
		return "All Time"
	case Custom:
		return "Custom"
	default:
		return string(p)
	}
}

// ParsePreset 接受 key 或畫面標籤（不分大小寫、忽略空白）。
func ParsePreset(s string) (Preset, error) {
	norm := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), " ", ""))
	for _, p := range Presets {
		if norm == string(p) || norm == strings.ToLower(strings.ReplaceAll(p.Label(), " ", "")) {
			return p, nil
		}
	}
	return "", errs.Warnf("unknown date preset: %q", s)
}

// Interval 是半開區間 [From, To)。零值代表「不限」（All Time）。
type Interval struct {
	From time.Time `json:"from,omitzero"`
	To   time.Time `json:"to,omitzero"`
}

func (i Interval) IsZero() bool { return i.From.IsZero() && i.To.IsZero() }

// Contains 回報 t 是否落在區間內；未設定的一端視為無界。
func (i Interval) Contains(t time.Time) bool {
	if !i.From.IsZero() && t.Before(i.From) {
		return false
	}
	if !i.To.IsZero() && !t.Before(i.To) {
		return false
	}
	return true
}

// Bounds 是舊有畫面傳給下游 filter 的輸出格式。
type Bounds struct {
	MinCreatedLocal string `json:"MinCreatedLocal,omitempty"`
	MaxCreatedLocal string `json:"MaxCreatedLocal,omitempty"`
}

// Format 以指定 layout 輸出 Bounds。
// 上界以「包含式」輸出（To 減一秒），與平台「到當天 23:59:59 為止」的語意一致。
func (i Interval) Format(layout string) Bounds {
	var b Bounds
	if !i.From.IsZero() {
		b.MinCreatedLocal = i.From.Format(layout)
	}
	if !i.To.IsZero() {
		b.MaxCreatedLocal = i.To.Add(-time.Second).Format(layout)
	}
	return b
}

// NewCustom 建立自訂區間，from 必須早於 to。
func NewCustom(from, to time.Time) (Interval, error) {
	if !from.IsZero() && !to.IsZero() && !from.Before(to) {
		return Interval{}, errs.NewWarn("custom range: start must be before end")
	}
	return Interval{From: from, To: to}, nil
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// Resolve 依 now（含時區）計算預設區間。Custom 沒有固定區間，會回傳錯誤。
func Resolve(p Preset, now time.Time) (Interval, error) {
	day := startOfDay(now)
	switch p {
	case Today:
		return Interval{From: day, To: day.AddDate(0, 0, 1)}, nil
	case Yesterday:
		return Interval{From: day.AddDate(0, 0, -1), To: day}, nil
	case Last7Days:
		return Interval{From: day.AddDate(0, 0, -6), To: day.AddDate(0, 0, 1)}, nil
	case Last30Days:
		return Interval{From: day.AddDate(0, 0, -29), To: day.AddDate(0, 0, 1)}, nil
	case ThisMonth:
		first := time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, day.Location())
		return Interval{From: first, To: first.AddDate(0, 1, 0)}, nil
	case LastMonth:
		first := time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, day.Location())
		return Interval{From: first.AddDate(0, -1, 0), To: first}, nil
	case AllTime:
		return Interval{}, nil
	case Custom:
		return Interval{}, errs.NewWarn("custom range needs explicit dates")
	default:
		return Interval{}, errs.Warnf("unknown date preset: %q", string(p))
	}
}

// ParseDate 解析操作員輸入的日期；依序嘗試 yyyy-MM-dd、SQL、ISO 與 dd-MM-yy。
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	s = strings.TrimSpace(s)
	for _, layout := range []string{"2006-01-02", LayoutSQL, LayoutISO, LayoutDMY} {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errs.Warnf("invalid date: %q", s)
}
