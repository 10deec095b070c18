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

// Package dto 是 BFF 對外的請求 / 回應結構。
package dto

import (
	"net/url"

	"github.com/leonardoelit/backoffice/notify"
	"github.com/leonardoelit/backoffice/profile"
	"github.com/leonardoelit/backoffice/screen"
	"github.com/leonardoelit/backoffice/table"
	"github.com/leonardoelit/backoffice/wheel"
)

// ListView 是一個列表畫面的回應。
//
// Query 是正規化後的查詢字串（前端寫回網址列即可重現同一頁）。
type ListView struct {
	Screen   string         `json:"screen"`
	Title    string         `json:"title"`
	Query    string         `json:"query"`
	FilterOn bool           `json:"filterOn"`
	Range    *screen.Range  `json:"range,omitempty"`
	Fields   []string       `json:"fields"`
	Grid     table.Grid     `json:"grid"`
	Toasts   []notify.Toast `json:"toasts,omitempty"`
}

// NewListView 由 Session 目前的狀態建立回應。
func NewListView(s screen.Session, toasts []notify.Toast) (ListView, error) {
	q, err := s.Query()
	if err != nil {
		return ListView{}, err
	}
	v := ListView{
		Screen:   s.Name(),
		Title:    s.Title(),
		Query:    q.Encode(),
		FilterOn: s.FilterOn(),
		Fields:   s.Fields(),
		Grid:     s.View(),
		Toasts:   toasts,
	}
	if r, ok := s.Range(); ok {
		v.Range = &r
	}
	return v, nil
}

// ProfileView 是玩家詳細頁的回應。
type ProfileView struct {
	PlayerID string          `json:"playerId"`
	Query    string          `json:"query"`
	Section  profile.Section `json:"section"`
	Toasts   []notify.Toast  `json:"toasts,omitempty"`
}

func NewProfileView(playerID string, sec profile.Section, norm url.Values, toasts []notify.Toast) ProfileView {
	return ProfileView{PlayerID: playerID, Query: norm.Encode(), Section: sec, Toasts: toasts}
}

// ActionResult 是寫入動作的回應；Wheel 只在獎項異動時出現（權重提示，不阻擋）。
type ActionResult struct {
	IsSuccess bool           `json:"isSuccess"`
	Message   string         `json:"message"`
	Wheel     *wheel.Report  `json:"wheel,omitempty"`
	Toasts    []notify.Toast `json:"toasts,omitempty"`
}

// ErrorBody 與平台的失敗回應同形（isSuccess:false + message）。
type ErrorBody struct {
	IsSuccess bool   `json:"isSuccess"`
	Message   string `json:"message"`
	RequestID string `json:"requestId,omitempty"`
}

type Health struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	API     string `json:"api"`
}

// ToastPage 是 /v1/toasts 的回應；Last 給下一次輪詢的 after 參數。
type ToastPage struct {
	Toasts []notify.Toast `json:"toasts"`
	Last   uint64         `json:"last"`
}
