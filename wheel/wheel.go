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

// Package wheel 檢查幸運輪盤獎項的權重。
//
// 啟用中獎項的百分比總和應為 100；不等於 100 時只顯示警告，不阻擋新增 / 修改。
package wheel

import (
	"slices"

	"github.com/leonardoelit/backoffice/model"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Report 是權重檢查結果。
type Report struct {
	Sum     decimal.Decimal `json:"sum"`
	Active  int             `json:"active"`
	Warn    bool            `json:"warn"`
	Message string          `json:"message,omitempty"`
}

// CheckWeights 加總啟用中獎項的百分比。
func CheckWeights(prizes []model.PrizeData) Report {
	r := Report{Sum: decimal.Zero}
	for _, p := range prizes {
		if !p.Active {
			continue
		}
		r.Active++
		r.Sum = r.Sum.Add(p.Percentage)
	}
	if !r.Sum.Equal(hundred) {
		r.Warn = true
		r.Message = "The sum of active prize percentages must be 100% (currently " + r.Sum.String() + "%)"
	}
	return r
}

// WithChange 回傳假設 p 被新增 / 更新後的檢查結果（以 ID 取代既有獎項，ID 為 0 視為新增）。
func WithChange(prizes []model.PrizeData, p model.PrizeData) Report {
	next := make([]model.PrizeData, 0, len(prizes)+1)
	replaced := false
	for _, cur := range prizes {
		if p.ID != 0 && cur.ID == p.ID {
			next = append(next, p)
			replaced = true
			continue
		}
		next = append(next, cur)
	}
	if !replaced {
		next = append(next, p)
	}
	return CheckWeights(next)
}

// Sorted 依 Order（再依 ID）排序後回傳副本。
func Sorted(prizes []model.PrizeData) []model.PrizeData {
	out := slices.Clone(prizes)
	slices.SortStableFunc(out, func(a, b model.PrizeData) int {
		if a.Order != b.Order {
			return a.Order - b.Order
		}
		switch {
		case a.ID < b.ID:
			return -1
		case a.ID > b.ID:
			return 1
		}
		return 0
	})
	return out
}
