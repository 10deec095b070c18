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

package profile

import (
	"math"
	"slices"

	"github.com/leonardoelit/backoffice/model"
	"github.com/shopspring/decimal"
	"gonum.org/v1/gonum/stat"
)

// statsSample 是統計頁讀取的最近帳變筆數。
const statsSample = 100

// Stats 是統計分頁的內容。
//
// 金額合計來自平台的玩家資料；分布統計（平均、標準差、中位數、最大值）
// 以最近 statsSample 筆帳變的帶號金額計算，只用於顯示。
type Stats struct {
	TotalDeposit    decimal.Decimal `json:"totalDeposit"`
	TotalWithdrawal decimal.Decimal `json:"totalWithdrawal"`
	NetDeposit      decimal.Decimal `json:"netDeposit"`
	GGR             decimal.Decimal `json:"ggr"`
	DepositCount    int             `json:"depositCount"`
	WithdrawalCount int             `json:"withdrawalCount"`

	Sample  int     `json:"sample"`
	Mean    float64 `json:"mean"`
	StdDev  float64 `json:"stdDev"`
	Median  float64 `json:"median"`
	Largest float64 `json:"largest"`
}

// Summarize 計算統計分頁的內容。
func Summarize(p model.Player, ledger []model.Transaction) Stats {
	st := Stats{
		TotalDeposit:    p.TotalDeposit,
		TotalWithdrawal: p.TotalWithdrawal,
		NetDeposit:      p.TotalDeposit.Sub(p.TotalWithdrawal),
		GGR:             p.GGR(),
		DepositCount:    p.DepositCount,
		WithdrawalCount: p.WithdrawalCount,
		Sample:          len(ledger),
	}
	if len(ledger) == 0 {
		return st
	}
	xs := make([]float64, len(ledger))
	for i, t := range ledger {
		xs[i] = t.Signed().InexactFloat64()
	}
	st.Mean, st.StdDev = stat.MeanStdDev(xs, nil)
	if math.IsNaN(st.StdDev) {
		st.StdDev = 0
	}
	slices.Sort(xs)
	st.Median = stat.Quantile(0.5, stat.Empirical, xs, nil)
	st.Largest = xs[len(xs)-1]
	return st
}
