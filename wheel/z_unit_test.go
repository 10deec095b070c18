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

package wheel

import (
	"testing"

	"github.com/leonardoelit/backoffice/model"
	"github.com/shopspring/decimal"
)

func prize(id int64, pct string, active bool, order int) model.PrizeData {
	return model.PrizeData{ID: id, Percentage: decimal.RequireFromString(pct), Active: active, Order: order}
}

func TestWarnWhenActiveSumIsNot100(t *testing.T) {
	prizes := []model.PrizeData{
		prize(1, "50", true, 1),
		prize(2, "30", true, 2),
		prize(3, "15", true, 3),
		prize(4, "40", false, 4),
	}
	r := CheckWeights(prizes)
	if !r.Warn || !r.Sum.Equal(decimal.NewFromInt(95)) || r.Active != 3 {
		t.Fatalf("sum 95 must warn: %+v", r)
	}
	if r.Message == "" {
		t.Fatalf("warning must carry a message")
	}

	prizes[2] = prize(3, "20", true, 3)
	r = CheckWeights(prizes)
	if r.Warn || r.Message != "" {
		t.Fatalf("sum 100 must hide the warning: %+v", r)
	}
}

func TestDecimalSumIsExact(t *testing.T) {
	r := CheckWeights([]model.PrizeData{prize(1, "33.3", true, 1), prize(2, "33.3", true, 2), prize(3, "33.4", true, 3)})
	if r.Warn {
		t.Fatalf("33.3+33.3+33.4 must be exactly 100: %s", r.Sum)
	}
}

func TestWithChangeAndSorted(t *testing.T) {
	prizes := []model.PrizeData{prize(2, "60", true, 2), prize(1, "40", true, 1)}
	if r := WithChange(prizes, prize(1, "35", true, 1)); !r.Warn {
		t.Fatalf("update to 35 must warn: %+v", r)
	}
	if r := WithChange(prizes, prize(0, "10", true, 3)); !r.Warn || !r.Sum.Equal(decimal.NewFromInt(110)) {
		t.Fatalf("new prize must be added to the sum: %+v", r)
	}
	s := Sorted(prizes)
	if s[0].ID != 1 || prizes[0].ID != 2 {
		t.Fatalf("sorted must order by Order without mutating input")
	}
	if r := CheckWeights(nil); !r.Warn {
		t.Fatalf("an empty wheel sums to 0 and must warn")
	}
}
