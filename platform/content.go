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

package platform

import (
	"context"
	"net/http"
	"net/url"

	"github.com/leonardoelit/backoffice/action"
	"github.com/leonardoelit/backoffice/apiclient"
	"github.com/leonardoelit/backoffice/errs"
	"github.com/leonardoelit/backoffice/model"
	"github.com/shopspring/decimal"
)

// ============================================================
// ** Bonuses **
// ============================================================

type Bonuses struct{ c *apiclient.Client }

func (b *Bonuses) List(ctx context.Context, f model.BonusFilter) (model.Page[model.Bonus], error) {
	return list[model.Bonus](ctx, b.c, pathBonuses, "bonuses", f)
}

func checkBonus(d model.Bonus) error {
	if d.Name == "" {
		return errs.NewWarn("name is required")
	}
	if d.Min.IsNegative() || d.Max.IsNegative() || d.Percentage.IsNegative() {
		return errs.NewWarn("amounts must not be negative")
	}
	if !d.Max.IsZero() && d.Max.LessThan(d.Min) {
		return errs.NewWarn("max must not be lower than min")
	}
	return nil
}

func (b *Bonuses) Create(ctx context.Context, d model.Bonus) (string, error) {
	if err := checkBonus(d); err != nil {
		return "", err
	}
	return mutate(ctx, b.c, http.MethodPost, pathCreateBonus, nil, d)
}

func (b *Bonuses) Update(ctx context.Context, d model.Bonus) (string, error) {
	if err := requireID(d.ID); err != nil {
		return "", err
	}
	if err := checkBonus(d); err != nil {
		return "", err
	}
	return mutate(ctx, b.c, http.MethodPut, pathUpdateBonus, nil, d)
}

func (b *Bonuses) Delete(ctx context.Context, id int64) (string, error) {
	if err := requireID(id); err != nil {
		return "", err
	}
	return mutate(ctx, b.c, http.MethodDelete, pathDeleteBonus, byID("id", id), nil)
}

// Settings 讀取玩家的 bonus 覆寫設定（profile 的 bonus-percentages）。
func (b *Bonuses) Settings(ctx context.Context, playerID string) ([]model.BonusSettingData, error) {
	if playerID == "" {
		return nil, errs.NewWarn("player id is required")
	}
	page, err := apiclient.GetList[model.BonusSettingData](ctx, b.c, pathBonusSettings, "settings", url.Values{"playerId": []string{playerID}})
	if err != nil {
		return nil, err
	}
	return page.Items, nil
}

func (b *Bonuses) Requests(ctx context.Context, f model.BonusRequestFilter) (model.Page[model.BonusData], error) {
	return list[model.BonusData](ctx, b.c, pathBonusRequests, "bonusRequests", f)
}

type resolveRequest struct {
	ID       int64           `json:"id"`
	PlayerID string          `json:"playerId"`
	IsAccept bool            `json:"isAccept"`
	Amount   decimal.Decimal `json:"amount"`
	Note     string          `json:"note,omitempty"`
}

// Resolve 核准或拒絕 bonus 申請；核准時（非零金額類型）金額必須大於 0。
func (b *Bonuses) Resolve(ctx context.Context, req model.BonusData, r action.Resolution) (string, error) {
	if err := requireID(req.ID); err != nil {
		return "", err
	}
	r.ZeroValue = req.ZeroValue()
	if err := validate(r); err != nil {
		return "", err
	}
	amount := r.Amount
	if !r.Accept {
		amount = decimal.Zero
	}
	return mutate(ctx, b.c, http.MethodPost, pathResolveBonus, nil, resolveRequest{
		ID: req.ID, PlayerID: req.PlayerID, IsAccept: r.Accept, Amount: amount, Note: r.Note,
	})
}

// ============================================================
// ** Wheel **
// ============================================================

type Wheel struct{ c *apiclient.Client }

func (w *Wheel) Prizes(ctx context.Context, f model.PrizeFilter) (model.Page[model.PrizeData], error) {
	return list[model.PrizeData](ctx, w.c, pathPrizes, "prizes", f)
}

func checkPrize(p model.PrizeData) error {
	if err := validate(p); err != nil {
		return err
	}
	if p.Percentage.IsNegative() || p.Percentage.GreaterThan(hundred) {
		return errs.NewWarn("percentage must be between 0 and 100")
	}
	if p.Type == model.PrizeFreespin && (p.FreespinGame == "" || p.FreespinRounds <= 0) {
		return errs.NewWarn("freespin prizes need a game and rounds")
	}
	return nil
}

// CreatePrize 新增獎項；權重總和不等於 100 只是提示，不會擋下儲存。
func (w *Wheel) CreatePrize(ctx context.Context, p model.PrizeData) (string, error) {
	if err := checkPrize(p); err != nil {
		return "", err
	}
	return mutate(ctx, w.c, http.MethodPost, pathCreatePrize, nil, p)
}

func (w *Wheel) UpdatePrize(ctx context.Context, p model.PrizeData) (string, error) {
	if err := requireID(p.ID); err != nil {
		return "", err
	}
	if err := checkPrize(p); err != nil {
		return "", err
	}
	return mutate(ctx, w.c, http.MethodPut, pathUpdatePrize, nil, p)
}

func (w *Wheel) DeletePrize(ctx context.Context, id int64) (string, error) {
	if err := requireID(id); err != nil {
		return "", err
	}
	return mutate(ctx, w.c, http.MethodDelete, pathDeletePrize, byID("id", id), nil)
}

// ============================================================
// ** Messages **
// ============================================================

type Messages struct{ c *apiclient.Client }

func (m *Messages) List(ctx context.Context, f model.MessageFilter) (model.Page[model.PlayerMessage], error) {
	return list[model.PlayerMessage](ctx, m.c, pathMessages, "messages", f)
}

// Send 發送訊息；沒有 PlayerID 時必須是全域訊息。
func (m *Messages) Send(ctx context.Context, msg model.PlayerMessage) (string, error) {
	if err := validate(msg); err != nil {
		return "", err
	}
	if msg.PlayerID == "" && !msg.Global {
		return "", errs.NewWarn("a recipient is required unless the message is global")
	}
	return mutate(ctx, m.c, http.MethodPost, pathSendMessage, nil, msg)
}

func (m *Messages) Delete(ctx context.Context, id int64) (string, error) {
	if err := requireID(id); err != nil {
		return "", err
	}
	return mutate(ctx, m.c, http.MethodDelete, pathDeleteMessage, byID("id", id), nil)
}
