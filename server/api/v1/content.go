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

package v1

import (
	"context"
	"net/http"

	"github.com/leonardoelit/backoffice/action"
	"github.com/leonardoelit/backoffice/model"
	"github.com/leonardoelit/backoffice/wheel"
)

// ============================================================
// ** Wheel **
// ============================================================

// prizes 讀取所有獎項；失敗時回傳 nil（權重提示只是附帶資訊）。
func (h *Handler) prizes(ctx context.Context) []model.PrizeData {
	page, err := h.b.Platform().Wheel.Prizes(ctx, model.PrizeDefaults())
	if err != nil {
		h.log.Debug("v1.prizes", "err", err)
		return nil
	}
	return page.Items
}

// CheckPrize 回傳 POST /v1/prizes/check：假設 body 的獎項被儲存後的權重檢查，不會寫入。
func (h *Handler) CheckPrize(w http.ResponseWriter, r *http.Request) {
	p, ok := decode[model.PrizeData](h, w, r)
	if !ok {
		return
	}
	ctx, cancel := h.ctx(r)
	defer cancel()
	writeJSON(w, http.StatusOK, wheel.WithChange(h.prizes(ctx), *p))
}

// SavePrize 回傳 POST /v1/prizes（新增）與 PUT /v1/prizes/{id}（更新）。
//
// 權重總和不是 100 時照樣儲存，回應的 wheel 欄位帶警告。
func (h *Handler) SavePrize(update bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var id int64
		if update {
			var ok bool
			if id, ok = h.id(w, r, "id"); !ok {
				return
			}
		}
		p, ok := decode[model.PrizeData](h, w, r)
		if !ok {
			return
		}
		wh := h.b.Platform().Wheel
		a := action.Action{Name: "prize.create", Target: "prize:new", Do: func(ctx context.Context) (string, error) { return wh.CreatePrize(ctx, *p) }}
		if update {
			p.ID = id
			a = action.Action{Name: "prize.update", Target: target("prize", id), Do: func(ctx context.Context) (string, error) { return wh.UpdatePrize(ctx, *p) }}
		}
		h.prizeResult(w, r, a)
	}
}

// DeletePrize 回傳 DELETE /v1/prizes/{id}。
func (h *Handler) DeletePrize(w http.ResponseWriter, r *http.Request) {
	id, ok := h.id(w, r, "id")
	if !ok {
		return
	}
	wh := h.b.Platform().Wheel
	h.prizeResult(w, r, action.Action{
		Name:   "prize.delete",
		Target: target("prize", id),
		Do:     func(ctx context.Context) (string, error) { return wh.DeletePrize(ctx, id) },
	})
}

// prizeResult 送出 a，成功後以最新的獎項重新檢查權重。
func (h *Handler) prizeResult(w http.ResponseWriter, r *http.Request, a action.Action) {
	res, ok := h.act(w, r, a)
	if !ok {
		return
	}
	ctx, cancel := h.ctx(r)
	defer cancel()
	if items := h.prizes(ctx); items != nil {
		rep := wheel.CheckWeights(items)
		res.Wheel = &rep
	}
	writeJSON(w, http.StatusOK, res)
}

// ============================================================
// ** Messages **
// ============================================================

// SendMessage 回傳 POST /v1/messages；sender 預設為目前的操作員。
func (h *Handler) SendMessage(w http.ResponseWriter, r *http.Request) {
	msg, ok := decode[model.PlayerMessage](h, w, r)
	if !ok {
		return
	}
	if msg.Sender == "" {
		msg.Sender = h.b.Operator(r.Context())
	}
	to := "player:" + msg.PlayerID
	if msg.Global {
		to = "player:*"
	}
	messages := h.b.Platform().Messages
	h.run(w, r, action.Action{
		Name:   "message.send",
		Target: to,
		Do:     func(ctx context.Context) (string, error) { return messages.Send(ctx, *msg) },
	})
}

// DeleteMessage 回傳 DELETE /v1/messages/{id}。
func (h *Handler) DeleteMessage(w http.ResponseWriter, r *http.Request) {
	id, ok := h.id(w, r, "id")
	if !ok {
		return
	}
	messages := h.b.Platform().Messages
	h.run(w, r, action.Action{
		Name:   "message.delete",
		Target: target("message", id),
		Do:     func(ctx context.Context) (string, error) { return messages.Delete(ctx, id) },
	})
}

// ============================================================
// ** Bonuses **
// ============================================================

// SaveBonus 回傳 POST /v1/bonuses 與 PUT /v1/bonuses/{id}。
func (h *Handler) SaveBonus(update bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var id int64
		if update {
			var ok bool
			if id, ok = h.id(w, r, "id"); !ok {
				return
			}
		}
		b, ok := decode[model.Bonus](h, w, r)
		if !ok {
			return
		}
		bonuses := h.b.Platform().Bonuses
		if !update {
			h.run(w, r, action.Action{Name: "bonus.create", Target: "bonus:new", Do: func(ctx context.Context) (string, error) { return bonuses.Create(ctx, *b) }})
			return
		}
		b.ID = id
		h.run(w, r, action.Action{Name: "bonus.update", Target: target("bonus", id), Do: func(ctx context.Context) (string, error) { return bonuses.Update(ctx, *b) }})
	}
}

// DeleteBonus 回傳 DELETE /v1/bonuses/{id}。
func (h *Handler) DeleteBonus(w http.ResponseWriter, r *http.Request) {
	id, ok := h.id(w, r, "id")
	if !ok {
		return
	}
	bonuses := h.b.Platform().Bonuses
	h.run(w, r, action.Action{
		Name:   "bonus.delete",
		Target: target("bonus", id),
		Do:     func(ctx context.Context) (string, error) { return bonuses.Delete(ctx, id) },
	})
}
