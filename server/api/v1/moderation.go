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
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/leonardoelit/backoffice/action"
	"github.com/leonardoelit/backoffice/dto"
	"github.com/leonardoelit/backoffice/errs"
	"github.com/leonardoelit/backoffice/finstate"
	"github.com/leonardoelit/backoffice/model"
)

func target(kind string, id int64) string { return kind + ":" + strconv.FormatInt(id, 10) }

// ============================================================
// ** Financial **
// ============================================================

// FinancialActions 回傳 GET /v1/financial/actions?status=：該狀態可用的動作（終態為空）。
func (h *Handler) FinancialActions(w http.ResponseWriter, r *http.Request) {
	from := finstate.Parse(r.URL.Query().Get("status"))
	evs := finstate.Actions(from)
	out := make([]string, 0, len(evs))
	for _, ev := range evs {
		out = append(out, ev.String())
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": from.String(), "actions": out})
}

// Financial 回傳 POST /v1/financial/{id}/{event}：accept、reject、confirm 或 cancel 一筆財務申請。
//
// body 帶 status 與 typeName 時直接依此檢查轉移；否則先向平台查出該筆申請。
func (h *Handler) Financial(w http.ResponseWriter, r *http.Request) {
	id, ok := h.id(w, r, "id")
	if !ok {
		return
	}
	ev, err := finstate.ParseEvent(chi.URLParam(r, "event"))
	if err != nil {
		h.fail(w, r, "financial", err)
		return
	}
	req, ok := decode[dto.FinancialAction](h, w, r)
	if !ok {
		return
	}
	if req.PlayerID == "" {
		h.fail(w, r, "financial", errs.NewWarn("playerId is required"))
		return
	}
	tx := model.FinancialTransaction{ID: id, PlayerID: req.PlayerID, TypeName: req.TypeName, Status: req.Status, CryptoAddress: req.CryptoAddress}
	if req.Status == "" || req.TypeName == "" {
		ctx, cancel := h.ctx(r)
		tx, err = h.b.FinancialByID(ctx, id, req.PlayerID)
		cancel()
		if err != nil {
			h.fail(w, r, "financial", err)
			return
		}
	}
	fin := h.b.Platform().Financial
	h.run(w, r, action.Action{
		Name:   "financial." + ev.String(),
		Target: target("financial", id),
		Do:     func(ctx context.Context) (string, error) { return fin.Apply(ctx, tx, ev) },
	})
}

// ResolveBonus 回傳 POST /v1/bonus-requests/{id}/resolve。
func (h *Handler) ResolveBonus(w http.ResponseWriter, r *http.Request) {
	id, ok := h.id(w, r, "id")
	if !ok {
		return
	}
	req, ok := decode[dto.BonusResolve](h, w, r)
	if !ok {
		return
	}
	data := model.BonusData{ID: id, PlayerID: req.PlayerID, BonusID: req.BonusID, BonusType: req.BonusType}
	res := action.Resolution{Accept: req.Accept, Amount: req.Amount, Note: req.Note}
	bonuses := h.b.Platform().Bonuses
	h.run(w, r, action.Action{
		Name:   "bonus-request." + action.Decision{Accept: req.Accept}.Verb(),
		Target: target("bonus-request", id),
		Do:     func(ctx context.Context) (string, error) { return bonuses.Resolve(ctx, data, res) },
	})
}

// ============================================================
// ** Player **
// ============================================================

// AdjustBalance 回傳 POST /v1/players/{playerId}/balance。
func (h *Handler) AdjustBalance(w http.ResponseWriter, r *http.Request) {
	playerID := chi.URLParam(r, "playerId")
	req, ok := decode[dto.BalanceAdjust](h, w, r)
	if !ok {
		return
	}
	adj := action.Adjustment{PlayerID: playerID, Amount: req.Amount, Direction: req.Direction, Reason: req.Reason}
	tx := h.b.Platform().Transactions
	h.run(w, r, action.Action{
		Name:   "balance.adjust",
		Target: "player:" + playerID,
		Do:     func(ctx context.Context) (string, error) { return tx.AdjustBalance(ctx, adj) },
	})
}

// CreditBonus 回傳 POST /v1/players/{playerId}/bonus-credit。
func (h *Handler) CreditBonus(w http.ResponseWriter, r *http.Request) {
	playerID := chi.URLParam(r, "playerId")
	req, ok := decode[dto.BonusCredit](h, w, r)
	if !ok {
		return
	}
	adj := action.Adjustment{PlayerID: playerID, Amount: req.Amount, Reason: req.Reason}
	tx := h.b.Platform().Transactions
	h.run(w, r, action.Action{
		Name:   "bonus.credit",
		Target: "player:" + playerID,
		Do:     func(ctx context.Context) (string, error) { return tx.CreditBonus(ctx, adj) },
	})
}

// Permissions 回傳 PUT /v1/players/{playerId}/permissions。
func (h *Handler) Permissions(w http.ResponseWriter, r *http.Request) {
	perm, ok := decode[model.Permissions](h, w, r)
	if !ok {
		return
	}
	perm.PlayerID = chi.URLParam(r, "playerId")
	players := h.b.Platform().Players
	h.run(w, r, action.Action{
		Name:   "player.permissions",
		Target: "player:" + perm.PlayerID,
		Do:     func(ctx context.Context) (string, error) { return players.UpdatePermissions(ctx, *perm) },
	})
}

// BonusPercentage 回傳 PUT /v1/players/{playerId}/bonus-percentage。
func (h *Handler) BonusPercentage(w http.ResponseWriter, r *http.Request) {
	set, ok := decode[model.BonusSettingData](h, w, r)
	if !ok {
		return
	}
	set.PlayerID = chi.URLParam(r, "playerId")
	players := h.b.Platform().Players
	h.run(w, r, action.Action{
		Name:   "player.bonus-percentage",
		Target: "player:" + set.PlayerID,
		Do:     func(ctx context.Context) (string, error) { return players.UpdateBonusPercentage(ctx, *set) },
	})
}

// AddNote 回傳 POST /v1/players/{playerId}/notes；作者為目前的操作員。
func (h *Handler) AddNote(w http.ResponseWriter, r *http.Request) {
	in, ok := decode[dto.NoteInput](h, w, r)
	if !ok {
		return
	}
	note := model.PlayerNote{PlayerID: chi.URLParam(r, "playerId"), Author: h.b.Operator(r.Context()), Content: in.Content}
	notes := h.b.Platform().Notes
	h.run(w, r, action.Action{
		Name:   "note.add",
		Target: "player:" + note.PlayerID,
		Do:     func(ctx context.Context) (string, error) { return notes.Add(ctx, note) },
	})
}

// DeleteNote 回傳 DELETE /v1/notes/{id}。
func (h *Handler) DeleteNote(w http.ResponseWriter, r *http.Request) {
	id, ok := h.id(w, r, "id")
	if !ok {
		return
	}
	notes := h.b.Platform().Notes
	h.run(w, r, action.Action{
		Name:   "note.delete",
		Target: target("note", id),
		Do:     func(ctx context.Context) (string, error) { return notes.Delete(ctx, id) },
	})
}

// BanIP 回傳 POST /v1/iplogs/ban。
func (h *Handler) BanIP(w http.ResponseWriter, r *http.Request) {
	ban, ok := decode[action.IPBan](h, w, r)
	if !ok {
		return
	}
	logs := h.b.Platform().IPLogs
	h.run(w, r, action.Action{
		Name:   "ip.ban",
		Target: "ip:" + ban.IP,
		Do:     func(ctx context.Context) (string, error) { return logs.Ban(ctx, *ban) },
	})
}

// ============================================================
// ** Users **
// ============================================================

// UserDecision 回傳 POST /v1/users/{id}/approve 與 /reject。
func (h *Handler) UserDecision(accept bool) http.HandlerFunc {
	verb := action.Decision{Accept: accept}.Verb()
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := h.id(w, r, "id")
		if !ok {
			return
		}
		users := h.b.Platform().Users
		h.run(w, r, action.Action{
			Name:   "user." + verb,
			Target: target("user", id),
			Do: func(ctx context.Context) (string, error) {
				if accept {
					return users.Approve(ctx, id)
				}
				return users.Reject(ctx, id)
			},
		})
	}
}

// EditUser 回傳 PUT /v1/users/{id}。
func (h *Handler) EditUser(w http.ResponseWriter, r *http.Request) {
	id, ok := h.id(w, r, "id")
	if !ok {
		return
	}
	e, ok := decode[model.UserEdit](h, w, r)
	if !ok {
		return
	}
	e.ID = id
	users := h.b.Platform().Users
	h.run(w, r, action.Action{
		Name:   "user.edit",
		Target: target("user", id),
		Do:     func(ctx context.Context) (string, error) { return users.Edit(ctx, *e) },
	})
}

// DeleteUser 回傳 DELETE /v1/users/{id}。
func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, ok := h.id(w, r, "id")
	if !ok {
		return
	}
	users := h.b.Platform().Users
	h.run(w, r, action.Action{
		Name:   "user.delete",
		Target: target("user", id),
		Do:     func(ctx context.Context) (string, error) { return users.Delete(ctx, id) },
	})
}
