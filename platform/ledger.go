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

	"github.com/leonardoelit/backoffice/action"
	"github.com/leonardoelit/backoffice/apiclient"
	"github.com/leonardoelit/backoffice/errs"
	"github.com/leonardoelit/backoffice/finstate"
	"github.com/leonardoelit/backoffice/model"
)

// ============================================================
// ** Transactions **
// ============================================================

type Transactions struct{ c *apiclient.Client }

func (t *Transactions) List(ctx context.Context, f model.TransactionFilter) (model.Page[model.Transaction], error) {
	return list[model.Transaction](ctx, t.c, pathTransactions, "transactions", f)
}

// AdjustBalance 手動調整玩家餘額（Inc 加 / Dec 扣）。
func (t *Transactions) AdjustBalance(ctx context.Context, a action.Adjustment) (string, error) {
	if err := validate(a); err != nil {
		return "", err
	}
	return mutate(ctx, t.c, http.MethodPost, pathAdjustBalance, nil, a)
}

// CreditBonus 手動發放 bonus 餘額；方向固定為 Inc。
func (t *Transactions) CreditBonus(ctx context.Context, a action.Adjustment) (string, error) {
	a.Direction = string(model.Inc)
	if err := validate(a); err != nil {
		return "", err
	}
	return mutate(ctx, t.c, http.MethodPost, pathCreditBonus, nil, a)
}

// ============================================================
// ** Financial **
// ============================================================

type Financial struct{ c *apiclient.Client }

func (f *Financial) List(ctx context.Context, filter model.FinancialFilter) (model.Page[model.FinancialTransaction], error) {
	return list[model.FinancialTransaction](ctx, f.c, pathFinancial, "financialTransactions", filter)
}

type decideRequest struct {
	ID       int64  `json:"id"`
	PlayerID string `json:"playerId"`
	TypeName string `json:"typeName"`
	IsAccept bool   `json:"isAccept"`
}

// Decide 核准或拒絕一筆出入金申請。
func (f *Financial) Decide(ctx context.Context, id int64, playerID, typeName string, accept bool) (string, error) {
	if err := requireID(id); err != nil {
		return "", err
	}
	if playerID == "" || typeName == "" {
		return "", errs.NewWarn("player id and type are required")
	}
	return mutate(ctx, f.c, http.MethodPost, pathDecideFinancial, nil, decideRequest{
		ID: id, PlayerID: playerID, TypeName: typeName, IsAccept: accept,
	})
}

type transferRequest struct {
	ID       int64  `json:"id"`
	PlayerID string `json:"playerId"`
}

// ConfirmTransfer 完成 Transferring 狀態的第二段確認。
func (f *Financial) ConfirmTransfer(ctx context.Context, id int64, playerID string) (string, error) {
	if err := requireID(id); err != nil {
		return "", err
	}
	return mutate(ctx, f.c, http.MethodPost, pathConfirmTransfer, nil, transferRequest{ID: id, PlayerID: playerID})
}

// Cancel 取消一筆尚未完成的申請。
func (f *Financial) Cancel(ctx context.Context, id int64, playerID string) (string, error) {
	if err := requireID(id); err != nil {
		return "", err
	}
	return mutate(ctx, f.c, http.MethodPost, pathCancelFinancial, nil, transferRequest{ID: id, PlayerID: playerID})
}

// Apply 先以狀態轉移表檢查 ev，再呼叫對應的 mutation。
//
// 不允許的轉移直接回 Warn 錯誤，不會打到平台。
func (f *Financial) Apply(ctx context.Context, tx model.FinancialTransaction, ev finstate.Event) (string, error) {
	from := finstate.Parse(tx.Status)
	if _, err := finstate.Next(from, ev, finstate.KindOf(tx.TypeName, tx.IsCrypto())); err != nil {
		return "", err
	}
	switch ev {
	case finstate.Accept:
		return f.Decide(ctx, tx.ID, tx.PlayerID, tx.TypeName, true)
	case finstate.Reject:
		return f.Decide(ctx, tx.ID, tx.PlayerID, tx.TypeName, false)
	case finstate.Confirm:
		return f.ConfirmTransfer(ctx, tx.ID, tx.PlayerID)
	default:
		return f.Cancel(ctx, tx.ID, tx.PlayerID)
	}
}
