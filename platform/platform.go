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

// Package platform 把平台 REST API 綁成具型別的方法。
//
// 列表方法的形狀都是 func(ctx, Filter) (model.Page[T], error)，可直接當作 collection.Fetcher；
// mutation 方法回傳平台的成功訊息，可直接包成 action.Mutation。
package platform

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/leonardoelit/backoffice/action"
	"github.com/leonardoelit/backoffice/apiclient"
	"github.com/leonardoelit/backoffice/errs"
	"github.com/leonardoelit/backoffice/model"
	"github.com/leonardoelit/backoffice/query"
	"github.com/shopspring/decimal"
)

// Platform 聚合所有資源。
type Platform struct {
	Players      *Players
	Notes        *Notes
	Transactions *Transactions
	Financial    *Financial
	Bonuses      *Bonuses
	Wheel        *Wheel
	Messages     *Messages
	IPLogs       *IPLogs
	Users        *Users
}

// New 以同一個 client 建立所有資源。
func New(c *apiclient.Client) *Platform {
	return &Platform{
		Players:      &Players{c: c},
		Notes:        &Notes{c: c},
		Transactions: &Transactions{c: c},
		Financial:    &Financial{c: c},
		Bonuses:      &Bonuses{c: c},
		Wheel:        &Wheel{c: c},
		Messages:     &Messages{c: c},
		IPLogs:       &IPLogs{c: c},
		Users:        &Users{c: c},
	}
}

// ============================================================
// ** helpers **
// ============================================================

// list 把 filter 編成 query string 後讀取列表。
func list[T any](ctx context.Context, c *apiclient.Client, path, key string, filter any) (model.Page[T], error) {
	q, err := query.Encode(filter)
	if err != nil {
		return model.Page[T]{}, errs.WrapWithExtra(err, "encode filter", path)
	}
	return apiclient.GetList[T](ctx, c, path, key, q)
}

func mutate(ctx context.Context, c *apiclient.Client, method, path string, q url.Values, body any) (string, error) {
	res, err := c.Mutate(ctx, method, path, q, body)
	if err != nil {
		return "", err
	}
	return res.Message, nil
}

func byID(name string, id int64) url.Values {
	return url.Values{name: []string{strconv.FormatInt(id, 10)}}
}

var (
	validate = action.Validate
	hundred  = decimal.NewFromInt(100)
)

func requireID(id int64) error {
	if id <= 0 {
		return errs.NewWarn("id is required")
	}
	return nil
}

// ============================================================
// ** Players / Notes **
// ============================================================

const (
	pathPlayers         = "/api/Client/getAllPlayers"
	pathPlayer          = "/api/Client/getPlayerWithId"
	pathPermissions     = "/api/Client/updatePlayerPermissions"
	pathBonusPercentage = "/api/Client/updatePlayerBonusPercentage"
	pathNotes           = "/api/Client/getPlayerNotes"
	pathAddNote         = "/api/Client/addPlayerNote"
	pathDeleteNote      = "/api/Client/deletePlayerNote"
	pathTransactions    = "/api/Client/getPlayersTransactionHistory"
	pathAdjustBalance   = "/api/Client/manualBalanceAdjustment"
	pathCreditBonus     = "/api/Client/manualBonusCredit"
	pathFinancial       = "/api/Client/getPlayersFinancialTransactions"
	pathDecideFinancial = "/api/Client/acceptOrRejectFinancialTransaction"
	pathConfirmTransfer = "/api/Client/confirmTransferringTransaction"
	pathCancelFinancial = "/api/Client/cancelFinancialTransaction"
	pathIPLogs          = "/api/Client/getIpLogs"
	pathBanIP           = "/api/Client/banIp"
	pathBonuses         = "/api/Bonus/getBonuses"
	pathCreateBonus     = "/api/Bonus/createBonus"
	pathUpdateBonus     = "/api/Bonus/updateBonus"
	pathDeleteBonus     = "/api/Bonus/deleteBonus"
	pathBonusSettings   = "/api/Bonus/getPlayerBonusSettings"
	pathBonusRequests   = "/api/Bonus/getBonusRequests"
	pathResolveBonus    = "/api/Bonus/resolveBonusRequest"
	pathPrizes          = "/api/Wheel/getPrizes"
	pathCreatePrize     = "/api/Wheel/createPrize"
	pathUpdatePrize     = "/api/Wheel/updatePrize"
	pathDeletePrize     = "/api/Wheel/deletePrize"
	pathMessages        = "/api/Message/getMessages"
	pathSendMessage     = "/api/Message/sendMessage"
	pathDeleteMessage   = "/api/Message/deleteMessage"
	pathUsers           = "/api/User/getUsers"
	pathApproveUser     = "/api/User/approveUser"
	pathRejectUser      = "/api/User/rejectUser"
	pathEditUser        = "/api/User/editUser"
	pathDeleteUser      = "/api/User/deleteUser"
)

type Players struct{ c *apiclient.Client }

func (p *Players) List(ctx context.Context, f model.PlayerFilter) (model.Page[model.Player], error) {
	return list[model.Player](ctx, p.c, pathPlayers, "players", f)
}

// Get 讀取單一玩家的完整資料（profile 的 overview）。
func (p *Players) Get(ctx context.Context, playerID string) (model.Player, error) {
	if playerID == "" {
		return model.Player{}, errs.NewWarn("player id is required")
	}
	return apiclient.GetOne[model.Player](ctx, p.c, pathPlayer, "player", url.Values{"playerId": []string{playerID}})
}

func (p *Players) UpdatePermissions(ctx context.Context, perm model.Permissions) (string, error) {
	if err := validate(perm); err != nil {
		return "", err
	}
	return mutate(ctx, p.c, http.MethodPost, pathPermissions, nil, perm)
}

func (p *Players) UpdateBonusPercentage(ctx context.Context, s model.BonusSettingData) (string, error) {
	if err := validate(s); err != nil {
		return "", err
	}
	if s.Percentage.IsNegative() {
		return "", errs.NewWarn("percentage must not be negative")
	}
	return mutate(ctx, p.c, http.MethodPost, pathBonusPercentage, nil, s)
}

type Notes struct{ c *apiclient.Client }

func (n *Notes) List(ctx context.Context, f model.NoteFilter) (model.Page[model.PlayerNote], error) {
	return list[model.PlayerNote](ctx, n.c, pathNotes, "notes", f)
}

func (n *Notes) Add(ctx context.Context, note model.PlayerNote) (string, error) {
	if err := validate(note); err != nil {
		return "", err
	}
	return mutate(ctx, n.c, http.MethodPost, pathAddNote, nil, note)
}

func (n *Notes) Delete(ctx context.Context, id int64) (string, error) {
	if err := requireID(id); err != nil {
		return "", err
	}
	return mutate(ctx, n.c, http.MethodDelete, pathDeleteNote, byID("noteId", id), nil)
}

// ============================================================
// ** IP logs / Users **
// ============================================================

type IPLogs struct{ c *apiclient.Client }

func (l *IPLogs) List(ctx context.Context, f model.IPLogFilter) (model.Page[model.IPLogData], error) {
	return list[model.IPLogData](ctx, l.c, pathIPLogs, "ipLogs", f)
}

// Ban 封鎖 IP；Days 為 0 代表永久。
func (l *IPLogs) Ban(ctx context.Context, b action.IPBan) (string, error) {
	if err := validate(b); err != nil {
		return "", err
	}
	entry := model.BlacklistEntry{IP: b.IP, Reason: b.Reason}
	if b.Days > 0 {
		entry.ExpiresAt = model.Time{Time: time.Now().AddDate(0, 0, b.Days).UTC()}
	}
	return mutate(ctx, l.c, http.MethodPost, pathBanIP, nil, entry)
}

type Users struct{ c *apiclient.Client }

func (u *Users) List(ctx context.Context, f model.UserFilter) (model.Page[model.User], error) {
	return list[model.User](ctx, u.c, pathUsers, "users", f)
}

func (u *Users) Approve(ctx context.Context, id int64) (string, error) {
	if err := requireID(id); err != nil {
		return "", err
	}
	return mutate(ctx, u.c, http.MethodPost, pathApproveUser, nil, map[string]int64{"id": id})
}

func (u *Users) Reject(ctx context.Context, id int64) (string, error) {
	if err := requireID(id); err != nil {
		return "", err
	}
	return mutate(ctx, u.c, http.MethodPost, pathRejectUser, nil, map[string]int64{"id": id})
}

// Edit 只送出有填的欄位。
func (u *Users) Edit(ctx context.Context, e model.UserEdit) (string, error) {
	if err := validate(e); err != nil {
		return "", err
	}
	if e.Percentage != nil && (e.Percentage.IsNegative() || e.Percentage.GreaterThan(hundred)) {
		return "", errs.NewWarn("percentage must be between 0 and 100")
	}
	return mutate(ctx, u.c, http.MethodPut, pathEditUser, nil, e)
}

func (u *Users) Delete(ctx context.Context, id int64) (string, error) {
	if err := requireID(id); err != nil {
		return "", err
	}
	return mutate(ctx, u.c, http.MethodDelete, pathDeleteUser, byID("id", id), nil)
}
