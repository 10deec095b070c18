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

package backoffice

import (
	"strconv"
	"time"

	"github.com/leonardoelit/backoffice/model"
	"github.com/leonardoelit/backoffice/platform"
	"github.com/leonardoelit/backoffice/query"
	"github.com/leonardoelit/backoffice/screen"
	"github.com/leonardoelit/backoffice/table"
	"github.com/leonardoelit/backoffice/wheel"
)

// 列表畫面名稱（也是 /v1/{screen} 與 console 的 open 參數）
const (
	ScreenPlayers       = "players"
	ScreenTransactions  = "transactions"
	ScreenDeposits      = "deposits"
	ScreenWithdrawals   = "withdrawals"
	ScreenPending       = "pending"
	ScreenBonuses       = "bonuses"
	ScreenBonusRequests = "bonus-requests"
	ScreenPrizes        = "prizes"
	ScreenMessages      = "messages"
	ScreenIPLogs        = "iplogs"
	ScreenUsers         = "users"
	ScreenNotes         = "notes"
)

func id64(n int64) string { return strconv.FormatInt(n, 10) }

// sized 把預設頁大小換成設定值（只替換未特別指定的預設）。
func sized[F any](defaults func() F, size int) func() F {
	return func() F {
		return query.UpdatePaging(defaults(), func(p *query.Paging) {
			if p.PageSize == model.DefaultPageSize {
				p.PageSize = size
			}
		})
	}
}

// ==== ** Columns ** ====

var playerColumns = []table.Column[model.Player]{
	{Key: "playerId", Title: "ID", Sortable: true, Value: func(p model.Player) string { return p.PlayerID }},
	{Key: "username", Title: "Username", Sortable: true, Value: func(p model.Player) string { return p.Username }},
	{Key: "name", Title: "Name", Value: model.Player.FullName},
	{Key: "country", Title: "Country", Value: func(p model.Player) string { return p.Country }},
	{Key: "balance", Title: "Balance", Sortable: true, Right: true, Value: func(p model.Player) string { return table.Money(p.Balance) }},
	{Key: "totalDeposit", Title: "Deposits", Sortable: true, Right: true, Value: func(p model.Player) string { return table.Money(p.TotalDeposit) }},
	{Key: "totalWithdrawal", Title: "Withdrawals", Sortable: true, Right: true, Value: func(p model.Player) string { return table.Money(p.TotalWithdrawal) }},
	{Key: "isOnline", Title: "Online", Value: func(p model.Player) string { return table.Bool(p.Online) }},
}

var transactionColumns = []table.Column[model.Transaction]{
	{Key: "id", Title: "ID", Sortable: true, Value: func(t model.Transaction) string { return id64(t.ID) }},
	{Key: "playerId", Title: "Player", Value: func(t model.Transaction) string { return t.PlayerID }},
	{Key: "eventType", Title: "Event", Value: func(t model.Transaction) string { return t.EventType }},
	{Key: "direction", Title: "Dir", Value: func(t model.Transaction) string { return string(t.Direction) }},
	{Key: "amount", Title: "Amount", Sortable: true, Right: true, Value: func(t model.Transaction) string { return table.Money(t.Amount) }},
	{Key: "resultingBalance", Title: "Balance", Right: true, Value: func(t model.Transaction) string { return table.Money(t.ResultingBalance) }},
	{Key: "status", Title: "Status", Value: func(t model.Transaction) string { return t.Status }},
	{Key: "createdAt", Title: "Created", Sortable: true, Value: func(t model.Transaction) string { return t.CreatedAt.String() }},
}

var financialColumns = []table.Column[model.FinancialTransaction]{
	{Key: "id", Title: "ID", Sortable: true, Value: func(f model.FinancialTransaction) string { return id64(f.ID) }},
	{Key: "username", Title: "Player", Sortable: true, Value: func(f model.FinancialTransaction) string { return f.Username }},
	{Key: "typeName", Title: "Type", Value: func(f model.FinancialTransaction) string { return f.TypeName }},
	{Key: "paymentMethod", Title: "Method", Value: func(f model.FinancialTransaction) string { return f.PaymentMethod }},
	{Key: "amount", Title: "Amount", Sortable: true, Right: true, Value: func(f model.FinancialTransaction) string { return table.Money(f.Amount) }},
	{Key: "status", Title: "Status", Sortable: true, Value: func(f model.FinancialTransaction) string { return f.Status }},
	{Key: "createdAt", Title: "Created", Sortable: true, Value: func(f model.FinancialTransaction) string { return f.CreatedAt.String() }},
}

var bonusColumns = []table.Column[model.Bonus]{
	{Key: "id", Title: "ID", Sortable: true, Value: func(b model.Bonus) string { return id64(b.ID) }},
	{Key: "name", Title: "Name", Sortable: true, Value: func(b model.Bonus) string { return b.Name }},
	{Key: "type", Title: "Type", Value: func(b model.Bonus) string { return b.Type }},
	{Key: "min", Title: "Min", Right: true, Value: func(b model.Bonus) string { return table.Money(b.Min) }},
	{Key: "max", Title: "Max", Right: true, Value: func(b model.Bonus) string { return table.Money(b.Max) }},
	{Key: "percentage", Title: "%", Right: true, Value: func(b model.Bonus) string { return table.Percent(b.Percentage) }},
	{Key: "isActive", Title: "Active", Value: func(b model.Bonus) string { return table.Bool(b.Active) }},
}

var bonusRequestColumns = []table.Column[model.BonusData]{
	{Key: "id", Title: "ID", Sortable: true, Value: func(b model.BonusData) string { return id64(b.ID) }},
	{Key: "username", Title: "Player", Sortable: true, Value: func(b model.BonusData) string { return b.Username }},
	{Key: "bonusName", Title: "Bonus", Value: func(b model.BonusData) string { return b.BonusName }},
	{Key: "bonusType", Title: "Type", Value: func(b model.BonusData) string { return b.BonusType }},
	{Key: "requestedAmount", Title: "Requested", Right: true, Value: func(b model.BonusData) string { return table.Money(b.RequestedAmount) }},
	{Key: "status", Title: "Status", Value: func(b model.BonusData) string { return b.Status }},
	{Key: "createdAt", Title: "Created", Sortable: true, Value: func(b model.BonusData) string { return b.CreatedAt.String() }},
}

var prizeColumns = []table.Column[model.PrizeData]{
	{Key: "order", Title: "#", Sortable: true, Right: true, Value: func(p model.PrizeData) string { return table.Count(p.Order) }},
	{Key: "name", Title: "Name", Value: func(p model.PrizeData) string { return p.Name }},
	{Key: "type", Title: "Type", Value: func(p model.PrizeData) string { return p.Type }},
	{Key: "amount", Title: "Amount", Right: true, Value: func(p model.PrizeData) string { return table.Money(p.Amount) }},
	{Key: "percentage", Title: "%", Right: true, Value: func(p model.PrizeData) string { return table.Percent(p.Percentage) }},
	{Key: "isActive", Title: "Active", Value: func(p model.PrizeData) string { return table.Bool(p.Active) }},
	{Key: "isVip", Title: "VIP", Value: func(p model.PrizeData) string { return table.Bool(p.VIP) }},
}

var messageColumns = []table.Column[model.PlayerMessage]{
	{Key: "id", Title: "ID", Sortable: true, Value: func(m model.PlayerMessage) string { return id64(m.ID) }},
	{Key: "playerId", Title: "Player", Value: func(m model.PlayerMessage) string {
		if m.Global {
			return "(all)"
		}
		return m.PlayerID
	}},
	{Key: "type", Title: "Type", Value: func(m model.PlayerMessage) string { return m.Type }},
	{Key: "title", Title: "Title", Value: func(m model.PlayerMessage) string { return m.Title }},
	{Key: "createdAt", Title: "Sent", Sortable: true, Value: func(m model.PlayerMessage) string { return m.CreatedAt.String() }},
}

var ipLogColumns = []table.Column[model.IPLogData]{
	{Key: "username", Title: "Player", Sortable: true, Value: func(l model.IPLogData) string { return l.Username }},
	{Key: "ip", Title: "IP", Sortable: true, Value: func(l model.IPLogData) string { return l.IP }},
	{Key: "device", Title: "Device", Value: func(l model.IPLogData) string { return l.Device }},
	{Key: "loginDate", Title: "Login", Sortable: true, Value: func(l model.IPLogData) string { return l.LoginAt.String() }},
}

var userColumns = []table.Column[model.User]{
	{Key: "id", Title: "ID", Sortable: true, Value: func(u model.User) string { return id64(u.ID) }},
	{Key: "username", Title: "Username", Sortable: true, Value: func(u model.User) string { return u.Username }},
	{Key: "role", Title: "Role", Value: func(u model.User) string { return u.Role }},
	{Key: "isApproved", Title: "Approved", Value: func(u model.User) string { return table.Bool(u.Approved) }},
	{Key: "percentage", Title: "%", Right: true, Value: func(u model.User) string { return table.Percent(u.Percentage) }},
	{Key: "balance", Title: "Balance", Right: true, Value: func(u model.User) string { return table.Money(u.Balance) }},
}

var noteColumns = []table.Column[model.PlayerNote]{
	{Key: "id", Title: "ID", Value: func(n model.PlayerNote) string { return id64(n.ID) }},
	{Key: "author", Title: "Author", Value: func(n model.PlayerNote) string { return n.Author }},
	{Key: "content", Title: "Note", Value: func(n model.PlayerNote) string { return n.Content }},
	{Key: "createdAt", Title: "Created", Value: func(n model.PlayerNote) string { return n.CreatedAt.String() }},
}

// prizeNotice 在權重總和不是 100% 時提示（只提示，不阻擋）。
func prizeNotice(items []model.PrizeData) []string {
	if r := wheel.CheckWeights(items); r.Warn {
		return []string{r.Message}
	}
	return nil
}

// ==== ** Registry ** ====

// screenDefs 依畫面順序回傳所有列表畫面。
// now 決定日期預設與輸入日期的時區。
func screenDefs(p *platform.Platform, size int, now func() time.Time) []screen.Builder {
	return []screen.Builder{
		screen.Def[model.PlayerFilter, model.Player]{
			Name: ScreenPlayers, Title: "Players",
			Defaults: sized(model.PlayerDefaults, size), Fetch: p.Players.List, Columns: playerColumns,
			Now: now,
		},
		screen.Def[model.TransactionFilter, model.Transaction]{
			Name: ScreenTransactions, Title: "Transactions",
			Defaults: sized(model.TransactionDefaults, size), Fetch: p.Transactions.List, Columns: transactionColumns,
			Now: now,
		},
		screen.Def[model.FinancialFilter, model.FinancialTransaction]{
			Name: ScreenDeposits, Title: "Deposits",
			Defaults: sized(model.DepositDefaults, size), Fetch: p.Financial.List, Columns: financialColumns,
			Now: now,
		},
		screen.Def[model.FinancialFilter, model.FinancialTransaction]{
			Name: ScreenWithdrawals, Title: "Withdrawals",
			Defaults: sized(model.WithdrawDefaults, size), Fetch: p.Financial.List, Columns: financialColumns,
			Now: now,
		},
		screen.Def[model.FinancialFilter, model.FinancialTransaction]{
			Name: ScreenPending, Title: "Pending Requests",
			Defaults: sized(model.PendingDefaults, size), Fetch: p.Financial.List, Columns: financialColumns,
			Now: now,
		},
		screen.Def[model.BonusFilter, model.Bonus]{
			Name: ScreenBonuses, Title: "Bonuses",
			Defaults: sized(model.BonusDefaults, size), Fetch: p.Bonuses.List, Columns: bonusColumns,
			Now: now,
		},
		screen.Def[model.BonusRequestFilter, model.BonusData]{
			Name: ScreenBonusRequests, Title: "Bonus Requests",
			Defaults: sized(model.BonusRequestDefaults, size), Fetch: p.Bonuses.Requests, Columns: bonusRequestColumns,
			Now: now,
		},
		screen.Def[model.PrizeFilter, model.PrizeData]{
			Name: ScreenPrizes, Title: "Wheel Prizes",
			Defaults: model.PrizeDefaults, Fetch: p.Wheel.Prizes, Columns: prizeColumns, Notice: prizeNotice,
			Now: now,
		},
		screen.Def[model.MessageFilter, model.PlayerMessage]{
			Name: ScreenMessages, Title: "Messages",
			Defaults: sized(model.MessageDefaults, size), Fetch: p.Messages.List, Columns: messageColumns,
			Now: now,
		},
		screen.Def[model.IPLogFilter, model.IPLogData]{
			Name: ScreenIPLogs, Title: "IP Logs",
			Defaults: sized(model.IPLogDefaults, size), Fetch: p.IPLogs.List, Columns: ipLogColumns,
			Now: now,
		},
		screen.Def[model.UserFilter, model.User]{
			Name: ScreenUsers, Title: "Users",
			Defaults: sized(model.UserDefaults, size), Fetch: p.Users.List, Columns: userColumns,
			Now: now,
		},
		screen.Def[model.NoteFilter, model.PlayerNote]{
			Name: ScreenNotes, Title: "Notes",
			Defaults: sized(model.NoteDefaults, size), Fetch: p.Notes.List, Columns: noteColumns,
			Now: now,
		},
	}
}
