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

// Package model 定義平台 API 回傳的實體與各列表的 filter。
//
// 實體原樣來自平台，backoffice 不加任何衍生不變量，只做顯示用的格式化。
// 金額一律使用 decimal.Decimal。
package model

import (
	"github.com/shopspring/decimal"
)

// Page 是列表回應的共同形狀（items 以外的分頁資訊）。
type Page[T any] struct {
	Items       []T `json:"items"`
	CurrentPage int `json:"currentPage"`
	TotalPages  int `json:"totalPages"`
	TotalCount  int `json:"totalCount"`
}

// ============================================================
// ** Player **
// ============================================================

type Player struct {
	PlayerID  string          `json:"playerId"`
	Username  string          `json:"username"`
	FirstName string          `json:"firstName"`
	LastName  string          `json:"lastName"`
	Email     string          `json:"email"`
	Phone     string          `json:"phone"`
	Country   string          `json:"country"`
	Balance   decimal.Decimal `json:"balance"`

	TotalDeposit         decimal.Decimal `json:"totalDeposit"`
	TotalWithdrawal      decimal.Decimal `json:"totalWithdrawal"`
	DepositCount         int             `json:"depositCount"`
	WithdrawalCount      int             `json:"withdrawalCount"`
	FirstDepositDate     Time            `json:"firstDepositDate"`
	FirstDepositAmount   decimal.Decimal `json:"firstDepositAmount"`
	LastDepositDate      Time            `json:"lastDepositDate"`
	LastDepositAmount    decimal.Decimal `json:"lastDepositAmount"`
	LastWithdrawalDate   Time            `json:"lastWithdrawalDate"`
	LastWithdrawalAmount decimal.Decimal `json:"lastWithdrawalAmount"`

	CasinoStake decimal.Decimal `json:"casinoStake"`
	CasinoWin   decimal.Decimal `json:"casinoWin"`
	SportStake  decimal.Decimal `json:"sportStake"`
	SportWin    decimal.Decimal `json:"sportWin"`

	Verified bool `json:"isVerified"`
	RiskMark bool `json:"riskMark"`
	Online   bool `json:"isOnline"`

	CanPlayCasino bool `json:"canPlayCasino"`
	CanSportsBet  bool `json:"canSportsBet"`

	BonusPercentOverride *decimal.Decimal `json:"bonusPercentOverride,omitempty"`
	RegisteredAt         Time             `json:"registrationDate"`
	LastLoginAt          Time             `json:"lastLoginDate"`
}

// FullName 回傳顯示用全名；兩者皆空時退回 username。
func (p Player) FullName() string {
	switch {
	case p.FirstName == "" && p.LastName == "":
		return p.Username
	case p.LastName == "":
		return p.FirstName
	case p.FirstName == "":
		return p.LastName
	default:
		return p.FirstName + " " + p.LastName
	}
}

// GGR 是 casino + sport 的 stake - win。
func (p Player) GGR() decimal.Decimal {
	return p.CasinoStake.Add(p.SportStake).Sub(p.CasinoWin).Sub(p.SportWin)
}

// Permissions 是可編輯的玩家權限。
type Permissions struct {
	PlayerID      string `json:"playerId" validate:"required"`
	CanPlayCasino bool   `json:"canPlayCasino"`
	CanSportsBet  bool   `json:"canSportsBet"`
}

// ============================================================
// ** Ledger **
// ============================================================

// Direction 是帳變方向。
type Direction string

const (
	Inc Direction = "Inc"
	Dec Direction = "Dec"
)

type Transaction struct {
	ID               int64           `json:"id"`
	PlayerID         string          `json:"playerId"`
	EventType        string          `json:"eventType"`
	Direction        Direction       `json:"direction"`
	Amount           decimal.Decimal `json:"amount"`
	ResultingBalance decimal.Decimal `json:"resultingBalance"`
	Status           string          `json:"status"`
	CreatedAt        Time            `json:"createdAt"`
}

// Signed 回傳帶方向的金額（Dec 為負）。
func (t Transaction) Signed() decimal.Decimal {
	if t.Direction == Dec {
		return t.Amount.Neg()
	}
	return t.Amount
}

// FinancialTransaction 是存款 / 提款申請。
type FinancialTransaction struct {
	ID             int64           `json:"id"`
	PlayerID       string          `json:"playerId"`
	Username       string          `json:"username"`
	Amount         decimal.Decimal `json:"amount"`
	PaymentMethod  string          `json:"paymentMethod"`
	TypeName       string          `json:"typeName"`
	Status         string          `json:"status"`
	AccountDetails string          `json:"accountDetails,omitempty"`
	CryptoAddress  string          `json:"cryptoAddress,omitempty"`
	CryptoNetwork  string          `json:"cryptoNetwork,omitempty"`
	CreatedAt      Time            `json:"createdAt"`
	UpdatedAt      Time            `json:"updatedAt"`
}

// 財務申請的 typeName
const (
	TypeDeposit  = "deposit"
	TypeWithdraw = "withdraw"
)

// IsCrypto 回報是否為加密貨幣出入金（提款需要第二段轉帳確認）。
func (f FinancialTransaction) IsCrypto() bool {
	return f.CryptoAddress != ""
}

// ============================================================
// ** Bonus **
// ============================================================

type Bonus struct {
	ID         int64           `json:"id"`
	Name       string          `json:"name"`
	Type       string          `json:"type"`
	Min        decimal.Decimal `json:"min"`
	Max        decimal.Decimal `json:"max"`
	Percentage decimal.Decimal `json:"percentage"`
	Active     bool            `json:"isActive"`
}

// BonusSettingData 是單一玩家對某個 bonus 的覆寫設定。
type BonusSettingData struct {
	PlayerID   string          `json:"playerId"   validate:"required"`
	BonusID    int64           `json:"bonusId"    validate:"required,gt=0"`
	Percentage decimal.Decimal `json:"percentage"`
	Enabled    bool            `json:"enabled"`
}

// BonusData 是等待審核的 bonus 申請。
type BonusData struct {
	ID              int64           `json:"id"`
	PlayerID        string          `json:"playerId"`
	Username        string          `json:"username"`
	BonusID         int64           `json:"bonusId"`
	BonusName       string          `json:"bonusName"`
	BonusType       string          `json:"bonusType"`
	RequestedAmount decimal.Decimal `json:"requestedAmount"`
	Status          string          `json:"status"`
	Note            string          `json:"note,omitempty"`
	CreatedAt       Time            `json:"createdAt"`
}

// ZeroValueBonusTypes 是不需要金額即可通過的 bonus 類型（例如純 freespin）。
var ZeroValueBonusTypes = map[string]bool{
	"Freespin":  true,
	"FreeSpin":  true,
	"NoDeposit": true,
}

// ZeroValue 回報此申請的 bonus 類型是否不需要金額。
func (b BonusData) ZeroValue() bool { return ZeroValueBonusTypes[b.BonusType] }

// ============================================================
// ** Wheel **
// ============================================================

// 獎項類型
const (
	PrizeCash     = "Cash"
	PrizeFreespin = "Freespin"
)

type PrizeData struct {
	ID             int64           `json:"id"`
	WheelID        int64           `json:"wheelId"`
	Name           string          `json:"name"           validate:"required"`
	Type           string          `json:"type"           validate:"oneof=Cash Freespin"`
	Amount         decimal.Decimal `json:"amount"`
	FreespinGame   string          `json:"freespinGame,omitempty"`
	FreespinBet    decimal.Decimal `json:"freespinBet"`
	FreespinRounds int             `json:"freespinRounds,omitempty" validate:"gte=0"`
	Percentage     decimal.Decimal `json:"percentage"`
	Active         bool            `json:"isActive"`
	VIP            bool            `json:"isVip"`
	Order          int             `json:"order"`
}

// ============================================================
// ** Message / IP / Note / User **
// ============================================================

// 訊息類型
const (
	MessageInApp = "InApp"
	MessageMail  = "Mail"
	MessageSms   = "Sms"
)

type PlayerMessage struct {
	ID        int64  `json:"id"`
	PlayerID  string `json:"playerId,omitempty"`
	Type      string `json:"type"   validate:"oneof=InApp Mail Sms"`
	Title     string `json:"title"  validate:"required"`
	Body      string `json:"body"   validate:"required"`
	Sender    string `json:"sender"`
	Global    bool   `json:"isGlobal"`
	CreatedAt Time   `json:"createdAt"`
}

type IPLogData struct {
	ID       int64  `json:"id"`
	PlayerID string `json:"playerId"`
	Username string `json:"username"`
	IP       string `json:"ip"`
	Device   string `json:"device"`
	LoginAt  Time   `json:"loginDate"`
}

// BlacklistEntry 是封鎖 IP 的請求 / 結果。
type BlacklistEntry struct {
	IP        string `json:"ip"     validate:"required,ip"`
	Reason    string `json:"reason" validate:"required"`
	ExpiresAt Time   `json:"expiresAt"`
}

type PlayerNote struct {
	ID        int64  `json:"id"`
	PlayerID  string `json:"playerId" validate:"required"`
	Author    string `json:"author"`
	Content   string `json:"content"  validate:"required"`
	CreatedAt Time   `json:"createdAt"`
}

// User 是後台操作員帳號。
type User struct {
	ID         int64           `json:"id"`
	Username   string          `json:"username"`
	Role       string          `json:"role"`
	Approved   bool            `json:"isApproved"`
	Percentage decimal.Decimal `json:"percentage"`
	BTag       string          `json:"btag"`
	Balance    decimal.Decimal `json:"balance"`
}

// UserEdit 是編輯操作員時可改的欄位；空值代表不改。
type UserEdit struct {
	ID         int64            `json:"id"                   validate:"required,gt=0"`
	BTag       string           `json:"btag,omitempty"`
	Percentage *decimal.Decimal `json:"percentage,omitempty"`
	Password   string           `json:"password,omitempty"   validate:"omitempty,min=6"`
}
