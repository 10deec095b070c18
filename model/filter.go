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

package model

import (
	"github.com/leonardoelit/backoffice/daterange"
	"github.com/leonardoelit/backoffice/query"
	"github.com/shopspring/decimal"
)

// DefaultPageSize 是每個列表的預設頁大小。
const DefaultPageSize = 25

// FirstPage 回傳第一頁、預設頁大小的 Paging。
func FirstPage() query.Paging {
	return query.Paging{PageNumber: 1, PageSize: DefaultPageSize}
}

// 日期欄位的 wire 格式依 endpoint 而異（dd-MM-yy / ISO / yyyy-MM-dd HH:mm:ss），
// 由各 filter 的 tag 決定，核心只看 daterange.Interval。

type PlayerFilter struct {
	query.Paging
	PlayerID   string             `json:"playerId,omitempty"   query:"playerId"`
	Username   string             `json:"username,omitempty"   query:"username"`
	Email      string             `json:"email,omitempty"      query:"email"`
	Phone      string             `json:"phone,omitempty"      query:"phone"`
	Country    string             `json:"country,omitempty"    query:"country"`
	IsOnline   *bool              `json:"isOnline,omitempty"   query:"isOnline"`
	Verified   *bool              `json:"isVerified,omitempty" query:"isVerified"`
	RiskMark   *bool              `json:"riskMark,omitempty"   query:"riskMark"`
	Registered daterange.Interval `json:"registered,omitzero"  query:"MinCreatedLocal,to=MaxCreatedLocal,layout=dmy"`
}

func PlayerDefaults() PlayerFilter {
	return PlayerFilter{Paging: FirstPage()}
}

type TransactionFilter struct {
	query.Paging
	PlayerID  string             `json:"playerId,omitempty"  query:"playerId"`
	EventType string             `json:"eventType,omitempty" query:"eventType"`
	Direction Direction          `json:"direction,omitempty" query:"direction"`
	Status    string             `json:"status,omitempty"    query:"status"`
	Created   daterange.Interval `json:"created,omitzero"    query:"MinCreatedLocal,to=MaxCreatedLocal,layout=iso"`
}

func TransactionDefaults() TransactionFilter {
	return TransactionFilter{Paging: FirstPage()}
}

type FinancialFilter struct {
	query.Paging
	PlayerID      string             `json:"playerId,omitempty"      query:"playerId"`
	Username      string             `json:"username,omitempty"      query:"username"`
	TypeName      string             `json:"typeName,omitempty"      query:"typeName"`
	Status        string             `json:"status,omitempty"        query:"status"`
	PaymentMethod string             `json:"paymentMethod,omitempty" query:"paymentMethod"`
	MinAmount     decimal.Decimal    `json:"minAmount,omitzero"      query:"minAmount"`
	MaxAmount     decimal.Decimal    `json:"maxAmount,omitzero"      query:"maxAmount"`
	Created       daterange.Interval `json:"created,omitzero"        query:"MinCreatedLocal,to=MaxCreatedLocal,layout=sql"`
}

// DepositDefaults 是存款列表的預設：只看成功的存款。
func DepositDefaults() FinancialFilter {
	return FinancialFilter{Paging: FirstPage(), TypeName: TypeDeposit, Status: "Success"}
}

// WithdrawDefaults 是提款列表的預設：只看成功的提款。
func WithdrawDefaults() FinancialFilter {
	return FinancialFilter{Paging: FirstPage(), TypeName: TypeWithdraw, Status: "Success"}
}

// PendingDefaults 是待審核列表的預設：所有 Pending 的出入金。
func PendingDefaults() FinancialFilter {
	return FinancialFilter{Paging: FirstPage(), Status: "Pending"}
}

type BonusFilter struct {
	query.Paging
	Name   string `json:"name,omitempty"     query:"name"`
	Type   string `json:"type,omitempty"     query:"type"`
	Active *bool  `json:"isActive,omitempty" query:"isActive"`
}

func BonusDefaults() BonusFilter {
	return BonusFilter{Paging: FirstPage()}
}

type BonusRequestFilter struct {
	query.Paging
	PlayerID  string             `json:"playerId,omitempty"  query:"playerId"`
	Username  string             `json:"username,omitempty"  query:"username"`
	BonusType string             `json:"bonusType,omitempty" query:"bonusType"`
	Status    string             `json:"status,omitempty"    query:"status"`
	Created   daterange.Interval `json:"created,omitzero"    query:"MinCreatedLocal,to=MaxCreatedLocal,layout=dmy"`
}

func BonusRequestDefaults() BonusRequestFilter {
	return BonusRequestFilter{Paging: FirstPage(), Status: "Pending"}
}

type PrizeFilter struct {
	query.Paging
	WheelID int64  `json:"wheelId,omitempty"  query:"wheelId"`
	Type    string `json:"type,omitempty"     query:"type"`
	Active  *bool  `json:"isActive,omitempty" query:"isActive"`
	VIP     *bool  `json:"isVip,omitempty"    query:"isVip"`
}

// PrizeDefaults 以較大的頁面讀取獎項，讓整個輪盤在同一頁計算權重。
func PrizeDefaults() PrizeFilter {
	return PrizeFilter{Paging: query.Paging{PageNumber: 1, PageSize: 100, SortField: "order", SortDirection: query.Asc}}
}

type MessageFilter struct {
	query.Paging
	PlayerID string             `json:"playerId,omitempty" query:"playerId"`
	Type     string             `json:"type,omitempty"     query:"type"`
	Global   *bool              `json:"isGlobal,omitempty" query:"isGlobal"`
	Created  daterange.Interval `json:"created,omitzero"   query:"MinCreatedLocal,to=MaxCreatedLocal,layout=iso"`
}

func MessageDefaults() MessageFilter {
	return MessageFilter{Paging: FirstPage()}
}

type IPLogFilter struct {
	query.Paging
	PlayerID string             `json:"playerId,omitempty" query:"playerId"`
	Username string             `json:"username,omitempty" query:"username"`
	IP       string             `json:"ip,omitempty"       query:"ip"`
	Login    daterange.Interval `json:"login,omitzero"     query:"MinCreatedLocal,to=MaxCreatedLocal,layout=sql"`
}

func IPLogDefaults() IPLogFilter {
	return IPLogFilter{Paging: FirstPage()}
}

type UserFilter struct {
	query.Paging
	Username string `json:"username,omitempty"   query:"username"`
	Role     string `json:"role,omitempty"       query:"role"`
	Approved *bool  `json:"isApproved,omitempty" query:"isApproved"`
}

func UserDefaults() UserFilter {
	return UserFilter{Paging: FirstPage()}
}

type NoteFilter struct {
	query.Paging
	PlayerID string `json:"playerId,omitempty" query:"playerId"`
}

func NoteDefaults() NoteFilter {
	return NoteFilter{Paging: FirstPage()}
}
