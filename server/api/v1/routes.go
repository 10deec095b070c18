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
	"github.com/leonardoelit/backoffice/server/netsvr"
)

// Register 註冊 v1 路由。列表畫面各自一組靜態路徑：
//
//	GET  /<screen>         列表（query 即列表狀態）
//	POST /<screen>/clear   清除篩選
//	GET  /<screen>/export  匯出所有頁面
func (h *Handler) Register(r netsvr.NetRouter) {
	r.Get("/screens", h.Screens)
	for _, info := range h.b.Screens() {
		r.Get("/"+info.Name, h.List(info.Name))
		r.Post("/"+info.Name+"/clear", h.Clear(info.Name))
		r.Get("/"+info.Name+"/export", h.Export(info.Name))
	}

	// 玩家
	r.Get("/players/{playerId}", h.Profile)
	r.Post("/players/{playerId}/balance", h.AdjustBalance)
	r.Post("/players/{playerId}/bonus-credit", h.CreditBonus)
	r.Put("/players/{playerId}/permissions", h.Permissions)
	r.Put("/players/{playerId}/bonus-percentage", h.BonusPercentage)
	r.Post("/players/{playerId}/notes", h.AddNote)
	r.Delete("/notes/{id}", h.DeleteNote)
	r.Post("/iplogs/ban", h.BanIP)

	// 審核
	r.Get("/financial/actions", h.FinancialActions)
	r.Post("/financial/{id}/{event}", h.Financial)
	r.Post("/bonus-requests/{id}/resolve", h.ResolveBonus)
	r.Post("/users/{id}/approve", h.UserDecision(true))
	r.Post("/users/{id}/reject", h.UserDecision(false))
	r.Put("/users/{id}", h.EditUser)
	r.Delete("/users/{id}", h.DeleteUser)

	// 內容
	r.Post("/prizes/check", h.CheckPrize)
	r.Post("/prizes", h.SavePrize(false))
	r.Put("/prizes/{id}", h.SavePrize(true))
	r.Delete("/prizes/{id}", h.DeletePrize)
	r.Post("/messages", h.SendMessage)
	r.Delete("/messages/{id}", h.DeleteMessage)
	r.Post("/bonuses", h.SaveBonus(false))
	r.Put("/bonuses/{id}", h.SaveBonus(true))
	r.Delete("/bonuses/{id}", h.DeleteBonus)

	// 其他
	r.Get("/toasts", h.Toasts)
	r.Get("/me", h.Me)
	r.Get("/audit", h.Audit)
}
