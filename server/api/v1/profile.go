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
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/leonardoelit/backoffice/dto"
)

// Profile 回傳 GET /v1/players/{playerId}?tab=&subtab=：只載入目前分頁。
//
// 列表分頁（reports、bonuses、messages、iplogs、notes）接受與 /v1/<screen> 相同的 query。
func (h *Handler) Profile(w http.ResponseWriter, r *http.Request) {
	playerID := chi.URLParam(r, "playerId")
	shell, err := h.b.Profile(playerID)
	if err != nil {
		h.fail(w, r, "profile", err)
		return
	}
	ctx, cancel := h.ctx(r)
	defer cancel()
	sec, norm, err := shell.Sync(ctx, r.URL.Query())
	if err != nil {
		h.fail(w, r, "profile", err)
		return
	}
	writeJSON(w, http.StatusOK, dto.NewProfileView(shell.PlayerID(), sec, norm, nil))
}
