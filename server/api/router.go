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

package api

import (
	"log/slog"
	"net/http"

	"github.com/goccy/go-json"
	"github.com/leonardoelit/backoffice"
	"github.com/leonardoelit/backoffice/dto"
	v1 "github.com/leonardoelit/backoffice/server/api/v1"
	"github.com/leonardoelit/backoffice/server/netsvr"
	"github.com/leonardoelit/backoffice/server/netsvr/middleware"
	"github.com/leonardoelit/backoffice/server/svrcfg"
)

// RegisterRoutes 註冊 middleware、/healthz 與 /v1。
func RegisterRoutes(svr netsvr.NetSvr, sCfg *svrcfg.SvrCfg) error {
	registerMiddleware(svr, sCfg)                // 1. 註冊 middleware
	svr.Get("/healthz", health(sCfg.Backoffice)) // 2. 健康檢查
	return registerV1API(svr, sCfg)              // 3. 註冊 v1 api
}

// 註冊 middleware
//
// 順序：RequestID 最先（其他 middleware 的 log 需要它），Recover 包住之後所有處理，
// RateLimit 最後（被拒絕的請求仍會留下 access log）。
func registerMiddleware(svr netsvr.NetSvr, sCfg *svrcfg.SvrCfg) {
	svr.Use(middleware.RequestID)
	svr.Use(middleware.Recover(sCfg.Log))
	svr.Use(middleware.Bearer)
	svr.Use(middleware.AccessLog(sCfg.Log))
	svr.Use(middleware.Compression)
	if sCfg.RateLimit.RPS > 0 {
		svr.Use(middleware.RateLimit(sCfg.RateLimit.RPS, sCfg.RateLimit.Burst))
	}
}

func health(b *backoffice.Backoffice) http.HandlerFunc {
	body := dto.Health{Status: "ok", Version: backoffice.Version, API: b.Config().APIURL}
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		_ = json.NewEncoder(w).Encode(body)
	}
}

// 註冊 v1 api
func registerV1API(svr netsvr.NetSvr, sCfg *svrcfg.SvrCfg) error {
	h, err := v1.NewHandler(sCfg)
	if err != nil {
		sCfg.Log.Error("register v1", slog.Any("err", err))
		return err
	}
	svr.Group("/v1", h.Register)
	return nil
}
