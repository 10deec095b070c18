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

package server

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/leonardoelit/backoffice/errs"
	"github.com/leonardoelit/backoffice/server/api"
	"github.com/leonardoelit/backoffice/server/app"
	"github.com/leonardoelit/backoffice/server/netsvr"
	"github.com/leonardoelit/backoffice/server/svrcfg"
)

// Run 是 server 套件的「組裝器（assembler）」與「啟動入口（runtime entry）」。
//
// 它負責：
//  1. 驗證 SvrCfg（logger、Backoffice）。
//  2. 建立 HTTP server（netsvr，監聽 sCfg.Listen）。
//  3. 註冊路由與 middleware（api.RegisterRoutes）。
//  4. 啟動 app.Run()，結束時關閉 Backoffice（稽核資料庫連線）。
func Run(sCfg *svrcfg.SvrCfg) {
	if err := sCfg.Vaild(); err != nil {
		// 防止外層傳入的logger不可用
		fmt.Fprintln(os.Stderr, err)
		return
	}
	svr := netsvr.NewChiServer(sCfg.Listen, netsvr.WithWriteTimeout(sCfg.WriteTimeout))
	serve(sCfg, svr, "[backoffice] listening on http://localhost"+svr.Address())
}

// RunWithSvr 與 Run() 相同，但由呼叫端注入 NetSvr（自訂 listener、TLS、timeout 等）。
//
//   - svr 必須非 nil，且 Ready() 為 true。
//   - 這一層只負責「註冊 routes + 啟動 app.Run()」。
func RunWithSvr(sCfg *svrcfg.SvrCfg, svr netsvr.NetSvr) {
	if err := sCfg.Vaild(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return
	}
	if svr == nil {
		sCfg.Log.Error(errs.NewFatal("svr is required").Error())
		return
	}
	if !svr.Ready() {
		sCfg.Log.Error(errs.NewFatal("default server is not ready").Error())
		return
	}
	serve(sCfg, svr, "[backoffice] listening")
}

func serve(sCfg *svrcfg.SvrCfg, svr netsvr.NetSvr, banner string) {
	if err := api.RegisterRoutes(svr, sCfg); err != nil {
		return
	}

	app := app.NewWith(svr)
	app.OnStop(sCfg.Backoffice.Close)
	sCfg.Log.Info(banner, slog.String("api", sCfg.Backoffice.Config().APIURL), slog.Int("screens", len(sCfg.Backoffice.Screens())))
	if err := app.Run(); err != nil {
		sCfg.Log.Error("app stopped:", slog.Any("err", err))
	}
}
