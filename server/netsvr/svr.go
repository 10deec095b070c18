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

// Package netsvr 是 BFF 的 HTTP 外殼：路由註冊與 server 啟停分成兩個介面。
package netsvr

import (
	"net/http"

	"github.com/leonardoelit/backoffice/server/app"
)

// NetSvr 是交給 server.Run 的完整 server。
//   - 只有 server 層持有；handler 與各畫面的路由只拿到 NetRouter。
//   - 實作 app.Component，由 app.App 管理啟停。
//   - Handler 讓測試可以直接掛到 httptest，不必真的 listen。
type NetSvr interface {
	NetRouter
	app.Component

	Handler() http.Handler
	// Ready 回報是否已完成初始化（router、位址、http.Server 都就緒）。
	Ready() bool
}

// NetRouter 只有路由行為，沒有 Run/Shutdown。
// /v1 底下每個列表畫面與動作都透過它註冊。
type NetRouter interface {
	Use(middleware func(http.Handler) http.Handler)

	Get(path string, h http.HandlerFunc)
	Post(path string, h http.HandlerFunc)
	Put(path string, h http.HandlerFunc)
	Delete(path string, h http.HandlerFunc)

	Group(path string, fn func(NetRouter))
}

var _ NetSvr = (*ChiAdapter)(nil)
