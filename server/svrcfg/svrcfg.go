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

package svrcfg

import (
	"log/slog"
	"time"

	"github.com/leonardoelit/backoffice"
	"github.com/leonardoelit/backoffice/config"
	"github.com/leonardoelit/backoffice/errs"
	"github.com/leonardoelit/backoffice/server/logger"
)

type SvrCfg struct {
	Log        *slog.Logger
	Backoffice *backoffice.Backoffice
	Listen     string
	RateLimit  config.RateLimit
	// WriteTimeout 需涵蓋匯出全部頁面的時間
	WriteTimeout time.Duration
}

func (sc *SvrCfg) Vaild() error {
	if sc.Log != nil {
		if ah, ok := sc.Log.Handler().(*logger.AsyncHandler); ok && !ah.Ready() {
			return errs.NewFatal("nil default log handler: async handler is nil")
		}
	} else {
		// 保持安靜、合法
		sc.Log, _ = logger.NewAsync(1024, logger.ModeDev)
	}
	if sc.Backoffice == nil {
		return errs.NewFatal("backoffice is required")
	}
	if sc.Listen == "" {
		sc.Listen = sc.Backoffice.Config().Listen
	}
	// 10s <= WriteTimeout <= 10m
	sc.WriteTimeout = max(10*time.Second, sc.WriteTimeout)
	sc.WriteTimeout = min(10*time.Minute, sc.WriteTimeout)
	if sc.RateLimit.RPS < 0 {
		return errs.NewWarn("rate limit must not be negative")
	}
	return nil
}
