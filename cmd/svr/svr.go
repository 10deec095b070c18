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

package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/leonardoelit/backoffice"
	"github.com/leonardoelit/backoffice/config"
	"github.com/leonardoelit/backoffice/perf"
	"github.com/leonardoelit/backoffice/server"
	"github.com/leonardoelit/backoffice/server/logger"
	"github.com/leonardoelit/backoffice/server/svrcfg"
)

// backoffice BFF 的啟動入口：讀設定、組裝 Backoffice、啟動 HTTP server。
func main() {
	sCfg, mode, err := loadConfigFromFlags()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := perf.Run(func() { server.Run(sCfg) }, mode, perf.DefaultDir); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type flags struct {
	ConfigPath   string
	EnvFile      string
	Listen       string
	LogMode      string
	WriteTimeout time.Duration
	PProf        string
}

func loadConfigFromFlags() (*svrcfg.SvrCfg, perf.Mode, error) {
	f := new(flags)
	flag.StringVar(&f.ConfigPath, "config", "", "yaml config file (optional)")
	flag.StringVar(&f.EnvFile, "env", ".env", "env file loaded before BACKOFFICE_* variables")
	flag.StringVar(&f.Listen, "listen", "", "listen address, overrides config")
	flag.StringVar(&f.LogMode, "log-mode", "", "log mode: ModeDev|ModeProd|ModeSilence, overrides config")
	flag.DurationVar(&f.WriteTimeout, "write-timeout", 2*time.Minute, "http write timeout (exports need more than a page load)")
	flag.StringVar(&f.PProf, "p", "", "pprof: '', cpu, heap, allocs")
	flag.Parse()

	mode, err := perf.ParseMode(f.PProf)
	if err != nil {
		return nil, mode, err
	}

	cfg, err := config.Load(f.ConfigPath, f.EnvFile)
	if err != nil {
		return nil, mode, err
	}
	if f.Listen != "" {
		cfg.Listen = f.Listen
	}
	if f.LogMode != "" {
		cfg.LogMode = f.LogMode
	}

	log, _ := logger.NewAsync(4096, logger.ParseMode(cfg.LogMode))
	b, err := backoffice.New(cfg, log)
	if err != nil {
		return nil, mode, err
	}
	return &svrcfg.SvrCfg{
		Log:          log,
		Backoffice:   b,
		Listen:       cfg.Listen,
		RateLimit:    cfg.RateLimit,
		WriteTimeout: f.WriteTimeout,
	}, mode, nil
}
