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

// Package config 讀取 backoffice 的設定。
//
// 優先順序（後者覆蓋前者）：
//  1. Default()
//  2. yaml 設定檔（可省略）
//  3. .env 檔（godotenv，只補上尚未設定的環境變數）
//  4. 環境變數 BACKOFFICE_*（API 位址另外接受 NEXT_PUBLIC_API_URL）
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/leonardoelit/backoffice/errs"
	"github.com/leonardoelit/backoffice/table"
	"gopkg.in/yaml.v3"
)

// RateLimit 是 BFF 對每個來源 IP 的限流（RPS <= 0 代表不限流）。
type RateLimit struct {
	RPS   float64 `yaml:"rps"`
	Burst int     `yaml:"burst"`
}

type Config struct {
	APIURL         string        `yaml:"api_url"`
	TokenSource    string        `yaml:"token_source"`
	Listen         string        `yaml:"listen"`
	LogMode        string        `yaml:"log_mode"`
	PageSize       int           `yaml:"page_size"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
	RateLimit      RateLimit     `yaml:"rate_limit"`
	AuditDSN       string        `yaml:"audit_dsn"`
	Timezone       string        `yaml:"timezone"`
	ToastBuffer    int           `yaml:"toast_buffer"`
}

func Default() Config {
	return Config{
		Listen:         ":5808",
		LogMode:        "ModeDev",
		PageSize:       25,
		RequestTimeout: 15 * time.Second,
		RateLimit:      RateLimit{RPS: 20, Burst: 40},
		Timezone:       "Local",
		ToastBuffer:    256,
	}
}

// 環境變數名稱
const (
	EnvAPIURL       = "BACKOFFICE_API_URL"
	EnvLegacyAPIURL = "NEXT_PUBLIC_API_URL"
	EnvTokenSource  = "BACKOFFICE_TOKEN_SOURCE"
	EnvListen       = "BACKOFFICE_LISTEN"
	EnvLogMode      = "BACKOFFICE_LOG_MODE"
	EnvPageSize     = "BACKOFFICE_PAGE_SIZE"
	EnvTimeout      = "BACKOFFICE_REQUEST_TIMEOUT"
	EnvAuditDSN     = "BACKOFFICE_AUDIT_DSN"
	EnvTimezone     = "BACKOFFICE_TIMEZONE"
)

// Load 依序套用預設值、設定檔（path 為空則略過）、envFiles 與環境變數，最後驗證。
//
// envFiles 不存在時略過；沒有指定時嘗試讀取工作目錄的 .env。
func Load(path string, envFiles ...string) (Config, error) {
	cfg := Default()
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return cfg, errs.WrapWithExtra(err, "read config", path)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return cfg, errs.WrapWithExtra(err, "parse config", path)
		}
	}
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return cfg, errs.WrapWithExtra(err, "load env file", f)
		}
	}
	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return cfg, err
	}
	return cfg, cfg.Valid()
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	str := func(name string, dst *string) {
		if v, ok := lookup(name); ok && strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
		}
	}
	// 舊前端的變數名稱優先度較低
	str(EnvLegacyAPIURL, &c.APIURL)
	str(EnvAPIURL, &c.APIURL)
	str(EnvTokenSource, &c.TokenSource)
	str(EnvListen, &c.Listen)
	str(EnvLogMode, &c.LogMode)
	str(EnvAuditDSN, &c.AuditDSN)
	str(EnvTimezone, &c.Timezone)

	if v, ok := lookup(EnvPageSize); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return errs.Warnf("invalid %s: %v", EnvPageSize, err)
		}
		c.PageSize = n
	}
	if v, ok := lookup(EnvTimeout); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return errs.Warnf("invalid %s: %v", EnvTimeout, err)
		}
		c.RequestTimeout = d
	}
	return nil
}

// Valid 檢查必要欄位，並補上可補的預設值。
func (c *Config) Valid() error {
	if strings.TrimSpace(c.APIURL) == "" {
		return errs.NewWarn("api_url is required (set " + EnvAPIURL + ")")
	}
	if !table.ValidPageSize(c.PageSize) {
		return errs.Warnf("page_size %d is not one of %v", c.PageSize, table.PageSizes)
	}
	if c.RequestTimeout <= 0 {
		c.RequestTimeout = Default().RequestTimeout
	}
	if c.Listen == "" {
		c.Listen = Default().Listen
	}
	if c.ToastBuffer <= 0 {
		c.ToastBuffer = Default().ToastBuffer
	}
	if c.RateLimit.RPS > 0 && c.RateLimit.Burst <= 0 {
		c.RateLimit.Burst = max(1, int(c.RateLimit.RPS))
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// Location 回傳日期區間使用的時區。
func (c Config) Location() (*time.Location, error) {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, &errs.E{Message: "unknown timezone " + c.Timezone, Cause: err, ErrLv: errs.Warn}
	}
	return loc, nil
}
