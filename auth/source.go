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

// Package auth 讀取操作員的 bearer token。
//
// backoffice 不簽發也不驗證 token：token 由登入流程（外部）寫入某個來源，
// 這裡只負責讀出並附在平台請求上。來源以字串描述：
//
//	env:NAME            環境變數
//	file:/path/to/tok   檔案內容（去除前後空白）
//	redis://host:6379/0?key=session:ops   Redis 字串 key
package auth

import (
	"context"
	"os"
	"strings"

	"github.com/leonardoelit/backoffice/errs"
	"github.com/redis/go-redis/v9"
)

// Source 提供 bearer token；實作需可被多個 goroutine 使用。
type Source interface {
	Token(ctx context.Context) (string, error)
}

// EnvSource 從環境變數讀取 token。
type EnvSource struct{ Name string }

func (s EnvSource) Token(context.Context) (string, error) {
	tok := strings.TrimSpace(os.Getenv(s.Name))
	if tok == "" {
		return "", errs.Warnf("token env %s is empty", s.Name)
	}
	return tok, nil
}

// FileSource 每次呼叫都重新讀檔，讓外部流程輪替 token 時不需重啟。
type FileSource struct{ Path string }

func (s FileSource) Token(context.Context) (string, error) {
	b, err := os.ReadFile(s.Path)
	if err != nil {
		return "", errs.WrapWithExtra(err, "read token file", s.Path)
	}
	tok := strings.TrimSpace(string(b))
	if tok == "" {
		return "", errs.Warnf("token file %s is empty", s.Path)
	}
	return tok, nil
}

// RedisSource 從共用 session store 讀取 token。
type RedisSource struct {
	Client redis.UniversalClient
	Key    string
}

func (s RedisSource) Token(ctx context.Context) (string, error) {
	tok, err := s.Client.Get(ctx, s.Key).Result()
	if err == redis.Nil {
		return "", errs.Warnf("no session stored at %s", s.Key)
	}
	if err != nil {
		return "", errs.WrapWithExtra(err, "read token from redis", s.Key)
	}
	return strings.TrimSpace(tok), nil
}

// Static 是固定 token。
type Static string

func (s Static) Token(context.Context) (string, error) {
	if s == "" {
		return "", errs.NewWarn("empty token")
	}
	return string(s), nil
}

// ParseSource 依描述字串建立 Source；空字串回傳 nil（不送 Authorization）。
func ParseSource(raw string) (Source, error) {
	raw = strings.TrimSpace(raw)
	switch {
	case raw == "":
		return nil, nil
	case strings.HasPrefix(raw, "env:"):
		name := strings.TrimPrefix(raw, "env:")
		if name == "" {
			return nil, errs.NewWarn("token source env: needs a variable name")
		}
		return EnvSource{Name: name}, nil
	case strings.HasPrefix(raw, "file:"):
		path := strings.TrimPrefix(raw, "file:")
		if path == "" {
			return nil, errs.NewWarn("token source file: needs a path")
		}
		return FileSource{Path: path}, nil
	case strings.HasPrefix(raw, "redis://"), strings.HasPrefix(raw, "rediss://"):
		return parseRedis(raw)
	default:
		return nil, errs.Warnf("unknown token source %q", raw)
	}
}

func parseRedis(raw string) (Source, error) {
	raw, q, _ := strings.Cut(raw, "?")
	key := ""
	var rest []string
	for _, kv := range strings.Split(q, "&") {
		if k, v, ok := strings.Cut(kv, "="); ok && k == "key" {
			key = v
			continue
		}
		if kv != "" {
			rest = append(rest, kv)
		}
	}
	if key == "" {
		return nil, errs.NewWarn("redis token source needs ?key=")
	}
	if len(rest) > 0 {
		raw += "?" + strings.Join(rest, "&")
	}
	opt, err := redis.ParseURL(raw)
	if err != nil {
		return nil, errs.WrapWithExtra(err, "parse redis url", raw)
	}
	return RedisSource{Client: redis.NewClient(opt), Key: key}, nil
}
