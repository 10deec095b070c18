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

package auth

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestPeekReadsOperator(t *testing.T) {
	exp := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":         "17",
		"unique_name": "ops.anna",
		"role":        []any{"Admin", "Finance"},
		"exp":         exp.Unix(),
	}).SignedString([]byte("not-checked-here"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	op, err := Peek(tok)
	if err != nil {
		t.Fatalf("peek: %v", err)
	}
	if op.ID != "17" || op.Username != "ops.anna" || op.Role != "Admin" {
		t.Fatalf("unexpected operator: %+v", op)
	}
	if !op.ExpiresAt.Equal(exp) || op.Expired(exp.Add(-time.Minute)) || !op.Expired(exp) {
		t.Fatalf("unexpected expiry handling: %v", op.ExpiresAt)
	}
	if _, err := Peek("definitely.not.jwt"); err == nil {
		t.Fatalf("expected malformed token error")
	}
}

func TestParseSource(t *testing.T) {
	t.Setenv("BO_TEST_TOKEN", "  abc  ")
	src, err := ParseSource("env:BO_TEST_TOKEN")
	if err != nil {
		t.Fatalf("parse env: %v", err)
	}
	if tok, err := src.Token(context.Background()); err != nil || tok != "abc" {
		t.Fatalf("env token: %q %v", tok, err)
	}

	path := filepath.Join(t.TempDir(), "token")
	if err := os.WriteFile(path, []byte("from-file\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	src, err = ParseSource("file:" + path)
	if err != nil {
		t.Fatalf("parse file: %v", err)
	}
	if tok, err := src.Token(context.Background()); err != nil || tok != "from-file" {
		t.Fatalf("file token: %q %v", tok, err)
	}

	src, err = ParseSource("redis://localhost:6379/0?key=session:ops")
	if err != nil {
		t.Fatalf("parse redis: %v", err)
	}
	if rs, ok := src.(RedisSource); !ok || rs.Key != "session:ops" {
		t.Fatalf("unexpected redis source: %#v", src)
	}

	if src, err := ParseSource(""); err != nil || src != nil {
		t.Fatalf("empty spec must mean no token source")
	}
	for _, bad := range []string{"env:", "file:", "redis://localhost:6379/0", "vault:x"} {
		if _, err := ParseSource(bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}

func TestEmptySourcesFail(t *testing.T) {
	t.Setenv("BO_EMPTY", "")
	if _, err := (EnvSource{Name: "BO_EMPTY"}).Token(context.Background()); err == nil {
		t.Fatalf("empty env must fail")
	}
	if _, err := Static("").Token(context.Background()); err == nil {
		t.Fatalf("empty static token must fail")
	}
}
