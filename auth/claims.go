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
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/leonardoelit/backoffice/errs"
)

// Operator 是從 token 讀出的操作員身分，只用於顯示與稽核紀錄。
type Operator struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	ExpiresAt time.Time `json:"expiresAt,omitzero"`
}

// Expired 回報 token 是否已過期（沒有 exp 時視為未過期）。
func (o Operator) Expired(now time.Time) bool {
	return !o.ExpiresAt.IsZero() && !now.Before(o.ExpiresAt)
}

// 平台 token 可能使用的 claim 名稱（ASP.NET identity 或一般 JWT）。
var (
	idClaims   = []string{"sub", "nameid", "userId", "http://schemas.xmlsoap.org/ws/2005/05/identity/claims/nameidentifier"}
	nameClaims = []string{"unique_name", "username", "name", "http://schemas.xmlsoap.org/ws/2005/05/identity/claims/name"}
	roleClaims = []string{"role", "roles", "http://schemas.microsoft.com/ws/2008/06/identity/claims/role"}
)

// Peek 不驗證簽章地讀出 token 內的操作員資訊。
//
// 簽章由平台驗證；這裡讀到的資料不可作為授權依據。
func Peek(token string) (Operator, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return Operator{}, errs.Wrap(err, "malformed token")
	}
	op := Operator{
		ID:       first(claims, idClaims),
		Username: first(claims, nameClaims),
		Role:     first(claims, roleClaims),
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		op.ExpiresAt = exp.Time
	}
	return op, nil
}

func first(claims jwt.MapClaims, names []string) string {
	for _, n := range names {
		switch v := claims[n].(type) {
		case string:
			if v != "" {
				return v
			}
		case []any:
			if len(v) > 0 {
				if s, ok := v[0].(string); ok {
					return s
				}
			}
		}
	}
	return ""
}
