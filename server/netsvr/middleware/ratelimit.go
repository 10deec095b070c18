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

package middleware

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/leonardoelit/backoffice/dto"
	"golang.org/x/time/rate"
)

// ipLimiterIdle 是來源 IP 多久沒有請求後移除其 limiter。
const ipLimiterIdle = 10 * time.Minute

type ipLimiter struct {
	lim  *rate.Limiter
	seen time.Time
}

// ipLimiters 以來源 IP 保存 token bucket。
type ipLimiters struct {
	mu    sync.Mutex
	rps   rate.Limit
	burst int
	m     map[string]*ipLimiter
	now   func() time.Time
	sweep time.Time
}

func (l *ipLimiters) allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	now := l.now()
	if now.Sub(l.sweep) > ipLimiterIdle {
		for k, v := range l.m {
			if now.Sub(v.seen) > ipLimiterIdle {
				delete(l.m, k)
			}
		}
		l.sweep = now
	}
	v, ok := l.m[ip]
	if !ok {
		v = &ipLimiter{lim: rate.NewLimiter(l.rps, l.burst)}
		l.m[ip] = v
	}
	v.seen = now
	return v.lim.AllowN(now, 1)
}

// RateLimit 以來源 IP 限流；超過時回 429 與平台同形的錯誤 body。
//
// rps <= 0 時不限流。來源 IP 取 X-Forwarded-For 的第一段，沒有時取 RemoteAddr。
func RateLimit(rps float64, burst int) func(http.Handler) http.Handler {
	if rps <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	l := &ipLimiters{rps: rate.Limit(rps), burst: max(1, burst), m: map[string]*ipLimiter{}, now: time.Now}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !l.allow(clientIP(r)) {
				w.Header().Set("Content-Type", "application/json; charset=utf-8")
				w.Header().Set("Retry-After", "1")
				w.WriteHeader(http.StatusTooManyRequests)
				_ = json.NewEncoder(w).Encode(dto.ErrorBody{Message: "Too many requests", RequestID: GetReqId(r)})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
