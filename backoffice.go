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

// Package backoffice 是後台的「組裝入口（assembler）」。
//
// 它把下列元件組在一起，並提供 server 與 console 共用的入口：
//   - apiclient.Client：平台 API 的 HTTP client（token 來源、timeout、logger）。
//   - platform.Platform：每個平台資源的列表與寫入操作。
//   - notify.Feed：最近的提示（toast），供輪詢讀取。
//   - audit.Journal：成功動作的稽核紀錄（slog，另可加上 Postgres）。
//   - 列表畫面 registry（screens.go）。
//
// Backoffice 本身不持有畫面狀態：每次 Open 都回傳新的 Session，
// 呼叫端（一個 console、一個 HTTP 請求）自行持有。
package backoffice

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/leonardoelit/backoffice/action"
	"github.com/leonardoelit/backoffice/apiclient"
	"github.com/leonardoelit/backoffice/audit"
	"github.com/leonardoelit/backoffice/auth"
	"github.com/leonardoelit/backoffice/collection"
	"github.com/leonardoelit/backoffice/config"
	"github.com/leonardoelit/backoffice/errs"
	"github.com/leonardoelit/backoffice/model"
	"github.com/leonardoelit/backoffice/notify"
	"github.com/leonardoelit/backoffice/platform"
	"github.com/leonardoelit/backoffice/profile"
	"github.com/leonardoelit/backoffice/screen"
)

// Version 會出現在 User-Agent 與 /healthz。
const Version = "0.4.0"

type Backoffice struct {
	cfg      config.Config
	log      *slog.Logger
	tokens   auth.Source
	client   *apiclient.Client
	platform *platform.Platform
	feed     *notify.Feed
	notifier notify.Notifier
	journal  audit.Journal
	store    *audit.Gorm

	screens map[string]screen.Builder
	order   []screen.Info
}

// Option 調整組裝（主要用於測試與嵌入）。
type Option func(*options)

type options struct {
	hc      *http.Client
	journal audit.Journal
}

// WithHTTPClient 指定呼叫平台 API 的 http.Client。
func WithHTTPClient(hc *http.Client) Option {
	return func(o *options) { o.hc = hc }
}

// WithJournal 以 j 取代依 audit_dsn 建立的 Postgres 稽核。
func WithJournal(j audit.Journal) Option {
	return func(o *options) { o.journal = j }
}

// New 依設定組裝 Backoffice。
//
// audit_dsn 有值時會連線 Postgres 並建立資料表；失敗直接回傳錯誤。
func New(cfg config.Config, log *slog.Logger, opts ...Option) (*Backoffice, error) {
	if err := cfg.Valid(); err != nil {
		return nil, err
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}

	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	now := func() time.Time { return time.Now().In(loc) }

	tokens, err := auth.ParseSource(cfg.TokenSource)
	if err != nil {
		return nil, err
	}
	copts := []apiclient.Option{
		apiclient.WithLogger(log),
		apiclient.WithTimeout(cfg.RequestTimeout),
		apiclient.WithUserAgent("backoffice/" + Version),
	}
	if tokens != nil {
		copts = append(copts, apiclient.WithTokenSource(tokens))
	}
	if o.hc != nil {
		copts = append(copts, apiclient.WithHTTPClient(o.hc))
	}
	client, err := apiclient.New(cfg.APIURL, copts...)
	if err != nil {
		return nil, err
	}

	b := &Backoffice{
		cfg:      cfg,
		log:      log,
		tokens:   tokens,
		client:   client,
		platform: platform.New(client),
		feed:     notify.NewFeed(cfg.ToastBuffer),
		screens:  map[string]screen.Builder{},
	}
	b.notifier = notify.Multi{b.feed, notify.Slog{Log: log}}

	journal := audit.Multi{audit.Slog{Log: log}}
	switch {
	case o.journal != nil:
		journal = append(journal, o.journal)
	case cfg.AuditDSN != "":
		g, err := audit.OpenPostgres(cfg.AuditDSN)
		if err != nil {
			return nil, err
		}
		b.store = g
		journal = append(journal, g)
	}
	b.journal = journal

	for _, def := range screenDefs(b.platform, cfg.PageSize, now) {
		info := def.Info()
		if _, dup := b.screens[info.Name]; dup {
			return nil, errs.Fatalf("duplicate screen %q", info.Name)
		}
		b.screens[info.Name] = def
		b.order = append(b.order, info)
	}
	return b, nil
}

func (b *Backoffice) Config() config.Config           { return b.cfg }
func (b *Backoffice) Logger() *slog.Logger            { return b.log }
func (b *Backoffice) Client() *apiclient.Client       { return b.client }
func (b *Backoffice) Platform() *platform.Platform    { return b.platform }
func (b *Backoffice) Feed() *notify.Feed              { return b.feed }
func (b *Backoffice) Notifier() notify.Notifier       { return b.notifier }
func (b *Backoffice) Journal() audit.Journal          { return b.journal }
func (b *Backoffice) AuditStore() (*audit.Gorm, bool) { return b.store, b.store != nil }

// Screens 依畫面順序列出所有列表畫面。
func (b *Backoffice) Screens() []screen.Info {
	return append([]screen.Info(nil), b.order...)
}

// Screen 依名稱取得列表畫面。
func (b *Backoffice) Screen(name string) (screen.Builder, bool) {
	def, ok := b.screens[strings.ToLower(strings.TrimSpace(name))]
	return def, ok
}

// Open 開啟一個列表畫面；錯誤提示會送到 Feed。extra 可以替換 notifier 等設定。
func (b *Backoffice) Open(name string, extra ...collection.Option) (screen.Session, error) {
	def, ok := b.Screen(name)
	if !ok {
		return nil, errs.Warnf("unknown screen %q", name)
	}
	opts := append([]collection.Option{
		collection.WithNotifier(b.notifier),
		collection.WithLogger(b.log.With("screen", def.Info().Name)),
	}, extra...)
	return def.Open(opts...), nil
}

// Runner 建立一個動作對話框；成功 / 失敗提示送到 Feed，成功的動作寫入稽核。
func (b *Backoffice) Runner(extra ...action.Option) *action.Runner {
	opts := append([]action.Option{
		action.WithNotifier(b.notifier),
		action.WithJournal(b.journal),
		action.WithLogger(b.log),
		action.WithOperator(b.Operator),
	}, extra...)
	return action.NewRunner(opts...)
}

// Operator 回傳目前請求的操作員名稱（讀 token 的 claims，不驗簽）；取不到時回傳空字串。
func (b *Backoffice) Operator(ctx context.Context) string {
	op, err := b.WhoAmI(ctx)
	if err != nil {
		return ""
	}
	if op.Username != "" {
		return op.Username
	}
	return op.ID
}

// WhoAmI 讀出目前 token 的操作員資訊。
func (b *Backoffice) WhoAmI(ctx context.Context) (auth.Operator, error) {
	tok, ok := apiclient.TokenFrom(ctx)
	if !ok {
		if b.tokens == nil {
			return auth.Operator{}, errs.NewWarn("Not authenticated")
		}
		t, err := b.tokens.Token(ctx)
		if err != nil {
			return auth.Operator{}, err
		}
		tok = t
	}
	return auth.Peek(tok)
}

// Profile 建立玩家詳細頁；各列表分頁共用 registry 的畫面定義。
func (b *Backoffice) Profile(playerID string) (*profile.Shell, error) {
	reports, _ := b.Screen(ScreenTransactions)
	bonuses, _ := b.Screen(ScreenBonusRequests)
	messages, _ := b.Screen(ScreenMessages)
	iplogs, _ := b.Screen(ScreenIPLogs)
	notes, _ := b.Screen(ScreenNotes)
	return profile.New(playerID, profile.Sources{
		Player:        b.platform.Players.Get,
		Ledger:        b.platform.Transactions.List,
		BonusSettings: b.platform.Bonuses.Settings,
		Reports:       opened{reports, b},
		Bonuses:       opened{bonuses, b},
		Messages:      opened{messages, b},
		IPLogs:        opened{iplogs, b},
		Notes:         opened{notes, b},
	})
}

// opened 讓 profile 開出的列表也帶上 Feed 與 logger。
type opened struct {
	screen.Builder
	b *Backoffice
}

func (o opened) Open(opts ...collection.Option) screen.Session {
	s, _ := o.b.Open(o.Info().Name, opts...)
	return s
}

// Close 釋放 Postgres 連線（若有）。
func (b *Backoffice) Close() error {
	if b.store != nil {
		return b.store.Close()
	}
	return nil
}

// FinancialByID 在待審核列表中找出單筆申請（BFF 只收到 id 時使用）。
func (b *Backoffice) FinancialByID(ctx context.Context, id int64, playerID string) (model.FinancialTransaction, error) {
	f := model.PendingDefaults()
	f.Status = ""
	f.PlayerID = playerID
	f.PageSize = 100
	page, err := b.platform.Financial.List(ctx, f)
	if err != nil {
		return model.FinancialTransaction{}, err
	}
	for _, tx := range page.Items {
		if tx.ID == id {
			return tx, nil
		}
	}
	return model.FinancialTransaction{}, errs.Warnf("financial transaction %d not found", id)
}
