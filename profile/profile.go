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

// Package profile 是玩家詳細頁的分頁外殼。
//
// 目前所在的 tab / subtab 由 URL 參數決定並寫回（重新整理或分享連結會回到同一頁）；
// 只有目前的分頁會載入資料，切換時才載入新的分頁。
package profile

import (
	"context"
	"net/url"
	"slices"
	"strings"
	"sync"

	"github.com/leonardoelit/backoffice/errs"
	"github.com/leonardoelit/backoffice/model"
	"github.com/leonardoelit/backoffice/screen"
	"github.com/leonardoelit/backoffice/table"
)

type Tab string

const (
	Overview   Tab = "overview"
	Statistics Tab = "statistics"
	Reports    Tab = "reports"
	Bonuses    Tab = "bonuses"
	Settings   Tab = "settings"
	Notes      Tab = "notes"
)

// Tabs 依畫面順序列出所有 tab。
var Tabs = []Tab{Overview, Statistics, Reports, Bonuses, Settings, Notes}

type Subtab string

const (
	Permissions      Subtab = "permissions"
	BonusPercentages Subtab = "bonus-percentages"
	Messages         Subtab = "messages"
	IPLogs           Subtab = "iplogs"
)

// Subtabs 是 settings 底下的子分頁。
var Subtabs = []Subtab{Permissions, BonusPercentages, Messages, IPLogs}

// Location 是正規化後的分頁位置；Subtab 只在 Settings 下有值。
type Location struct {
	Tab    Tab    `json:"tab"`
	Subtab Subtab `json:"subtab,omitempty"`
}

func (l Location) key() string {
	if l.Subtab == "" {
		return string(l.Tab)
	}
	return string(l.Tab) + "/" + string(l.Subtab)
}

// Normalize 讀取 tab / subtab；無效或缺少時回到 overview / 第一個子分頁。
// 回傳的 url.Values 是寫回後的參數（其他參數保留）。
func Normalize(values url.Values) (Location, url.Values) {
	out := url.Values{}
	for k, v := range values {
		out[k] = append([]string(nil), v...)
	}
	loc := Location{Tab: Tab(strings.ToLower(values.Get("tab")))}
	if !slices.Contains(Tabs, loc.Tab) {
		loc.Tab = Overview
	}
	out.Set("tab", string(loc.Tab))
	if loc.Tab != Settings {
		out.Del("subtab")
		return loc, out
	}
	loc.Subtab = Subtab(strings.ToLower(values.Get("subtab")))
	if !slices.Contains(Subtabs, loc.Subtab) {
		loc.Subtab = Subtabs[0]
	}
	out.Set("subtab", string(loc.Subtab))
	return loc, out
}

// Sources 是各分頁的資料來源。
type Sources struct {
	Player        func(ctx context.Context, playerID string) (model.Player, error)
	Ledger        func(ctx context.Context, f model.TransactionFilter) (model.Page[model.Transaction], error)
	BonusSettings func(ctx context.Context, playerID string) ([]model.BonusSettingData, error)

	// 以 playerId 篩選的列表分頁
	Reports  screen.Builder
	Bonuses  screen.Builder
	Messages screen.Builder
	IPLogs   screen.Builder
	Notes    screen.Builder
}

// Section 是目前分頁的內容；只有對應的欄位會有值。
type Section struct {
	Location    Location                 `json:"location"`
	Player      *model.Player            `json:"player,omitempty"`
	Permissions *model.Permissions       `json:"permissions,omitempty"`
	Stats       *Stats                   `json:"stats,omitempty"`
	Settings    []model.BonusSettingData `json:"bonusSettings,omitempty"`
	Grid        *table.Grid              `json:"grid,omitempty"`
}

// Shell 是一位玩家的詳細頁。
type Shell struct {
	playerID string
	src      Sources

	mu       sync.Mutex
	loc      Location
	player   *model.Player
	sessions map[string]screen.Session
	loaded   map[string]Section
}

// New 建立 Shell；不會發出請求。
func New(playerID string, src Sources) (*Shell, error) {
	if strings.TrimSpace(playerID) == "" {
		return nil, errs.NewWarn("player id is required")
	}
	return &Shell{
		playerID: playerID,
		src:      src,
		loc:      Location{Tab: Overview},
		sessions: map[string]screen.Session{},
		loaded:   map[string]Section{},
	}, nil
}

func (s *Shell) PlayerID() string { return s.playerID }

// Location 回傳目前分頁。
func (s *Shell) Location() Location {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loc
}

// Loaded 列出已經載入過的分頁（tab 或 tab/subtab）。
func (s *Shell) Loaded() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.loaded))
	for k := range s.loaded {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}

// Sync 依 URL 參數切換分頁並載入該分頁，回傳正規化後的參數與分頁內容。
//
// 列表分頁會把其他參數（pageNumber、sort ...）交給該列表；已載入的非列表分頁直接使用快取。
func (s *Shell) Sync(ctx context.Context, values url.Values) (Section, url.Values, error) {
	loc, norm := Normalize(values)
	s.mu.Lock()
	s.loc = loc
	cached, ok := s.loaded[loc.key()]
	s.mu.Unlock()

	if b := s.builder(loc); b != nil {
		sec, err := s.list(ctx, loc, b, values)
		return sec, norm, err
	}
	if ok {
		return cached, norm, nil
	}
	sec, err := s.load(ctx, loc)
	if err != nil {
		return Section{Location: loc}, norm, err
	}
	s.mu.Lock()
	s.loaded[loc.key()] = sec
	s.mu.Unlock()
	return sec, norm, nil
}

// Invalidate 丟棄已載入的內容（動作成功後呼叫），下次 Sync 會重新載入。
func (s *Shell) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.player = nil
	s.loaded = map[string]Section{}
}

func (s *Shell) builder(loc Location) screen.Builder {
	switch {
	case loc.Tab == Reports:
		return s.src.Reports
	case loc.Tab == Bonuses:
		return s.src.Bonuses
	case loc.Tab == Notes:
		return s.src.Notes
	case loc.Subtab == Messages:
		return s.src.Messages
	case loc.Subtab == IPLogs:
		return s.src.IPLogs
	}
	return nil
}

func (s *Shell) list(ctx context.Context, loc Location, b screen.Builder, values url.Values) (Section, error) {
	s.mu.Lock()
	sess, ok := s.sessions[loc.key()]
	if !ok {
		sess = b.Open()
		s.sessions[loc.key()] = sess
	}
	s.mu.Unlock()

	v := url.Values{}
	for k, vs := range values {
		if k != "tab" && k != "subtab" {
			v[k] = vs
		}
	}
	v.Set("playerId", s.playerID)
	err := sess.Load(ctx, v)
	g := sess.View()
	sec := Section{Location: loc, Grid: &g}
	s.mu.Lock()
	s.loaded[loc.key()] = sec
	s.mu.Unlock()
	return sec, err
}

func (s *Shell) getPlayer(ctx context.Context) (model.Player, error) {
	s.mu.Lock()
	p := s.player
	s.mu.Unlock()
	if p != nil {
		return *p, nil
	}
	if s.src.Player == nil {
		return model.Player{}, errs.NewFatal("profile: no player source")
	}
	pl, err := s.src.Player(ctx, s.playerID)
	if err != nil {
		return model.Player{}, err
	}
	s.mu.Lock()
	s.player = &pl
	s.mu.Unlock()
	return pl, nil
}

func (s *Shell) load(ctx context.Context, loc Location) (Section, error) {
	sec := Section{Location: loc}
	switch {
	case loc.Tab == Overview:
		p, err := s.getPlayer(ctx)
		if err != nil {
			return sec, err
		}
		sec.Player = &p
	case loc.Tab == Statistics:
		p, err := s.getPlayer(ctx)
		if err != nil {
			return sec, err
		}
		var ledger []model.Transaction
		if s.src.Ledger != nil {
			f := model.TransactionDefaults()
			f.PlayerID = s.playerID
			f.PageSize = statsSample
			page, err := s.src.Ledger(ctx, f)
			if err != nil {
				return sec, err
			}
			ledger = page.Items
		}
		st := Summarize(p, ledger)
		sec.Stats = &st
	case loc.Subtab == Permissions:
		p, err := s.getPlayer(ctx)
		if err != nil {
			return sec, err
		}
		sec.Permissions = &model.Permissions{PlayerID: p.PlayerID, CanPlayCasino: p.CanPlayCasino, CanSportsBet: p.CanSportsBet}
	case loc.Subtab == BonusPercentages:
		if s.src.BonusSettings == nil {
			return sec, errs.NewFatal("profile: no bonus settings source")
		}
		list, err := s.src.BonusSettings(ctx, s.playerID)
		if err != nil {
			return sec, err
		}
		sec.Settings = list
	default:
		return sec, errs.Warnf("tab %s has no source", loc.key())
	}
	return sec, nil
}
