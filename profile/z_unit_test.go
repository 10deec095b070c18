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

package profile

import (
	"context"
	"math"
	"net/url"
	"reflect"
	"testing"

	"github.com/leonardoelit/backoffice/model"
	"github.com/leonardoelit/backoffice/screen"
	"github.com/leonardoelit/backoffice/table"
	"github.com/shopspring/decimal"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		in     url.Values
		want   Location
		subtab string
	}{
		{url.Values{}, Location{Tab: Overview}, ""},
		{url.Values{"tab": {"settings"}}, Location{Tab: Settings, Subtab: Permissions}, "permissions"},
		{url.Values{"tab": {"settings"}, "subtab": {"iplogs"}}, Location{Tab: Settings, Subtab: IPLogs}, "iplogs"},
		{url.Values{"tab": {"bogus"}, "subtab": {"iplogs"}}, Location{Tab: Overview}, ""},
		{url.Values{"tab": {"Notes"}, "subtab": {"messages"}}, Location{Tab: Notes}, ""},
	}
	for _, c := range cases {
		loc, out := Normalize(c.in)
		if loc != c.want {
			t.Fatalf("Normalize(%v) = %+v, want %+v", c.in, loc, c.want)
		}
		if out.Get("tab") != string(c.want.Tab) || out.Get("subtab") != c.subtab {
			t.Fatalf("normalised values not written back: %v", out)
		}
	}
}

type counters struct {
	player, ledger, settings int
	notes                    []model.NoteFilter
}

func newShell(t *testing.T, n *counters) *Shell {
	t.Helper()
	notes := screen.Def[model.NoteFilter, model.PlayerNote]{
		Name:     "notes",
		Defaults: model.NoteDefaults,
		Fetch: func(_ context.Context, f model.NoteFilter) (model.Page[model.PlayerNote], error) {
			n.notes = append(n.notes, f)
			return model.Page[model.PlayerNote]{Items: []model.PlayerNote{{ID: 1, PlayerID: f.PlayerID, Content: "vip"}}, CurrentPage: 1, TotalPages: 1, TotalCount: 1}, nil
		},
		Columns: []table.Column[model.PlayerNote]{{Key: "content", Title: "Note", Value: func(p model.PlayerNote) string { return p.Content }}},
	}
	s, err := New("7", Sources{
		Player: func(_ context.Context, id string) (model.Player, error) {
			n.player++
			return model.Player{PlayerID: id, Username: "john", CanPlayCasino: true, TotalDeposit: decimal.NewFromInt(500), TotalWithdrawal: decimal.NewFromInt(200)}, nil
		},
		Ledger: func(_ context.Context, f model.TransactionFilter) (model.Page[model.Transaction], error) {
			n.ledger++
			if f.PlayerID != "7" {
				t.Errorf("ledger must be filtered by player, got %q", f.PlayerID)
			}
			return model.Page[model.Transaction]{Items: []model.Transaction{
				{Direction: model.Inc, Amount: decimal.NewFromInt(100)},
				{Direction: model.Dec, Amount: decimal.NewFromInt(50)},
				{Direction: model.Inc, Amount: decimal.NewFromInt(250)},
			}}, nil
		},
		BonusSettings: func(context.Context, string) ([]model.BonusSettingData, error) {
			n.settings++
			return []model.BonusSettingData{{PlayerID: "7", BonusID: 3}}, nil
		},
		Notes: notes,
	})
	if err != nil {
		t.Fatalf("new shell: %v", err)
	}
	return s
}

func TestOnlyActiveSectionLoads(t *testing.T) {
	n := &counters{}
	s := newShell(t, n)
	ctx := context.Background()

	sec, norm, err := s.Sync(ctx, url.Values{})
	if err != nil || sec.Player == nil || sec.Player.Username != "john" {
		t.Fatalf("overview: %+v %v", sec, err)
	}
	if norm.Get("tab") != "overview" {
		t.Fatalf("tab must be written back: %v", norm)
	}
	if n.player != 1 || n.ledger != 0 || n.settings != 0 || len(n.notes) != 0 {
		t.Fatalf("only the overview may load: %+v", n)
	}

	sec, _, err = s.Sync(ctx, url.Values{"tab": {"statistics"}})
	if err != nil || sec.Stats == nil {
		t.Fatalf("statistics: %+v %v", sec, err)
	}
	if n.player != 1 || n.ledger != 1 {
		t.Fatalf("player must be reused and ledger loaded once: %+v", n)
	}
	if !sec.Stats.NetDeposit.Equal(decimal.NewFromInt(300)) {
		t.Fatalf("unexpected net deposit: %s", sec.Stats.NetDeposit)
	}

	if _, _, err := s.Sync(ctx, url.Values{"tab": {"statistics"}}); err != nil || n.ledger != 1 {
		t.Fatalf("revisiting a loaded tab must not refetch: ledger=%d %v", n.ledger, err)
	}

	sec, _, err = s.Sync(ctx, url.Values{"tab": {"notes"}, "pageSize": {"50"}})
	if err != nil || sec.Grid == nil || len(sec.Grid.Rows) != 1 {
		t.Fatalf("notes: %+v %v", sec, err)
	}
	if len(n.notes) != 1 || n.notes[0].PlayerID != "7" || n.notes[0].PageSize != 50 {
		t.Fatalf("notes must be filtered by player: %+v", n.notes)
	}
	if !reflect.DeepEqual(s.Loaded(), []string{"notes", "overview", "statistics"}) {
		t.Fatalf("unexpected loaded sections: %v", s.Loaded())
	}

	sec, norm, err = s.Sync(ctx, url.Values{"tab": {"settings"}})
	if err != nil || sec.Permissions == nil || !sec.Permissions.CanPlayCasino {
		t.Fatalf("permissions: %+v %v", sec, err)
	}
	if norm.Get("subtab") != "permissions" || n.settings != 0 {
		t.Fatalf("settings must default to permissions: %v settings=%d", norm, n.settings)
	}

	s.Invalidate()
	if _, _, err := s.Sync(ctx, url.Values{}); err != nil || n.player != 2 {
		t.Fatalf("invalidate must force a reload: player=%d %v", n.player, err)
	}
}

func TestSummarize(t *testing.T) {
	p := model.Player{TotalDeposit: decimal.NewFromInt(500), TotalWithdrawal: decimal.NewFromInt(200)}
	ledger := []model.Transaction{
		{Direction: model.Inc, Amount: decimal.NewFromInt(100)},
		{Direction: model.Dec, Amount: decimal.NewFromInt(50)},
		{Direction: model.Inc, Amount: decimal.NewFromInt(250)},
	}
	st := Summarize(p, ledger)
	if st.Sample != 3 || st.Mean != 100 || st.Median != 100 || st.Largest != 250 {
		t.Fatalf("unexpected stats: %+v", st)
	}
	if math.Abs(st.StdDev-150) > 1e-9 {
		t.Fatalf("unexpected stddev: %v", st.StdDev)
	}
	if empty := Summarize(p, nil); empty.Sample != 0 || empty.Mean != 0 {
		t.Fatalf("empty ledger: %+v", empty)
	}
}
