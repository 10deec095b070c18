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

package daterange

import (
	"testing"
	"time"
)

var fixedNow = time.Date(2024, time.March, 15, 13, 45, 0, 0, time.UTC)

func TestResolvePresets(t *testing.T) {
	cases := []struct {
		p        Preset
		from, to string
	}{
		{Today, "2024-03-15", "2024-03-16"},
		{Yesterday, "2024-03-14", "2024-03-15"},
		{Last7Days, "2024-03-09", "2024-03-16"},
		{Last30Days, "2024-02-15", "2024-03-16"},
		{ThisMonth, "2024-03-01", "2024-04-01"},
		{LastMonth, "2024-02-01", "2024-03-01"},
	}
	for _, c := range cases {
		iv, err := Resolve(c.p, fixedNow)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", c.p, err)
		}
		if got := iv.From.Format("2006-01-02"); got != c.from {
			t.Fatalf("%s: from=%s want %s", c.p, got, c.from)
		}
		if got := iv.To.Format("2006-01-02"); got != c.to {
			t.Fatalf("%s: to=%s want %s", c.p, got, c.to)
		}
	}
	iv, err := Resolve(AllTime, fixedNow)
	if err != nil || !iv.IsZero() {
		t.Fatalf("all time must be the zero interval: %+v %v", iv, err)
	}
	if _, err := Resolve(Custom, fixedNow); err == nil {
		t.Fatalf("custom must require explicit dates")
	}
}

func TestParsePresetAcceptsLabels(t *testing.T) {
	for in, want := range map[string]Preset{"Last 7 Days": Last7Days, "today": Today, "ALL TIME": AllTime} {
		got, err := ParsePreset(in)
		if err != nil || got != want {
			t.Fatalf("ParsePreset(%q)=%q,%v want %q", in, got, err, want)
		}
	}
	if _, err := ParsePreset("fortnight"); err == nil {
		t.Fatalf("expected error for unknown preset")
	}
}

func TestPickerEmitsLayoutSpecificBounds(t *testing.T) {
	var got Bounds
	p := NewPicker(LayoutDMY, func(b Bounds) { got = b })
	p.Now = func() time.Time { return fixedNow }
	if err := p.Select(Today); err != nil {
		t.Fatalf("select: %v", err)
	}
	if got.MinCreatedLocal != "15-03-24" || got.MaxCreatedLocal != "15-03-24" {
		t.Fatalf("unexpected dmy bounds: %+v", got)
	}

	p.Layout = LayoutSQL
	if err := p.Select(Yesterday); err != nil {
		t.Fatalf("select: %v", err)
	}
	if got.MinCreatedLocal != "2024-03-14 00:00:00" || got.MaxCreatedLocal != "2024-03-14 23:59:59" {
		t.Fatalf("unexpected sql bounds: %+v", got)
	}
}

func TestPreciseTracksModified(t *testing.T) {
	var got Bounds
	p := NewPrecise("", func(b Bounds) { got = b })
	if p.Modified() {
		t.Fatalf("fresh picker must not be modified")
	}
	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	if err := p.SetRange(day, 8, 30, day, 17, 15); err != nil {
		t.Fatalf("set range: %v", err)
	}
	if !p.Modified() {
		t.Fatalf("expected modified after SetRange")
	}
	if got.MinCreatedLocal != "2024-03-01 08:30:00" || got.MaxCreatedLocal != "2024-03-01 17:15:59" {
		t.Fatalf("unexpected precise bounds: %+v", got)
	}
	if err := p.SetRange(day, 25, 0, day, 1, 0); err == nil {
		t.Fatalf("expected invalid clock error")
	}
	p.Reset()
	if p.Modified() || !p.Interval().IsZero() {
		t.Fatalf("reset must clear state")
	}
	if got != (Bounds{}) {
		t.Fatalf("reset must emit empty bounds, got %+v", got)
	}
}

func TestPreciseSelectCustomIsModified(t *testing.T) {
	var got Bounds
	p := NewPrecise("", func(b Bounds) { got = b })
	from := time.Date(2024, 3, 1, 15, 0, 0, 0, time.UTC)
	to := time.Date(2024, 3, 3, 9, 0, 0, 0, time.UTC)
	if err := p.SelectCustom(from, to); err != nil {
		t.Fatalf("select custom: %v", err)
	}
	if !p.Modified() || p.Preset() != Custom {
		t.Fatalf("custom range must mark the picker modified: preset=%s modified=%v", p.Preset(), p.Modified())
	}
	if got.MinCreatedLocal != "2024-03-01 00:00:00" || got.MaxCreatedLocal != "2024-03-03 23:59:59" {
		t.Fatalf("custom range must cover whole days: %+v", got)
	}

	p.Reset()
	if err := p.SelectCustom(from, from); err != nil {
		t.Fatalf("a single day is a valid range: %v", err)
	}
	if got.MaxCreatedLocal != "2024-03-01 23:59:59" {
		t.Fatalf("unexpected single-day bounds: %+v", got)
	}
}

func TestSelectInterval(t *testing.T) {
	p := NewPrecise(LayoutDMY, nil)
	p.SelectInterval(Interval{})
	if p.Preset() != AllTime || !p.Modified() {
		t.Fatalf("zero interval is all time: %s %v", p.Preset(), p.Modified())
	}
	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	p.SelectInterval(Interval{From: day, To: day.AddDate(0, 0, 2)})
	if p.Preset() != Custom || !p.Interval().To.Equal(day.AddDate(0, 0, 2)) {
		t.Fatalf("unexpected picker state: %s %+v", p.Preset(), p.Interval())
	}
	var plain Picker
	plain.SelectInterval(Interval{From: day})
	if plain.Preset() != Custom {
		t.Fatalf("open-ended interval is custom: %s", plain.Preset())
	}
}

func TestIntervalContainsHalfOpen(t *testing.T) {
	iv, _ := Resolve(Today, fixedNow)
	if !iv.Contains(iv.From) || iv.Contains(iv.To) {
		t.Fatalf("interval must be half-open")
	}
	if !(Interval{}).Contains(fixedNow) {
		t.Fatalf("zero interval must contain everything")
	}
}
