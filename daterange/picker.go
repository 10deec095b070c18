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
	"time"

	"github.com/leonardoelit/backoffice/errs"
)

// Picker 是「只有預設選項」的日期選擇器。
//
// 每次選擇都會呼叫 OnChange，輸出依 Layout 格式化的 Bounds。
type Picker struct {
	Layout   string
	OnChange func(Bounds)
	Now      func() time.Time

	preset   Preset
	interval Interval
}

// NewPicker 建立 Picker；預設為 All Time。
func NewPicker(layout string, onChange func(Bounds)) *Picker {
	return &Picker{Layout: layout, OnChange: onChange, Now: time.Now, preset: AllTime}
}

func (p *Picker) Preset() Preset     { return p.preset }
func (p *Picker) Interval() Interval { return p.interval }

// Select 套用預設；Custom 請改用 SelectCustom。
func (p *Picker) Select(preset Preset) error {
	iv, err := Resolve(preset, p.now())
	if err != nil {
		return err
	}
	p.set(preset, iv)
	return nil
}

// SelectCustom 以日期（不含時間）設定自訂區間，to 當天整天都包含在內。
func (p *Picker) SelectCustom(from, to time.Time) error {
	iv, err := NewCustom(startOfDay(from), startOfDay(to).AddDate(0, 0, 1))
	if err != nil {
		return err
	}
	p.set(Custom, iv)
	return nil
}

// SelectInterval 直接套用已算好的區間（例如由 URL 還原）；零值視為 All Time。
func (p *Picker) SelectInterval(iv Interval) {
	if iv.IsZero() {
		p.set(AllTime, iv)
		return
	}
	p.set(Custom, iv)
}

func (p *Picker) set(preset Preset, iv Interval) {
	p.preset = preset
	p.interval = iv
	if p.OnChange != nil {
		p.OnChange(iv.Format(p.layout()))
	}
}

func (p *Picker) layout() string {
	if p.Layout == "" {
		return LayoutDMY
	}
	return p.Layout
}

func (p *Picker) now() time.Time {
	if p.Now == nil {
		return time.Now()
	}
	return p.Now()
}

// ============================================================
// ** Precise **
// ============================================================

// Precise 在 Picker 之上加入時/分的選擇，並追蹤 Modified：
// 呼叫端可以分辨「操作員動過這個篩選」與「仍是預設值」。
type Precise struct {
	Picker
	modified bool
}

// NewPrecise 建立精準版選擇器，預設 layout 為 yyyy-MM-dd HH:mm:ss。
func NewPrecise(layout string, onChange func(Bounds)) *Precise {
	if layout == "" {
		layout = LayoutSQL
	}
	return &Precise{Picker: *NewPicker(layout, onChange)}
}

func (p *Precise) Modified() bool { return p.modified }

func (p *Precise) Select(preset Preset) error {
	if err := p.Picker.Select(preset); err != nil {
		return err
	}
	p.modified = true
	return nil
}

func (p *Precise) SelectCustom(from, to time.Time) error {
	if err := p.Picker.SelectCustom(from, to); err != nil {
		return err
	}
	p.modified = true
	return nil
}

func (p *Precise) SelectInterval(iv Interval) {
	p.Picker.SelectInterval(iv)
	p.modified = true
}

// SetRange 以精確到分鐘的起迄時間設定區間；to 為包含式的最後一分鐘。
func (p *Precise) SetRange(from time.Time, fromHour, fromMin int, to time.Time, toHour, toMin int) error {
	if !validClock(fromHour, fromMin) || !validClock(toHour, toMin) {
		return errs.NewWarn("hour must be 0-23 and minute 0-59")
	}
	f := startOfDay(from).Add(time.Duration(fromHour)*time.Hour + time.Duration(fromMin)*time.Minute)
	t := startOfDay(to).Add(time.Duration(toHour)*time.Hour + time.Duration(toMin+1)*time.Minute)
	iv, err := NewCustom(f, t)
	if err != nil {
		return err
	}
	p.set(Custom, iv)
	p.modified = true
	return nil
}

// Reset 回到 All Time 並清除 Modified。
func (p *Precise) Reset() {
	p.set(AllTime, Interval{})
	p.modified = false
}

func validClock(h, m int) bool {
	return h >= 0 && h < 24 && m >= 0 && m < 60
}
