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

package query

import (
	"net/url"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/leonardoelit/backoffice/daterange"
	"github.com/leonardoelit/backoffice/errs"
	"github.com/shopspring/decimal"
)

// Option 調整 SetField / Decode 解析日期的方式。
type Option func(*decoder)

type decoder struct {
	now func() time.Time
}

// At 指定解析日期預設使用的時鐘；日期字串也以 now() 的時區解析。
func At(now func() time.Time) Option {
	return func(d *decoder) {
		if now != nil {
			d.now = now
		}
	}
}

func newDecoder(opts []Option) decoder {
	d := decoder{now: time.Now}
	for _, opt := range opts {
		opt(&d)
	}
	return d
}

func (d decoder) loc() *time.Location { return d.now().Location() }

// ============================================================
// ** 反向：操作員輸入 -> filter **
// ============================================================

// SetField 以參數名稱設定 filter 欄位；ptr 必須是指向 struct 的指標。
//
// 空字串代表清除（回到「不帶」）。Interval 欄位：
//   - 主名稱接受日期或預設名稱（today / last7 ...），
//   - to 名稱接受日期；只有日期沒有時間時，視為包含當天整天。
func SetField(ptr any, name, raw string, opts ...Option) error {
	v := reflect.ValueOf(ptr)
	if v.Kind() != reflect.Pointer || v.IsNil() || v.Elem().Kind() != reflect.Struct {
		return errs.NewFatal("query: SetField needs a pointer to struct")
	}
	sv := v.Elem()
	raw = strings.TrimSpace(raw)
	d := newDecoder(opts)
	for _, f := range fieldsOf(sv.Type()) {
		fv := sv.FieldByIndex(f.index)
		switch {
		case strings.EqualFold(f.name, name):
			return d.setValue(fv, f, raw, false)
		case isInterval(f.typ) && strings.EqualFold(f.to, name):
			return d.setValue(fv, f, raw, true)
		}
	}
	return errs.Warnf("unknown filter field %q", name)
}

// SetInterval 直接設定 Interval 欄位（以主名稱查找）。
func SetInterval(ptr any, name string, iv daterange.Interval) error {
	v := reflect.ValueOf(ptr)
	if v.Kind() != reflect.Pointer || v.IsNil() || v.Elem().Kind() != reflect.Struct {
		return errs.NewFatal("query: SetInterval needs a pointer to struct")
	}
	sv := v.Elem()
	for _, f := range fieldsOf(sv.Type()) {
		if !strings.EqualFold(f.name, name) || !isInterval(f.typ) {
			continue
		}
		fv := sv.FieldByIndex(f.index)
		if fv.Kind() == reflect.Pointer {
			if iv.IsZero() {
				fv.Set(reflect.Zero(fv.Type()))
				return nil
			}
			fv.Set(reflect.New(intervalType))
			fv = fv.Elem()
		}
		fv.Set(reflect.ValueOf(iv))
		return nil
	}
	return errs.Warnf("no date range field %q", name)
}

// RangeField 是 filter 中日期區間欄位的參數名稱與格式。
type RangeField struct {
	Name   string
	To     string
	Layout string
}

// Has 回報 name 是否為這個區間的下界或上界參數。
func (r RangeField) Has(name string) bool {
	return strings.EqualFold(r.Name, name) || strings.EqualFold(r.To, name)
}

// IntervalField 回傳 filter 中第一個 Interval 欄位；沒有時 ok 為 false。
func IntervalField(filter any) (RangeField, bool) {
	v, err := structValue(filter)
	if err != nil {
		return RangeField{}, false
	}
	for _, f := range fieldsOf(v.Type()) {
		if isInterval(f.typ) {
			return RangeField{Name: f.name, To: f.to, Layout: f.layout}, true
		}
	}
	return RangeField{}, false
}

// IntervalOf 讀出主名稱為 name 的 Interval 欄位；nil 指標視為零值。
func IntervalOf(filter any, name string) (daterange.Interval, bool) {
	v, err := structValue(filter)
	if err != nil {
		return daterange.Interval{}, false
	}
	for _, f := range fieldsOf(v.Type()) {
		if !isInterval(f.typ) || !strings.EqualFold(f.name, name) {
			continue
		}
		fv := v.FieldByIndex(f.index)
		if fv.Kind() == reflect.Pointer {
			if fv.IsNil() {
				return daterange.Interval{}, true
			}
			fv = fv.Elem()
		}
		return fv.Interface().(daterange.Interval), true
	}
	return daterange.Interval{}, false
}

// Decode 將 url.Values 套用到 filter；不認得的參數會被忽略（例如 tab、subtab）。
func Decode(values url.Values, ptr any, opts ...Option) error {
	known := map[string]bool{}
	v, err := structValue(ptr)
	if err != nil {
		return err
	}
	for _, n := range Names(v.Interface()) {
		known[strings.ToLower(n)] = true
	}
	for k, vs := range values {
		if !known[strings.ToLower(k)] || len(vs) == 0 {
			continue
		}
		raw := vs[0]
		if len(vs) > 1 {
			raw = strings.Join(vs, ",")
		}
		if err := SetField(ptr, k, raw, opts...); err != nil {
			return err
		}
	}
	return nil
}

func isInterval(t reflect.Type) bool {
	return t == intervalType || t == reflect.PointerTo(intervalType)
}

func (d decoder) setValue(fv reflect.Value, f field, raw string, upper bool) error {
	if raw == "" {
		if isInterval(fv.Type()) && fv.Kind() == reflect.Struct {
			iv := fv.Interface().(daterange.Interval)
			if upper {
				iv.To = time.Time{}
			} else {
				iv.From = time.Time{}
			}
			fv.Set(reflect.ValueOf(iv))
			return nil
		}
		fv.Set(reflect.Zero(fv.Type()))
		return nil
	}
	if fv.Kind() == reflect.Pointer {
		if fv.IsNil() {
			fv.Set(reflect.New(fv.Type().Elem()))
		}
		fv = fv.Elem()
	}
	switch fv.Type() {
	case intervalType:
		return d.setInterval(fv, raw, upper)
	case timeType:
		t, err := daterange.ParseDate(raw, d.loc())
		if err != nil {
			return err
		}
		fv.Set(reflect.ValueOf(t))
		return nil
	case decimalType:
		d, err := decimal.NewFromString(raw)
		if err != nil {
			return errs.Warnf("%s: invalid amount %q", f.name, raw)
		}
		fv.Set(reflect.ValueOf(d))
		return nil
	}
	if fv.Kind() == reflect.Slice {
		parts := strings.Split(raw, ",")
		out := reflect.MakeSlice(fv.Type(), 0, len(parts))
		for _, p := range parts {
			p = strings.TrimSpace(p)
			if p == "" {
				continue
			}
			ev := reflect.New(fv.Type().Elem()).Elem()
			if err := parseScalar(ev, f.name, p); err != nil {
				return err
			}
			out = reflect.Append(out, ev)
		}
		fv.Set(out)
		return nil
	}
	return parseScalar(fv, f.name, raw)
}

func parseScalar(fv reflect.Value, name, raw string) error {
	switch fv.Kind() {
	case reflect.String:
		fv.SetString(raw)
	case reflect.Bool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return errs.Warnf("%s: expected true/false, got %q", name, raw)
		}
		fv.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(raw, 10, fv.Type().Bits())
		if err != nil {
			return errs.Warnf("%s: expected integer, got %q", name, raw)
		}
		fv.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(raw, 10, fv.Type().Bits())
		if err != nil {
			return errs.Warnf("%s: expected non-negative integer, got %q", name, raw)
		}
		fv.SetUint(n)
	case reflect.Float32, reflect.Float64:
		x, err := strconv.ParseFloat(raw, fv.Type().Bits())
		if err != nil {
			return errs.Warnf("%s: expected number, got %q", name, raw)
		}
		fv.SetFloat(x)
	default:
		return errs.Fatalf("query: unsupported field kind %s", fv.Kind())
	}
	return nil
}

func (d decoder) setInterval(fv reflect.Value, raw string, upper bool) error {
	iv := fv.Interface().(daterange.Interval)
	if !upper {
		if p, err := daterange.ParsePreset(raw); err == nil && p != daterange.Custom {
			r, err := daterange.Resolve(p, d.now())
			if err != nil {
				return err
			}
			fv.Set(reflect.ValueOf(r))
			return nil
		}
	}
	t, err := daterange.ParseDate(raw, d.loc())
	if err != nil {
		return err
	}
	if upper {
		if strings.Contains(raw, ":") {
			iv.To = t.Add(time.Second)
		} else {
			iv.To = t.AddDate(0, 0, 1)
		}
	} else {
		iv.From = t
	}
	if !iv.From.IsZero() && !iv.To.IsZero() && !iv.From.Before(iv.To) {
		return errs.NewWarn("date range: start must be before end")
	}
	fv.Set(reflect.ValueOf(iv))
	return nil
}
