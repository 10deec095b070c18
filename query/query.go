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

// Package query 把稀疏的 filter struct 轉成平台 API 的 query string / JSON body。
//
// 欄位以 `query:"name[,to=otherName][,layout=dmy|iso|sql]"` 標記：
//   - 指標欄位：nil 代表「不帶」；非 nil 即使指向零值也會送出（明確的 false / 0）。
//   - 非指標欄位：零值代表「不帶」（空字串、0、false、零時間、零金額、零區間）。
//   - 不帶的欄位完全不會出現在 request 中（不是空字串），讓平台套用自己的預設行為。
//   - bool / 數字 / decimal 一律以字串形式送出。
//   - daterange.Interval 會展開成兩個參數：name（下界）與 to（上界），依 layout 格式化。
//   - 未標記的匿名嵌入 struct（例如 Paging）會被攤平處理。
//
// 本包只做數值轉換，不做範圍檢查；超出範圍的值由平台負責。
package query

import (
	"net/url"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/leonardoelit/backoffice/daterange"
	"github.com/leonardoelit/backoffice/errs"
	"github.com/shopspring/decimal"
)

type field struct {
	index  []int
	name   string
	to     string
	layout string
	typ    reflect.Type
}

var (
	decimalType  = reflect.TypeOf(decimal.Decimal{})
	timeType     = reflect.TypeOf(time.Time{})
	intervalType = reflect.TypeOf(daterange.Interval{})
	fieldCache   sync.Map // reflect.Type -> []field
)

type zeroer interface{ IsZero() bool }

func parseTag(tag string) (field, bool) {
	if tag == "" || tag == "-" {
		return field{}, false
	}
	parts := strings.Split(tag, ",")
	f := field{name: parts[0], layout: daterange.LayoutISO}
	for _, opt := range parts[1:] {
		k, v, _ := strings.Cut(opt, "=")
		switch k {
		case "to":
			f.to = v
		case "layout":
			f.layout = daterange.LayoutByName(v)
		}
	}
	if f.to == "" {
		f.to = f.name + "To"
	}
	return f, f.name != ""
}

func fieldsOf(t reflect.Type) []field {
	if v, ok := fieldCache.Load(t); ok {
		return v.([]field)
	}
	out := collect(t, nil)
	fieldCache.Store(t, out)
	return out
}

func collect(t reflect.Type, prefix []int) []field {
	var out []field
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		idx := append(append([]int{}, prefix...), i)
		f, ok := parseTag(sf.Tag.Get("query"))
		if !ok {
			if sf.Anonymous && sf.Type.Kind() == reflect.Struct {
				out = append(out, collect(sf.Type, idx)...)
			}
			continue
		}
		f.index = idx
		f.typ = sf.Type
		out = append(out, f)
	}
	return out
}

func structValue(filter any) (reflect.Value, error) {
	v := reflect.ValueOf(filter)
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return reflect.Value{}, errs.NewFatal("query: nil filter")
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return reflect.Value{}, errs.Fatalf("query: filter must be a struct, got %s", v.Kind())
	}
	return v, nil
}

// absent 判斷欄位是否「不帶」。
func absent(fv reflect.Value) bool {
	if fv.Kind() == reflect.Pointer || fv.Kind() == reflect.Slice || fv.Kind() == reflect.Map {
		if fv.IsNil() {
			return true
		}
		if fv.Kind() != reflect.Pointer {
			return fv.Len() == 0
		}
		return false
	}
	if z, ok := fv.Interface().(zeroer); ok {
		return z.IsZero()
	}
	return fv.IsZero()
}

// ============================================================
// ** Encode **
// ============================================================

// Encode 將 filter 轉為 url.Values；不帶的欄位完全不出現。
func Encode(filter any) (url.Values, error) {
	v, err := structValue(filter)
	if err != nil {
		return nil, err
	}
	out := url.Values{}
	for _, f := range fieldsOf(v.Type()) {
		fv := v.FieldByIndex(f.index)
		if absent(fv) {
			continue
		}
		if fv.Kind() == reflect.Pointer {
			fv = fv.Elem()
		}
		if err := encodeValue(out, f, fv); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// MustEncode 與 Encode 相同，但 filter 不是 struct 時 panic；只用於已知型別的呼叫端。
func MustEncode(filter any) url.Values {
	q, err := Encode(filter)
	if err != nil {
		panic(err)
	}
	return q
}

func encodeValue(out url.Values, f field, fv reflect.Value) error {
	switch fv.Type() {
	case intervalType:
		b := fv.Interface().(daterange.Interval).Format(f.layout)
		if b.MinCreatedLocal != "" {
			out.Set(f.name, b.MinCreatedLocal)
		}
		if b.MaxCreatedLocal != "" {
			out.Set(f.to, b.MaxCreatedLocal)
		}
		return nil
	case timeType:
		out.Set(f.name, fv.Interface().(time.Time).Format(f.layout))
		return nil
	case decimalType:
		out.Set(f.name, fv.Interface().(decimal.Decimal).String())
		return nil
	}
	if fv.Kind() == reflect.Slice {
		for i := 0; i < fv.Len(); i++ {
			s, err := scalar(fv.Index(i))
			if err != nil {
				return err
			}
			out.Add(f.name, s)
		}
		return nil
	}
	s, err := scalar(fv)
	if err != nil {
		return err
	}
	out.Set(f.name, s)
	return nil
}

func scalar(fv reflect.Value) (string, error) {
	switch fv.Kind() {
	case reflect.String:
		return fv.String(), nil
	case reflect.Bool:
		return strconv.FormatBool(fv.Bool()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(fv.Int(), 10), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(fv.Uint(), 10), nil
	case reflect.Float32, reflect.Float64:
		return strconv.FormatFloat(fv.Float(), 'f', -1, 64), nil
	default:
		return "", errs.Fatalf("query: unsupported field kind %s", fv.Kind())
	}
}

// Body 與 Encode 規則相同，但輸出 JSON body 用的 map（單值為 string，多值為 []string）。
func Body(filter any) (map[string]any, error) {
	q, err := Encode(filter)
	if err != nil {
		return nil, err
	}
	out := make(map[string]any, len(q))
	for k, vs := range q {
		if len(vs) == 1 {
			out[k] = vs[0]
			continue
		}
		out[k] = vs
	}
	return out, nil
}

// ============================================================
// ** Merge / Changed **
// ============================================================

// Merge 把 partial 中「有帶」的欄位覆蓋到 base 上，其餘欄位維持 base 的值。
func Merge[F any](base F, partial F) F {
	out := base
	dst := reflect.ValueOf(&out).Elem()
	src := reflect.ValueOf(&partial).Elem()
	if dst.Kind() != reflect.Struct {
		return base
	}
	for _, f := range fieldsOf(dst.Type()) {
		sv := src.FieldByIndex(f.index)
		if absent(sv) {
			continue
		}
		dst.FieldByIndex(f.index).Set(sv)
	}
	return out
}

// Changed 回報 draft 與 defaults 在「忽略 skip 參數」後是否不同。
// 用於判斷篩選器是否開啟（isFilterOn）。
func Changed(draft, defaults any, skip ...string) bool {
	a, err := Encode(draft)
	if err != nil {
		return false
	}
	b, err := Encode(defaults)
	if err != nil {
		return false
	}
	for _, k := range skip {
		a.Del(k)
		b.Del(k)
	}
	return a.Encode() != b.Encode()
}

// Names 列出 filter 可接受的參數名稱（Interval 會列出兩個名稱）。
func Names(filter any) []string {
	v, err := structValue(filter)
	if err != nil {
		return nil
	}
	var out []string
	for _, f := range fieldsOf(v.Type()) {
		out = append(out, f.name)
		if f.typ == intervalType || f.typ == reflect.PointerTo(intervalType) {
			out = append(out, f.to)
		}
	}
	return out
}
