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

package table

import (
	"io"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var lang language.Tag = language.English

// ============================================================
// ** 格式化 **
// ============================================================

// Money 以千分位與兩位小數輸出金額，例如 1,234,567.50。
func Money(d decimal.Decimal) string {
	p := message.NewPrinter(lang)
	neg := d.IsNegative()
	d = d.Abs().Round(2)
	whole := d.Truncate(0)
	frac := d.Sub(whole).Shift(2).IntPart()
	s := p.Sprintf("%d", whole.IntPart()) + "." + pad2(frac)
	if neg {
		return "-" + s
	}
	return s
}

// Count 以千分位輸出整數。
func Count(n int) string {
	return message.NewPrinter(lang).Sprintf("%d", n)
}

// Percent 輸出百分比，例如 12.5%。
func Percent(d decimal.Decimal) string {
	return d.Round(2).String() + "%"
}

// Bool 以 ✓ / - 輸出布林值。
func Bool(b bool) string {
	if b {
		return "✓"
	}
	return "-"
}

func pad2(n int64) string {
	s := strconv.FormatInt(n, 10)
	if len(s) < 2 {
		return "0" + s
	}
	return s
}

// ============================================================
// ** 文字表格 **
// ============================================================

// Render 把 Grid 以等寬文字表格寫出（欄寬以 runewidth 計算，支援全形字）。
func Render(w io.Writer, g Grid) error {
	widths := make([]int, len(g.Headers))
	titles := make([]string, len(g.Headers))
	for i, h := range g.Headers {
		titles[i] = headerTitle(h)
		widths[i] = runewidth.StringWidth(titles[i])
	}
	for _, row := range g.Rows {
		for i := range widths {
			if i < len(row) {
				widths[i] = max(widths[i], runewidth.StringWidth(row[i]))
			}
		}
	}

	var sb strings.Builder
	divider := "+"
	for _, wd := range widths {
		divider += strings.Repeat("-", wd+2) + "+"
	}
	divider += "\n"

	for _, n := range g.Notices {
		sb.WriteString("! " + n + "\n")
	}
	sb.WriteString(divider)
	sb.WriteString(line(titles, widths, g.Headers))
	sb.WriteString(divider)
	if g.Error != "" {
		inner := len(divider) - 3
		sb.WriteString("| " + g.Error + blank(inner-1-runewidth.StringWidth(g.Error)) + "|\n")
	}
	for _, row := range g.Rows {
		sb.WriteString(line(row, widths, g.Headers))
	}
	sb.WriteString(divider)

	prev, next := "< Prev", "Next >"
	if !g.CanPrev {
		prev = "  ----"
	}
	if !g.CanNext {
		next = "----  "
	}
	sizes := make([]string, len(g.PageSizes))
	for i, s := range g.PageSizes {
		sizes[i] = strconv.Itoa(s)
		if s == g.PageSize {
			sizes[i] = "[" + sizes[i] + "]"
		}
	}
	p := message.NewPrinter(lang)
	sb.WriteString(p.Sprintf("%s  |  page %d / %d  |  size %s  |  %s %s\n",
		g.Summary, max(g.Page, 1), max(g.Pages, 1), strings.Join(sizes, " "), prev, next))

	_, err := io.WriteString(w, sb.String())
	return err
}

func headerTitle(h Header) string {
	switch h.Direction {
	case "asc":
		return h.Title + " ▲"
	case "desc":
		return h.Title + " ▼"
	}
	if h.Sortable {
		return h.Title + " ↕"
	}
	return h.Title
}

func line(cells []string, widths []int, headers []Header) string {
	var sb strings.Builder
	sb.WriteString("|")
	for i, wd := range widths {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		gap := blank(wd - runewidth.StringWidth(cell))
		if i < len(headers) && headers[i].Right {
			sb.WriteString(" " + gap + cell + " |")
		} else {
			sb.WriteString(" " + cell + gap + " |")
		}
	}
	sb.WriteString("\n")
	return sb.String()
}

func blank(w int) string {
	if w < 1 {
		return ""
	}
	return strings.Repeat(" ", w)
}
