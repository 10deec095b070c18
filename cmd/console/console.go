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

package main

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"github.com/leonardoelit/backoffice"
	"github.com/leonardoelit/backoffice/action"
	"github.com/leonardoelit/backoffice/daterange"
	"github.com/leonardoelit/backoffice/errs"
	"github.com/leonardoelit/backoffice/finstate"
	"github.com/leonardoelit/backoffice/model"
	"github.com/leonardoelit/backoffice/notify"
	"github.com/leonardoelit/backoffice/screen"
	"github.com/leonardoelit/backoffice/table"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	green  = "\033[1;32m"
	red    = "\033[1;31m"
	yellow = "\033[1;33m"
	reset  = "\033[0m"
)

type console struct {
	ctx   context.Context
	b     *backoffice.Backoffice
	out   io.Writer
	p     *message.Printer
	cur   screen.Session
	after uint64 // 已顯示的最後一則提示
}

func newConsole(ctx context.Context, b *backoffice.Backoffice, out io.Writer) *console {
	return &console{ctx: ctx, b: b, out: out, p: message.NewPrinter(language.English), after: b.Feed().Last()}
}

func (c *console) banner() {
	c.p.Fprintf(c.out, "%s[backoffice %s] [API:%s] [SCREENS:%d]%s\n", green, backoffice.Version, c.b.Config().APIURL, len(c.b.Screens()), reset)
	fmt.Fprintln(c.out, `type "help" for commands`)
}

func (c *console) prompt() {
	name := "-"
	if c.cur != nil {
		name = c.cur.Name()
	}
	fmt.Fprintf(c.out, "%s> ", name)
}

type command struct {
	usage string
	run   func(c *console, args []string) error
}

var commands map[string]command

func init() {
	commands = map[string]command{
		"help":    {"help", (*console).help},
		"screens": {"screens", (*console).screens},
		"open":    {"open <screen>", (*console).open},
		"set":     {"set <field> <value...>", (*console).set},
		"range":   {"range <field> <from> <to>   (dates: 2006-01-02)", (*console).dateRange},
		"preset":  {"preset <today|yesterday|last7|last30|thismonth|lastmonth|all>", (*console).preset},
		"apply":   {"apply", sessionCmd((screen.Session).Apply)},
		"discard": {"discard", (*console).discard},
		"clear":   {"clear", sessionCmd((screen.Session).Clear)},
		"refresh": {"refresh", sessionCmd((screen.Session).Refresh)},
		"next":    {"next", sessionCmd((screen.Session).Next)},
		"prev":    {"prev", sessionCmd((screen.Session).Prev)},
		"goto":    {"goto <page>", (*console).gotoPage},
		"size":    {"size <25|50|75|100>", (*console).size},
		"sort":    {"sort <field>", (*console).sort},
		"load":    {"load <query string>", (*console).load},
		"view":    {"view", (*console).view},
		"query":   {"query", (*console).query},
		"row":     {"row <n>", (*console).row},
		"export":  {"export <csv|json|yaml> <file>", (*console).export},
		"profile": {"profile <playerId> [tab] [subtab]", (*console).profile},
		"decide":  {"decide <row> <accept|reject|confirm|cancel>", (*console).decide},
		"toasts":  {"toasts", (*console).toasts},
		"me":      {"me", (*console).me},
	}
}

// exec 執行一行指令；回傳 true 代表結束。
func (c *console) exec(line string) bool {
	args := strings.Fields(line)
	if len(args) == 0 {
		return false
	}
	name := strings.ToLower(args[0])
	if name == "quit" || name == "exit" {
		return true
	}
	cmd, ok := commands[name]
	if !ok {
		fmt.Fprintf(c.out, "%sunknown command %q%s\n", red, name, reset)
		return false
	}
	if err := cmd.run(c, args[1:]); err != nil {
		fmt.Fprintf(c.out, "%s%s%s\n", red, errs.UserMessage(err, "Something went wrong"), reset)
	}
	c.flush()
	return false
}

// flush 印出尚未顯示的提示。
func (c *console) flush() {
	for _, t := range c.b.Feed().Since(c.after) {
		color := green
		if t.Level == notify.LevelError {
			color = yellow
		}
		fmt.Fprintf(c.out, "%s[%s] %s%s\n", color, t.Level, t.Message, reset)
		c.after = t.ID
	}
}

func (c *console) session() (screen.Session, error) {
	if c.cur == nil {
		return nil, errs.NewWarn(`no screen is open (try "open players")`)
	}
	return c.cur, nil
}

func sessionCmd(fn func(screen.Session, context.Context) error) func(*console, []string) error {
	return func(c *console, _ []string) error {
		s, err := c.session()
		if err != nil {
			return err
		}
		if err := fn(s, c.ctx); err != nil {
			return err
		}
		return c.view(nil)
	}
}

func arg(args []string, i int, usage string) (string, error) {
	if i >= len(args) {
		return "", errs.NewWarn("usage: " + usage)
	}
	return args[i], nil
}

func atoi(args []string, i int, usage string) (int, error) {
	s, err := arg(args, i, usage)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, errs.NewWarn("usage: " + usage)
	}
	return n, nil
}

// ============================================================
// ** 指令 **
// ============================================================

func (c *console) help([]string) error {
	names := make([]string, 0, len(commands))
	for n := range commands {
		names = append(names, n)
	}
	slices.Sort(names)
	for _, n := range names {
		fmt.Fprintf(c.out, "  %s\n", commands[n].usage)
	}
	fmt.Fprintln(c.out, "  quit")
	return nil
}

func (c *console) screens([]string) error {
	for _, info := range c.b.Screens() {
		fmt.Fprintf(c.out, "  %-16s %s\n", info.Name, info.Title)
	}
	return nil
}

func (c *console) open(args []string) error {
	name, err := arg(args, 0, commands["open"].usage)
	if err != nil {
		return err
	}
	s, err := c.b.Open(name)
	if err != nil {
		return err
	}
	c.cur = s
	if err := s.Refresh(c.ctx); err != nil {
		return err
	}
	return c.view(nil)
}

func (c *console) set(args []string) error {
	s, err := c.session()
	if err != nil {
		return err
	}
	field, err := arg(args, 0, commands["set"].usage)
	if err != nil {
		return err
	}
	return s.Set(field, strings.Join(args[1:], " "))
}

func (c *console) dateRange(args []string) error {
	s, err := c.session()
	if err != nil {
		return err
	}
	usage := commands["range"].usage
	if len(args) != 3 {
		return errs.NewWarn("usage: " + usage)
	}
	loc, err := c.b.Config().Location()
	if err != nil {
		return err
	}
	from, err := daterange.ParseDate(args[1], loc)
	if err != nil {
		return err
	}
	to, err := daterange.ParseDate(args[2], loc)
	if err != nil {
		return err
	}
	return s.Custom(args[0], from, to)
}

func (c *console) preset(args []string) error {
	s, err := c.session()
	if err != nil {
		return err
	}
	raw, err := arg(args, 0, commands["preset"].usage)
	if err != nil {
		return err
	}
	p, err := daterange.ParsePreset(raw)
	if err != nil {
		return err
	}
	return s.Preset(p)
}

func (c *console) discard([]string) error {
	s, err := c.session()
	if err != nil {
		return err
	}
	s.Discard()
	return nil
}

func (c *console) gotoPage(args []string) error {
	s, err := c.session()
	if err != nil {
		return err
	}
	n, err := atoi(args, 0, commands["goto"].usage)
	if err != nil {
		return err
	}
	if err := s.Goto(c.ctx, n); err != nil {
		return err
	}
	return c.view(nil)
}

func (c *console) size(args []string) error {
	s, err := c.session()
	if err != nil {
		return err
	}
	n, err := atoi(args, 0, commands["size"].usage)
	if err != nil {
		return err
	}
	if err := s.PageSize(c.ctx, n); err != nil {
		return err
	}
	return c.view(nil)
}

func (c *console) sort(args []string) error {
	s, err := c.session()
	if err != nil {
		return err
	}
	field, err := arg(args, 0, commands["sort"].usage)
	if err != nil {
		return err
	}
	if err := s.Sort(c.ctx, field); err != nil {
		return err
	}
	return c.view(nil)
}

// load 以 URL query 還原列表狀態（與 HTTP API 的 query 相同）。
func (c *console) load(args []string) error {
	s, err := c.session()
	if err != nil {
		return err
	}
	raw, err := arg(args, 0, commands["load"].usage)
	if err != nil {
		return err
	}
	v, err := url.ParseQuery(strings.TrimPrefix(raw, "?"))
	if err != nil {
		return errs.NewWarn("invalid query: " + err.Error())
	}
	if err := s.Load(c.ctx, v); err != nil {
		return err
	}
	return c.view(nil)
}

func (c *console) view([]string) error {
	s, err := c.session()
	if err != nil {
		return err
	}
	title := s.Title()
	if s.FilterOn() {
		title += " (filtered)"
	}
	if r, ok := s.Range(); ok && r.Modified {
		title += fmt.Sprintf(" [%s %s..%s]", r.Preset.Label(), r.Bounds.MinCreatedLocal, r.Bounds.MaxCreatedLocal)
	}
	fmt.Fprintf(c.out, "%s%s%s\n", green, title, reset)
	return table.Render(c.out, s.View())
}

func (c *console) query([]string) error {
	s, err := c.session()
	if err != nil {
		return err
	}
	q, err := s.Query()
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "?%s\n", q.Encode())
	return nil
}

func (c *console) row(args []string) error {
	s, err := c.session()
	if err != nil {
		return err
	}
	raw, err := arg(args, 0, commands["row"].usage)
	if err != nil {
		return err
	}
	n, err := screen.ParseRow(raw)
	if err != nil {
		return err
	}
	item, ok := s.Item(n)
	if !ok {
		return errs.Warnf("no row %d on this page", n)
	}
	enc := json.NewEncoder(c.out)
	enc.SetIndent("", "  ")
	return enc.Encode(item)
}

func (c *console) export(args []string) error {
	s, err := c.session()
	if err != nil {
		return err
	}
	usage := commands["export"].usage
	if len(args) != 2 {
		return errs.NewWarn("usage: " + usage)
	}
	format, err := screen.ParseFormat(args[0])
	if err != nil {
		return err
	}
	f, err := os.Create(args[1])
	if err != nil {
		return errs.Wrap(err, "create export file")
	}
	defer f.Close()
	n, err := s.Export(c.ctx, f, format, os.Stderr)
	if err != nil {
		return err
	}
	c.p.Fprintf(c.out, "%sexported %d rows to %s%s\n", green, n, args[1], reset)
	return nil
}

func (c *console) profile(args []string) error {
	id, err := arg(args, 0, commands["profile"].usage)
	if err != nil {
		return err
	}
	shell, err := c.b.Profile(id)
	if err != nil {
		return err
	}
	v := url.Values{}
	if len(args) > 1 {
		v.Set("tab", args[1])
	}
	if len(args) > 2 {
		v.Set("subtab", args[2])
	}
	sec, norm, err := shell.Sync(c.ctx, v)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "%splayer %s ?%s%s\n", green, id, norm.Encode(), reset)
	if sec.Grid != nil {
		return table.Render(c.out, *sec.Grid)
	}
	enc := json.NewEncoder(c.out)
	enc.SetIndent("", "  ")
	return enc.Encode(sec)
}

// decide 對目前財務列表的第 row 筆執行動作。
func (c *console) decide(args []string) error {
	s, err := c.session()
	if err != nil {
		return err
	}
	usage := commands["decide"].usage
	rowArg, err := arg(args, 0, usage)
	if err != nil {
		return err
	}
	n, err := screen.ParseRow(rowArg)
	if err != nil {
		return err
	}
	raw, err := arg(args, 1, usage)
	if err != nil {
		return err
	}
	ev, err := finstate.ParseEvent(raw)
	if err != nil {
		return err
	}
	item, ok := s.Item(n)
	if !ok {
		return errs.Warnf("no row %d on this page", n)
	}
	tx, ok := item.(model.FinancialTransaction)
	if !ok {
		return errs.Warnf("%s rows have no financial actions", s.Name())
	}
	// 成功或失敗都已經以提示顯示
	_ = c.b.Runner().Submit(c.ctx, financialAction(c.b, tx, ev), s.Refresh)
	return nil
}

func (c *console) toasts([]string) error {
	for _, t := range c.b.Feed().Since(0) {
		fmt.Fprintf(c.out, "  #%d %s [%s] %s\n", t.ID, t.At.Format("15:04:05"), t.Level, t.Message)
	}
	return nil
}

func (c *console) me([]string) error {
	op, err := c.b.WhoAmI(c.ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "%s (id %s, role %s)\n", op.Username, op.ID, op.Role)
	return nil
}

func financialAction(b *backoffice.Backoffice, tx model.FinancialTransaction, ev finstate.Event) action.Action {
	fin := b.Platform().Financial
	return action.Action{
		Name:   "financial." + ev.String(),
		Target: "financial:" + strconv.FormatInt(tx.ID, 10),
		Do:     func(ctx context.Context) (string, error) { return fin.Apply(ctx, tx, ev) },
	}
}
