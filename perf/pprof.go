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

// Package perf 以 pprof 包住一段執行（cmd/svr、cmd/console 的 -p 旗標）。
package perf

import (
	"os"
	"path/filepath"
	"runtime"
	"runtime/pprof"

	"github.com/leonardoelit/backoffice/errs"
)

// DefaultDir 是 pprof 檔案寫入路徑。
const DefaultDir = "build/profiling"

// Mode 是 profiling 種類；空字串代表不 profiling。
type Mode string

const (
	Off    Mode = ""
	CPU    Mode = "cpu"
	Heap   Mode = "heap"
	Allocs Mode = "allocs"
)

// ParseMode 解析 -p 旗標。
func ParseMode(s string) (Mode, error) {
	switch m := Mode(s); m {
	case Off, CPU, Heap, Allocs:
		return m, nil
	}
	return Off, errs.Warnf("unknown pprof mode %q (cpu, heap, allocs)", s)
}

// Run 依 mode 執行 exe 並把 profile 寫到 dir/<mode>.pprof。
//
//   - cpu：exe 執行期間持續取樣（可作為 pgo 的 default.pgo）。
//   - heap：exe 結束後 GC 一次再寫出 in-use 快照。
//   - allocs：exe 結束後寫出累積配置。
func Run(exe func(), mode Mode, dir string) error {
	if mode == Off {
		exe()
		return nil
	}
	if dir == "" {
		dir = DefaultDir
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errs.Wrap(err, "create pprof dir")
	}
	f, err := os.Create(filepath.Join(dir, string(mode)+".pprof"))
	if err != nil {
		return errs.Wrap(err, "create pprof file")
	}
	defer f.Close()

	switch mode {
	case CPU:
		if err := pprof.StartCPUProfile(f); err != nil {
			return errs.Wrap(err, "start cpu profile")
		}
		defer pprof.StopCPUProfile()
		exe()
		return nil
	case Heap:
		exe()
		// 讓快照貼近最新狀態
		runtime.GC()
		if err := pprof.WriteHeapProfile(f); err != nil {
			return errs.Wrap(err, "write heap profile")
		}
		return nil
	default:
		exe()
		if prof := pprof.Lookup("allocs"); prof != nil {
			if err := prof.WriteTo(f, 0); err != nil {
				return errs.Wrap(err, "write allocs profile")
			}
		}
		return nil
	}
}
