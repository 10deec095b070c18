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

package perf

import (
	"os"
	"path/filepath"
	"testing"
)

func TestRunWritesProfile(t *testing.T) {
	dir := t.TempDir()
	ran := false
	if err := Run(func() { ran = true }, Heap, dir); err != nil {
		t.Fatalf("run: %v", err)
	}
	st, err := os.Stat(filepath.Join(dir, "heap.pprof"))
	if !ran || err != nil || st.Size() == 0 {
		t.Fatalf("heap profile not written: ran=%v err=%v", ran, err)
	}
}

func TestRunOffSkipsFiles(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "none")
	ran := false
	if err := Run(func() { ran = true }, Off, dir); err != nil || !ran {
		t.Fatalf("off must just run: %v", err)
	}
	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Fatalf("off must not create %s", dir)
	}
}

func TestParseMode(t *testing.T) {
	for _, s := range []string{"", "cpu", "heap", "allocs"} {
		if _, err := ParseMode(s); err != nil {
			t.Fatalf("ParseMode(%q): %v", s, err)
		}
	}
	if _, err := ParseMode("block"); err == nil {
		t.Fatalf("block is not supported")
	}
}
