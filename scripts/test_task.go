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
	"bufio"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// mustRun 執行指令並直接輸出；失敗時結束。
func mustRun(label string, argv ...string) {
	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		PrintRed(fmt.Sprintf("%s failed: %v", label, err))
		os.Exit(1)
	}
}

func cleanCache() {
	if err := exec.Command("go", "clean", "-testcache").Run(); err != nil {
		PrintRed(err.Error())
	}
}

// filtered 執行 go test，逐行交給 show 決定要不要印（stdout 與 stderr 合併）。
func filtered(label string, show func(line string), args ...string) {
	cmd := exec.Command("go", append([]string{"test", "./..."}, args...)...)
	pipe, err := cmd.StdoutPipe()
	if err != nil {
		PrintRed(fmt.Sprintf("failed to get stdout pipe: %v", err))
		os.Exit(1)
	}
	cmd.Stderr = cmd.Stdout
	if err := cmd.Start(); err != nil {
		PrintRed(fmt.Sprintf("Error starting go test: %v", err))
		os.Exit(1)
	}
	sc := bufio.NewScanner(pipe)
	for sc.Scan() {
		show(sc.Text())
	}
	if err := cmd.Wait(); err != nil {
		PrintRed("\n" + label + " finished with errors\n")
		os.Exit(1)
	}
}

func colored(line string) bool {
	switch {
	case strings.HasPrefix(line, "ok"):
		PrintGreen(line)
	case strings.HasPrefix(line, "FAIL"):
		PrintRed(line)
	default:
		return false
	}
	return true
}

// runTest：只顯示每個套件的 ok / FAIL 與編譯錯誤。
func runTest() {
	PrintGreen("running tests")
	cleanCache()
	filtered("Tests", func(line string) {
		if !colored(line) && (strings.Contains(line, "build failed") || strings.Contains(line, "setup failed")) {
			PrintRed(line)
		}
	}, "-cover", "-count=1")
}

// runTestAll：全部套件與 coverage，原樣輸出。
func runTestAll() {
	PrintGreen("running tests (all with coverage)")
	cleanCache()
	mustRun("tests", "go", "test", "./...", "-cover")
}

// runTestDetail：verbose，略過沒有測試的套件。
func runTestDetail() {
	PrintGreen("running tests (detail)")
	cleanCache()
	filtered("Tests (detail)", func(line string) {
		if strings.Contains(line, "[no test files]") {
			return
		}
		if !colored(line) {
			fmt.Println(line)
		}
	}, "-v", "-count=1")
}
