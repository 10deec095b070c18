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
	"fmt"
	"os"
)

// 開發用任務：go run ./scripts <task>
func main() {
	if len(os.Args) < 2 {
		PrintYellow("Usage: go run ./scripts [test|test-all|test-detail|vet|serve|console]")
		os.Exit(1)
	}
	selectTask(os.Args[1], os.Args[2:])
}

func selectTask(task string, rest []string) {
	switch task {
	case "test":
		runTest()
	case "test-all":
		runTestAll()
	case "test-detail":
		runTestDetail()
	case "vet":
		mustRun("vet", "go", "vet", "./...")
	case "serve":
		mustRun("serve", append([]string{"go", "run", "./cmd/svr"}, rest...)...)
	case "console":
		mustRun("console", append([]string{"go", "run", "./cmd/console"}, rest...)...)
	default:
		PrintYellow(fmt.Sprintf("Unknown task: %s\n", task))
		os.Exit(1)
	}
}
