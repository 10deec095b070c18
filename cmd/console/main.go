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
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/leonardoelit/backoffice"
	"github.com/leonardoelit/backoffice/apiclient"
	"github.com/leonardoelit/backoffice/config"
	"github.com/leonardoelit/backoffice/server/logger"
)

// 終端機版的後台：與 HTTP API 使用相同的畫面、篩選與動作。
func main() {
	var (
		configPath = flag.String("config", "", "yaml config file (optional)")
		envFile    = flag.String("env", ".env", "env file loaded before BACKOFFICE_* variables")
		token      = flag.String("token", "", "bearer token (overrides token_source)")
		verbose    = flag.Bool("v", false, "log to stderr")
	)
	flag.Parse()

	cfg, err := config.Load(*configPath, *envFile)
	if err != nil {
		fatal(err)
	}
	mode := logger.ModeSilence
	if *verbose {
		mode = logger.ModeDev
	}
	log, ah := logger.NewAsync(1024, mode)
	defer ah.Close()

	b, err := backoffice.New(cfg, log)
	if err != nil {
		fatal(err)
	}
	defer b.Close()

	ctx := context.Background()
	if *token != "" {
		ctx = apiclient.WithToken(ctx, *token)
	}
	c := newConsole(ctx, b, os.Stdout)
	c.banner()
	sc := bufio.NewScanner(os.Stdin)
	for c.prompt(); sc.Scan(); c.prompt() {
		if quit := c.exec(sc.Text()); quit {
			return
		}
	}
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
