// Licensed to the Apache Software Foundation (ASF) under one
// or more contributor license agreements.  See the NOTICE file
// distributed with this work for additional information
// regarding copyright ownership.  The ASF licenses this file
// to you under the Apache License, Version 2.0 (the
// "License"); you may not use this file except in compliance
// with the License.  You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
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
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/docopt/docopt-go"
	"github.com/firelink-data/verify-parquet/internal/inspect"
)

const usage = `verify-parquet.
Print metadata and some rows from a .parquet file.

Usage:
  verify-parquet -h | --help
  verify-parquet [--print] [--head=N] [--row-groups] [--json] [--no-memory-map] <file>

Options:
  -h --help         Show this screen.
  -p --print        Read the entire parquet file as a table and print it.
  --head=N          Number of rows to print with --print [default: 5].
  --row-groups      Include row group and column chunk details in the metadata.
  --json            Format metadata and schema as JSON instead of text.
  --no-memory-map   Disable memory mapping the file.

Happy hacking!`

type config struct {
	Print       bool
	Head        string
	RowGroups   bool
	JSON        bool `docopt:"--json"`
	NoMemoryMap bool
	File        string `docopt:"<file>"`
}

// parseArgs returns the bound config and the parsed --head value, or a
// non-negative exit code if the process should stop without inspecting
// anything.
func parseArgs(args []string, stdout, stderr io.Writer) (cfg config, head, code int) {
	code = -1
	parser := &docopt.Parser{
		HelpHandler: func(err error, usage string) {
			if err != nil {
				fmt.Fprintln(stderr, usage)
				code = 1
				return
			}
			fmt.Fprintln(stdout, usage)
			code = 0
		},
	}

	if args == nil {
		// docopt falls back to os.Args on nil
		args = []string{}
	}
	opts, err := parser.ParseArgs(usage, args, "")
	if code >= 0 {
		return cfg, 0, code
	}
	if err != nil {
		fmt.Fprintln(stderr, "error:", err)
		return cfg, 0, 1
	}
	if err := opts.Bind(&cfg); err != nil {
		fmt.Fprintln(stderr, "error:", err)
		return cfg, 0, 1
	}
	head, err = strconv.Atoi(cfg.Head)
	if err != nil || head < 0 {
		fmt.Fprintln(stderr, "error: --head needs to be a non-negative integer")
		fmt.Fprintln(stderr, usage)
		return cfg, 0, 1
	}
	return cfg, head, -1
}

func run(args []string, stdout, stderr io.Writer) int {
	cfg, head, code := parseArgs(args, stdout, stderr)
	if code >= 0 {
		return code
	}
	if head == 0 {
		// zero in Options means the default
		head = -1
	}

	out := bufio.NewWriter(stdout)
	defer out.Flush()

	err := inspect.Run(context.Background(), out, cfg.File, inspect.Options{
		PrintTable: cfg.Print,
		HeadRows:   head,
		MemoryMap:  !cfg.NoMemoryMap,
		RowGroups:  cfg.RowGroups,
		JSON:       cfg.JSON,
	})
	if err != nil {
		out.Flush()
		fmt.Fprintln(stderr, "error inspecting parquet file:", err)
		return 1
	}
	return 0
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}
