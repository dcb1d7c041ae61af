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
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/apache/arrow/go/v17/arrow"
	"github.com/apache/arrow/go/v17/arrow/array"
	"github.com/apache/arrow/go/v17/arrow/memory"
	"github.com/apache/arrow/go/v17/parquet/pqarrow"
	"github.com/firelink-data/verify-parquet/internal/inspect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFixture(t *testing.T, nrows int) string {
	t.Helper()

	sc := arrow.NewSchema([]arrow.Field{
		{Name: "a", Type: arrow.PrimitiveTypes.Int32},
		{Name: "b", Type: arrow.BinaryTypes.String, Nullable: true},
	}, nil)

	bldr := array.NewRecordBuilder(memory.DefaultAllocator, sc)
	defer bldr.Release()
	for i := 0; i < nrows; i++ {
		bldr.Field(0).(*array.Int32Builder).Append(int32(i * 10))
		bldr.Field(1).(*array.StringBuilder).Append(strings.Repeat("x", i+1))
	}
	rec := bldr.NewRecord()
	defer rec.Release()

	tbl := array.NewTableFromRecords(sc, []arrow.Record{rec})
	defer tbl.Release()

	var buf bytes.Buffer
	require.NoError(t, pqarrow.WriteTable(tbl, &buf, 3, nil, pqarrow.DefaultWriterProps()))

	path := filepath.Join(t.TempDir(), "fixture.parquet")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
	return path
}

func runCLI(args ...string) (code int, stdout, stderr string) {
	var out, errOut bytes.Buffer
	code = run(args, &out, &errOut)
	return code, out.String(), errOut.String()
}

func TestCLIMetadataOnly(t *testing.T) {
	path := writeFixture(t, 8)

	code, stdout, stderr := runCLI(path)
	assert.Zero(t, code)
	assert.Empty(t, stderr)
	assert.Equal(t, 3, strings.Count(stdout, inspect.Separator))
	assert.True(t, strings.HasPrefix(stdout, inspect.Separator+"\n<FileMetaData>\n"))
	assert.True(t, strings.HasSuffix(stdout, inspect.Separator+"\n\nDone!\n\n"))
	assert.NotContains(t, stdout, "xxxxx")
}

func TestCLIPrint(t *testing.T) {
	path := writeFixture(t, 8)

	for _, flag := range []string{"-p", "--print"} {
		t.Run(flag, func(t *testing.T) {
			code, stdout, stderr := runCLI(flag, path)
			assert.Zero(t, code)
			assert.Empty(t, stderr)
			assert.Equal(t, 4, strings.Count(stdout, inspect.Separator))

			preview := strings.Split(stdout, inspect.Separator+"\n")[3]
			lines := strings.Split(strings.TrimRight(preview, "\n"), "\n")
			require.Len(t, lines, inspect.DefaultHeadRows+1)
			assert.Equal(t, []string{"4", "40", "xxxxx"}, strings.Fields(lines[5]))
		})
	}
}

func TestCLIHead(t *testing.T) {
	path := writeFixture(t, 8)

	code, stdout, _ := runCLI("--print", "--head=2", path)
	assert.Zero(t, code)
	preview := strings.Split(stdout, inspect.Separator+"\n")[3]
	assert.Len(t, strings.Split(strings.TrimRight(preview, "\n"), "\n"), 2+1)

	code, stdout, _ = runCLI("--print", "--head=0", path)
	assert.Zero(t, code)
	preview = strings.Split(stdout, inspect.Separator+"\n")[3]
	assert.Len(t, strings.Split(strings.TrimRight(preview, "\n"), "\n"), 1)
}

func TestCLIFlags(t *testing.T) {
	path := writeFixture(t, 8)

	code, stdout, _ := runCLI("--row-groups", "--no-memory-map", path)
	assert.Zero(t, code)
	assert.Contains(t, stdout, "  row_group 2:\n    num_rows: 2\n")

	code, stdout, _ = runCLI("--json", path)
	assert.Zero(t, code)
	assert.Contains(t, stdout, `"num_rows": 8`)
	assert.Contains(t, stdout, `"arrow_fields"`)
}

func TestCLIHelp(t *testing.T) {
	code, stdout, stderr := runCLI("--help")
	assert.Zero(t, code)
	assert.Empty(t, stderr)
	assert.Contains(t, stdout, "Print metadata and some rows from a .parquet file.")
	assert.Contains(t, stdout, "--print")
}

func TestCLIUsageErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"no file", []string{}},
		{"unknown flag", []string{"--bogus", "x.parquet"}},
		{"two files", []string{"a.parquet", "b.parquet"}},
		{"bad head", []string{"--head=lots", "x.parquet"}},
		{"negative head", []string{"--head=-1", "x.parquet"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, stdout, stderr := runCLI(tt.args...)
			assert.NotZero(t, code)
			assert.Empty(t, stdout)
			assert.Contains(t, stderr, "Usage:")
		})
	}
}

func TestCLIMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope.parquet")

	code, stdout, stderr := runCLI("-p", path)
	assert.NotZero(t, code)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "error inspecting parquet file:")
	assert.Contains(t, stderr, path)
}

func TestCLINotParquet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte(strings.Repeat("hello parquet\n", 100)), 0o644))

	code, stdout, stderr := runCLI(path)
	assert.NotZero(t, code)
	assert.NotContains(t, stdout, "Done!")
	assert.NotEmpty(t, stderr)
}

func TestParseArgsHead(t *testing.T) {
	var stdout, stderr bytes.Buffer

	cfg, head, code := parseArgs([]string{"-p", "--head=7", "f.parquet"}, &stdout, &stderr)
	assert.Equal(t, -1, code)
	assert.Equal(t, 7, head)
	assert.True(t, cfg.Print)
	assert.Equal(t, "f.parquet", cfg.File)

	_, head, code = parseArgs([]string{"f.parquet"}, &stdout, &stderr)
	assert.Equal(t, -1, code)
	assert.Equal(t, inspect.DefaultHeadRows, head)

	_, _, code = parseArgs([]string{"--head=x", "f.parquet"}, &stdout, &stderr)
	assert.Equal(t, 1, code)
}

func TestCLIDirectory(t *testing.T) {
	for _, args := range [][]string{{t.TempDir()}, {"--no-memory-map", t.TempDir()}} {
		code, stdout, stderr := runCLI(args...)
		assert.NotZero(t, code)
		assert.Empty(t, stdout)
		assert.Contains(t, stderr, "could not open")
	}
}
