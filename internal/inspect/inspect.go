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

// Package inspect prints a human readable summary of a parquet file:
// its footer metadata, its schema and, on request, a preview of the first
// rows of the fully materialized table.
//
// All of the decoding is done by the arrow parquet packages. This package
// only decides what to ask for and how to lay the answers out.
package inspect

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
	"syscall"

	"github.com/apache/arrow/go/v17/arrow/memory"
	"github.com/apache/arrow/go/v17/parquet"
	"github.com/apache/arrow/go/v17/parquet/file"
)

const (
	// DefaultHeadRows is the number of rows shown by the table preview
	// when Options.HeadRows is left at its zero value.
	DefaultHeadRows = 5

	separatorWidth = 60
)

// Separator is the rule printed between the sections of the report.
var Separator = strings.Repeat("=", separatorWidth)

// Options controls what Run reads and prints.
type Options struct {
	// PrintTable reads the entire file into an arrow.Table and prints
	// the first HeadRows rows of it.
	PrintTable bool
	// HeadRows is the number of preview rows. Zero means DefaultHeadRows,
	// a negative value shows no rows at all.
	HeadRows int
	// MemoryMap maps the file into memory instead of reading it through
	// an *os.File.
	MemoryMap bool
	// RowGroups adds the per row group and per column chunk details to
	// the metadata section.
	RowGroups bool
	// JSON renders the metadata and schema sections as JSON documents.
	JSON bool
	// Mem is the allocator used for every buffer read from the file,
	// memory.DefaultAllocator if nil.
	Mem memory.Allocator
}

func (o Options) allocator() memory.Allocator {
	if o.Mem == nil {
		return memory.DefaultAllocator
	}
	return o.Mem
}

func (o Options) headRows() int {
	switch {
	case o.HeadRows == 0:
		return DefaultHeadRows
	case o.HeadRows < 0:
		return 0
	}
	return o.HeadRows
}

// Run opens the parquet file at path and writes the report to w.
//
// Nothing is written if the file cannot be opened. Any error from the
// parquet library is returned wrapped in a *FileOpenError or a
// *DecodeError; the report may then be cut short after the last section
// that was completed.
func Run(ctx context.Context, w io.Writer, path string, opts Options) error {
	mem := opts.allocator()

	// mmap reports a directory as a bare ENODEV, so check the path up front
	info, err := os.Stat(path)
	if err != nil {
		return &FileOpenError{Path: path, Err: err}
	}
	if info.IsDir() {
		return &FileOpenError{Path: path, Err: &fs.PathError{Op: "open", Path: path, Err: syscall.EISDIR}}
	}

	rdr, err := file.OpenParquetFile(path, opts.MemoryMap,
		file.WithReadProps(parquet.NewReaderProperties(mem)))
	if err != nil {
		return classifyOpenErr(path, err)
	}
	defer rdr.Close()

	fileMeta := rdr.MetaData()

	fmt.Fprintln(w, Separator)
	if err := writeMetadata(w, fileMeta, opts); err != nil {
		return &DecodeError{Path: path, Err: err}
	}
	fmt.Fprintln(w, Separator)
	if err := writeSchema(w, fileMeta.Schema, fileMeta.KeyValueMetadata(), opts); err != nil {
		return &DecodeError{Path: path, Err: err}
	}
	fmt.Fprintln(w, Separator)

	if opts.PrintTable {
		tbl, err := ReadTable(ctx, rdr, mem)
		if err != nil {
			return &DecodeError{Path: path, Err: err}
		}
		err = NewRowView(tbl).WriteHead(w, opts.headRows())
		tbl.Release()
		if err != nil {
			return err
		}
		fmt.Fprintln(w, Separator)
	}

	fmt.Fprint(w, "\nDone!\n\n")
	return nil
}
