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

package inspect

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"unicode"
	"unicode/utf8"

	"github.com/apache/arrow/go/v17/arrow"
	"github.com/apache/arrow/go/v17/arrow/memory"
	"github.com/apache/arrow/go/v17/parquet/file"
	"github.com/apache/arrow/go/v17/parquet/pqarrow"
	"golang.org/x/xerrors"
)

// ReadTable materializes every row group and column of rdr into a single
// arrow.Table. The caller owns the returned table and must Release it.
func ReadTable(ctx context.Context, rdr *file.Reader, mem memory.Allocator) (arrow.Table, error) {
	fr, err := pqarrow.NewFileReader(rdr, pqarrow.ArrowReadProperties{}, mem)
	if err != nil {
		return nil, xerrors.Errorf("creating arrow reader: %w", err)
	}

	tbl, err := fr.ReadTable(ctx)
	if err != nil {
		return nil, xerrors.Errorf("reading table: %w", err)
	}
	if tbl.NumRows() != rdr.NumRows() {
		got := tbl.NumRows()
		tbl.Release()
		return nil, xerrors.Errorf("reading table: decoded %d rows, footer declares %d", got, rdr.NumRows())
	}
	return tbl, nil
}

// formatCell keeps a cell on one tabwriter cell: anything holding invalid
// UTF-8 or a non-printable rune (tab, \v, \f, newlines, tabwriter.Escape)
// is shown Go-quoted instead.
func formatCell(s string) string {
	if utf8.ValidString(s) && strings.IndexFunc(s, func(r rune) bool { return !unicode.IsPrint(r) }) < 0 {
		return s
	}
	return strconv.Quote(s)
}

// Row is one row of a RowView, each cell already formatted for display.
type Row []string

// RowView is a row oriented view over a columnar arrow.Table. It does not
// copy the table, so the table must outlive the view.
type RowView struct {
	tbl arrow.Table
}

// NewRowView wraps tbl without taking a reference to it.
func NewRowView(tbl arrow.Table) *RowView { return &RowView{tbl: tbl} }

// Columns returns the names of the top level fields, in schema order.
func (v *RowView) Columns() []string {
	fields := v.tbl.Schema().Fields()
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.Name
	}
	return names
}

// NumRows is the number of rows in the whole table.
func (v *RowView) NumRows() int64 { return v.tbl.NumRows() }

// Head returns the first n rows of the table, or every row if the table
// holds fewer than n. Rows come back in the order they are stored in.
func (v *RowView) Head(n int) []Row {
	if n <= 0 {
		return []Row{}
	}

	nrows := n
	if total := v.tbl.NumRows(); total < int64(n) {
		nrows = int(total)
	}
	ncols := int(v.tbl.NumCols())

	rows := make([]Row, nrows)
	for i := range rows {
		rows[i] = make(Row, ncols)
	}

	for c := 0; c < ncols; c++ {
		r := 0
		for _, chunk := range v.tbl.Column(c).Data().Chunks() {
			for j := 0; j < chunk.Len() && r < nrows; j++ {
				rows[r][c] = formatCell(chunk.ValueStr(j))
				r++
			}
			if r == nrows {
				break
			}
		}
	}
	return rows
}

// WriteHead prints the first n rows as a right aligned grid with a header
// line of column names and a leading row index.
func (v *RowView) WriteHead(w io.Writer, n int) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)

	fmt.Fprint(tw, "\t")
	for _, name := range v.Columns() {
		fmt.Fprint(tw, formatCell(name), "\t")
	}
	fmt.Fprintln(tw)

	for i, row := range v.Head(n) {
		fmt.Fprint(tw, strconv.Itoa(i), "\t")
		for _, cell := range row {
			fmt.Fprint(tw, cell, "\t")
		}
		fmt.Fprintln(tw)
	}

	return tw.Flush()
}
