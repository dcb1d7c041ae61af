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
	"fmt"
	"io"

	"github.com/apache/arrow/go/v17/parquet/metadata"
	"github.com/apache/arrow/go/v17/parquet/pqarrow"
	"github.com/apache/arrow/go/v17/parquet/schema"
	"github.com/goccy/go-json"
	"golang.org/x/xerrors"
)

const schemaIndent = 2

func writeSchema(w io.Writer, sc *schema.Schema, kv metadata.KeyValueMetadata, opts Options) error {
	if opts.JSON {
		summary, err := summarizeSchema(sc, kv)
		if err != nil {
			return err
		}
		return writeJSON(w, summary)
	}

	fmt.Fprintln(w, "<ParquetSchema>")
	schema.PrintSchema(sc.Root(), w, schemaIndent)
	return nil
}

type schemaSummary struct {
	Columns []columnSummary `json:"columns"`
	Fields  []fieldSummary  `json:"arrow_fields"`
}

type columnSummary struct {
	Path               string `json:"path"`
	PhysicalType       string `json:"physical_type"`
	ConvertedType      string `json:"converted_type"`
	LogicalType        string `json:"logical_type"`
	MaxDefinitionLevel int16  `json:"max_definition_level"`
	MaxRepetitionLevel int16  `json:"max_repetition_level"`
}

type fieldSummary struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Nullable bool   `json:"nullable"`
}

func summarizeSchema(sc *schema.Schema, kv metadata.KeyValueMetadata) (*schemaSummary, error) {
	out := &schemaSummary{Columns: make([]columnSummary, sc.NumColumns())}
	for i := range out.Columns {
		descr := sc.Column(i)
		out.Columns[i] = columnSummary{
			Path:               descr.Path(),
			PhysicalType:       fmt.Sprint(descr.PhysicalType()),
			ConvertedType:      fmt.Sprint(descr.ConvertedType()),
			LogicalType:        fmt.Sprint(descr.LogicalType()),
			MaxDefinitionLevel: descr.MaxDefinitionLevel(),
			MaxRepetitionLevel: descr.MaxRepetitionLevel(),
		}
	}

	arrowSchema, err := pqarrow.FromParquet(sc, &pqarrow.ArrowReadProperties{}, kv)
	if err != nil {
		return nil, xerrors.Errorf("converting schema to arrow: %w", err)
	}
	out.Fields = make([]fieldSummary, arrowSchema.NumFields())
	for i, f := range arrowSchema.Fields() {
		out.Fields[i] = fieldSummary{Name: f.Name, Type: f.Type.String(), Nullable: f.Nullable}
	}
	return out, nil
}

func writeJSON(w io.Writer, v interface{}) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}
