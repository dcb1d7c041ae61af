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

	"github.com/apache/arrow/go/v17/parquet"
	"github.com/apache/arrow/go/v17/parquet/metadata"
	"golang.org/x/xerrors"
)

func formatVersion(v parquet.Version) string {
	switch v {
	case parquet.V1_0:
		return "1.0"
	case parquet.V2_4:
		return "2.4"
	case parquet.V2_6:
		return "2.6"
	}
	return "unknown"
}

func writeMetadata(w io.Writer, fileMeta *metadata.FileMetaData, opts Options) error {
	if opts.JSON {
		summary, err := summarizeMetadata(fileMeta, opts.RowGroups)
		if err != nil {
			return err
		}
		return writeJSON(w, summary)
	}

	fmt.Fprintln(w, "<FileMetaData>")
	fmt.Fprintln(w, "  created_by:", fileMeta.GetCreatedBy())
	fmt.Fprintln(w, "  num_columns:", fileMeta.Schema.NumColumns())
	fmt.Fprintln(w, "  num_rows:", fileMeta.NumRows)
	fmt.Fprintln(w, "  num_row_groups:", len(fileMeta.RowGroups))
	fmt.Fprintln(w, "  format_version:", formatVersion(fileMeta.Version()))
	fmt.Fprintln(w, "  serialized_size:", fileMeta.Size())

	if kv := fileMeta.KeyValueMetadata(); kv != nil && kv.Len() > 0 {
		fmt.Fprintln(w, "  key_value_metadata:", kv.Len(), "entries")
		keys, values := kv.Keys(), kv.Values()
		for i := range keys {
			fmt.Fprintf(w, "    %s: %s\n", keys[i], values[i])
		}
	}

	if !opts.RowGroups {
		return nil
	}

	for r := 0; r < len(fileMeta.RowGroups); r++ {
		rg := fileMeta.RowGroup(r)
		fmt.Fprintf(w, "  row_group %d:\n", r)
		fmt.Fprintln(w, "    num_rows:", rg.NumRows())
		fmt.Fprintln(w, "    total_byte_size:", rg.TotalByteSize())

		for c := 0; c < rg.NumColumns(); c++ {
			chunk, err := summarizeColumnChunk(rg, c)
			if err != nil {
				return xerrors.Errorf("row group %d: %w", r, err)
			}
			fmt.Fprintf(w, "    column %d (%s):\n", c, chunk.Path)
			fmt.Fprintln(w, "      compression:", chunk.Compression)
			fmt.Fprint(w, "      encodings:")
			for _, enc := range chunk.Encodings {
				fmt.Fprint(w, " ", enc)
			}
			fmt.Fprintln(w)
			fmt.Fprint(w, "      values: ", chunk.NumValues)
			if chunk.Stats != nil {
				if chunk.Stats.HasMinMax {
					fmt.Fprintf(w, ", min: %s, max: %s", chunk.Stats.Min, chunk.Stats.Max)
				}
				if chunk.Stats.NullCount != nil {
					fmt.Fprintf(w, ", null values: %d", *chunk.Stats.NullCount)
				}
				if chunk.Stats.DistinctCount != nil {
					fmt.Fprintf(w, ", distinct values: %d", *chunk.Stats.DistinctCount)
				}
			} else {
				fmt.Fprint(w, ", statistics not set")
			}
			fmt.Fprintln(w)
			fmt.Fprint(w, "      uncompressed_size: ", chunk.UncompressedSize)
			fmt.Fprintln(w, ", compressed_size:", chunk.CompressedSize)
		}
	}
	return nil
}

type fileSummary struct {
	CreatedBy        string            `json:"created_by"`
	NumColumns       int               `json:"num_columns"`
	NumRows          int64             `json:"num_rows"`
	NumRowGroups     int               `json:"num_row_groups"`
	FormatVersion    string            `json:"format_version"`
	SerializedSize   int               `json:"serialized_size"`
	KeyValueMetadata map[string]string `json:"key_value_metadata,omitempty"`
	RowGroups        []rowGroupSummary `json:"row_groups,omitempty"`
}

type rowGroupSummary struct {
	NumRows       int64                `json:"num_rows"`
	TotalByteSize int64                `json:"total_byte_size"`
	Columns       []columnChunkSummary `json:"columns"`
}

type columnChunkSummary struct {
	Path             string        `json:"path"`
	Compression      string        `json:"compression"`
	Encodings        []string      `json:"encodings"`
	NumValues        int64         `json:"num_values"`
	UncompressedSize int64         `json:"uncompressed_size"`
	CompressedSize   int64         `json:"compressed_size"`
	Stats            *statsSummary `json:"statistics,omitempty"`
}

type statsSummary struct {
	HasMinMax     bool   `json:"-"`
	Min           string `json:"min,omitempty"`
	Max           string `json:"max,omitempty"`
	NullCount     *int64 `json:"null_count,omitempty"`
	DistinctCount *int64 `json:"distinct_count,omitempty"`
}

func summarizeMetadata(fileMeta *metadata.FileMetaData, withRowGroups bool) (*fileSummary, error) {
	out := &fileSummary{
		CreatedBy:      fileMeta.GetCreatedBy(),
		NumColumns:     fileMeta.Schema.NumColumns(),
		NumRows:        fileMeta.NumRows,
		NumRowGroups:   len(fileMeta.RowGroups),
		FormatVersion:  formatVersion(fileMeta.Version()),
		SerializedSize: fileMeta.Size(),
	}

	if kv := fileMeta.KeyValueMetadata(); kv != nil && kv.Len() > 0 {
		out.KeyValueMetadata = make(map[string]string, kv.Len())
		keys, values := kv.Keys(), kv.Values()
		for i := range keys {
			out.KeyValueMetadata[keys[i]] = values[i]
		}
	}

	if !withRowGroups {
		return out, nil
	}

	out.RowGroups = make([]rowGroupSummary, len(fileMeta.RowGroups))
	for r := range out.RowGroups {
		rg := fileMeta.RowGroup(r)
		out.RowGroups[r] = rowGroupSummary{
			NumRows:       rg.NumRows(),
			TotalByteSize: rg.TotalByteSize(),
			Columns:       make([]columnChunkSummary, rg.NumColumns()),
		}
		for c := range out.RowGroups[r].Columns {
			chunk, err := summarizeColumnChunk(rg, c)
			if err != nil {
				return nil, xerrors.Errorf("row group %d: %w", r, err)
			}
			out.RowGroups[r].Columns[c] = *chunk
		}
	}
	return out, nil
}

func summarizeColumnChunk(rg *metadata.RowGroupMetaData, idx int) (*columnChunkSummary, error) {
	chunkMeta, err := rg.ColumnChunk(idx)
	if err != nil {
		return nil, xerrors.Errorf("column chunk %d: %w", idx, err)
	}

	out := &columnChunkSummary{
		Path:             chunkMeta.PathInSchema().String(),
		Compression:      fmt.Sprint(chunkMeta.Compression()),
		NumValues:        chunkMeta.NumValues(),
		UncompressedSize: chunkMeta.TotalUncompressedSize(),
		CompressedSize:   chunkMeta.TotalCompressedSize(),
	}
	for _, enc := range chunkMeta.Encodings() {
		out.Encodings = append(out.Encodings, fmt.Sprint(enc))
	}

	set, err := chunkMeta.StatsSet()
	if err != nil {
		return nil, xerrors.Errorf("column chunk %d statistics: %w", idx, err)
	}
	if !set {
		return out, nil
	}

	stats, err := chunkMeta.Statistics()
	if err != nil {
		return nil, xerrors.Errorf("column chunk %d statistics: %w", idx, err)
	}
	out.Stats = &statsSummary{}
	if stats.HasMinMax() {
		out.Stats.HasMinMax = true
		out.Stats.Min = fmt.Sprint(metadata.GetStatValue(stats.Type(), stats.EncodeMin()))
		out.Stats.Max = fmt.Sprint(metadata.GetStatValue(stats.Type(), stats.EncodeMax()))
	}
	if stats.HasNullCount() {
		n := stats.NullCount()
		out.Stats.NullCount = &n
	}
	if stats.HasDistinctCount() {
		n := stats.DistinctCount()
		out.Stats.DistinctCount = &n
	}
	return out, nil
}
