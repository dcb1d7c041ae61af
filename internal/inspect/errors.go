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
	"errors"
	"fmt"
	"io/fs"
)

// FileOpenError is returned when the path handed to Run could not be
// opened at all, for instance because it does not exist or is not readable.
type FileOpenError struct {
	Path string
	Err  error
}

func (e *FileOpenError) Error() string {
	return fmt.Sprintf("could not open %s: %s", e.Path, e.Err)
}

func (e *FileOpenError) Unwrap() error { return e.Err }

// DecodeError is returned when the file was opened but the parquet
// library could not make sense of its contents: a missing or corrupt
// footer, an unsupported schema or a page that fails to decode.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("could not decode %s: %s", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// classifyOpenErr sorts a failure from file.OpenParquetFile into one of the
// two error kinds. Opening both touches the filesystem and parses the footer,
// so the same call can fail either way.
func classifyOpenErr(path string, err error) error {
	var pathErr *fs.PathError
	if errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrPermission) || errors.As(err, &pathErr) {
		return &FileOpenError{Path: path, Err: err}
	}
	return &DecodeError{Path: path, Err: err}
}
