// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/schemarst

package schemarst

import "errors"

var (
	// ErrInvalidReferenceFormat is returned when reference text does not start with $ref or :ref:.
	ErrInvalidReferenceFormat = errors.New("invalid reference format")
	// ErrEmptyContainerContent is returned when a container block is built without content.
	ErrEmptyContainerContent = errors.New("container content is empty")
	// ErrDecodeDocument is returned when schema JSON or YAML decoding fails.
	ErrDecodeDocument = errors.New("decode document")
	// ErrReadSchemaFile is returned when schema file loading fails.
	ErrReadSchemaFile = errors.New("read schema file")
	// ErrWriteOutput is returned when a generated file cannot be written.
	ErrWriteOutput = errors.New("write output")
	// ErrInputPath is returned when the batch input path is missing or not a directory.
	ErrInputPath = errors.New("invalid input path")
	// ErrWatch is returned when the filesystem watcher cannot be started.
	ErrWatch = errors.New("watch input")
	// ErrLoadEnvConfig is returned when environment configuration cannot be decoded.
	ErrLoadEnvConfig = errors.New("load env config")
)
