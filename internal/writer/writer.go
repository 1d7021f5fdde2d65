// Package writer materializes formatted corpus units into per-user
// artifacts.
package writer

import (
	"bufio"
	"context"
	"fmt"
	"iter"
	"os"
	"path/filepath"
	"slices"
)

// PartitionSink writes partitioned text output under a logical path. The
// engine session satisfies it; the writer depends on the capability, not
// on the engine package.
type PartitionSink interface {
	WriteTextParts(ctx context.Context, dir string, units []string) error
}

// DatasetWriter writes one user's corpus artifact.
type DatasetWriter struct {
	sink        PartitionSink
	partitioned bool
}

// NewDatasetWriter creates a writer. Partitioned writes go through sink;
// single-file writes go straight to the filesystem.
func NewDatasetWriter(sink PartitionSink, partitioned bool) *DatasetWriter {
	return &DatasetWriter{
		sink:        sink,
		partitioned: partitioned,
	}
}

// Write materializes units at path and returns how many were written. The
// whole sequence is collected before any file is opened, so a failure
// while producing units never leaves a partial artifact behind. An empty
// sequence still creates the artifact.
func (w *DatasetWriter) Write(ctx context.Context, path string, units iter.Seq[string]) (int, error) {
	collected := slices.Collect(units)

	if w.partitioned {
		if err := w.sink.WriteTextParts(ctx, path, collected); err != nil {
			return 0, fmt.Errorf("failed to write partitioned output: %w", err)
		}

		return len(collected), nil
	}

	if err := writeSingleFile(path, collected); err != nil {
		return 0, err
	}

	return len(collected), nil
}

// writeSingleFile writes units to one file, one unit per line.
func writeSingleFile(path string, units []string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}

	writer := bufio.NewWriter(file)

	for _, unit := range units {
		if _, err := writer.WriteString(unit + "\n"); err != nil {
			file.Close()

			return fmt.Errorf("failed to write output file: %w", err)
		}
	}

	if err := writer.Flush(); err != nil {
		file.Close()

		return fmt.Errorf("failed to flush output file: %w", err)
	}

	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close output file: %w", err)
	}

	return nil
}
