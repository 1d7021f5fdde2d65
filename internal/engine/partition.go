package engine

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"
)

// WriteTextParts writes units as newline-terminated text split across
// numbered shard files under dir, at most one shard per worker. The logical
// output path becomes a directory, the way distributed engines materialize
// text output. Zero units still create the directory, so an empty input
// leaves an artifact behind.
func (s *Session) WriteTextParts(ctx context.Context, dir string, units []string) error {
	if s.isClosed() {
		return ErrSessionClosed
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create partition directory: %w", err)
	}

	shards := s.workers
	if shards > len(units) {
		shards = len(units)
	}

	if shards == 0 {
		return nil
	}

	group, ctx := errgroup.WithContext(ctx)

	for i := 0; i < shards; i++ {
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			start := i * len(units) / shards
			end := (i + 1) * len(units) / shards
			path := filepath.Join(dir, fmt.Sprintf("part-%05d", i))

			return writeShard(path, units[start:end])
		})
	}

	if err := group.Wait(); err != nil {
		return err
	}

	s.log.Debug("partitioned output written", "dir", dir, "units", len(units), "shards", shards)

	return nil
}

// writeShard writes one shard file, one unit per line.
func writeShard(path string, units []string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create shard file: %w", err)
	}

	writer := bufio.NewWriter(file)

	for _, unit := range units {
		if _, err := writer.WriteString(unit + "\n"); err != nil {
			file.Close()

			return fmt.Errorf("failed to write shard file: %w", err)
		}
	}

	if err := writer.Flush(); err != nil {
		file.Close()

		return fmt.Errorf("failed to flush shard file: %w", err)
	}

	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close shard file: %w", err)
	}

	return nil
}
