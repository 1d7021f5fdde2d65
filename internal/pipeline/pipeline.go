// Package pipeline orchestrates the per-user export flow.
package pipeline

import (
	"context"
	"fmt"
	"os"

	"igcorpus/internal/config"
	"igcorpus/internal/engine"
	"igcorpus/internal/formatter"
	"igcorpus/internal/logger"
	"igcorpus/internal/models"
	"igcorpus/internal/normalizer"
	"igcorpus/internal/report"
	"igcorpus/internal/schema"
	"igcorpus/internal/writer"
	"igcorpus/pkg/textutil"
)

// ArchiveSource lists users and loads their exported posts.
type ArchiveSource interface {
	Users() ([]string, error)
	Posts(user string) ([]models.RawPost, error)
}

// Exporter runs the corpus export over every user in the source. Users are
// processed sequentially; records within a user in parallel through the
// engine session.
type Exporter struct {
	cfg       *config.Config
	source    ArchiveSource
	session   *engine.Session
	formatter *formatter.Formatter
	writer    *writer.DatasetWriter
	log       *logger.Logger
}

// NewExporter creates an exporter bound to a source and an engine session.
func NewExporter(cfg *config.Config, source ArchiveSource, session *engine.Session, log *logger.Logger) (*Exporter, error) {
	format, err := formatter.ParseFormat(cfg.Exporter.Output.Format)
	if err != nil {
		return nil, err
	}

	return &Exporter{
		cfg:       cfg,
		source:    source,
		session:   session,
		formatter: formatter.New(format, cfg.Exporter.Output.DocumentMode),
		writer:    writer.NewDatasetWriter(session, cfg.Exporter.Output.Parallelized),
		log:       log,
	}, nil
}

// Run exports every user and returns the run report. A per-user failure is
// recorded in the report and the run moves on; only setup failures abort.
func (e *Exporter) Run(ctx context.Context) (*report.Report, error) {
	rep := report.New(e.session.ID(), e.cfg.Exporter.Output.Format)

	users, err := e.source.Users()
	if err != nil {
		return rep, fmt.Errorf("failed to list users: %w", err)
	}

	if err := e.prepareOutputRoot(); err != nil {
		return rep, err
	}

	for _, user := range users {
		if err := ctx.Err(); err != nil {
			return rep, fmt.Errorf("run cancelled: %w", err)
		}

		result := e.exportUser(ctx, user)
		rep.Add(result)

		if result.Err != nil {
			e.log.Error("user export failed", "user", user, "error", result.Err)

			continue
		}

		e.log.Info("user exported", "user", user, "posts", result.Posts, "units", result.Units)
	}

	return rep, nil
}

// prepareOutputRoot clears the previous run's output and recreates the root.
// Runs once, before any per-user work touches it.
func (e *Exporter) prepareOutputRoot() error {
	root := e.cfg.Exporter.Output.Root

	if err := os.RemoveAll(root); err != nil {
		return fmt.Errorf("failed to clear output root %s: %w", root, err)
	}

	if err := os.MkdirAll(root, 0755); err != nil {
		return fmt.Errorf("failed to create output root %s: %w", root, err)
	}

	return nil
}

// exportUser runs the full flow for one user. Any failure lands in the
// result; it never takes down the run.
func (e *Exporter) exportUser(ctx context.Context, user string) report.UserResult {
	result := report.UserResult{User: user, Output: e.cfg.GetOutputPath(user)}

	posts, err := e.source.Posts(user)
	if err != nil {
		result.Err = fmt.Errorf("failed to read archive: %w", err)

		return result
	}

	result.Posts = len(posts)

	records, err := e.normalize(ctx, posts)
	if err != nil {
		result.Err = err

		return result
	}

	units, err := e.writer.Write(ctx, result.Output, e.formatter.Units(records))
	if err != nil {
		result.Err = fmt.Errorf("failed to write %s: %w", result.Output, err)

		return result
	}

	result.Units = units
	result.Words = countWords(records)

	return result
}

// normalize resolves the user's schema from the field-name union and maps
// every post to its record in parallel. Zero posts short-circuit: there is
// nothing to resolve, and the user still gets an (empty) artifact.
func (e *Exporter) normalize(ctx context.Context, posts []models.RawPost) ([]models.CanonicalRecord, error) {
	if len(posts) == 0 {
		return nil, nil
	}

	resolution, err := schema.Resolve(models.FieldNames(posts))
	if err != nil {
		return nil, err
	}

	norm := normalizer.NewNormalizer(resolution)

	return engine.MapUnordered(ctx, e.session, posts, func(_ context.Context, post models.RawPost) (models.CanonicalRecord, error) {
		return norm.Normalize(post)
	})
}

// countWords totals corpus words across the text fields of the records.
func countWords(records []models.CanonicalRecord) int {
	total := 0

	for _, record := range records {
		total += textutil.WordCount(record.Comments)
		total += textutil.WordCount(record.Caption)
		total += textutil.WordCount(record.Tags)
	}

	return total
}
