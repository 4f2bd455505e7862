// Package importer loads itinerary documents from JSON files, normalizes
// them and stores them for one user. Files may be raw model output; the
// JSON object is extracted before normalization.
package importer

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/tripplanner-backend/internal/domain"
	"github.com/heartmarshall/tripplanner-backend/internal/seed"
)

// Repo is the write side of the itinerary store.
type Repo interface {
	Create(ctx context.Context, userID uuid.UUID, doc domain.Document) (domain.Document, error)
}

// TxFunc runs fn in a transaction.
type TxFunc func(ctx context.Context, fn func(ctx context.Context) error) error

// Result holds import statistics.
type Result struct {
	FilesProcessed int
	Imported       int
	Errors         int
	IDs            []string
}

type parsedFile struct {
	path string
	doc  domain.Document
}

// Run scans cfg.InputDir for *.json files, normalizes each one and creates
// it for the configured user. Unreadable or malformed files are logged and
// counted. With cfg.Atomic every document is written in one transaction
// and any failure rolls the whole import back.
func Run(ctx context.Context, cfg *Config, repo Repo, tx TxFunc, log *slog.Logger) (Result, error) {
	owner, err := cfg.Owner()
	if err != nil {
		return Result{}, err
	}

	files, err := filepath.Glob(filepath.Join(cfg.InputDir, "*.json"))
	if err != nil {
		return Result{}, fmt.Errorf("glob input dir: %w", err)
	}
	sort.Strings(files)

	var (
		result Result
		parsed []parsedFile
	)
	for _, path := range files {
		result.FilesProcessed++

		doc, err := parseFile(path, cfg.MaxTripDays)
		if err != nil {
			log.Error("skip file", slog.String("path", path), slog.String("error", err.Error()))
			result.Errors++
			continue
		}
		parsed = append(parsed, parsedFile{path: path, doc: doc})
	}

	if len(parsed) == 0 {
		log.Info("no valid files to import")
		return result, nil
	}
	if cfg.DryRun {
		result.Imported = len(parsed)
		log.Info("dry run complete", slog.Int("valid", len(parsed)), slog.Int("errors", result.Errors))
		return result, nil
	}

	if cfg.Atomic {
		var ids []string
		err := tx(ctx, func(ctx context.Context) error {
			ids = ids[:0]
			for _, p := range parsed {
				saved, err := repo.Create(ctx, owner, p.doc)
				if err != nil {
					return fmt.Errorf("%s: %w", filepath.Base(p.path), err)
				}
				ids = append(ids, saved.ID)
			}
			return nil
		})
		if err != nil {
			return result, fmt.Errorf("atomic import: %w", err)
		}
		result.IDs = ids
		result.Imported = len(ids)
	} else {
		for _, p := range parsed {
			saved, err := repo.Create(ctx, owner, p.doc)
			if err != nil {
				if ctx.Err() != nil {
					return result, ctx.Err()
				}
				log.Error("create itinerary", slog.String("path", p.path), slog.String("error", err.Error()))
				result.Errors++
				continue
			}
			result.IDs = append(result.IDs, saved.ID)
			result.Imported++
		}
	}

	log.Info("import complete",
		slog.Int("files", result.FilesProcessed),
		slog.Int("imported", result.Imported),
		slog.Int("errors", result.Errors),
	)
	return result, nil
}

func parseFile(path string, maxDays int) (domain.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.Document{}, fmt.Errorf("read file: %w", err)
	}
	body, err := seed.ExtractJSON(data)
	if err != nil {
		return domain.Document{}, err
	}
	doc, err := seed.Normalize(body, maxDays)
	if err != nil {
		return domain.Document{}, err
	}

	doc.ID = ""
	doc.UserID = ""
	doc.CreatedAt, doc.UpdatedAt = time.Time{}, time.Time{}
	return doc, nil
}
