package telemetry

import (
	"context"
	"errors"
	"fmt"
)

// ResultRecord is everything the sweep persists for one combination.
type ResultRecord struct {
	RunID    string
	Seed     int64
	Ticks    int
	Row      ResultRow
	Summary  Summary
	Counters Counters
}

// ResultStore persists per-combination results.
type ResultStore interface {
	SaveResult(ctx context.Context, rec ResultRecord) error
	Close() error
}

// MultiStore fans a record out to several stores, stopping at the first error.
type MultiStore []ResultStore

// SaveResult implements ResultStore.
func (m MultiStore) SaveResult(ctx context.Context, rec ResultRecord) error {
	for _, s := range m {
		if err := s.SaveResult(ctx, rec); err != nil {
			return err
		}
	}
	return nil
}

// Close closes every store and returns the joined errors.
func (m MultiStore) Close() error {
	var errs []error
	for _, s := range m {
		if err := s.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// NewStore builds the result store for kind. The CSV output manager is always
// included; "sqlite" adds a database at sqlitePath.
func NewStore(ctx context.Context, kind string, om *OutputManager, sqlitePath string) (ResultStore, error) {
	switch kind {
	case "", "csv":
		return MultiStore{om}, nil
	case "sqlite":
		db := NewSQLiteStore(sqlitePath)
		if err := db.Init(ctx); err != nil {
			return nil, fmt.Errorf("opening sqlite store: %w", err)
		}
		return MultiStore{om, db}, nil
	default:
		return nil, fmt.Errorf("unsupported store backend: %s", kind)
	}
}
