package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/zhenghao/billsnap/internal/common"
	"github.com/zhenghao/billsnap/internal/model"
)

type cachedCorrection struct {
	correction model.Correction
	present    bool
}

// GetCorrection retrieves a correction by merchant, consulting the in-process
// cache first. Lookup is case-insensitive; the stored key keeps its original
// case. Returns nil (not an error) when no correction is known.
func (s *SQLiteStorage) GetCorrection(ctx context.Context, merchant string) (*model.Correction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(merchant, "merchant"); err != nil {
		return nil, err
	}

	if c, ok := s.getCached(merchant); ok {
		if !c.present {
			return nil, nil
		}
		correction := c.correction
		return &correction, nil
	}

	var correction model.Correction
	err := s.db.QueryRowContext(ctx, `
		SELECT merchant, category, source, last_updated, use_count
		FROM corrections
		WHERE merchant = ?
	`, merchant).Scan(
		&correction.Merchant,
		&correction.Category,
		&correction.Source,
		&correction.LastUpdated,
		&correction.UseCount,
	)

	if errors.Is(err, sql.ErrNoRows) {
		s.setCached(merchant, cachedCorrection{})
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get correction: %w", err)
	}

	s.setCached(merchant, cachedCorrection{correction: correction, present: true})
	return &correction, nil
}

// SaveCorrection inserts or unconditionally overwrites the correction for a
// merchant, and appends an audit row. No merge, no versioning; the newest
// write wins.
func (s *SQLiteStorage) SaveCorrection(ctx context.Context, correction *model.Correction) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateCorrection(correction); err != nil {
		return err
	}

	if correction.LastUpdated.IsZero() {
		correction.LastUpdated = time.Now()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO corrections (merchant, category, source, last_updated, use_count)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(merchant) DO UPDATE SET
			category = excluded.category,
			source = excluded.source,
			last_updated = excluded.last_updated,
			use_count = excluded.use_count
	`, correction.Merchant, correction.Category, correction.Source, correction.LastUpdated, correction.UseCount)
	if err != nil {
		return fmt.Errorf("failed to save correction: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO correction_history (merchant, category, source)
		VALUES (?, ?, ?)
	`, correction.Merchant, correction.Category, correction.Source)
	if err != nil {
		return fmt.Errorf("failed to record correction history: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit correction: %w", err)
	}

	s.setCached(correction.Merchant, cachedCorrection{correction: *correction, present: true})
	return nil
}

// GetAllCorrections retrieves every correction, ordered by merchant.
func (s *SQLiteStorage) GetAllCorrections(ctx context.Context) ([]model.Correction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT merchant, category, source, last_updated, use_count
		FROM corrections
		ORDER BY merchant
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query corrections: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var corrections []model.Correction
	for rows.Next() {
		var c model.Correction
		if err := rows.Scan(&c.Merchant, &c.Category, &c.Source, &c.LastUpdated, &c.UseCount); err != nil {
			return nil, fmt.Errorf("failed to scan correction: %w", err)
		}
		corrections = append(corrections, c)
	}

	return corrections, rows.Err()
}

// DeleteCorrection removes a single correction.
func (s *SQLiteStorage) DeleteCorrection(ctx context.Context, merchant string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(merchant, "merchant"); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `DELETE FROM corrections WHERE merchant = ?`, merchant)
	if err != nil {
		return fmt.Errorf("failed to delete correction: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return common.ErrNotFound
	}

	s.cacheMutex.Lock()
	delete(s.cache, cacheKey(merchant))
	s.cacheMutex.Unlock()

	return nil
}

// ClearCorrections removes every correction. Subsequent lookups fall through
// to keyword or default classification until the cache is repopulated.
func (s *SQLiteStorage) ClearCorrections(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	if _, err := s.db.ExecContext(ctx, `DELETE FROM corrections`); err != nil {
		return fmt.Errorf("failed to clear corrections: %w", err)
	}

	s.cacheMutex.Lock()
	s.cache = make(map[string]cachedCorrection)
	s.cacheMutex.Unlock()

	return nil
}

// cacheKey mirrors the corrections table's COLLATE NOCASE: ASCII-only case
// folding so the in-process cache agrees with SQLite about which merchants
// are the same.
func cacheKey(merchant string) string {
	b := []byte(merchant)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}

func (s *SQLiteStorage) getCached(merchant string) (cachedCorrection, bool) {
	s.cacheMutex.RLock()
	defer s.cacheMutex.RUnlock()
	c, ok := s.cache[cacheKey(merchant)]
	return c, ok
}

func (s *SQLiteStorage) setCached(merchant string, c cachedCorrection) {
	s.cacheMutex.Lock()
	defer s.cacheMutex.Unlock()
	s.cache[cacheKey(merchant)] = c
}
