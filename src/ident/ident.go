// Package ident mints date-scoped, human-readable sequential identifiers
// used as primary keys for activities and bookings. The next counter is
// derived from a snapshot read of the table, so concurrent allocations can
// compute the same candidate; uniqueness is enforced by the primary key and
// resolved with a bounded insert-retry loop.
package ident

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"ota/src/lib"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// ErrExhausted is returned when the retry bound is hit without finding a
// free identifier. That means a pathological contention spike or a counter
// parsing bug, so allocations also log it as an operational anomaly.
var ErrExhausted = errors.New("identifier space exhausted")

const (
	DefaultWidth       = 2
	DefaultMaxAttempts = 10
)

type Allocator struct {
	db          *gorm.DB
	log         zerolog.Logger
	width       int
	maxAttempts int
}

// NewAllocator wires an allocator to an explicit store handle. A width or
// maxAttempts of zero falls back to the defaults.
func NewAllocator(db *gorm.DB, log zerolog.Logger, width, maxAttempts int) *Allocator {
	if width <= 0 {
		width = DefaultWidth
	}
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	return &Allocator{db: db, log: log, width: width, maxAttempts: maxAttempts}
}

// WithWidth returns a copy of the allocator whose counters are zero-padded
// to width digits, for tables whose daily volume outgrows the default.
func (a *Allocator) WithWidth(width int) *Allocator {
	if width <= 0 {
		return a
	}
	clone := *a
	clone.width = width
	return &clone
}

// DatePrefix derives the identifier prefix for t: two-digit year, month, day.
func DatePrefix(t time.Time) string {
	return t.Format("060102")
}

// Allocate computes the next identifier under prefix and hands it to insert,
// which must attempt the row creation (typically a whole transaction). When
// insert reports a duplicate key the counter is bumped and the insert is
// retried with fresh state, up to the attempt bound. Any other error aborts
// immediately. On success the accepted identifier is returned; on exhaustion
// nothing has been persisted.
func (a *Allocator) Allocate(ctx context.Context, table, prefix string, insert func(id string) error) (string, error) {
	if prefix == "" {
		return "", errors.New("identifier prefix must not be empty")
	}
	next, err := a.nextCounter(ctx, table, prefix)
	if err != nil {
		return "", err
	}
	for attempt := 0; attempt < a.maxAttempts; attempt++ {
		id := fmt.Sprintf("%s%0*d", prefix, a.width, next)
		err := insert(id)
		if err == nil {
			return id, nil
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			lib.IncIdentifierRetries()
			next++
			continue
		}
		return "", err
	}
	a.log.Warn().
		Str("table", table).
		Str("prefix", prefix).
		Int("attempts", a.maxAttempts).
		Msg("identifier allocation exhausted retry budget")
	return "", fmt.Errorf("failed to generate unique identifier after %d attempts: %w", a.maxAttempts, ErrExhausted)
}

// nextCounter reads the greatest identifier under prefix and returns its
// trailing counter plus one. Ordering by length first keeps counters that
// outgrew the pad width sorting after the padded ones.
func (a *Allocator) nextCounter(ctx context.Context, table, prefix string) (int, error) {
	row := a.db.WithContext(ctx).
		Table(table).
		Select("id").
		Where("id LIKE ?", prefix+"%").
		Order("length(id) DESC, id DESC").
		Limit(1).
		Row()
	var last string
	if err := row.Scan(&last); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 1, nil
		}
		return 0, fmt.Errorf("failed to read last identifier for prefix %q: %w", prefix, err)
	}
	counter, err := strconv.Atoi(last[len(prefix):])
	if err != nil || counter < 1 {
		// Unparseable trailing digits restart the counter; the insert
		// retry still guards against stepping on an existing row.
		return 1, nil
	}
	return counter + 1, nil
}
