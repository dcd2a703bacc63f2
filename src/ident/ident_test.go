package ident

import (
	"context"
	"errors"
	"log"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const lastIDQuery = `SELECT id FROM "bookings" WHERE id LIKE`

func newMockAllocator(t *testing.T, width, maxAttempts int) (*Allocator, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		log.Fatalf("An error '%s' was not expected when opening a stub database connection", err)
	}
	t.Cleanup(func() { db.Close() })

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{})
	if err != nil {
		log.Fatalf("An error '%s' was not expected when opening gorm database", err)
	}

	return NewAllocator(gormDB, zerolog.Nop(), width, maxAttempts), mock
}

func TestDatePrefix(t *testing.T) {
	at := time.Date(2024, 6, 15, 10, 30, 0, 0, time.UTC)
	assert.Equal(t, "240615", DatePrefix(at))
}

func TestAllocateFirstOfDay(t *testing.T) {
	a, mock := newMockAllocator(t, 0, 0)
	mock.ExpectQuery(lastIDQuery).WillReturnRows(sqlmock.NewRows([]string{"id"}))

	var inserted []string
	id, err := a.Allocate(context.Background(), "bookings", "240615", func(id string) error {
		inserted = append(inserted, id)
		return nil
	})
	assert.NoError(t, err)
	assert.Equal(t, "24061501", id)
	assert.Equal(t, []string{"24061501"}, inserted)
}

func TestAllocateIncrementsLastCounter(t *testing.T) {
	a, mock := newMockAllocator(t, 0, 0)
	mock.ExpectQuery(lastIDQuery).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("24061501"))

	id, err := a.Allocate(context.Background(), "bookings", "240615", func(id string) error {
		return nil
	})
	assert.NoError(t, err)
	assert.Equal(t, "24061502", id)
}

func TestAllocateRetriesOnCollision(t *testing.T) {
	a, mock := newMockAllocator(t, 0, 0)
	mock.ExpectQuery(lastIDQuery).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("24061501"))

	var attempts []string
	id, err := a.Allocate(context.Background(), "bookings", "240615", func(id string) error {
		attempts = append(attempts, id)
		if len(attempts) == 1 {
			return gorm.ErrDuplicatedKey
		}
		return nil
	})
	assert.NoError(t, err)
	assert.Equal(t, "24061503", id)
	assert.Equal(t, []string{"24061502", "24061503"}, attempts)
}

func TestAllocateExhaustsRetryBudget(t *testing.T) {
	a, mock := newMockAllocator(t, 0, 0)
	mock.ExpectQuery(lastIDQuery).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("24061501"))

	calls := 0
	id, err := a.Allocate(context.Background(), "bookings", "240615", func(id string) error {
		calls++
		return gorm.ErrDuplicatedKey
	})
	assert.ErrorIs(t, err, ErrExhausted)
	assert.ErrorContains(t, err, "after 10 attempts")
	assert.Empty(t, id)
	assert.Equal(t, DefaultMaxAttempts, calls)
}

func TestAllocateAbortsOnStoreError(t *testing.T) {
	a, mock := newMockAllocator(t, 0, 0)
	mock.ExpectQuery(lastIDQuery).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("24061501"))

	boom := errors.New("connection reset")
	calls := 0
	_, err := a.Allocate(context.Background(), "bookings", "240615", func(id string) error {
		calls++
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, calls)
}

func TestAllocateUnparseableSuffixRestartsCounter(t *testing.T) {
	a, mock := newMockAllocator(t, 0, 0)
	mock.ExpectQuery(lastIDQuery).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("240615zz"))

	id, err := a.Allocate(context.Background(), "bookings", "240615", func(id string) error {
		return nil
	})
	assert.NoError(t, err)
	assert.Equal(t, "24061501", id)
}

func TestAllocateConfigurableWidth(t *testing.T) {
	a, mock := newMockAllocator(t, 0, 0)
	mock.ExpectQuery(lastIDQuery).WillReturnRows(sqlmock.NewRows([]string{"id"}))

	id, err := a.WithWidth(4).Allocate(context.Background(), "bookings", "240615", func(id string) error {
		return nil
	})
	assert.NoError(t, err)
	assert.Equal(t, "2406150001", id)
}

func TestAllocateRejectsEmptyPrefix(t *testing.T) {
	a, _ := newMockAllocator(t, 0, 0)
	_, err := a.Allocate(context.Background(), "bookings", "", func(id string) error {
		t.Fatal("insert must not be called")
		return nil
	})
	assert.Error(t, err)
}
