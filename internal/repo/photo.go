// Package repo contains all database access logic for the photo journal.
// No business logic lives here, only SQL and type mapping.
package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/fgridley/photo-journal/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Accepting this interface instead of *pgxpool.Pool directly allows integration
// tests to pass a transaction that is rolled back after each test.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PhotoRecordRepo defines the persistence operations for photo records.
// The service layer depends on this interface, not the Postgres implementation.
type PhotoRecordRepo interface {
	// Create inserts a new record and returns it with DB-generated id and
	// created_at populated. Only the calendar day of Date is stored.
	Create(ctx context.Context, rec domain.PhotoRecord) (domain.PhotoRecord, error)

	// GetByID retrieves a single record.
	// Returns domain.ErrNotFound if no record with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.PhotoRecord, error)

	// ListPaged returns one page of records, newest day first, plus the total
	// record count across all pages.
	ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.PhotoRecord, int64, error)

	// ListJournal returns every record that has both a photo URL and a
	// location, ascending by day. Records sharing a day are in insertion order.
	ListJournal(ctx context.Context) ([]domain.PhotoRecord, error)

	// Delete removes a record. Returns domain.ErrNotFound if it does not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}

// pgPhotoRecordRepo is the Postgres implementation of PhotoRecordRepo.
type pgPhotoRecordRepo struct {
	db db
}

// NewPhotoRecordRepo constructs a PhotoRecordRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewPhotoRecordRepo(db db) PhotoRecordRepo {
	return &pgPhotoRecordRepo{db: db}
}

const photoRecordColumns = `id, taken_on, location_name, photo_url, created_at`

func (r *pgPhotoRecordRepo) Create(ctx context.Context, rec domain.PhotoRecord) (domain.PhotoRecord, error) {
	const q = `
		INSERT INTO photo_records (taken_on, location_name, photo_url)
		VALUES (@taken_on, @location_name, @photo_url)
		RETURNING ` + photoRecordColumns

	args := pgx.NamedArgs{
		"taken_on":      pgtype.Date{Time: rec.Date, Valid: true},
		"location_name": rec.LocationName,
		"photo_url":     rec.PhotoURL,
	}

	result, err := scanPhotoRecord(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.PhotoRecord{}, fmt.Errorf("repo.PhotoRecordRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgPhotoRecordRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.PhotoRecord, error) {
	const q = `SELECT ` + photoRecordColumns + ` FROM photo_records WHERE id = @id`

	result, err := scanPhotoRecord(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.PhotoRecord{}, fmt.Errorf("repo.PhotoRecordRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgPhotoRecordRepo) ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.PhotoRecord, int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM photo_records`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("repo.PhotoRecordRepo.ListPaged: count: %w", err)
	}

	const q = `
		SELECT ` + photoRecordColumns + `
		FROM photo_records
		ORDER BY taken_on DESC, created_at DESC, id DESC
		LIMIT @limit OFFSET @offset`

	recs, err := r.query(ctx, q, pgx.NamedArgs{"limit": p.Limit, "offset": p.Offset()})
	if err != nil {
		return nil, 0, fmt.Errorf("repo.PhotoRecordRepo.ListPaged: %w", err)
	}
	return recs, total, nil
}

func (r *pgPhotoRecordRepo) ListJournal(ctx context.Context) ([]domain.PhotoRecord, error) {
	const q = `
		SELECT ` + photoRecordColumns + `
		FROM photo_records
		WHERE photo_url <> '' AND btrim(location_name) <> ''
		ORDER BY taken_on ASC, created_at ASC, id ASC`

	recs, err := r.query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.PhotoRecordRepo.ListJournal: %w", err)
	}
	return recs, nil
}

func (r *pgPhotoRecordRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM photo_records WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.PhotoRecordRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.PhotoRecordRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// query runs a multi-row select and always returns a non-nil slice.
func (r *pgPhotoRecordRepo) query(ctx context.Context, q string, args ...any) ([]domain.PhotoRecord, error) {
	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	recs := []domain.PhotoRecord{}
	for rows.Next() {
		rec, err := scanPhotoRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return recs, nil
}

// scanner is satisfied by both pgx.Row and pgx.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// scanPhotoRecord maps a single database row into a domain.PhotoRecord.
func scanPhotoRecord(s scanner) (domain.PhotoRecord, error) {
	var (
		rec     domain.PhotoRecord
		id      pgtype.UUID
		takenOn pgtype.Date
	)

	err := s.Scan(&id, &takenOn, &rec.LocationName, &rec.PhotoURL, &rec.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.PhotoRecord{}, domain.ErrNotFound
		}
		return domain.PhotoRecord{}, err
	}

	rec.ID = uuid.UUID(id.Bytes)
	rec.Date = takenOn.Time
	return rec, nil
}
