package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_entry_store.go -package=mocks journalmind/internal/storage EntryStore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"journalmind/internal/journal"
)

var (
	// ErrNotFound is returned when a record is not found.
	ErrNotFound = errors.New("record not found")
)

// EntryStore defines the interface for journal entry storage operations.
type EntryStore interface {
	// Create stores a new entry, assigning its ID, sequence number, and
	// creation time when unset.
	Create(ctx context.Context, entry *journal.Entry) error
	// Update rewrites an existing entry's text, reflection, and kind.
	// Returns ErrNotFound for unknown ids.
	Update(ctx context.Context, entry *journal.Entry) error
	// GetByID gets an entry by id. Returns nil and ErrNotFound if not found.
	GetByID(ctx context.Context, id string) (*journal.Entry, error)
	// ListAll returns every entry, deleted included, ordered by sequence.
	ListAll(ctx context.Context) ([]journal.Entry, error)
	// ListActive returns non-deleted entries ordered by sequence.
	ListActive(ctx context.Context) ([]journal.Entry, error)
	// Delete soft-deletes an entry. Returns ErrNotFound for unknown ids.
	Delete(ctx context.Context, id string) error
}

// EntryRepo provides methods for entry operations.
// It implements the EntryStore interface.
type EntryRepo struct {
	db *sql.DB
}

// NewEntryRepo creates a new EntryRepo.
func NewEntryRepo(db *sql.DB) *EntryRepo {
	return &EntryRepo{db: db}
}

// Create stores a new entry. The sequence number is one past the current
// maximum, so it stays stable for the entry's lifetime.
func (r *EntryRepo) Create(ctx context.Context, entry *journal.Entry) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.Kind == "" {
		entry.Kind = journal.KindReflection
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if entry.Sequence == 0 {
		var maxSeq sql.NullInt64
		if err := tx.QueryRowContext(ctx, "SELECT MAX(sequence) FROM entries").Scan(&maxSeq); err != nil {
			return fmt.Errorf("failed to query max sequence: %w", err)
		}
		entry.Sequence = int(maxSeq.Int64) + 1
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO entries (id, kind, text, reflection, sequence, created_at, deleted)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		entry.ID, string(entry.Kind), entry.Text, entry.Reflection,
		entry.Sequence, entry.CreatedAt.UTC().Format(time.RFC3339Nano), boolToInt(entry.Deleted),
	)
	if err != nil {
		return fmt.Errorf("failed to insert entry: %w", err)
	}
	return tx.Commit()
}

// Update rewrites an existing entry's mutable fields. Sequence and creation
// time never change on edit.
func (r *EntryRepo) Update(ctx context.Context, entry *journal.Entry) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE entries SET kind = ?, text = ?, reflection = ? WHERE id = ? AND deleted = 0",
		string(entry.Kind), entry.Text, entry.Reflection, entry.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update entry: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// GetByID gets an entry by id. Returns nil and ErrNotFound if not found.
func (r *EntryRepo) GetByID(ctx context.Context, id string) (*journal.Entry, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT id, kind, text, reflection, sequence, created_at, deleted FROM entries WHERE id = ?", id)
	entry, err := scanEntry(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query entry: %w", err)
	}
	return entry, nil
}

// ListAll returns every entry, deleted included, ordered by sequence.
func (r *EntryRepo) ListAll(ctx context.Context) ([]journal.Entry, error) {
	return r.list(ctx, "SELECT id, kind, text, reflection, sequence, created_at, deleted FROM entries ORDER BY sequence")
}

// ListActive returns non-deleted entries ordered by sequence.
func (r *EntryRepo) ListActive(ctx context.Context) ([]journal.Entry, error) {
	return r.list(ctx, "SELECT id, kind, text, reflection, sequence, created_at, deleted FROM entries WHERE deleted = 0 ORDER BY sequence")
}

// Delete soft-deletes an entry so its sequence number stays reserved.
func (r *EntryRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, "UPDATE entries SET deleted = 1 WHERE id = ? AND deleted = 0", id)
	if err != nil {
		return fmt.Errorf("failed to delete entry: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *EntryRepo) list(ctx context.Context, query string) ([]journal.Entry, error) {
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query entries: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	entries := []journal.Entry{}
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan entry: %w", err)
		}
		entries = append(entries, *entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate entries: %w", err)
	}
	return entries, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (*journal.Entry, error) {
	var entry journal.Entry
	var kind string
	var createdAtStr string
	var deleted int

	err := row.Scan(&entry.ID, &kind, &entry.Text, &entry.Reflection,
		&entry.Sequence, &createdAtStr, &deleted)
	if err != nil {
		return nil, err
	}

	entry.Kind = journal.EntryKind(kind)
	entry.Deleted = deleted != 0
	entry.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAtStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse created_at timestamp: %w", err)
	}
	return &entry, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
