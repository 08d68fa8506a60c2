// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package book

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/bookshelf/internal/platform/database/schema"
	"github.com/taibuivan/bookshelf/internal/platform/dberr"
	"github.com/taibuivan/bookshelf/pkg/uuidv7"
)

// PostgresRepository implements [Repository] on the library.book table.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository creates a repository over a shared pool.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// ListBooks returns every book, oldest first (ids are time-ordered UUIDv7).
func (repository *PostgresRepository) ListBooks(context context.Context) ([]*Summary, error) {
	query := fmt.Sprintf(`
		SELECT %s::text, %s, %s
		FROM %s
		ORDER BY %s ASC;
	`,
		schema.LibraryBook.ID,
		schema.LibraryBook.Title,
		schema.LibraryBook.CommentCount,
		schema.LibraryBook.Table,
		schema.LibraryBook.ID,
	)

	rows, err := repository.db.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list_books")
	}
	defer rows.Close()

	summaries := []*Summary{}
	for rows.Next() {
		s := &Summary{}
		if err := rows.Scan(&s.ID, &s.Title, &s.CommentCount); err != nil {
			return nil, dberr.Wrap(err, "scan_book_summary")
		}
		summaries = append(summaries, s)
	}

	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "list_books")
	}

	return summaries, nil
}

// CreateBook inserts a book with an explicit empty comment log and zero count.
func (repository *PostgresRepository) CreateBook(context context.Context, title string) (*Book, error) {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s)
		VALUES ($1, $2, '{}', 0, NOW())
		RETURNING %s::text, %s
	`,
		schema.LibraryBook.Table,
		schema.LibraryBook.ID, schema.LibraryBook.Title, schema.LibraryBook.Comments,
		schema.LibraryBook.CommentCount, schema.LibraryBook.CreatedAt,
		schema.LibraryBook.ID, schema.LibraryBook.Title,
	)

	b := &Book{Comments: []string{}}
	err := repository.db.QueryRow(context, query, uuidv7.New(), title).Scan(&b.ID, &b.Title)
	if err != nil {
		return nil, dberr.Wrap(err, "create_book")
	}

	return b, nil
}

// GetBook looks a book up by id. Ids that are not UUIDs are absent.
func (repository *PostgresRepository) GetBook(context context.Context, id string) (*Book, error) {
	bookID, ok := uuidv7.Parse(id)
	if !ok {
		return nil, ErrNotFound
	}

	query := fmt.Sprintf(`
		SELECT %s::text, %s, %s, %s
		FROM %s
		WHERE %s = $1
	`,
		schema.LibraryBook.ID, schema.LibraryBook.Title,
		schema.LibraryBook.Comments, schema.LibraryBook.CommentCount,
		schema.LibraryBook.Table,
		schema.LibraryBook.ID,
	)

	b := &Book{}
	err := repository.db.QueryRow(context, query, bookID).Scan(&b.ID, &b.Title, &b.Comments, &b.CommentCount)
	return scanned(b, err, "get_book")
}

// AppendComment appends and recounts in a single UPDATE.
//
// The SET expressions read the pre-update row, so cardinality(comments)+1 is
// the length after the append.
func (repository *PostgresRepository) AppendComment(context context.Context, id, comment string) (*Book, error) {
	bookID, ok := uuidv7.Parse(id)
	if !ok {
		return nil, ErrNotFound
	}

	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = array_append(%s, $2), %s = cardinality(%s) + 1
		WHERE %s = $1
		RETURNING %s::text, %s, %s, %s
	`,
		schema.LibraryBook.Table,
		schema.LibraryBook.Comments, schema.LibraryBook.Comments,
		schema.LibraryBook.CommentCount, schema.LibraryBook.Comments,
		schema.LibraryBook.ID,
		schema.LibraryBook.ID, schema.LibraryBook.Title,
		schema.LibraryBook.Comments, schema.LibraryBook.CommentCount,
	)

	b := &Book{}
	err := repository.db.QueryRow(context, query, bookID, comment).Scan(&b.ID, &b.Title, &b.Comments, &b.CommentCount)
	return scanned(b, err, "append_comment")
}

// DeleteBook removes one book and reports whether a row was affected.
func (repository *PostgresRepository) DeleteBook(context context.Context, id string) (bool, error) {
	bookID, ok := uuidv7.Parse(id)
	if !ok {
		return false, nil
	}

	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.LibraryBook.Table, schema.LibraryBook.ID)

	cmd, err := repository.db.Exec(context, query, bookID)
	if err != nil {
		return false, dberr.Wrap(err, "delete_book")
	}

	return cmd.RowsAffected() > 0, nil
}

// DeleteAllBooks removes every row and returns the count.
func (repository *PostgresRepository) DeleteAllBooks(context context.Context) (int64, error) {
	query := fmt.Sprintf(`DELETE FROM %s`, schema.LibraryBook.Table)

	cmd, err := repository.db.Exec(context, query)
	if err != nil {
		return 0, dberr.Wrap(err, "delete_all_books")
	}

	return cmd.RowsAffected(), nil
}

// scanned converts a single-row scan result into the repository contract.
func scanned(b *Book, err error, action string) (*Book, error) {
	if dberr.IsNotFound(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, dberr.Wrap(err, action)
	}
	if b.Comments == nil {
		b.Comments = []string{}
	}
	return b, nil
}
