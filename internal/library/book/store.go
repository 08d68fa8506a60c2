// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package book

import "context"

// Repository defines the data access contract for books.
//
// Absent records are reported as [ErrNotFound] (or false / 0 for deletes),
// never as a fault. Malformed identifiers are absent. Any other error is a
// storage fault.
type Repository interface {
	// ListBooks returns every book projected to id, title and comment count.
	ListBooks(ctx context.Context) ([]*Summary, error)

	// CreateBook inserts a book with no comments and a zero count.
	CreateBook(ctx context.Context, title string) (*Book, error)

	// GetBook looks a book up by id.
	GetBook(ctx context.Context, id string) (*Book, error)

	// AppendComment atomically appends to the comment log and recomputes the count.
	AppendComment(ctx context.Context, id, comment string) (*Book, error)

	// DeleteBook removes one book and reports whether a record was removed.
	DeleteBook(ctx context.Context, id string) (bool, error)

	// DeleteAllBooks removes every book and returns how many were removed.
	DeleteAllBooks(ctx context.Context) (int64, error)
}
