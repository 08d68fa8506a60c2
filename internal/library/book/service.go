// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package book

import (
	"context"
	"errors"
	"log/slog"

	"github.com/taibuivan/bookshelf/internal/platform/apperr"
	"github.com/taibuivan/bookshelf/internal/platform/validate"
)

// Service applies the catalog rules on top of a [Repository].
//
// Every error it returns is an [apperr.AppError]: [ErrNotFound], a validation
// error, or an internal fault.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService creates a Service over repo.
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// ListBooks returns the collection view of every book.
func (service *Service) ListBooks(ctx context.Context) ([]*Summary, error) {
	summaries, err := service.repo.ListBooks(ctx)
	if err != nil {
		return nil, fault(err)
	}
	return summaries, nil
}

// CreateBook validates the title and inserts a new book.
//
// A nil title means the field was not sent.
func (service *Service) CreateBook(ctx context.Context, title *string) (*Book, error) {
	validator := &validate.Validator{}
	if err := validator.Present(FieldTitle, title).Err(); err != nil {
		return nil, err
	}

	b, err := service.repo.CreateBook(ctx, *title)
	if err != nil {
		return nil, fault(err)
	}

	service.logger.InfoContext(ctx, "book_created", slog.String("book_id", b.ID))
	return b, nil
}

// GetBook resolves a book by id.
func (service *Service) GetBook(ctx context.Context, id string) (*Book, error) {
	b, err := service.repo.GetBook(ctx, id)
	if err != nil {
		return nil, outcome(err)
	}
	return b, nil
}

// AddComment appends a comment to an existing book.
//
// # Order
//
//  1. Resolve the book; an unknown id wins over a missing comment.
//  2. Validate the comment.
//  3. Append. A book deleted since step 1 is reported as not found.
//
// Steps 1 and 3 are not isolated from concurrent writers; the store's append
// is atomic, so the count always matches the persisted log.
func (service *Service) AddComment(ctx context.Context, id string, comment *string) (*Book, error) {
	if _, err := service.repo.GetBook(ctx, id); err != nil {
		return nil, outcome(err)
	}

	validator := &validate.Validator{}
	if err := validator.Present(FieldComment, comment).Err(); err != nil {
		return nil, err
	}

	b, err := service.repo.AppendComment(ctx, id, *comment)
	if err != nil {
		return nil, outcome(err)
	}

	service.logger.InfoContext(ctx, "comment_added",
		slog.String("book_id", b.ID),
		slog.Int("comment_count", b.CommentCount),
	)
	return b, nil
}

// DeleteBook removes one book; [ErrNotFound] when nothing was removed.
func (service *Service) DeleteBook(ctx context.Context, id string) error {
	removed, err := service.repo.DeleteBook(ctx, id)
	if err != nil {
		return fault(err)
	}
	if !removed {
		return ErrNotFound
	}

	service.logger.InfoContext(ctx, "book_deleted", slog.String("book_id", id))
	return nil
}

// DeleteAllBooks removes every book and returns how many were removed.
func (service *Service) DeleteAllBooks(ctx context.Context) (int64, error) {
	removed, err := service.repo.DeleteAllBooks(ctx)
	if err != nil {
		return 0, fault(err)
	}

	service.logger.WarnContext(ctx, "books_purged", slog.Int64("removed", removed))
	return removed, nil
}

// outcome keeps ErrNotFound and classifies anything else as a fault.
func outcome(err error) error {
	if errors.Is(err, ErrNotFound) {
		return ErrNotFound
	}
	return fault(err)
}

// fault ensures err is reported as an internal error.
func fault(err error) error {
	if ae := apperr.As(err); ae != nil && ae.IsFault() {
		return ae
	}
	return apperr.Internal(err)
}
