// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package book

import (
	"context"
	"slices"
	"sync"

	"github.com/taibuivan/bookshelf/pkg/uuidv7"
)

// MemoryRepository provides an in-memory implementation of [Repository].
//
// It keeps insertion order, so listings come back oldest first like the
// PostgreSQL adapter. Used by tests and by the memory:// backend.
type MemoryRepository struct {
	mu    sync.RWMutex
	books map[string]*Book
	order []string
}

// NewMemoryRepository constructs an empty MemoryRepository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{books: make(map[string]*Book)}
}

// ListBooks returns all books in insertion order.
func (repository *MemoryRepository) ListBooks(_ context.Context) ([]*Summary, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	summaries := make([]*Summary, 0, len(repository.order))
	for _, id := range repository.order {
		b := repository.books[id]
		summaries = append(summaries, &Summary{ID: b.ID, Title: b.Title, CommentCount: b.CommentCount})
	}
	return summaries, nil
}

// CreateBook stores a new book under a fresh UUIDv7.
func (repository *MemoryRepository) CreateBook(_ context.Context, title string) (*Book, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	b := &Book{ID: uuidv7.New(), Title: title, Comments: []string{}, CommentCount: 0}
	repository.books[b.ID] = b
	repository.order = append(repository.order, b.ID)

	return clone(b), nil
}

// GetBook retrieves a copy of the book with the given id.
func (repository *MemoryRepository) GetBook(_ context.Context, id string) (*Book, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	b, ok := repository.books[id]
	if !ok {
		return nil, ErrNotFound
	}
	return clone(b), nil
}

// AppendComment appends under the write lock so count and log move together.
func (repository *MemoryRepository) AppendComment(_ context.Context, id, comment string) (*Book, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	b, ok := repository.books[id]
	if !ok {
		return nil, ErrNotFound
	}

	b.Comments = append(b.Comments, comment)
	b.CommentCount = len(b.Comments)

	return clone(b), nil
}

// DeleteBook removes the book with the provided id if it exists.
func (repository *MemoryRepository) DeleteBook(_ context.Context, id string) (bool, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	if _, ok := repository.books[id]; !ok {
		return false, nil
	}

	delete(repository.books, id)
	repository.order = slices.DeleteFunc(repository.order, func(existing string) bool { return existing == id })
	return true, nil
}

// DeleteAllBooks empties the repository.
func (repository *MemoryRepository) DeleteAllBooks(_ context.Context) (int64, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	removed := int64(len(repository.books))
	repository.books = make(map[string]*Book)
	repository.order = nil

	return removed, nil
}

func clone(b *Book) *Book {
	copied := *b
	copied.Comments = slices.Clone(b.Comments)
	if copied.Comments == nil {
		copied.Comments = []string{}
	}
	return &copied
}
