// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package book implements the catalog's Book resource: records identified by an
opaque store-assigned id, carrying a title and an append-only comment log.

# Layers

  - [Repository]: the storage adapter contract, with PostgreSQL, MongoDB,
    in-memory and Redis-cached implementations.
  - [Service]: validation and outcome classification.
  - [Handler]: the /api/books collection and /api/books/{id} item routes.

# Invariants

  - CommentCount always equals len(Comments) after a successful mutation.
  - Title is never empty for a persisted Book and is never updated.
  - Comments keep insertion order and are never edited or removed.
*/
package book

import "github.com/taibuivan/bookshelf/internal/platform/apperr"

// Book is the full catalog record.
type Book struct {
	ID           string   `json:"_id"`
	Title        string   `json:"title"`
	Comments     []string `json:"comments"`
	CommentCount int      `json:"commentcount"`
}

// Summary is the collection view of a Book; comments are excluded.
type Summary struct {
	ID           string `json:"_id"`
	Title        string `json:"title"`
	CommentCount int    `json:"commentcount"`
}

// Created is the projection returned by a successful create.
type Created struct {
	ID    string `json:"_id"`
	Title string `json:"title"`
}

// Detail is the item view of a Book; the derived count is omitted.
type Detail struct {
	ID       string   `json:"_id"`
	Title    string   `json:"title"`
	Comments []string `json:"comments"`
}

// Created projects the book to its creation response.
func (b *Book) Created() Created {
	return Created{ID: b.ID, Title: b.Title}
}

// Detail projects the book to its item view. Comments is never nil.
func (b *Book) Detail() Detail {
	comments := b.Comments
	if comments == nil {
		comments = []string{}
	}
	return Detail{ID: b.ID, Title: b.Title, Comments: comments}
}

// Request field names.
const (
	FieldTitle   = "title"
	FieldComment = "comment"
)

// Client-facing messages.
const (
	MsgNoBooksFound     = "No books found"
	MsgNoBooksExist     = "no books exist"
	MsgCompleteDelete   = "complete delete successful"
	MsgNoBookExists     = "no book exists"
	MsgDeleteSuccessful = "delete successful"
)

// ErrNotFound is the "absent" outcome: the id does not resolve to a book,
// including ids the store cannot parse. It is not a fault.
var ErrNotFound = apperr.NotFound(MsgNoBookExists)
