// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package book

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/bookshelf/internal/platform/request"
	"github.com/taibuivan/bookshelf/internal/platform/respond"
)

// # Handler Implementation

// Handler implements the HTTP layer for the book catalog.
// It translates web requests into domain service calls.
type Handler struct {
	service *Service
}

// NewHandler constructs a new book [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] with the collection and item routes.
//
// Mounted at /api/books:
//
//   - GET, POST, DELETE /       collection
//   - GET, POST, DELETE /{id}   item
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listBooks)
	router.Post("/", handler.createBook)
	router.Delete("/", handler.deleteAllBooks)

	router.Get("/{id}", handler.getBook)
	router.Post("/{id}", handler.addComment)
	router.Delete("/{id}", handler.deleteBook)

	return router
}

// ## Collection

func (handler *Handler) listBooks(writer http.ResponseWriter, request *http.Request) {
	summaries, err := handler.service.ListBooks(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if len(summaries) == 0 {
		respond.Text(writer, http.StatusNoContent, MsgNoBooksFound)
		return
	}
	respond.OK(writer, summaries)
}

func (handler *Handler) createBook(writer http.ResponseWriter, request *http.Request) {
	fields, err := requestutil.DecodeFields(writer, request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	b, err := handler.service.CreateBook(request.Context(), fields.Get(FieldTitle))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, b.Created())
}

func (handler *Handler) deleteAllBooks(writer http.ResponseWriter, request *http.Request) {
	removed, err := handler.service.DeleteAllBooks(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if removed == 0 {
		respond.Message(writer, MsgNoBooksExist)
		return
	}
	respond.Message(writer, MsgCompleteDelete)
}

// ## Item

func (handler *Handler) getBook(writer http.ResponseWriter, request *http.Request) {
	b, err := handler.service.GetBook(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, b.Detail())
}

func (handler *Handler) addComment(writer http.ResponseWriter, request *http.Request) {
	fields, err := requestutil.DecodeFields(writer, request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	b, err := handler.service.AddComment(request.Context(), requestutil.ID(request, "id"), fields.Get(FieldComment))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, b.Detail())
}

func (handler *Handler) deleteBook(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.DeleteBook(request.Context(), requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Message(writer, MsgDeleteSuccessful)
}
