// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package book_test

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/bookshelf/internal/library/book"
)

// invalidID is well formed for no store and must be answered like an absent book.
const invalidID = "123456789012345678901234"

type testAPI struct {
	t      *testing.T
	server *httptest.Server
}

func newTestAPI(t *testing.T, repo book.Repository) *testAPI {
	t.Helper()

	router := chi.NewRouter()
	router.Mount("/api/books", book.NewHandler(book.NewService(repo, discardLogger())).Routes())

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return &testAPI{t: t, server: server}
}

// do sends a request; body may be nil, a string (raw JSON) or url.Values (form).
func (api *testAPI) do(method, path string, body any) (int, string) {
	api.t.Helper()

	var reader io.Reader
	contentType := ""
	switch typed := body.(type) {
	case string:
		reader = strings.NewReader(typed)
		contentType = "application/json"
	case url.Values:
		reader = strings.NewReader(typed.Encode())
		contentType = "application/x-www-form-urlencoded"
	}

	request, err := http.NewRequest(method, api.server.URL+path, reader)
	require.NoError(api.t, err)
	if contentType != "" {
		request.Header.Set("Content-Type", contentType)
	}

	response, err := api.server.Client().Do(request)
	require.NoError(api.t, err)
	defer response.Body.Close()

	raw, err := io.ReadAll(response.Body)
	require.NoError(api.t, err)

	return response.StatusCode, string(raw)
}

func (api *testAPI) create(title string) book.Created {
	api.t.Helper()

	status, body := api.do(http.MethodPost, "/api/books", `{"title":`+quote(title)+`}`)
	require.Equal(api.t, http.StatusCreated, status, body)

	var created book.Created
	require.NoError(api.t, json.Unmarshal([]byte(body), &created))
	return created
}

func (api *testAPI) list() (int, []book.Summary) {
	api.t.Helper()

	status, body := api.do(http.MethodGet, "/api/books", nil)
	if status != http.StatusOK {
		return status, nil
	}

	var summaries []book.Summary
	require.NoError(api.t, json.Unmarshal([]byte(body), &summaries))
	return status, summaries
}

func quote(s string) string {
	raw, _ := json.Marshal(s)
	return string(raw)
}

/*
TestHTTP_Scenario walks the create, comment, delete, get flow end to end.
*/
func TestHTTP_Scenario(t *testing.T) {
	api := newTestAPI(t, book.NewMemoryRepository())

	// 1. Create
	status, body := api.do(http.MethodPost, "/api/books", `{"title":"Mocha Chai for Dummies"}`)
	require.Equal(t, http.StatusCreated, status)

	var created map[string]any
	require.NoError(t, json.Unmarshal([]byte(body), &created))
	assert.Equal(t, "Mocha Chai for Dummies", created["title"])
	assert.NotEmpty(t, created["_id"])
	assert.NotContains(t, created, "comments")
	assert.NotContains(t, created, "commentcount")
	id := created["_id"].(string)

	// 2. Comment
	status, body = api.do(http.MethodPost, "/api/books/"+id, `{"comment":"I feel dumber after reading this."}`)
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"_id":"`+id+`","title":"Mocha Chai for Dummies","comments":["I feel dumber after reading this."]}`, body)

	// 3. Delete
	status, body = api.do(http.MethodDelete, "/api/books/"+id, nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "delete successful", body)

	// 4. Gone
	status, body = api.do(http.MethodGet, "/api/books/"+id, nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "no book exists", body)
}

/*
TestHTTP_CreateBook_AppearsInListWithZeroCount checks ids are fresh and counts start at 0.
*/
func TestHTTP_CreateBook_AppearsInListWithZeroCount(t *testing.T) {
	api := newTestAPI(t, book.NewMemoryRepository())

	first := api.create("Dune")
	second := api.create("Dune")
	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, "Dune", first.Title)

	status, summaries := api.list()
	require.Equal(t, http.StatusOK, status)
	require.Len(t, summaries, 2)
	for _, s := range summaries {
		assert.Equal(t, 0, s.CommentCount)
	}
	assert.Equal(t, first.ID, summaries[0].ID)
}

/*
TestHTTP_CreateBook_MissingTitle verifies 200 with a plain message and no record.
*/
func TestHTTP_CreateBook_MissingTitle(t *testing.T) {
	api := newTestAPI(t, book.NewMemoryRepository())
	api.create("Existing")

	for _, body := range []string{`{"title":""}`, `{}`, ``, `{"title":null}`} {
		status, text := api.do(http.MethodPost, "/api/books", body)
		assert.Equal(t, http.StatusOK, status, body)
		assert.Equal(t, "missing required field title", text, body)
	}

	status, text := api.do(http.MethodPost, "/api/books", url.Values{"title": {""}})
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "missing required field title", text)

	_, summaries := api.list()
	assert.Len(t, summaries, 1)
}

/*
TestHTTP_CreateBook_Form accepts HTML form posts.
*/
func TestHTTP_CreateBook_Form(t *testing.T) {
	api := newTestAPI(t, book.NewMemoryRepository())

	status, body := api.do(http.MethodPost, "/api/books", url.Values{"title": {"Form Posted"}})
	require.Equal(t, http.StatusCreated, status)
	assert.Contains(t, body, `"title":"Form Posted"`)
}

/*
TestHTTP_CreateBook_MalformedBody is a 400, not a validation message.
*/
func TestHTTP_CreateBook_MalformedBody(t *testing.T) {
	api := newTestAPI(t, book.NewMemoryRepository())

	status, body := api.do(http.MethodPost, "/api/books", `{"title":`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.JSONEq(t, `{"error":"Invalid request body"}`, body)
}

/*
TestHTTP_UnknownIDs verifies every item operation answers 200 "no book exists".
*/
func TestHTTP_UnknownIDs(t *testing.T) {
	api := newTestAPI(t, book.NewMemoryRepository())
	api.create("Present")

	for _, id := range []string{invalidID, "not-an-id", "0190a5b2-7c1e-7d3a-9f00-000000000000"} {
		for _, call := range []struct {
			method string
			body   any
		}{
			{http.MethodGet, nil},
			{http.MethodPost, `{"comment":"hello"}`},
			{http.MethodPost, `{}`},
			{http.MethodDelete, nil},
		} {
			status, text := api.do(call.method, "/api/books/"+id, call.body)
			assert.Equal(t, http.StatusOK, status, "%s %s", call.method, id)
			assert.Equal(t, "no book exists", text, "%s %s", call.method, id)
		}
	}
}

/*
TestHTTP_AddComment_MissingComment checks validation on an existing book.
*/
func TestHTTP_AddComment_MissingComment(t *testing.T) {
	api := newTestAPI(t, book.NewMemoryRepository())
	created := api.create("Dune")

	for _, body := range []any{`{}`, `{"comment":""}`, url.Values{"comment": {""}}} {
		status, text := api.do(http.MethodPost, "/api/books/"+created.ID, body)
		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, "missing required field comment", text)
	}
}

/*
TestHTTP_AddComment_OrderAndCount verifies append order and the derived count.
*/
func TestHTTP_AddComment_OrderAndCount(t *testing.T) {
	api := newTestAPI(t, book.NewMemoryRepository())
	created := api.create("Dune")

	comments := []string{"first", "second", "third"}
	for i, comment := range comments {
		status, body := api.do(http.MethodPost, "/api/books/"+created.ID, `{"comment":`+quote(comment)+`}`)
		require.Equal(t, http.StatusOK, status)

		var detail book.Detail
		require.NoError(t, json.Unmarshal([]byte(body), &detail))
		assert.Equal(t, comments[:i+1], detail.Comments)
	}

	// Fresh fetch: comments in order, no count on the item view
	status, body := api.do(http.MethodGet, "/api/books/"+created.ID, nil)
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"_id":"`+created.ID+`","title":"Dune","comments":["first","second","third"]}`, body)

	// Collection view carries the recomputed count
	_, summaries := api.list()
	require.Len(t, summaries, 1)
	assert.Equal(t, 3, summaries[0].CommentCount)
}

/*
TestHTTP_GetBook_EmptyComments renders an empty array, never null.
*/
func TestHTTP_GetBook_EmptyComments(t *testing.T) {
	api := newTestAPI(t, book.NewMemoryRepository())
	created := api.create("Dune")

	status, body := api.do(http.MethodGet, "/api/books/"+created.ID, nil)
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"_id":"`+created.ID+`","title":"Dune","comments":[]}`, body)
}

/*
TestHTTP_DeleteBook_Idempotent repeats a delete on the same id.
*/
func TestHTTP_DeleteBook_Idempotent(t *testing.T) {
	api := newTestAPI(t, book.NewMemoryRepository())
	created := api.create("Dune")

	status, text := api.do(http.MethodDelete, "/api/books/"+created.ID, nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "delete successful", text)

	for i := 0; i < 2; i++ {
		status, text = api.do(http.MethodDelete, "/api/books/"+created.ID, nil)
		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, "no book exists", text)
	}
}

/*
TestHTTP_DeleteAll covers both messages and the empty listing afterwards.
*/
func TestHTTP_DeleteAll(t *testing.T) {
	api := newTestAPI(t, book.NewMemoryRepository())

	status, text := api.do(http.MethodDelete, "/api/books", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "no books exist", text)

	api.create("One")
	api.create("Two")

	status, text = api.do(http.MethodDelete, "/api/books", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "complete delete successful", text)

	status, _ = api.list()
	assert.Equal(t, http.StatusNoContent, status)
}

/*
TestHTTP_StorageFaults verifies every fault maps to 500 with the generic body.
*/
func TestHTTP_StorageFaults(t *testing.T) {
	storageDown := errors.New("server selection timeout")

	repo := &mockRepository{}
	repo.On("ListBooks", mock.Anything).Return(nil, storageDown)
	repo.On("CreateBook", mock.Anything, "Dune").Return(nil, storageDown)
	repo.On("DeleteAllBooks", mock.Anything).Return(int64(0), storageDown)
	repo.On("GetBook", mock.Anything, "down").Return(nil, storageDown)
	repo.On("GetBook", mock.Anything, "b1").Return(&book.Book{ID: "b1", Title: "Dune"}, nil)
	repo.On("AppendComment", mock.Anything, "b1", "hello").Return(nil, storageDown)
	repo.On("DeleteBook", mock.Anything, "b1").Return(false, storageDown)

	api := newTestAPI(t, repo)

	for _, call := range []struct {
		method string
		path   string
		body   any
	}{
		{http.MethodGet, "/api/books", nil},
		{http.MethodPost, "/api/books", `{"title":"Dune"}`},
		{http.MethodDelete, "/api/books", nil},
		{http.MethodGet, "/api/books/down", nil},
		{http.MethodPost, "/api/books/b1", `{"comment":"hello"}`},
		{http.MethodDelete, "/api/books/b1", nil},
	} {
		status, body := api.do(call.method, call.path, call.body)
		assert.Equal(t, http.StatusInternalServerError, status, "%s %s", call.method, call.path)
		assert.JSONEq(t, `{"error":"Internal server error"}`, body)
	}
}
