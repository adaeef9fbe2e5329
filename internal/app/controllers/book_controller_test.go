package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/shelfapi/bookshelf/internal/app/models"
	"github.com/shelfapi/bookshelf/internal/app/models/dto"
	"github.com/shelfapi/bookshelf/internal/app/services"
	"github.com/shelfapi/bookshelf/internal/pkg/apperrors"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// fakeBookRepo is an in-memory IBookRepository
type fakeBookRepo struct {
	books  map[int64]*models.Book
	nextID int64
}

func (r *fakeBookRepo) Create(_ context.Context, book *models.Book) (int64, error) {
	id := r.nextID
	r.nextID++
	stored := *book
	stored.ID = id
	r.books[id] = &stored
	return id, nil
}

func (r *fakeBookRepo) GetByID(_ context.Context, id int64) (*models.Book, error) {
	book, ok := r.books[id]
	if !ok {
		return nil, apperrors.ErrBookNotFound
	}
	copied := *book
	return &copied, nil
}

func (r *fakeBookRepo) List(_ context.Context, _ *dto.BookFilter) ([]*models.Book, int64, error) {
	books := make([]*models.Book, 0, len(r.books))
	for _, book := range r.books {
		copied := *book
		books = append(books, &copied)
	}
	return books, int64(len(books)), nil
}

func (r *fakeBookRepo) Update(_ context.Context, book *models.Book) error {
	if _, ok := r.books[book.ID]; !ok {
		return apperrors.ErrBookNotFound
	}
	stored := *book
	r.books[book.ID] = &stored
	return nil
}

func (r *fakeBookRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.books[id]; !ok {
		return apperrors.ErrBookNotFound
	}
	delete(r.books, id)
	return nil
}

// fakeAuthorRepo is an in-memory IAuthorRepository
type fakeAuthorRepo struct {
	authors map[int64]*models.Author
}

func (r *fakeAuthorRepo) Create(_ context.Context, author *models.Author) (int64, error) {
	return author.ID, nil
}

func (r *fakeAuthorRepo) GetByID(_ context.Context, id int64) (*models.Author, error) {
	author, ok := r.authors[id]
	if !ok {
		return nil, apperrors.ErrAuthorNotFound
	}
	return author, nil
}

func (r *fakeAuthorRepo) GetWithBooks(_ context.Context, id int64) (*models.Author, error) {
	return r.GetByID(context.Background(), id)
}

func (r *fakeAuthorRepo) GetAll(_ context.Context) ([]*models.Author, error) {
	return nil, nil
}

func (r *fakeAuthorRepo) Update(_ context.Context, _ *models.Author) error { return nil }

func (r *fakeAuthorRepo) Delete(_ context.Context, _ int64) error { return nil }

func (r *fakeAuthorRepo) Exists(_ context.Context, id int64) (bool, error) {
	_, ok := r.authors[id]
	return ok, nil
}

func newBookRouter() (*gin.Engine, *fakeBookRepo) {
	bookRepo := &fakeBookRepo{
		books: map[int64]*models.Book{
			1: {ID: 1, Title: "The Dispossessed", PublicationYear: 1974, AuthorID: 1},
		},
		nextID: 2,
	}
	authorRepo := &fakeAuthorRepo{
		authors: map[int64]*models.Author{1: {ID: 1, Name: "Ursula K. Le Guin"}},
	}

	ctrl := NewBookController(services.NewBookService(bookRepo, authorRepo))

	router := gin.New()
	router.DELETE("/api/books/:id/delete", ctrl.DeleteBook)
	return router, bookRepo
}

func TestDeleteBookReturnsNoContent(t *testing.T) {
	router, bookRepo := newBookRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/api/books/1/delete", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())
	assert.NotContains(t, bookRepo.books, int64(1))
}

func TestDeleteBookMissingReturnsNotFound(t *testing.T) {
	router, _ := newBookRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/api/books/99/delete", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
