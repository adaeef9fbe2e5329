package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shelfapi/bookshelf/internal/app/models"
	"github.com/shelfapi/bookshelf/internal/app/models/dto"
	"github.com/shelfapi/bookshelf/internal/pkg/apperrors"
)

// fakeBookRepo is an in-memory IBookRepository for service tests
type fakeBookRepo struct {
	books  map[int64]*models.Book
	nextID int64
}

func newFakeBookRepo() *fakeBookRepo {
	return &fakeBookRepo{books: map[int64]*models.Book{}, nextID: 1}
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

func (r *fakeBookRepo) List(_ context.Context, filter *dto.BookFilter) ([]*models.Book, int64, error) {
	result := []*models.Book{}
	for _, book := range r.books {
		if filter != nil && filter.AuthorID > 0 && book.AuthorID != filter.AuthorID {
			continue
		}
		copied := *book
		result = append(result, &copied)
	}
	return result, int64(len(result)), nil
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

// fakeAuthorRepo is an in-memory IAuthorRepository for service tests
type fakeAuthorRepo struct {
	authors map[int64]*models.Author
	books   *fakeBookRepo
	nextID  int64
}

func newFakeAuthorRepo(books *fakeBookRepo) *fakeAuthorRepo {
	return &fakeAuthorRepo{authors: map[int64]*models.Author{}, books: books, nextID: 1}
}

func (r *fakeAuthorRepo) Create(_ context.Context, author *models.Author) (int64, error) {
	id := r.nextID
	r.nextID++
	stored := *author
	stored.ID = id
	r.authors[id] = &stored
	return id, nil
}

func (r *fakeAuthorRepo) GetByID(_ context.Context, id int64) (*models.Author, error) {
	author, ok := r.authors[id]
	if !ok {
		return nil, apperrors.ErrAuthorNotFound
	}
	copied := *author
	return &copied, nil
}

func (r *fakeAuthorRepo) GetWithBooks(ctx context.Context, id int64) (*models.Author, error) {
	author, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if r.books != nil {
		for _, book := range r.books.books {
			if book.AuthorID == id {
				copied := *book
				author.Books = append(author.Books, &copied)
			}
		}
	}
	return author, nil
}

func (r *fakeAuthorRepo) GetAll(_ context.Context) ([]*models.Author, error) {
	result := []*models.Author{}
	for _, author := range r.authors {
		copied := *author
		result = append(result, &copied)
	}
	return result, nil
}

func (r *fakeAuthorRepo) Update(_ context.Context, author *models.Author) error {
	if _, ok := r.authors[author.ID]; !ok {
		return apperrors.ErrAuthorNotFound
	}
	stored := *author
	r.authors[author.ID] = &stored
	return nil
}

// Delete removes the author and, like the FK cascade, the author's books
func (r *fakeAuthorRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.authors[id]; !ok {
		return apperrors.ErrAuthorNotFound
	}
	delete(r.authors, id)
	if r.books != nil {
		for bookID, book := range r.books.books {
			if book.AuthorID == id {
				delete(r.books.books, bookID)
			}
		}
	}
	return nil
}

func (r *fakeAuthorRepo) Exists(_ context.Context, id int64) (bool, error) {
	_, ok := r.authors[id]
	return ok, nil
}

func newBookServiceFixture(t *testing.T) (*BookService, *fakeBookRepo, *fakeAuthorRepo, int64) {
	t.Helper()
	bookRepo := newFakeBookRepo()
	authorRepo := newFakeAuthorRepo(bookRepo)
	authorID, err := authorRepo.Create(context.Background(), &models.Author{Name: "Ursula K. Le Guin"})
	require.NoError(t, err)
	return NewBookService(bookRepo, authorRepo), bookRepo, authorRepo, authorID
}

func TestCreateBookAcceptsCurrentYear(t *testing.T) {
	svc, _, _, authorID := newBookServiceFixture(t)

	book, err := svc.CreateBook(context.Background(), &dto.CreateBookRequest{
		Title:           "The Dispossessed",
		PublicationYear: time.Now().Year(),
		AuthorID:        authorID,
	})
	require.NoError(t, err)
	assert.Equal(t, time.Now().Year(), book.PublicationYear)
	assert.Equal(t, authorID, book.AuthorID)
}

func TestCreateBookRejectsFutureYear(t *testing.T) {
	svc, bookRepo, _, authorID := newBookServiceFixture(t)

	_, err := svc.CreateBook(context.Background(), &dto.CreateBookRequest{
		Title:           "From the Future",
		PublicationYear: time.Now().Year() + 1,
		AuthorID:        authorID,
	})
	require.ErrorIs(t, err, apperrors.ErrPublicationYearInFuture)
	assert.Empty(t, bookRepo.books)
}

func TestCreateBookRejectsBlankTitle(t *testing.T) {
	svc, _, _, authorID := newBookServiceFixture(t)

	_, err := svc.CreateBook(context.Background(), &dto.CreateBookRequest{
		Title:           "   ",
		PublicationYear: 1974,
		AuthorID:        authorID,
	})
	require.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestCreateBookRejectsUnknownAuthor(t *testing.T) {
	svc, _, _, _ := newBookServiceFixture(t)

	_, err := svc.CreateBook(context.Background(), &dto.CreateBookRequest{
		Title:           "Orphaned",
		PublicationYear: 1974,
		AuthorID:        999,
	})
	require.ErrorIs(t, err, apperrors.ErrAuthorNotFound)
}

func TestUpdateBookRejectsFutureYear(t *testing.T) {
	svc, _, _, authorID := newBookServiceFixture(t)

	book, err := svc.CreateBook(context.Background(), &dto.CreateBookRequest{
		Title:           "The Dispossessed",
		PublicationYear: 1974,
		AuthorID:        authorID,
	})
	require.NoError(t, err)

	_, err = svc.UpdateBook(context.Background(), book.ID, &dto.UpdateBookRequest{
		Title:           "The Dispossessed",
		PublicationYear: time.Now().Year() + 5,
		AuthorID:        authorID,
	})
	require.ErrorIs(t, err, apperrors.ErrPublicationYearInFuture)

	unchanged, err := svc.GetBookByID(context.Background(), book.ID)
	require.NoError(t, err)
	assert.Equal(t, 1974, unchanged.PublicationYear)
}

func TestPatchBookUpdatesOnlyProvidedFields(t *testing.T) {
	svc, _, _, authorID := newBookServiceFixture(t)

	book, err := svc.CreateBook(context.Background(), &dto.CreateBookRequest{
		Title:           "The Dispossessed",
		PublicationYear: 1974,
		AuthorID:        authorID,
	})
	require.NoError(t, err)

	newTitle := "The Dispossessed: An Ambiguous Utopia"
	patched, err := svc.PatchBook(context.Background(), book.ID, &dto.PatchBookRequest{Title: &newTitle})
	require.NoError(t, err)
	assert.Equal(t, newTitle, patched.Title)
	assert.Equal(t, 1974, patched.PublicationYear)
	assert.Equal(t, authorID, patched.AuthorID)
}

func TestPatchBookRejectsFutureYear(t *testing.T) {
	svc, _, _, authorID := newBookServiceFixture(t)

	book, err := svc.CreateBook(context.Background(), &dto.CreateBookRequest{
		Title:           "The Dispossessed",
		PublicationYear: 1974,
		AuthorID:        authorID,
	})
	require.NoError(t, err)

	futureYear := time.Now().Year() + 1
	_, err = svc.PatchBook(context.Background(), book.ID, &dto.PatchBookRequest{PublicationYear: &futureYear})
	require.ErrorIs(t, err, apperrors.ErrPublicationYearInFuture)
}

func TestDeleteAuthorRemovesBooks(t *testing.T) {
	bookRepo := newFakeBookRepo()
	authorRepo := newFakeAuthorRepo(bookRepo)
	authorSvc := NewAuthorService(authorRepo)
	bookSvc := NewBookService(bookRepo, authorRepo)

	authorID, err := authorRepo.Create(context.Background(), &models.Author{Name: "Le Guin"})
	require.NoError(t, err)

	book, err := bookSvc.CreateBook(context.Background(), &dto.CreateBookRequest{
		Title:           "The Left Hand of Darkness",
		PublicationYear: 1969,
		AuthorID:        authorID,
	})
	require.NoError(t, err)

	require.NoError(t, authorSvc.DeleteAuthor(context.Background(), authorID))

	_, err = bookSvc.GetBookByID(context.Background(), book.ID)
	assert.ErrorIs(t, err, apperrors.ErrBookNotFound)
}
