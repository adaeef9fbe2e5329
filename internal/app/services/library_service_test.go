package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shelfapi/bookshelf/internal/app/models"
	"github.com/shelfapi/bookshelf/internal/app/models/dto"
	"github.com/shelfapi/bookshelf/internal/pkg/apperrors"
)

// fakeLibraryRepo is an in-memory ILibraryRepository backed by a book repo
type fakeLibraryRepo struct {
	libraries map[int64]*models.Library
	// associations maps library ID to the set of book IDs
	associations map[int64]map[int64]bool
	books        *fakeBookRepo
	nextID       int64
}

func newFakeLibraryRepo(books *fakeBookRepo) *fakeLibraryRepo {
	return &fakeLibraryRepo{
		libraries:    map[int64]*models.Library{},
		associations: map[int64]map[int64]bool{},
		books:        books,
		nextID:       1,
	}
}

func (r *fakeLibraryRepo) Create(_ context.Context, library *models.Library) (int64, error) {
	id := r.nextID
	r.nextID++
	stored := *library
	stored.ID = id
	r.libraries[id] = &stored
	r.associations[id] = map[int64]bool{}
	return id, nil
}

func (r *fakeLibraryRepo) GetByID(_ context.Context, id int64) (*models.Library, error) {
	library, ok := r.libraries[id]
	if !ok {
		return nil, apperrors.ErrLibraryNotFound
	}
	copied := *library
	return &copied, nil
}

func (r *fakeLibraryRepo) GetWithRelations(ctx context.Context, id int64) (*models.Library, error) {
	library, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	books, err := r.GetBooks(ctx, id)
	if err != nil {
		return nil, err
	}
	library.Books = books
	return library, nil
}

func (r *fakeLibraryRepo) GetAll(_ context.Context) ([]*models.Library, error) {
	result := []*models.Library{}
	for _, library := range r.libraries {
		copied := *library
		result = append(result, &copied)
	}
	return result, nil
}

func (r *fakeLibraryRepo) Update(_ context.Context, library *models.Library) error {
	if _, ok := r.libraries[library.ID]; !ok {
		return apperrors.ErrLibraryNotFound
	}
	stored := *library
	r.libraries[library.ID] = &stored
	return nil
}

func (r *fakeLibraryRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.libraries[id]; !ok {
		return apperrors.ErrLibraryNotFound
	}
	delete(r.libraries, id)
	delete(r.associations, id)
	return nil
}

func (r *fakeLibraryRepo) AddBook(_ context.Context, libraryID, bookID int64) error {
	set, ok := r.associations[libraryID]
	if !ok {
		return apperrors.ErrResourceNotFound
	}
	set[bookID] = true
	return nil
}

func (r *fakeLibraryRepo) RemoveBook(_ context.Context, libraryID, bookID int64) error {
	set, ok := r.associations[libraryID]
	if !ok || !set[bookID] {
		return apperrors.ErrBookNotFound
	}
	delete(set, bookID)
	return nil
}

func (r *fakeLibraryRepo) GetBooks(_ context.Context, libraryID int64) ([]*models.Book, error) {
	result := []*models.Book{}
	for bookID := range r.associations[libraryID] {
		if book, ok := r.books.books[bookID]; ok {
			copied := *book
			result = append(result, &copied)
		}
	}
	return result, nil
}

func newLibraryServiceFixture(t *testing.T) (*LibraryService, int64, int64) {
	t.Helper()

	bookRepo := newFakeBookRepo()
	authorRepo := newFakeAuthorRepo(bookRepo)
	libraryRepo := newFakeLibraryRepo(bookRepo)

	authorID, err := authorRepo.Create(context.Background(), &models.Author{Name: "Borges"})
	require.NoError(t, err)

	bookID, err := bookRepo.Create(context.Background(), &models.Book{
		Title:           "Ficciones",
		PublicationYear: 1944,
		AuthorID:        authorID,
	})
	require.NoError(t, err)

	svc := NewLibraryService(libraryRepo, bookRepo)
	library, err := svc.CreateLibrary(context.Background(), &dto.CreateLibraryRequest{Name: "Central Library"})
	require.NoError(t, err)

	return svc, library.ID, bookID
}

func TestLibraryBookSetReflectsAssociations(t *testing.T) {
	svc, libraryID, bookID := newLibraryServiceFixture(t)

	library, err := svc.GetLibraryByID(context.Background(), libraryID)
	require.NoError(t, err)
	assert.Empty(t, library.Books)

	require.NoError(t, svc.AddBook(context.Background(), libraryID, bookID))

	library, err = svc.GetLibraryByID(context.Background(), libraryID)
	require.NoError(t, err)
	require.Len(t, library.Books, 1)
	assert.Equal(t, bookID, library.Books[0].ID)

	require.NoError(t, svc.RemoveBook(context.Background(), libraryID, bookID))

	library, err = svc.GetLibraryByID(context.Background(), libraryID)
	require.NoError(t, err)
	assert.Empty(t, library.Books)
}

func TestAddBookRequiresExistingBook(t *testing.T) {
	svc, libraryID, _ := newLibraryServiceFixture(t)

	err := svc.AddBook(context.Background(), libraryID, 999)
	require.ErrorIs(t, err, apperrors.ErrBookNotFound)
}

func TestAddBookRequiresExistingLibrary(t *testing.T) {
	svc, _, bookID := newLibraryServiceFixture(t)

	err := svc.AddBook(context.Background(), 999, bookID)
	require.ErrorIs(t, err, apperrors.ErrLibraryNotFound)
}
