package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"poetry-share-backend/internal/models"
	"poetry-share-backend/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func capturePoem(store *MockPoemStore, created **models.Poem) {
	store.On("Create", mock.Anything, mock.AnythingOfType("*models.Poem")).
		Run(func(args mock.Arguments) {
			*created = args.Get(1).(*models.Poem)
		}).
		Return(nil)
}

func TestCreatePoem_Anonymous(t *testing.T) {
	poemStore := new(MockPoemStore)
	userStore := new(MockUserStore)
	svc := NewPoemService(poemStore, userStore)

	var created *models.Poem
	capturePoem(poemStore, &created)

	poem, err := svc.CreatePoem(context.Background(), "", CreatePoemRequest{
		Title:    "Ode",
		Content:  "line one\nline two",
		IsPublic: true,
	})

	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, "Anonymous", poem.AuthorName)
	assert.Equal(t, "Anonymous", poem.Username)
	assert.Nil(t, poem.AuthorID)
	assert.True(t, poem.IsPublic)
	assert.NotEmpty(t, poem.ID)
	userStore.AssertNotCalled(t, "GetUserByID")
}

func TestCreatePoem_AnonymousWithUsername(t *testing.T) {
	poemStore := new(MockPoemStore)
	userStore := new(MockUserStore)
	svc := NewPoemService(poemStore, userStore)

	var created *models.Poem
	capturePoem(poemStore, &created)

	poem, err := svc.CreatePoem(context.Background(), "", CreatePoemRequest{
		Title:    "Ode",
		Content:  "text",
		Username: "wandering_bard",
	})

	require.NoError(t, err)
	assert.Equal(t, "Anonymous", poem.AuthorName)
	assert.Equal(t, "wandering_bard", poem.Username)
}

func TestCreatePoem_AuthenticatedWithName(t *testing.T) {
	poemStore := new(MockPoemStore)
	userStore := new(MockUserStore)
	svc := NewPoemService(poemStore, userStore)

	var created *models.Poem
	capturePoem(poemStore, &created)
	userStore.On("GetUserByID", mock.Anything, "user-1").Return(&models.User{
		ID:    "user-1",
		Name:  strPtr("Alice"),
		Email: strPtr("alice@example.com"),
	}, nil)

	poem, err := svc.CreatePoem(context.Background(), "user-1", CreatePoemRequest{
		Title:   "Ode",
		Content: "text",
	})

	require.NoError(t, err)
	assert.Equal(t, "Alice", poem.AuthorName)
	assert.Equal(t, "Alice", poem.Username)
	require.NotNil(t, poem.AuthorID)
	assert.Equal(t, "user-1", *poem.AuthorID)
}

func TestCreatePoem_AuthenticatedEmailOnly(t *testing.T) {
	poemStore := new(MockPoemStore)
	userStore := new(MockUserStore)
	svc := NewPoemService(poemStore, userStore)

	var created *models.Poem
	capturePoem(poemStore, &created)
	userStore.On("GetUserByID", mock.Anything, "user-2").Return(&models.User{
		ID:    "user-2",
		Email: strPtr("bob@example.com"),
	}, nil)

	poem, err := svc.CreatePoem(context.Background(), "user-2", CreatePoemRequest{
		Title:   "Ode",
		Content: "text",
	})

	require.NoError(t, err)
	assert.Equal(t, "bob@example.com", poem.AuthorName)
	assert.Equal(t, "bob", poem.Username)
}

func TestCreatePoem_ExplicitUsernameWins(t *testing.T) {
	poemStore := new(MockPoemStore)
	userStore := new(MockUserStore)
	svc := NewPoemService(poemStore, userStore)

	var created *models.Poem
	capturePoem(poemStore, &created)
	userStore.On("GetUserByID", mock.Anything, "user-1").Return(&models.User{
		ID:   "user-1",
		Name: strPtr("Alice"),
	}, nil)

	poem, err := svc.CreatePoem(context.Background(), "user-1", CreatePoemRequest{
		Title:    "Ode",
		Content:  "text",
		Username: "nightowl",
	})

	require.NoError(t, err)
	assert.Equal(t, "Alice", poem.AuthorName)
	assert.Equal(t, "nightowl", poem.Username)
}

func TestCreatePoem_MissingUserRow(t *testing.T) {
	poemStore := new(MockPoemStore)
	userStore := new(MockUserStore)
	svc := NewPoemService(poemStore, userStore)

	var created *models.Poem
	capturePoem(poemStore, &created)
	userStore.On("GetUserByID", mock.Anything, "ghost").
		Return(nil, fmt.Errorf("user ghost: %w", repository.ErrNotFound))

	poem, err := svc.CreatePoem(context.Background(), "ghost", CreatePoemRequest{
		Title:   "Ode",
		Content: "text",
	})

	// Identity is still recorded; names fall back to defaults
	require.NoError(t, err)
	assert.Equal(t, "Anonymous", poem.AuthorName)
	assert.Equal(t, "Anonymous", poem.Username)
	require.NotNil(t, poem.AuthorID)
	assert.Equal(t, "ghost", *poem.AuthorID)
}

func TestCreatePoem_StoreError(t *testing.T) {
	poemStore := new(MockPoemStore)
	userStore := new(MockUserStore)
	svc := NewPoemService(poemStore, userStore)

	poemStore.On("Create", mock.Anything, mock.Anything).Return(errors.New("db down"))

	_, err := svc.CreatePoem(context.Background(), "", CreatePoemRequest{
		Title:   "Ode",
		Content: "text",
	})

	require.Error(t, err)
}

func TestListPublicPoems(t *testing.T) {
	poemStore := new(MockPoemStore)
	userStore := new(MockUserStore)
	svc := NewPoemService(poemStore, userStore)

	now := time.Now()
	poems := []*models.Poem{
		{ID: "p2", IsPublic: true, CreatedAt: now},
		{ID: "p1", IsPublic: true, CreatedAt: now.Add(-time.Hour)},
	}
	poemStore.On("ListPublic", mock.Anything).Return(poems, nil)

	got, err := svc.ListPublicPoems(context.Background())

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "p2", got[0].ID)
	assert.Equal(t, "p1", got[1].ID)
}

func TestListPublicPoems_Error(t *testing.T) {
	poemStore := new(MockPoemStore)
	userStore := new(MockUserStore)
	svc := NewPoemService(poemStore, userStore)

	poemStore.On("ListPublic", mock.Anything).Return(nil, errors.New("db down"))

	_, err := svc.ListPublicPoems(context.Background())
	require.Error(t, err)
}
