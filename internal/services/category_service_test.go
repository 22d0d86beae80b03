package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/javajoker/storefront/internal/events"
	"github.com/javajoker/storefront/internal/models"
	"github.com/javajoker/storefront/internal/repository"
	"github.com/javajoker/storefront/internal/repository/mocks"
)

func TestCategoryServiceCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		repo := new(mocks.CategoryRepository)
		publisher := &recordingPublisher{}
		svc := NewCategoryService(repo, publisher)

		repo.On("GetByName", ctx, "Fashion").Return(nil, repository.ErrNotFound).Once()
		repo.On("Create", ctx, mock.MatchedBy(func(c *models.Category) bool {
			return c.Name == "Fashion" && c.Icon == "shirt"
		})).Return(nil).Once()

		category, err := svc.Create(ctx, CreateCategoryRequest{Name: " Fashion ", Icon: "shirt"})
		require.NoError(t, err)
		assert.Equal(t, "Fashion", category.Name)
		assert.Equal(t, []events.EventType{events.CategoryCreated}, publisher.types())
		repo.AssertExpectations(t)
	})

	t.Run("duplicate name found up front", func(t *testing.T) {
		repo := new(mocks.CategoryRepository)
		svc := NewCategoryService(repo, events.NewNoopPublisher())

		repo.On("GetByName", ctx, "Fashion").Return(&models.Category{Name: "Fashion"}, nil).Once()

		_, err := svc.Create(ctx, CreateCategoryRequest{Name: "Fashion"})
		assert.ErrorIs(t, err, ErrCategoryExists)
		assert.ErrorIs(t, err, ErrConflict)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("duplicate name raced at insert", func(t *testing.T) {
		repo := new(mocks.CategoryRepository)
		svc := NewCategoryService(repo, events.NewNoopPublisher())

		repo.On("GetByName", ctx, "Fashion").Return(nil, repository.ErrNotFound).Once()
		repo.On("Create", ctx, mock.Anything).Return(repository.ErrDuplicate).Once()

		_, err := svc.Create(ctx, CreateCategoryRequest{Name: "Fashion"})
		assert.ErrorIs(t, err, ErrCategoryExists)
	})

	t.Run("blank name", func(t *testing.T) {
		svc := NewCategoryService(new(mocks.CategoryRepository), events.NewNoopPublisher())

		_, err := svc.Create(ctx, CreateCategoryRequest{Name: "  "})
		assert.ErrorIs(t, err, ErrCategoryNameRequired)
	})
}

func TestCategoryServiceDelete(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		repoErr error
		want    error
	}{
		{"unreferenced", nil, nil},
		{"referenced", repository.ErrReferenced, ErrCategoryInUse},
		{"missing", repository.ErrNotFound, ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(mocks.CategoryRepository)
			publisher := &recordingPublisher{}
			svc := NewCategoryService(repo, publisher)

			repo.On("DeleteIfUnreferenced", ctx, "c-1").Return(tt.repoErr).Once()

			err := svc.Delete(ctx, "c-1")
			if tt.want == nil {
				require.NoError(t, err)
				assert.Equal(t, []events.EventType{events.CategoryDeleted}, publisher.types())
				return
			}
			assert.ErrorIs(t, err, tt.want)
			assert.Empty(t, publisher.types())
		})
	}

	t.Run("store failure", func(t *testing.T) {
		repo := new(mocks.CategoryRepository)
		svc := NewCategoryService(repo, events.NewNoopPublisher())
		dbErr := errors.New("timeout")
		repo.On("DeleteIfUnreferenced", ctx, "c-1").Return(dbErr).Once()

		assert.ErrorIs(t, svc.Delete(ctx, "c-1"), dbErr)
	})
}

func TestCategoryServiceListNeverNil(t *testing.T) {
	repo := new(mocks.CategoryRepository)
	svc := NewCategoryService(repo, events.NewNoopPublisher())
	repo.On("List", mock.Anything).Return(nil, nil).Once()

	categories, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, categories)
}
