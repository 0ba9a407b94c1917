package services_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"stockroom/internal/models"
	"stockroom/internal/repositories"
	"stockroom/internal/services"
	pkgerrors "stockroom/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// MockUserRepository is a mock implementation of repositories.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetAll(ctx context.Context) ([]models.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, user *models.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func newMemoryUserService() *services.UserService {
	return services.NewUserService(repositories.NewMemoryUserRepository(), nil, nil)
}

func amy() models.UserInput {
	return models.UserInput{Name: "Amy Lee", Email: "amy@x.com"}
}

func TestUserService_CreateThenGet(t *testing.T) {
	ctx := context.Background()
	service := newMemoryUserService()

	created, err := service.Create(ctx, amy())
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "amy@x.com", created.Email)
	assert.Nil(t, created.Phone)

	got, err := service.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)
}

func TestUserService_CreateDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	service := newMemoryUserService()

	original, err := service.Create(ctx, amy())
	require.NoError(t, err)

	_, err = service.Create(ctx, models.UserInput{Name: "Another Amy", Email: "amy@x.com", Phone: ptr("123")})
	require.Error(t, err)
	assert.True(t, pkgerrors.Is(err, pkgerrors.CodeConflict))
	assert.Equal(t, "email amy@x.com already exists", pkgerrors.As(err).Public())

	got, err := service.Get(ctx, original.ID)
	require.NoError(t, err)
	assert.Equal(t, original, got)
}

func TestUserService_CreateValidation(t *testing.T) {
	service := newMemoryUserService()
	cases := map[string]models.UserInput{
		"short name":    {Name: "A", Email: "a@x.com"},
		"long name":     {Name: strings.Repeat("n", 51), Email: "a@x.com"},
		"missing email": {Name: "Amy"},
		"bad email":     {Name: "Amy", Email: "not-an-email"},
		"long phone":    {Name: "Amy", Email: "a@x.com", Phone: ptr(strings.Repeat("1", 21))},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := service.Create(context.Background(), in)
			assert.True(t, pkgerrors.Is(err, pkgerrors.CodeInvalidInput), "got %v", err)
		})
	}
}

func TestUserService_ValidationMessageUsesJSONNames(t *testing.T) {
	service := newMemoryUserService()
	_, err := service.Create(context.Background(), models.UserInput{Name: "A", Email: "a@x.com"})
	require.Error(t, err)
	assert.Contains(t, pkgerrors.As(err).Public(), "name must be at least 2 characters")
}

func TestUserService_GetMalformedIDIsNotFound(t *testing.T) {
	service := newMemoryUserService()
	_, err := service.Get(context.Background(), "%%%")
	assert.True(t, pkgerrors.Is(err, pkgerrors.CodeNotFound))
}

func TestUserService_UpdateEmptyReturnsCurrent(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockUserRepository)
	service := services.NewUserService(mockRepo, nil, nil)

	stored := &models.User{ID: "u-1", Name: "Amy Lee", Email: "amy@x.com"}
	mockRepo.On("GetByID", mock.Anything, "u-1").Return(stored, nil).Once()

	got, err := service.Update(ctx, "u-1", models.UserUpdate{})

	require.NoError(t, err)
	assert.Equal(t, stored, got)
	mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	mockRepo.AssertExpectations(t)
}

func TestUserService_UpdatePartial(t *testing.T) {
	ctx := context.Background()
	service := newMemoryUserService()
	created, err := service.Create(ctx, models.UserInput{Name: "Amy Lee", Email: "amy@x.com", Phone: ptr("111")})
	require.NoError(t, err)

	updated, err := service.Update(ctx, created.ID, models.UserUpdate{Name: ptr("Amy Chen")})
	require.NoError(t, err)
	assert.Equal(t, "Amy Chen", updated.Name)
	assert.Equal(t, "amy@x.com", updated.Email)
	require.NotNil(t, updated.Phone)
	assert.Equal(t, "111", *updated.Phone)

	got, err := service.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, updated, got)
}

func TestUserService_UpdateConflict(t *testing.T) {
	ctx := context.Background()
	service := newMemoryUserService()
	_, err := service.Create(ctx, amy())
	require.NoError(t, err)
	bob, err := service.Create(ctx, models.UserInput{Name: "Bob", Email: "bob@x.com"})
	require.NoError(t, err)

	_, err = service.Update(ctx, bob.ID, models.UserUpdate{Email: ptr("amy@x.com")})
	require.Error(t, err)
	assert.True(t, pkgerrors.Is(err, pkgerrors.CodeConflict))
	assert.Contains(t, pkgerrors.As(err).Public(), "amy@x.com")

	got, err := service.Get(ctx, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, "bob@x.com", got.Email)
}

func TestUserService_UpdateKeepsOwnEmail(t *testing.T) {
	ctx := context.Background()
	service := newMemoryUserService()
	created, err := service.Create(ctx, amy())
	require.NoError(t, err)

	updated, err := service.Update(ctx, created.ID, models.UserUpdate{Email: ptr("amy@x.com"), Phone: ptr("222")})
	require.NoError(t, err)
	assert.Equal(t, "222", *updated.Phone)
}

func TestUserService_UpdateMissingAndInvalid(t *testing.T) {
	ctx := context.Background()
	service := newMemoryUserService()

	_, err := service.Update(ctx, "missing", models.UserUpdate{Name: ptr("Someone")})
	assert.True(t, pkgerrors.Is(err, pkgerrors.CodeNotFound))

	created, err := service.Create(ctx, amy())
	require.NoError(t, err)
	_, err = service.Update(ctx, created.ID, models.UserUpdate{Email: ptr("nope")})
	assert.True(t, pkgerrors.Is(err, pkgerrors.CodeInvalidInput))
}

func TestUserService_DeleteThenGet(t *testing.T) {
	ctx := context.Background()
	service := newMemoryUserService()
	created, err := service.Create(ctx, amy())
	require.NoError(t, err)

	deleted, err := service.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	_, err = service.Get(ctx, created.ID)
	assert.True(t, pkgerrors.Is(err, pkgerrors.CodeNotFound))

	deleted, err = service.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestUserService_DeleteStoreFailure(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := services.NewUserService(mockRepo, nil, nil)
	mockRepo.On("Delete", mock.Anything, "u-1").Return(errors.New("disk on fire")).Once()

	deleted, err := service.Delete(context.Background(), "u-1")
	assert.False(t, deleted)
	assert.True(t, pkgerrors.Is(err, pkgerrors.CodeInternal))
}

func TestUserService_GetByEmail(t *testing.T) {
	ctx := context.Background()
	service := newMemoryUserService()
	created, err := service.Create(ctx, amy())
	require.NoError(t, err)

	got, err := service.GetByEmail(ctx, "amy@x.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	_, err = service.GetByEmail(ctx, "AMY@x.com")
	assert.True(t, pkgerrors.Is(err, pkgerrors.CodeNotFound))
}

func TestUserService_ListIsNeverNil(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := services.NewUserService(mockRepo, nil, nil)
	mockRepo.On("GetAll", mock.Anything).Return(nil, nil).Once()

	users, err := service.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, users)
	assert.Empty(t, users)
}

func TestUserService_PublishesEvents(t *testing.T) {
	ctx := context.Background()
	events := new(MockPublisher)
	service := services.NewUserService(repositories.NewMemoryUserRepository(), events, nil)

	events.On("Publish", mock.Anything, services.EventUserCreated, mock.Anything).Return(nil).Once()
	events.On("Publish", mock.Anything, services.EventUserDeleted, mock.Anything).Return(nil).Once()

	created, err := service.Create(ctx, amy())
	require.NoError(t, err)
	_, err = service.Delete(ctx, created.ID)
	require.NoError(t, err)

	events.AssertExpectations(t)
}

func TestUserService_UnreachableStoreHidesConnectionDetails(t *testing.T) {
	dsn := "host=127.0.0.1 port=1 user=stockroom password=secret dbname=stockroom sslmode=disable connect_timeout=2"
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		DisableAutomaticPing: true,
		Logger:               gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	service := services.NewUserService(repositories.NewGORMUserRepository(db), nil, nil)

	_, err = service.List(context.Background())
	require.Error(t, err)
	assert.True(t, pkgerrors.Is(err, pkgerrors.CodeUnavailable))

	public := pkgerrors.As(err).Public()
	assert.Equal(t, "internal server error", public)
	assert.NotContains(t, public, "127.0.0.1")
	assert.NotContains(t, public, "stockroom")
}
