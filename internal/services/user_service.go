package services

import (
	"context"
	"errors"

	"stockroom/internal/models"
	"stockroom/internal/repositories"
	pkgerrors "stockroom/pkg/errors"
	"stockroom/pkg/logger"

	"github.com/go-playground/validator/v10"
)

const userNotFound = "user not found"

// UserService handles business logic related to users.
type UserService struct {
	repo     repositories.UserRepository
	validate *validator.Validate
	events   EventPublisher
	log      *logger.Logger
}

// NewUserService creates a new UserService. A nil publisher disables events
// and a nil logger discards output.
func NewUserService(repo repositories.UserRepository, events EventPublisher, logg *logger.Logger) *UserService {
	if events == nil {
		events = NoopPublisher()
	}
	if logg == nil {
		logg = logger.Nop()
	}
	return &UserService{
		repo:     repo,
		validate: newValidator(),
		events:   events,
		log:      logg,
	}
}

// Create validates in and stores a new user. The email must not be in use.
func (s *UserService) Create(ctx context.Context, in models.UserInput) (*models.User, error) {
	if err := s.validate.Struct(in); err != nil {
		return nil, validationError(err)
	}

	user := in.User()
	if err := s.repo.Create(ctx, &user); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, pkgerrors.Newf(pkgerrors.CodeConflict, "email %s already exists", in.Email)
		}
		return nil, storeError(err, userNotFound, "failed to create user")
	}

	publish(ctx, s.events, s.log, EventUserCreated, user)
	return &user, nil
}

// List returns every user in store order.
func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	users, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, storeError(err, userNotFound, "failed to list users")
	}
	if users == nil {
		users = []models.User{}
	}
	return users, nil
}

// Get returns the user with id. Malformed ids are reported as not found.
func (s *UserService) Get(ctx context.Context, id string) (*models.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(err, userNotFound, "failed to get user")
	}
	return user, nil
}

// GetByEmail returns the user whose email matches exactly.
func (s *UserService) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, storeError(err, userNotFound, "failed to get user by email")
	}
	return user, nil
}

// Update applies the fields present in upd. An empty update returns the
// stored record untouched.
func (s *UserService) Update(ctx context.Context, id string, upd models.UserUpdate) (*models.User, error) {
	if err := s.validate.Struct(upd); err != nil {
		return nil, validationError(err)
	}

	user, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if upd.IsEmpty() {
		return user, nil
	}

	upd.Apply(user)
	if err := s.validate.Struct(user); err != nil {
		return nil, validationError(err)
	}

	if err := s.repo.Update(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, pkgerrors.Newf(pkgerrors.CodeConflict, "email %s is already used by another user", user.Email)
		}
		return nil, storeError(err, userNotFound, "failed to update user")
	}

	publish(ctx, s.events, s.log, EventUserUpdated, user)
	return user, nil
}

// Delete removes the user with id and reports whether anything was removed.
// The error is reserved for store failures.
func (s *UserService) Delete(ctx context.Context, id string) (bool, error) {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return false, nil
		}
		return false, storeError(err, userNotFound, "failed to delete user")
	}

	publish(ctx, s.events, s.log, EventUserDeleted, map[string]string{"id": id})
	return true, nil
}
