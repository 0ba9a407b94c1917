package repositories

import (
	"context"
	"sync"

	"stockroom/internal/models"

	"github.com/google/uuid"
)

// MemoryUserRepository keeps users in an insertion-ordered list and enforces
// email uniqueness the way a unique index would.
type MemoryUserRepository struct {
	users []models.User
	mu    sync.RWMutex
}

// NewMemoryUserRepository creates a new instance of MemoryUserRepository.
func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{}
}

// Create appends a new user with a fresh ID.
func (r *MemoryUserRepository) Create(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.emailTaken(user.Email, "") {
		return ErrDuplicate
	}
	user.ID = uuid.NewString()
	r.users = append(r.users, cloneUser(*user))
	return nil
}

// GetByID returns a user by ID.
func (r *MemoryUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.ID == id {
			user := cloneUser(u)
			return &user, nil
		}
	}
	return nil, ErrNotFound
}

// GetByEmail returns the user whose email matches exactly.
func (r *MemoryUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.Email == email {
			user := cloneUser(u)
			return &user, nil
		}
	}
	return nil, ErrNotFound
}

// GetAll returns all users in insertion order.
func (r *MemoryUserRepository) GetAll(ctx context.Context) ([]models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	userList := make([]models.User, 0, len(r.users))
	for _, u := range r.users {
		userList = append(userList, cloneUser(u))
	}
	return userList, nil
}

// Update overwrites the stored user carrying the same ID.
func (r *MemoryUserRepository) Update(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.users {
		if r.users[i].ID != user.ID {
			continue
		}
		if r.emailTaken(user.Email, user.ID) {
			return ErrDuplicate
		}
		r.users[i] = cloneUser(*user)
		return nil
	}
	return ErrNotFound
}

// Delete removes a user by ID.
func (r *MemoryUserRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.users {
		if r.users[i].ID == id {
			r.users = append(r.users[:i], r.users[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (r *MemoryUserRepository) emailTaken(email, exceptID string) bool {
	for _, u := range r.users {
		if u.Email == email && u.ID != exceptID {
			return true
		}
	}
	return false
}

// cloneUser detaches the phone pointer so callers cannot mutate stored state.
func cloneUser(u models.User) models.User {
	if u.Phone != nil {
		phone := *u.Phone
		u.Phone = &phone
	}
	return u
}
