package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/fintrack/fintrack-go/internal/model"
)

var (
	ErrUserNotFound   = errors.New("user not found")
	ErrDuplicateEmail = errors.New("email already exists")
)

// Columns of the users table.
const (
	UsersTable      = "users"
	ColEmail        = "email"
	ColName         = "name"
	ColPasswordHash = "password_hash"
	ColCreatedAt    = "created_at"
)

var userColumns = []string{ColID, ColEmail, ColName, ColPasswordHash, ColCreatedAt}

func scanUser(s rowScanner) (*model.User, error) {
	user := &model.User{}
	if err := s.Scan(&user.ID, &user.Email, &user.Name, &user.PasswordHash, &user.CreatedAt); err != nil {
		return nil, err
	}
	user.CreatedAt = user.CreatedAt.UTC()
	return user, nil
}

// UserRepository handles user persistence operations.
type UserRepository struct {
	users *Collection[model.User]
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{users: newCollection(db, UsersTable, userColumns, scanUser)}
}

// Create inserts a new user and sets the generated ID on the user struct.
func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	id, err := r.users.Insert(ctx, Doc{
		ColEmail:        user.Email,
		ColName:         user.Name,
		ColPasswordHash: user.PasswordHash,
		ColCreatedAt:    user.CreatedAt,
	})
	if err != nil {
		if errors.Is(err, ErrDuplicateKey) {
			return ErrDuplicateEmail
		}
		return err
	}

	user.ID = id
	return nil
}

// GetByEmail retrieves a user by their email address.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.findOne(ctx, Filter{ColEmail: email})
}

// GetByID retrieves a user by their ID.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
	return r.findOne(ctx, Filter{ColID: id})
}

// EmailExists reports whether any user is registered with email.
func (r *UserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	n, err := r.users.Count(ctx, Filter{ColEmail: email})
	return n > 0, err
}

// Update applies a partial update to the user with id.
func (r *UserRepository) Update(ctx context.Context, id string, set Doc) (*model.User, error) {
	matched, err := r.users.UpdateOne(ctx, Filter{ColID: id}, set)
	if err != nil {
		if errors.Is(err, ErrDuplicateKey) {
			return nil, ErrDuplicateEmail
		}
		return nil, err
	}
	if matched == 0 {
		return nil, ErrUserNotFound
	}
	return r.GetByID(ctx, id)
}

// UpdatePasswordHash replaces the stored password hash for the user with id.
func (r *UserRepository) UpdatePasswordHash(ctx context.Context, id, hash string) error {
	_, err := r.Update(ctx, id, Doc{ColPasswordHash: hash})
	return err
}

func (r *UserRepository) findOne(ctx context.Context, f Filter) (*model.User, error) {
	user, err := r.users.FindOne(ctx, f)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}
