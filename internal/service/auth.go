package service

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/fintrack/fintrack-go/internal/crypto"
	"github.com/fintrack/fintrack-go/internal/model"
	"github.com/fintrack/fintrack-go/internal/repository"
)

// dummyHash is verified against when a login names an unknown email so both
// failure paths cost about the same.
var dummyHash = sync.OnceValue(func() string {
	hash, err := crypto.HashPassword("fintrack-timing-equaliser")
	if err != nil {
		return ""
	}
	return hash
})

// AuthService handles authentication business logic.
type AuthService struct {
	repo      *repository.UserRepository
	jwtSecret string
	jwtExpiry time.Duration
	now       func() time.Time
}

// NewAuthService creates a new AuthService.
func NewAuthService(repo *repository.UserRepository, secret string, expiry time.Duration) *AuthService {
	return &AuthService{
		repo:      repo,
		jwtSecret: secret,
		jwtExpiry: expiry,
		now:       time.Now,
	}
}

// Register creates a new user account.
func (s *AuthService) Register(ctx context.Context, req model.RegisterRequest) (model.UserResponse, error) {
	if err := validateRequest(req); err != nil {
		return model.UserResponse{}, err
	}

	// The unique index on email is the real guard; this check keeps the
	// common case off the error path.
	exists, err := s.repo.EmailExists(ctx, req.Email)
	if err != nil {
		return model.UserResponse{}, err
	}
	if exists {
		return model.UserResponse{}, ErrEmailTaken
	}

	hash, err := crypto.HashPassword(req.Password)
	if err != nil {
		return model.UserResponse{}, err
	}

	user := &model.User{
		Email:        req.Email,
		Name:         req.Name,
		PasswordHash: hash,
		CreatedAt:    storedTime(s.now()),
	}

	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return model.UserResponse{}, ErrEmailTaken
		}
		return model.UserResponse{}, err
	}

	slog.InfoContext(ctx, "user registered", "user_id", user.ID)
	return user.ToResponse(), nil
}

// Login authenticates a user and returns an access token. Unknown emails and
// wrong passwords fail identically.
func (s *AuthService) Login(ctx context.Context, req model.LoginRequest) (model.TokenResponse, error) {
	if err := validateRequest(req); err != nil {
		return model.TokenResponse{}, err
	}

	user, err := s.repo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			crypto.VerifyPassword(req.Password, dummyHash())
			return model.TokenResponse{}, ErrInvalidCredentials
		}
		return model.TokenResponse{}, err
	}

	if !crypto.VerifyPassword(req.Password, user.PasswordHash) {
		return model.TokenResponse{}, ErrInvalidCredentials
	}

	if crypto.NeedsRehash(user.PasswordHash) {
		s.rehash(ctx, user.ID, req.Password)
	}

	token, err := crypto.GenerateToken(user.ID, s.jwtSecret, s.jwtExpiry)
	if err != nil {
		return model.TokenResponse{}, err
	}

	return model.TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresIn:   int64(s.jwtExpiry / time.Second),
		User:        user.ToResponse(),
	}, nil
}

// rehash upgrades a legacy password digest. Failure only costs another
// upgrade attempt on the next login.
func (s *AuthService) rehash(ctx context.Context, userID, password string) {
	hash, err := crypto.HashPassword(password)
	if err == nil {
		err = s.repo.UpdatePasswordHash(ctx, userID, hash)
	}
	if err != nil {
		slog.WarnContext(ctx, "password rehash failed", "user_id", userID, "error", err)
		return
	}
	slog.InfoContext(ctx, "password hash upgraded", "user_id", userID)
}

// GetUser retrieves a user by ID and returns safe user data.
func (s *AuthService) GetUser(ctx context.Context, userID string) (model.UserResponse, error) {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return model.UserResponse{}, ErrUserNotFound
		}
		return model.UserResponse{}, err
	}

	return user.ToResponse(), nil
}

// UpdateProfile changes the name and/or email of userID.
func (s *AuthService) UpdateProfile(ctx context.Context, userID string, req model.UpdateProfileRequest) (model.UserResponse, error) {
	if err := validateRequest(req); err != nil {
		return model.UserResponse{}, err
	}

	set := repository.Doc{}
	if req.Name != nil {
		set[repository.ColName] = *req.Name
	}
	if req.Email != nil {
		owner, err := s.repo.GetByEmail(ctx, *req.Email)
		switch {
		case err == nil && owner.ID != userID:
			return model.UserResponse{}, ErrEmailTaken
		case err != nil && !errors.Is(err, repository.ErrUserNotFound):
			return model.UserResponse{}, err
		}
		set[repository.ColEmail] = *req.Email
	}
	if len(set) == 0 {
		return model.UserResponse{}, ErrNoFields
	}

	user, err := s.repo.Update(ctx, userID, set)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateEmail):
			return model.UserResponse{}, ErrEmailTaken
		case errors.Is(err, repository.ErrUserNotFound):
			return model.UserResponse{}, ErrUserNotFound
		}
		return model.UserResponse{}, err
	}

	return user.ToResponse(), nil
}

// ChangePassword replaces userID's password after checking the current one.
// Tokens issued before the change stay valid until they expire.
func (s *AuthService) ChangePassword(ctx context.Context, userID string, req model.ChangePasswordRequest) error {
	if err := validateRequest(req); err != nil {
		return err
	}

	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	if !crypto.VerifyPassword(req.CurrentPassword, user.PasswordHash) {
		return ErrIncorrectPassword
	}

	hash, err := crypto.HashPassword(req.NewPassword)
	if err != nil {
		return err
	}
	if err := s.repo.UpdatePasswordHash(ctx, userID, hash); err != nil {
		return err
	}

	slog.InfoContext(ctx, "password changed", "user_id", userID)
	return nil
}
