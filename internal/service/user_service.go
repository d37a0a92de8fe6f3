package service

import (
	"context"
	"errors"
	"strings"

	"inkwell/internal/models"
	"inkwell/internal/repository"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserService struct {
	userRepo repository.UserRepository
}

type SignupInput struct {
	Email    string
	Nickname string
	Password string
}

type UpdateProfileInput struct {
	UserID   uint
	Nickname *string
	Password *string
}

func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

const (
	minPasswordLen = 8
	maxNicknameLen = 50
)

func (s *UserService) Signup(ctx context.Context, in SignupInput) (*models.User, error) {
	email := strings.TrimSpace(in.Email)
	nickname := strings.TrimSpace(in.Nickname)

	if email == "" || !strings.Contains(email, "@") {
		return nil, models.NewValidationError("A valid email is required")
	}
	if nickname == "" {
		return nil, models.NewValidationError("Nickname is required")
	}
	if len(nickname) > maxNicknameLen {
		return nil, models.NewValidationError("Nickname too long (max 50 characters)")
	}
	if len(in.Password) < minPasswordLen {
		return nil, models.NewValidationError("Password must be at least 8 characters")
	}

	if _, err := s.userRepo.GetByEmail(ctx, email); err == nil {
		return nil, models.NewConflictError("Email already in use")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.NewStorageError(err)
	}
	if _, err := s.userRepo.GetByNickname(ctx, nickname); err == nil {
		return nil, models.NewConflictError("Nickname already in use")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.NewStorageError(err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	user := &models.User{
		Email:        email,
		Nickname:     nickname,
		PasswordHash: string(hash),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		// A concurrent signup can slip past the pre-checks; surface the
		// database uniqueness violation as the same conflict.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, models.NewConflictError("Email or nickname already in use")
		}
		return nil, models.NewStorageError(err)
	}
	return user, nil
}

// Authenticate verifies credentials and returns the account. It reports the
// same error for an unknown email and a wrong password.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewUnauthorizedError("Invalid email or password")
		}
		return nil, models.NewStorageError(err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, models.NewUnauthorizedError("Invalid email or password")
	}
	return user, nil
}

func (s *UserService) GetProfile(ctx context.Context, userID uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, repoError(err, "User", userID)
	}
	return user, nil
}

func (s *UserService) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, repoError(err, "User", in.UserID)
	}

	if in.Nickname != nil {
		nickname := strings.TrimSpace(*in.Nickname)
		if nickname == "" {
			return nil, models.NewValidationError("Nickname is required")
		}
		if len(nickname) > maxNicknameLen {
			return nil, models.NewValidationError("Nickname too long (max 50 characters)")
		}
		if nickname != user.Nickname {
			if _, err := s.userRepo.GetByNickname(ctx, nickname); err == nil {
				return nil, models.NewConflictError("Nickname already in use")
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, models.NewStorageError(err)
			}
			user.Nickname = nickname
		}
	}

	if in.Password != nil {
		if len(*in.Password) < minPasswordLen {
			return nil, models.NewValidationError("Password must be at least 8 characters")
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, models.NewInternalError(err)
		}
		user.PasswordHash = string(hash)
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, models.NewStorageError(err)
	}
	return user, nil
}

// IsAdmin reports whether the given user holds the admin flag. It is injected
// into other services and the HTTP layer as the authorization check.
func (s *UserService) IsAdmin(ctx context.Context, userID uint) (bool, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, models.NewStorageError(err)
	}
	return user.IsAdmin, nil
}
