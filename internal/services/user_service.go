package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/yukikurage/worklog-api/internal/constants"
	"github.com/yukikurage/worklog-api/internal/models"
	"github.com/yukikurage/worklog-api/internal/policy"
	"github.com/yukikurage/worklog-api/internal/repository"
	"github.com/yukikurage/worklog-api/internal/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserService handles user administration
type UserService struct {
	userRepo repository.UserRepository
	authz    Authorizer
}

// NewUserService creates a new UserService
func NewUserService(userRepo repository.UserRepository, authz Authorizer) *UserService {
	return &UserService{
		userRepo: userRepo,
		authz:    authz,
	}
}

// ListUsers returns every user. Only managers and admins may list users.
func (s *UserService) ListUsers(ctx context.Context, caller policy.Caller, pagination utils.PaginationParams) ([]models.User, int64, error) {
	if err := authorize(ctx, s.authz, policy.Request{
		Caller:    caller,
		Operation: policy.OpList,
		Resource:  policy.Resource{Kind: policy.KindUser},
	}); err != nil {
		return nil, 0, err
	}

	users, total, err := s.userRepo.List(ctx, pagination)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}
	return users, total, nil
}

// GetUser returns a user the caller may read
func (s *UserService) GetUser(ctx context.Context, caller policy.Caller, id models.UserID) (*models.User, error) {
	return s.load(ctx, caller, id, policy.OpRead)
}

// UpdateUser merges the patch into a user record. Changing the role needs
// its own permission on top of update.
func (s *UserService) UpdateUser(ctx context.Context, caller policy.Caller, id models.UserID, patch Patch) (*models.User, error) {
	user, err := s.load(ctx, caller, id, policy.OpUpdate)
	if err != nil {
		return nil, err
	}

	if patch.Has("role") {
		if err := authorize(ctx, s.authz, userRequest(caller, user.ID, policy.OpChangeRole)); err != nil {
			return nil, err
		}
	}

	updates, err := patch.columns(userPatchFields)
	if err != nil {
		return nil, err
	}

	if email, ok := updates["email"].(string); ok {
		email = strings.ToLower(email)
		updates["email"] = email
		if email != user.Email {
			if err := ensureEmailAvailable(ctx, s.userRepo, email); err != nil {
				return nil, err
			}
		}
	}

	if patch.Has("password") {
		password, ok := patch.String("password")
		if !ok {
			return nil, &FieldError{Field: "password", Reason: "must be a string"}
		}
		hash, err := hashPassword(password)
		if err != nil {
			return nil, err
		}
		updates["password_hash"] = hash
	}

	if len(updates) == 0 {
		return user, nil
	}

	if err := s.userRepo.Update(ctx, id, updates); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return s.find(ctx, id)
}

// DeleteUser removes a user. Nobody may delete their own account.
func (s *UserService) DeleteUser(ctx context.Context, caller policy.Caller, id models.UserID) error {
	if _, err := s.load(ctx, caller, id, policy.OpDelete); err != nil {
		return err
	}

	if err := s.userRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	return nil
}

func (s *UserService) find(ctx context.Context, id models.UserID) (*models.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

func (s *UserService) load(ctx context.Context, caller policy.Caller, id models.UserID, op policy.Operation) (*models.User, error) {
	user, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authorize(ctx, s.authz, userRequest(caller, user.ID, op)); err != nil {
		return nil, err
	}
	return user, nil
}

func userRequest(caller policy.Caller, id models.UserID, op policy.Operation) policy.Request {
	return policy.Request{
		Caller:    caller,
		Operation: op,
		Resource:  policy.Resource{Kind: policy.KindUser, ID: uint64(id)},
	}
}

func hashPassword(password string) (string, error) {
	if len(password) < constants.MinPasswordLength {
		return "", ErrPasswordTooShort
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", ErrFailedToHashPassword
	}
	return string(hash), nil
}

func ensureEmailAvailable(ctx context.Context, userRepo repository.UserRepository, email string) error {
	inUse, err := userRepo.EmailInUse(ctx, email)
	if err != nil {
		return fmt.Errorf("failed to check email: %w", err)
	}
	if inUse {
		return ErrEmailTaken
	}
	return nil
}
