package usecase

import (
	"context"
	"time"

	"ecotrack/internal/domain/entity"
	"ecotrack/internal/domain/repository"
	"ecotrack/pkg/errors"
)

type UserUseCase struct {
	userRepo     repository.UserRepository
	firebaseAuth FirebaseAuthClient
}

func NewUserUseCase(userRepo repository.UserRepository, firebaseAuth FirebaseAuthClient) *UserUseCase {
	return &UserUseCase{
		userRepo:     userRepo,
		firebaseAuth: firebaseAuth,
	}
}

type UpdateProfileInput struct {
	DisplayName string
	SchoolClass string
	Bio         string
	AvatarURL   string
}

func (uc *UserUseCase) GetUserProfile(ctx context.Context, userID string) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, errors.NotFound("User", err)
	}
	return user, nil
}

func (uc *UserUseCase) UpdateProfile(ctx context.Context, userID string, input UpdateProfileInput) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, errors.NotFound("User", err)
	}

	if input.DisplayName != "" {
		user.DisplayName = input.DisplayName
	}
	if input.SchoolClass != "" {
		user.SchoolClass = input.SchoolClass
	}
	if input.Bio != "" {
		user.Bio = input.Bio
	}
	if input.AvatarURL != "" {
		user.AvatarURL = input.AvatarURL
	}

	user.UpdatedAt = time.Now()

	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, errors.Internal("Failed to update user profile", err)
	}

	return user, nil
}

func (uc *UserUseCase) UpdatePassword(ctx context.Context, userID, newPassword string) error {
	if _, err := uc.userRepo.GetByID(ctx, userID); err != nil {
		return errors.NotFound("User", err)
	}

	if err := uc.firebaseAuth.UpdateUserPassword(ctx, userID, newPassword); err != nil {
		return errors.Internal("Failed to update password", err)
	}

	return nil
}

// ListBySchoolClass returns the roster for one class.
func (uc *UserUseCase) ListBySchoolClass(ctx context.Context, schoolClass string, page, limit int) ([]*entity.User, int64, error) {
	if schoolClass == "" {
		return nil, 0, errors.BadRequest("School class is required", nil)
	}

	offset := (page - 1) * limit
	users, total, err := uc.userRepo.FindByField(ctx, "schoolClass", schoolClass, limit, offset)
	if err != nil {
		return nil, 0, errors.Internal("Failed to list users", err)
	}

	return users, total, nil
}

// SetUserRole changes a user's role. Admin only; enforced at the route.
func (uc *UserUseCase) SetUserRole(ctx context.Context, userID, role string) (*entity.User, error) {
	switch role {
	case entity.RoleStudent, entity.RoleTeacher, entity.RoleAdmin:
	default:
		return nil, errors.BadRequest("Unknown role", nil)
	}

	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, errors.NotFound("User", err)
	}

	user.Role = role
	user.UpdatedAt = time.Now()

	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, errors.Internal("Failed to update user role", err)
	}

	return user, nil
}
