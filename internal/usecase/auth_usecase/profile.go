package auth

import (
	"context"
	"time"

	"timepiece/internal/domain/model"
	"timepiece/internal/media"
	"timepiece/internal/repository"
)

// passwordは含めない
type ProfileOutput struct {
	ID         int64      `json:"id"`
	Email      string     `json:"email"`
	Username   string     `json:"username"`
	FirstName  string     `json:"first_name"`
	MiddleName *string    `json:"middle_name"`
	LastName   string     `json:"last_name"`
	Contact    string     `json:"contact"`
	Address    string     `json:"address"`
	Gender     string     `json:"gender"`
	Image      *string    `json:"image"`
	IsActive   bool       `json:"is_active"`
	IsStaff    bool       `json:"is_staff"`
	LastLogin  *time.Time `json:"last_login"`
	DateJoined time.Time  `json:"date_joined"`
}

type ProfileUsecase struct {
	userRepo repository.UserRepository
	urls     media.URLBuilder
}

func NewProfileUsecase(userRepo repository.UserRepository, urls media.URLBuilder) *ProfileUsecase {
	return &ProfileUsecase{userRepo: userRepo, urls: urls}
}

func (u *ProfileUsecase) Execute(ctx context.Context, userID int64, origin string) (ProfileOutput, error) {
	if userID <= 0 {
		return ProfileOutput{}, ErrUnauthorized
	}

	user, err := u.userRepo.FindByID(ctx, userID)
	if err != nil {
		return ProfileOutput{}, err
	}
	if user == nil || !user.IsActive {
		return ProfileOutput{}, ErrUnauthorized
	}

	return toProfileOutput(*user, u.urls.Resolve(origin, user.Image)), nil
}

func toProfileOutput(u model.User, image *string) ProfileOutput {
	return ProfileOutput{
		ID:         u.ID,
		Email:      u.Email,
		Username:   u.Username,
		FirstName:  u.FirstName,
		MiddleName: u.MiddleName,
		LastName:   u.LastName,
		Contact:    u.Contact,
		Address:    u.Address,
		Gender:     string(u.Gender),
		Image:      image,
		IsActive:   u.IsActive,
		IsStaff:    u.IsStaff,
		LastLogin:  u.LastLoginAt,
		DateJoined: u.CreatedAt,
	}
}
