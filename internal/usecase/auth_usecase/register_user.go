package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"timepiece/internal/domain/model"
	"timepiece/internal/repository"
)

// 会員登録の入力
type RegisterUserInput struct {
	FirstName       string
	MiddleName      *string
	LastName        string
	Username        string
	Email           string
	Contact         string
	Address         string
	Gender          string
	Password        string
	ConfirmPassword string
}

// 会員登録の出力
type RegisterUserOutput struct {
	User model.User
}

// 平文パスワードからハッシュへ。
type PasswordHasher interface {
	Hash(plain string) (string, error)
}

// 入力形式はハンドラ側で検証済み。ここではパスワード強度を見る。DBを見る重複チェックはusecase側
type SignupValidator interface {
	ValidateSignup(in RegisterUserInput) map[string]string
}

// 現在の時間
type Clock interface {
	Now() time.Time
}

// RegisterUserUsecaseは会員登録の処理。
type RegisterUserUsecase struct {
	userRepo  repository.UserRepository
	hasher    PasswordHasher
	validator SignupValidator
	clock     Clock
}

// DI
func NewRegisterUserUsecase(
	userRepo repository.UserRepository,
	hasher PasswordHasher,
	validator SignupValidator,
	clock Clock,
) *RegisterUserUsecase {
	return &RegisterUserUsecase{
		userRepo:  userRepo,
		hasher:    hasher,
		validator: validator,
		clock:     clock,
	}
}

// 会員登録実行。ログインはさせない
func (u *RegisterUserUsecase) Execute(ctx context.Context, in RegisterUserInput) (RegisterUserOutput, error) {
	var out RegisterUserOutput

	in = trimInput(in)
	in.Email = NormalizeEmail(in.Email)

	if fields := u.validator.ValidateSignup(in); len(fields) > 0 {
		return out, &ValidationError{Fields: fields}
	}

	// email重複チェック
	existing, err := u.userRepo.FindByEmail(ctx, in.Email)
	if err != nil {
		return out, err
	}
	if existing != nil {
		return out, ErrEmailAlreadyExists
	}

	existing, err = u.userRepo.FindByUsername(ctx, in.Username)
	if err != nil {
		return out, err
	}
	if existing != nil {
		return out, ErrUsernameAlreadyExists
	}

	// パスワードをハッシュ化
	hashed, err := u.hasher.Hash(in.Password)
	if err != nil {
		return out, err
	}

	now := u.clock.Now()
	user := &model.User{
		Email:        in.Email,
		Username:     in.Username,
		FirstName:    in.FirstName,
		MiddleName:   in.MiddleName,
		LastName:     in.LastName,
		Contact:      in.Contact,
		Address:      in.Address,
		Gender:       model.Gender(in.Gender),
		PasswordHash: hashed, // ハッシュを保存（平文は保存しない）
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	// DBへ保存
	if err := u.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return out, ErrAccountAlreadyExists
		}
		return out, err
	}

	// 返すときは password を空にして漏洩防止
	safeUser := *user
	safeUser.PasswordHash = ""

	out.User = safeUser
	return out, nil
}

func trimInput(in RegisterUserInput) RegisterUserInput {
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)
	in.Contact = strings.TrimSpace(in.Contact)
	in.Address = strings.TrimSpace(in.Address)
	in.Gender = strings.TrimSpace(in.Gender)
	if in.MiddleName != nil {
		m := strings.TrimSpace(*in.MiddleName)
		if m == "" {
			in.MiddleName = nil
		} else {
			in.MiddleName = &m
		}
	}
	return in
}

// ドメイン部分だけ小文字（ローカル部はそのまま）
func NormalizeEmail(email string) string {
	email = strings.TrimSpace(email)
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return email
	}
	return email[:at] + "@" + strings.ToLower(email[at+1:])
}
