package validator

import (
	"strings"

	auth "timepiece/internal/usecase/auth_usecase"
)

type signupValidator struct{}

// 形式チェックはリクエストのvalidateタグで済んでいる前提。ここはパスワード強度だけ
func NewSignupValidator() auth.SignupValidator {
	return &signupValidator{}
}

func (v *signupValidator) ValidateSignup(in auth.RegisterUserInput) map[string]string {
	fields := map[string]string{}

	// 不一致なら強度は見ない
	if in.Password != in.ConfirmPassword {
		fields["password"] = "Passwords don't match."
		fields["confirm_password"] = "Passwords don't match."
		return fields
	}

	errs := ValidatePassword(in.Password, map[string]string{
		"username":   in.Username,
		"first_name": in.FirstName,
		"last_name":  in.LastName,
		"email":      in.Email,
	})
	if len(errs) > 0 {
		fields["password"] = strings.Join(errs, " ")
	}
	return fields
}
