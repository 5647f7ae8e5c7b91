package validator

import (
	"regexp"
	"strings"
	"unicode"
)

const (
	minPasswordLength = 8
	maxSimilarity     = 0.7
)

// よく使われるパスワード（小文字で比較）
var commonPasswords = map[string]struct{}{
	"password": {}, "password1": {}, "password123": {}, "passw0rd": {}, "p@ssw0rd": {},
	"12345678": {}, "123456789": {}, "1234567890": {}, "87654321": {}, "11111111": {},
	"qwerty123": {}, "qwertyuiop": {}, "1q2w3e4r": {}, "1qaz2wsx": {}, "asdfghjkl": {},
	"iloveyou": {}, "sunshine": {}, "princess": {}, "football": {}, "baseball": {},
	"superman": {}, "trustno1": {}, "letmein1": {}, "welcome1": {}, "whatever": {},
	"starwars": {}, "computer": {}, "michelle": {}, "jennifer": {}, "corvette": {},
	"mercedes": {}, "master12": {}, "shadow12": {}, "monkey12": {}, "dragon12": {},
	"abcd1234": {}, "abc12345": {}, "admin123": {}, "changeme": {}, "zaq12wsx": {},
}

var nonWord = regexp.MustCompile(`\W+`)

// ValidatePassword はパスワード強度のエラーメッセージを返す（空なら合格）。
// attrsはusernameやemailなど、似ていてはいけない値
func ValidatePassword(password string, attrs map[string]string) []string {
	var errs []string

	if msg := similarTo(password, attrs); msg != "" {
		errs = append(errs, msg)
	}
	if len([]rune(password)) < minPasswordLength {
		errs = append(errs, "This password is too short. It must contain at least 8 characters.")
	}
	if _, ok := commonPasswords[strings.ToLower(strings.TrimSpace(password))]; ok {
		errs = append(errs, "This password is too common.")
	}
	if password != "" && isAllDigits(password) {
		errs = append(errs, "This password is entirely numeric.")
	}
	return errs
}

func isAllDigits(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// attrsの順に見て最初に似ていたものを返す
func similarTo(password string, attrs map[string]string) string {
	pw := strings.ToLower(password)
	for _, name := range []string{"username", "first_name", "last_name", "email"} {
		value := strings.ToLower(attrs[name])
		if value == "" || exceedsLengthRatio(pw, value) {
			continue
		}
		parts := append([]string{value}, nonWord.Split(value, -1)...)
		for _, part := range parts {
			if part == "" {
				continue
			}
			if quickRatio(pw, part) >= maxSimilarity {
				return "The password is too similar to the " + strings.ReplaceAll(name, "_", " ") + "."
			}
		}
	}
	return ""
}

// パスワードが値よりずっと長いときは似ているとみなさない
func exceedsLengthRatio(password, value string) bool {
	pwLen := float64(len([]rune(password)))
	valLen := float64(len([]rune(value)))
	return pwLen >= 10*valLen && valLen < maxSimilarity/2*pwLen
}

// 文字の多重集合の共通部分から出す類似度の上限（0..1）
func quickRatio(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	total := len(ra) + len(rb)
	if total == 0 {
		return 1
	}

	avail := make(map[rune]int, len(rb))
	for _, r := range rb {
		avail[r]++
	}
	matches := 0
	for _, r := range ra {
		if avail[r] > 0 {
			avail[r]--
			matches++
		}
	}
	return 2 * float64(matches) / float64(total)
}
