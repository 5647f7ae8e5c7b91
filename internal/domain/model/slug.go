package model

import (
	"errors"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// 名前から作れなかった（記号だけ等）
var ErrEmptySlug = errors.New("slug is empty")

// Slugify は "Café Watches!" -> "cafe-watches"。
// ラテン文字のアクセントだけ落とし、かな・漢字などはそのまま残す（"機械式 時計" -> "機械式-時計"）
func Slugify(s string) string {
	var folded strings.Builder
	var base rune
	for _, r := range norm.NFKD.String(s) {
		if unicode.Is(unicode.Mn, r) {
			if unicode.Is(unicode.Latin, base) {
				continue
			}
		} else {
			base = r
		}
		folded.WriteRune(r)
	}

	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(norm.NFC.String(folded.String())) {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r):
			b.WriteRune(r)
			dash = false
		case r == '_' || r == '-' || unicode.IsSpace(r):
			if b.Len() > 0 && !dash {
				b.WriteByte('-')
				dash = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}
