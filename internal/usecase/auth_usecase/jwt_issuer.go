package auth

import (
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

const TokenTypeAccess = "access"

// UUID 等のIDを作る約束
type IDGenerator interface {
	NewID() string
}

// HS256のアクセストークンを作る
type JWTIssuer struct {
	secret    []byte
	accessTTL time.Duration
	idGen     IDGenerator
}

func NewJWTIssuer(secret string, accessTTL time.Duration, idGen IDGenerator) *JWTIssuer {
	return &JWTIssuer{
		secret:    []byte(secret),
		accessTTL: accessTTL,
		idGen:     idGen,
	}
}

func (i *JWTIssuer) Issue(userID int64, now time.Time) (string, time.Time, error) {
	expiresAt := now.Add(i.accessTTL)

	claims := jwt.MapClaims{
		"sub":        strconv.FormatInt(userID, 10),
		"jti":        i.idGen.NewID(),
		"token_type": TokenTypeAccess,
		"iat":        now.Unix(),
		"exp":        expiresAt.Unix(),
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, err
	}

	return signed, expiresAt, nil
}
