package auth

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// sessionClaims wraps jwt.RegisteredClaims with the username for convenience.
// The subject carries the user id; the username is display-only and the
// middleware always re-reads the account row before trusting anything.
type sessionClaims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// SubjectInt parses the subject as a user id, 0 when malformed.
func (c *sessionClaims) SubjectInt() int64 {
	v, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil {
		return 0
	}
	return v
}

func issueToken(userID int64, username, secret string, ttl time.Duration) (string, error) {
	if secret == "" {
		return "", errors.New("secret not configured")
	}

	now := time.Now()
	claims := sessionClaims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   strconv.FormatInt(userID, 10),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func verifyToken(tokenStr, secret string) (*sessionClaims, error) {
	if secret == "" {
		return nil, errors.New("secret not configured")
	}

	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}))

	var claims sessionClaims
	_, err := parser.ParseWithClaims(tokenStr, &claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}

	if claims.ExpiresAt == nil || time.Until(claims.ExpiresAt.Time) <= 0 {
		return nil, errors.New("token expired")
	}

	return &claims, nil
}
