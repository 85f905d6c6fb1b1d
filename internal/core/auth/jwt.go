package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"raluma-api/internal/domain"
)

// Claims: sub is the user id.
type Claims struct {
	Username string      `json:"username"`
	Role     domain.Role `json:"role"`
	jwt.RegisteredClaims
}

type JWTer struct {
	Secret []byte
	Issuer string
	TTL    time.Duration
}

func (j *JWTer) Issue(u domain.User) (string, error) {
	now := time.Now()
	claims := Claims{
		Username: u.Username,
		Role:     u.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID,
			Issuer:    j.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.TTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(j.Secret)
}

// Parse verifies signature, issuer and expiry. Every failure is ErrTokenInvalid.
func (j *JWTer) Parse(tokenStr string) (*Claims, error) {
	t, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected alg %v", token.Header["alg"])
		}
		return j.Secret, nil
	},
		jwt.WithIssuer(j.Issuer),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(60*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrTokenInvalid, err)
	}
	c, ok := t.Claims.(*Claims)
	if !ok || !t.Valid || c.Subject == "" {
		return nil, domain.ErrTokenInvalid
	}
	return c, nil
}
