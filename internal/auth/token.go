package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"exam-clearance/internal/domain"
)

// ErrInvalidToken covers malformed, expired and foreign-signed tokens alike.
var ErrInvalidToken = errors.New("invalid token")

// Identity is what a session token vouches for.
type Identity struct {
	UserID    int64
	StudentID string
	Role      domain.Role
}

// Claims is the signed payload of a session token.
type Claims struct {
	UserID    int64  `json:"id"`
	Role      string `json:"role"`
	StudentID string `json:"student_id"`
	jwt.RegisteredClaims
}

// Issuer signs and verifies HS256 session tokens with a single server secret.
type Issuer struct {
	secret []byte
	issuer string
	now    func() time.Time
}

func NewIssuer(secret, issuer string) *Issuer {
	return &Issuer{
		secret: []byte(secret),
		issuer: strings.TrimSpace(issuer),
		now:    time.Now,
	}
}

// Issue returns a token for id that expires after ttl.
func (i *Issuer) Issue(id Identity, ttl time.Duration) (string, error) {
	now := i.now().UTC()
	claims := Claims{
		UserID:    id.UserID,
		Role:      string(id.Role),
		StudentID: id.StudentID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id.StudentID,
			Issuer:    i.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        uuid.NewString(),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks signature, algorithm and expiry and returns the encoded identity.
func (i *Issuer) Verify(raw string) (Identity, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(i.now),
	}
	if i.issuer != "" {
		opts = append(opts, jwt.WithIssuer(i.issuer))
	}

	token, err := jwt.ParseWithClaims(raw, &Claims{}, func(t *jwt.Token) (any, error) {
		return i.secret, nil
	}, opts...)
	if err != nil {
		return Identity{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.StudentID == "" {
		return Identity{}, ErrInvalidToken
	}

	return Identity{
		UserID:    claims.UserID,
		StudentID: claims.StudentID,
		Role:      domain.Role(claims.Role),
	}, nil
}
