package service

import (
	"errors"
	"fmt"
	"time"

	"lifelog/src/config"

	"github.com/golang-jwt/jwt/v5"
)

// OwnerSubject is the subject of every token: the service has a single owner
const OwnerSubject = "owner"

var ErrInvalidToken = errors.New("invalid token")

// JWTClaims JWT内のカスタムクレーム
type JWTClaims struct {
	Type string `json:"type"` // "access"
	jwt.RegisteredClaims
}

// JWTService JWT管理サービスのインターフェース
type JWTService interface {
	GenerateAccessToken() (string, time.Time, error)
	ValidateAccessToken(tokenString string) (*JWTClaims, error)
}

// jwtService JWT管理サービスの実装
type jwtService struct {
	secret    []byte
	expiresIn time.Duration
	now       func() time.Time
}

// NewJWTService JWT管理サービスを作成
func NewJWTService(cfg config.AuthConfig) JWTService {
	return &jwtService{
		secret:    []byte(cfg.JWTSecret),
		expiresIn: cfg.JWTExpiresIn,
		now:       time.Now,
	}
}

// GenerateAccessToken アクセストークンを生成
func (s *jwtService) GenerateAccessToken() (string, time.Time, error) {
	now := s.now()
	expiresAt := now.Add(s.expiresIn)
	claims := &JWTClaims{
		Type: "access",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    "lifelog",
			Subject:   OwnerSubject,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, expiresAt, nil
}

// ValidateAccessToken アクセストークンを検証
func (s *jwtService) ValidateAccessToken(tokenString string) (*JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*JWTClaims)
	if !ok || !token.Valid || claims.Type != "access" || claims.Subject != OwnerSubject {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
