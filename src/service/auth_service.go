package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"lifelog/src/config"
	"lifelog/src/domain"
	"lifelog/src/security"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials    = errors.New("invalid password")
	ErrTooManyAttempts       = errors.New("too many failed attempts, try again later")
	ErrPasswordNotConfigured = errors.New("no password has been configured")
	ErrInvalidNewPassword    = errors.New("new password must be 4 to 72 characters")
)

const (
	minPasswordLength = 4
	maxPasswordLength = 72 // bcryptの上限
)

// LoginResult アクセストークンと有効期限
type LoginResult struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// AuthService 認証サービスのインターフェース
type AuthService interface {
	// Login verifies the owner password. clientKey identifies the caller for lockout.
	Login(ctx context.Context, password, clientKey string) (*LoginResult, security.AttemptStatus, error)
	ChangePassword(ctx context.Context, current, next string) error
}

// authService 認証サービスの実装
type authService struct {
	profileRepo     domain.ProfileRepository
	jwtService      JWTService
	limiter         security.AttemptLimiter
	initialPassword string
	logger          *logrus.Logger
}

// NewAuthService 認証サービスを作成
func NewAuthService(profileRepo domain.ProfileRepository, jwtService JWTService, limiter security.AttemptLimiter, cfg config.AuthConfig, logger *logrus.Logger) AuthService {
	return &authService{
		profileRepo:     profileRepo,
		jwtService:      jwtService,
		limiter:         limiter,
		initialPassword: cfg.Password,
		logger:          logger,
	}
}

// Login ログイン。失敗が続くとウィンドウ終了までロックする
func (s *authService) Login(ctx context.Context, password, clientKey string) (*LoginResult, security.AttemptStatus, error) {
	status, err := s.limiter.Status(ctx, clientKey)
	if err != nil {
		return nil, status, fmt.Errorf("failed to check attempts: %w", err)
	}
	if status.Locked {
		s.logger.WithField("client", clientKey).Warn("ロック中のクライアントからのログイン試行")
		return nil, status, ErrTooManyAttempts
	}

	if err := s.verify(ctx, password); err != nil {
		if !errors.Is(err, ErrInvalidCredentials) {
			return nil, status, err
		}
		status, regErr := s.limiter.RegisterFailure(ctx, clientKey)
		if regErr != nil {
			return nil, status, fmt.Errorf("failed to record attempt: %w", regErr)
		}
		s.logger.WithFields(logrus.Fields{
			"client":    clientKey,
			"failures":  status.Failures,
			"remaining": status.Remaining,
		}).Warn("パスワードが一致しません")
		if status.Locked {
			return nil, status, ErrTooManyAttempts
		}
		return nil, status, ErrInvalidCredentials
	}

	if err := s.limiter.Reset(ctx, clientKey); err != nil {
		s.logger.WithError(err).Warn("試行回数のリセットに失敗")
	}

	token, expiresAt, err := s.jwtService.GenerateAccessToken()
	if err != nil {
		return nil, status, err
	}
	if fresh, err := s.limiter.Status(ctx, clientKey); err == nil {
		status = fresh
	}
	s.logger.WithField("client", clientKey).Info("ログインしました")
	return &LoginResult{Token: token, ExpiresAt: expiresAt}, status, nil
}

// ChangePassword 現在のパスワードを確認してから新しいパスワードを保存
func (s *authService) ChangePassword(ctx context.Context, current, next string) error {
	if n := utf8.RuneCountInString(next); n < minPasswordLength || len(next) > maxPasswordLength {
		return ErrInvalidNewPassword
	}
	if err := s.verify(ctx, current); err != nil {
		return err
	}

	// パスワードハッシュ化
	hashed, err := bcrypt.GenerateFromPassword([]byte(next), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	profile, err := s.profileRepo.Get(ctx)
	if errors.Is(err, domain.ErrNotFound) {
		profile = domain.NewProfile()
	} else if err != nil {
		return err
	}
	profile.PasswordHash = string(hashed)
	profile.ModifiedOn = time.Now()

	if _, err := s.profileRepo.Save(ctx, profile); err != nil {
		return err
	}
	s.logger.Info("パスワードを変更しました")
	return nil
}

// verify プロフィールのハッシュ、未設定なら環境変数のパスワードと比較
func (s *authService) verify(ctx context.Context, password string) error {
	profile, err := s.profileRepo.Get(ctx)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return err
	}

	if profile != nil && profile.PasswordHash != "" {
		if bcrypt.CompareHashAndPassword([]byte(profile.PasswordHash), []byte(password)) != nil {
			return ErrInvalidCredentials
		}
		return nil
	}

	if s.initialPassword == "" {
		return ErrPasswordNotConfigured
	}
	if subtle.ConstantTimeCompare([]byte(s.initialPassword), []byte(password)) != 1 {
		return ErrInvalidCredentials
	}
	return nil
}
