package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	redislib "github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/zestraw/storefront-backend/pkg/config"
	"github.com/zestraw/storefront-backend/pkg/db/models"
	pkgerrors "github.com/zestraw/storefront-backend/pkg/errors"
	"github.com/zestraw/storefront-backend/pkg/logger"
	"github.com/zestraw/storefront-backend/pkg/security"
)

const resetTokenBytes = 24

// ResetSender delivers the reset link. Dev environments log it.
type ResetSender interface {
	SendResetToken(ctx context.Context, email, token string) error
}

// LogResetSender logs reset tokens instead of emailing them.
type LogResetSender struct {
	logg *logger.Logger
}

func NewLogResetSender(logg *logger.Logger) *LogResetSender {
	return &LogResetSender{logg: logg}
}

func (s *LogResetSender) SendResetToken(ctx context.Context, email, token string) error {
	ctx = s.logg.WithFields(ctx, map[string]any{"email": email, "token": token})
	s.logg.Info(ctx, "password reset token issued (dev sender)")
	return nil
}

type resetKV interface {
	SetNX(ctx context.Context, key string, value any, ttl time.Duration) (bool, error)
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
}

type resetKeyer interface {
	PasswordResetKey(token string) string
}

type resetUserRepo interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	UpdatePasswordHash(ctx context.Context, id uuid.UUID, hash string) error
}

// ResetService implements the forgot/reset password flow.
type ResetService interface {
	Request(ctx context.Context, email string) error
	Confirm(ctx context.Context, token, newPassword string) error
}

// ResetServiceParams bundles the reset dependencies.
type ResetServiceParams struct {
	KV             resetKV
	Keyer          resetKeyer
	Users          resetUserRepo
	Sender         ResetSender
	OTPConfig      config.OTPConfig
	PasswordConfig config.PasswordConfig
}

type resetService struct {
	kv          resetKV
	keyer       resetKeyer
	users       resetUserRepo
	sender      ResetSender
	cfg         config.OTPConfig
	passwordCfg config.PasswordConfig
}

// NewResetService builds the password reset service.
func NewResetService(params ResetServiceParams) (ResetService, error) {
	if params.KV == nil || params.Keyer == nil {
		return nil, fmt.Errorf("reset kv store is required")
	}
	if params.Users == nil {
		return nil, fmt.Errorf("user repository is required")
	}
	if params.Sender == nil {
		return nil, fmt.Errorf("reset sender is required")
	}
	return &resetService{
		kv:          params.KV,
		keyer:       params.Keyer,
		users:       params.Users,
		sender:      params.Sender,
		cfg:         params.OTPConfig,
		passwordCfg: params.PasswordConfig,
	}, nil
}

// Request issues a reset token. Unknown emails return success so the
// endpoint cannot be used to probe for accounts.
func (s *resetService) Request(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "email is required")
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup user")
	}

	token, err := generateResetToken()
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "generate reset token")
	}
	// Claim the key so a colliding token can never remap another account.
	ok, err := s.kv.SetNX(ctx, s.keyer.PasswordResetKey(token), user.ID.String(), s.cfg.ResetTokenTTL)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store reset token")
	}
	if !ok {
		return pkgerrors.New(pkgerrors.CodeInternal, "reset token collision")
	}
	if err := s.sender.SendResetToken(ctx, email, token); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "deliver reset token")
	}
	return nil
}

func (s *resetService) Confirm(ctx context.Context, token, newPassword string) error {
	if strings.TrimSpace(token) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "token is required")
	}

	key := s.keyer.PasswordResetKey(token)
	stored, err := s.kv.Get(ctx, key)
	if err != nil {
		if errors.Is(err, redislib.Nil) {
			return pkgerrors.New(pkgerrors.CodeUnauthorized, "reset token expired or invalid")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load reset token")
	}
	userID, err := uuid.Parse(stored)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "corrupt reset token mapping")
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeUnauthorized, "reset token expired or invalid")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup user")
	}

	hash, err := security.HashPassword(newPassword, s.passwordCfg)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}
	if err := s.users.UpdatePasswordHash(ctx, user.ID, hash); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "store password")
	}

	// Single use.
	if err := s.kv.Del(ctx, key); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "consume reset token")
	}
	return nil
}

func generateResetToken() (string, error) {
	bytes := make([]byte, resetTokenBytes)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("generating reset token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(bytes), nil
}
