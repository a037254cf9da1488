package auth

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
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

const otpCodeLength = 6

// CodeSender delivers a one-time code to a phone number. The SMS provider
// integration lives behind this interface; dev environments log the code.
type CodeSender interface {
	SendCode(ctx context.Context, phone, code string) error
}

// LogCodeSender writes codes to the structured log instead of sending SMS.
type LogCodeSender struct {
	logg *logger.Logger
}

func NewLogCodeSender(logg *logger.Logger) *LogCodeSender {
	return &LogCodeSender{logg: logg}
}

func (s *LogCodeSender) SendCode(ctx context.Context, phone, code string) error {
	ctx = s.logg.WithFields(ctx, map[string]any{"phone": phone, "code": code})
	s.logg.Info(ctx, "otp code issued (dev sender)")
	return nil
}

type otpKV interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
	FixedWindowAllow(ctx context.Context, scope string, limit int64, window time.Duration) (bool, int64, error)
}

type otpKeyer interface {
	OTPKey(phone string) string
}

type phoneVerifier interface {
	FindByPhone(ctx context.Context, phone string) (*models.User, error)
	MarkPhoneVerified(ctx context.Context, id uuid.UUID) error
}

// OTPService issues and checks phone verification codes.
type OTPService interface {
	Send(ctx context.Context, phone, clientIP string) error
	Verify(ctx context.Context, phone, code string) error
}

// OTPServiceParams bundles the OTP dependencies.
type OTPServiceParams struct {
	KV     otpKV
	Keyer  otpKeyer
	Users  phoneVerifier
	Sender CodeSender
	Config config.OTPConfig
}

type otpService struct {
	kv     otpKV
	keyer  otpKeyer
	users  phoneVerifier
	sender CodeSender
	cfg    config.OTPConfig
}

// NewOTPService builds the phone verification service.
func NewOTPService(params OTPServiceParams) (OTPService, error) {
	if params.KV == nil || params.Keyer == nil {
		return nil, fmt.Errorf("otp kv store is required")
	}
	if params.Users == nil {
		return nil, fmt.Errorf("user repository is required")
	}
	if params.Sender == nil {
		return nil, fmt.Errorf("code sender is required")
	}
	return &otpService{
		kv:     params.KV,
		keyer:  params.Keyer,
		users:  params.Users,
		sender: params.Sender,
		cfg:    params.Config,
	}, nil
}

func (s *otpService) Send(ctx context.Context, phone, clientIP string) error {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "phone is required")
	}

	if err := s.allow(ctx, "otp:phone:"+phone, int64(s.cfg.SendPhoneLimit)); err != nil {
		return err
	}
	if clientIP != "" {
		if err := s.allow(ctx, "otp:ip:"+clientIP, int64(s.cfg.SendIPLimit)); err != nil {
			return err
		}
	}

	code, err := security.GenerateNumericCode(otpCodeLength)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "generate otp code")
	}
	if err := s.kv.Set(ctx, s.keyer.OTPKey(phone), hashCode(code), s.cfg.CodeTTL); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store otp code")
	}
	if err := s.sender.SendCode(ctx, phone, code); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "deliver otp code")
	}
	return nil
}

func (s *otpService) Verify(ctx context.Context, phone, code string) error {
	phone = strings.TrimSpace(phone)
	if phone == "" || strings.TrimSpace(code) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "phone and code are required")
	}

	key := s.keyer.OTPKey(phone)
	stored, err := s.kv.Get(ctx, key)
	if err != nil {
		if errors.Is(err, redislib.Nil) {
			return pkgerrors.New(pkgerrors.CodeUnauthorized, "code expired or not issued")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load otp code")
	}
	if subtle.ConstantTimeCompare([]byte(stored), []byte(hashCode(code))) != 1 {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "incorrect code")
	}

	// Single use.
	if err := s.kv.Del(ctx, key); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "consume otp code")
	}

	user, err := s.users.FindByPhone(ctx, phone)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "no account with this phone")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup user")
	}
	if err := s.users.MarkPhoneVerified(ctx, user.ID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mark phone verified")
	}
	return nil
}

func (s *otpService) allow(ctx context.Context, scope string, limit int64) error {
	allowed, _, err := s.kv.FixedWindowAllow(ctx, scope, limit, s.cfg.SendWindow)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "otp rate limit")
	}
	if !allowed {
		return pkgerrors.New(pkgerrors.CodeRateLimit, "too many codes requested, try again later")
	}
	return nil
}

func hashCode(code string) string {
	sum := sha256.Sum256([]byte(code))
	return hex.EncodeToString(sum[:])
}
