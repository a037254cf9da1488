package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"testing"
	"time"

	"github.com/google/uuid"
	redislib "github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/zestraw/storefront-backend/pkg/config"
	"github.com/zestraw/storefront-backend/pkg/db/models"
	pkgerrors "github.com/zestraw/storefront-backend/pkg/errors"
)

type mockAuthKV struct {
	values map[string]string
	counts map[string]int64
}

func newMockAuthKV() *mockAuthKV {
	return &mockAuthKV{values: map[string]string{}, counts: map[string]int64{}}
}

func (m *mockAuthKV) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	m.values[key] = value.(string)
	return nil
}

func (m *mockAuthKV) SetNX(ctx context.Context, key string, value any, ttl time.Duration) (bool, error) {
	if _, exists := m.values[key]; exists {
		return false, nil
	}
	m.values[key] = value.(string)
	return true, nil
}

func (m *mockAuthKV) Get(ctx context.Context, key string) (string, error) {
	value, ok := m.values[key]
	if !ok {
		return "", redislib.Nil
	}
	return value, nil
}

func (m *mockAuthKV) Del(ctx context.Context, keys ...string) error {
	for _, key := range keys {
		delete(m.values, key)
	}
	return nil
}

func (m *mockAuthKV) FixedWindowAllow(ctx context.Context, scope string, limit int64, window time.Duration) (bool, int64, error) {
	m.counts[scope]++
	return m.counts[scope] <= limit, m.counts[scope], nil
}

type mockKeyer struct{}

func (mockKeyer) OTPKey(phone string) string          { return "zs:otp:" + phone }
func (mockKeyer) PasswordResetKey(token string) string { return "zs:pwreset:" + token }

type capturingSender struct {
	phone string
	code  string
	email string
	token string
}

func (s *capturingSender) SendCode(ctx context.Context, phone, code string) error {
	s.phone, s.code = phone, code
	return nil
}

func (s *capturingSender) SendResetToken(ctx context.Context, email, token string) error {
	s.email, s.token = email, token
	return nil
}

type stubPhoneVerifier struct {
	user     *models.User
	verified bool
}

func (r *stubPhoneVerifier) FindByPhone(ctx context.Context, phone string) (*models.User, error) {
	if r.user == nil || r.user.Phone == nil || *r.user.Phone != phone {
		return nil, gorm.ErrRecordNotFound
	}
	return r.user, nil
}

func (r *stubPhoneVerifier) MarkPhoneVerified(ctx context.Context, id uuid.UUID) error {
	if r.user == nil || r.user.ID != id {
		return gorm.ErrRecordNotFound
	}
	r.verified = true
	return nil
}

func testOTPConfig() config.OTPConfig {
	return config.OTPConfig{
		CodeTTL:        5 * time.Minute,
		SendWindow:     10 * time.Minute,
		SendPhoneLimit: 3,
		SendIPLimit:    10,
		ResetTokenTTL:  30 * time.Minute,
	}
}

func newOTPService(t *testing.T, kv *mockAuthKV, users *stubPhoneVerifier, sender *capturingSender) OTPService {
	t.Helper()
	svc, err := NewOTPService(OTPServiceParams{
		KV:     kv,
		Keyer:  mockKeyer{},
		Users:  users,
		Sender: sender,
		Config: testOTPConfig(),
	})
	if err != nil {
		t.Fatalf("new otp service: %v", err)
	}
	return svc
}

func TestOTPSendStoresHashedCode(t *testing.T) {
	t.Parallel()

	kv := newMockAuthKV()
	sender := &capturingSender{}
	svc := newOTPService(t, kv, &stubPhoneVerifier{}, sender)

	if err := svc.Send(context.Background(), "+919876543210", "10.0.0.1"); err != nil {
		t.Fatalf("send: %v", err)
	}
	if len(sender.code) != otpCodeLength {
		t.Fatalf("expected %d digit code, got %q", otpCodeLength, sender.code)
	}

	stored := kv.values["zs:otp:+919876543210"]
	if stored == sender.code {
		t.Fatal("plaintext code must not be stored")
	}
	sum := sha256.Sum256([]byte(sender.code))
	if stored != hex.EncodeToString(sum[:]) {
		t.Fatalf("stored value is not the code hash: %q", stored)
	}
}

func TestOTPSendRateLimited(t *testing.T) {
	t.Parallel()

	kv := newMockAuthKV()
	svc := newOTPService(t, kv, &stubPhoneVerifier{}, &capturingSender{})
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if err := svc.Send(ctx, "+919876543210", ""); err != nil {
			t.Fatalf("send %d: %v", i, err)
		}
	}
	err := svc.Send(ctx, "+919876543210", "")
	if err == nil {
		t.Fatal("expected rate limit after three sends")
	}
	if coded := pkgerrors.As(err); coded == nil || coded.Code() != pkgerrors.CodeRateLimit {
		t.Fatalf("expected rate limit code, got %v", err)
	}
}

func TestOTPVerifyMarksPhoneAndIsSingleUse(t *testing.T) {
	t.Parallel()

	phone := "+919876543210"
	users := &stubPhoneVerifier{user: &models.User{ID: uuid.New(), Phone: &phone}}
	kv := newMockAuthKV()
	sender := &capturingSender{}
	svc := newOTPService(t, kv, users, sender)
	ctx := context.Background()

	if err := svc.Send(ctx, phone, ""); err != nil {
		t.Fatalf("send: %v", err)
	}

	if err := svc.Verify(ctx, phone, "000000"); err == nil {
		t.Fatal("expected wrong code rejected")
	} else if coded := pkgerrors.As(err); coded == nil || coded.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized code, got %v", err)
	}

	if err := svc.Verify(ctx, phone, sender.code); err != nil {
		t.Fatalf("verify: %v", err)
	}
	if !users.verified {
		t.Fatal("expected phone marked verified")
	}

	// Code is consumed on success.
	if err := svc.Verify(ctx, phone, sender.code); err == nil {
		t.Fatal("expected second verify to fail")
	} else if coded := pkgerrors.As(err); coded == nil || coded.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized code, got %v", err)
	}
}

func TestOTPVerifyUnknownPhone(t *testing.T) {
	t.Parallel()

	phone := "+911112223334"
	kv := newMockAuthKV()
	sender := &capturingSender{}
	svc := newOTPService(t, kv, &stubPhoneVerifier{}, sender)
	ctx := context.Background()

	if err := svc.Send(ctx, phone, ""); err != nil {
		t.Fatalf("send: %v", err)
	}
	err := svc.Verify(ctx, phone, sender.code)
	if coded := pkgerrors.As(err); coded == nil || coded.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found for unknown phone, got %v", err)
	}
}
