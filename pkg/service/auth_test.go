package service

import (
	"context"
	"testing"
	"time"

	"github.com/Sourabhkumar077/AmarJyoti-sub000/pkg/config"
	"github.com/Sourabhkumar077/AmarJyoti-sub000/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func newAuthFixture() (*AuthService, *fakeUserStore, *fakeOTPStore, *fakeNotifier) {
	users := newFakeUserStore()
	otps := newFakeOTPStore()
	mailer := newFakeNotifier()
	svc := NewAuthService(users, otps, mailer,
		config.JWTConfig{Secret: "test-secret", Expiry: time.Hour}, zap.NewNop())
	return svc, users, otps, mailer
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _, _, _ := newAuthFixture()

	user, token, err := svc.Register(context.Background(), "Asha", "asha@example.com", "s3cret123")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, models.RoleUser, user.Role)
	assert.False(t, user.ID.IsZero())

	_, token, err = svc.Login(context.Background(), "asha@example.com", "s3cret123")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _, _, _ := newAuthFixture()

	_, _, err := svc.Register(context.Background(), "Asha", "asha@example.com", "s3cret123")
	require.NoError(t, err)

	_, _, err = svc.Register(context.Background(), "Other", "asha@example.com", "different")
	assert.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc, _, _, _ := newAuthFixture()

	_, _, err := svc.Register(context.Background(), "Asha", "asha@example.com", "s3cret123")
	require.NoError(t, err)

	_, _, err = svc.Login(context.Background(), "asha@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	// Unknown email fails identically.
	_, _, err = svc.Login(context.Background(), "nobody@example.com", "s3cret123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestTokenRoundTrip(t *testing.T) {
	svc, _, _, _ := newAuthFixture()

	user := &models.User{ID: primitive.NewObjectID(), Role: models.RoleAdmin}
	token, err := svc.IssueToken(user)
	require.NoError(t, err)

	claims, err := svc.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID.Hex(), claims.UserID)
	assert.Equal(t, models.RoleAdmin, claims.Role)
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	svc, _, _, _ := newAuthFixture()
	other := NewAuthService(newFakeUserStore(), newFakeOTPStore(), newFakeNotifier(),
		config.JWTConfig{Secret: "another-secret", Expiry: time.Hour}, zap.NewNop())

	token, err := other.IssueToken(&models.User{ID: primitive.NewObjectID(), Role: models.RoleUser})
	require.NoError(t, err)

	_, err = svc.ParseToken(token)
	assert.Error(t, err)
}

func TestAddressDefaultInvariant(t *testing.T) {
	svc, _, _, _ := newAuthFixture()
	user, _, err := svc.Register(context.Background(), "Asha", "asha@example.com", "s3cret123")
	require.NoError(t, err)
	ctx := context.Background()

	// First address becomes default regardless of the flag.
	u, err := svc.AddAddress(ctx, user.ID, models.Address{Street: "12 MG Road", City: "Jaipur"})
	require.NoError(t, err)
	require.Len(t, u.Addresses, 1)
	assert.True(t, u.Addresses[0].IsDefault)

	// A second default displaces the first.
	u, err = svc.AddAddress(ctx, user.ID, models.Address{Street: "4 Park St", City: "Kolkata", IsDefault: true})
	require.NoError(t, err)
	require.Len(t, u.Addresses, 2)
	assert.False(t, u.Addresses[0].IsDefault)
	assert.True(t, u.Addresses[1].IsDefault)

	// SetDefaultAddress moves the flag back.
	u, err = svc.SetDefaultAddress(ctx, user.ID, u.Addresses[0].ID)
	require.NoError(t, err)
	assert.True(t, u.Addresses[0].IsDefault)
	assert.False(t, u.Addresses[1].IsDefault)

	defaults := 0
	for _, a := range u.Addresses {
		if a.IsDefault {
			defaults++
		}
	}
	assert.Equal(t, 1, defaults)
}

func TestDeleteAddress(t *testing.T) {
	svc, _, _, _ := newAuthFixture()
	user, _, err := svc.Register(context.Background(), "Asha", "asha@example.com", "s3cret123")
	require.NoError(t, err)
	ctx := context.Background()

	u, err := svc.AddAddress(ctx, user.ID, models.Address{Street: "12 MG Road"})
	require.NoError(t, err)

	u, err = svc.DeleteAddress(ctx, user.ID, u.Addresses[0].ID)
	require.NoError(t, err)
	assert.Empty(t, u.Addresses)

	_, err = svc.DeleteAddress(ctx, user.ID, primitive.NewObjectID())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestForgotPasswordUnknownEmailIsSilent(t *testing.T) {
	svc, _, otps, mailer := newAuthFixture()

	require.NoError(t, svc.ForgotPassword(context.Background(), "nobody@example.com"))
	assert.Empty(t, otps.records)
	assert.Empty(t, mailer.otpMails)
}

func TestResetPasswordFlow(t *testing.T) {
	svc, users, _, mailer := newAuthFixture()
	ctx := context.Background()

	_, _, err := svc.Register(ctx, "Asha", "asha@example.com", "oldpassword")
	require.NoError(t, err)

	require.NoError(t, svc.ForgotPassword(ctx, "asha@example.com"))
	otp := mailer.otpMails["asha@example.com"]
	require.Len(t, otp, 6)

	require.NoError(t, svc.ResetPassword(ctx, "asha@example.com", otp, "newpassword"))

	user, err := users.GetByEmail(ctx, "asha@example.com")
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("newpassword")))

	// The code is single-use.
	err = svc.ResetPassword(ctx, "asha@example.com", otp, "again")
	assert.ErrorIs(t, err, ErrInvalidOTP)
}

func TestResetPasswordWrongOTP(t *testing.T) {
	svc, users, _, mailer := newAuthFixture()
	ctx := context.Background()

	_, _, err := svc.Register(ctx, "Asha", "asha@example.com", "oldpassword")
	require.NoError(t, err)
	require.NoError(t, svc.ForgotPassword(ctx, "asha@example.com"))

	otp := mailer.otpMails["asha@example.com"]
	wrong := "000000"
	if wrong == otp {
		wrong = "000001"
	}

	err = svc.ResetPassword(ctx, "asha@example.com", wrong, "newpassword")
	assert.ErrorIs(t, err, ErrInvalidOTP)

	user, err := users.GetByEmail(ctx, "asha@example.com")
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("oldpassword")))
}

func TestResetPasswordAttemptCap(t *testing.T) {
	svc, _, _, mailer := newAuthFixture()
	ctx := context.Background()

	_, _, err := svc.Register(ctx, "Asha", "asha@example.com", "oldpassword")
	require.NoError(t, err)
	require.NoError(t, svc.ForgotPassword(ctx, "asha@example.com"))

	otp := mailer.otpMails["asha@example.com"]
	wrong := "000000"
	if wrong == otp {
		wrong = "000001"
	}

	for i := 0; i < otpMaxAttempts; i++ {
		err := svc.ResetPassword(ctx, "asha@example.com", wrong, "newpassword")
		assert.ErrorIs(t, err, ErrInvalidOTP)
	}

	// The cap locks out even the correct code.
	err = svc.ResetPassword(ctx, "asha@example.com", otp, "newpassword")
	assert.ErrorIs(t, err, ErrTooManyAttempts)
}
