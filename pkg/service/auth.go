package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/Sourabhkumar077/AmarJyoti-sub000/pkg/config"
	"github.com/Sourabhkumar077/AmarJyoti-sub000/pkg/models"
	"github.com/Sourabhkumar077/AmarJyoti-sub000/pkg/repository"
	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const (
	otpValidity    = 10 * time.Minute
	otpMaxAttempts = 5
)

// Claims is the bearer-token payload: who the caller is and whether
// they may reach the admin surface.
type Claims struct {
	UserID string `json:"userId"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

type AuthService struct {
	users  UserStore
	otps   OTPStore
	mailer Notifier
	jwtCfg config.JWTConfig
	logger *zap.Logger
}

func NewAuthService(users UserStore, otps OTPStore, mailer Notifier, jwtCfg config.JWTConfig, logger *zap.Logger) *AuthService {
	return &AuthService{
		users:  users,
		otps:   otps,
		mailer: mailer,
		jwtCfg: jwtCfg,
		logger: logger,
	}
}

func (s *AuthService) Register(ctx context.Context, name, email, password string) (*models.User, string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	user := &models.User{
		Name:      name,
		Email:     email,
		Password:  string(hash),
		Role:      models.RoleUser,
		Addresses: []models.Address{},
	}
	if err := s.users.Insert(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, "", ErrDuplicateEmail
		}
		return nil, "", fmt.Errorf("failed to create user: %w", err)
	}

	token, err := s.IssueToken(user)
	if err != nil {
		return nil, "", err
	}
	s.logger.Info("user registered", zap.String("user_id", user.ID.Hex()))
	return user, token, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.IssueToken(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *AuthService) IssueToken(user *models.User) (string, error) {
	claims := Claims{
		UserID: user.ID.Hex(),
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.jwtCfg.Expiry)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtCfg.Secret))
}

func (s *AuthService) ParseToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.jwtCfg.Secret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}

func (s *AuthService) Profile(ctx context.Context, userID primitive.ObjectID) (*models.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *AuthService) UpdateProfile(ctx context.Context, userID primitive.ObjectID, name, phone string) (*models.User, error) {
	if err := s.users.UpdateProfile(ctx, userID, name, phone); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s.Profile(ctx, userID)
}

// AddAddress appends an address. The first address becomes the default;
// marking a new one default clears the previous flag.
func (s *AuthService) AddAddress(ctx context.Context, userID primitive.ObjectID, addr models.Address) (*models.User, error) {
	user, err := s.Profile(ctx, userID)
	if err != nil {
		return nil, err
	}

	addr.ID = primitive.NewObjectID()
	if len(user.Addresses) == 0 {
		addr.IsDefault = true
	}
	addresses := user.Addresses
	if addr.IsDefault {
		for i := range addresses {
			addresses[i].IsDefault = false
		}
	}
	addresses = append(addresses, addr)

	if err := s.users.ReplaceAddresses(ctx, userID, addresses); err != nil {
		return nil, err
	}
	user.Addresses = addresses
	return user, nil
}

func (s *AuthService) UpdateAddress(ctx context.Context, userID, addressID primitive.ObjectID, addr models.Address) (*models.User, error) {
	user, err := s.Profile(ctx, userID)
	if err != nil {
		return nil, err
	}

	found := false
	addresses := user.Addresses
	for i := range addresses {
		if addresses[i].ID == addressID {
			addr.ID = addressID
			addresses[i] = addr
			found = true
		} else if addr.IsDefault {
			addresses[i].IsDefault = false
		}
	}
	if !found {
		return nil, ErrNotFound
	}

	if err := s.users.ReplaceAddresses(ctx, userID, addresses); err != nil {
		return nil, err
	}
	user.Addresses = addresses
	return user, nil
}

func (s *AuthService) DeleteAddress(ctx context.Context, userID, addressID primitive.ObjectID) (*models.User, error) {
	user, err := s.Profile(ctx, userID)
	if err != nil {
		return nil, err
	}

	addresses := make([]models.Address, 0, len(user.Addresses))
	removed := false
	for _, a := range user.Addresses {
		if a.ID == addressID {
			removed = true
			continue
		}
		addresses = append(addresses, a)
	}
	if !removed {
		return nil, ErrNotFound
	}

	if err := s.users.ReplaceAddresses(ctx, userID, addresses); err != nil {
		return nil, err
	}
	user.Addresses = addresses
	return user, nil
}

func (s *AuthService) SetDefaultAddress(ctx context.Context, userID, addressID primitive.ObjectID) (*models.User, error) {
	user, err := s.Profile(ctx, userID)
	if err != nil {
		return nil, err
	}

	found := false
	addresses := user.Addresses
	for i := range addresses {
		addresses[i].IsDefault = addresses[i].ID == addressID
		if addresses[i].IsDefault {
			found = true
		}
	}
	if !found {
		return nil, ErrNotFound
	}

	if err := s.users.ReplaceAddresses(ctx, userID, addresses); err != nil {
		return nil, err
	}
	user.Addresses = addresses
	return user, nil
}

// ForgotPassword issues a reset OTP. The response is the same whether or
// not the email exists, so the endpoint cannot be used to probe accounts.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil
		}
		return err
	}

	otp, err := generateOTP()
	if err != nil {
		return err
	}
	rec := &repository.OTPRecord{Hash: hashOTP(otp)}
	if err := s.otps.PutOTP(ctx, email, rec, otpValidity); err != nil {
		return err
	}

	if err := s.mailer.SendPasswordResetOTP(email, otp); err != nil {
		s.logger.Warn("failed to send reset code",
			zap.String("user_id", user.ID.Hex()), zap.Error(err))
	}
	return nil
}

func (s *AuthService) ResetPassword(ctx context.Context, email, otp, newPassword string) error {
	rec, err := s.otps.GetOTP(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrInvalidOTP
		}
		return err
	}
	if rec.Attempts >= otpMaxAttempts {
		return ErrTooManyAttempts
	}
	if hashOTP(otp) != rec.Hash {
		if err := s.otps.BumpOTPAttempts(ctx, email, rec); err != nil {
			s.logger.Warn("failed to record reset attempt", zap.Error(err))
		}
		return ErrInvalidOTP
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrInvalidOTP
		}
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := s.users.SetPassword(ctx, user.ID, string(hash)); err != nil {
		return err
	}
	return s.otps.DeleteOTP(ctx, email)
}

func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

func hashOTP(otp string) string {
	sum := sha256.Sum256([]byte(otp))
	return hex.EncodeToString(sum[:])
}
