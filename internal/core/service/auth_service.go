package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/taskpulse/daily-tracker/internal/core/domain"
	"github.com/taskpulse/daily-tracker/internal/core/ports"
)

const otpSubject = "Daily Tracker Password Reset"

// AuthService implements registration, login and the OTP password flow.
type AuthService struct {
	repo      ports.UserRepository
	otp       ports.OTPStore
	mail      ports.Mailer
	jwtSecret string
	tokenTTL  time.Duration
	log       zerolog.Logger
}

func NewAuthService(repo ports.UserRepository, otp ports.OTPStore, mail ports.Mailer, jwtSecret string, tokenTTL time.Duration, log zerolog.Logger) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = time.Hour
	}
	return &AuthService{repo: repo, otp: otp, mail: mail, jwtSecret: jwtSecret, tokenTTL: tokenTTL, log: log}
}

func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	if in.Name == "" || in.Email == "" || in.Password == "" || in.Cluster == "" || in.ClusterLead == "" {
		return nil, fmt.Errorf("%w: all registration fields are required", domain.ErrInvalidInput)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: string(hash),
		Cluster:      in.Cluster,
		ClusterLead:  in.ClusterLead,
		Role:         domain.RoleTeamMember,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("email", created.Email).Str("cluster", created.Cluster).Msg("user registered")
	return created, nil
}

// Login verifies the password and issues a token. Unknown email, wrong
// password and deactivated account are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if !user.Active() {
		return "", nil, domain.ErrInvalidCredentials
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.generateToken(user)
	if err != nil {
		return "", nil, err
	}

	return token, user, nil
}

func (s *AuthService) SendOTP(ctx context.Context, email string) error {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return err
	}

	code, err := generateOTP()
	if err != nil {
		return fmt.Errorf("generate otp: %w", err)
	}

	if err := s.otp.Set(ctx, user.Email, code); err != nil {
		return fmt.Errorf("store otp: %w", err)
	}

	msg := ports.MailMessage{
		To:      []string{user.Email},
		Subject: otpSubject,
		Body: fmt.Sprintf("Hi %s,\n\nYour one-time passcode is %s. It expires in 10 minutes.\n\nThanks",
			user.Name, code),
	}
	if err := s.mail.Send(ctx, msg); err != nil {
		return fmt.Errorf("send otp mail: %w", err)
	}

	s.log.Info().Str("email", user.Email).Msg("otp issued")
	return nil
}

func (s *AuthService) ResetPassword(ctx context.Context, email, otp, newPassword string) error {
	if otp == "" || newPassword == "" {
		return domain.ErrInvalidOTP
	}

	ok, err := s.otp.Consume(ctx, email, otp)
	if err != nil {
		return fmt.Errorf("consume otp: %w", err)
	}
	if !ok {
		return domain.ErrInvalidOTP
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	if err := s.repo.UpdatePassword(ctx, email, string(hash)); err != nil {
		return err
	}

	s.log.Info().Str("email", email).Msg("password reset")
	return nil
}

func (s *AuthService) generateToken(user *domain.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":     fmt.Sprintf("%d", user.ID),
		"name":    user.Name,
		"email":   user.Email,
		"cluster": user.Cluster,
		"role":    user.Role,
		"exp":     time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

// generateOTP returns a uniformly random six-digit code.
func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
