package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/taskpulse/daily-tracker/internal/core/domain"
	"github.com/taskpulse/daily-tracker/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stubs
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	users  map[string]*domain.User
	nextID uint
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, exists := r.users[user.Email]; exists {
		return nil, domain.ErrUserExists
	}
	r.nextID++
	copy := cloneUser(user)
	copy.ID = r.nextID
	r.users[copy.Email] = cloneUser(copy)
	return cloneUser(copy), nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	u, ok := r.users[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id uint) (*domain.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) List(_ context.Context) ([]domain.User, error) {
	out := make([]domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, *u)
	}
	return out, nil
}

func (r *stubUserRepo) UpdateRole(_ context.Context, id uint, role string) error {
	for _, u := range r.users {
		if u.ID == id {
			u.Role = role
			return nil
		}
	}
	return domain.ErrUserNotFound
}

func (r *stubUserRepo) UpdateClusterLead(_ context.Context, id uint, lead string) error {
	for _, u := range r.users {
		if u.ID == id {
			u.ClusterLead = lead
			return nil
		}
	}
	return domain.ErrUserNotFound
}

func (r *stubUserRepo) UpdatePassword(_ context.Context, email, hash string) error {
	u, ok := r.users[email]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.PasswordHash = hash
	return nil
}

func (r *stubUserRepo) ToggleActive(_ context.Context, email string) (bool, error) {
	u, ok := r.users[email]
	if !ok {
		return false, domain.ErrUserNotFound
	}
	u.IsDeleted = !u.IsDeleted
	return u.IsDeleted, nil
}

func (r *stubUserRepo) FindMissingSubmitters(_ context.Context, _ time.Time) ([]domain.User, error) {
	return nil, nil
}

type stubOTPStore struct {
	codes map[string]string
}

func newStubOTPStore() *stubOTPStore {
	return &stubOTPStore{codes: make(map[string]string)}
}

func (s *stubOTPStore) Set(_ context.Context, email, code string) error {
	s.codes[email] = code
	return nil
}

func (s *stubOTPStore) Consume(_ context.Context, email, code string) (bool, error) {
	stored, ok := s.codes[email]
	if !ok {
		return false, nil
	}
	delete(s.codes, email)
	return stored == code, nil
}

type stubMailer struct {
	sent []ports.MailMessage
	err  error
}

func (m *stubMailer) Send(_ context.Context, msg ports.MailMessage) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, msg)
	return nil
}

func newAuthService(repo *stubUserRepo, otp *stubOTPStore, mail *stubMailer) *AuthService {
	return NewAuthService(repo, otp, mail, "secret", time.Hour, zerolog.Nop())
}

// ---------------------------------------------------------------------------
// Tests
// ---------------------------------------------------------------------------

func TestAuthService_Register_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo, newStubOTPStore(), &stubMailer{})

	user, err := svc.Register(context.Background(), ports.RegisterInput{
		Name: "Alice", Email: "alice@example.com", Password: "pass123",
		Cluster: "5", ClusterLead: "Bob",
	})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user.PasswordHash == "pass123" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("pass123")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
	if user.Role != domain.RoleTeamMember {
		t.Fatalf("expected self-registration to default to Team Member, got %s", user.Role)
	}
}

func TestAuthService_Register_MissingFields(t *testing.T) {
	svc := newAuthService(newStubUserRepo(), newStubOTPStore(), &stubMailer{})

	_, err := svc.Register(context.Background(), ports.RegisterInput{Email: "x@example.com"})
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestAuthService_Register_DuplicateEmailDoesNotMutate(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo, newStubOTPStore(), &stubMailer{})

	in := ports.RegisterInput{Name: "Bob", Email: "bob@example.com", Password: "pw", Cluster: "2", ClusterLead: "Ann"}
	if _, err := svc.Register(context.Background(), in); err != nil {
		t.Fatalf("first register failed: %v", err)
	}

	in.Cluster = "9"
	if _, err := svc.Register(context.Background(), in); err != domain.ErrUserExists {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
	if repo.users["bob@example.com"].Cluster != "2" {
		t.Fatalf("duplicate registration mutated the stored user")
	}
}

func TestAuthService_Login_TokenClaims(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo, newStubOTPStore(), &stubMailer{})

	if _, err := svc.Register(context.Background(), ports.RegisterInput{
		Name: "Carol", Email: "carol@example.com", Password: "s3cret", Cluster: "5", ClusterLead: "Dan",
	}); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	token, user, err := svc.Login(context.Background(), "carol@example.com", "s3cret")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if user == nil || user.Name != "Carol" {
		t.Fatalf("unexpected user: %+v", user)
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token invalid: %v", err)
	}
	if claims["email"] != "carol@example.com" || claims["cluster"] != "5" || claims["role"] != domain.RoleTeamMember {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestAuthService_Login_WrongPasswordAndUnknownEmailIndistinguishable(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo, newStubOTPStore(), &stubMailer{})

	_, _ = svc.Register(context.Background(), ports.RegisterInput{
		Name: "Dave", Email: "dave@example.com", Password: "goodpass", Cluster: "1", ClusterLead: "Eve",
	})

	_, _, errWrongPass := svc.Login(context.Background(), "dave@example.com", "badpass")
	_, _, errUnknown := svc.Login(context.Background(), "ghost@example.com", "whatever")

	if errWrongPass != domain.ErrInvalidCredentials {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", errWrongPass)
	}
	if errUnknown != errWrongPass {
		t.Fatalf("login errors must be indistinguishable: %v vs %v", errWrongPass, errUnknown)
	}
}

func TestAuthService_Login_DeactivatedUser(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo, newStubOTPStore(), &stubMailer{})

	_, _ = svc.Register(context.Background(), ports.RegisterInput{
		Name: "Fay", Email: "fay@example.com", Password: "pw", Cluster: "3", ClusterLead: "Gil",
	})
	if _, err := repo.ToggleActive(context.Background(), "fay@example.com"); err != nil {
		t.Fatalf("toggle failed: %v", err)
	}

	if _, _, err := svc.Login(context.Background(), "fay@example.com", "pw"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials for deactivated user, got %v", err)
	}
}

func TestAuthService_OTPFlow(t *testing.T) {
	repo := newStubUserRepo()
	otp := newStubOTPStore()
	mail := &stubMailer{}
	svc := newAuthService(repo, otp, mail)

	_, _ = svc.Register(context.Background(), ports.RegisterInput{
		Name: "Hana", Email: "hana@example.com", Password: "oldpass", Cluster: "4", ClusterLead: "Ivo",
	})

	if err := svc.SendOTP(context.Background(), "hana@example.com"); err != nil {
		t.Fatalf("SendOTP failed: %v", err)
	}
	if len(mail.sent) != 1 || mail.sent[0].To[0] != "hana@example.com" {
		t.Fatalf("expected one otp mail to hana, got %+v", mail.sent)
	}
	code := otp.codes["hana@example.com"]
	if len(code) != 6 {
		t.Fatalf("expected a six-digit code, got %q", code)
	}

	// Wrong code fails and burns the stored one.
	wrong := "000000"
	if code == wrong {
		wrong = "111111"
	}
	if err := svc.ResetPassword(context.Background(), "hana@example.com", wrong, "newpass"); err != domain.ErrInvalidOTP {
		t.Fatalf("expected ErrInvalidOTP for wrong code, got %v", err)
	}

	// Re-issue and use the right code.
	if err := svc.SendOTP(context.Background(), "hana@example.com"); err != nil {
		t.Fatalf("SendOTP failed: %v", err)
	}
	code = otp.codes["hana@example.com"]
	if err := svc.ResetPassword(context.Background(), "hana@example.com", code, "newpass"); err != nil {
		t.Fatalf("ResetPassword failed: %v", err)
	}

	if _, _, err := svc.Login(context.Background(), "hana@example.com", "oldpass"); err != domain.ErrInvalidCredentials {
		t.Fatalf("old password should no longer work, got %v", err)
	}
	if _, _, err := svc.Login(context.Background(), "hana@example.com", "newpass"); err != nil {
		t.Fatalf("new password should work: %v", err)
	}
}

func TestAuthService_SendOTP_UnknownEmail(t *testing.T) {
	svc := newAuthService(newStubUserRepo(), newStubOTPStore(), &stubMailer{})

	if err := svc.SendOTP(context.Background(), "nobody@example.com"); err != domain.ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
