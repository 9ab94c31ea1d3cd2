package auth

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/BruksfildServices01/turnera-api/internal/access"
	"github.com/BruksfildServices01/turnera-api/internal/domain/identity"
	"github.com/BruksfildServices01/turnera-api/internal/httperr"
	"github.com/BruksfildServices01/turnera-api/internal/listing"
	"github.com/BruksfildServices01/turnera-api/internal/models"
	"github.com/BruksfildServices01/turnera-api/internal/token"
)

// ------------------------------------------------------
// in-memory identity repository
// ------------------------------------------------------

type memoryRepo struct {
	mu       sync.Mutex
	users    map[uint]*models.User
	nextID   uint
	doctors  map[uint]bool
	patients map[string]bool
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{
		users:    map[uint]*models.User{},
		doctors:  map[uint]bool{},
		patients: map[string]bool{},
	}
}

func (m *memoryRepo) FindByEmail(_ context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, identity.ErrUserNotFound
}

func (m *memoryRepo) FindByID(_ context.Context, id uint, vis listing.Visibility) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok || (vis == listing.ActiveOnly && !u.Active) {
		return nil, identity.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *memoryRepo) Create(_ context.Context, u *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.users {
		if existing.Email == u.Email {
			return identity.ErrEmailTaken
		}
	}
	m.nextID++
	u.ID = m.nextID
	u.CreatedAt = time.Now()
	cp := *u
	m.users[u.ID] = &cp
	return nil
}

func (m *memoryRepo) Update(_ context.Context, u *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *u
	m.users[u.ID] = &cp
	return nil
}

func (m *memoryRepo) List(context.Context, listing.Params, listing.Visibility) ([]models.User, int64, error) {
	return nil, 0, nil
}

func (m *memoryRepo) DoctorExists(_ context.Context, id uint) (bool, error) {
	return m.doctors[id], nil
}

func (m *memoryRepo) PatientExists(_ context.Context, dni string) (bool, error) {
	return m.patients[dni], nil
}

func (m *memoryRepo) deactivate(id uint) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[id].Active = false
}

// ------------------------------------------------------
// helpers
// ------------------------------------------------------

type fixture struct {
	repo     *memoryRepo
	tokens   *token.Issuer
	register *Register
	login    *Login
	validate *Validate
}

func newFixture() *fixture {
	repo := newMemoryRepo()
	tokens := token.NewIssuer("test-secret", time.Hour)
	return &fixture{
		repo:     repo,
		tokens:   tokens,
		register: NewRegister(repo, tokens, 0, nil),
		login:    NewLogin(repo, tokens, nil),
		validate: NewValidate(repo),
	}
}

// ------------------------------------------------------
// tests
// ------------------------------------------------------

func TestRegisterLogin_RoundTrip(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	sess, err := f.register.Execute(ctx, RegisterInput{
		Email:    " Admin@Turnera.com ",
		Password: "123456",
		Role:     "admin",
		Name:     "Admin",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if sess.User.Email != "admin@turnera.com" {
		t.Errorf("email should be normalized, got %s", sess.User.Email)
	}

	logged, err := f.login.Execute(ctx, "admin@turnera.com", "123456")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	claims, err := f.tokens.Parse(logged.Token)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if claims.UserID != sess.User.ID {
		t.Errorf("expected sub %d, got %d", sess.User.ID, claims.UserID)
	}
	if claims.Role != access.RoleAdmin {
		t.Errorf("expected admin role, got %s", claims.Role)
	}
}

func TestRegister_DefaultsRoleAndName(t *testing.T) {
	f := newFixture()
	f.repo.patients["30111222"] = true

	sess, err := f.register.Execute(context.Background(), RegisterInput{
		Email:     "nuevo@turnera.com",
		Password:  "123456",
		Reference: "30111222",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if sess.User.Role != string(access.RolePaciente) {
		t.Errorf("expected paciente, got %s", sess.User.Role)
	}
	if sess.User.Name != "Usuario" {
		t.Errorf("expected default name, got %s", sess.User.Name)
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	in := RegisterInput{Email: "sec@turnera.com", Password: "123456", Role: "secretaria"}

	if _, err := f.register.Execute(ctx, in); err != nil {
		t.Fatal(err)
	}
	_, err := f.register.Execute(ctx, in)
	if httperr.KindOf(err) != httperr.KindConflict {
		t.Errorf("expected conflict, got %v", err)
	}
}

func TestRegister_DoctorReferenceMustExist(t *testing.T) {
	f := newFixture()

	_, err := f.register.Execute(context.Background(), RegisterInput{
		Email:     "doctor@turnera.com",
		Password:  "123456",
		Role:      "doctor",
		Reference: "1",
	})
	if httperr.KindOf(err) != httperr.KindInvalid {
		t.Errorf("expected invalid input, got %v", err)
	}
}

func TestRegister_PatientReferenceInToken(t *testing.T) {
	f := newFixture()
	f.repo.patients["12345678"] = true

	sess, err := f.register.Execute(context.Background(), RegisterInput{
		Email:     "paciente@turnera.com",
		Password:  "123456",
		Role:      "paciente",
		Reference: "12345678",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	claims, err := f.tokens.Parse(sess.Token)
	if err != nil {
		t.Fatal(err)
	}
	if claims.Reference != "12345678" {
		t.Errorf("expected idReferencia 12345678, got %q", claims.Reference)
	}
}

func TestRegister_AdminReferenceCleared(t *testing.T) {
	f := newFixture()

	sess, err := f.register.Execute(context.Background(), RegisterInput{
		Email:     "admin@turnera.com",
		Password:  "123456",
		Role:      "admin",
		Reference: "99",
	})
	if err != nil {
		t.Fatal(err)
	}
	if sess.User.Reference != "" {
		t.Errorf("admin must not carry a reference, got %q", sess.User.Reference)
	}
}

func TestLogin_SameErrorForUnknownEmailAndWrongPassword(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	if _, err := f.register.Execute(ctx, RegisterInput{Email: "a@turnera.com", Password: "123456", Role: "admin"}); err != nil {
		t.Fatal(err)
	}

	_, errWrong := f.login.Execute(ctx, "a@turnera.com", "bad-password")
	_, errUnknown := f.login.Execute(ctx, "nobody@turnera.com", "123456")

	if httperr.KindOf(errWrong) != httperr.KindUnauthorized || httperr.KindOf(errUnknown) != httperr.KindUnauthorized {
		t.Fatalf("expected unauthorized for both, got %v / %v", errWrong, errUnknown)
	}
	if errWrong.Error() != errUnknown.Error() {
		t.Errorf("messages differ: %q vs %q", errWrong, errUnknown)
	}
}

func TestLogin_InactiveUser(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	sess, err := f.register.Execute(ctx, RegisterInput{Email: "s@turnera.com", Password: "123456", Role: "secretaria"})
	if err != nil {
		t.Fatal(err)
	}
	f.repo.deactivate(sess.User.ID)

	_, err = f.login.Execute(ctx, "s@turnera.com", "123456")
	if !httperr.IsBusiness(err, "inactive_user") {
		t.Errorf("expected inactive_user, got %v", err)
	}

	if _, err := f.validate.Execute(ctx, sess.User.ID); httperr.KindOf(err) != httperr.KindNotFound {
		t.Errorf("validate should reject inactive users, got %v", err)
	}
}

func TestUpdateUser_RoleChangeValidatesReference(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.repo.doctors[1] = true

	sess, err := f.register.Execute(ctx, RegisterInput{Email: "s@turnera.com", Password: "123456", Role: "secretaria"})
	if err != nil {
		t.Fatal(err)
	}

	uc := NewUpdateUser(f.repo, 0, nil)
	admin := &access.Claims{UserID: 99, Role: access.RoleAdmin}

	doctor := "doctor"
	if _, err := uc.Execute(ctx, admin, sess.User.ID, UpdateUserInput{Role: &doctor}); httperr.KindOf(err) != httperr.KindInvalid {
		t.Errorf("doctor role without reference should fail, got %v", err)
	}

	ref := "1"
	view, err := uc.Execute(ctx, admin, sess.User.ID, UpdateUserInput{Role: &doctor, Reference: &ref})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if view.Role != "doctor" || view.Reference != "1" {
		t.Errorf("unexpected view %+v", view)
	}
}

func TestRegister_DomainCheckRejects(t *testing.T) {
	f := newFixture()
	f.register.WithDomainCheck(func(_ context.Context, email string) bool {
		return email != "ana@no-existe.test"
	})

	_, err := f.register.Execute(context.Background(), RegisterInput{Email: "ana@no-existe.test", Password: "123456"})
	if !httperr.IsBusiness(err, "invalid_email_domain") {
		t.Fatalf("expected invalid_email_domain, got %v", err)
	}
	if len(f.repo.users) != 0 {
		t.Error("no user should be stored")
	}
}
