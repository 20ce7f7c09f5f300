package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/storely/catalog-api/internal/core/domain"
	"github.com/storely/catalog-api/internal/core/token"
)

type stubUserRepo struct {
	users map[string]*domain.User
}

func newStubUserRepo(users ...*domain.User) *stubUserRepo {
	r := &stubUserRepo{users: make(map[string]*domain.User)}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *stubUserRepo) Create(_ context.Context, u *domain.User) (*domain.User, error) {
	r.users[u.ID] = u
	return u, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) List(_ context.Context) ([]domain.User, error) {
	out := make([]domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, *u)
	}
	return out, nil
}

func newTestContext(e *echo.Echo, authHeader string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set(echo.HeaderAuthorization, authHeader)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthenticate_ValidToken(t *testing.T) {
	e := echo.New()
	tokens := token.NewManager("secret", time.Hour)
	repo := newStubUserRepo(&domain.User{ID: "u1", Name: "Alice", Email: "alice@example.com", PasswordHash: "hash", Role: domain.RoleAdmin})

	signed, err := tokens.Issue("u1")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	c, rec := newTestContext(e, "Bearer "+signed)

	called := false
	mw := Authenticate(tokens, repo)
	handler := mw(func(c echo.Context) error {
		called = true
		user, ok := c.Get(ContextKeyUser).(domain.User)
		if !ok {
			t.Fatalf("user not set in context")
		}
		if user.ID != "u1" || user.Role != domain.RoleAdmin {
			t.Fatalf("unexpected user: %+v", user)
		}
		if user.PasswordHash != "" {
			t.Fatalf("password hash leaked into context")
		}
		if c.Get(ContextKeyRole) != domain.RoleAdmin {
			t.Fatalf("role not set")
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthenticate_MissingHeader(t *testing.T) {
	e := echo.New()
	tokens := token.NewManager("secret", time.Hour)
	c, rec := newTestContext(e, "")

	handler := Authenticate(tokens, newStubUserRepo())(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthenticate_WrongScheme(t *testing.T) {
	e := echo.New()
	tokens := token.NewManager("secret", time.Hour)
	c, rec := newTestContext(e, "Basic abc123")

	handler := Authenticate(tokens, newStubUserRepo())(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthenticate_InvalidToken(t *testing.T) {
	e := echo.New()
	tokens := token.NewManager("secret", time.Hour)
	c, rec := newTestContext(e, "Bearer not-a-token")

	handler := Authenticate(tokens, newStubUserRepo())(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthenticate_WrongSecret(t *testing.T) {
	e := echo.New()
	issuer := token.NewManager("other-secret", time.Hour)
	signed, _ := issuer.Issue("u1")

	tokens := token.NewManager("secret", time.Hour)
	c, rec := newTestContext(e, "Bearer "+signed)

	handler := Authenticate(tokens, newStubUserRepo())(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

// A token whose subject was deleted after issuance is rejected with 401, not
// passed through with an empty identity.
func TestAuthenticate_SubjectNoLongerExists(t *testing.T) {
	e := echo.New()
	tokens := token.NewManager("secret", time.Hour)
	signed, _ := tokens.Issue("deleted-user")

	c, rec := newTestContext(e, "Bearer "+signed)

	handler := Authenticate(tokens, newStubUserRepo())(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}
