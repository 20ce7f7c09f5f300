package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/storely/catalog-api/internal/core/domain"
	"github.com/storely/catalog-api/internal/core/password"
	"github.com/storely/catalog-api/internal/core/token"
)

// ---------------------------------------------------------------------------
// In-memory repositories
// ---------------------------------------------------------------------------

type memUserRepo struct {
	users  map[string]*domain.User
	nextID int
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[string]*domain.User)}
}

func (r *memUserRepo) Create(_ context.Context, u *domain.User) (*domain.User, error) {
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return nil, domain.ErrEmailTaken
		}
	}
	r.nextID++
	clone := *u
	clone.ID = fmt.Sprintf("user-%d", r.nextID)
	r.users[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *memUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *memUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *memUserRepo) List(_ context.Context) ([]domain.User, error) {
	out := make([]domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, *u)
	}
	return out, nil
}

type memProductRepo struct {
	products map[string]*domain.Product
	nextID   int
}

func newMemProductRepo() *memProductRepo {
	return &memProductRepo{products: make(map[string]*domain.Product)}
}

func (r *memProductRepo) Create(_ context.Context, p *domain.Product) (*domain.Product, error) {
	r.nextID++
	clone := *p
	clone.ID = fmt.Sprintf("product-%d", r.nextID)
	r.products[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *memProductRepo) FindByID(_ context.Context, id string) (*domain.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *memProductRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.products[id]; !ok {
		return domain.ErrProductNotFound
	}
	delete(r.products, id)
	return nil
}

func (r *memProductRepo) List(_ context.Context) ([]domain.Product, error) {
	out := make([]domain.Product, 0, len(r.products))
	for _, p := range r.products {
		out = append(out, *p)
	}
	return out, nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func newTestRouter() http.Handler {
	deps := Dependencies{
		Users:    newMemUserRepo(),
		Products: newMemProductRepo(),
		Tokens:   token.NewManager("test-secret", time.Hour),
		Hasher:   password.NewHasher(bcrypt.MinCost),
		Registry: prometheus.NewRegistry(),
	}
	return NewRouter(deps, zerolog.Nop())
}

func do(t *testing.T, h http.Handler, method, target, body, bearer string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	resp := map[string]any{}
	if rec.Body.Len() > 0 {
		_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	}
	return rec, resp
}

func registerAndLogin(t *testing.T, h http.Handler, name, email, pass, role string) (userID, bearer string) {
	t.Helper()

	body := fmt.Sprintf(`{"name":%q,"email":%q,"password":%q,"role":%q}`, name, email, pass, role)
	if role == "" {
		body = fmt.Sprintf(`{"name":%q,"email":%q,"password":%q}`, name, email, pass)
	}
	rec, resp := do(t, h, http.MethodPost, "/auth/register", body, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("register %s: expected 201, got %d (%s)", email, rec.Code, rec.Body.String())
	}
	user := resp["user"].(map[string]any)
	userID = user["id"].(string)

	rec, resp = do(t, h, http.MethodPost, "/auth/login",
		fmt.Sprintf(`{"email":%q,"password":%q}`, email, pass), "")
	if rec.Code != http.StatusOK {
		t.Fatalf("login %s: expected 200, got %d (%s)", email, rec.Code, rec.Body.String())
	}
	return userID, resp["token"].(string)
}

// ---------------------------------------------------------------------------
// End-to-end scenario
// ---------------------------------------------------------------------------

func TestRouter_EndToEnd(t *testing.T) {
	h := newTestRouter()

	// Register an admin, log in, exercise the full product lifecycle.
	adminID, adminToken := registerAndLogin(t, h, "A", "a@x.com", "secret1", "admin")

	rec, resp := do(t, h, http.MethodGet, "/api/users/me", "", adminToken)
	if rec.Code != http.StatusOK {
		t.Fatalf("me: expected 200, got %d", rec.Code)
	}
	me := resp["user"].(map[string]any)
	if me["role"] != "admin" || me["id"] != adminID {
		t.Fatalf("unexpected identity: %+v", me)
	}

	rec, resp = do(t, h, http.MethodPost, "/api/products", `{"name":"P","price":10}`, adminToken)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create product: expected 201, got %d (%s)", rec.Code, rec.Body.String())
	}
	product := resp["product"].(map[string]any)
	if product["created_by"] != adminID {
		t.Fatalf("expected created_by %s, got %v", adminID, product["created_by"])
	}
	productID := product["id"].(string)

	rec, _ = do(t, h, http.MethodDelete, "/api/products/"+productID, "", adminToken)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete product: expected 200, got %d", rec.Code)
	}

	rec, _ = do(t, h, http.MethodDelete, "/api/products/"+productID, "", adminToken)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("second delete: expected 404, got %d", rec.Code)
	}
}

func TestRouter_DuplicateRegistration(t *testing.T) {
	h := newTestRouter()

	body := `{"name":"A","email":"a@x.com","password":"secret1"}`
	rec, _ := do(t, h, http.MethodPost, "/auth/register", body, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("first register: expected 201, got %d", rec.Code)
	}
	rec, resp := do(t, h, http.MethodPost, "/auth/register", body, "")
	if rec.Code != http.StatusConflict {
		t.Fatalf("second register: expected 409, got %d", rec.Code)
	}
	if _, ok := resp["message"]; !ok {
		t.Fatalf("expected message envelope, got %s", rec.Body.String())
	}
}

func TestRouter_LoginFailuresAreIndistinguishable(t *testing.T) {
	h := newTestRouter()
	registerAndLogin(t, h, "A", "a@x.com", "secret1", "")

	recWrong, respWrong := do(t, h, http.MethodPost, "/auth/login",
		`{"email":"a@x.com","password":"wrong"}`, "")
	recUnknown, respUnknown := do(t, h, http.MethodPost, "/auth/login",
		`{"email":"ghost@x.com","password":"whatever"}`, "")

	if recWrong.Code != http.StatusUnauthorized || recUnknown.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401/401, got %d/%d", recWrong.Code, recUnknown.Code)
	}
	if respWrong["message"] != respUnknown["message"] {
		t.Fatalf("login failure messages differ: %v vs %v", respWrong["message"], respUnknown["message"])
	}
}

func TestRouter_PublicProductListNeverRequiresAuth(t *testing.T) {
	h := newTestRouter()

	rec, resp := do(t, h, http.MethodGet, "/api/products", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if _, ok := resp["products"].([]any); !ok {
		t.Fatalf("expected products array, got %s", rec.Body.String())
	}
}

func TestRouter_RoleGates(t *testing.T) {
	h := newTestRouter()

	_, userToken := registerAndLogin(t, h, "U", "u@x.com", "pass", "user")
	_, managerToken := registerAndLogin(t, h, "M", "m@x.com", "pass", "manager")
	_, adminToken := registerAndLogin(t, h, "A", "a@x.com", "pass", "admin")

	// No token at all.
	rec, _ := do(t, h, http.MethodPost, "/api/products", `{"name":"P","price":1}`, "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("create without token: expected 401, got %d", rec.Code)
	}

	// user role cannot create.
	rec, _ = do(t, h, http.MethodPost, "/api/products", `{"name":"P","price":1}`, userToken)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("create as user: expected 403, got %d", rec.Code)
	}

	// manager can create but not delete.
	rec, resp := do(t, h, http.MethodPost, "/api/products", `{"name":"P","price":1}`, managerToken)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create as manager: expected 201, got %d", rec.Code)
	}
	productID := resp["product"].(map[string]any)["id"].(string)

	rec, _ = do(t, h, http.MethodDelete, "/api/products/"+productID, "", managerToken)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("delete as manager: expected 403, got %d", rec.Code)
	}

	// admin can delete.
	rec, _ = do(t, h, http.MethodDelete, "/api/products/"+productID, "", adminToken)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete as admin: expected 200, got %d", rec.Code)
	}

	// user listing is admin only.
	rec, _ = do(t, h, http.MethodGet, "/api/users", "", userToken)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("list users as user: expected 403, got %d", rec.Code)
	}
	rec, resp = do(t, h, http.MethodGet, "/api/users", "", adminToken)
	if rec.Code != http.StatusOK {
		t.Fatalf("list users as admin: expected 200, got %d", rec.Code)
	}
	if resp["count"] != float64(3) {
		t.Fatalf("expected count 3, got %v", resp["count"])
	}
}

func TestRouter_BadToken(t *testing.T) {
	h := newTestRouter()

	rec, _ := do(t, h, http.MethodGet, "/api/users/me", "", "garbage-token")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestRouter_MissingFieldsAreBadRequest(t *testing.T) {
	h := newTestRouter()

	rec, _ := do(t, h, http.MethodPost, "/auth/register", `{"name":"A"}`, "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("register: expected 400, got %d", rec.Code)
	}
	rec, _ = do(t, h, http.MethodPost, "/auth/login", `{"email":"a@x.com"}`, "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("login: expected 400, got %d", rec.Code)
	}
}

func TestRouter_Liveness(t *testing.T) {
	h := newTestRouter()

	rec, resp := do(t, h, http.MethodGet, "/health", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if resp["status"] != "ok" {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}
