package login

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

type memoryUsers struct {
	byEmail map[string]*User
	byID    map[string]*User
}

func newMemoryUsers() *memoryUsers {
	return &memoryUsers{byEmail: map[string]*User{}, byID: map[string]*User{}}
}

func (m *memoryUsers) GetByEmail(email string) (*User, error) { return m.byEmail[email], nil }
func (m *memoryUsers) GetByID(id string) (*User, error)       { return m.byID[id], nil }
func (m *memoryUsers) Create(u *User) error {
	m.byEmail[u.Email] = u
	m.byID[u.ID] = u
	return nil
}
func (m *memoryUsers) UpdateLastLogin(id string) error { return nil }

func setupRouter(users UserStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewHandler(users).RegisterRoutes(r)
	return r
}

func postJSON(r *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	b, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRegisterLoginMe(t *testing.T) {
	r := setupRouter(newMemoryUsers())

	w := postJSON(r, "/api/auth/register", map[string]string{
		"email": "Ana@Example.com", "password": "secreta123", "fullName": "Ana Pérez",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("register: esperaba 201, obtuvo %d: %s", w.Code, w.Body.String())
	}

	w = postJSON(r, "/api/auth/login", map[string]string{
		"email": "ana@example.com", "password": "secreta123",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("login: esperaba 200, obtuvo %d: %s", w.Code, w.Body.String())
	}
	var resp struct {
		Token string         `json:"token"`
		User  map[string]any `json:"user"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("respuesta inválida: %v", err)
	}
	if resp.Token == "" {
		t.Fatalf("falta el token en la respuesta")
	}
	if _, exists := resp.User["password"]; exists {
		t.Fatalf("la respuesta no debe exponer la contraseña")
	}

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+resp.Token)
	w2 := httptest.NewRecorder()
	r.ServeHTTP(w2, req)
	if w2.Code != http.StatusOK {
		t.Fatalf("me: esperaba 200, obtuvo %d: %s", w2.Code, w2.Body.String())
	}
	var me map[string]any
	_ = json.Unmarshal(w2.Body.Bytes(), &me)
	if me["email"] != "ana@example.com" {
		t.Fatalf("usuario inesperado: %v", me)
	}
}

type failingLastLogin struct {
	*memoryUsers
}

func (f *failingLastLogin) UpdateLastLogin(id string) error {
	return errors.New("conexión perdida")
}

func TestLoginSurvivesLastLoginFailure(t *testing.T) {
	users := newMemoryUsers()
	r := setupRouter(&failingLastLogin{users})

	w := postJSON(r, "/api/auth/register", map[string]string{
		"email": "ana@example.com", "password": "secreta123", "fullName": "Ana Pérez",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("register: esperaba 201, obtuvo %d", w.Code)
	}

	w = postJSON(r, "/api/auth/login", map[string]string{
		"email": "ana@example.com", "password": "secreta123",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("el fallo al registrar last_login no debe bloquear el login: %d: %s", w.Code, w.Body.String())
	}
}

func TestLoginWrongPassword(t *testing.T) {
	users := newMemoryUsers()
	r := setupRouter(users)

	w := postJSON(r, "/api/auth/register", map[string]string{
		"email": "ana@example.com", "password": "secreta123", "fullName": "Ana Pérez",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("register: esperaba 201, obtuvo %d", w.Code)
	}
	if u := users.byEmail["ana@example.com"]; u == nil || u.Password == "secreta123" {
		t.Fatalf("la contraseña debe guardarse con hash")
	}

	w = postJSON(r, "/api/auth/login", map[string]string{
		"email": "ana@example.com", "password": "otra",
	})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("esperaba 401, obtuvo %d", w.Code)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	r := setupRouter(newMemoryUsers())
	body := map[string]string{"email": "ana@example.com", "password": "secreta123", "fullName": "Ana"}
	if w := postJSON(r, "/api/auth/register", body); w.Code != http.StatusCreated {
		t.Fatalf("primer registro falló: %d", w.Code)
	}
	if w := postJSON(r, "/api/auth/register", body); w.Code != http.StatusBadRequest {
		t.Fatalf("esperaba 400 por email duplicado, obtuvo %d", w.Code)
	}
}

func TestForgedTokenRejected(t *testing.T) {
	r := setupRouter(newMemoryUsers())
	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer aaa.bbb.ccc")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("esperaba 401 con token falsificado, obtuvo %d", w.Code)
	}
}

func TestTokenRoundTrip(t *testing.T) {
	u := &User{ID: "user-1", Email: "ana@example.com"}
	token, err := GenerateToken(u)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	id, ok := UserIDFromToken(token)
	if !ok || id != "user-1" {
		t.Fatalf("token no validó: ok=%v id=%q", ok, id)
	}
	if _, ok := UserIDFromToken(token + "x"); ok {
		t.Fatalf("un token alterado no debe validar")
	}
}
