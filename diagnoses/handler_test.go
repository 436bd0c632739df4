package diagnoses

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"meditranslate-backend/translator"
)

type memoryStore struct {
	items []Diagnosis
}

func (m *memoryStore) Create(d *Diagnosis) error {
	m.items = append(m.items, *d)
	return nil
}

func (m *memoryStore) All() ([]Diagnosis, error) { return m.items, nil }

func (m *memoryStore) ByID(id string) (*Diagnosis, error) {
	for i := range m.items {
		if m.items[i].ID == id {
			return &m.items[i], nil
		}
	}
	return nil, nil
}

func setupRouter(t *testing.T, store Store) *gin.Engine {
	t.Helper()
	engine, err := translator.NewEngine()
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewHandler(store, engine).RegisterRoutes(r)
	return r
}

func TestTranslateEndpoint(t *testing.T) {
	store := &memoryStore{}
	r := setupRouter(t, store)

	body, _ := json.Marshal(map[string]string{"originalText": "Gastritis aguda"})
	req := httptest.NewRequest(http.MethodPost, "/api/translate", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("esperaba 200, obtuvo %d: %s", w.Code, w.Body.String())
	}
	var resp Diagnosis
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("respuesta inválida: %v", err)
	}
	if resp.TranslatedText != "Inflamación del estómago que aparece de repente" {
		t.Fatalf("traducción inesperada: %q", resp.TranslatedText)
	}
	if resp.Confidence != 70 {
		t.Fatalf("confianza esperada 70, obtuvo %d", resp.Confidence)
	}
	if len(store.items) != 1 || store.items[0].OriginalText != "Gastritis aguda" {
		t.Fatalf("el diagnóstico no se persistió: %+v", store.items)
	}
}

func TestTranslateRequiresText(t *testing.T) {
	r := setupRouter(t, &memoryStore{})
	for _, body := range []string{`{}`, `{"originalText":"   "}`, `no-json`} {
		req := httptest.NewRequest(http.MethodPost, "/api/translate", bytes.NewReader([]byte(body)))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("body %q: esperaba 400, obtuvo %d", body, w.Code)
		}
	}
}

func TestGetDiagnosisNotFound(t *testing.T) {
	r := setupRouter(t, &memoryStore{})
	req := httptest.NewRequest(http.MethodGet, "/api/diagnoses/no-existe", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Fatalf("esperaba 404, obtuvo %d", w.Code)
	}
}

func TestListDiagnoses(t *testing.T) {
	store := &memoryStore{items: []Diagnosis{{ID: "d1", OriginalText: "asma"}}}
	r := setupRouter(t, store)
	req := httptest.NewRequest(http.MethodGet, "/api/diagnoses", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("esperaba 200, obtuvo %d", w.Code)
	}
	var list []Diagnosis
	if err := json.Unmarshal(w.Body.Bytes(), &list); err != nil || len(list) != 1 {
		t.Fatalf("lista inesperada: %s", w.Body.String())
	}
}
