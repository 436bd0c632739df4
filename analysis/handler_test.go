package analysis

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/gin-gonic/gin"

	"meditranslate-backend/translator"
)

type memoryStore struct {
	items []ClinicalAnalysis
}

func (m *memoryStore) Create(a *ClinicalAnalysis) error {
	m.items = append(m.items, *a)
	return nil
}

func (m *memoryStore) All() ([]ClinicalAnalysis, error) { return m.items, nil }

func (m *memoryStore) ByID(id string) (*ClinicalAnalysis, error) {
	for i := range m.items {
		if m.items[i].ID == id {
			return &m.items[i], nil
		}
	}
	return nil, nil
}

type fakeAI struct{ reply string }

func (f *fakeAI) AnalyzeHistory(ctx context.Context, content string) (string, error) {
	return f.reply, nil
}

func setupRouter(t *testing.T, store Store, ai SecondOpinion) *gin.Engine {
	t.Helper()
	engine, err := translator.NewEngine()
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewHandler(store, engine, ai).RegisterRoutes(r)
	t.Cleanup(func() { _ = os.RemoveAll("./tmp") })
	return r
}

func multipartUpload(t *testing.T, fileName, content string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("clinicalFile", fileName)
	if err != nil {
		t.Fatalf("CreateFormFile: %v", err)
	}
	if _, err := part.Write([]byte(content)); err != nil {
		t.Fatalf("escribiendo archivo: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("cerrando multipart: %v", err)
	}
	return &buf, mw.FormDataContentType()
}

func TestUploadCSVEndToEnd(t *testing.T) {
	store := &memoryStore{}
	r := setupRouter(t, store, nil)

	csvDoc := "Presión Sistólica,Presión Diastólica\n120,80\n130,85\n140,90\n"
	body, contentType := multipartUpload(t, "controles.csv", csvDoc)

	req := httptest.NewRequest(http.MethodPost, "/api/upload-clinical-file", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("esperaba 200, obtuvo %d: %s", w.Code, w.Body.String())
	}
	var resp ClinicalAnalysis
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("respuesta inválida: %v", err)
	}
	if resp.FileType != "csv" || resp.FileName != "controles.csv" {
		t.Fatalf("metadatos inesperados: %+v", resp)
	}
	wantVital := "Presión arterial (3 registros): Promedio 130/85 mmHg, Rango 120-140/80-90 mmHg"
	if len(resp.KeyFindings.Vitals) != 1 || resp.KeyFindings.Vitals[0] != wantVital {
		t.Fatalf("vitales inesperados: %v", resp.KeyFindings.Vitals)
	}
	if resp.Confidence != 80 {
		t.Fatalf("confianza esperada 80, obtuvo %d", resp.Confidence)
	}
	if len(store.items) != 1 {
		t.Fatalf("el análisis no se persistió")
	}
}

func TestUploadRejectsUnsupportedType(t *testing.T) {
	r := setupRouter(t, &memoryStore{}, nil)
	body, contentType := multipartUpload(t, "notas.txt", "hola")
	req := httptest.NewRequest(http.MethodPost, "/api/upload-clinical-file", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("esperaba 400, obtuvo %d: %s", w.Code, w.Body.String())
	}
}

func TestUploadRequiresFile(t *testing.T) {
	r := setupRouter(t, &memoryStore{}, nil)
	req := httptest.NewRequest(http.MethodPost, "/api/upload-clinical-file", strings.NewReader(""))
	req.Header.Set("Content-Type", "multipart/form-data; boundary=x")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("esperaba 400, obtuvo %d", w.Code)
	}
}

func TestUploadAppendsSecondOpinion(t *testing.T) {
	store := &memoryStore{}
	r := setupRouter(t, store, &fakeAI{reply: "El paciente se encuentra estable."})

	csvDoc := "Peso\n70\n71\n"
	body, contentType := multipartUpload(t, "peso.csv", csvDoc)
	req := httptest.NewRequest(http.MethodPost, "/api/upload-clinical-file", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("esperaba 200, obtuvo %d: %s", w.Code, w.Body.String())
	}
	var resp ClinicalAnalysis
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if !strings.Contains(resp.Analysis, "Lectura complementaria: El paciente se encuentra estable.") {
		t.Fatalf("falta la segunda opinión en el análisis: %q", resp.Analysis)
	}
	if !strings.Contains(resp.Analysis, "Resumen del historial clínico") {
		t.Fatalf("el resumen determinista debe conservarse: %q", resp.Analysis)
	}
}

func TestTruncateKeepsRuneBoundaries(t *testing.T) {
	s := strings.Repeat("ó", 6)
	got := truncate(s, 4)
	if got != strings.Repeat("ó", 4) {
		t.Fatalf("corte inesperado: %q", got)
	}
	if !utf8.ValidString(got) {
		t.Fatalf("el corte dejó UTF-8 inválido: %q", got)
	}
	if short := truncate("abc", 10); short != "abc" {
		t.Fatalf("no debía cortar: %q", short)
	}
}

func TestGetAnalysisNotFound(t *testing.T) {
	r := setupRouter(t, &memoryStore{}, nil)
	req := httptest.NewRequest(http.MethodGet, "/api/clinical-analyses/no-existe", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Fatalf("esperaba 404, obtuvo %d", w.Code)
	}
}
