package analysis

import (
	"context"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"meditranslate-backend/files"
	"meditranslate-backend/login"
	"meditranslate-backend/translator"
)

// El límite lo impone la capa de subida, no el analizador.
const maxUploadBytes = 10 * 1024 * 1024

type Store interface {
	Create(a *ClinicalAnalysis) error
	All() ([]ClinicalAnalysis, error)
	ByID(id string) (*ClinicalAnalysis, error)
}

// SecondOpinion es el cliente de IA opcional; puede ser nil y el análisis
// sigue siendo puramente determinista.
type SecondOpinion interface {
	AnalyzeHistory(ctx context.Context, content string) (string, error)
}

type Handler struct {
	repo   Store
	engine *translator.Engine
	ai     SecondOpinion
}

func NewHandler(repo Store, engine *translator.Engine, ai SecondOpinion) *Handler {
	return &Handler{repo: repo, engine: engine, ai: ai}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.POST("/api/upload-clinical-file", h.upload)
	r.GET("/api/clinical-analyses", h.list)
	r.GET("/api/clinical-analyses/:id", h.get)
}

func (h *Handler) upload(c *gin.Context) {
	upFile, err := c.FormFile("clinicalFile")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "No se ha subido ningún archivo"})
		return
	}
	if upFile.Size <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "El archivo está vacío"})
		return
	}
	if upFile.Size > maxUploadBytes {
		c.JSON(http.StatusBadRequest, gin.H{"message": "El archivo supera el límite de 10MB"})
		return
	}

	ext := strings.ToLower(filepath.Ext(upFile.Filename))
	mime := upFile.Header.Get("Content-Type")
	fileType := ""
	switch {
	case ext == ".pdf" || mime == "application/pdf":
		fileType = "pdf"
	case ext == ".csv" || strings.Contains(mime, "csv"):
		fileType = "csv"
	default:
		c.JSON(http.StatusBadRequest, gin.H{"message": "Solo se permiten archivos PDF y CSV"})
		return
	}

	tmpDir := "./tmp"
	_ = os.MkdirAll(tmpDir, 0o755)
	tmp := filepath.Join(tmpDir, uuid.NewString()+ext)
	if err := c.SaveUploadedFile(upFile, tmp); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error al analizar el archivo médico"})
		return
	}
	defer os.Remove(tmp)

	var content string
	if fileType == "pdf" {
		content, err = files.ExtractPDFText(tmp, 0)
	} else {
		content, err = files.ReadTextFile(tmp, 0)
	}
	if err != nil {
		log.Printf("[ANALYSIS] error extrayendo texto de %s: %v", upFile.Filename, err)
		c.JSON(http.StatusBadRequest, gin.H{"message": "No se pudo leer el contenido del archivo"})
		return
	}

	result := h.engine.Analyze(content, fileType)
	analysisText := result.Analysis

	// Segunda opinión de IA, sólo si está habilitada; el fallo se ignora y
	// queda el resultado determinista.
	if h.ai != nil {
		if extra, err := h.ai.AnalyzeHistory(c, content); err == nil && strings.TrimSpace(extra) != "" {
			analysisText += "\n\nLectura complementaria: " + extra
		} else if err != nil {
			log.Printf("[ANALYSIS] segunda opinión no disponible: %v", err)
		}
	}

	userID, _ := login.UserIDFromRequest(c)
	stored := &ClinicalAnalysis{
		ID:              uuid.NewString(),
		FileName:        upFile.Filename,
		FileType:        fileType,
		OriginalContent: truncate(content, 10000),
		Analysis:        analysisText,
		KeyFindings:     result.KeyFindings,
		Confidence:      result.Confidence,
		UserID:          userID,
		CreatedAt:       time.Now(),
	}
	if err := h.repo.Create(stored); err != nil {
		log.Printf("[ANALYSIS] error guardando análisis: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error al analizar el archivo médico"})
		return
	}
	c.JSON(http.StatusOK, stored)
}

func (h *Handler) list(c *gin.Context) {
	items, err := h.repo.All()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch clinical analyses"})
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *Handler) get(c *gin.Context) {
	a, err := h.repo.ByID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch clinical analysis"})
		return
	}
	if a == nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Clinical analysis not found"})
		return
	}
	c.JSON(http.StatusOK, a)
}

// truncate corta a lo sumo n runas sin partir una secuencia UTF-8.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n])
}
