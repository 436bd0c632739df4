package diagnoses

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"meditranslate-backend/login"
	"meditranslate-backend/translator"
)

// Store es lo que el handler necesita de la persistencia; el repositorio
// MySQL lo implementa y los tests usan uno en memoria.
type Store interface {
	Create(d *Diagnosis) error
	All() ([]Diagnosis, error)
	ByID(id string) (*Diagnosis, error)
}

type Handler struct {
	repo   Store
	engine *translator.Engine
}

func NewHandler(repo Store, engine *translator.Engine) *Handler {
	return &Handler{repo: repo, engine: engine}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.POST("/api/translate", h.translate)
	r.GET("/api/diagnoses", h.list)
	r.GET("/api/diagnoses/:id", h.get)
}

type translateRequest struct {
	OriginalText string `json:"originalText"`
}

// translate acepta sesión opcional: con token el diagnóstico queda asociado
// al usuario, sin token se guarda anónimo.
func (h *Handler) translate(c *gin.Context) {
	var req translateRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.OriginalText) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "El texto original es requerido"})
		return
	}

	result := h.engine.Translate(req.OriginalText)

	userID, _ := login.UserIDFromRequest(c)
	d := &Diagnosis{
		ID:             uuid.NewString(),
		OriginalText:   req.OriginalText,
		TranslatedText: result.TranslatedText,
		Confidence:     result.Confidence,
		UserID:         userID,
		CreatedAt:      time.Now(),
	}
	if err := h.repo.Create(d); err != nil {
		log.Printf("[DIAGNOSES] error guardando traducción: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error al traducir el diagnóstico"})
		return
	}
	c.JSON(http.StatusOK, d)
}

func (h *Handler) list(c *gin.Context) {
	items, err := h.repo.All()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch diagnoses"})
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *Handler) get(c *gin.Context) {
	d, err := h.repo.ByID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch diagnosis"})
		return
	}
	if d == nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Diagnosis not found"})
		return
	}
	c.JSON(http.StatusOK, d)
}
