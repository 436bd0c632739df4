package records

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type Store interface {
	First() (*HealthRecord, error)
	Update(id string, patch RecordPatch) (*HealthRecord, error)
}

type Handler struct {
	repo Store
}

func NewHandler(repo Store) *Handler { return &Handler{repo: repo} }

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/api/health-record", h.get)
	r.PATCH("/api/health-record/:id", h.update)
}

// get devuelve la primera ficha; la app maneja un paciente por instalación.
func (h *Handler) get(c *gin.Context) {
	rec, err := h.repo.First()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch health record"})
		return
	}
	if rec == nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Health record not found"})
		return
	}
	c.JSON(http.StatusOK, rec)
}

func (h *Handler) update(c *gin.Context) {
	var patch RecordPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Datos inválidos"})
		return
	}
	rec, err := h.repo.Update(c.Param("id"), patch)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update health record"})
		return
	}
	if rec == nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Health record not found"})
		return
	}
	c.JSON(http.StatusOK, rec)
}
