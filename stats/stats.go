package stats

import (
	"database/sql"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

var db *sql.DB

// Init sets the DB connection for stats queries
func Init(database *sql.DB) {
	db = database
}

// UsageStats resume la actividad del servicio para el panel de uso.
type UsageStats struct {
	Users        UserStats        `json:"users"`
	Translations TranslationStats `json:"translations"`
	Analyses     AnalysisStats    `json:"analyses"`
}

type UserStats struct {
	Total        int `json:"total"`
	NewThisMonth int `json:"new_this_month"`
}

type TranslationStats struct {
	Total         int     `json:"total"`
	ThisMonth     int     `json:"this_month"`
	AvgConfidence float64 `json:"avg_confidence"`
}

type AnalysisStats struct {
	Total         int     `json:"total"`
	PDFCount      int     `json:"pdf_count"`
	CSVCount      int     `json:"csv_count"`
	AvgConfidence float64 `json:"avg_confidence"`
}

func RegisterRoutes(r *gin.Engine) {
	r.GET("/api/stats", getUsageStats)
}

func getUsageStats(c *gin.Context) {
	if db == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Estadísticas no disponibles"})
		return
	}

	var stats UsageStats
	monthStart := time.Now().Format("2006-01") + "-01"

	if err := db.QueryRow(`SELECT COUNT(*) FROM users`).Scan(&stats.Users.Total); err != nil {
		log.Printf("[STATS] error contando usuarios: %v", err)
	}
	if err := db.QueryRow(`SELECT COUNT(*) FROM users WHERE created_at >= ?`, monthStart).Scan(&stats.Users.NewThisMonth); err != nil {
		log.Printf("[STATS] error contando usuarios del mes: %v", err)
	}

	if err := db.QueryRow(`SELECT COUNT(*), COALESCE(AVG(confidence), 0) FROM diagnoses`).
		Scan(&stats.Translations.Total, &stats.Translations.AvgConfidence); err != nil {
		log.Printf("[STATS] error agregando traducciones: %v", err)
	}
	if err := db.QueryRow(`SELECT COUNT(*) FROM diagnoses WHERE created_at >= ?`, monthStart).
		Scan(&stats.Translations.ThisMonth); err != nil {
		log.Printf("[STATS] error contando traducciones del mes: %v", err)
	}

	if err := db.QueryRow(`SELECT COUNT(*), COALESCE(AVG(confidence), 0) FROM clinical_analyses`).
		Scan(&stats.Analyses.Total, &stats.Analyses.AvgConfidence); err != nil {
		log.Printf("[STATS] error agregando análisis: %v", err)
	}
	if err := db.QueryRow(`SELECT COUNT(*) FROM clinical_analyses WHERE file_type = 'pdf'`).
		Scan(&stats.Analyses.PDFCount); err != nil {
		log.Printf("[STATS] error contando análisis PDF: %v", err)
	}
	if err := db.QueryRow(`SELECT COUNT(*) FROM clinical_analyses WHERE file_type = 'csv'`).
		Scan(&stats.Analyses.CSVCount); err != nil {
		log.Printf("[STATS] error contando análisis CSV: %v", err)
	}

	c.JSON(http.StatusOK, stats)
}
