package main

import (
	"log"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"meditranslate-backend/analysis"
	"meditranslate-backend/conn"
	"meditranslate-backend/diagnoses"
	"meditranslate-backend/login"
	"meditranslate-backend/migrations"
	"meditranslate-backend/openai"
	"meditranslate-backend/quicktranslations"
	"meditranslate-backend/records"
	"meditranslate-backend/stats"
	"meditranslate-backend/translator"
)

func main() {
	_ = godotenv.Load()

	db, err := conn.NewMySQL()
	if err != nil {
		log.Fatalf("no se pudo conectar a MySQL: %v", err)
	}
	migrations.Init(db)
	if err := migrations.Migrate(); err != nil {
		log.Fatalf("error al migrar el esquema: %v", err)
	}
	if err := migrations.SeedQuickTranslations(); err != nil {
		log.Printf("[SEED] traducciones rápidas: %v", err)
	}
	if err := migrations.SeedSampleHealthRecord(); err != nil {
		log.Printf("[SEED] ficha de ejemplo: %v", err)
	}

	engine, err := translator.NewEngine()
	if err != nil {
		log.Fatalf("diccionario clínico inválido: %v", err)
	}

	r := gin.Default()
	r.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	login.NewHandler(login.NewRepository(db)).RegisterRoutes(r)
	diagnoses.NewHandler(diagnoses.NewRepository(db), engine).RegisterRoutes(r)

	var second analysis.SecondOpinion
	if ai := openai.NewClient(); ai != nil {
		log.Printf("[AI] segunda opinión habilitada con el modelo %s", ai.Model)
		second = ai
	}
	analysis.NewHandler(analysis.NewRepository(db), engine, second).RegisterRoutes(r)

	records.NewHandler(records.NewRepository(db)).RegisterRoutes(r)
	quicktranslations.NewHandler(quicktranslations.NewRepository(db)).RegisterRoutes(r)

	stats.Init(db)
	stats.RegisterRoutes(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	if err := r.Run(":" + port); err != nil {
		log.Fatal(err)
	}
}
