package migrations

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"
)

var db *sql.DB

// Init sets the DB connection used by Migrate and the seed helpers.
func Init(database *sql.DB) {
	db = database
}

// Migrate creates required tables if they do not exist.
func Migrate() error {
	if db == nil {
		return fmt.Errorf("db is not initialized")
	}
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id CHAR(36) PRIMARY KEY,
			email VARCHAR(191) NOT NULL UNIQUE,
			password VARCHAR(191) NOT NULL,
			full_name VARCHAR(191) NOT NULL,
			role VARCHAR(50) NOT NULL DEFAULT 'patient',
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			last_login TIMESTAMP NULL
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;`,

		`CREATE TABLE IF NOT EXISTS diagnoses (
			id CHAR(36) PRIMARY KEY,
			original_text TEXT NOT NULL,
			translated_text TEXT NOT NULL,
			confidence INT NULL,
			user_id CHAR(36) NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;`,

		`CREATE TABLE IF NOT EXISTS health_records (
			id CHAR(36) PRIMARY KEY,
			patient_name VARCHAR(191) NOT NULL,
			age INT NULL,
			conditions JSON NULL,
			vital_signs JSON NULL,
			medications JSON NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;`,

		`CREATE TABLE IF NOT EXISTS quick_translations (
			id CHAR(36) PRIMARY KEY,
			medical VARCHAR(191) NOT NULL,
			simple VARCHAR(191) NOT NULL,
			category VARCHAR(100) NULL
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;`,

		`CREATE TABLE IF NOT EXISTS clinical_analyses (
			id CHAR(36) PRIMARY KEY,
			file_name VARCHAR(255) NOT NULL,
			file_type VARCHAR(10) NOT NULL,
			original_content MEDIUMTEXT NOT NULL,
			analysis TEXT NOT NULL,
			key_findings JSON NULL,
			confidence INT NULL,
			user_id CHAR(36) NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			return err
		}
	}
	return nil
}

// SeedQuickTranslations inserta el catálogo inicial de traducciones rápidas
// si la tabla está vacía.
func SeedQuickTranslations() error {
	if db == nil {
		return fmt.Errorf("db is not initialized")
	}
	var count int
	if err := db.QueryRow("SELECT COUNT(1) FROM quick_translations").Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	defaults := []struct{ medical, simple, category string }{
		{"Hipertensión", "Presión alta", "cardiovascular"},
		{"Diabetes Tipo 2", "Azúcar alta", "endocrine"},
		{"Migraña", "Dolor de cabeza fuerte", "neurological"},
		{"Gastritis", "Inflamación estómago", "digestive"},
	}
	for _, d := range defaults {
		if _, err := db.Exec(
			"INSERT INTO quick_translations (id, medical, simple, category) VALUES (?, ?, ?, ?)",
			uuid.NewString(), d.medical, d.simple, d.category,
		); err != nil {
			return err
		}
	}
	return nil
}

// SeedSampleHealthRecord crea una ficha de ejemplo para que el panel tenga
// datos en la primera ejecución.
func SeedSampleHealthRecord() error {
	if db == nil {
		return fmt.Errorf("db is not initialized")
	}
	var count int
	if err := db.QueryRow("SELECT COUNT(1) FROM health_records").Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	conditions := `["Hipertensión", "Diabetes Tipo 2"]`
	vitalSigns := `{
		"bloodPressure": {"systolic": 120, "diastolic": 80},
		"glucose": {"value": 95, "unit": "mg/dL"},
		"weight": {"value": 68.5, "unit": "kg"}
	}`
	medications := `[
		{"name": "Enalapril 10mg", "dosage": "10mg", "instructions": "Tomar con el desayuno", "taken": true, "time": "08:30"},
		{"name": "Metformina 500mg", "dosage": "500mg", "instructions": "Con almuerzo y cena", "taken": false, "time": "14:00"}
	]`
	_, err := db.Exec(
		"INSERT INTO health_records (id, patient_name, age, conditions, vital_signs, medications) VALUES (?, ?, ?, ?, ?, ?)",
		uuid.NewString(), "María García", 45, conditions, vitalSigns, medications,
	)
	return err
}
