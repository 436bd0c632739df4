package analysis

import (
	"database/sql"
	"encoding/json"
	"time"

	"meditranslate-backend/translator"
)

// ClinicalAnalysis es el resultado persistido de analizar un archivo clínico.
type ClinicalAnalysis struct {
	ID              string                 `json:"id"`
	FileName        string                 `json:"fileName"`
	FileType        string                 `json:"fileType"`
	OriginalContent string                 `json:"originalContent"`
	Analysis        string                 `json:"analysis"`
	KeyFindings     translator.KeyFindings `json:"keyFindings"`
	Confidence      int                    `json:"confidence"`
	UserID          string                 `json:"userId,omitempty"`
	CreatedAt       time.Time              `json:"createdAt"`
}

type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository { return &Repository{db: db} }

func (r *Repository) Create(a *ClinicalAnalysis) error {
	findings, err := json.Marshal(a.KeyFindings)
	if err != nil {
		return err
	}
	userID := sql.NullString{String: a.UserID, Valid: a.UserID != ""}
	_, err = r.db.Exec(
		"INSERT INTO clinical_analyses (id, file_name, file_type, original_content, analysis, key_findings, confidence, user_id, created_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)",
		a.ID, a.FileName, a.FileType, a.OriginalContent, a.Analysis, string(findings), a.Confidence, userID, a.CreatedAt,
	)
	return err
}

func (r *Repository) All() ([]ClinicalAnalysis, error) {
	rows, err := r.db.Query("SELECT id, file_name, file_type, original_content, analysis, key_findings, confidence, user_id, created_at FROM clinical_analyses ORDER BY created_at DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	list := make([]ClinicalAnalysis, 0)
	for rows.Next() {
		a, err := scanAnalysis(rows.Scan)
		if err != nil {
			return nil, err
		}
		list = append(list, *a)
	}
	return list, rows.Err()
}

func (r *Repository) ByID(id string) (*ClinicalAnalysis, error) {
	row := r.db.QueryRow("SELECT id, file_name, file_type, original_content, analysis, key_findings, confidence, user_id, created_at FROM clinical_analyses WHERE id = ?", id)
	a, err := scanAnalysis(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}

func scanAnalysis(scan func(...any) error) (*ClinicalAnalysis, error) {
	var a ClinicalAnalysis
	var findings sql.NullString
	var confidence sql.NullInt64
	var userID sql.NullString
	if err := scan(&a.ID, &a.FileName, &a.FileType, &a.OriginalContent, &a.Analysis, &findings, &confidence, &userID, &a.CreatedAt); err != nil {
		return nil, err
	}
	if findings.Valid {
		_ = json.Unmarshal([]byte(findings.String), &a.KeyFindings)
	}
	a.Confidence = int(confidence.Int64)
	a.UserID = userID.String
	return &a, nil
}
