package diagnoses

import (
	"database/sql"
	"time"
)

// Diagnosis es una traducción guardada en el historial.
type Diagnosis struct {
	ID             string    `json:"id"`
	OriginalText   string    `json:"originalText"`
	TranslatedText string    `json:"translatedText"`
	Confidence     int       `json:"confidence"`
	UserID         string    `json:"userId,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}

type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository { return &Repository{db: db} }

func (r *Repository) Create(d *Diagnosis) error {
	userID := sql.NullString{String: d.UserID, Valid: d.UserID != ""}
	_, err := r.db.Exec(
		"INSERT INTO diagnoses (id, original_text, translated_text, confidence, user_id, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		d.ID, d.OriginalText, d.TranslatedText, d.Confidence, userID, d.CreatedAt,
	)
	return err
}

func (r *Repository) All() ([]Diagnosis, error) {
	rows, err := r.db.Query("SELECT id, original_text, translated_text, confidence, user_id, created_at FROM diagnoses ORDER BY created_at DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	list := make([]Diagnosis, 0)
	for rows.Next() {
		d, err := scanDiagnosis(rows.Scan)
		if err != nil {
			return nil, err
		}
		list = append(list, *d)
	}
	return list, rows.Err()
}

func (r *Repository) ByID(id string) (*Diagnosis, error) {
	row := r.db.QueryRow("SELECT id, original_text, translated_text, confidence, user_id, created_at FROM diagnoses WHERE id = ?", id)
	d, err := scanDiagnosis(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return d, nil
}

func scanDiagnosis(scan func(...any) error) (*Diagnosis, error) {
	var d Diagnosis
	var confidence sql.NullInt64
	var userID sql.NullString
	if err := scan(&d.ID, &d.OriginalText, &d.TranslatedText, &confidence, &userID, &d.CreatedAt); err != nil {
		return nil, err
	}
	d.Confidence = int(confidence.Int64)
	d.UserID = userID.String
	return &d, nil
}
