package records

import (
	"database/sql"
	"encoding/json"
	"strings"
	"time"
)

// HealthRecord guarda la ficha de salud del paciente. Las colecciones se
// conservan como JSON tal cual las envía el cliente.
type HealthRecord struct {
	ID          string          `json:"id"`
	PatientName string          `json:"patientName"`
	Age         *int            `json:"age"`
	Conditions  json.RawMessage `json:"conditions"`
	VitalSigns  json.RawMessage `json:"vitalSigns"`
	Medications json.RawMessage `json:"medications"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// RecordPatch describe una actualización parcial: los campos nil no se tocan.
type RecordPatch struct {
	PatientName *string         `json:"patientName"`
	Age         *int            `json:"age"`
	Conditions  json.RawMessage `json:"conditions"`
	VitalSigns  json.RawMessage `json:"vitalSigns"`
	Medications json.RawMessage `json:"medications"`
}

type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository { return &Repository{db: db} }

// First devuelve la ficha más antigua (la app maneja un solo paciente).
func (r *Repository) First() (*HealthRecord, error) {
	row := r.db.QueryRow("SELECT id, patient_name, age, conditions, vital_signs, medications, created_at, updated_at FROM health_records ORDER BY created_at ASC LIMIT 1")
	return scanRecord(row.Scan)
}

func (r *Repository) ByID(id string) (*HealthRecord, error) {
	row := r.db.QueryRow("SELECT id, patient_name, age, conditions, vital_signs, medications, created_at, updated_at FROM health_records WHERE id = ?", id)
	return scanRecord(row.Scan)
}

func scanRecord(scan func(...any) error) (*HealthRecord, error) {
	var rec HealthRecord
	var age sql.NullInt64
	var conditions, vitals, medications sql.NullString
	err := scan(&rec.ID, &rec.PatientName, &age, &conditions, &vitals, &medications, &rec.CreatedAt, &rec.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if age.Valid {
		v := int(age.Int64)
		rec.Age = &v
	}
	if conditions.Valid {
		rec.Conditions = json.RawMessage(conditions.String)
	}
	if vitals.Valid {
		rec.VitalSigns = json.RawMessage(vitals.String)
	}
	if medications.Valid {
		rec.Medications = json.RawMessage(medications.String)
	}
	return &rec, nil
}

// Update aplica el parche campo a campo y devuelve la ficha resultante.
// Devuelve (nil, nil) si la ficha no existe.
func (r *Repository) Update(id string, patch RecordPatch) (*HealthRecord, error) {
	sets := make([]string, 0, 5)
	args := make([]any, 0, 6)
	if patch.PatientName != nil {
		sets = append(sets, "patient_name = ?")
		args = append(args, *patch.PatientName)
	}
	if patch.Age != nil {
		sets = append(sets, "age = ?")
		args = append(args, *patch.Age)
	}
	if patch.Conditions != nil {
		sets = append(sets, "conditions = ?")
		args = append(args, string(patch.Conditions))
	}
	if patch.VitalSigns != nil {
		sets = append(sets, "vital_signs = ?")
		args = append(args, string(patch.VitalSigns))
	}
	if patch.Medications != nil {
		sets = append(sets, "medications = ?")
		args = append(args, string(patch.Medications))
	}
	if len(sets) > 0 {
		args = append(args, id)
		res, err := r.db.Exec("UPDATE health_records SET "+strings.Join(sets, ", ")+" WHERE id = ?", args...)
		if err != nil {
			return nil, err
		}
		if n, err := res.RowsAffected(); err == nil && n == 0 {
			if existing, err := r.ByID(id); err != nil || existing == nil {
				return nil, err
			}
		}
	}
	return r.ByID(id)
}
