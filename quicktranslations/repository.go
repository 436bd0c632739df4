package quicktranslations

import "database/sql"

// QuickTranslation es una entrada del catálogo de consultas rápidas que el
// cliente muestra sin pasar por el traductor.
type QuickTranslation struct {
	ID       string `json:"id"`
	Medical  string `json:"medical"`
	Simple   string `json:"simple"`
	Category string `json:"category,omitempty"`
}

type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository { return &Repository{db: db} }

func (r *Repository) All() ([]QuickTranslation, error) {
	rows, err := r.db.Query("SELECT id, medical, simple, category FROM quick_translations ORDER BY medical ASC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	list := make([]QuickTranslation, 0)
	for rows.Next() {
		var qt QuickTranslation
		var category sql.NullString
		if err := rows.Scan(&qt.ID, &qt.Medical, &qt.Simple, &category); err != nil {
			return nil, err
		}
		qt.Category = category.String
		list = append(list, qt)
	}
	return list, rows.Err()
}
