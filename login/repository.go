package login

import "database/sql"

// Repository implementa UserStore sobre MySQL.
type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository { return &Repository{db: db} }

func (r *Repository) GetByEmail(email string) (*User, error) {
	return r.scanOne("SELECT id, email, password, full_name, role, created_at, last_login FROM users WHERE email = ?", email)
}

func (r *Repository) GetByID(id string) (*User, error) {
	return r.scanOne("SELECT id, email, password, full_name, role, created_at, last_login FROM users WHERE id = ?", id)
}

func (r *Repository) scanOne(query string, arg any) (*User, error) {
	var u User
	err := r.db.QueryRow(query, arg).Scan(&u.ID, &u.Email, &u.Password, &u.FullName, &u.Role, &u.CreatedAt, &u.LastLogin)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *Repository) Create(u *User) error {
	_, err := r.db.Exec(
		"INSERT INTO users (id, email, password, full_name, role) VALUES (?, ?, ?, ?, ?)",
		u.ID, u.Email, u.Password, u.FullName, u.Role,
	)
	return err
}

func (r *Repository) UpdateLastLogin(id string) error {
	_, err := r.db.Exec("UPDATE users SET last_login = CURRENT_TIMESTAMP WHERE id = ?", id)
	return err
}
