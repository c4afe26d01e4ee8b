package repos

import (
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type ExportRecord struct {
	ID        string `db:"id"`
	SessionID string `db:"session_id"`
	ProductID string `db:"product_id"`
	Filename  string `db:"filename"`
	CreatedAt string `db:"created_at"`
}

type ExportRepo struct{ DB *sqlx.DB }

func NewExportRepo(db *sqlx.DB) *ExportRepo { return &ExportRepo{DB: db} }

func (r *ExportRepo) Record(sessionID, productID, filename string) error {
	_, err := r.DB.Exec(`INSERT INTO exports(id,session_id,product_id,filename) VALUES(?,?,?,?)`,
		uuid.NewString(), sessionID, productID, filename)
	return err
}

// ListRecent returns the newest exports first.
func (r *ExportRepo) ListRecent(limit int) ([]ExportRecord, error) {
	var out []ExportRecord
	err := r.DB.Select(&out, `SELECT id,session_id,product_id,filename,created_at FROM exports ORDER BY created_at DESC, rowid DESC LIMIT ?`, limit)
	return out, err
}
