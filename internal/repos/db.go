package repos

import (
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	_ "modernc.org/sqlite"

	applog "redheart/internal/log"
)

func OpenDB(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", withForeignKeys(dsn))
	if err != nil {
		return nil, err
	}
	// Every pooled connection to :memory: would see its own empty database.
	if strings.Contains(dsn, ":memory:") {
		db.SetMaxOpenConns(1)
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}
	if err := ensureSchema(db); err != nil {
		return nil, err
	}
	return db, nil
}

// withForeignKeys asks the driver to enable foreign keys on every connection it
// opens; a PRAGMA run once only reaches the connection that ran it.
func withForeignKeys(dsn string) string {
	if strings.Contains(dsn, "foreign_keys") {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "_pragma=foreign_keys(1)"
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
PRAGMA foreign_keys = ON;

-- Operators & Sessions
CREATE TABLE IF NOT EXISTS users(
  id TEXT PRIMARY KEY,
  email TEXT NOT NULL UNIQUE,
  name TEXT NOT NULL,
  password_hash TEXT NOT NULL,
  role TEXT NOT NULL CHECK (role IN ('ADMIN')),
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email ON users(LOWER(email));

CREATE TABLE IF NOT EXISTS sessions(
  id TEXT PRIMARY KEY,               -- same value as the 'sid' cookie
  user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  last_seen  TEXT
);
CREATE INDEX IF NOT EXISTS idx_sessions_user ON sessions(user_id);

-- Image slots, one product per session
CREATE TABLE IF NOT EXISTS image_slots(
  session_id TEXT PRIMARY KEY REFERENCES sessions(id) ON DELETE CASCADE,
  product_id TEXT NOT NULL,
  slot_1st TEXT NOT NULL DEFAULT '',
  slot_2nd TEXT NOT NULL DEFAULT '',
  slot_3rd TEXT NOT NULL DEFAULT '',
  slot_4th TEXT NOT NULL DEFAULT '',
  updated_at TEXT
);

-- Spreadsheet exports
CREATE TABLE IF NOT EXISTS exports(
  id TEXT PRIMARY KEY,
  session_id TEXT NOT NULL,
  product_id TEXT NOT NULL,
  filename TEXT NOT NULL,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_exports_created_at ON exports(created_at);
`
	_, err := db.Exec(schema)
	return err
}

// SeedAdmin ensures an operator account exists for email (idempotent).
// An existing account keeps its password.
func SeedAdmin(db *sqlx.DB, email, password string) error {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil
	}
	h, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	if err != nil {
		return err
	}
	name := email
	if at := strings.IndexByte(email, '@'); at > 0 {
		name = email[:at]
	}
	res, err := db.Exec(`
		INSERT INTO users(id,email,name,password_hash,role)
		VALUES(?,?,?,?,'ADMIN')
		ON CONFLICT(email) DO NOTHING
	`, "u-"+uuid.NewString(), email, name, string(h))
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n > 0 {
		applog.L().Info("seed.admin", zap.String("email", email))
	}
	return nil
}
