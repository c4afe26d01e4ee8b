package repos

import (
	"database/sql"
	"errors"

	"redheart/internal/domain"

	"github.com/jmoiron/sqlx"
)

type ImageSlotRepo struct{ DB *sqlx.DB }

func NewImageSlotRepo(db *sqlx.DB) *ImageSlotRepo { return &ImageSlotRepo{DB: db} }

type slotRow struct {
	ProductID string `db:"product_id"`
	S1        string `db:"slot_1st"`
	S2        string `db:"slot_2nd"`
	S3        string `db:"slot_3rd"`
	S4        string `db:"slot_4th"`
}

// Get returns the session's slot set, or an empty set when nothing was uploaded yet.
func (r *ImageSlotRepo) Get(sessionID string) (domain.SlotSet, error) {
	var row slotRow
	err := r.DB.Get(&row, `SELECT product_id,slot_1st,slot_2nd,slot_3rd,slot_4th FROM image_slots WHERE session_id=?`, sessionID)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.NewSlotSet(""), nil
	}
	if err != nil {
		return domain.SlotSet{}, err
	}
	set := domain.NewSlotSet(row.ProductID)
	for slot, url := range map[domain.Slot]string{
		domain.Slot1st: row.S1, domain.Slot2nd: row.S2, domain.Slot3rd: row.S3, domain.Slot4th: row.S4,
	} {
		if url != "" {
			set.URLs[slot] = url
		}
	}
	return set, nil
}

func (r *ImageSlotRepo) Save(sessionID string, set domain.SlotSet) error {
	_, err := r.DB.Exec(`
		INSERT INTO image_slots(session_id,product_id,slot_1st,slot_2nd,slot_3rd,slot_4th,updated_at)
		VALUES(?,?,?,?,?,?,CURRENT_TIMESTAMP)
		ON CONFLICT(session_id) DO UPDATE SET
		  product_id=excluded.product_id,
		  slot_1st=excluded.slot_1st,
		  slot_2nd=excluded.slot_2nd,
		  slot_3rd=excluded.slot_3rd,
		  slot_4th=excluded.slot_4th,
		  updated_at=CURRENT_TIMESTAMP`,
		sessionID, set.ProductID,
		set.URL(domain.Slot1st), set.URL(domain.Slot2nd), set.URL(domain.Slot3rd), set.URL(domain.Slot4th))
	return err
}

func (r *ImageSlotRepo) Clear(sessionID string) error {
	_, err := r.DB.Exec(`DELETE FROM image_slots WHERE session_id=?`, sessionID)
	return err
}
