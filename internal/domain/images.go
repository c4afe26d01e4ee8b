package domain

type Slot string

const (
	Slot1st Slot = "1st"
	Slot2nd Slot = "2nd"
	Slot3rd Slot = "3rd"
	Slot4th Slot = "4th"
)

var Slots = []Slot{Slot1st, Slot2nd, Slot3rd, Slot4th}

const NotUploaded = "Not uploaded"

func ParseSlot(s string) (Slot, bool) {
	for _, sl := range Slots {
		if string(sl) == s {
			return sl, true
		}
	}
	return "", false
}

func (s Slot) Label() string { return string(s) + " Image" }

// SlotSet holds the uploaded image URLs for one product within one operator session.
type SlotSet struct {
	ProductID string
	URLs      map[Slot]string
}

func NewSlotSet(productID string) SlotSet {
	return SlotSet{ProductID: productID, URLs: map[Slot]string{}}
}

func (s SlotSet) URL(slot Slot) string {
	if s.URLs == nil {
		return ""
	}
	return s.URLs[slot]
}

// Record stores url under slot. Switching product discards the previous product's slots.
func (s SlotSet) Record(productID string, slot Slot, url string) SlotSet {
	if productID != s.ProductID || s.URLs == nil {
		s = NewSlotSet(productID)
	} else {
		urls := make(map[Slot]string, len(s.URLs)+1)
		for k, v := range s.URLs {
			urls[k] = v
		}
		s.URLs = urls
	}
	s.URLs[slot] = url
	return s
}

func (s SlotSet) HasAny() bool {
	for _, sl := range Slots {
		if s.URL(sl) != "" {
			return true
		}
	}
	return false
}

func (s SlotSet) Completed() int {
	n := 0
	for _, sl := range Slots {
		if s.URL(sl) != "" {
			n++
		}
	}
	return n
}

// ExportHeader and ExportRow are the spreadsheet columns: product id, then the four slots.
func ExportHeader() []string {
	h := []string{"Product ID"}
	for _, sl := range Slots {
		h = append(h, sl.Label())
	}
	return h
}

func (s SlotSet) ExportRow() []string {
	row := []string{s.ProductID}
	for _, sl := range Slots {
		u := s.URL(sl)
		if u == "" {
			u = NotUploaded
		}
		row = append(row, u)
	}
	return row
}

// SlotView is a template-friendly projection of one slot.
type SlotView struct {
	Slot  Slot
	Label string
	URL   string
}

func (s SlotSet) Views() []SlotView {
	out := make([]SlotView, 0, len(Slots))
	for _, sl := range Slots {
		out = append(out, SlotView{Slot: sl, Label: sl.Label(), URL: s.URL(sl)})
	}
	return out
}
