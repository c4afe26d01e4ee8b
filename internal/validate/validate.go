package validate

import (
	"errors"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"redheart/internal/domain"
)

// MaxImageBytes is the largest image accepted for upload.
const MaxImageBytes = 10 * 1024 * 1024

// Problem is a validation failure whose text is shown to the operator as is.
type Problem struct{ Msg string }

func (p *Problem) Error() string { return p.Msg }

// Message returns the operator-facing text of a *Problem anywhere in err's chain.
func Message(err error) (string, bool) {
	var p *Problem
	if errors.As(err, &p) {
		return p.Msg, true
	}
	return "", false
}

var (
	ErrNotImage      = &Problem{"Please select a valid image file."}
	ErrImageTooLarge = &Problem{"File size must be less than 10MB."}
)

var (
	reEmail = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
	reID    = regexp.MustCompile(`^[A-Za-z0-9_.-]{1,64}$`)
)

const (
	maxProductID = 128
	maxPageName  = 200
	maxSearch    = 100
)

func Email(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if len(s) == 0 || len(s) > 100 {
		return "", false
	}
	return s, reEmail.MatchString(s)
}

// Password enforces a length window and mixed character classes.
func Password(s string) bool {
	l := len(s)
	if l < 8 || l > 64 {
		return false
	}
	var hasLower, hasUpper, hasDigit, hasSymbol bool
	for _, r := range s {
		switch {
		case 'a' <= r && r <= 'z':
			hasLower = true
		case 'A' <= r && r <= 'Z':
			hasUpper = true
		case '0' <= r && r <= '9':
			hasDigit = true
		default:
			hasSymbol = true
		}
	}
	return hasLower && hasUpper && hasDigit && hasSymbol
}

// ID validates a backend-generated identifier (order, add-on and question ids).
func ID(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != "" && reID.MatchString(s)
}

// ProductID accepts the free-form product_id an operator imported by CSV.
// It only has to be present, printable and bounded.
func ProductID(s string) (string, bool) {
	return freeText(s, maxProductID)
}

// PageName validates the key of a page content entry.
func PageName(s string) (string, bool) {
	return freeText(s, maxPageName)
}

func freeText(s string, max int) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" || !utf8.ValidString(s) || utf8.RuneCountInString(s) > max {
		return s, false
	}
	for _, r := range s {
		if unicode.IsControl(r) {
			return s, false
		}
	}
	return s, true
}

// Search trims and clamps the product search text; it never rejects.
func Search(s string) string {
	s = strings.TrimSpace(s)
	if utf8.RuneCountInString(s) > maxSearch {
		s = string([]rune(s)[:maxSearch])
	}
	return s
}

func OrderStatus(s string) (domain.OrderStatus, bool) {
	return domain.ParseOrderStatus(strings.TrimSpace(s))
}

func QuestionType(s string) (domain.QuestionType, bool) {
	return domain.ParseQuestionType(strings.TrimSpace(s))
}

func Slot(s string) (domain.Slot, bool) {
	return domain.ParseSlot(strings.TrimSpace(s))
}

// ImageFile checks the declared (or sniffed) MIME type and the size of an upload.
func ImageFile(contentType string, size int64) error {
	ct := strings.ToLower(strings.TrimSpace(contentType))
	if !strings.HasPrefix(ct, "image/") {
		return ErrNotImage
	}
	if size > MaxImageBytes {
		return ErrImageTooLarge
	}
	return nil
}
