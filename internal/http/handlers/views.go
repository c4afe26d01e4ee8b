package handlers

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	html "github.com/gofiber/template/html/v2"
	"github.com/shopspring/decimal"

	"redheart/internal/domain"
)

// NewViews builds the template engine with the helpers every view uses.
func NewViews(dir string) *html.Engine {
	engine := html.New(dir, ".html")
	for name, fn := range viewFuncs() {
		engine.AddFunc(name, fn)
	}
	return engine
}

func viewFuncs() map[string]any {
	return map[string]any{
		// inr formats a rupee amount with Indian digit grouping and no decimals.
		"inr": func(v any) string { return domain.FormatINR(toDecimal(v), 0) },
		// rupees2 is the submission amount, two decimals, no grouping.
		"rupees2": func(v any) string { return "₹" + toDecimal(v).StringFixed(2) },
		"date":    formatDate,
		"dash": func(s string) string {
			if strings.TrimSpace(s) == "" {
				return "-"
			}
			return s
		},
		"toggle":        func(set domain.IDSet, id string) string { return set.Toggle(id) },
		"expanded":      func(set domain.IDSet, id string) bool { return set.Has(id) },
		"statuses":      func() []domain.OrderStatus { return domain.OrderStatuses },
		"questionTypes": func() []domain.QuestionType { return domain.QuestionTypes },
		"add":           func(a, b int) int { return a + b },
		"str":           func(v any) string { return fmt.Sprint(v) },
		"pathEscape":    url.PathEscape,
	}
}

func toDecimal(v any) decimal.Decimal {
	switch x := v.(type) {
	case decimal.Decimal:
		return x
	case domain.Amount:
		return x.Decimal
	case *domain.Amount:
		if x == nil {
			return decimal.Zero
		}
		return x.Decimal
	case int:
		return decimal.NewFromInt(int64(x))
	case float64:
		return decimal.NewFromFloat(x)
	}
	return decimal.Zero
}

// formatDate renders the backend's ISO timestamps as "02 Jan 2006, 15:04";
// anything unparseable is shown as sent.
func formatDate(s string) string {
	if s == "" {
		return "-"
	}
	for _, f := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(f, s); err == nil {
			if f == "2006-01-02" {
				return t.Format("02 Jan 2006")
			}
			return t.Format("02 Jan 2006, 15:04")
		}
	}
	return s
}
