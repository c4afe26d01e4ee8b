package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

type QuestionType string

const (
	QuestionCheckbox QuestionType = "Checkbox"
	QuestionRadio    QuestionType = "Radio"
	QuestionInput    QuestionType = "Input"
	QuestionTextarea QuestionType = "Textarea"
	QuestionDropdown QuestionType = "Dropdown"
)

var QuestionTypes = []QuestionType{
	QuestionCheckbox, QuestionRadio, QuestionInput, QuestionTextarea, QuestionDropdown,
}

func ParseQuestionType(s string) (QuestionType, bool) {
	for _, t := range QuestionTypes {
		if string(t) == s {
			return t, true
		}
	}
	return "", false
}

type Question struct {
	ID       string `json:"_id"`
	Question string `json:"question"`
	Type     string `json:"type"`
}

// NewQuestion is one row of the batch-create payload.
type NewQuestion struct {
	Question string       `json:"question"`
	Type     QuestionType `json:"type"`
}

type Answer struct {
	Question string `json:"question"`
	Answer   any    `json:"answer"`
}

const PaymentPaid = "PAID"

type Submission struct {
	ID                string   `json:"_id"`
	UserID            string   `json:"userId"`
	Answers           []Answer `json:"answers"`
	Amount            *Amount  `json:"amount"`
	PaymentStatus     string   `json:"paymentStatus"`
	RazorpayOrderID   string   `json:"razorpayOrderId"`
	RazorpayPaymentID string   `json:"razorpayPaymentId"`
	CreatedAt         string   `json:"createdAt"`
	UpdatedAt         string   `json:"updatedAt"`
}

func (s Submission) IsPaid() bool { return s.PaymentStatus == PaymentPaid }

// Rupees is the submission amount in major units; a missing amount counts as zero.
func (s Submission) Rupees() decimal.Decimal {
	if s.Amount == nil {
		return decimal.Zero
	}
	return FromMinor(s.Amount.Decimal)
}

// Text flattens checkbox answers (arrays) into a comma separated list.
func (a Answer) Text() string {
	switch v := a.Answer.(type) {
	case nil:
		return ""
	case string:
		return v
	case []any:
		parts := make([]string, 0, len(v))
		for _, x := range v {
			parts = append(parts, fmt.Sprint(x))
		}
		return strings.Join(parts, ", ")
	default:
		return fmt.Sprint(v)
	}
}
