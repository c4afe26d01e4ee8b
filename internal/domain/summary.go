package domain

import "github.com/shopspring/decimal"

const (
	UnknownStatus = "Unknown"
	recentLimit   = 5
)

type StatusCount struct {
	Name  string
	Count int
	// Percent of the largest bucket, used for bar widths.
	Percent int
}

type Summary struct {
	TotalOrders       int
	ByStatus          []StatusCount
	OrderRevenue      decimal.Decimal
	SubmissionRevenue decimal.Decimal
	TotalRevenue      decimal.Decimal
	TotalSubmissions  int
	PaidSubmissions   int
	RecentOrders      []Order
	RecentSubmissions []Submission
}

// Summarize derives the dashboard figures from the two source lists. Buckets
// keep first-seen order so the chart is stable across reloads.
func Summarize(orders []Order, subs []Submission) Summary {
	s := Summary{
		TotalOrders:       len(orders),
		TotalSubmissions:  len(subs),
		OrderRevenue:      decimal.Zero,
		SubmissionRevenue: decimal.Zero,
	}

	index := map[string]int{}
	for _, o := range orders {
		name := o.Status
		if name == "" {
			name = UnknownStatus
		}
		i, ok := index[name]
		if !ok {
			i = len(s.ByStatus)
			index[name] = i
			s.ByStatus = append(s.ByStatus, StatusCount{Name: name})
		}
		s.ByStatus[i].Count++
		s.OrderRevenue = s.OrderRevenue.Add(o.TotalPrice.Decimal)
	}
	top := 0
	for _, b := range s.ByStatus {
		if b.Count > top {
			top = b.Count
		}
	}
	for i := range s.ByStatus {
		s.ByStatus[i].Percent = s.ByStatus[i].Count * 100 / top
	}

	for _, sub := range subs {
		s.SubmissionRevenue = s.SubmissionRevenue.Add(sub.Rupees())
		if sub.IsPaid() {
			s.PaidSubmissions++
		}
	}
	s.TotalRevenue = s.OrderRevenue.Add(s.SubmissionRevenue)

	s.RecentOrders = orders[:min(recentLimit, len(orders))]
	s.RecentSubmissions = subs[:min(recentLimit, len(subs))]
	return s
}
