package domain

import (
	"fmt"
	"net/url"
	"strconv"
)

type Media struct {
	PrimaryImageURL string   `json:"primary_image_url"`
	GalleryImages   []string `json:"gallery_images"`
}

type Product struct {
	ID            string `json:"_id"`
	ProductID     string `json:"product_id"`
	SKU           string `json:"sku"`
	Name          string `json:"name"`
	ShortSummary  string `json:"short_summary"`
	Description   string `json:"description"`
	SellingPrice  Amount `json:"selling_price"`
	OriginalPrice Amount `json:"original_price"`
	Quantity      int    `json:"quantity"`
	Media         Media  `json:"media"`
}

// Key is the identifier the delete endpoint expects.
func (p Product) Key() string {
	if p.ProductID != "" {
		return p.ProductID
	}
	return p.ID
}

// ProductQuery is the browse filter. The tag and category fields are always
// sent, empty or not; the backend ignores empty values.
type ProductQuery struct {
	Search          string
	Page            int
	Limit           int
	Color           string
	SubcategoryName string
	CategoryName    string
	FestivalTags    string
	OccasionTags    string
	Type            string
}

func (q ProductQuery) Values() url.Values {
	v := url.Values{}
	v.Set("searchField", q.Search)
	v.Set("color", q.Color)
	v.Set("subcategory_name", q.SubcategoryName)
	v.Set("category_name", q.CategoryName)
	v.Set("festival_tags", q.FestivalTags)
	v.Set("occasion_tags", q.OccasionTags)
	v.Set("type", q.Type)
	v.Set("page", strconv.Itoa(q.Page))
	v.Set("limit", strconv.Itoa(q.Limit))
	return v
}

type FailedRow struct {
	Row    map[string]any `json:"row"`
	Reason string         `json:"reason"`
}

// ProductID pulls the product_id column out of the original CSV row.
func (f FailedRow) ProductID() string {
	v, ok := f.Row["product_id"]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

type ImportResult struct {
	InsertedCount int         `json:"inserted_count"`
	FailedCount   int         `json:"failed_count"`
	Failed        []FailedRow `json:"failed"`
}

func (r ImportResult) Summary() string {
	return fmt.Sprintf("Uploaded! Inserted: %d, Failed: %d", r.InsertedCount, r.FailedCount)
}
