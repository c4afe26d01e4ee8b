package handlers_test

import (
	"net/url"
	"testing"

	"redheart/internal/domain"
)

// Console mutations leave an audit entry naming the operator and the target.
func TestAdminMutationsAreAudited(t *testing.T) {
	api := &fakeAPI{
		orders:   []domain.Order{{OrderID: "o-1", Status: "Pending"}},
		products: []domain.Product{{ProductID: "P1", Name: "Rose Box"}},
		addOns:   []domain.AddOn{{ID: "a-1", Name: "Gift Wrap"}},
	}
	h := newHarness(t, api)

	entries := captureLogs(t, func() {
		h.postForm(t, "/admin/orders/o-1/status", url.Values{"status": {"Accepted"}}, false)
		h.postForm(t, "/admin/products/P1/delete", url.Values{"page": {"1"}}, false)
		h.postForm(t, "/admin/addons/a-1/delete", nil, false)
	})

	checks := []struct {
		action string
		field  string
		value  string
	}{
		{"admin.orders.update", "order_id", "o-1"},
		{"admin.products.delete", "product_id", "P1"},
		{"admin.addons.delete", "addon_id", "a-1"},
	}
	for _, c := range checks {
		e, ok := findLog(entries, c.action)
		if !ok {
			t.Fatalf("%s log not found", c.action)
		}
		if e.Kind != "audit" {
			t.Fatalf("%s kind = %q", c.action, e.Kind)
		}
		if e.UserID == "" {
			t.Fatalf("%s missing user_id", c.action)
		}
		if e.Fields[c.field] != c.value {
			t.Fatalf("%s %s = %v", c.action, c.field, e.Fields[c.field])
		}
	}
}

func TestOrderUpdateFailureIsLoggedAsError(t *testing.T) {
	api := &fakeAPI{orders: []domain.Order{{OrderID: "o-1", Status: "Pending"}}, updateErr: errBackendDown}
	h := newHarness(t, api)

	entries := captureLogs(t, func() {
		h.postForm(t, "/admin/orders/o-1/status", url.Values{"status": {"Accepted"}}, false)
	})
	e, ok := findLog(entries, "admin.orders.update.fail")
	if !ok {
		t.Fatal("admin.orders.update.fail log not found")
	}
	if e.Level != "error" {
		t.Fatalf("level = %q", e.Level)
	}
	if _, ok := findLog(entries, "admin.orders.update"); ok {
		t.Fatal("failed update audited as a success")
	}
}
