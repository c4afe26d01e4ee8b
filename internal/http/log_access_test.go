package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

// A forged sid is refused and logged as a security event.
func TestAccessDeniedLogs(t *testing.T) {
	h := newHarness(t, &fakeAPI{})

	entries := captureLogs(t, func() {
		req := httptest.NewRequest(http.MethodGet, "/admin/orders", nil)
		req.AddCookie(&http.Cookie{Name: "sid", Value: "forged"})
		if _, err := h.app.Test(req, -1); err != nil {
			t.Fatal(err)
		}
	})
	e, ok := findLog(entries, "access.denied.session")
	if !ok {
		t.Fatal("access.denied.session log not found")
	}
	if e.Kind != "security" {
		t.Fatalf("kind = %q", e.Kind)
	}
	if e.Fields["reason"] != "unknown_sid" {
		t.Fatalf("fields = %v", e.Fields)
	}
}

func TestMissingSessionIsNotLogged(t *testing.T) {
	h := newHarness(t, &fakeAPI{})

	entries := captureLogs(t, func() {
		if _, err := h.app.Test(httptest.NewRequest(http.MethodGet, "/admin", nil), -1); err != nil {
			t.Fatal(err)
		}
	})
	if _, ok := findLog(entries, "access.denied.session"); ok {
		t.Fatal("plain anonymous visit logged as a denial")
	}
}
