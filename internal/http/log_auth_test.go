package handlers_test

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"
	"sync"
	"testing"

	applog "redheart/internal/log"
)

type logEntry struct {
	Level  string                 `json:"level"`
	Kind   string                 `json:"kind"`
	Action string                 `json:"action"`
	UserID string                 `json:"user_id"`
	Fields map[string]interface{} `json:"fields"`
}

// captureLogs points the structured logger at a buffer while fn runs.
func captureLogs(t *testing.T, fn func()) []logEntry {
	t.Helper()
	var buf bytes.Buffer
	var mu sync.Mutex
	applog.SetOutput(&lockedWriter{w: &buf, mu: &mu})
	defer applog.SetOutput(os.Stdout)

	fn()

	mu.Lock()
	defer mu.Unlock()
	var entries []logEntry
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		var e logEntry
		if err := json.Unmarshal([]byte(line), &e); err == nil {
			entries = append(entries, e)
		}
	}
	return entries
}

type lockedWriter struct {
	w  *bytes.Buffer
	mu *sync.Mutex
}

func (lw *lockedWriter) Write(p []byte) (int, error) {
	lw.mu.Lock()
	defer lw.mu.Unlock()
	return lw.w.Write(p)
}

func findLog(entries []logEntry, action string) (logEntry, bool) {
	for _, e := range entries {
		if e.Action == action {
			return e, true
		}
	}
	return logEntry{}, false
}

func TestAuthLogging(t *testing.T) {
	app, _ := newLoginApp(t)
	tok := csrfFrom(t, app)

	failLogs := captureLogs(t, func() { postLogin(t, app, tok, adminEmail, "badpass!") })
	e, ok := findLog(failLogs, "auth.login.fail")
	if !ok {
		t.Fatal("auth.login.fail log not found")
	}
	if e.Kind != "security" || e.Level != "warn" {
		t.Fatalf("auth.login.fail logged as %s/%s", e.Kind, e.Level)
	}
	if _, ok := e.Fields["email"]; !ok {
		t.Fatal("auth.login.fail missing email field")
	}

	successLogs := captureLogs(t, func() { postLogin(t, app, tok, adminEmail, adminPass) })
	e, ok = findLog(successLogs, "auth.login.success")
	if !ok {
		t.Fatal("auth.login.success log not found")
	}
	if e.Kind != "audit" || e.UserID == "" {
		t.Fatalf("auth.login.success entry = %+v", e)
	}
	for _, l := range successLogs {
		for _, v := range l.Fields {
			if s, ok := v.(string); ok && s == adminPass {
				t.Fatal("password written to the log")
			}
		}
	}
}
