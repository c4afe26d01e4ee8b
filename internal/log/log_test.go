package log

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"strings"
	"testing"
)

func TestLevelAndShape(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() {
		SetLevel("info")
		SetOutput(os.Stdout)
	})

	SetLevel("warn")
	Info(nil, "dropped", nil)
	Error(nil, "backend.fail", errors.New("timeout"), map[string]any{"path": "/orders"})
	SetLevel("nonsense")
	Audit(nil, "still.dropped", nil)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("lines = %q", lines)
	}
	var e struct {
		Level  string         `json:"level"`
		Action string         `json:"action"`
		Err    string         `json:"err"`
		Fields map[string]any `json:"fields"`
	}
	if err := json.Unmarshal([]byte(lines[0]), &e); err != nil {
		t.Fatal(err)
	}
	if e.Level != "error" || e.Action != "backend.fail" || e.Err != "timeout" || e.Fields["path"] != "/orders" {
		t.Fatalf("entry = %+v", e)
	}
}
