package storage

import (
	"errors"
	"io"
	"strings"
	"testing"
	"time"
)

func TestProgressCountsReads(t *testing.T) {
	tr := NewProgressTracker(time.Minute)
	tr.Start("u1", 10)

	r := tr.Reader("u1", strings.NewReader("abcdefghij"))
	buf := make([]byte, 3)
	if _, err := r.Read(buf); err != nil {
		t.Fatal(err)
	}
	p, ok := tr.Get("u1")
	if !ok || p.Transferred != 3 || p.Percent != 30 || p.Done {
		t.Fatalf("progress = %+v", p)
	}

	if _, err := io.Copy(io.Discard, r); err != nil {
		t.Fatal(err)
	}
	tr.Finish("u1", nil)
	if p, _ := tr.Get("u1"); !p.Done || p.Percent != 100 || p.Err != "" {
		t.Fatalf("finished = %+v", p)
	}
}

func TestProgressFailureKeepsCount(t *testing.T) {
	tr := NewProgressTracker(time.Minute)
	tr.Start("u1", 100)
	tr.Add("u1", 40)
	tr.Finish("u1", errors.New("reset by peer"))

	p, _ := tr.Get("u1")
	if !p.Done || p.Percent != 40 || p.Err != "reset by peer" {
		t.Fatalf("progress = %+v", p)
	}
	tr.Add("nope", 5)
	if _, ok := tr.Get("nope"); ok {
		t.Fatal("unknown id tracked")
	}
}

func TestProgressEvictsFinished(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	tr := NewProgressTracker(time.Minute)
	tr.now = func() time.Time { return now }

	tr.Start("old", 1)
	tr.Finish("old", nil)
	tr.Start("running", 1)

	now = now.Add(2 * time.Minute)
	tr.Start("new", 1)

	if _, ok := tr.Get("old"); ok {
		t.Fatal("finished entry outlived ttl")
	}
	if _, ok := tr.Get("running"); !ok {
		t.Fatal("unfinished entry evicted")
	}
}

func TestPercentRounds(t *testing.T) {
	for _, c := range []struct {
		n, total int64
		want     int
	}{{0, 0, 0}, {1, 3, 33}, {2, 3, 67}, {5, 4, 100}} {
		if got := percent(c.n, c.total); got != c.want {
			t.Errorf("percent(%d, %d) = %d, want %d", c.n, c.total, got, c.want)
		}
	}
}
