package storage

import (
	"io"
	"sync"
	"time"
)

// Progress is the state of one upload as reported to the polling page.
type Progress struct {
	Transferred int64  `json:"transferred"`
	Total       int64  `json:"total"`
	Percent     int    `json:"percent"`
	Done        bool   `json:"done"`
	Err         string `json:"error,omitempty"`

	finishedAt time.Time
}

func percent(n, total int64) int {
	if total <= 0 {
		return 0
	}
	p := int((n*100 + total/2) / total)
	if p > 100 {
		p = 100
	}
	return p
}

// ProgressTracker records bytes transferred per upload id. Finished entries
// are kept for ttl so a late poll still sees the final state.
type ProgressTracker struct {
	mu      sync.Mutex
	entries map[string]*Progress
	ttl     time.Duration
	now     func() time.Time
}

func NewProgressTracker(ttl time.Duration) *ProgressTracker {
	return &ProgressTracker{entries: map[string]*Progress{}, ttl: ttl, now: time.Now}
}

func (t *ProgressTracker) Start(id string, total int64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.evict()
	t.entries[id] = &Progress{Total: total}
}

func (t *ProgressTracker) Add(id string, n int64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if p, ok := t.entries[id]; ok {
		p.Transferred += n
		p.Percent = percent(p.Transferred, p.Total)
	}
}

func (t *ProgressTracker) Finish(id string, err error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	p, ok := t.entries[id]
	if !ok {
		return
	}
	p.Done = true
	p.finishedAt = t.now()
	if err != nil {
		p.Err = err.Error()
		return
	}
	p.Transferred = p.Total
	p.Percent = 100
}

func (t *ProgressTracker) Get(id string) (Progress, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	p, ok := t.entries[id]
	if !ok {
		return Progress{}, false
	}
	return *p, true
}

func (t *ProgressTracker) evict() {
	cutoff := t.now().Add(-t.ttl)
	for id, p := range t.entries {
		if p.Done && p.finishedAt.Before(cutoff) {
			delete(t.entries, id)
		}
	}
}

// Reader wraps r so every read is counted against id.
func (t *ProgressTracker) Reader(id string, r io.Reader) io.Reader {
	return &progressReader{r: r, id: id, t: t}
}

type progressReader struct {
	r  io.Reader
	id string
	t  *ProgressTracker
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	if n > 0 {
		p.t.Add(p.id, int64(n))
	}
	return n, err
}
