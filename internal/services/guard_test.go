package services_test

import (
	"errors"
	"sync"
	"testing"

	"redheart/internal/services"
)

func TestBusyAdmitsOne(t *testing.T) {
	var b services.Busy
	release, err := b.Acquire()
	if err != nil {
		t.Fatal(err)
	}
	if _, err := b.Acquire(); !errors.Is(err, services.ErrBusy) {
		t.Fatalf("second acquire: %v", err)
	}
	if !b.Held() {
		t.Fatal("Held should report true")
	}
	release()
	if b.Held() {
		t.Fatal("Held after release")
	}
	if _, err := b.Acquire(); err != nil {
		t.Fatalf("acquire after release: %v", err)
	}
}

func TestBusyIDPolicies(t *testing.T) {
	block := services.NewBusyID(services.PolicyBlock)
	release, err := block.Acquire("o-1")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := block.Acquire("o-2"); !errors.Is(err, services.ErrBusy) {
		t.Fatalf("block policy let a second id in: %v", err)
	}
	if !block.Has("o-1") || block.Has("o-2") || !block.Any() {
		t.Fatal("in-flight bookkeeping wrong")
	}
	release()
	if block.Any() {
		t.Fatal("still busy after release")
	}

	par := services.NewBusyID(services.PolicyParallel)
	if _, err := par.Acquire("o-1"); err != nil {
		t.Fatal(err)
	}
	if _, err := par.Acquire("o-2"); err != nil {
		t.Fatalf("parallel policy refused another id: %v", err)
	}
	if _, err := par.Acquire("o-1"); !errors.Is(err, services.ErrBusy) {
		t.Fatalf("parallel policy let the same id in twice: %v", err)
	}
	if got := par.InFlight(); len(got) != 2 || !got["o-1"] || !got["o-2"] {
		t.Fatalf("in flight = %v", got)
	}
}

func TestBusyIDConcurrentSameID(t *testing.T) {
	g := services.NewBusyID(services.PolicyParallel)
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		wins int
	)
	start := make(chan struct{})
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			if _, err := g.Acquire("same"); err == nil {
				mu.Lock()
				wins++
				mu.Unlock()
			}
		}()
	}
	close(start)
	wg.Wait()
	if wins != 1 {
		t.Fatalf("wins = %d, want 1", wins)
	}
}

func TestParsePolicy(t *testing.T) {
	if p, err := services.ParsePolicy(""); err != nil || p != services.PolicyBlock {
		t.Fatalf("default = %q %v", p, err)
	}
	if p, err := services.ParsePolicy("parallel"); err != nil || p != services.PolicyParallel {
		t.Fatalf("parallel = %q %v", p, err)
	}
	if _, err := services.ParsePolicy("queue"); err == nil {
		t.Fatal("unknown policy accepted")
	}
}
