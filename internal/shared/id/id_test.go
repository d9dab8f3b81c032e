package id

import (
	"bytes"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/oklog/ulid/v2"
)

func TestGenerate(t *testing.T) {
	gen := NewGenerator()

	id1 := gen.Generate()
	id2 := gen.Generate()

	if id1.String() == id2.String() {
		t.Error("Generated IDs should be unique")
	}
	if id1.Compare(id2) >= 0 {
		t.Errorf("IDs from one generator should increase: %s >= %s", id1, id2)
	}
}

func TestGenerateWithPrefix(t *testing.T) {
	gen := NewGenerator()

	id := gen.GenerateWithPrefix("trace")
	if !strings.HasPrefix(id, "trace_") {
		t.Fatalf("ID should start with 'trace_', got: %s", id)
	}
	if _, err := ulid.Parse(strings.TrimPrefix(id, "trace_")); err != nil {
		t.Errorf("ULID part should be valid: %v", err)
	}
}

func TestDeterministicEntropy(t *testing.T) {
	a := NewGeneratorWithEntropy(bytes.NewReader(make([]byte, 64))).Generate()
	b := NewGeneratorWithEntropy(bytes.NewReader(make([]byte, 64))).Generate()

	if a.Entropy() == nil || !bytes.Equal(a.Entropy(), b.Entropy()) {
		t.Error("Same entropy source should produce the same random part")
	}
}

func TestNewTraceIDSortable(t *testing.T) {
	ids := make([]string, 50)
	for i := range ids {
		ids[i] = NewTraceID()
	}
	if !sort.StringsAreSorted(ids) {
		t.Error("Trace IDs should sort in creation order")
	}
}

func TestTimestamp(t *testing.T) {
	before := time.Now().Add(-time.Second)
	id := NewTraceID()

	ts, err := Timestamp(id)
	if err != nil {
		t.Fatalf("Timestamp failed: %v", err)
	}
	if ts.Before(before) || ts.After(time.Now().Add(time.Second)) {
		t.Errorf("Timestamp %v out of range", ts)
	}

	if _, err := Timestamp("trace_not-a-ulid"); err == nil {
		t.Error("Invalid ULID should fail to parse")
	}
}

func TestConcurrentGeneration(t *testing.T) {
	gen := NewGenerator()
	const n = 100

	var (
		mu   sync.Mutex
		seen = make(map[string]bool, n)
		wg   sync.WaitGroup
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id := gen.Generate().String()
			mu.Lock()
			seen[id] = true
			mu.Unlock()
		}()
	}
	wg.Wait()

	if len(seen) != n {
		t.Errorf("Expected %d unique IDs, got %d", n, len(seen))
	}
}
