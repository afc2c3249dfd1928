package audit

import (
	"context"
	"sync"
	"testing"
)

func TestNewEntry(t *testing.T) {
	a := NewEntry("views.csv", OutcomeAccepted)
	b := NewEntry("views.csv", OutcomeAccepted)

	if a.ID == b.ID {
		t.Errorf("NewEntry() ids equal (%s), want unique", a.ID)
	}
	if a.CreatedAt.IsZero() {
		t.Error("NewEntry().CreatedAt is zero")
	}
	if a.Outcome != OutcomeAccepted {
		t.Errorf("Outcome = %q, want %q", a.Outcome, OutcomeAccepted)
	}
}

func TestMemoryRecord(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := m.Record(ctx, NewEntry("a.csv", OutcomeRejected)); err != nil {
				t.Errorf("Record() error = %v", err)
			}
		}()
	}
	wg.Wait()

	entries := m.Entries()
	if len(entries) != 20 {
		t.Fatalf("len(Entries()) = %d, want 20", len(entries))
	}

	entries[0].FileName = "changed"
	if m.Entries()[0].FileName == "changed" {
		t.Error("Entries() returned shared storage, want a copy")
	}
}

func TestNop(t *testing.T) {
	var r Recorder = Nop{}
	if err := r.Record(context.Background(), Entry{}); err != nil {
		t.Errorf("Nop.Record() error = %v", err)
	}
}

func TestNonNil(t *testing.T) {
	if got := nonNil(nil); got == nil || len(got) != 0 {
		t.Errorf("nonNil(nil) = %#v, want empty slice", got)
	}
	in := []string{"x"}
	if got := nonNil(in); len(got) != 1 || got[0] != "x" {
		t.Errorf("nonNil(%v) = %v", in, got)
	}
}

func TestToPgText(t *testing.T) {
	if got := toPgText(""); got.Valid {
		t.Errorf("toPgText(\"\").Valid = true, want false")
	}
	if got := toPgText("1.2.3.4"); !got.Valid || got.String != "1.2.3.4" {
		t.Errorf("toPgText(\"1.2.3.4\") = %+v", got)
	}
}
