package outbox

import "testing"

func TestWorkerIDIsStableAcrossClaims(t *testing.T) {
	w := &Worker{}
	first := w.workerID()
	if first == "" {
		t.Fatal("expected a generated worker id")
	}
	if second := w.workerID(); second != first {
		t.Fatalf("worker id changed between claims: %q then %q", first, second)
	}
}

func TestWorkerIDHonorsConfiguredID(t *testing.T) {
	w := &Worker{ID: "worker-1"}
	if got := w.workerID(); got != "worker-1" {
		t.Fatalf("expected configured id, got %q", got)
	}
}
