package state

import "testing"

func TestManagerDefaultsToIdle(t *testing.T) {
	m := NewMemoryManager()
	if m.GetState(1) != StateIdle {
		t.Fatalf("expected idle state for unknown user, got %s", m.GetState(1))
	}
	if m.InProgress(1) {
		t.Fatal("unknown user must not be in progress")
	}
}

func TestManagerStateTransitions(t *testing.T) {
	m := NewMemoryManager()
	const awaiting State = "awaiting_input"

	m.SetState(7, awaiting)
	if got := m.GetState(7); got != awaiting {
		t.Fatalf("state = %s, want %s", got, awaiting)
	}
	if !m.InProgress(7) {
		t.Fatal("user with non-idle state must be in progress")
	}
	if m.InProgress(8) {
		t.Fatal("state must be scoped per user")
	}

	m.ClearState(7)
	if m.InProgress(7) {
		t.Fatal("cleared state must read as idle")
	}
}

func TestManagerTempDataLifecycle(t *testing.T) {
	m := NewMemoryManager()
	m.SetTemp(7, "pending_title", "Buy milk")
	m.SetTemp(7, "editing_task_id", int64(42))

	if v, ok := m.GetTempString(7, "pending_title"); !ok || v != "Buy milk" {
		t.Fatalf("GetTempString = %q, %v", v, ok)
	}
	if v, ok := m.GetTempInt64(7, "editing_task_id"); !ok || v != 42 {
		t.Fatalf("GetTempInt64 = %d, %v", v, ok)
	}
	// Wrong-type reads must fail, not coerce.
	if _, ok := m.GetTempInt64(7, "pending_title"); ok {
		t.Fatal("string scratch must not read as int64")
	}

	m.ClearTemp(7, "pending_title")
	if _, ok := m.GetTemp(7, "pending_title"); ok {
		t.Fatal("cleared temp key must be absent")
	}
	if _, ok := m.GetTempInt64(7, "editing_task_id"); !ok {
		t.Fatal("other temp keys must survive ClearTemp")
	}
}

func TestManagerClearRemovesEverything(t *testing.T) {
	m := NewMemoryManager()
	m.SetState(7, State("awaiting_input"))
	m.SetTemp(7, "pending_title", "x")

	m.Clear(7)

	if m.InProgress(7) {
		t.Fatal("cleared session must be idle")
	}
	if _, ok := m.GetTemp(7, "pending_title"); ok {
		t.Fatal("cleared session must have no scratch data")
	}
}
