package quiz

import "testing"

func TestTaskFiresAfterDelay(t *testing.T) {
	r := NewTaskRunner()

	fired := false
	r.After(100, func() { fired = true })

	r.Advance(99)
	if fired {
		t.Fatal("task fired early")
	}
	r.Advance(1)
	if !fired {
		t.Fatal("task did not fire at its delay")
	}
	if r.Pending() != 0 {
		t.Errorf("Pending() = %d, want 0", r.Pending())
	}
}

func TestTaskCancel(t *testing.T) {
	r := NewTaskRunner()

	fired := false
	h := r.After(50, func() { fired = true })
	h.Cancel()
	h.Cancel() // Double cancel is a no-op

	r.Advance(100)
	if fired {
		t.Error("cancelled task fired")
	}
}

func TestNilHandleCancel(t *testing.T) {
	var h *TaskHandle
	h.Cancel() // Must not panic
}

func TestTasksFireInSchedulingOrder(t *testing.T) {
	r := NewTaskRunner()

	var order []int
	r.After(10, func() { order = append(order, 1) })
	r.After(10, func() { order = append(order, 2) })
	r.After(5, func() { order = append(order, 3) })

	r.Advance(10)

	if len(order) != 3 || order[0] != 1 || order[1] != 2 || order[2] != 3 {
		t.Errorf("order = %v, want [1 2 3]", order)
	}
}

func TestTaskCanScheduleDuringFire(t *testing.T) {
	r := NewTaskRunner()

	fired := false
	r.After(10, func() {
		r.After(10, func() { fired = true })
	})

	r.Advance(10)
	if fired {
		t.Fatal("nested task fired in the same advance")
	}
	r.Advance(10)
	if !fired {
		t.Fatal("nested task never fired")
	}
}

func TestNegativeAdvanceIgnored(t *testing.T) {
	r := NewTaskRunner()

	fired := false
	r.After(10, func() { fired = true })
	r.Advance(-100)

	if fired || r.Pending() != 1 {
		t.Error("negative advance affected scheduled tasks")
	}
}

func TestClearCancelsAll(t *testing.T) {
	r := NewTaskRunner()

	fired := 0
	r.After(10, func() { fired++ })
	r.After(20, func() { fired++ })
	r.Clear()
	r.Advance(100)

	if fired != 0 || r.Pending() != 0 {
		t.Errorf("fired = %d, pending = %d after Clear", fired, r.Pending())
	}
}
