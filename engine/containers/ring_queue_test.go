package containers

import "testing"

func TestRingQueueEnqueueDequeue(t *testing.T) {
	q := NewRingQueue[int](3)
	if !q.IsEmpty() {
		t.Fatalf("expected new queue to be empty")
	}
	for _, v := range []int{1, 2, 3} {
		if err := q.Enqueue(v); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if !q.IsFull() {
		t.Fatalf("expected queue to be full")
	}
	if err := q.Enqueue(4); err == nil {
		t.Fatalf("expected enqueue on full queue to fail")
	}

	for _, want := range []int{1, 2, 3} {
		got, err := q.Dequeue()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != want {
			t.Fatalf("got %d, want %d", got, want)
		}
	}
	if !q.IsEmpty() {
		t.Fatalf("expected queue to be empty after draining")
	}
	if _, err := q.Dequeue(); err == nil {
		t.Fatalf("expected dequeue on empty queue to fail")
	}
}

func TestRingQueuePeekDoesNotConsume(t *testing.T) {
	q := NewRingQueue[string](2)
	q.Enqueue("a")
	v, err := q.Peek()
	if err != nil || v != "a" {
		t.Fatalf("got %q, %v", v, err)
	}
	if q.Len() != 1 {
		t.Fatalf("expected peek to leave len unchanged, got %d", q.Len())
	}
}

func TestRingQueueWrapsAroundAfterDrain(t *testing.T) {
	q := NewRingQueue[int](2)
	q.Enqueue(1)
	q.Enqueue(2)
	q.Dequeue()
	q.Enqueue(3)
	v, _ := q.Dequeue()
	if v != 2 {
		t.Fatalf("got %d, want 2", v)
	}
	v, _ = q.Dequeue()
	if v != 3 {
		t.Fatalf("got %d, want 3", v)
	}
}
