package store

import "testing"

type counter struct {
	N int
}

func counterReducer(prev counter, action Action) counter {
	switch action.Type {
	case "add":
		n, _ := action.Payload.(int)
		return counter{N: prev.N + n}
	default:
		return prev
	}
}

func TestDispatchReplacesSnapshot(t *testing.T) {
	s := New(counter{N: 1}, counterReducer)

	s.Dispatch(Action{Type: "add", Payload: 2})

	if got := s.Get(); got.N != 3 {
		t.Errorf("Get().N = %d, want 3", got.N)
	}
}

func TestDispatchNotifiesSynchronously(t *testing.T) {
	s := New(counter{}, counterReducer)

	var seen []int
	s.Subscribe(func(c counter) { seen = append(seen, c.N) })

	s.Dispatch(Action{Type: "add", Payload: 1})
	// The listener must have observed the new snapshot before Dispatch
	// returned.
	if len(seen) != 1 || seen[0] != 1 {
		t.Fatalf("seen = %v, want [1]", seen)
	}

	s.Dispatch(Action{Type: "noop"})
	if len(seen) != 2 {
		t.Errorf("listeners run on every dispatch, seen = %v", seen)
	}
}

func TestUnsubscribe(t *testing.T) {
	s := New(counter{}, counterReducer)

	calls := 0
	unsub := s.Subscribe(func(counter) { calls++ })
	s.Dispatch(Action{Type: "add", Payload: 1})
	unsub()
	s.Dispatch(Action{Type: "add", Payload: 1})

	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestListenerMaySubscribeDuringNotify(t *testing.T) {
	s := New(counter{}, counterReducer)

	added := 0
	s.Subscribe(func(counter) {
		if added == 0 {
			s.Subscribe(func(counter) { added++ })
		}
	})

	s.Dispatch(Action{Type: "add", Payload: 1})
	if added != 0 {
		t.Error("a listener added mid-notify must not run in the same notify")
	}
	s.Dispatch(Action{Type: "add", Payload: 1})
	if added != 1 {
		t.Errorf("added = %d, want 1", added)
	}
}
