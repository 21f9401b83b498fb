package backtrack

import "testing"

func TestPushPopIdempotence(t *testing.T) {
	t.Run("push_level; op; pop_levels(1) restores prior state", func(t *testing.T) {
		x := 0
		s := New()
		s.PushLevel()
		x = 1
		s.Push(ActionFunc(func() { x = 0 }))
		if x != 1 {
			t.Fatal("sanity: x should be 1 before pop")
		}
		s.PopLevels(1)
		if x != 0 {
			t.Errorf("expected x restored to 0 after pop, got %d", x)
		}
		if s.Level() != 0 {
			t.Errorf("expected 0 levels remaining, got %d", s.Level())
		}
	})

	t.Run("undo actions run in reverse order of recording", func(t *testing.T) {
		var order []int
		s := New()
		s.PushLevel()
		s.Push(ActionFunc(func() { order = append(order, 1) }))
		s.Push(ActionFunc(func() { order = append(order, 2) }))
		s.Push(ActionFunc(func() { order = append(order, 3) }))
		s.PopLevels(1)
		want := []int{3, 2, 1}
		if len(order) != len(want) {
			t.Fatalf("got %v, want %v", order, want)
		}
		for i := range want {
			if order[i] != want[i] {
				t.Fatalf("got %v, want %v", order, want)
			}
		}
	})

	t.Run("nested levels pop independently", func(t *testing.T) {
		x := 0
		s := New()
		s.PushLevel()
		x = 1
		s.Push(ActionFunc(func() { x = 0 }))
		s.PushLevel()
		x = 2
		s.Push(ActionFunc(func() { x = 1 }))

		s.PopLevels(1)
		if x != 1 {
			t.Errorf("after popping inner level, expected x==1, got %d", x)
		}
		s.PopLevels(1)
		if x != 0 {
			t.Errorf("after popping outer level, expected x==0, got %d", x)
		}
	})
}

func TestPopTooManyLevelsPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected PopLevels to panic when popping more levels than pushed")
		}
	}()
	s := New()
	s.PushLevel()
	s.PopLevels(2)
}
