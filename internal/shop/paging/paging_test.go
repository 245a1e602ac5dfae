package paging

import "testing"

func intPtr(v int) *int { return &v }

func TestServer(t *testing.T) {
	t.Run("adopts the reported page and total", func(t *testing.T) {
		s := NewServer(10)
		s.Adopt(2, intPtr(1), intPtr(3))

		if s.Page() != 1 {
			t.Errorf("expected server page 1, got %d", s.Page())
		}
		if s.TotalPages() != 3 {
			t.Errorf("expected 3 pages, got %d", s.TotalPages())
		}
		if len(s.Pages()) != 3 {
			t.Errorf("expected one button per page, got %v", s.Pages())
		}
	})

	t.Run("falls back to the requested page and zero pages", func(t *testing.T) {
		s := NewServer(10)
		s.Adopt(4, nil, nil)

		if s.Page() != 4 {
			t.Errorf("expected requested page 4, got %d", s.Page())
		}
		if s.TotalPages() != 0 {
			t.Errorf("expected 0 pages, got %d", s.TotalPages())
		}
	})

	t.Run("disables prev on the first page and next on the last", func(t *testing.T) {
		s := NewServer(10)
		s.Adopt(0, intPtr(0), intPtr(2))
		if s.HasPrev() {
			t.Error("expected prev disabled on page 0")
		}
		if !s.HasNext() {
			t.Error("expected next enabled on page 0 of 2")
		}

		s.Adopt(1, intPtr(1), intPtr(2))
		if !s.HasPrev() {
			t.Error("expected prev enabled on page 1")
		}
		if s.HasNext() {
			t.Error("expected next disabled on the last page")
		}
	})
}

func TestLocal(t *testing.T) {
	items := make([]int, 13)
	for i := range items {
		items[i] = i
	}

	t.Run("splits 13 items into pages of 12", func(t *testing.T) {
		l := NewLocal[int](12)
		l.SetItems(items)

		if l.TotalPages() != 2 {
			t.Fatalf("expected 2 pages, got %d", l.TotalPages())
		}
		if len(l.Items()) != 12 {
			t.Errorf("expected 12 items on page 1, got %d", len(l.Items()))
		}

		l.Next()
		if l.Page() != 2 || len(l.Items()) != 1 {
			t.Errorf("expected 1 item on page 2, got page %d with %d items", l.Page(), len(l.Items()))
		}
	})

	t.Run("clamps navigation past the last page", func(t *testing.T) {
		l := NewLocal[int](12)
		l.SetItems(items)

		l.Go(3)
		if l.Page() != 2 {
			t.Errorf("expected page 3 to clamp to 2, got %d", l.Page())
		}

		l.Go(-5)
		if l.Page() != 1 {
			t.Errorf("expected negative page to clamp to 1, got %d", l.Page())
		}
	})

	t.Run("boundary navigation is a no-op", func(t *testing.T) {
		l := NewLocal[int](12)
		l.SetItems(items)

		l.Prev()
		l.First()
		if l.Page() != 1 || l.HasPrev() {
			t.Errorf("expected to stay on page 1, got %d", l.Page())
		}

		l.Last()
		l.Next()
		if l.Page() != 2 || l.HasNext() {
			t.Errorf("expected to stay on page 2, got %d", l.Page())
		}
	})

	t.Run("clamps the page when the list shrinks", func(t *testing.T) {
		l := NewLocal[int](12)
		l.SetItems(items)
		l.Last()

		l.SetItems(items[:12])
		if l.Page() != 1 {
			t.Errorf("expected page to clamp to 1 after shrink, got %d", l.Page())
		}
		if len(l.Items()) != 12 {
			t.Errorf("expected 12 items, got %d", len(l.Items()))
		}
	})

	t.Run("an empty list has one empty page", func(t *testing.T) {
		l := NewLocal[int](12)
		l.SetItems(nil)

		if l.TotalPages() != 1 || l.Page() != 1 {
			t.Errorf("expected page 1 of 1, got %d of %d", l.Page(), l.TotalPages())
		}
		if len(l.Items()) != 0 {
			t.Errorf("expected no items, got %d", len(l.Items()))
		}
	})

	t.Run("total pages is ceil of count over size", func(t *testing.T) {
		for n := 0; n <= 40; n++ {
			l := NewLocal[int](12)
			l.SetItems(make([]int, n))
			want := (n + 11) / 12
			if want < 1 {
				want = 1
			}
			if l.TotalPages() != want {
				t.Errorf("n=%d: expected %d pages, got %d", n, want, l.TotalPages())
			}
		}
	})
}
