// Package paging holds the two pagination strategies used by the console.
// Server pages are fetched one at a time and trusted as reported; Local pages
// are slices of a list already held in memory.
package paging

// State is the page state shared by both strategies.
type State interface {
	Page() int
	Size() int
	TotalPages() int
	HasPrev() bool
	HasNext() bool
}

// Server tracks a zero-based page cursor whose index and page count come from
// the server on every load.
type Server struct {
	size       int
	page       int
	totalPages int
}

// NewServer returns a cursor on page 0 with nothing loaded.
func NewServer(size int) *Server {
	return &Server{size: size}
}

func (s *Server) Page() int       { return s.page }
func (s *Server) Size() int       { return s.size }
func (s *Server) TotalPages() int { return s.totalPages }

// HasPrev is false on page 0.
func (s *Server) HasPrev() bool {
	return s.page > 0
}

// HasNext is false on the last reported page.
func (s *Server) HasNext() bool {
	return s.page < s.totalPages-1
}

// Seek moves the cursor without fetching. Used to restore a screen to the page
// it was showing before an action.
func (s *Server) Seek(page int) {
	if page < 0 {
		page = 0
	}
	s.page = page
}

// Adopt records what the server reported for a request of page requested.
// Missing fields fall back to zero pages and the requested index.
func (s *Server) Adopt(requested int, number, totalPages *int) {
	s.page = requested
	if number != nil {
		s.page = *number
	}
	s.totalPages = 0
	if totalPages != nil {
		s.totalPages = *totalPages
	}
}

// Pages lists every page index, one entry per navigation button.
func (s *Server) Pages() []int {
	pages := make([]int, s.totalPages)
	for i := range pages {
		pages[i] = i
	}
	return pages
}

// Local paginates an in-memory list with a one-based page index.
type Local[T any] struct {
	size  int
	page  int
	items []T
}

// NewLocal returns an empty paginator on page 1.
func NewLocal[T any](size int) *Local[T] {
	return &Local[T]{size: size, page: 1}
}

func (l *Local[T]) Size() int { return l.size }

// Page returns the current page clamped into [1, TotalPages].
func (l *Local[T]) Page() int {
	return clamp(l.page, 1, l.TotalPages())
}

// TotalPages is ceil(len/size), never less than 1.
func (l *Local[T]) TotalPages() int {
	total := (len(l.items) + l.size - 1) / l.size
	if total < 1 {
		return 1
	}
	return total
}

func (l *Local[T]) HasPrev() bool { return l.Page() > 1 }
func (l *Local[T]) HasNext() bool { return l.Page() < l.TotalPages() }

// Len returns the number of items across all pages.
func (l *Local[T]) Len() int {
	return len(l.items)
}

// All returns the full list.
func (l *Local[T]) All() []T {
	return l.items
}

// SetItems replaces the list and clamps the current page to the new size.
func (l *Local[T]) SetItems(items []T) {
	l.items = items
	l.page = l.Page()
}

// Go moves to page, clamped into range.
func (l *Local[T]) Go(page int) {
	l.page = clamp(page, 1, l.TotalPages())
}

func (l *Local[T]) First() { l.Go(1) }
func (l *Local[T]) Prev()  { l.Go(l.Page() - 1) }
func (l *Local[T]) Next()  { l.Go(l.Page() + 1) }
func (l *Local[T]) Last()  { l.Go(l.TotalPages()) }

// Items returns the slice of the list on the current page.
func (l *Local[T]) Items() []T {
	start := (l.Page() - 1) * l.size
	if start >= len(l.items) {
		return nil
	}
	end := start + l.size
	if end > len(l.items) {
		end = len(l.items)
	}
	return l.items[start:end]
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

var (
	_ State = (*Server)(nil)
	_ State = (*Local[int])(nil)
)
