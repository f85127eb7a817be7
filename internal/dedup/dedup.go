package dedup

// Set remembers canonical URLs in the order they were first added.
// It is not safe for concurrent use; each owner is single-threaded.
type Set struct {
	seen  map[string]struct{}
	order []string
}

func NewSet() *Set {
	return &Set{seen: make(map[string]struct{})}
}

// IsSeen checks if a URL has already been added
func (s *Set) IsSeen(url string) bool {
	_, exists := s.seen[url]
	return exists
}

// Add records url and reports whether it was new.
func (s *Set) Add(url string) bool {
	if _, exists := s.seen[url]; exists {
		return false
	}
	s.seen[url] = struct{}{}
	s.order = append(s.order, url)
	return true
}

func (s *Set) Len() int { return len(s.order) }

// URLs returns the urls in first-seen order.
func (s *Set) URLs() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}
