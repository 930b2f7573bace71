package set

// Set is a collection of unique elements that remembers insertion order.
type Set[T comparable] struct {
	items map[T]struct{}
	order []T
}

// New creates and returns a new empty Set.
func New[T comparable]() *Set[T] {
	return &Set[T]{
		items: make(map[T]struct{}),
	}
}

// FromSlice keeps the first occurrence of every item.
func FromSlice[T comparable](items []T) *Set[T] {
	set := New[T]()
	for _, item := range items {
		set.Add(item)
	}
	return set
}

// Add reports whether item was new.
func (s *Set[T]) Add(item T) bool {
	if _, exists := s.items[item]; exists {
		return false
	}
	s.items[item] = struct{}{}
	s.order = append(s.order, item)
	return true
}

func (s *Set[T]) Contains(item T) bool {
	_, exists := s.items[item]
	return exists
}

func (s *Set[T]) Size() int {
	return len(s.items)
}

// ToSlice returns the items in insertion order. It is never nil.
func (s *Set[T]) ToSlice() []T {
	result := make([]T, len(s.order))
	copy(result, s.order)
	return result
}
