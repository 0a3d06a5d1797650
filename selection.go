package main

// Selection tracks which task is focused within the currently-loaded
// list. The index is only meaningful while the list is non-empty and
// must be re-validated after every mutation that changes the length.
type Selection struct {
	index int
	size  int
}

// Index returns the focused position, or false when the list is empty.
func (s *Selection) Index() (int, bool) {
	if s.size == 0 {
		return 0, false
	}
	return s.index, true
}

// Resize re-validates the selection against a list of n elements,
// keeping the prior position when it is still in range.
func (s *Selection) Resize(n int) {
	s.size = n

	if n == 0 {
		s.index = 0
		return
	}

	if s.index >= n {
		s.index = n - 1
	}
	if s.index < 0 {
		s.index = 0
	}
}

// Down moves one position forward, wrapping from the last element to
// the first. No-op on an empty list.
func (s *Selection) Down() {
	if s.size == 0 {
		return
	}
	s.index = (s.index + 1) % s.size
}

// Up moves one position back, wrapping from the first element to the
// last. No-op on an empty list.
func (s *Selection) Up() {
	if s.size == 0 {
		return
	}
	s.index = (s.index - 1 + s.size) % s.size
}

// Removed re-validates the selection after the element at removed was
// deleted: the focus moves one position earlier unless it was already
// at the first position, where it stays.
func (s *Selection) Removed(removed, newLen int) {
	s.size = newLen

	if newLen == 0 {
		s.index = 0
		return
	}

	if removed > 0 {
		s.index = removed - 1
	} else {
		s.index = 0
	}

	if s.index >= newLen {
		s.index = newLen - 1
	}
}
