package quiz

// DefaultHistorySize is the number of recently served question ids remembered
// when repeats are disallowed.
const DefaultHistorySize = 5

// History is a bounded FIFO of recently served question ids, used to avoid
// immediate repeats.
type History struct {
	ids []string
	cap int
}

// NewHistory creates a history bounded to size entries. A non-positive size
// falls back to DefaultHistorySize.
func NewHistory(size int) *History {
	if size <= 0 {
		size = DefaultHistorySize
	}
	return &History{cap: size}
}

// Record appends an id, evicting the oldest entry when the bound is reached.
func (h *History) Record(id string) {
	h.ids = append(h.ids, id)
	if len(h.ids) > h.cap {
		h.ids = h.ids[len(h.ids)-h.cap:]
	}
}

// Contains reports whether id is among the remembered entries.
func (h *History) Contains(id string) bool {
	for _, v := range h.ids {
		if v == id {
			return true
		}
	}
	return false
}

// Resize changes the bound, evicting oldest entries if needed.
func (h *History) Resize(size int) {
	if size <= 0 {
		size = DefaultHistorySize
	}
	h.cap = size
	if len(h.ids) > h.cap {
		h.ids = h.ids[len(h.ids)-h.cap:]
	}
}

// Len returns the number of remembered ids.
func (h *History) Len() int {
	return len(h.ids)
}

// Clear forgets all remembered ids.
func (h *History) Clear() {
	h.ids = h.ids[:0]
}

// IDs returns a copy of the remembered ids, oldest first.
func (h *History) IDs() []string {
	out := make([]string, len(h.ids))
	copy(out, h.ids)
	return out
}
