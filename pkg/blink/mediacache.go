package blink

// clipHistory is a fixed-capacity record of recently observed clip
// addresses for one camera. Each refresh cycle retires the previous
// cycle's entries but keeps them for comparison: a clip counts as
// motion only if the previous cycle had not seen it.
type clipHistory struct {
	capacity int
	prev     []string
	clips    []string
}

func newClipHistory(capacity int) *clipHistory {
	if capacity < 1 {
		capacity = 1
	}
	return &clipHistory{capacity: capacity}
}

// beginCycle resets the history for a new refresh cycle. The retired
// entries stay visible to record until the next beginCycle.
func (h *clipHistory) beginCycle() {
	h.prev = h.clips
	h.clips = nil
}

// record stores a clip address observed this cycle and reports whether
// it is genuinely new. An empty address is a "none" sentinel: never
// cached, never motion.
func (h *clipHistory) record(address string) bool {
	if address == "" {
		return false
	}
	h.clips = append(h.clips, address)
	if len(h.clips) > h.capacity {
		h.clips = h.clips[len(h.clips)-h.capacity:]
	}
	return !h.seenLastCycle(address)
}

func (h *clipHistory) seenLastCycle(address string) bool {
	for _, c := range h.prev {
		if c == address {
			return true
		}
	}
	return false
}

// entries returns the addresses recorded this cycle, oldest first.
func (h *clipHistory) entries() []string {
	out := make([]string, len(h.clips))
	copy(out, h.clips)
	return out
}
