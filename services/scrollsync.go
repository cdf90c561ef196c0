package services

const (
	// ProbeOffset is added to scrollTop so the tab switches slightly before a
	// section reaches the top, under the sticky header.
	ProbeOffset = 220.0
	// ScrollCompensation is subtracted from a section's top when jumping to it.
	ScrollCompensation = 180.0
)

// Section is the rendered geometry of one category block, as reported by the client.
type Section struct {
	CategoryID string  `json:"categoryId"`
	Top        float64 `json:"top"`
	Height     float64 `json:"height"`
}

func (s Section) contains(pos float64) bool {
	return pos >= s.Top && pos < s.Top+s.Height
}

// ActiveCategory returns the first section, in display order, whose span
// [top, top+height) contains scrollTop+ProbeOffset. With no match prev is kept.
func ActiveCategory(scrollTop float64, sections []Section, prev string) string {
	probe := scrollTop + ProbeOffset
	for _, s := range sections {
		if s.contains(probe) {
			return s.CategoryID
		}
	}
	return prev
}

// Tracker keeps the highlighted category tab in sync with scrolling.
type Tracker struct {
	Sections  []Section `json:"sections"`
	Active    string    `json:"active"`
	ScrollTop float64   `json:"scrollTop"`
}

// NewTracker starts with the first visible category active.
func NewTracker(visible []string) *Tracker {
	t := &Tracker{}
	if len(visible) > 0 {
		t.Active = visible[0]
	}
	return t
}

// SetLayout replaces the section geometry. Sections for categories not in
// visible are dropped and the rest are put in display order.
func (t *Tracker) SetLayout(visible []string, sections []Section) {
	byID := make(map[string]Section, len(sections))
	for _, s := range sections {
		byID[s.CategoryID] = s
	}
	ordered := make([]Section, 0, len(visible))
	for _, id := range visible {
		if s, ok := byID[id]; ok {
			ordered = append(ordered, s)
		}
	}
	t.Sections = ordered
	if t.Active == "" && len(visible) > 0 {
		t.Active = visible[0]
	}
}

// OnScroll recomputes the active category for a new scroll offset.
func (t *Tracker) OnScroll(scrollTop float64) string {
	t.ScrollTop = scrollTop
	t.Active = ActiveCategory(scrollTop, t.Sections, t.Active)
	return t.Active
}

// ScrollToCategory returns the offset the client should smooth-scroll to and
// marks the category active right away. ok is false for categories without a
// rendered section; nothing changes then.
func (t *Tracker) ScrollToCategory(id string) (target float64, ok bool) {
	for _, s := range t.Sections {
		if s.CategoryID == id {
			t.Active = id
			return s.Top - ScrollCompensation, true
		}
	}
	return 0, false
}
