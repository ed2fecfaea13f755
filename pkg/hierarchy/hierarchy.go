// Package hierarchy defines the topic → subtopic → card input of a concept map
// and reads it from JSON, YAML and TOML documents.
//
// A [Hierarchy] is owned by the caller; the engine only reads it. Every id in a
// hierarchy (topics, subtopics and cards alike) lives in one shared namespace
// because known and collapsed state is keyed by the bare id. Duplicate ids are
// not rejected: [Hierarchy.DuplicateIDs] reports them so tooling can warn.
package hierarchy

// Card is a leaf fact the learner can mark as known.
type Card struct {
	ID      string `json:"id" yaml:"id" toml:"id"`
	Title   string `json:"title" yaml:"title" toml:"title"`
	Content string `json:"content,omitempty" yaml:"content,omitempty" toml:"content,omitempty"`
}

// Subtopic groups cards. Card order is display order; the list may be empty.
type Subtopic struct {
	ID    string `json:"id" yaml:"id" toml:"id"`
	Title string `json:"title" yaml:"title" toml:"title"`
	Cards []Card `json:"cards" yaml:"cards" toml:"cards"`
}

// Topic groups subtopics.
type Topic struct {
	ID        string     `json:"id" yaml:"id" toml:"id"`
	Title     string     `json:"title" yaml:"title" toml:"title"`
	Subtopics []Subtopic `json:"subtopics" yaml:"subtopics" toml:"subtopics"`
}

// Hierarchy is the ordered list of topics that forms the root input.
type Hierarchy []Topic

// Document is a hierarchy as stored in a file, with an optional display title.
type Document struct {
	Title  string    `json:"title,omitempty" yaml:"title,omitempty" toml:"title,omitempty"`
	Topics Hierarchy `json:"topics" yaml:"topics" toml:"topics"`
}

// CardCount returns the number of cards across all topics.
func (h Hierarchy) CardCount() int {
	n := 0
	for _, t := range h {
		for _, s := range t.Subtopics {
			n += len(s.Cards)
		}
	}
	return n
}

// CardIDs returns every card id in hierarchy order.
func (h Hierarchy) CardIDs() []string {
	ids := make([]string, 0, h.CardCount())
	for _, t := range h {
		for _, s := range t.Subtopics {
			for _, c := range s.Cards {
				ids = append(ids, c.ID)
			}
		}
	}
	return ids
}

// ContainerIDs returns every topic and subtopic id in hierarchy order: each
// topic followed by its subtopics. These are the ids that can be collapsed.
func (h Hierarchy) ContainerIDs() []string {
	var ids []string
	for _, t := range h {
		ids = append(ids, t.ID)
		for _, s := range t.Subtopics {
			ids = append(ids, s.ID)
		}
	}
	return ids
}

// HasCard reports whether id names a card.
func (h Hierarchy) HasCard(id string) bool {
	for _, t := range h {
		for _, s := range t.Subtopics {
			for _, c := range s.Cards {
				if c.ID == id {
					return true
				}
			}
		}
	}
	return false
}

// HasContainer reports whether id names a topic or a subtopic.
func (h Hierarchy) HasContainer(id string) bool {
	for _, t := range h {
		if t.ID == id {
			return true
		}
		for _, s := range t.Subtopics {
			if s.ID == id {
				return true
			}
		}
	}
	return false
}

// DuplicateIDs returns ids that occur more than once anywhere in the
// hierarchy, in order of their second occurrence. Each id is listed once.
func (h Hierarchy) DuplicateIDs() []string {
	seen := make(map[string]int)
	var dups []string
	note := func(id string) {
		seen[id]++
		if seen[id] == 2 {
			dups = append(dups, id)
		}
	}
	for _, t := range h {
		note(t.ID)
		for _, s := range t.Subtopics {
			note(s.ID)
			for _, c := range s.Cards {
				note(c.ID)
			}
		}
	}
	return dups
}
