package nav

// Link is an entry paired with whether it matches the current path.
type Link struct {
	Entry
	Active bool
}

// Classify marks each entry active when its path equals currentPath.
// The result follows table order and is recomputed on every call.
func Classify(t *Table, currentPath string) []Link {
	if t == nil {
		return nil
	}
	links := make([]Link, 0, len(t.entries))
	for _, e := range t.entries {
		links = append(links, Link{Entry: e, Active: e.Path == currentPath})
	}
	return links
}

// ActiveEntry returns the single active link, if any.
func ActiveEntry(links []Link) (Entry, bool) {
	for _, l := range links {
		if l.Active {
			return l.Entry, true
		}
	}
	return Entry{}, false
}
