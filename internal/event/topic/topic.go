package topic

import "strings"

// Topic is a dot-separated event name such as "drag.started" or
// "traverse.committed". A topic used for subscribing may contain wildcards.
type Topic string

const (
	// Separator divides topic segments.
	Separator = "."

	// Any matches exactly one segment.
	Any = "*"

	// Rest matches zero or more segments.
	Rest = "**"
)

// String returns the topic as a string.
func (t Topic) String() string {
	return string(t)
}

// Segments splits the topic on Separator. The empty topic has no segments.
func (t Topic) Segments() []string {
	if t == "" {
		return nil
	}
	return strings.Split(string(t), Separator)
}

// Child appends a segment.
func (t Topic) Child(segment string) Topic {
	if t == "" {
		return Topic(segment)
	}
	return t + Separator + Topic(segment)
}

// Root returns the first segment.
func (t Topic) Root() string {
	s := string(t)
	if i := strings.Index(s, Separator); i >= 0 {
		return s[:i]
	}
	return s
}

// IsPattern returns true if the topic contains a wildcard segment.
func (t Topic) IsPattern() bool {
	for _, seg := range t.Segments() {
		if seg == Any || seg == Rest {
			return true
		}
	}
	return false
}

// IsValid returns true for a non-empty topic without empty segments.
func (t Topic) IsValid() bool {
	if t == "" {
		return false
	}
	for _, seg := range t.Segments() {
		if seg == "" {
			return false
		}
	}
	return true
}

// Matches reports whether t is matched by pattern.
func (t Topic) Matches(pattern Topic) bool {
	return match(t.Segments(), pattern.Segments())
}

func match(name, pattern []string) bool {
	for len(pattern) > 0 {
		head := pattern[0]
		if head == Rest {
			for i := 0; i <= len(name); i++ {
				if match(name[i:], pattern[1:]) {
					return true
				}
			}
			return false
		}
		if len(name) == 0 || (head != Any && head != name[0]) {
			return false
		}
		name, pattern = name[1:], pattern[1:]
	}
	return len(name) == 0
}

// Join builds a topic from segments.
func Join(segments ...string) Topic {
	return Topic(strings.Join(segments, Separator))
}
