package lineclass

import "regexp"

// Entry pairs a tag with the matcher that selects it.
type Entry[T any] struct {
	Tag   T
	Match func(string) bool
}

// Table is an ordered list of entries. Order is part of its contract:
// First returns the earliest entry whose matcher accepts the input.
type Table[T any] []Entry[T]

// First returns the tag of the first entry that matches s.
func (t Table[T]) First(s string) (T, bool) {
	for _, e := range t {
		if e.Match(s) {
			return e.Tag, true
		}
	}
	var zero T
	return zero, false
}

// Tags returns the tags of the table in evaluation order.
func (t Table[T]) Tags() []T {
	tags := make([]T, len(t))
	for i, e := range t {
		tags[i] = e.Tag
	}
	return tags
}

// Pattern builds an entry matching a compiled regular expression.
func Pattern[T any](tag T, expr string) Entry[T] {
	re := regexp.MustCompile(expr)
	return Entry[T]{Tag: tag, Match: re.MatchString}
}
