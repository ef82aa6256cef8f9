package indexer

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/chcg/jsonql/pkg/value"
)

// NameEntry is one member of a NameList: either a literal key or a
// compiled regex matched against every key in iteration order.
type NameEntry struct {
	Literal string
	Regex   *regexp.Regexp
}

func (e NameEntry) matches(key string) bool {
	if e.Regex != nil {
		return e.Regex.MatchString(key)
	}
	return e.Literal == key
}

func (e NameEntry) String() string {
	if e.Regex != nil {
		return "/" + e.Regex.String() + "/"
	}
	return strconv.Quote(e.Literal)
}

// NameList selects keys from an Object, in the list's own order for the
// literal entries it finds present, or in object-iteration order for each
// regex entry's matches.
type NameList struct {
	Entries   []NameEntry
	Recursive bool
}

func (n *NameList) String() string {
	names := make([]string, len(n.Entries))
	for i, e := range n.Entries {
		names[i] = e.String()
	}
	s := "[" + strings.Join(names, ",") + "]"
	if n.Recursive {
		return ".." + s
	}
	return s
}

func (n *NameList) Eval(input value.Value) Seq {
	if n.Recursive {
		return n.evalRecursive(input)
	}
	return n.evalFlat(input)
}

func (n *NameList) evalFlat(input value.Value) Seq {
	obj, ok := input.(*value.Object)
	if !ok {
		if value.TagOf(input) == value.Unknown {
			return empty()
		}
		return fail(typeError("a NameList indexer requires an object, got %s", value.TagOf(input)))
	}
	return func(yield func(Element, error) bool) {
		for _, entry := range n.Entries {
			if entry.Regex == nil {
				if v, present := obj.Get(entry.Literal); present {
					if !yield(Element{Key: entry.Literal, HasKey: true, Value: v}, nil) {
						return
					}
				}
				continue
			}
			for _, pair := range obj.Pairs() {
				if entry.Regex.MatchString(pair.Key) {
					if !yield(Element{Key: pair.Key, HasKey: true, Value: pair.Value}, nil) {
						return
					}
				}
			}
		}
	}
}

// evalRecursive performs a depth-first search for each NameList entry in
// turn, suppressing duplicate nodes with a visited-path set keyed by the
// comma-joined path to each candidate, per the "per list entry, document
// order" traversal rule. Matches are yielded as bare values, not (key,
// value) pairs: distinct matches can come from unrelated parts of the
// tree and may share a key, so the result is array-shaped, never a dict.
func (n *NameList) evalRecursive(input value.Value) Seq {
	return func(yield func(Element, error) bool) {
		visited := make(map[string]struct{})
		for _, entry := range n.Entries {
			if !walkRecursiveName(input, entry, "", visited, yield) {
				return
			}
		}
	}
}

func walkRecursiveName(node value.Value, entry NameEntry, path string, visited map[string]struct{}, yield func(Element, error) bool) bool {
	switch x := node.(type) {
	case *value.Object:
		for _, pair := range x.Pairs() {
			childPath := joinPath(path, pair.Key)
			if entry.matches(pair.Key) {
				if _, seen := visited[childPath]; !seen {
					visited[childPath] = struct{}{}
					if !yield(Element{Value: pair.Value}, nil) {
						return false
					}
				}
				continue
			}
			if !walkRecursiveName(pair.Value, entry, childPath, visited, yield) {
				return false
			}
		}
	case []value.Value:
		for i, el := range x {
			if !walkRecursiveName(el, entry, joinPath(path, indexString(i)), visited, yield) {
				return false
			}
		}
	}
	return true
}

func joinPath(path, segment string) string {
	if path == "" {
		return segment
	}
	return path + "," + segment
}

func indexString(i int) string {
	return "#" + strconv.Itoa(i)
}
