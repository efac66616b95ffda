package record

import (
	"strings"

	"github.com/schollz/closestmatch"

	"salesdesk/pkg/normalize"
)

// Field describes a logical column: exact aliases are tried first, in order,
// then substrings that the normalized header must contain.
type Field struct {
	Name     string
	Exact    []string
	Contains []string
}

// KeyIndex maps normalized headers back to the original header text for one
// fetch. It is rebuilt per call because worksheets disagree on headers.
type KeyIndex struct {
	order  []string
	lookup map[string]string
}

// IndexKeys builds the index from a record's header set. When two headers
// normalize to the same key the later one wins.
func IndexKeys(r Record) KeyIndex {
	idx := KeyIndex{lookup: make(map[string]string, r.Len())}
	for _, k := range r.keys {
		nk := normalize.Key(k)
		if _, seen := idx.lookup[nk]; !seen {
			idx.order = append(idx.order, nk)
		}
		idx.lookup[nk] = k
	}
	return idx
}

// Find resolves the first matching header. The bool is false when nothing
// matched, which callers treat as absent data.
func (idx KeyIndex) Find(exact []string, contains ...string) (string, bool) {
	for _, cand := range exact {
		if orig, ok := idx.lookup[normalize.Key(cand)]; ok {
			return orig, true
		}
	}
	for _, cand := range contains {
		want := normalize.Key(cand)
		if want == "" {
			continue
		}
		for _, nk := range idx.order {
			if strings.Contains(nk, want) {
				return idx.lookup[nk], true
			}
		}
	}
	return "", false
}

func (idx KeyIndex) Resolve(f Field) (string, bool) {
	return idx.Find(f.Exact, f.Contains...)
}

// Columns resolves a set of fields at once, keyed by Field.Name. Unresolved
// fields map to "" which Record.Get reads as Empty.
func (idx KeyIndex) Columns(fields ...Field) map[string]string {
	out := make(map[string]string, len(fields))
	for _, f := range fields {
		out[f.Name], _ = idx.Resolve(f)
	}
	return out
}

// Suggest returns the header closest to name, for diagnostics when a field
// failed to resolve. It never feeds back into resolution.
func (idx KeyIndex) Suggest(name string) string {
	if len(idx.order) == 0 {
		return ""
	}
	cm := closestmatch.New(idx.order, []int{2, 3})
	best := cm.Closest(normalize.Key(name))
	return idx.lookup[best]
}
