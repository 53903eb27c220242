package project

import "strings"

// Filter decides whether a process should be tracked at all.
//
// Allow-list semantics: a process is tracked only when its executable name is
// in the tracked set and not in the ignored set. Ignored always wins. There
// is no pattern matching; names are compared case-insensitively.
type Filter struct {
	tracked map[string]struct{}
	ignored map[string]struct{}
}

func NewFilter(tracked, ignored []string) Filter {
	return Filter{
		tracked: toSet(tracked),
		ignored: toSet(ignored),
	}
}

func (f Filter) Tracked(process string) bool {
	name := strings.ToLower(strings.TrimSpace(process))
	if name == "" {
		return false
	}
	if _, ok := f.ignored[name]; ok {
		return false
	}
	_, ok := f.tracked[name]
	return ok
}

func toSet(names []string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		n = strings.ToLower(strings.TrimSpace(n))
		if n == "" {
			continue
		}
		set[n] = struct{}{}
	}
	return set
}
