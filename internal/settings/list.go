package settings

import "strings"

// ParseList splits a comma-separated setting-list into trimmed identifiers.
// Empty pieces are dropped, so "" yields an empty slice.
func ParseList(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// FormatList serializes identifiers as a comma-separated setting-list.
func FormatList(ids []string) string {
	return strings.Join(ids, ",")
}

// AppendUnique appends ids to list and removes duplicates, keeping the first
// occurrence of each identifier.
func AppendUnique(list []string, ids ...string) []string {
	seen := make(map[string]struct{}, len(list)+len(ids))
	out := make([]string, 0, len(list)+len(ids))
	for _, id := range append(append([]string(nil), list...), ids...) {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
