package cascade

import "fmt"

// Disambiguate returns a display name for a duplicate that collides with none
// of the existing sibling names. The first candidate is "<name> (Copy)"; if
// taken, the counter climbs: "<name> (Copy 2)", "<name> (Copy 3)", and so on.
// Duplicating a duplicate therefore yields "<name> (Copy) (Copy)" rather than
// reusing an existing name.
func Disambiguate(sourceName string, siblingNames []string) string {
	taken := make(map[string]struct{}, len(siblingNames))
	for _, n := range siblingNames {
		taken[n] = struct{}{}
	}

	candidate := sourceName + " (Copy)"
	if _, ok := taken[candidate]; !ok {
		return candidate
	}
	for i := 2; ; i++ {
		candidate = fmt.Sprintf("%s (Copy %d)", sourceName, i)
		if _, ok := taken[candidate]; !ok {
			return candidate
		}
	}
}
