package gqlrequest

// FilteredValue replaces the value of any variable whose key is on the
// deny list.
const FilteredValue = "[FILTERED]"

// DefaultFilteredVariables returns the default deny list of variable keys
// whose values are redacted from access logs.
func DefaultFilteredVariables() []string {
	return []string{"password", "passwordConfirmation", "idToken", "refreshToken"}
}

// FilterVariables returns a copy of vars with denied keys redacted. The
// input map is never mutated. Filtering an already-filtered map with the
// same deny list yields the same result.
func FilterVariables(vars map[string]any, deny []string) map[string]any {
	denySet := make(map[string]struct{}, len(deny))
	for _, key := range deny {
		denySet[key] = struct{}{}
	}

	filtered := make(map[string]any, len(vars))
	for key, value := range vars {
		if _, denied := denySet[key]; denied {
			filtered[key] = FilteredValue
			continue
		}
		filtered[key] = value
	}
	return filtered
}
