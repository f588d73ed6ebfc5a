// Package gqlrequest derives GraphQL operation metadata from raw HTTP
// request payloads. It deliberately avoids a full GraphQL parser: the
// access log only needs the operation kind and a best-effort name, and a
// document the pattern matcher cannot read is an expected outcome, not an
// error.
package gqlrequest

import (
	"regexp"
	"strings"
)

// OperationType tags a recognized GraphQL operation kind.
type OperationType string

const (
	OperationQuery    OperationType = "QUERY"
	OperationMutation OperationType = "MUTATION"
)

// UnnamedOperation marks a request that was recognized as GraphQL but whose
// operation name could not be resolved. It is distinct from "not GraphQL",
// which Classify and Inspect report as absent.
const UnnamedOperation = "unnamed"

var (
	// Matches `query <name>` / `mutation <name>` with any amount of
	// whitespace (including newlines) before and after the keyword. The
	// name is captured before whatever follows it: an argument list, a
	// brace, or nothing at all. Argument lists with missing commas or
	// array-typed arguments never reach the capture group.
	namedOperationPattern = regexp.MustCompile(`^\s*(?:query|mutation)\s+([_A-Za-z][_0-9A-Za-z]*)`)

	// Matches the shorthand form `{ <name> ... }`, taking the first
	// identifier inside the outer braces.
	shorthandOperationPattern = regexp.MustCompile(`^\s*\{\s*([_A-Za-z][_0-9A-Za-z]*)`)
)

// Classify derives the operation type from raw query text. The second
// return value is false when the text is not recognizable as GraphQL.
func Classify(query string) (OperationType, bool) {
	trimmed := strings.TrimSpace(query)
	switch {
	case strings.HasPrefix(trimmed, "query"):
		return OperationQuery, true
	case strings.HasPrefix(trimmed, "mutation"):
		return OperationMutation, true
	case strings.HasPrefix(trimmed, "{"):
		return OperationQuery, true
	}
	return "", false
}

// ExtractName resolves the operation name for a request already classified
// as GraphQL. An explicit operationName parameter wins over anything in the
// query text. When neither source yields a name the UnnamedOperation
// sentinel is returned, never an empty string.
func ExtractName(operationName, query string) string {
	if operationName != "" {
		return operationName
	}
	if m := namedOperationPattern.FindStringSubmatch(query); m != nil {
		return m[1]
	}
	if m := shorthandOperationPattern.FindStringSubmatch(query); m != nil {
		return m[1]
	}
	return UnnamedOperation
}
