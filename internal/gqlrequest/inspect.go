package gqlrequest

import (
	"encoding/json"
	"net/http"
)

// Operation describes a recognized GraphQL operation. A nil *Operation
// means the request was not a GraphQL operation at all.
type Operation struct {
	Type OperationType
	Name string

	// QueryText carries the raw query string, only when the name resolved
	// to UnnamedOperation and the caller opted in to unnamed-query capture.
	QueryText string

	// VariablesJSON is the pre-encoded, filtered JSON text of the request
	// variables, only when variable capture is enabled and variables exist.
	VariablesJSON string
}

// InspectOptions control which optional fields Inspect attaches.
type InspectOptions struct {
	IncludeVariables      bool
	FilteredVariables     []string
	IncludeUnnamedQueries bool
}

// Inspect decides whether a request is a GraphQL operation and produces its
// descriptor. Only POST requests carrying a string-valued "query" body
// parameter qualify; any other shape (GET, missing query, array-valued
// query) yields nil with no error. Inspect is a pure function of its
// inputs and never fails: a variables payload that cannot be re-encoded is
// simply dropped.
func Inspect(method string, params map[string]any, opts InspectOptions) *Operation {
	if method != http.MethodPost || params == nil {
		return nil
	}

	query, ok := params["query"].(string)
	if !ok {
		return nil
	}
	opType, ok := Classify(query)
	if !ok {
		return nil
	}

	requestedName, _ := params["operationName"].(string)
	op := &Operation{
		Type: opType,
		Name: ExtractName(requestedName, query),
	}

	if op.Name == UnnamedOperation && opts.IncludeUnnamedQueries {
		op.QueryText = query
	}

	if opts.IncludeVariables {
		if vars, ok := params["variables"].(map[string]any); ok && len(vars) > 0 {
			filtered := FilterVariables(vars, opts.FilteredVariables)
			if encoded, err := json.Marshal(filtered); err == nil {
				op.VariablesJSON = string(encoded)
			}
		}
	}

	return op
}
