package gqlrequest

import (
	"net/http"
	"strings"
	"testing"
)

func TestInspect_RecognizesOperations(t *testing.T) {
	tests := []struct {
		name     string
		method   string
		params   map[string]any
		wantNil  bool
		wantType OperationType
		wantName string
	}{
		{
			name:   "named query with explicit operationName",
			method: http.MethodPost,
			params: map[string]any{
				"query":         `query getUser { user { id } }`,
				"operationName": "getUser",
			},
			wantType: OperationQuery,
			wantName: "getUser",
		},
		{
			name:   "mutation with name in query text",
			method: http.MethodPost,
			params: map[string]any{
				"query": `mutation track($userId: String!) { track(userId: $userId) { status } }`,
			},
			wantType: OperationMutation,
			wantName: "track",
		},
		{
			name:   "anonymous query resolves to sentinel",
			method: http.MethodPost,
			params: map[string]any{
				"query": `query { user { id } }`,
			},
			wantType: OperationQuery,
			wantName: UnnamedOperation,
		},
		{
			name:    "GET is never GraphQL",
			method:  http.MethodGet,
			params:  map[string]any{"query": `query getUser { user { id } }`},
			wantNil: true,
		},
		{
			name:    "missing query parameter",
			method:  http.MethodPost,
			params:  map[string]any{"operationName": "getUser"},
			wantNil: true,
		},
		{
			name:    "array-valued query parameter",
			method:  http.MethodPost,
			params:  map[string]any{"query": []any{"not a string"}},
			wantNil: true,
		},
		{
			name:    "map-valued query parameter",
			method:  http.MethodPost,
			params:  map[string]any{"query": map[string]any{"nested": true}},
			wantNil: true,
		},
		{
			name:    "unrecognizable query text",
			method:  http.MethodPost,
			params:  map[string]any{"query": "not graphql at all"},
			wantNil: true,
		},
		{
			name:    "nil params",
			method:  http.MethodPost,
			params:  nil,
			wantNil: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			op := Inspect(tt.method, tt.params, InspectOptions{})
			if tt.wantNil {
				if op != nil {
					t.Fatalf("Inspect() = %+v, want nil", op)
				}
				return
			}
			if op == nil {
				t.Fatalf("Inspect() = nil, want operation")
			}
			if op.Type != tt.wantType {
				t.Fatalf("operation type = %q, want %q", op.Type, tt.wantType)
			}
			if op.Name != tt.wantName {
				t.Fatalf("operation name = %q, want %q", op.Name, tt.wantName)
			}
		})
	}
}

func TestInspect_UnnamedQueryCapture(t *testing.T) {
	query := `query { user { id } }`
	params := map[string]any{"query": query}

	op := Inspect(http.MethodPost, params, InspectOptions{IncludeUnnamedQueries: true})
	if op == nil {
		t.Fatalf("expected operation")
	}
	if op.QueryText != query {
		t.Fatalf("QueryText = %q, want raw query", op.QueryText)
	}

	op = Inspect(http.MethodPost, params, InspectOptions{})
	if op.QueryText != "" {
		t.Fatalf("QueryText = %q, want empty without opt-in", op.QueryText)
	}

	named := map[string]any{"query": `query getUser { user { id } }`}
	op = Inspect(http.MethodPost, named, InspectOptions{IncludeUnnamedQueries: true})
	if op.QueryText != "" {
		t.Fatalf("QueryText = %q, want empty for named operation", op.QueryText)
	}
}

func TestInspect_Variables(t *testing.T) {
	params := map[string]any{
		"query": `query getUser { user { id } }`,
		"variables": map[string]any{
			"user_uid": "abc",
			"password": "hunter2",
		},
	}

	op := Inspect(http.MethodPost, params, InspectOptions{
		IncludeVariables:  true,
		FilteredVariables: DefaultFilteredVariables(),
	})
	if op == nil {
		t.Fatalf("expected operation")
	}
	if op.VariablesJSON == "" {
		t.Fatalf("expected VariablesJSON to be attached")
	}
	if want := `"password":"[FILTERED]"`; !strings.Contains(op.VariablesJSON, want) {
		t.Fatalf("VariablesJSON = %q, want it to contain %q", op.VariablesJSON, want)
	}
	if want := `"user_uid":"abc"`; !strings.Contains(op.VariablesJSON, want) {
		t.Fatalf("VariablesJSON = %q, want it to contain %q", op.VariablesJSON, want)
	}

	// Disabled capture never attaches variables.
	op = Inspect(http.MethodPost, params, InspectOptions{})
	if op.VariablesJSON != "" {
		t.Fatalf("VariablesJSON = %q, want empty when capture disabled", op.VariablesJSON)
	}
}

func TestInspect_VariablesIgnoredWhenNotAMap(t *testing.T) {
	tests := []struct {
		name      string
		variables any
	}{
		{"array variables", []any{"a", "b"}},
		{"string variables", "not a map"},
		{"empty map", map[string]any{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := map[string]any{
				"query":     `query getUser { user { id } }`,
				"variables": tt.variables,
			}
			op := Inspect(http.MethodPost, params, InspectOptions{IncludeVariables: true})
			if op == nil {
				t.Fatalf("expected operation")
			}
			if op.VariablesJSON != "" {
				t.Fatalf("VariablesJSON = %q, want empty", op.VariablesJSON)
			}
		})
	}
}
