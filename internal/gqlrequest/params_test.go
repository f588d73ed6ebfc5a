package gqlrequest

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestDecodeParams_JSONBody(t *testing.T) {
	body := `{"query":"query getUser { user { id } }","operationName":"getUser","variables":{"id":"1"}}`
	r := httptest.NewRequest(http.MethodPost, "/graphql", strings.NewReader(body))
	r.Header.Set("Content-Type", "application/json; charset=utf-8")

	params, err := DecodeParams(r)
	if err != nil {
		t.Fatalf("DecodeParams() error = %v", err)
	}
	if params["operationName"] != "getUser" {
		t.Fatalf("operationName = %v, want getUser", params["operationName"])
	}
	if _, ok := params["query"].(string); !ok {
		t.Fatalf("query = %T, want string", params["query"])
	}
	if _, ok := params["variables"].(map[string]any); !ok {
		t.Fatalf("variables = %T, want map", params["variables"])
	}

	// The body must remain readable by downstream handlers.
	rewound, _ := io.ReadAll(r.Body)
	if string(rewound) != body {
		t.Fatalf("rewound body = %q, want original body", rewound)
	}
}

func TestDecodeParams_GraphQLContentType(t *testing.T) {
	query := `query getUser { user { id } }`
	r := httptest.NewRequest(http.MethodPost, "/graphql", strings.NewReader(query))
	r.Header.Set("Content-Type", "application/graphql")

	params, err := DecodeParams(r)
	if err != nil {
		t.Fatalf("DecodeParams() error = %v", err)
	}
	if params["query"] != query {
		t.Fatalf("query = %v, want raw body", params["query"])
	}
}

func TestDecodeParams_NonPost(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/graphql?query=%7Buser%7D", nil)

	params, err := DecodeParams(r)
	if err != nil {
		t.Fatalf("DecodeParams() error = %v", err)
	}
	if params != nil {
		t.Fatalf("params = %v, want nil for GET", params)
	}
}

func TestDecodeParams_EmptyBody(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/graphql", strings.NewReader("   "))
	r.Header.Set("Content-Type", "application/json")

	params, err := DecodeParams(r)
	if err != nil {
		t.Fatalf("DecodeParams() error = %v", err)
	}
	if params != nil {
		t.Fatalf("params = %v, want nil for empty body", params)
	}
}

func TestDecodeParams_MalformedJSON(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/graphql", strings.NewReader(`{"query":`))
	r.Header.Set("Content-Type", "application/json")

	params, err := DecodeParams(r)
	if err == nil {
		t.Fatalf("expected decode error")
	}
	if params != nil {
		t.Fatalf("params = %v, want nil on decode error", params)
	}
}
