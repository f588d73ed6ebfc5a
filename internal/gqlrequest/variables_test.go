package gqlrequest

import (
	"reflect"
	"testing"
)

func TestFilterVariables_RedactsDeniedKeys(t *testing.T) {
	vars := map[string]any{
		"email":    "user@example.com",
		"password": "hunter2",
		"idToken":  "abc123",
		"limit":    float64(10),
	}

	got := FilterVariables(vars, DefaultFilteredVariables())

	want := map[string]any{
		"email":    "user@example.com",
		"password": FilteredValue,
		"idToken":  FilteredValue,
		"limit":    float64(10),
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("FilterVariables() = %v, want %v", got, want)
	}
}

func TestFilterVariables_DoesNotMutateInput(t *testing.T) {
	vars := map[string]any{"password": "hunter2"}

	FilterVariables(vars, []string{"password"})

	if vars["password"] != "hunter2" {
		t.Fatalf("input map was mutated: password = %v", vars["password"])
	}
}

func TestFilterVariables_Idempotent(t *testing.T) {
	vars := map[string]any{
		"password":     "hunter2",
		"refreshToken": "tok",
		"name":         "alice",
	}
	deny := DefaultFilteredVariables()

	once := FilterVariables(vars, deny)
	twice := FilterVariables(once, deny)

	if !reflect.DeepEqual(once, twice) {
		t.Fatalf("filtering is not idempotent: %v vs %v", once, twice)
	}
}

func TestFilterVariables_EmptyDenyList(t *testing.T) {
	vars := map[string]any{"password": "hunter2"}

	got := FilterVariables(vars, nil)

	if got["password"] != "hunter2" {
		t.Fatalf("expected passthrough with empty deny list, got %v", got["password"])
	}
}
