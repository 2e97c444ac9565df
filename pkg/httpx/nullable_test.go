package httpx_test

import (
	"encoding/json"
	"testing"

	"github.com/ghuser/capsule/pkg/httpx"
)

type patchPayload struct {
	Brand httpx.Nullable[string] `json:"brand"`
	Price httpx.Nullable[string] `json:"price"`
}

func TestNullable_absent(t *testing.T) {
	var p patchPayload
	if err := json.Unmarshal([]byte(`{}`), &p); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if p.Brand.Set {
		t.Fatal("absent field must not be marked set")
	}
}

func TestNullable_null(t *testing.T) {
	var p patchPayload
	if err := json.Unmarshal([]byte(`{"brand":null}`), &p); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !p.Brand.Set {
		t.Fatal("null field must be marked set")
	}
	if p.Brand.Valid {
		t.Fatal("null field must not be valid")
	}
	if p.Brand.Ptr() != nil {
		t.Fatal("Ptr must be nil for null")
	}
}

func TestNullable_value(t *testing.T) {
	var p patchPayload
	if err := json.Unmarshal([]byte(`{"brand":"Levi's","price":"29.99"}`), &p); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !p.Brand.Set || !p.Brand.Valid || p.Brand.Value != "Levi's" {
		t.Fatalf("unexpected brand state: %+v", p.Brand)
	}
	if ptr := p.Price.Ptr(); ptr == nil || *ptr != "29.99" {
		t.Fatalf("unexpected price pointer: %v", ptr)
	}
}

func TestNullable_typeMismatch(t *testing.T) {
	var p patchPayload
	if err := json.Unmarshal([]byte(`{"brand":42}`), &p); err == nil {
		t.Fatal("expected unmarshal error for wrong type")
	}
}
