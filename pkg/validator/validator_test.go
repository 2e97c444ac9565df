package validator_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	pkgvalidator "github.com/ghuser/capsule/pkg/validator"
)

type sampleStruct struct {
	Name          string  `json:"name" validate:"required,min=1,max=255"`
	ImageURLFront string  `json:"image_url_front" validate:"required,url"`
	Price         *string `json:"price" validate:"omitempty,numeric"`
}

func TestValidate_valid(t *testing.T) {
	s := sampleStruct{
		Name:          "Blue Jacket",
		ImageURLFront: "http://localhost:9000/capsule-images/a.jpg",
	}
	if err := pkgvalidator.Validate(&s); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
}

func TestValidate_missingRequired(t *testing.T) {
	s := sampleStruct{}
	if err := pkgvalidator.Validate(&s); err == nil {
		t.Fatal("expected validation error for empty struct")
	}
}

func TestFormatValidationErrors_usesJSONNames(t *testing.T) {
	s := sampleStruct{}
	err := pkgvalidator.Validate(&s)
	m := pkgvalidator.FormatValidationErrors(err)

	if got := m["name"]; len(got) != 1 || got[0] != "This field is required" {
		t.Errorf("unexpected name messages: %v", got)
	}
	if got := m["image_url_front"]; len(got) != 1 || got[0] != "This field is required" {
		t.Errorf("unexpected image_url_front messages: %v", got)
	}
}

func TestFormatValidationErrors_url(t *testing.T) {
	s := sampleStruct{Name: "ok", ImageURLFront: "not a url"}
	err := pkgvalidator.Validate(&s)
	m := pkgvalidator.FormatValidationErrors(err)
	if got := m["image_url_front"]; len(got) != 1 || got[0] != "Must be a valid URL" {
		t.Errorf("unexpected messages: %v", got)
	}
}

func TestFormatValidationErrors_nonValidationError(t *testing.T) {
	m := pkgvalidator.FormatValidationErrors(http.ErrBodyNotAllowed)
	if len(m) != 0 {
		t.Fatalf("expected empty map for non-validation error, got %v", m)
	}
}

func TestValidateRequest_invalidJSON(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("{not json"))

	_, ok := pkgvalidator.ValidateRequest[sampleStruct](w, r)
	if ok {
		t.Fatal("expected failure for malformed JSON")
	}
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestValidateRequest_validationFailure(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":""}`))

	_, ok := pkgvalidator.ValidateRequest[sampleStruct](w, r)
	if ok {
		t.Fatal("expected failure for invalid payload")
	}
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Validation failed.") {
		t.Errorf("expected generic failure message, got %s", w.Body.String())
	}
}

func TestValidateRequest_success(t *testing.T) {
	w := httptest.NewRecorder()
	body := `{"name":"Blue Jacket","image_url_front":"http://localhost:9000/capsule-images/a.jpg"}`
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))

	req, ok := pkgvalidator.ValidateRequest[sampleStruct](w, r)
	if !ok {
		t.Fatalf("expected success, response: %s", w.Body.String())
	}
	if req.Name != "Blue Jacket" {
		t.Errorf("unexpected parsed name: %q", req.Name)
	}
}
