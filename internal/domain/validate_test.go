package domain

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

type signup struct {
	Name     string  `json:"name" validate:"required,max=5"`
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"required,min=3,maxbytes=8"`
	Age      *int    `json:"age" validate:"required,gte=0"`
	Nick     *string `json:"nick" validate:"omitempty,notblank"`
	Ref      string  `json:"ref" validate:"omitempty,uuidref"`
	Internal string  `json:"-" validate:"omitempty,max=1"`
}

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }

func TestValidate_OK(t *testing.T) {
	in := signup{
		Name:     "Ann",
		Email:    "ann@example.com",
		Password: "secret",
		Age:      intPtr(0),
		Ref:      "6f1c2b9e-58a4-4c1e-9a53-0d7f2f4b8e11",
	}
	if err := Validate(in); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestValidate_Messages(t *testing.T) {
	in := &signup{
		Name:     "Annabel",
		Email:    "ann@localhost",
		Password: "ééééé",
		Age:      intPtr(-1),
		Nick:     strPtr("  "),
		Ref:      "00000000-0000-0000-0000-000000000000",
	}
	err := Validate(in)

	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected *ValidationError, got %T: %v", err, err)
	}
	if !errors.Is(err, ErrValidation) {
		t.Error("expected ErrValidation in chain")
	}
	want := map[string][]string{
		"name":     {"Ensure this field has no more than 5 characters."},
		"email":    {"Enter a valid email address."},
		"password": {"Ensure this field has no more than 8 bytes."},
		"age":      {"Ensure this value is greater than or equal to 0."},
		"nick":     {"This field is required."},
		"ref":      {"Must be a valid UUID."},
	}
	if got := ve.Fields(); !reflect.DeepEqual(got, want) {
		t.Errorf("fields = %v, want %v", got, want)
	}
}

func TestValidate_Required(t *testing.T) {
	err := Validate(&signup{})
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected *ValidationError, got %v", err)
	}
	got := ve.Fields()
	for _, field := range []string{"name", "email", "password", "age"} {
		if msgs := got[field]; len(msgs) != 1 || msgs[0] != "This field is required." {
			t.Errorf("%s: got %v", field, msgs)
		}
	}
	if _, ok := got["nick"]; ok {
		t.Error("nil optional field should be skipped")
	}
}

func TestValidate_MinCountsCharacters(t *testing.T) {
	in := signup{Name: "Ann", Email: "ann@example.com", Password: "ab", Age: intPtr(1)}
	err := Validate(in)
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected *ValidationError, got %v", err)
	}
	if msg := ve.Fields()["password"]; len(msg) != 1 || !strings.Contains(msg[0], "at least 3 characters") {
		t.Errorf("password: got %v", msg)
	}
}
