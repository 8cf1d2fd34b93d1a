package validator

import "testing"

type pageQuery struct {
	Page    int `form:"page" validate:"min=1"`
	PerPage int `form:"per_page" validate:"min=1,max=100"`
}

func TestFieldErrorsUseFormNames(t *testing.T) {
	err := New().Struct(pageQuery{Page: 0, PerPage: 500})
	if err == nil {
		t.Fatal("expected validation error")
	}
	fields := FieldErrors(err)
	if fields["page"] != "min=1" || fields["per_page"] != "max=100" {
		t.Fatalf("unexpected field errors %v", fields)
	}
}

func TestFieldErrorsIgnoresOtherErrors(t *testing.T) {
	if FieldErrors(nil) != nil {
		t.Fatal("expected nil for nil error")
	}
}
