package validate

import (
	"testing"

	perr "shelfprep/internal/platform/errors"
	kit "shelfprep/internal/platform/testkit"
)

type opts struct {
	Books  string `flag:"books" validate:"required"`
	Sample int    `flag:"sample-rows" validate:"min=1"`
	Driver string `flag:"driver" validate:"oneof=sqlite postgres"`
}

func TestStruct_OK(t *testing.T) {
	if err := Struct(opts{Books: "books.csv", Sample: 200, Driver: "sqlite"}); err != nil {
		t.Fatalf("unexpected: %v", err)
	}
}

func TestStruct_MinUsesFlagName(t *testing.T) {
	err := Struct(opts{Books: "books.csv", Sample: 0, Driver: "sqlite"})
	if !perr.IsCode(err, perr.ErrorCodeValidation) {
		t.Fatalf("expected validation code, got %v", err)
	}
	kit.MustContain(t, err.Error(), "-sample-rows must be at least 1")
	e, ok := perr.As(err)
	if !ok || e.Field() != "-sample-rows" {
		t.Fatalf("field not attached: %+v", e)
	}
}

func TestStruct_Required(t *testing.T) {
	err := Struct(opts{Sample: 1, Driver: "postgres"})
	kit.MustContain(t, err.Error(), "-books")
}

func TestStruct_OneOf(t *testing.T) {
	err := Struct(opts{Books: "b", Sample: 1, Driver: "mysql"})
	kit.MustContain(t, err.Error(), "-driver must be one of [sqlite postgres]")
}

func TestStruct_NonStruct(t *testing.T) {
	err := Struct(42)
	if err == nil || perr.IsCode(err, perr.ErrorCodeValidation) {
		t.Fatalf("expected internal error, got %v", err)
	}
}

func TestFieldAndMessage_Plain(t *testing.T) {
	if f, m := FieldAndMessage(nil); f != "" || m != "" {
		t.Fatalf("nil should be empty")
	}
}
