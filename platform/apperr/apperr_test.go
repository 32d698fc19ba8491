package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestHTTPStatusMapping(t *testing.T) {
	cases := map[Kind]int{
		KindNotFound:     http.StatusNotFound,
		KindValidation:   http.StatusBadRequest,
		KindConflict:     http.StatusConflict,
		KindUnauthorized: http.StatusUnauthorized,
		KindInternal:     http.StatusInternalServerError,
		KindUnavailable:  http.StatusServiceUnavailable,
		KindUnknown:      http.StatusInternalServerError,
	}
	for kind, want := range cases {
		if got := New(kind, "x").HTTPStatus(); got != want {
			t.Fatalf("kind %d: expected %d, got %d", kind, want, got)
		}
	}
}

func TestGetKindSeesThroughWrapping(t *testing.T) {
	err := fmt.Errorf("outer: %w", NotFound("catalog not found"))
	if GetKind(err) != KindNotFound {
		t.Fatalf("expected KindNotFound, got %d", GetKind(err))
	}
	if GetKind(errors.New("plain")) != KindUnknown {
		t.Fatal("expected KindUnknown for untyped error")
	}
}

func TestInternalPreservesCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := Internal("error while deleting catalog id [7]", cause)
	if !errors.Is(err, cause) {
		t.Fatal("expected cause to be reachable through errors.Is")
	}
	if err.Error() != "error while deleting catalog id [7]: connection reset" {
		t.Fatalf("unexpected message: %q", err.Error())
	}
}
