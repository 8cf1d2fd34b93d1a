package apperr

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestHTTPStatusMapping(t *testing.T) {
	cases := []struct {
		kind Kind
		want int
	}{
		{KindInvalidArgument, http.StatusBadRequest},
		{KindBadRequest, http.StatusBadRequest},
		{KindNotFound, http.StatusNotFound},
		{KindUnauthorized, http.StatusUnauthorized},
		{KindUnavailable, http.StatusServiceUnavailable},
		{KindUpstream, http.StatusBadGateway},
		{KindInternal, http.StatusInternalServerError},
	}

	for _, tc := range cases {
		if got := New(tc.kind, "x").HTTPStatus(); got != tc.want {
			t.Fatalf("kind %d: expected status %d, got %d", tc.kind, tc.want, got)
		}
	}
}

func TestGetKindFollowsWrapChain(t *testing.T) {
	inner := Unavailable("lead store unavailable", context.DeadlineExceeded)
	wrapped := fmt.Errorf("kpis: %w", inner)

	if !Is(wrapped, KindUnavailable) {
		t.Fatalf("expected KindUnavailable through wrap chain, got %d", GetKind(wrapped))
	}
	if !errors.Is(wrapped, context.DeadlineExceeded) {
		t.Fatal("expected errors.Is to reach the underlying deadline error")
	}
	if GetKind(errors.New("plain")) != KindUnknown {
		t.Fatal("expected KindUnknown for untyped errors")
	}
}
