package telestream_test

import (
	"testing"

	"tcloud/internal/services/telestream"
)

func TestQueryParamsKeepInsertionOrderAndReplace(t *testing.T) {
	t.Parallel()

	q := telestream.NewQueryParams().
		Add("page", "1").
		Add("per_page", "20").
		Add("page", "2")

	if q.Len() != 2 {
		t.Fatalf("expected 2 params, got %d", q.Len())
	}
	if got := q.Encode(); got != "page=2&per_page=20" {
		t.Fatalf("unexpected encoding %q", got)
	}
}

func TestQueryParamsOptionalHelpers(t *testing.T) {
	t.Parallel()

	q := telestream.NewQueryParams().
		AddString("status", "").
		AddString("video_id", "   ").
		AddBool("screenshots", nil).
		AddInt("page", nil).
		AddBool("expand", telestream.Bool(false)).
		AddInt("per_page", telestream.Int(50)).
		AddInt64("file_size", 12582912)

	if _, ok := q.Get("status"); ok {
		t.Fatal("blank string should be omitted")
	}
	if _, ok := q.Get("screenshots"); ok {
		t.Fatal("nil bool should be omitted")
	}
	if got := q.Encode(); got != "expand=false&per_page=50&file_size=12582912" {
		t.Fatalf("unexpected encoding %q", got)
	}
}

func TestQueryParamsEncodeEscapesRFC3986(t *testing.T) {
	t.Parallel()

	q := telestream.NewQueryParams().Add("file_name", "my clip+1.mov")
	if got := q.Encode(); got != "file_name=my%20clip%2B1.mov" {
		t.Fatalf("unexpected encoding %q", got)
	}
}

func TestQueryParamsCloneIsIndependent(t *testing.T) {
	t.Parallel()

	var nilParams *telestream.QueryParams
	if nilParams.Clone().Len() != 0 {
		t.Fatal("clone of nil should be empty")
	}

	original := telestream.NewQueryParams().Add("a", "1")
	clone := original.Clone().Add("b", "2")
	if original.Len() != 1 {
		t.Fatalf("original mutated: %v", original.Params())
	}
	if clone.Len() != 2 {
		t.Fatalf("clone missing param: %v", clone.Params())
	}
}
