package telestream_test

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"tcloud/internal/services"
	"tcloud/internal/services/telestream"
)

type failingDoer struct{ err error }

func (f failingDoer) Do(*http.Request) (*http.Response, error) { return nil, f.err }

func TestInvokeSignsAndScopesRequests(t *testing.T) {
	t.Parallel()

	api := newFakeAPI(t)
	api.handle(http.MethodGet, "videos.json", http.StatusOK, `[{"id":"v1","status":"success"}]`)
	client := api.client(t)

	videos, err := client.GetVideos(context.Background(), "fac-1", telestream.ListOptions{Page: telestream.Int(2)})
	if err != nil {
		t.Fatalf("GetVideos: %v", err)
	}
	if len(videos) != 1 || videos[0].ID != "v1" {
		t.Fatalf("unexpected videos %+v", videos)
	}

	reqs := api.recorded()
	if len(reqs) != 1 {
		t.Fatalf("expected 1 request, got %d", len(reqs))
	}
	req := reqs[0]
	if req.Path != apiPrefix+"/videos.json" {
		t.Fatalf("unexpected path %s", req.Path)
	}
	for name, want := range map[string]string{
		"factory_id": "fac-1",
		"page":       "2",
		"access_key": "access",
		"timestamp":  "2024-03-01T12:00:00Z",
	} {
		if got := queryValue(req, name); got != want {
			t.Fatalf("%s = %q, want %q", name, got, want)
		}
	}
	if queryValue(req, "signature") == "" {
		t.Fatal("expected signature parameter")
	}
	if req.Header.Get("X-Request-Id") == "" {
		t.Fatal("expected request id header")
	}
	if !strings.HasPrefix(req.Header.Get("User-Agent"), "tcloud/") {
		t.Fatalf("unexpected user agent %q", req.Header.Get("User-Agent"))
	}
}

func TestInvokeProtocolErrorCarriesStatusAndBody(t *testing.T) {
	t.Parallel()

	api := newFakeAPI(t)
	api.handle(http.MethodGet, "encodings/e1.json", http.StatusUnprocessableEntity, `{"error":"bad state"}`)
	client := api.client(t)

	_, err := client.GetEncoding(context.Background(), "fac-1", "e1", nil)
	var protoErr *telestream.ProtocolError
	if !errors.As(err, &protoErr) {
		t.Fatalf("expected ProtocolError, got %v", err)
	}
	if protoErr.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("unexpected status %d", protoErr.StatusCode)
	}
	if !strings.Contains(protoErr.Body, "bad state") {
		t.Fatalf("expected body in error, got %q", protoErr.Body)
	}
	if !errors.Is(err, services.ErrProtocol) || errors.Is(err, services.ErrNotFound) {
		t.Fatalf("unexpected markers for %v", err)
	}
	if services.Kind(err) != "protocol" {
		t.Fatalf("unexpected kind %q", services.Kind(err))
	}
}

func TestInvokeNotFoundMatchesMarker(t *testing.T) {
	t.Parallel()

	api := newFakeAPI(t)
	client := api.client(t)

	_, err := client.GetVideo(context.Background(), "fac-1", "missing", false)
	if !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if services.Kind(err) != "not_found" {
		t.Fatalf("unexpected kind %q", services.Kind(err))
	}
}

func TestInvokeDeserializationError(t *testing.T) {
	t.Parallel()

	api := newFakeAPI(t)
	api.handle(http.MethodGet, "profiles.json", http.StatusOK, `{"not":"a list"}`)
	client := api.client(t)

	_, err := client.GetProfiles(context.Background(), "fac-1", telestream.ProfileListOptions{})
	var decodeErr *telestream.DeserializationError
	if !errors.As(err, &decodeErr) {
		t.Fatalf("expected DeserializationError, got %v", err)
	}
	if !errors.Is(err, services.ErrDecode) {
		t.Fatalf("expected decode marker, got %v", err)
	}
}

func TestInvokeTransportError(t *testing.T) {
	t.Parallel()

	client, err := telestream.New(telestream.Config{
		AccessKey:  "access",
		SecretKey:  "secret",
		HTTPClient: failingDoer{err: errors.New("connection refused")},
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	_, err = client.GetFactories(context.Background())
	var transportErr *telestream.TransportError
	if !errors.As(err, &transportErr) {
		t.Fatalf("expected TransportError, got %v", err)
	}
	if services.Kind(err) != "transport" {
		t.Fatalf("unexpected kind %q", services.Kind(err))
	}
}

func TestNewRequiresCredentialsAndAbsoluteURL(t *testing.T) {
	t.Parallel()

	if _, err := telestream.New(telestream.Config{SecretKey: "s"}); err == nil {
		t.Fatal("expected error without access key")
	}
	if _, err := telestream.New(telestream.Config{AccessKey: "a", SecretKey: "s", BaseURL: "api/flip"}); err == nil {
		t.Fatal("expected error for relative base url")
	}
}
