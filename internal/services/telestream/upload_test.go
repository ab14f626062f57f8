package telestream_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"testing"

	"tcloud/internal/services"
	"tcloud/internal/services/telestream"
)

func TestStartUploadReturnsSession(t *testing.T) {
	t.Parallel()

	api := newFakeAPI(t)
	api.handle(http.MethodPost, "videos/upload.json", http.StatusOK, `{"id":"u1","location":"https://upload.example.com/u1"}`)
	client := api.client(t)

	session, err := client.StartUpload(context.Background(), "fac-1", 12582912, "clip one.mov")
	if err != nil {
		t.Fatalf("StartUpload: %v", err)
	}
	if session.Location != "https://upload.example.com/u1" {
		t.Fatalf("unexpected session %+v", session)
	}

	req := api.recorded()[0]
	for name, want := range map[string]string{
		"file_size":  "12582912",
		"file_name":  "clip one.mov",
		"profiles":   "h264",
		"factory_id": "fac-1",
	} {
		if got := queryValue(req, name); got != want {
			t.Fatalf("%s = %q, want %q", name, got, want)
		}
	}
}

func TestStartUploadJoinsProfiles(t *testing.T) {
	t.Parallel()

	api := newFakeAPI(t)
	api.handle(http.MethodPost, "videos/upload.json", http.StatusOK, `{"location":"https://upload.example.com/u2"}`)
	client := api.client(t)

	if _, err := client.StartUpload(context.Background(), "fac-1", 10, "a.mov", "h264", " ", "webm"); err != nil {
		t.Fatalf("StartUpload: %v", err)
	}
	if got := queryValue(api.recorded()[0], "profiles"); got != "h264,webm" {
		t.Fatalf("unexpected profiles %q", got)
	}
}

func TestStartUploadRejectsMissingLocation(t *testing.T) {
	t.Parallel()

	api := newFakeAPI(t)
	api.handle(http.MethodPost, "videos/upload.json", http.StatusOK, `{"id":"u3"}`)
	client := api.client(t)

	_, err := client.StartUpload(context.Background(), "fac-1", 10, "a.mov")
	if !errors.Is(err, services.ErrDecode) {
		t.Fatalf("expected decode error, got %v", err)
	}
}

func TestUploadFileSendsRangedChunks(t *testing.T) {
	t.Parallel()

	const total = 12 * 1024 * 1024
	api := newFakeAPI(t)
	api.handleRaw(http.MethodPost, "/upload/u1", http.StatusOK, `{}`)
	client := api.client(t)

	data := bytes.Repeat([]byte{0xAB}, total)
	var progress []float64
	session := telestream.UploadSession{Location: api.server.URL + "/upload/u1"}
	err := client.UploadFile(context.Background(), session, bytes.NewReader(data), func(f float64) {
		progress = append(progress, f)
	})
	if err != nil {
		t.Fatalf("UploadFile: %v", err)
	}

	reqs := api.recorded()
	wantRanges := []string{
		"bytes 0-5242879/12582912",
		"bytes 5242880-10485759/12582912",
		"bytes 10485760-12582911/12582912",
	}
	if len(reqs) != len(wantRanges) {
		t.Fatalf("expected %d chunks, got %d", len(wantRanges), len(reqs))
	}
	sent := 0
	for i, req := range reqs {
		if got := req.Header.Get("Content-Range"); got != wantRanges[i] {
			t.Fatalf("chunk %d: Content-Range %q, want %q", i, got, wantRanges[i])
		}
		if req.Header.Get("Cache-Control") != "no-cache" {
			t.Fatalf("chunk %d: missing Cache-Control", i)
		}
		if req.Header.Get("Content-Type") != "application/octet-stream" {
			t.Fatalf("chunk %d: unexpected content type %q", i, req.Header.Get("Content-Type"))
		}
		sent += len(req.Body)
	}
	if sent != total {
		t.Fatalf("expected %d bytes sent, got %d", total, sent)
	}

	if len(progress) != len(reqs) {
		t.Fatalf("expected %d progress callbacks, got %d", len(reqs), len(progress))
	}
	for i := 1; i < len(progress); i++ {
		if progress[i] < progress[i-1] {
			t.Fatalf("progress decreased: %v", progress)
		}
	}
	if progress[len(progress)-1] != 1.0 {
		t.Fatalf("expected final progress 1.0, got %v", progress[len(progress)-1])
	}
}

func TestUploadFileChunkCountMatchesLength(t *testing.T) {
	t.Parallel()

	sizes := []int{1, telestream.UploadBlockSize - 1, telestream.UploadBlockSize, telestream.UploadBlockSize + 1}
	for _, size := range sizes {
		api := newFakeAPI(t)
		api.handleRaw(http.MethodPost, "/upload", http.StatusOK, ``)
		client := api.client(t)

		session := telestream.UploadSession{Location: api.server.URL + "/upload"}
		if err := client.UploadFile(context.Background(), session, bytes.NewReader(make([]byte, size)), nil); err != nil {
			t.Fatalf("size %d: UploadFile: %v", size, err)
		}

		want := (size + telestream.UploadBlockSize - 1) / telestream.UploadBlockSize
		reqs := api.recorded()
		if len(reqs) != want {
			t.Fatalf("size %d: expected %d chunks, got %d", size, want, len(reqs))
		}
		last := reqs[len(reqs)-1].Header.Get("Content-Range")
		if !strings.HasSuffix(last, fmt.Sprintf("-%d/%d", size-1, size)) {
			t.Fatalf("size %d: unexpected final range %q", size, last)
		}
	}
}

func TestUploadFileResumesFromCurrentOffset(t *testing.T) {
	t.Parallel()

	api := newFakeAPI(t)
	api.handleRaw(http.MethodPost, "/upload", http.StatusOK, ``)
	client := api.client(t)

	reader := bytes.NewReader([]byte("0123456789"))
	if _, err := reader.Seek(4, io.SeekStart); err != nil {
		t.Fatalf("seek: %v", err)
	}
	var last float64
	session := telestream.UploadSession{Location: api.server.URL + "/upload"}
	if err := client.UploadFile(context.Background(), session, reader, func(f float64) { last = f }); err != nil {
		t.Fatalf("UploadFile: %v", err)
	}

	req := api.recorded()[0]
	if got := req.Header.Get("Content-Range"); got != "bytes 4-9/10" {
		t.Fatalf("unexpected range %q", got)
	}
	if string(req.Body) != "456789" {
		t.Fatalf("unexpected body %q", req.Body)
	}
	if last != 1.0 {
		t.Fatalf("expected final progress 1.0, got %v", last)
	}
}

// shrinkingReader reports size bytes when measured but only yields data.
type shrinkingReader struct {
	*bytes.Reader
	size int64
}

func (r shrinkingReader) Seek(offset int64, whence int) (int64, error) {
	if whence == io.SeekEnd {
		if _, err := r.Reader.Seek(offset, io.SeekEnd); err != nil {
			return 0, err
		}
		return r.size + offset, nil
	}
	return r.Reader.Seek(offset, whence)
}

func TestUploadFileFailsWhenStreamEndsEarly(t *testing.T) {
	t.Parallel()

	api := newFakeAPI(t)
	api.handleRaw(http.MethodPost, "/upload", http.StatusOK, ``)
	client := api.client(t)

	reader := shrinkingReader{Reader: bytes.NewReader([]byte("012345")), size: 10}
	var last float64
	session := telestream.UploadSession{Location: api.server.URL + "/upload"}
	err := client.UploadFile(context.Background(), session, reader, func(f float64) { last = f })
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Fatalf("expected io.ErrUnexpectedEOF, got %v", err)
	}
	reqs := api.recorded()
	if len(reqs) != 1 || reqs[0].Header.Get("Content-Range") != "bytes 0-5/10" {
		t.Fatalf("unexpected chunks %+v", reqs)
	}
	if last >= 1.0 {
		t.Fatalf("truncated upload reported progress %v", last)
	}
}

func TestUploadFileUsesUploadTransport(t *testing.T) {
	t.Parallel()

	api := newFakeAPI(t)
	api.handleRaw(http.MethodPost, "/upload", http.StatusOK, ``)
	uploads := &countingDoer{next: http.DefaultClient}
	client, err := telestream.New(telestream.Config{
		AccessKey:        "access",
		SecretKey:        "secret",
		BaseURL:          api.server.URL + apiPrefix,
		HTTPClient:       &countingDoer{next: http.DefaultClient},
		UploadHTTPClient: uploads,
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	session := telestream.UploadSession{Location: api.server.URL + "/upload"}
	if err := client.UploadFile(context.Background(), session, bytes.NewReader([]byte("abc")), nil); err != nil {
		t.Fatalf("UploadFile: %v", err)
	}
	if err := client.FinalizeUpload(context.Background(), session, 3); err != nil {
		t.Fatalf("FinalizeUpload: %v", err)
	}
	if uploads.calls != 2 {
		t.Fatalf("expected 2 requests on the upload transport, got %d", uploads.calls)
	}
}

type countingDoer struct {
	next  telestream.HTTPDoer
	calls int
}

func (d *countingDoer) Do(req *http.Request) (*http.Response, error) {
	d.calls++
	return d.next.Do(req)
}

func TestUploadFileEmptyStreamSendsNothing(t *testing.T) {
	t.Parallel()

	api := newFakeAPI(t)
	client := api.client(t)

	called := false
	session := telestream.UploadSession{Location: api.server.URL + "/upload"}
	if err := client.UploadFile(context.Background(), session, bytes.NewReader(nil), func(float64) { called = true }); err != nil {
		t.Fatalf("UploadFile: %v", err)
	}
	if len(api.recorded()) != 0 || called {
		t.Fatal("empty stream should not send chunks or report progress")
	}
}

func TestUploadFileStopsOnChunkFailure(t *testing.T) {
	t.Parallel()

	api := newFakeAPI(t)
	api.handleRaw(http.MethodPost, "/upload", http.StatusServiceUnavailable, `try later`)
	client := api.client(t)

	session := telestream.UploadSession{Location: api.server.URL + "/upload"}
	data := make([]byte, telestream.UploadBlockSize*2)
	err := client.UploadFile(context.Background(), session, bytes.NewReader(data), nil)

	var protoErr *telestream.ProtocolError
	if !errors.As(err, &protoErr) || protoErr.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 ProtocolError, got %v", err)
	}
	if got := len(api.recorded()); got != 1 {
		t.Fatalf("expected upload to stop after first chunk, got %d requests", got)
	}
}

func TestUploadFileHonoursCancellation(t *testing.T) {
	t.Parallel()

	api := newFakeAPI(t)
	client := api.client(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	session := telestream.UploadSession{Location: api.server.URL + "/upload"}
	err := client.UploadFile(ctx, session, bytes.NewReader([]byte("data")), nil)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if len(api.recorded()) != 0 {
		t.Fatal("cancelled upload should not send chunks")
	}
}

func TestUploadFileRequiresLocation(t *testing.T) {
	t.Parallel()

	api := newFakeAPI(t)
	client := api.client(t)

	err := client.UploadFile(context.Background(), telestream.UploadSession{}, bytes.NewReader([]byte("x")), nil)
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestFinalizeUploadSendsEmptyRange(t *testing.T) {
	t.Parallel()

	api := newFakeAPI(t)
	api.handleRaw(http.MethodPost, "/upload", http.StatusOK, ``)
	client := api.client(t)

	session := telestream.UploadSession{Location: api.server.URL + "/upload"}
	if err := client.FinalizeUpload(context.Background(), session, 42); err != nil {
		t.Fatalf("FinalizeUpload: %v", err)
	}
	req := api.recorded()[0]
	if got := req.Header.Get("Content-Range"); got != "bytes */42" {
		t.Fatalf("unexpected range %q", got)
	}
	if len(req.Body) != 0 {
		t.Fatalf("expected empty body, got %d bytes", len(req.Body))
	}
	if got := req.Header.Get("Content-Length"); got != "" && got != "0" {
		t.Fatalf("unexpected content length %q", got)
	}
}
