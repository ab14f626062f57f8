package telestream

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"tcloud/internal/logging"
)

// UploadBlockSize is the number of bytes sent per chunk.
const UploadBlockSize = 5 * 1024 * 1024

const defaultUploadProfile = "h264"

// ProgressFunc receives the uploaded fraction of the stream, in [0, 1], after
// every chunk. It runs on the upload loop, so a slow callback delays the next
// chunk.
type ProgressFunc func(fraction float64)

// StartUpload opens an upload session for a file of fileSize bytes. Encodings
// for profiles (default h264) are created once the upload completes.
func (c *Client) StartUpload(ctx context.Context, factoryID string, fileSize int64, fileName string, profiles ...string) (UploadSession, error) {
	if err := requireIDs("factoryId", factoryID, "fileName", fileName); err != nil {
		return UploadSession{}, err
	}
	if fileSize <= 0 {
		return UploadSession{}, &ValidationError{Field: "fileSize", Reason: "must be positive"}
	}

	requested := make([]string, 0, len(profiles))
	for _, p := range profiles {
		if p = strings.TrimSpace(p); p != "" {
			requested = append(requested, p)
		}
	}
	if len(requested) == 0 {
		requested = []string{defaultUploadProfile}
	}

	query := NewQueryParams().
		AddInt64("file_size", fileSize).
		Add("file_name", fileName).
		Add("profiles", strings.Join(requested, ","))
	req := Post(factoryID, "videos/upload.json", query, nil)
	session, err := invoke[UploadSession](ctx, c, req)
	if err != nil {
		return UploadSession{}, err
	}
	if strings.TrimSpace(session.Location) == "" {
		return UploadSession{}, &DeserializationError{Path: req.Path, Err: errors.New("upload session has no location")}
	}
	return session, nil
}

// UploadFile sends data to session.Location in UploadBlockSize chunks, one
// request at a time, starting at the stream's current offset. Each chunk is
// tagged with a Content-Range header against the full stream length. A failed
// chunk aborts the upload; earlier chunks are not rolled back. A stream that
// ends before its measured length fails with io.ErrUnexpectedEOF.
//
// No finalization request is sent; see FinalizeUpload.
func (c *Client) UploadFile(ctx context.Context, session UploadSession, data io.ReadSeeker, onProgress ProgressFunc) error {
	if c == nil {
		return errors.New("telestream: client is nil")
	}
	if err := requireIDs("location", session.Location); err != nil {
		return err
	}
	if data == nil {
		return &ValidationError{Field: "data"}
	}

	pos, total, err := streamBounds(data)
	if err != nil {
		return err
	}

	bufSize := int64(UploadBlockSize)
	if remaining := total - pos; remaining < bufSize {
		bufSize = remaining
	}
	if bufSize <= 0 {
		return nil
	}
	buf := make([]byte, bufSize)

	logger := logging.WithContext(ctx, c.logger)
	sampler := logging.NewProgressSampler(0.1)
	for {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("telestream: upload interrupted at byte %d: %w", pos, err)
		}

		n, readErr := io.ReadFull(data, buf)
		if readErr != nil && !errors.Is(readErr, io.EOF) && !errors.Is(readErr, io.ErrUnexpectedEOF) {
			return fmt.Errorf("telestream: read upload data at byte %d: %w", pos, readErr)
		}
		if n == 0 {
			break
		}

		contentRange := fmt.Sprintf("bytes %d-%d/%d", pos, pos+int64(n)-1, total)
		if err := c.sendChunk(ctx, session.Location, contentRange, buf[:n]); err != nil {
			return err
		}

		pos += int64(n)
		fraction := float64(pos) / float64(total)
		if sampler.ShouldLog(fraction) {
			logger.Debug("upload chunk sent",
				logging.String("content_range", contentRange),
				logging.Float64("fraction", fraction),
			)
		}
		if onProgress != nil {
			onProgress(fraction)
		}
		if n < len(buf) {
			break
		}
	}
	if pos != total {
		return fmt.Errorf("telestream: upload data ended at byte %d of %d: %w", pos, total, io.ErrUnexpectedEOF)
	}
	return nil
}

// FinalizeUpload sends the empty "bytes */total" request some chunked-upload
// servers expect after the last chunk. UploadFile never calls it.
func (c *Client) FinalizeUpload(ctx context.Context, session UploadSession, total int64) error {
	if c == nil {
		return errors.New("telestream: client is nil")
	}
	if err := requireIDs("location", session.Location); err != nil {
		return err
	}
	if total < 0 {
		return &ValidationError{Field: "total", Reason: "must not be negative"}
	}
	return c.sendChunk(ctx, session.Location, "bytes */"+strconv.FormatInt(total, 10), nil)
}

func (c *Client) sendChunk(ctx context.Context, location, contentRange string, chunk []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, location, bytes.NewReader(chunk))
	if err != nil {
		return fmt.Errorf("telestream: build upload request: %w", err)
	}
	req.ContentLength = int64(len(chunk))
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("Content-Range", contentRange)
	req.Header.Set("Content-Type", "application/octet-stream")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.uploads.Do(req)
	if err != nil {
		return &TransportError{Method: http.MethodPost, Path: location, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyLimit))
		return &ProtocolError{
			StatusCode: resp.StatusCode,
			Method:     http.MethodPost,
			Path:       location,
			Body:       strings.TrimSpace(string(body)),
		}
	}
	if _, err := io.Copy(io.Discard, resp.Body); err != nil {
		return &TransportError{Method: http.MethodPost, Path: location, Err: err}
	}
	return nil
}

// streamBounds returns the current offset and total length of data, leaving
// the offset unchanged.
func streamBounds(data io.Seeker) (int64, int64, error) {
	pos, err := data.Seek(0, io.SeekCurrent)
	if err != nil {
		return 0, 0, fmt.Errorf("telestream: locate upload offset: %w", err)
	}
	total, err := data.Seek(0, io.SeekEnd)
	if err != nil {
		return 0, 0, fmt.Errorf("telestream: measure upload length: %w", err)
	}
	if _, err := data.Seek(pos, io.SeekStart); err != nil {
		return 0, 0, fmt.Errorf("telestream: rewind upload stream: %w", err)
	}
	return pos, total, nil
}
