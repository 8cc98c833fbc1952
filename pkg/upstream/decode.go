package upstream

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/gzip"
)

type readError struct{ err error }

func (e *readError) Error() string { return "reading upstream body: " + e.err.Error() }
func (e *readError) Unwrap() error { return e.err }

func isReadError(err error) bool {
	var re *readError
	return errors.As(err, &re)
}

// tooLargeError reports a body over the configured limit, before or after decoding
type tooLargeError struct{ limit uint64 }

func (e *tooLargeError) Error() string { return fmt.Sprintf("upstream body exceeds %d bytes", e.limit) }

func isTooLarge(err error) bool {
	var te *tooLargeError
	return errors.As(err, &te)
}

// readLimited reads r fully. limit 0 means no limit.
func readLimited(r io.Reader, limit uint64) ([]byte, error) {
	if limit == 0 {
		return io.ReadAll(r)
	}
	data, err := io.ReadAll(io.LimitReader(r, int64(limit)+1))
	if err != nil {
		return nil, err
	}
	if uint64(len(data)) > limit {
		return nil, &tooLargeError{limit: limit}
	}
	return data, nil
}

// decodeBody reads the whole body, undoing a br or gzip Content-Encoding.
// limit caps both the wire size and the decoded size.
func decodeBody(encoding string, body io.Reader, limit uint64) ([]byte, error) {
	raw, err := readLimited(body, limit)
	if err != nil {
		if isTooLarge(err) {
			return nil, err
		}
		return nil, &readError{err: err}
	}
	if len(raw) == 0 {
		return raw, nil
	}

	switch strings.ToLower(strings.TrimSpace(encoding)) {
	case "", "identity":
		return raw, nil
	case "br":
		data, err := readLimited(brotli.NewReader(bytes.NewReader(raw)), limit)
		if isTooLarge(err) {
			return nil, err
		}
		if err != nil {
			return nil, fmt.Errorf("reading brotli content: %w", err)
		}
		return data, nil
	case "gzip", "x-gzip":
		zr, err := gzip.NewReader(bytes.NewReader(raw))
		if err != nil {
			return nil, fmt.Errorf("reading gzip content: %w", err)
		}
		defer zr.Close()
		data, err := readLimited(zr, limit)
		if isTooLarge(err) {
			return nil, err
		}
		if err != nil {
			return nil, fmt.Errorf("reading gzip content: %w", err)
		}
		return data, nil
	default:
		return raw, nil
	}
}
