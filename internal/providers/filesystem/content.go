package filesystem

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"unicode/utf8"

	"github.com/gabriel-vasile/mimetype"
	"github.com/saintfish/chardet"
)

// DefaultContentLimit is the largest file returned as text (10MB).
const DefaultContentLimit int64 = 10 << 20

// FileContent is a file read as UTF-8 text
type FileContent struct {
	Content  string `json:"content"`
	MimeType string `json:"mime_type"`
	Charset  string `json:"charset"`
	Size     int64  `json:"size"`
}

// ReadText returns the content of the file at p. Non-text and non-UTF-8
// files are rejected with ErrNotText rather than returned garbled.
func ReadText(p string, limit int64) (*FileContent, error) {
	if limit <= 0 {
		limit = DefaultContentLimit
	}

	info, err := os.Stat(p)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, p)
		}
		return nil, fmt.Errorf("stat %s: %w", p, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrIsDirectory, p)
	}
	if info.Size() > limit {
		return nil, fmt.Errorf("%w: %d bytes (limit %d)", ErrTooLarge, info.Size(), limit)
	}

	data, err := os.ReadFile(p)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", p, err)
	}

	mtype := mimetype.Detect(data)
	if !isText(mtype) {
		return nil, fmt.Errorf("%w: detected %s", ErrNotText, mtype.String())
	}
	if !utf8.Valid(data) {
		charset := "unknown"
		if best, err := chardet.NewTextDetector().DetectBest(data); err == nil {
			charset = best.Charset
		}
		return nil, fmt.Errorf("%w: content is %s, not UTF-8", ErrNotText, charset)
	}

	return &FileContent{
		Content:  string(data),
		MimeType: mtype.String(),
		Charset:  "UTF-8",
		Size:     info.Size(),
	}, nil
}

// isText walks the MIME hierarchy looking for text/plain
func isText(m *mimetype.MIME) bool {
	for ; m != nil; m = m.Parent() {
		if m.Is("text/plain") {
			return true
		}
	}
	return false
}
