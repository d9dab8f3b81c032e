package filesystem

import (
	"net/url"
	"path"
	"runtime"
	"strings"
	"sync"

	"github.com/golang/groupcache/lru"
	"go.uber.org/zap"
)

// PathStyle canonicalizes path strings for one platform family.
// Implementations are pure string transforms and never touch the filesystem.
type PathStyle interface {
	Name() string
	Canonicalize(p string) string
}

// POSIXStyle converts backslashes to forward slashes and cleans the result.
type POSIXStyle struct{}

// Name returns the style name
func (POSIXStyle) Name() string { return "posix" }

// Canonicalize cleans a POSIX path
func (POSIXStyle) Canonicalize(p string) string {
	if p == "" {
		return "."
	}
	return path.Clean(strings.ReplaceAll(p, `\`, "/"))
}

// WindowsStyle canonicalizes drive-letter and UNC paths.
type WindowsStyle struct{}

// Name returns the style name
func (WindowsStyle) Name() string { return "windows" }

// Canonicalize cleans a Windows path. UNC paths keep their leading double
// backslash; other paths get forward slashes converted and the drive letter
// upper-cased.
func (WindowsStyle) Canonicalize(p string) string {
	if p == "" {
		return "."
	}
	if strings.HasPrefix(p, `\\`) {
		rest := strings.ReplaceAll(p[2:], `\`, "/")
		cleaned := strings.TrimPrefix(path.Clean("/"+rest), "/")
		return `\\` + strings.ReplaceAll(cleaned, "/", `\`)
	}

	slashed := strings.ReplaceAll(p, `\`, "/")
	volume := ""
	if len(slashed) >= 2 && slashed[1] == ':' && isASCIILetter(slashed[0]) {
		volume = strings.ToUpper(slashed[:1]) + ":"
		slashed = slashed[2:]
	}

	cleaned := path.Clean(slashed)
	if cleaned == "." && volume != "" {
		// "C:" is drive-relative, keep it bare
		cleaned = ""
	}
	return volume + strings.ReplaceAll(cleaned, "/", `\`)
}

func isASCIILetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

// HostStyle returns the style matching the running operating system.
func HostStyle() PathStyle {
	if runtime.GOOS == "windows" {
		return WindowsStyle{}
	}
	return POSIXStyle{}
}

// DefaultNormalizerMemo is the memo capacity used when none is configured.
const DefaultNormalizerMemo = 4096

// Normalizer turns incoming path strings into a comparable, cacheable form.
// Results are memoized since normalization is a pure function of its input.
type Normalizer struct {
	style  PathStyle
	logger *zap.Logger

	mu   sync.Mutex
	memo *lru.Cache
}

// NewNormalizer creates a normalizer with the given strategy
func NewNormalizer(style PathStyle, logger *zap.Logger, memoSize int) *Normalizer {
	if style == nil {
		style = HostStyle()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if memoSize <= 0 {
		memoSize = DefaultNormalizerMemo
	}
	return &Normalizer{
		style:  style,
		logger: logger,
		memo:   lru.New(memoSize),
	}
}

// Style returns the active path style
func (n *Normalizer) Style() PathStyle {
	return n.style
}

// Normalize percent-decodes and canonicalizes raw. It never fails: a
// malformed escape is logged and the raw string is used as-is.
func (n *Normalizer) Normalize(raw string) string {
	n.mu.Lock()
	if v, ok := n.memo.Get(raw); ok {
		n.mu.Unlock()
		return v.(string)
	}
	n.mu.Unlock()

	decoded := raw
	if strings.Contains(raw, "%") {
		if d, err := url.PathUnescape(raw); err != nil {
			n.logger.Warn("percent-decoding failed, using raw path",
				zap.String("path", raw),
				zap.Stringer("kind", KindDecode),
				zap.Error(err),
			)
		} else {
			decoded = d
		}
	}

	result := n.style.Canonicalize(decoded)

	n.mu.Lock()
	n.memo.Add(raw, result)
	n.mu.Unlock()
	return result
}
