package scan

import (
	"os"
	"path/filepath"
	"unicode/utf8"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Reader reads repository files as UTF-8 text, caching decoded contents
// so repeated snapshot builds within one process do not rehit the disk.
// The cache is bounded and lives only as long as the process; nothing is
// shared across invocations of the binary.
type Reader struct {
	root  string
	cache *lru.Cache[string, string]
}

const readerCacheEntries = 512

// NewReader creates a Reader rooted at root.
func NewReader(root string) (*Reader, error) {
	cache, err := lru.New[string, string](readerCacheEntries)
	if err != nil {
		return nil, err
	}
	return &Reader{root: root, cache: cache}, nil
}

// ReadText returns the file's content when it is valid UTF-8 text.
// Read failures and binary content report ok=false; neither is an error,
// the file is simply not usable as context.
func (r *Reader) ReadText(rel string) (string, bool) {
	if text, hit := r.cache.Get(rel); hit {
		return text, true
	}
	b, err := os.ReadFile(filepath.Join(r.root, filepath.FromSlash(rel)))
	if err != nil {
		return "", false
	}
	if !utf8.Valid(b) {
		return "", false
	}
	text := string(b)
	r.cache.Add(rel, text)
	return text, true
}
