package style

import (
	"strings"
	"sync"
)

// NameCache memoizes CSS property names derived from style-object keys.
// It is safe for concurrent use by parallel file compilations.
type NameCache struct {
	mu       sync.Mutex
	names    map[string]string
	computed int
}

func NewNameCache() *NameCache {
	return &NameCache{names: make(map[string]string, 64)}
}

// Resolve returns the hyphenated, HTML-escaped name for key.
func (c *NameCache) Resolve(key string) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if name, ok := c.names[key]; ok {
		return name
	}
	c.computed++
	name := ProcessName(key)
	c.names[key] = name
	return name
}

// Computed reports how many names were derived rather than served from
// the cache.
func (c *NameCache) Computed() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.computed
}

func (c *NameCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.names)
}

// Reset drops all entries; output does not depend on cache contents.
func (c *NameCache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	clear(c.names)
	c.computed = 0
}

// ProcessName hyphenates key and escapes it for an HTML attribute.
// Custom properties (`--x`) are only escaped.
func ProcessName(key string) string {
	if strings.HasPrefix(key, "--") {
		return EscapeHTML(key)
	}
	return EscapeHTML(Hyphenate(key))
}

// Hyphenate converts a camel-cased property name to CSS form:
// backgroundColor → background-color, MozTransition → -moz-transition,
// msTransition → -ms-transition.
func Hyphenate(name string) string {
	var sb strings.Builder
	sb.Grow(len(name) + 4)
	if len(name) > 2 && strings.HasPrefix(name, "ms") && isUpper(name[2]) {
		sb.WriteByte('-')
	}
	for i := 0; i < len(name); i++ {
		c := name[i]
		if isUpper(c) {
			sb.WriteByte('-')
			sb.WriteByte(c + ('a' - 'A'))
			continue
		}
		sb.WriteByte(c)
	}
	return sb.String()
}

func isUpper(c byte) bool {
	return 'A' <= c && c <= 'Z'
}

var htmlEscaper = strings.NewReplacer(
	`"`, "&quot;",
	"&", "&amp;",
	"'", "&#x27;",
	"<", "&lt;",
	">", "&gt;",
)

// EscapeHTML escapes text for use inside a double-quoted attribute.
func EscapeHTML(s string) string {
	return htmlEscaper.Replace(s)
}
