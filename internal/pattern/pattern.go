// Package pattern compiles and caches the rule regexes used by sound maps
// and affixes. Patterns follow the .NET/Perl dialect (backtracking,
// look-around, $n and ${name} in replacements) provided by regexp2.
package pattern

import (
	"fmt"
	"sync"
	"time"

	"github.com/dlclark/regexp2"
)

// DefaultTimeout bounds a single match or replace call.
const DefaultTimeout = 250 * time.Millisecond

// Cache holds compiled patterns. It is safe for concurrent use.
type Cache struct {
	timeout time.Duration

	mu       sync.RWMutex
	compiled map[string]*regexp2.Regexp
	invalid  map[string]error
}

// NewCache creates a Cache. A non-positive timeout disables the match limit.
func NewCache(timeout time.Duration) *Cache {
	return &Cache{
		timeout:  timeout,
		compiled: make(map[string]*regexp2.Regexp),
		invalid:  make(map[string]error),
	}
}

// Compile returns the compiled pattern, compiling it on first use.
// Compilation failures are remembered.
func (c *Cache) Compile(expr string) (*regexp2.Regexp, error) {
	c.mu.RLock()
	re, ok := c.compiled[expr]
	bad := c.invalid[expr]
	c.mu.RUnlock()
	if ok {
		return re, nil
	}
	if bad != nil {
		return nil, bad
	}

	re, err := regexp2.Compile(expr, regexp2.None)
	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		err = fmt.Errorf("compile %q: %w", expr, err)
		c.invalid[expr] = err
		return nil, err
	}
	if c.timeout > 0 {
		re.MatchTimeout = c.timeout
	}
	c.compiled[expr] = re
	return re, nil
}

// Match reports whether s contains a match for expr anywhere.
func (c *Cache) Match(expr, s string) (bool, error) {
	re, err := c.Compile(expr)
	if err != nil {
		return false, err
	}
	ok, err := re.MatchString(s)
	if err != nil {
		return false, fmt.Errorf("match %q: %w", expr, err)
	}
	return ok, nil
}

// Replace substitutes every match of expr in s with repl.
func (c *Cache) Replace(expr, s, repl string) (string, error) {
	re, err := c.Compile(expr)
	if err != nil {
		return s, err
	}
	out, err := re.Replace(s, repl, -1, -1)
	if err != nil {
		return s, fmt.Errorf("replace %q: %w", expr, err)
	}
	return out, nil
}

// Len reports how many patterns compiled successfully.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.compiled)
}
