package imagegate

import (
	"fmt"

	"github.com/gobwas/glob"
)

// GlobHook is a PostCheck that accepts a path only when it matches at
// least one allow pattern (if any are configured) and none of the deny
// patterns.
type GlobHook struct {
	allow []glob.Glob
	deny  []glob.Glob
}

// NewGlobHook compiles the allow and deny patterns. An empty allow list
// accepts every path not matched by a deny pattern.
func NewGlobHook(allow, deny []string) (*GlobHook, error) {
	h := &GlobHook{}
	for _, pattern := range allow {
		g, err := glob.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid allow pattern %q: %w", pattern, err)
		}
		h.allow = append(h.allow, g)
	}
	for _, pattern := range deny {
		g, err := glob.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid deny pattern %q: %w", pattern, err)
		}
		h.deny = append(h.deny, g)
	}
	return h, nil
}

// IsValidExtra implements PostCheck.
func (h *GlobHook) IsValidExtra(path string) bool {
	if path == "" {
		return false
	}
	for _, g := range h.deny {
		if g.Match(path) {
			return false
		}
	}
	if len(h.allow) == 0 {
		return true
	}
	for _, g := range h.allow {
		if g.Match(path) {
			return true
		}
	}
	return false
}

// Ensure GlobHook implements PostCheck
var _ PostCheck = (*GlobHook)(nil)
