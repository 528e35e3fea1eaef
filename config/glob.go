package config

import (
	"path"
	"path/filepath"
	"strings"
)

// Match reports whether name matches pattern. Patterns use path.Match syntax
// per segment, and a "**" segment matches any number of segments.
func Match(pattern, name string) bool {
	name = strings.TrimPrefix(filepath.ToSlash(name), "./")
	return matchSegments(strings.Split(pattern, "/"), strings.Split(name, "/"))
}

func matchSegments(pat, name []string) bool {
	for len(pat) > 0 {
		if pat[0] == "**" {
			for i := 0; i <= len(name); i++ {
				if matchSegments(pat[1:], name[i:]) {
					return true
				}
			}
			return false
		}
		if len(name) == 0 {
			return false
		}
		if ok, err := path.Match(pat[0], name[0]); err != nil || !ok {
			return false
		}
		pat, name = pat[1:], name[1:]
	}
	return len(name) == 0
}

// Included reports whether a file, relative to the scanned root, is
// selected by the include and exclude patterns.
func (c *Config) Included(rel string) bool {
	if c.Excluded(rel) {
		return false
	}
	for _, p := range c.Include {
		if Match(p, rel) {
			return true
		}
	}
	return false
}

// Excluded reports whether rel, a file or directory, matches an exclude
// pattern.
func (c *Config) Excluded(rel string) bool {
	for _, p := range c.Exclude {
		if Match(p, rel) {
			return true
		}
	}
	return false
}
