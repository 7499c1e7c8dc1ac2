// Package skiplist reads the newline-delimited file of basenames the
// installer must never process. Matching is exact and case-sensitive
// against the full basename.
package skiplist

import (
	"os"
	"strings"

	"github.com/arthur-debert/dotdeploy/pkg/errors"
	"github.com/arthur-debert/dotdeploy/pkg/types"
)

// SkipList is a set of literal basenames to exclude from deployment
type SkipList struct {
	names map[string]struct{}
}

// Load reads a skip-list file. A missing file yields an empty list.
func Load(fs types.FS, path string) (*SkipList, error) {
	s := &SkipList{names: make(map[string]struct{})}

	data, err := fs.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, errors.Wrapf(err, errors.ErrSkipListLoad, "failed to read skip-list %s", path)
	}

	for _, line := range strings.Split(string(data), "\n") {
		name := strings.TrimSuffix(line, "\r")
		if name == "" {
			continue
		}
		s.names[name] = struct{}{}
	}

	return s, nil
}

// Contains reports whether basename is excluded. No globbing, no
// case folding: the match is line-exact.
func (s *SkipList) Contains(basename string) bool {
	_, ok := s.names[basename]
	return ok
}

// Len returns the number of entries in the list
func (s *SkipList) Len() int {
	return len(s.names)
}
