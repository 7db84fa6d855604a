// Package copyright extracts copyright statements from license files.
//
// A [Scanner] looks in a package's source directory (non-recursively) for
// conventionally named license files and returns the first line that looks
// like a copyright declaration. Scanning is best-effort: a missing directory,
// an unreadable file or a file without a copyright line simply yields no
// result.
package copyright

import (
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
)

// DefaultCandidates lists the file names searched, in priority order.
// Matching is case-insensitive.
var DefaultCandidates = []string{
	"LICENSE",
	"LICENSE.md",
	"LICENSE.txt",
	"LICENSE-MIT",
	"LICENSE-APACHE",
	"COPYING",
	"NOTICE",
	"COPYRIGHT",
	"COPYRIGHT.txt",
	"README",
	"README.md",
	"README.mdown",
	"README.markdown",
}

var (
	// reCopyright matches a line starting with "copyright", optionally after
	// comment leaders, followed by something that could name a holder.
	reCopyright = regexp.MustCompile(`(?im)^[\s#*/;!>-]*(copyright\b[ \t]*\S.*)$`)

	// reIgnore matches boilerplate that uses the word without naming an owner.
	reIgnore = regexp.MustCompile(`(?i)^(copyright(?: and license)?[\s:]*$|copyright (?:holders?|owners?|notices?|license|statement)|copyright & license -|copyright .yyyy. .name of copyright owner)`)
)

// Scanner finds copyright lines in license files.
type Scanner struct {
	priority map[string]int
}

// Option configures a Scanner.
type Option func(*Scanner)

// WithCandidates replaces the candidate file names, given in priority order.
func WithCandidates(names ...string) Option {
	return func(s *Scanner) {
		s.priority = make(map[string]int, len(names))
		for i, n := range names {
			s.priority[strings.ToLower(n)] = i
		}
	}
}

// New creates a Scanner searching DefaultCandidates.
func New(opts ...Option) *Scanner {
	s := &Scanner{}
	WithCandidates(DefaultCandidates...)(s)
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Scan searches dir for a copyright line. If declared is non-empty it names
// a license file relative to dir that is tried before any candidate.
// The boolean is false when nothing was found.
func (s *Scanner) Scan(dir, declared string) (string, bool) {
	for _, path := range s.Candidates(dir, declared) {
		if c, ok := Extract(path); ok {
			return c, true
		}
	}
	return "", false
}

// Candidates returns the files Scan will try, in order.
func (s *Scanner) Candidates(dir, declared string) []string {
	var paths []string
	if declared != "" {
		paths = append(paths, filepath.Join(dir, declared))
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return paths
	}

	type candidate struct {
		name string
		rank int
	}
	var found []candidate
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		rank, ok := s.priority[strings.ToLower(e.Name())]
		if !ok || e.Name() == declared {
			continue
		}
		found = append(found, candidate{e.Name(), rank})
	}
	slices.SortFunc(found, func(a, b candidate) int {
		if a.rank != b.rank {
			return a.rank - b.rank
		}
		return strings.Compare(a.name, b.name)
	})

	for _, c := range found {
		paths = append(paths, filepath.Join(dir, c.name))
	}
	return paths
}

// Extract returns the first copyright line in the file at path.
func Extract(path string) (string, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", false
	}
	return Find(string(data))
}

// Find returns the first copyright line in text, trimmed of surrounding
// whitespace.
func Find(text string) (string, bool) {
	for _, m := range reCopyright.FindAllStringSubmatch(text, -1) {
		line := strings.TrimSpace(m[1])
		if !reIgnore.MatchString(line) {
			return line, true
		}
	}
	return "", false
}
