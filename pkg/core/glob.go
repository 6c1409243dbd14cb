package core

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/gobwas/glob"
)

const (
	globstar = "**"
	// maxBraceExpansions bounds how many alternatives one pattern may expand to
	maxBraceExpansions = 10000
)

var numericRangeRegex = regexp.MustCompile(`^(-?\d+)\.\.(-?\d+)$`)

// MatchOptions controls glob evaluation
type MatchOptions struct {
	// Dot allows wildcards and ** to match path segments starting with a dot
	Dot bool
}

// Pattern is a compiled checklist glob
type Pattern struct {
	source       string
	negate       bool
	comment      bool
	dot          bool
	alternatives [][]segment
}

type segment struct {
	globstar    bool
	literal     string
	explicitDot bool
	matcher     glob.Glob
}

// CompilePattern compiles a gitignore-style glob.
// Braces are expanded first, then each alternative is split into path segments;
// a segment equal to ** matches zero or more whole path segments.
func CompilePattern(pattern string, opts MatchOptions) (*Pattern, error) {
	p := &Pattern{source: pattern, dot: opts.Dot}

	if strings.HasPrefix(pattern, "#") {
		p.comment = true
		return p, nil
	}

	body := pattern
	for strings.HasPrefix(body, "!") {
		p.negate = !p.negate
		body = body[1:]
	}

	alternatives, err := expandBraces(body)
	if err != nil {
		return nil, fmt.Errorf("invalid glob pattern %q: %w", pattern, err)
	}

	for _, expanded := range alternatives {
		parts := strings.Split(expanded, "/")
		segments := make([]segment, 0, len(parts))

		for _, part := range parts {
			if part == globstar {
				// Consecutive ** segments behave like one
				if n := len(segments); n > 0 && segments[n-1].globstar {
					continue
				}
				segments = append(segments, segment{globstar: true})
				continue
			}

			g, err := glob.Compile(normalizeClass(part))
			if err != nil {
				return nil, fmt.Errorf("invalid glob pattern %q: %w", pattern, err)
			}

			segments = append(segments, segment{
				literal:     part,
				explicitDot: strings.HasPrefix(part, ".") || strings.HasPrefix(part, `\.`),
				matcher:     g,
			})
		}

		p.alternatives = append(p.alternatives, segments)
	}

	return p, nil
}

// String returns the pattern as written in the checklist file
func (p *Pattern) String() string {
	return p.source
}

// Match reports whether path matches the pattern
func (p *Pattern) Match(path string) bool {
	if p.comment {
		return false
	}

	parts := strings.Split(path, "/")
	matched := false
	for _, alt := range p.alternatives {
		if p.matchSegments(alt, parts) {
			matched = true
			break
		}
	}

	return matched != p.negate
}

// Match compiles pattern and matches it against path. Invalid patterns never match.
func Match(pattern, path string, opts MatchOptions) bool {
	p, err := CompilePattern(pattern, opts)
	if err != nil {
		return false
	}
	return p.Match(path)
}

func (p *Pattern) matchSegments(segments []segment, parts []string) bool {
	if len(segments) == 0 {
		return len(parts) == 0
	}

	seg := segments[0]
	if seg.globstar {
		for i := 0; i <= len(parts); i++ {
			if p.matchSegments(segments[1:], parts[i:]) {
				return true
			}
			if i < len(parts) && !p.globstarCanConsume(parts[i]) {
				return false
			}
		}
		return false
	}

	if len(parts) == 0 || !p.matchPart(seg, parts[0]) {
		return false
	}

	return p.matchSegments(segments[1:], parts[1:])
}

func (p *Pattern) globstarCanConsume(part string) bool {
	if part == "." || part == ".." {
		return false
	}
	return p.dot || !strings.HasPrefix(part, ".")
}

func (p *Pattern) matchPart(seg segment, part string) bool {
	if part == "." || part == ".." {
		return seg.literal == part
	}
	if strings.HasPrefix(part, ".") && !p.dot && !seg.explicitDot {
		return false
	}
	return seg.matcher.Match(part)
}

// normalizeClass rewrites [^...] negated classes to the [!...] form understood by gobwas/glob
func normalizeClass(part string) string {
	if !strings.Contains(part, "[^") {
		return part
	}

	var b strings.Builder
	for i := 0; i < len(part); i++ {
		c := part[i]
		if c == '\\' && i+1 < len(part) {
			b.WriteByte(c)
			b.WriteByte(part[i+1])
			i++
			continue
		}
		if c == '[' && i+1 < len(part) && part[i+1] == '^' {
			b.WriteString("[!")
			i++
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}

// expandBraces expands {a,b} alternations and {1..3} numeric ranges.
// Braces that expand to a single option are kept as escaped literals.
func expandBraces(pattern string) ([]string, error) {
	open, closing := findBracePair(pattern)
	if open < 0 {
		return []string{pattern}, nil
	}
	if closing < 0 {
		return expandBraces(pattern[:open] + `\{` + pattern[open+1:])
	}

	pre, body, post := pattern[:open], pattern[open+1:closing], pattern[closing+1:]

	options := splitAlternatives(body)
	if len(options) == 1 {
		rng, ok, err := numericRange(body)
		if err != nil {
			return nil, err
		}
		if !ok {
			return expandBraces(pre + `\{` + body + `\}` + post)
		}
		options = rng
	}

	var expanded []string
	for _, opt := range options {
		more, err := expandBraces(pre + opt + post)
		if err != nil {
			return nil, err
		}

		expanded = append(expanded, more...)
		if len(expanded) > maxBraceExpansions {
			return nil, fmt.Errorf("braces expand to more than %d alternatives", maxBraceExpansions)
		}
	}
	return expanded, nil
}

// findBracePair returns the first unescaped '{' and its matching '}', or -1 for either
func findBracePair(pattern string) (int, int) {
	open := -1
	depth := 0
	for i := 0; i < len(pattern); i++ {
		switch pattern[i] {
		case '\\':
			i++
		case '{':
			if open < 0 {
				open = i
			}
			depth++
		case '}':
			if open < 0 {
				continue
			}
			depth--
			if depth == 0 {
				return open, i
			}
		}
	}
	return open, -1
}

func splitAlternatives(body string) []string {
	var options []string
	depth := 0
	start := 0
	for i := 0; i < len(body); i++ {
		switch body[i] {
		case '\\':
			i++
		case '{':
			depth++
		case '}':
			depth--
		case ',':
			if depth == 0 {
				options = append(options, body[start:i])
				start = i + 1
			}
		}
	}
	return append(options, body[start:])
}

func numericRange(body string) ([]string, bool, error) {
	m := numericRangeRegex.FindStringSubmatch(body)
	if m == nil {
		return nil, false, nil
	}

	from, err := strconv.Atoi(m[1])
	if err != nil {
		return nil, false, fmt.Errorf("range {%s}: %w", body, err)
	}
	to, err := strconv.Atoi(m[2])
	if err != nil {
		return nil, false, fmt.Errorf("range {%s}: %w", body, err)
	}

	step := 1
	size := to - from + 1
	if to < from {
		step = -1
		size = from - to + 1
	}

	// size wraps to <= 0 when the bounds are far enough apart to overflow
	if size <= 0 || size > maxBraceExpansions {
		return nil, false, fmt.Errorf("range {%s} has more than %d values", body, maxBraceExpansions)
	}

	out := make([]string, 0, size)
	for n := from; ; n += step {
		out = append(out, strconv.Itoa(n))
		if n == to {
			break
		}
	}
	return out, true, nil
}
