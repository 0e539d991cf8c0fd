// Package router matches request paths against registered route patterns.
//
// A pattern is either the root "/" or a sequence of "/"-separated segments,
// each one a literal or a typed placeholder written <int:name>. Empty
// segments from leading, trailing or doubled slashes are ignored on both
// sides. Matching is case-sensitive and does no percent-decoding.
package router

import (
	"fmt"
	"strconv"
	"strings"
)

// Params holds the values extracted from placeholder segments.
type Params map[string]int

// Int returns the named parameter and whether it was present.
func (p Params) Int(name string) (int, bool) {
	v, ok := p[name]
	return v, ok
}

type segment struct {
	literal string
	param   string // non-empty for <int:name>
}

// Pattern is a compiled route pattern.
type Pattern struct {
	raw      string
	root     bool
	segments []segment
}

// Compile parses a route pattern.
func Compile(pattern string) (Pattern, error) {
	if pattern == "/" {
		return Pattern{raw: pattern, root: true}, nil
	}
	p := Pattern{raw: pattern}
	for _, part := range splitPath(pattern) {
		if !strings.HasPrefix(part, "<") && !strings.HasSuffix(part, ">") {
			p.segments = append(p.segments, segment{literal: part})
			continue
		}
		name, ok := strings.CutPrefix(part, "<int:")
		if !ok || !strings.HasSuffix(name, ">") {
			return Pattern{}, fmt.Errorf("router: unsupported placeholder %q in pattern %q", part, pattern)
		}
		name = strings.TrimSuffix(name, ">")
		if name == "" {
			return Pattern{}, fmt.Errorf("router: empty parameter name in pattern %q", pattern)
		}
		for _, s := range p.segments {
			if s.param == name {
				return Pattern{}, fmt.Errorf("router: duplicate parameter %q in pattern %q", name, pattern)
			}
		}
		p.segments = append(p.segments, segment{param: name})
	}
	return p, nil
}

// MustCompile is like Compile but panics if the pattern is malformed.
func MustCompile(pattern string) Pattern {
	p, err := Compile(pattern)
	if err != nil {
		panic(err)
	}
	return p
}

// String returns the pattern as registered.
func (p Pattern) String() string {
	return p.raw
}

// Match reports whether path matches the pattern, returning the extracted
// parameters. Segment counts must be equal; a placeholder segment that does
// not parse as an integer fails the whole match.
func (p Pattern) Match(path string) (Params, bool) {
	if p.root {
		if path == "" || path == "/" {
			return Params{}, true
		}
		return nil, false
	}
	parts := splitPath(path)
	if len(parts) != len(p.segments) {
		return nil, false
	}
	params := Params{}
	for i, seg := range p.segments {
		if seg.param == "" {
			if seg.literal != parts[i] {
				return nil, false
			}
			continue
		}
		n, err := strconv.Atoi(parts[i])
		if err != nil {
			return nil, false
		}
		params[seg.param] = n
	}
	return params, true
}

// Build renders a concrete path for the pattern, substituting params.
func (p Pattern) Build(params Params) (string, error) {
	if p.root {
		return "/", nil
	}
	var b strings.Builder
	for _, seg := range p.segments {
		b.WriteByte('/')
		if seg.param == "" {
			b.WriteString(seg.literal)
			continue
		}
		v, ok := params[seg.param]
		if !ok {
			return "", fmt.Errorf("router: missing parameter %q for pattern %q", seg.param, p.raw)
		}
		b.WriteString(strconv.Itoa(v))
	}
	if b.Len() == 0 {
		return "/", nil
	}
	return b.String(), nil
}

func splitPath(path string) []string {
	var parts []string
	for _, part := range strings.Split(path, "/") {
		if part != "" {
			parts = append(parts, part)
		}
	}
	return parts
}
