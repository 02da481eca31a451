// Package template parses SQL text with :name placeholders into a reusable
// Template, then expands a Template into positional SQL plus the param.Table
// the binding layer consumes. Parsing walks the text with a small state
// machine so placeholders inside string literals, quoted identifiers,
// comments and Postgres casts (::type) are left alone.
package template

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-faro/sqlbind/param"
)

var (
	ErrEmptyName = errors.New("sqlbind: empty parameter name")
	ErrEmptyList = errors.New("sqlbind: empty list parameter")
)

// Template is a parsed statement: literal SQL fragments interleaved with
// named placeholders in occurrence order. A Template is immutable; the same
// instance may be expanded concurrently with different list sizes.
type Template struct {
	src      string
	literals []string // len(params)+1, fragments around each placeholder
	params   []string // placeholder names in occurrence order
}

// Parse compiles SQL text with :name placeholders. Names are case-sensitive
// runs of letters, digits and underscores. "::" passes through untouched so
// Postgres casts survive.
func Parse(src string) (*Template, error) {
	t := &Template{src: src}

	const (
		sText = iota
		sSQ   // '...'
		sDQ   // "..."
		sBT   // `...`
		sLC   // -- line comment
		sBC   // /* block comment */
	)
	state := sText

	var lit strings.Builder
	for i := 0; i < len(src); {
		c := src[i]
		switch state {
		case sText:
			if c == '-' && i+1 < len(src) && src[i+1] == '-' {
				state = sLC
				lit.WriteString("--")
				i += 2
				continue
			}
			if c == '/' && i+1 < len(src) && src[i+1] == '*' {
				state = sBC
				lit.WriteString("/*")
				i += 2
				continue
			}
			switch c {
			case '\'':
				state = sSQ
			case '"':
				state = sDQ
			case '`':
				state = sBT
			case ':':
				if i+1 < len(src) && src[i+1] == ':' {
					lit.WriteString("::")
					i += 2
					continue
				}
				j := i + 1
				for j < len(src) && isNameByte(src[j]) {
					j++
				}
				if j == i+1 {
					return nil, fmt.Errorf("%w at offset %d", ErrEmptyName, i)
				}
				t.literals = append(t.literals, lit.String())
				lit.Reset()
				t.params = append(t.params, src[i+1:j])
				i = j
				continue
			}
			lit.WriteByte(c)
			i++
			continue
		case sSQ:
			if c == '\'' {
				state = sText
			}
		case sDQ:
			if c == '"' {
				state = sText
			}
		case sBT:
			if c == '`' {
				state = sText
			}
		case sLC:
			if c == '\n' {
				state = sText
			}
		case sBC:
			if c == '*' && i+1 < len(src) && src[i+1] == '/' {
				state = sText
				lit.WriteString("*/")
				i += 2
				continue
			}
		}
		lit.WriteByte(c)
		i++
	}
	t.literals = append(t.literals, lit.String())
	return t, nil
}

// MustParse is Parse for statements known good at program start.
func MustParse(src string) *Template {
	t, err := Parse(src)
	if err != nil {
		panic(err)
	}
	return t
}

// Source returns the original SQL text.
func (t *Template) Source() string { return t.src }

// Names returns the distinct parameter names in first-occurrence order.
func (t *Template) Names() []string {
	seen := make(map[string]bool, len(t.params))
	out := make([]string, 0, len(t.params))
	for _, name := range t.params {
		if !seen[name] {
			seen[name] = true
			out = append(out, name)
		}
	}
	return out
}

// Expand renders the positional SQL for a dialect and computes the parameter
// table. Names present in lists are list-valued: each occurrence becomes a
// contiguous run of size placeholders starting at its recorded base
// position. The sizes must match the values bound later; that is the
// caller's contract.
func (t *Template) Expand(d Dialect, lists map[string]int) (string, *param.Table, error) {
	positions := make(map[string][]int, len(t.params))
	var listParams []param.List
	for name, size := range lists {
		if size < 1 {
			return "", nil, fmt.Errorf("%w: %q", ErrEmptyList, name)
		}
		listParams = append(listParams, param.List{Name: name, Size: size})
	}

	var sql strings.Builder
	sql.Grow(len(t.src) + 8*len(t.params))

	pos := 1
	for i, name := range t.params {
		sql.WriteString(t.literals[i])
		positions[name] = append(positions[name], pos)
		run := 1
		if size, ok := lists[name]; ok {
			run = size
		}
		for k := 0; k < run; k++ {
			if k > 0 {
				sql.WriteString(", ")
			}
			sql.WriteString(d.Placeholder(pos + k))
		}
		pos += run
	}
	sql.WriteString(t.literals[len(t.params)])

	return sql.String(), param.NewTable(positions, listParams), nil
}

func isNameByte(c byte) bool {
	return c == '_' ||
		('a' <= c && c <= 'z') ||
		('A' <= c && c <= 'Z') ||
		('0' <= c && c <= '9')
}
