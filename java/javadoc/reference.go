package javadoc

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/dhamidi/jsyn/java/parser"
)

var ErrInvalidReference = errors.New("invalid reference")

// ParseReference parses a see-reference such as java.base/java.util.List,
// Map.Entry#getKey() or #equals(Object). Type and parameter parts go through
// the Java type grammar.
func ParseReference(text string) (*Reference, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("%w: empty", ErrInvalidReference)
	}
	ref := &Reference{}
	rest := text

	hash := strings.IndexByte(rest, '#')
	head := rest
	if hash >= 0 {
		head = rest[:hash]
	}
	if slash := strings.IndexByte(head, '/'); slash >= 0 {
		ref.Module = head[:slash]
		if !isQualifiedName(ref.Module) {
			return nil, fmt.Errorf("%w: bad module name %q", ErrInvalidReference, ref.Module)
		}
		rest = rest[slash+1:]
		head = head[slash+1:]
		hash = strings.IndexByte(rest, '#')
		if rest == "" {
			return ref, nil
		}
	}

	if head != "" {
		typ, err := parseTypeText(head)
		if err != nil {
			return nil, err
		}
		ref.Type = typ
		ref.TypeName = strings.TrimSpace(head)
	}
	if hash < 0 {
		return ref, nil
	}

	member := rest[hash+1:]
	name := member
	if open := strings.IndexByte(member, '('); open >= 0 {
		if !strings.HasSuffix(member, ")") {
			return nil, fmt.Errorf("%w: unclosed parameter list in %q", ErrInvalidReference, text)
		}
		name = member[:open]
		ref.HasParams = true
		params, err := parseParams(member[open+1 : len(member)-1])
		if err != nil {
			return nil, err
		}
		ref.Params = params
	}
	if !isIdentifier(name) {
		return nil, fmt.Errorf("%w: bad member name %q", ErrInvalidReference, name)
	}
	ref.Member = name
	return ref, nil
}

// String renders the reference the way it is written in a comment.
func (r *Reference) String() string {
	var sb strings.Builder
	if r.Module != "" {
		sb.WriteString(r.Module)
		sb.WriteByte('/')
	}
	sb.WriteString(r.TypeName)
	if r.Member != "" {
		sb.WriteByte('#')
		sb.WriteString(r.Member)
	}
	if r.HasParams {
		sb.WriteByte('(')
		for i, p := range r.Params {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(strings.TrimSpace(p.Text()))
		}
		sb.WriteByte(')')
	}
	return sb.String()
}

func parseParams(list string) ([]*parser.Node, error) {
	if strings.TrimSpace(list) == "" {
		return nil, nil
	}
	var params []*parser.Node
	for _, p := range splitTopLevel(list) {
		p = stripParamName(strings.TrimSpace(p))
		typ, err := parseTypeText(p)
		if err != nil {
			return nil, err
		}
		params = append(params, typ)
	}
	return params, nil
}

// splitTopLevel splits at commas outside of type arguments.
func splitTopLevel(s string) []string {
	var parts []string
	depth, start := 0, 0
	for i, r := range s {
		switch r {
		case '<':
			depth++
		case '>':
			depth--
		case ',':
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	return append(parts, s[start:])
}

// stripParamName drops a trailing parameter name: "int count" is "int".
func stripParamName(p string) string {
	i := strings.LastIndexFunc(p, unicode.IsSpace)
	if i < 0 || !isIdentifier(p[i+1:]) {
		return p
	}
	head := strings.TrimRightFunc(p[:i], unicode.IsSpace)
	if head == "" {
		return p
	}
	last := rune(head[len(head)-1])
	if last == '>' || last == ']' || last == '.' || isIdentPart(last) {
		return head
	}
	return p
}

func parseTypeText(text string) (*parser.Node, error) {
	p := parser.ParseType(strings.NewReader(text))
	root := p.Finish()
	if root == nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidReference, p.Err())
	}
	if errs := root.Errors(); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %q: %s", ErrInvalidReference, text, errs[0].Error.Message)
	}
	for _, c := range root.Children {
		if c.Kind != parser.KindToken {
			return c, nil
		}
	}
	return nil, fmt.Errorf("%w: %q is not a type", ErrInvalidReference, text)
}

func isQualifiedName(s string) bool {
	for _, part := range strings.Split(s, ".") {
		if !isIdentifier(part) {
			return false
		}
	}
	return true
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if i == 0 && !isIdentStart(r) || !isIdentPart(r) {
			return false
		}
	}
	return true
}

func isIdentStart(r rune) bool {
	return unicode.IsLetter(r) || r == '_' || r == '$'
}

func isIdentPart(r rune) bool {
	return isIdentStart(r) || unicode.IsDigit(r)
}
