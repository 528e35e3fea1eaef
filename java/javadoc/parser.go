package javadoc

import (
	"strings"
	"unicode"
)

// Parse parses a classic /** ... */ comment. The delimiters and leading
// asterisks are optional.
func Parse(text string) *DocComment {
	p := &docParser{src: []rune(classicBody(text))}
	return p.parse()
}

// ParseMarkdown parses a run of /// comment lines.
func ParseMarkdown(text string) *DocComment {
	p := &docParser{src: []rune(markdownBody(text)), markdown: true}
	doc := p.parse()
	doc.Markdown = true
	return doc
}

// classicBody strips /**, */ and the leading "* " of each line.
func classicBody(text string) string {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "/**")
	text = strings.TrimSuffix(text, "*/")
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		line = strings.TrimRight(line, "\r")
		trimmed := strings.TrimLeft(line, " \t")
		if strings.HasPrefix(trimmed, "*") {
			trimmed = strings.TrimPrefix(trimmed[1:], " ")
			lines[i] = trimmed
		} else if i > 0 {
			lines[i] = trimmed
		} else {
			lines[i] = line
		}
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// markdownBody strips the /// prefixes and the indentation common to all
// non-blank lines.
func markdownBody(text string) string {
	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
	indent := -1
	for i, line := range lines {
		line = strings.TrimRight(line, "\r")
		line = strings.TrimLeft(line, " \t")
		line = strings.TrimPrefix(line, "///")
		lines[i] = line
		if strings.TrimSpace(line) == "" {
			continue
		}
		n := len(line) - len(strings.TrimLeft(line, " "))
		if indent < 0 || n < indent {
			indent = n
		}
	}
	for i, line := range lines {
		if len(line) >= indent && indent > 0 {
			lines[i] = line[indent:]
		} else {
			lines[i] = strings.TrimLeft(line, " ")
		}
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

type scope int

const (
	inBody scope = iota
	inInlineTag
	inLabel
)

type docParser struct {
	src      []rune
	pos      int
	markdown bool
}

func (p *docParser) eof() bool { return p.pos >= len(p.src) }

func (p *docParser) peek(n int) rune {
	if p.pos+n >= len(p.src) {
		return 0
	}
	return p.src[p.pos+n]
}

func (p *docParser) hasPrefix(s string) bool {
	i := p.pos
	for _, r := range s {
		if i >= len(p.src) || p.src[i] != r {
			return false
		}
		i++
	}
	return true
}

func (p *docParser) lineStart() bool {
	return p.pos == 0 || p.src[p.pos-1] == '\n'
}

func (p *docParser) skipSpace() {
	for !p.eof() && unicode.IsSpace(p.src[p.pos]) {
		p.pos++
	}
}

func (p *docParser) skipBlank() {
	for !p.eof() && (p.src[p.pos] == ' ' || p.src[p.pos] == '\t') {
		p.pos++
	}
}

// atBlockTag reports whether a block tag starts on the current line.
func (p *docParser) atBlockTag() bool {
	if !p.lineStart() {
		return false
	}
	i := p.pos
	for i < len(p.src) && (p.src[i] == ' ' || p.src[i] == '\t') {
		i++
	}
	return i+1 < len(p.src) && p.src[i] == '@' && unicode.IsLetter(p.src[i+1])
}

func (p *docParser) parse() *DocComment {
	doc := &DocComment{Body: trimNodes(p.content(inBody))}
	for !p.eof() {
		start := p.pos
		if tag := p.blockTag(); tag != nil {
			doc.Tags = append(doc.Tags, tag)
		}
		if p.pos == start {
			p.pos++
		}
	}
	return doc
}

// content parses text and inline markup. Inside an inline tag it stops at
// the unmatched '}'; in the body it stops at a block tag.
func (p *docParser) content(ctx scope) []Node {
	var nodes []Node
	var text strings.Builder
	flush := func() {
		if text.Len() > 0 {
			nodes = append(nodes, Text{Content: text.String()})
			text.Reset()
		}
	}
	emit := func(n Node) {
		flush()
		nodes = append(nodes, n)
	}

	depth := 0
	for !p.eof() {
		if ctx == inBody && p.atBlockTag() {
			break
		}
		ch := p.src[p.pos]
		switch {
		case p.markdown && p.lineStart() && p.atFence():
			emit(p.codeFence())
			continue
		case ch == '{' && p.peek(1) == '@':
			if n := p.inlineTag(); n != nil {
				emit(n)
				continue
			}
		case ch == '{':
			depth++
		case ch == '}' && ctx == inInlineTag:
			if depth == 0 {
				flush()
				return nodes
			}
			depth--
		case ch == '<':
			if n, ok := p.html(); ok {
				if n != nil {
					emit(n)
				}
				continue
			}
		case ch == '&':
			if n, ok := p.entity(); ok {
				emit(n)
				continue
			}
		case p.markdown && ch == '\\' && unicode.IsPunct(p.peek(1)):
			text.WriteRune(p.peek(1))
			p.pos += 2
			continue
		case p.markdown && ch == '`':
			n, raw := p.codeSpan()
			if n != nil {
				emit(n)
			} else {
				text.WriteString(raw)
			}
			continue
		case p.markdown && ch == '[':
			if n, ok := p.refLink(); ok {
				emit(n)
				continue
			}
		}
		text.WriteRune(ch)
		p.pos++
	}
	flush()
	return nodes
}

func (p *docParser) readName() string {
	start := p.pos
	for !p.eof() {
		r := p.src[p.pos]
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '-' && r != '.' {
			break
		}
		p.pos++
	}
	return string(p.src[start:p.pos])
}

// readBalanced reads raw text up to the '}' that closes the current inline
// tag and consumes it. ok is false at end of input.
func (p *docParser) readBalanced() (string, bool) {
	start, depth := p.pos, 0
	for !p.eof() {
		switch p.src[p.pos] {
		case '{':
			depth++
		case '}':
			if depth == 0 {
				s := string(p.src[start:p.pos])
				p.pos++
				return s, true
			}
			depth--
		}
		p.pos++
	}
	return string(p.src[start:]), false
}

// readReference reads a reference up to whitespace or '}', keeping
// whitespace inside a parameter list.
func (p *docParser) readReference() string {
	start, parens := p.pos, 0
	for !p.eof() {
		r := p.src[p.pos]
		if parens == 0 && (unicode.IsSpace(r) || r == '}') {
			break
		}
		if r == '\n' {
			break
		}
		switch r {
		case '(':
			parens++
		case ')':
			parens--
		}
		p.pos++
	}
	return string(p.src[start:p.pos])
}

func (p *docParser) expectClose() {
	if !p.eof() && p.src[p.pos] == '}' {
		p.pos++
	}
}

func (p *docParser) inlineTag() Node {
	start := p.pos
	p.pos += 2
	name := p.readName()
	if name == "" {
		p.pos = start
		return nil
	}
	switch name {
	case "code", "literal":
		if !p.eof() && unicode.IsSpace(p.src[p.pos]) {
			p.pos++
		}
		body, ok := p.readBalanced()
		if !ok {
			return Erroneous{Content: string(p.src[start:p.pos]), Message: "unterminated inline tag"}
		}
		if name == "code" {
			return Code{Content: body}
		}
		return Literal{Content: body}
	case "link", "linkplain":
		p.skipSpace()
		target := p.readReference()
		p.skipSpace()
		label := trimNodes(p.content(inInlineTag))
		p.expectClose()
		ref, _ := ParseReference(target)
		return Link{Target: target, Ref: ref, Label: label, Plain: name == "linkplain"}
	case "value":
		p.skipSpace()
		target := p.readReference()
		p.skipSpace()
		p.expectClose()
		v := Value{Target: target}
		if target != "" {
			v.Ref, _ = ParseReference(target)
		}
		return v
	case "snippet":
		return p.snippet()
	}
	p.skipSpace()
	content := trimNodes(p.content(inInlineTag))
	p.expectClose()
	return InlineTag{Name: name, Content: content}
}

// snippet parses the attributes and the inline body after ':'.
func (p *docParser) snippet() Node {
	var s Snippet
	for {
		p.skipSpace()
		if p.eof() {
			return s
		}
		switch p.src[p.pos] {
		case '}':
			p.pos++
			return s
		case ':':
			p.pos++
			p.skipBlank()
			if !p.eof() && p.src[p.pos] == '\n' {
				p.pos++
			}
			s.Body, _ = p.readBalanced()
			return s
		}
		attr, ok := p.attribute()
		if !ok {
			p.pos++
			continue
		}
		s.Attributes = append(s.Attributes, attr)
	}
}

// attribute parses name, name=value or name="value".
func (p *docParser) attribute() (Attribute, bool) {
	start := p.pos
	for !p.eof() {
		r := p.src[p.pos]
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '-' && r != '_' && r != ':' {
			break
		}
		p.pos++
	}
	if p.pos == start {
		return Attribute{}, false
	}
	attr := Attribute{Name: string(p.src[start:p.pos])}
	p.skipBlank()
	if p.eof() || p.src[p.pos] != '=' {
		return attr, true
	}
	p.pos++
	p.skipBlank()
	if p.eof() {
		return attr, true
	}
	if q := p.src[p.pos]; q == '"' || q == '\'' {
		p.pos++
		vs := p.pos
		for !p.eof() && p.src[p.pos] != q {
			p.pos++
		}
		attr.Value = string(p.src[vs:p.pos])
		if !p.eof() {
			p.pos++
		}
		return attr, true
	}
	vs := p.pos
	for !p.eof() {
		r := p.src[p.pos]
		if unicode.IsSpace(r) || r == '>' || r == '}' || r == ':' {
			break
		}
		if r == '/' && p.peek(1) == '>' {
			break
		}
		p.pos++
	}
	attr.Value = string(p.src[vs:p.pos])
	return attr, true
}

// html parses a start tag, an end tag or a comment. Comments produce no
// node. ok is false when '<' is plain text.
func (p *docParser) html() (Node, bool) {
	start := p.pos
	if p.hasPrefix("<!--") {
		for !p.eof() && !p.hasPrefix("-->") {
			p.pos++
		}
		p.pos += 3
		if p.pos > len(p.src) {
			p.pos = len(p.src)
		}
		return nil, true
	}
	p.pos++
	closing := false
	if !p.eof() && p.src[p.pos] == '/' {
		closing = true
		p.pos++
	}
	if p.eof() || !unicode.IsLetter(p.src[p.pos]) {
		p.pos = start
		return nil, false
	}
	name := strings.ToLower(p.readName())
	if closing {
		p.skipSpace()
		if p.eof() || p.src[p.pos] != '>' {
			p.pos = start
			return nil, false
		}
		p.pos++
		return EndElement{Name: name}, true
	}
	el := StartElement{Name: name}
	for {
		p.skipSpace()
		if p.eof() {
			p.pos = start
			return nil, false
		}
		if p.src[p.pos] == '>' {
			p.pos++
			return el, true
		}
		if p.hasPrefix("/>") {
			p.pos += 2
			el.SelfClose = true
			return el, true
		}
		attr, ok := p.attribute()
		if !ok {
			p.pos = start
			return nil, false
		}
		el.Attributes = append(el.Attributes, attr)
	}
}

// entity parses &name;, &#123; or &#x7B;.
func (p *docParser) entity() (Node, bool) {
	i := p.pos + 1
	for i < len(p.src) && (unicode.IsLetter(p.src[i]) || unicode.IsDigit(p.src[i]) || p.src[i] == '#') {
		i++
	}
	if i == p.pos+1 || i >= len(p.src) || p.src[i] != ';' {
		return nil, false
	}
	name := string(p.src[p.pos+1 : i])
	p.pos = i + 1
	return Entity{Name: name}, true
}

func (p *docParser) blockTag() Node {
	p.skipSpace()
	if p.eof() || p.src[p.pos] != '@' {
		return nil
	}
	p.pos++
	name := p.readName()
	switch name {
	case "param":
		p.skipBlank()
		param := Param{}
		if !p.eof() && p.src[p.pos] == '<' {
			p.pos++
			param.TypeParam = true
			start := p.pos
			for !p.eof() && p.src[p.pos] != '>' && !unicode.IsSpace(p.src[p.pos]) {
				p.pos++
			}
			param.Name = string(p.src[start:p.pos])
			if !p.eof() && p.src[p.pos] == '>' {
				p.pos++
			}
		} else {
			start := p.pos
			for !p.eof() && !unicode.IsSpace(p.src[p.pos]) {
				p.pos++
			}
			param.Name = string(p.src[start:p.pos])
		}
		param.Description = p.description()
		return param
	case "throws", "exception":
		p.skipBlank()
		target := p.readReference()
		ref, _ := ParseReference(target)
		return Throws{Target: target, Ref: ref, Description: p.description()}
	case "see":
		p.skipBlank()
		see := See{}
		switch {
		case p.eof():
		case p.src[p.pos] == '"':
			p.pos++
			start := p.pos
			for !p.eof() && p.src[p.pos] != '"' {
				p.pos++
			}
			see.Quoted = string(p.src[start:p.pos])
			if !p.eof() {
				p.pos++
			}
			p.description()
		case p.src[p.pos] == '<':
			see.Description = p.description()
		default:
			see.Target = p.readReference()
			see.Ref, _ = ParseReference(see.Target)
			see.Description = p.description()
		}
		return see
	case "provides", "uses", "spec", "serialField":
		p.skipBlank()
		arg := p.readReference()
		return BlockTag{Name: name, Arg: arg, Description: p.description()}
	}
	return BlockTag{Name: name, Description: p.description()}
}

func (p *docParser) description() []Node {
	p.skipBlank()
	return trimNodes(p.content(inBody))
}

// trimNodes trims whitespace at both ends of a node list.
func trimNodes(nodes []Node) []Node {
	if len(nodes) > 0 {
		if t, ok := nodes[0].(Text); ok {
			t.Content = strings.TrimLeftFunc(t.Content, unicode.IsSpace)
			if t.Content == "" {
				nodes = nodes[1:]
			} else {
				nodes[0] = t
			}
		}
	}
	if n := len(nodes); n > 0 {
		if t, ok := nodes[n-1].(Text); ok {
			t.Content = strings.TrimRightFunc(t.Content, unicode.IsSpace)
			if t.Content == "" {
				nodes = nodes[:n-1]
			} else {
				nodes[n-1] = t
			}
		}
	}
	return nodes
}
