package javadoc

import "strings"

// fenceAt returns the fence character and run length of a fence opening at
// index i, allowing up to three spaces of indentation.
func (p *docParser) fenceAt(i int) (rune, int) {
	for n := 0; n < 3 && i < len(p.src) && p.src[i] == ' '; n++ {
		i++
	}
	if i >= len(p.src) || (p.src[i] != '`' && p.src[i] != '~') {
		return 0, 0
	}
	ch, run := p.src[i], 0
	for i < len(p.src) && p.src[i] == ch {
		run++
		i++
	}
	if run < 3 {
		return 0, 0
	}
	return ch, run
}

func (p *docParser) atFence() bool {
	ch, run := p.fenceAt(p.pos)
	if run == 0 {
		return false
	}
	if ch == '`' {
		end := p.lineEnd(p.pos)
		info := string(p.src[p.pos:end])
		return !strings.ContainsRune(strings.TrimLeft(info, " `"), '`')
	}
	return true
}

func (p *docParser) lineEnd(i int) int {
	for i < len(p.src) && p.src[i] != '\n' {
		i++
	}
	return i
}

// codeFence consumes a fenced block. The block is closed by a line holding a
// run of the same character at least as long as the opening one; an
// unclosed fence runs to the end of the comment.
func (p *docParser) codeFence() Node {
	ch, run := p.fenceAt(p.pos)
	end := p.lineEnd(p.pos)
	open := strings.TrimLeft(string(p.src[p.pos:end]), " ")
	fence := open[:run]
	info := strings.TrimSpace(open[run:])
	p.pos = end
	if !p.eof() {
		p.pos++
	}

	bodyStart := p.pos
	for !p.eof() {
		lineEnd := p.lineEnd(p.pos)
		c, n := p.fenceAt(p.pos)
		if c == ch && n >= run {
			rest := strings.TrimLeft(string(p.src[p.pos:lineEnd]), " ")
			if strings.TrimSpace(rest[n:]) == "" {
				body := string(p.src[bodyStart:p.pos])
				p.pos = lineEnd
				return CodeFence{Fence: fence, Info: info, Body: body}
			}
		}
		p.pos = lineEnd
		if !p.eof() {
			p.pos++
		}
	}
	return CodeFence{Fence: fence, Info: info, Body: string(p.src[bodyStart:])}
}

// codeSpan consumes a backtick run and, when a run of equal length closes
// it, returns the span. Otherwise it returns the run as raw text.
func (p *docParser) codeSpan() (Node, string) {
	start := p.pos
	for !p.eof() && p.src[p.pos] == '`' {
		p.pos++
	}
	run := p.pos - start
	for i := p.pos; i < len(p.src); {
		if p.src[i] != '`' {
			i++
			continue
		}
		j := i
		for j < len(p.src) && p.src[j] == '`' {
			j++
		}
		if j-i == run {
			content := strings.ReplaceAll(string(p.src[p.pos:i]), "\n", " ")
			if len(content) >= 2 && content[0] == ' ' && content[len(content)-1] == ' ' && strings.TrimSpace(content) != "" {
				content = content[1 : len(content)-1]
			}
			p.pos = j
			return CodeSpan{Content: content}, ""
		}
		i = j
	}
	return nil, string(p.src[start:p.pos])
}

// closeBracket returns the index of the ']' matching the '[' at i, or -1.
// Escaped brackets and code spans do not count.
func (p *docParser) closeBracket(i int) int {
	depth := 0
	for ; i < len(p.src); i++ {
		switch p.src[i] {
		case '\\':
			i++
		case '`':
			for i+1 < len(p.src) && p.src[i+1] != '`' {
				i++
			}
			i++
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				return i
			}
		case '\n':
			if i+1 < len(p.src) && p.src[i+1] == '\n' {
				return -1
			}
		}
	}
	return -1
}

// refLink parses [label][ref], [label][] or [ref] where ref names a program
// element. Inline links [text](url) and brackets whose contents are not a
// reference stay text.
func (p *docParser) refLink() (Node, bool) {
	end := p.closeBracket(p.pos)
	if end < 0 {
		return nil, false
	}
	first := string(p.src[p.pos+1 : end])
	after := end + 1
	if after < len(p.src) && p.src[after] == '(' {
		return nil, false
	}

	if after < len(p.src) && p.src[after] == '[' {
		end2 := p.closeBracket(after)
		if end2 < 0 {
			return nil, false
		}
		target := string(p.src[after+1 : end2])
		if target == "" {
			target = first
		}
		ref, err := ParseReference(target)
		if err != nil {
			return nil, false
		}
		label := &docParser{src: []rune(first), markdown: true}
		p.pos = end2 + 1
		return RefLink{Label: trimNodes(label.content(inLabel)), Ref: ref}, true
	}

	ref, err := ParseReference(first)
	if err != nil {
		return nil, false
	}
	p.pos = after
	return RefLink{Ref: ref}, true
}
