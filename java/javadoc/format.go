package javadoc

import (
	"fmt"
	"html"
	"strings"
	"unicode"
)

// PlainText renders nodes without markup, collapsing whitespace.
func PlainText(nodes []Node) string {
	var sb strings.Builder
	for _, n := range nodes {
		writePlain(&sb, n)
	}
	return collapseSpace(sb.String())
}

func writePlain(sb *strings.Builder, n Node) {
	switch n := n.(type) {
	case Text:
		sb.WriteString(n.Content)
	case Code:
		sb.WriteString(n.Content)
	case Literal:
		sb.WriteString(n.Content)
	case CodeSpan:
		sb.WriteString(n.Content)
	case Link:
		if len(n.Label) > 0 {
			for _, l := range n.Label {
				writePlain(sb, l)
			}
		} else {
			sb.WriteString(displayTarget(n.Target, n.Ref))
		}
	case RefLink:
		if len(n.Label) > 0 {
			for _, l := range n.Label {
				writePlain(sb, l)
			}
		} else {
			sb.WriteString(displayTarget("", n.Ref))
		}
	case Value:
		sb.WriteString(displayTarget(n.Target, n.Ref))
	case InlineTag:
		for _, c := range n.Content {
			writePlain(sb, c)
		}
	case Entity:
		sb.WriteString(html.UnescapeString("&" + n.Name + ";"))
	case StartElement:
		switch n.Name {
		case "p", "br", "li", "pre", "ul", "ol", "table", "tr":
			sb.WriteString(" ")
		}
	case CodeFence:
		sb.WriteString(n.Body)
	case Snippet:
		sb.WriteString(n.Body)
	case Erroneous:
		sb.WriteString(n.Content)
	}
}

// displayTarget renders a reference the way javadoc shows link text: the
// member for Type#member, otherwise the simple type name.
func displayTarget(target string, ref *Reference) string {
	if ref == nil {
		return target
	}
	if ref.Member != "" {
		if ref.TypeName == "" {
			return ref.Member
		}
		return ref.TypeName + "." + ref.Member
	}
	if ref.TypeName != "" {
		return ref.TypeName
	}
	return ref.Module
}

func collapseSpace(s string) string {
	return strings.Join(strings.FieldsFunc(s, unicode.IsSpace), " ")
}

// Summary returns the first sentence of the main description, or the
// content of an explicit {@summary} tag.
func Summary(doc *DocComment) string {
	for _, n := range doc.Body {
		if t, ok := n.(InlineTag); ok && t.Name == "summary" {
			return PlainText(t.Content)
		}
	}
	return firstSentence(PlainText(doc.Body))
}

func firstSentence(s string) string {
	for i := 0; i < len(s); i++ {
		if s[i] != '.' {
			continue
		}
		if i+1 == len(s) {
			return s
		}
		if s[i+1] == ' ' {
			return s[:i+1]
		}
	}
	return s
}

// Markdown renders the comment as Markdown, suitable for editor hovers.
func Markdown(doc *DocComment) string {
	var sb strings.Builder
	writeMarkdown(&sb, doc.Body)

	var params, throws, others []string
	var returns string
	for _, tag := range doc.Tags {
		switch tag := tag.(type) {
		case Param:
			name := tag.Name
			if tag.TypeParam {
				name = "<" + name + ">"
			}
			params = append(params, fmt.Sprintf("`%s` %s", name, inlineMarkdown(tag.Description)))
		case Throws:
			throws = append(throws, fmt.Sprintf("`%s` %s", displayTarget(tag.Target, tag.Ref), inlineMarkdown(tag.Description)))
		case See:
			switch {
			case tag.Quoted != "":
				others = append(others, "**See:** "+tag.Quoted)
			case tag.Target != "":
				others = append(others, strings.TrimSpace(fmt.Sprintf("**See:** `%s` %s", displayTarget(tag.Target, tag.Ref), inlineMarkdown(tag.Description))))
			default:
				others = append(others, "**See:** "+inlineMarkdown(tag.Description))
			}
		case BlockTag:
			if tag.Name == "return" {
				returns = inlineMarkdown(tag.Description)
				continue
			}
			line := "**@" + tag.Name + "**"
			if tag.Arg != "" {
				line += " `" + tag.Arg + "`"
			}
			if d := inlineMarkdown(tag.Description); d != "" {
				line += " " + d
			}
			others = append(others, line)
		}
	}

	section := func(title string, items []string) {
		if len(items) == 0 {
			return
		}
		sb.WriteString("\n\n**" + title + ":**")
		for _, it := range items {
			sb.WriteString("\n- " + strings.TrimSpace(it))
		}
	}
	section("Parameters", params)
	if returns != "" {
		sb.WriteString("\n\n**Returns:** " + returns)
	}
	section("Throws", throws)
	for _, o := range others {
		sb.WriteString("\n\n" + o)
	}
	return strings.TrimSpace(sb.String())
}

func inlineMarkdown(nodes []Node) string {
	var sb strings.Builder
	writeMarkdown(&sb, nodes)
	return collapseSpace(sb.String())
}

func writeMarkdown(sb *strings.Builder, nodes []Node) {
	inPre := false
	for _, n := range nodes {
		switch n := n.(type) {
		case Text:
			sb.WriteString(n.Content)
		case Code:
			if inPre || strings.Contains(n.Content, "\n") {
				sb.WriteString(n.Content)
			} else {
				sb.WriteString("`" + n.Content + "`")
			}
		case CodeSpan:
			sb.WriteString("`" + n.Content + "`")
		case Literal:
			sb.WriteString(n.Content)
		case CodeFence:
			sb.WriteString("\n" + n.Fence + n.Info + "\n" + n.Body + n.Fence + "\n")
		case Snippet:
			sb.WriteString("\n```java\n" + strings.TrimRight(n.Body, " \n") + "\n```\n")
		case Link, RefLink, Value:
			var text strings.Builder
			writePlain(&text, n)
			if l, ok := n.(Link); ok && (l.Plain || len(l.Label) > 0) {
				sb.WriteString(text.String())
			} else {
				sb.WriteString("`" + text.String() + "`")
			}
		case InlineTag:
			writeMarkdown(sb, n.Content)
		case Entity:
			sb.WriteString(html.UnescapeString("&" + n.Name + ";"))
		case StartElement:
			switch n.Name {
			case "p":
				sb.WriteString("\n\n")
			case "br":
				sb.WriteString("\n")
			case "li":
				sb.WriteString("\n- ")
			case "pre":
				inPre = true
				sb.WriteString("\n```\n")
			case "b", "strong":
				sb.WriteString("**")
			case "i", "em":
				sb.WriteString("*")
			case "code":
				sb.WriteString("`")
			}
		case EndElement:
			switch n.Name {
			case "pre":
				inPre = false
				sb.WriteString("\n```\n")
			case "b", "strong":
				sb.WriteString("**")
			case "i", "em":
				sb.WriteString("*")
			case "code":
				sb.WriteString("`")
			case "ul", "ol":
				sb.WriteString("\n")
			}
		case Erroneous:
			sb.WriteString(n.Content)
		}
	}
}

// Dump lists the parsed structure, one node per line.
func Dump(doc *DocComment) string {
	var sb strings.Builder
	if doc.Markdown {
		sb.WriteString("markdown\n")
	}
	dumpNodes(&sb, doc.Body, 0)
	for _, tag := range doc.Tags {
		dumpNode(&sb, tag, 0)
	}
	return sb.String()
}

func dumpNodes(sb *strings.Builder, nodes []Node, depth int) {
	for _, n := range nodes {
		dumpNode(sb, n, depth)
	}
}

func dumpNode(sb *strings.Builder, n Node, depth int) {
	indent := strings.Repeat("  ", depth)
	switch n := n.(type) {
	case Text:
		fmt.Fprintf(sb, "%stext %q\n", indent, n.Content)
	case Code:
		fmt.Fprintf(sb, "%scode %q\n", indent, n.Content)
	case Literal:
		fmt.Fprintf(sb, "%sliteral %q\n", indent, n.Content)
	case CodeSpan:
		fmt.Fprintf(sb, "%scode-span %q\n", indent, n.Content)
	case CodeFence:
		fmt.Fprintf(sb, "%scode-fence %s %q\n", indent, n.Info, n.Body)
	case Link:
		fmt.Fprintf(sb, "%slink %s%s\n", indent, n.Target, refStatus(n.Target, n.Ref))
		dumpNodes(sb, n.Label, depth+1)
	case RefLink:
		fmt.Fprintf(sb, "%sref-link %s\n", indent, n.Ref)
		dumpNodes(sb, n.Label, depth+1)
	case Value:
		fmt.Fprintf(sb, "%svalue %s\n", indent, n.Target)
	case Snippet:
		fmt.Fprintf(sb, "%ssnippet %v %q\n", indent, n.Attributes, n.Body)
	case InlineTag:
		fmt.Fprintf(sb, "%s{@%s}\n", indent, n.Name)
		dumpNodes(sb, n.Content, depth+1)
	case Param:
		fmt.Fprintf(sb, "%s@param %s\n", indent, n.Name)
		dumpNodes(sb, n.Description, depth+1)
	case Throws:
		fmt.Fprintf(sb, "%s@throws %s%s\n", indent, n.Target, refStatus(n.Target, n.Ref))
		dumpNodes(sb, n.Description, depth+1)
	case See:
		fmt.Fprintf(sb, "%s@see %s%s\n", indent, n.Target+n.Quoted, refStatus(n.Target, n.Ref))
		dumpNodes(sb, n.Description, depth+1)
	case BlockTag:
		fmt.Fprintf(sb, "%s@%s %s\n", indent, n.Name, n.Arg)
		dumpNodes(sb, n.Description, depth+1)
	case StartElement:
		fmt.Fprintf(sb, "%s<%s>\n", indent, n.Name)
	case EndElement:
		fmt.Fprintf(sb, "%s</%s>\n", indent, n.Name)
	case Entity:
		fmt.Fprintf(sb, "%s&%s;\n", indent, n.Name)
	case Erroneous:
		fmt.Fprintf(sb, "%serror %s: %q\n", indent, n.Message, n.Content)
	}
}

func refStatus(target string, ref *Reference) string {
	if target != "" && ref == nil {
		return " (unresolved)"
	}
	return ""
}
