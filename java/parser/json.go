package parser

import "encoding/json"

type jsonNode struct {
	Kind      string      `json:"kind"`
	Span      *jsonSpan   `json:"span,omitempty"`
	TokenKind string      `json:"tokenKind,omitempty"`
	Token     string      `json:"token,omitempty"`
	Error     *jsonError  `json:"error,omitempty"`
	Children  []*jsonNode `json:"children,omitempty"`
}

type jsonSpan struct {
	Start jsonPosition `json:"start"`
	End   jsonPosition `json:"end"`
}

type jsonPosition struct {
	Offset int `json:"offset"`
	Line   int `json:"line"`
	Column int `json:"column"`
}

type jsonError struct {
	Key     string `json:"key"`
	Message string `json:"message"`
}

// MarshalJSON encodes the tree without trivia. Use Text to recover the exact
// source.
func (n *Node) MarshalJSON() ([]byte, error) {
	return json.Marshal(n.toJSON())
}

func (n *Node) toJSON() *jsonNode {
	jn := &jsonNode{
		Kind: n.Kind.String(),
	}

	if n.Span.Start.Line != 0 || n.Span.End.Line != 0 {
		jn.Span = &jsonSpan{
			Start: jsonPosition{Offset: n.Span.Start.Offset, Line: n.Span.Start.Line, Column: n.Span.Start.Column},
			End:   jsonPosition{Offset: n.Span.End.Offset, Line: n.Span.End.Line, Column: n.Span.End.Column},
		}
	}

	if n.Token != nil {
		jn.TokenKind = n.Token.Kind.String()
		jn.Token = n.Token.Literal
	}

	if n.Error != nil {
		jn.Error = &jsonError{
			Key:     n.Error.Key,
			Message: n.Error.Message,
		}
	}

	for _, child := range n.Children {
		if child.IsTrivia() || child.IsToken(TokenEOF) {
			continue
		}
		jn.Children = append(jn.Children, child.toJSON())
	}

	return jn
}
