package parser

import "strings"

type NodeKind int

const (
	KindError NodeKind = iota
	KindToken

	// Roots
	KindCompilationUnit
	KindREPLSession
	KindREPLSnippet
	KindFragment
	KindImplicitClass

	// Compilation unit level
	KindPackageDecl
	KindImportList
	KindImportDecl
	KindImportStaticDecl
	KindModuleImportDecl
	KindQualifiedName

	// Modules
	KindModuleDecl
	KindModuleReference
	KindRequiresDirective
	KindExportsDirective
	KindOpensDirective
	KindUsesDirective
	KindProvidesDirective

	// Type declarations
	KindClassDecl
	KindInterfaceDecl
	KindEnumDecl
	KindRecordDecl
	KindAnnotationDecl
	KindAnonymousClass
	KindEnumConstant
	KindRecordHeader
	KindRecordComponent

	// Members
	KindFieldDecl
	KindMethodDecl
	KindConstructorDecl
	KindCompactConstructorDecl
	KindInitializer
	KindAnnotationDefault
	KindExplicitConstructorInvocation
	KindModifiers
	KindAnnotation
	KindAnnotationArgs
	KindAnnotationElement
	KindAnnotationArrayInit
	KindExtendsClause
	KindImplementsClause
	KindPermitsClause
	KindThrowsList
	KindParameters
	KindParameter
	KindReceiverParameter

	// Types
	KindType
	KindArrayType
	KindVarargType
	KindUnionType
	KindIntersectionType
	KindTypeParameters
	KindTypeParameter
	KindTypeArguments
	KindWildcard

	// Statements
	KindBlock
	KindEmptyStmt
	KindExprStmt
	KindDeclarationStmt
	KindLocalVarDecl
	KindIfStmt
	KindWhileStmt
	KindDoStmt
	KindForStmt
	KindForEachStmt
	KindForEachPatternStmt
	KindSwitchStmt
	KindSwitchGroup
	KindSwitchRule
	KindCaseLabelList
	KindDefaultCaseLabel
	KindGuard
	KindReturnStmt
	KindBreakStmt
	KindContinueStmt
	KindThrowStmt
	KindTryStmt
	KindResourceList
	KindResource
	KindCatchClause
	KindFinallyClause
	KindSynchronizedStmt
	KindAssertStmt
	KindYieldStmt
	KindLabeledStmt

	// Patterns
	KindTypeTestPattern
	KindDeconstructionPattern
	KindDeconstructionList
	KindUnnamedPattern

	// Expressions
	KindAssignExpr
	KindConditionalExpr
	KindBinaryExpr
	KindPolyadicExpr
	KindInstanceofExpr
	KindUnaryExpr
	KindPostfixExpr
	KindCastExpr
	KindCallExpr
	KindArguments
	KindFieldAccess
	KindArrayAccess
	KindMethodRef
	KindNewExpr
	KindArrayInit
	KindLambdaExpr
	KindLambdaParameters
	KindParenExpr
	KindLiteral
	KindIdentifier
	KindThis
	KindSuper
	KindClassLiteral
	KindSwitchExpr
	KindTemplateExpr
)

var nodeKindNames = map[NodeKind]string{
	KindError:                         "Error",
	KindToken:                         "Token",
	KindCompilationUnit:               "CompilationUnit",
	KindREPLSession:                   "REPLSession",
	KindREPLSnippet:                   "REPLSnippet",
	KindFragment:                      "Fragment",
	KindImplicitClass:                 "ImplicitClass",
	KindPackageDecl:                   "PackageDecl",
	KindImportList:                    "ImportList",
	KindImportDecl:                    "ImportDecl",
	KindImportStaticDecl:              "ImportStaticDecl",
	KindModuleImportDecl:              "ModuleImportDecl",
	KindQualifiedName:                 "QualifiedName",
	KindModuleDecl:                    "ModuleDecl",
	KindModuleReference:               "ModuleReference",
	KindRequiresDirective:             "RequiresDirective",
	KindExportsDirective:              "ExportsDirective",
	KindOpensDirective:                "OpensDirective",
	KindUsesDirective:                 "UsesDirective",
	KindProvidesDirective:             "ProvidesDirective",
	KindClassDecl:                     "ClassDecl",
	KindInterfaceDecl:                 "InterfaceDecl",
	KindEnumDecl:                      "EnumDecl",
	KindRecordDecl:                    "RecordDecl",
	KindAnnotationDecl:                "AnnotationDecl",
	KindAnonymousClass:                "AnonymousClass",
	KindEnumConstant:                  "EnumConstant",
	KindRecordHeader:                  "RecordHeader",
	KindRecordComponent:               "RecordComponent",
	KindFieldDecl:                     "FieldDecl",
	KindMethodDecl:                    "MethodDecl",
	KindConstructorDecl:               "ConstructorDecl",
	KindCompactConstructorDecl:        "CompactConstructorDecl",
	KindInitializer:                   "Initializer",
	KindAnnotationDefault:             "AnnotationDefault",
	KindExplicitConstructorInvocation: "ExplicitConstructorInvocation",
	KindModifiers:                     "Modifiers",
	KindAnnotation:                    "Annotation",
	KindAnnotationArgs:                "AnnotationArgs",
	KindAnnotationElement:             "AnnotationElement",
	KindAnnotationArrayInit:           "AnnotationArrayInit",
	KindExtendsClause:                 "ExtendsClause",
	KindImplementsClause:              "ImplementsClause",
	KindPermitsClause:                 "PermitsClause",
	KindThrowsList:                    "ThrowsList",
	KindParameters:                    "Parameters",
	KindParameter:                     "Parameter",
	KindReceiverParameter:             "ReceiverParameter",
	KindType:                          "Type",
	KindArrayType:                     "ArrayType",
	KindVarargType:                    "VarargType",
	KindUnionType:                     "UnionType",
	KindIntersectionType:              "IntersectionType",
	KindTypeParameters:                "TypeParameters",
	KindTypeParameter:                 "TypeParameter",
	KindTypeArguments:                 "TypeArguments",
	KindWildcard:                      "Wildcard",
	KindBlock:                         "Block",
	KindEmptyStmt:                     "EmptyStmt",
	KindExprStmt:                      "ExprStmt",
	KindDeclarationStmt:               "DeclarationStmt",
	KindLocalVarDecl:                  "LocalVarDecl",
	KindIfStmt:                        "IfStmt",
	KindWhileStmt:                     "WhileStmt",
	KindDoStmt:                        "DoStmt",
	KindForStmt:                       "ForStmt",
	KindForEachStmt:                   "ForEachStmt",
	KindForEachPatternStmt:            "ForEachPatternStmt",
	KindSwitchStmt:                    "SwitchStmt",
	KindSwitchGroup:                   "SwitchGroup",
	KindSwitchRule:                    "SwitchRule",
	KindCaseLabelList:                 "CaseLabelList",
	KindDefaultCaseLabel:              "DefaultCaseLabel",
	KindGuard:                         "Guard",
	KindReturnStmt:                    "ReturnStmt",
	KindBreakStmt:                     "BreakStmt",
	KindContinueStmt:                  "ContinueStmt",
	KindThrowStmt:                     "ThrowStmt",
	KindTryStmt:                       "TryStmt",
	KindResourceList:                  "ResourceList",
	KindResource:                      "Resource",
	KindCatchClause:                   "CatchClause",
	KindFinallyClause:                 "FinallyClause",
	KindSynchronizedStmt:              "SynchronizedStmt",
	KindAssertStmt:                    "AssertStmt",
	KindYieldStmt:                     "YieldStmt",
	KindLabeledStmt:                   "LabeledStmt",
	KindTypeTestPattern:               "TypeTestPattern",
	KindDeconstructionPattern:         "DeconstructionPattern",
	KindDeconstructionList:            "DeconstructionList",
	KindUnnamedPattern:                "UnnamedPattern",
	KindAssignExpr:                    "AssignExpr",
	KindConditionalExpr:               "ConditionalExpr",
	KindBinaryExpr:                    "BinaryExpr",
	KindPolyadicExpr:                  "PolyadicExpr",
	KindInstanceofExpr:                "InstanceofExpr",
	KindUnaryExpr:                     "UnaryExpr",
	KindPostfixExpr:                   "PostfixExpr",
	KindCastExpr:                      "CastExpr",
	KindCallExpr:                      "CallExpr",
	KindArguments:                     "Arguments",
	KindFieldAccess:                   "FieldAccess",
	KindArrayAccess:                   "ArrayAccess",
	KindMethodRef:                     "MethodRef",
	KindNewExpr:                       "NewExpr",
	KindArrayInit:                     "ArrayInit",
	KindLambdaExpr:                    "LambdaExpr",
	KindLambdaParameters:              "LambdaParameters",
	KindParenExpr:                     "ParenExpr",
	KindLiteral:                       "Literal",
	KindIdentifier:                    "Identifier",
	KindThis:                          "This",
	KindSuper:                         "Super",
	KindClassLiteral:                  "ClassLiteral",
	KindSwitchExpr:                    "SwitchExpr",
	KindTemplateExpr:                  "TemplateExpr",
}

func (k NodeKind) String() string {
	if name, ok := nodeKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// IsDeclaration reports whether nodes of this kind declare a named program
// element.
func (k NodeKind) IsDeclaration() bool {
	switch k {
	case KindClassDecl, KindInterfaceDecl, KindEnumDecl, KindRecordDecl, KindAnnotationDecl,
		KindFieldDecl, KindMethodDecl, KindConstructorDecl, KindCompactConstructorDecl,
		KindEnumConstant, KindModuleDecl, KindImplicitClass:
		return true
	}
	return false
}

// Error describes a syntax problem. Key identifies the diagnostic in the
// message catalog, Message is its rendered text.
type Error struct {
	Key     string
	Message string
}

// Node is a node of the lossless syntax tree. Leaves have Kind KindToken and
// carry a token, including whitespace and comments. Error nodes either wrap
// the tokens they complain about or are empty, marking a missing token.
type Node struct {
	Kind     NodeKind
	Span     Span
	Children []*Node
	Token    *Token
	Error    *Error
}

func (n *Node) AddChild(child *Node) {
	if child != nil {
		n.Children = append(n.Children, child)
	}
}

func (n *Node) IsError() bool {
	return n.Kind == KindError
}

func (n *Node) IsToken(kind TokenKind) bool {
	return n.Kind == KindToken && n.Token.Kind == kind
}

func (n *Node) IsTrivia() bool {
	return n.Kind == KindToken && n.Token.Kind.IsTrivia()
}

func (n *Node) FirstChildOfKind(kind NodeKind) *Node {
	for _, child := range n.Children {
		if child.Kind == kind {
			return child
		}
	}
	return nil
}

func (n *Node) ChildrenOfKind(kind NodeKind) []*Node {
	var result []*Node
	for _, child := range n.Children {
		if child.Kind == kind {
			result = append(result, child)
		}
	}
	return result
}

// FirstToken returns the first direct token child of the given kind.
func (n *Node) FirstToken(kind TokenKind) *Token {
	for _, child := range n.Children {
		if child.IsToken(kind) {
			return child.Token
		}
	}
	return nil
}

// SignificantChildren returns the children that are not trivia.
func (n *Node) SignificantChildren() []*Node {
	var result []*Node
	for _, child := range n.Children {
		if !child.IsTrivia() {
			result = append(result, child)
		}
	}
	return result
}

func (n *Node) TokenLiteral() string {
	if n.Token != nil {
		return n.Token.Literal
	}
	return ""
}

// Walk calls fn for n and its descendants in document order. Returning false
// skips the children of the current node.
func (n *Node) Walk(fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, child := range n.Children {
		child.Walk(fn)
	}
}

// Text reproduces the source covered by n.
func (n *Node) Text() string {
	var sb strings.Builder
	n.writeText(&sb)
	return sb.String()
}

func (n *Node) writeText(sb *strings.Builder) {
	if n.Token != nil {
		sb.WriteString(n.Token.Literal)
		return
	}
	for _, child := range n.Children {
		child.writeText(sb)
	}
}

// Errors returns every error node below n in document order.
func (n *Node) Errors() []*Node {
	var errs []*Node
	n.Walk(func(c *Node) bool {
		if c.Kind == KindError {
			errs = append(errs, c)
		}
		return true
	})
	return errs
}

// Name returns the declared name of a declaration node, or "".
func (n *Node) Name() string {
	for _, child := range n.Children {
		if child.IsToken(TokenIdent) {
			return child.Token.Literal
		}
		if child.Kind == KindQualifiedName || child.Kind == KindModuleReference {
			return child.compactText()
		}
	}
	return ""
}

func (n *Node) compactText() string {
	var sb strings.Builder
	n.Walk(func(c *Node) bool {
		if c.Kind == KindToken && !c.Token.Kind.IsTrivia() {
			sb.WriteString(c.Token.Literal)
		}
		return true
	})
	return sb.String()
}

func (n *Node) String() string {
	var sb strings.Builder
	n.dump(&sb, 0, false)
	return sb.String()
}

func (n *Node) StringWithPositions() string {
	var sb strings.Builder
	n.dump(&sb, 0, true)
	return sb.String()
}

func (n *Node) dump(sb *strings.Builder, indent int, showPositions bool) {
	if n.IsTrivia() || n.IsToken(TokenEOF) {
		return
	}
	sb.WriteString(strings.Repeat("  ", indent))
	sb.WriteString(n.Kind.String())
	if showPositions {
		sb.WriteString(" [" + n.Span.Start.String() + "-" + n.Span.End.String() + "]")
	}
	if n.Token != nil {
		sb.WriteString(" " + n.Token.Literal)
	}
	if n.Error != nil {
		sb.WriteString(" ERROR: " + n.Error.Message)
	}
	sb.WriteString("\n")
	for _, child := range n.Children {
		child.dump(sb, indent+1, showPositions)
	}
}
