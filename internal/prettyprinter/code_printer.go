package prettyprinter

import (
	"bytes"
	"strings"

	"github.com/funvibe/jsti/internal/ast"
	"github.com/funvibe/jsti/internal/typesystem"
)

// --- Code Printer (Output looks like source code) ---

// Operator precedence (higher = binds tighter)
var operatorPrecedence = map[string]int{
	"||":         4,
	"&&":         5,
	"==":         9,
	"!=":         9,
	"===":        9,
	"!==":        9,
	"<":          10,
	">":          10,
	"<=":         10,
	">=":         10,
	"in":         10,
	"instanceof": 10,
	"<<":         11,
	">>":         11,
	">>>":        11,
	"+":          12,
	"-":          12,
	"*":          13,
	"/":          13,
	"%":          13,
}

const (
	precAssign      = 2
	precConditional = 3
	precUnary       = 15
	precPostfix     = 16
	precCall        = 18
)

func getPrecedence(op string) int {
	if p, ok := operatorPrecedence[op]; ok {
		return p
	}
	return 8 // bitwise operators
}

// annotationColumn is where the trailing annotation comment starts.
const annotationColumn = 40

// CodePrinter renders a tree back to JavaScript source. With an annotation
// table attached, every statement is followed by a comment holding its
// inferred annotation.
type CodePrinter struct {
	buf    bytes.Buffer
	types  *typesystem.Table
	style  *Style
	column int
}

var _ ast.Visitor = (*CodePrinter)(nil)

func NewCodePrinter() *CodePrinter {
	return &CodePrinter{style: Plain()}
}

// NewAnnotatedPrinter prints the annotations of types next to the source.
func NewAnnotatedPrinter(types *typesystem.Table, style *Style) *CodePrinter {
	if style == nil {
		style = Plain()
	}
	return &CodePrinter{types: types, style: style}
}

// Print renders n and returns the text.
func (p *CodePrinter) Print(n ast.Node) string {
	p.buf.Reset()
	p.column = 0
	if n != nil {
		_ = n.Accept(p)
	}
	return p.String()
}

func (p *CodePrinter) String() string {
	return p.buf.String()
}

func (p *CodePrinter) write(s string) {
	p.buf.WriteString(s)
	if idx := strings.LastIndex(s, "\n"); idx != -1 {
		p.column = len(s) - idx - 1
	} else {
		p.column += len(s)
	}
}

func (p *CodePrinter) writeln() {
	p.buf.WriteString("\n")
	p.column = 0
}

// printExpr prints an expression, adding parentheses only if needed
func (p *CodePrinter) printExpr(expr ast.Expression, parentPrec int, isRight bool) {
	if expr == nil {
		p.write("<???>")
		return
	}
	prec, rightAssoc := precedenceOf(expr)
	needParens := prec < parentPrec
	if prec == parentPrec && isRight != rightAssoc {
		needParens = true
	}
	if needParens {
		p.write("(")
	}
	_ = expr.Accept(p)
	if needParens {
		p.write(")")
	}
}

func precedenceOf(expr ast.Expression) (prec int, rightAssoc bool) {
	switch e := expr.(type) {
	case *ast.BinaryExpression:
		return getPrecedence(e.Operator), false
	case *ast.LogicalExpression:
		return getPrecedence(e.Operator), false
	case *ast.AssignmentExpression:
		return precAssign, true
	case *ast.ConditionalExpression:
		return precConditional, true
	case *ast.UnaryExpression:
		return precUnary, true
	case *ast.UpdateExpression:
		if e.Prefix {
			return precUnary, true
		}
		return precPostfix, false
	}
	return precCall, false
}

func (p *CodePrinter) VisitProgram(n *ast.Program) error {
	for _, stmt := range n.Body {
		if stmt == nil {
			p.write("<???>")
		} else {
			_ = stmt.Accept(p)
		}
		p.annotate(stmt)
		p.writeln()
	}
	return nil
}

// annotate appends the inferred annotation of a statement. Invalid
// statements name the first diagnostic found below them.
func (p *CodePrinter) annotate(stmt ast.Statement) {
	if p.types == nil || stmt == nil {
		return
	}
	info, ok := p.types.Lookup(stmt)
	if !ok {
		if d, ok := stmt.(*ast.VariableDeclaration); ok && len(d.Declarations) > 0 {
			info, ok = p.types.Lookup(d.Declarations[len(d.Declarations)-1])
		}
		if !ok {
			return
		}
	}
	if pad := annotationColumn - p.column; pad > 0 {
		p.write(strings.Repeat(" ", pad))
	} else {
		p.write(" ")
	}
	if info.IsValid() {
		p.write(p.style.Comment("// " + info.String()))
		return
	}
	text := "// invalid"
	if d := FirstDiagnostic(stmt, p.types); d != nil {
		text += ": " + d.String()
	}
	p.write(p.style.Error(text))
}

func (p *CodePrinter) VisitExpressionStatement(n *ast.ExpressionStatement) error {
	p.printExpr(n.Expression, 0, false)
	p.write(";")
	return nil
}

func (p *CodePrinter) VisitVariableDeclaration(n *ast.VariableDeclaration) error {
	kind := n.DeclKind
	if kind == "" {
		kind = "var"
	}
	p.write(kind + " ")
	for i, d := range n.Declarations {
		if i > 0 {
			p.write(", ")
		}
		_ = d.Accept(p)
	}
	p.write(";")
	return nil
}

func (p *CodePrinter) VisitVariableDeclarator(n *ast.VariableDeclarator) error {
	if n.Name != nil {
		p.write(n.Name.Name)
	} else {
		p.write("<???>")
	}
	if n.Init != nil {
		p.write(" = ")
		p.printExpr(n.Init, precAssign, true)
	}
	return nil
}

func (p *CodePrinter) VisitReturnStatement(n *ast.ReturnStatement) error {
	p.write("return")
	if n.Argument != nil {
		p.write(" ")
		p.printExpr(n.Argument, 0, false)
	}
	p.write(";")
	return nil
}

func (p *CodePrinter) VisitIdentifier(n *ast.Identifier) error {
	p.write(n.Name)
	return nil
}

func (p *CodePrinter) VisitLiteral(n *ast.Literal) error {
	if n.Raw != "" {
		p.write(n.Raw)
		return nil
	}
	if s, ok := n.Value.(string); ok {
		p.write("'" + strings.ReplaceAll(s, "'", `\'`) + "'")
		return nil
	}
	p.write(typesystem.ToString(n.Value))
	return nil
}

func (p *CodePrinter) VisitArrayExpression(n *ast.ArrayExpression) error {
	p.write("[")
	for i, e := range n.Elements {
		if i > 0 {
			p.write(", ")
		}
		if e != nil {
			p.printExpr(e, precAssign, false)
		}
	}
	p.write("]")
	return nil
}

func (p *CodePrinter) VisitUnaryExpression(n *ast.UnaryExpression) error {
	p.write(n.Operator)
	if len(n.Operator) > 1 || startsWithSign(n.Argument, n.Operator) {
		// typeof x, - -x
		p.write(" ")
	}
	p.printExpr(n.Argument, precUnary, true)
	return nil
}

func startsWithSign(arg ast.Expression, op string) bool {
	switch a := arg.(type) {
	case *ast.UnaryExpression:
		return a.Operator[:1] == op
	case *ast.UpdateExpression:
		return a.Prefix && a.Operator[:1] == op
	}
	return false
}

func (p *CodePrinter) VisitUpdateExpression(n *ast.UpdateExpression) error {
	if n.Prefix {
		p.write(n.Operator)
		p.printExpr(n.Argument, precUnary, true)
		return nil
	}
	p.printExpr(n.Argument, precPostfix, false)
	p.write(n.Operator)
	return nil
}

func (p *CodePrinter) VisitBinaryExpression(n *ast.BinaryExpression) error {
	p.infix(n.Operator, n.Left, n.Right)
	return nil
}

func (p *CodePrinter) VisitLogicalExpression(n *ast.LogicalExpression) error {
	p.infix(n.Operator, n.Left, n.Right)
	return nil
}

func (p *CodePrinter) infix(op string, left, right ast.Expression) {
	prec := getPrecedence(op)
	p.printExpr(left, prec, false)
	p.write(" " + op + " ")
	p.printExpr(right, prec, true)
}

func (p *CodePrinter) VisitAssignmentExpression(n *ast.AssignmentExpression) error {
	p.printExpr(n.Left, precCall, false)
	p.write(" " + n.Operator + " ")
	p.printExpr(n.Right, precAssign, true)
	return nil
}

func (p *CodePrinter) VisitConditionalExpression(n *ast.ConditionalExpression) error {
	p.printExpr(n.Test, precConditional+1, false)
	p.write(" ? ")
	p.printExpr(n.Consequent, precAssign, false)
	p.write(" : ")
	p.printExpr(n.Alternate, precConditional, true)
	return nil
}

func (p *CodePrinter) VisitMemberExpression(n *ast.MemberExpression) error {
	p.printExpr(n.Object, precCall, false)
	if n.Computed {
		p.write("[")
		p.printExpr(n.Property, 0, false)
		p.write("]")
		return nil
	}
	p.write("." + n.PropertyName())
	return nil
}

func (p *CodePrinter) VisitCallExpression(n *ast.CallExpression) error {
	p.printExpr(n.Callee, precCall, false)
	p.arguments(n.Arguments)
	return nil
}

func (p *CodePrinter) VisitNewExpression(n *ast.NewExpression) error {
	p.write("new ")
	p.printExpr(n.Callee, precCall, false)
	p.arguments(n.Arguments)
	return nil
}

func (p *CodePrinter) arguments(args []ast.Expression) {
	p.write("(")
	for i, a := range args {
		if i > 0 {
			p.write(", ")
		}
		p.printExpr(a, precAssign, false)
	}
	p.write(")")
}
