package prettyprinter

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/funvibe/jsti/internal/analyzer"
	"github.com/funvibe/jsti/internal/ast"
	"github.com/funvibe/jsti/internal/diagnostics"
	"github.com/funvibe/jsti/internal/pipeline"
	"github.com/funvibe/jsti/internal/typesystem"
)

// Report summarizes one analyzed input.
type Report struct {
	File        string            `json:"file"`
	Statements  []StatementReport `json:"statements"`
	Invalid     int               `json:"invalid"`
	Diagnostics []string          `json:"diagnostics,omitempty"`
	Errors      []string          `json:"errors,omitempty"`
}

// StatementReport is the inferred annotation of one top-level statement.
type StatementReport struct {
	Line       int      `json:"line,omitempty"`
	Source     string   `json:"source"`
	Type       string   `json:"type"`
	Annotation string   `json:"annotation"`
	Uniforms   []string `json:"uniforms,omitempty"`
}

// NewReport collects the results stored in ctx.
func NewReport(ctx *pipeline.PipelineContext) *Report {
	r := &Report{File: ctx.FilePath}
	for _, err := range ctx.Errors {
		r.Errors = append(r.Errors, err.Error())
	}
	if ctx.Tree == nil || ctx.Types == nil {
		return r
	}

	printer := NewCodePrinter()
	if program, ok := ctx.Tree.Root.(*ast.Program); ok {
		for _, stmt := range program.Body {
			info := statementInfo(stmt, ctx.Types)
			if info == nil {
				continue
			}
			r.Statements = append(r.Statements, StatementReport{
				Line:       stmt.Loc().Start.Line,
				Source:     printer.Print(stmt),
				Type:       info.TypeString(),
				Annotation: info.String(),
				Uniforms:   info.UniformDependencies(),
			})
		}
	}

	invalid := analyzer.Invalid(ctx.Tree, ctx.Types)
	r.Invalid = len(invalid)
	for _, n := range invalid {
		if d := ctx.Types.ByID(n.ID()).Error(); d != nil {
			r.Diagnostics = append(r.Diagnostics, d.String())
		}
	}
	return r
}

// OK reports whether the input was analyzed without any failure.
func (r *Report) OK() bool {
	return r.Invalid == 0 && len(r.Errors) == 0
}

func (r *Report) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// statementInfo is the annotation shown for a statement. Declarations show
// their last declarator.
func statementInfo(stmt ast.Statement, types *typesystem.Table) *typesystem.Annotation {
	if info, ok := types.Lookup(stmt); ok {
		return info
	}
	if d, ok := stmt.(*ast.VariableDeclaration); ok && len(d.Declarations) > 0 {
		if info, ok := types.Lookup(d.Declarations[len(d.Declarations)-1]); ok {
			return info
		}
	}
	return nil
}

// FirstDiagnostic returns the first diagnostic recorded in the subtree of
// n, in pre-order.
func FirstDiagnostic(n ast.Node, types *typesystem.Table) *diagnostics.Diagnostic {
	var found *diagnostics.Diagnostic
	errFound := errors.New("found")
	_ = ast.Walk(n, func(c ast.Node) error {
		if info, ok := types.Lookup(c); ok && info.HasError() {
			found = info.Error()
			return errFound
		}
		return nil
	}, nil)
	return found
}

// WriteText prints the annotated source of ctx followed by its failures.
// Verbose output also lists the annotation of every node.
func WriteText(w io.Writer, ctx *pipeline.PipelineContext, style *Style, verbose bool) error {
	if style == nil {
		style = Plain()
	}
	var sb strings.Builder
	sb.WriteString(style.Bold("== "+ctx.FilePath) + "\n")

	if ctx.Tree != nil && ctx.Types != nil {
		sb.WriteString(NewAnnotatedPrinter(ctx.Types, style).Print(ctx.Tree.Root))
		if verbose {
			writeNodes(&sb, ctx.Tree, ctx.Types)
		}
		invalid := analyzer.Invalid(ctx.Tree, ctx.Types)
		if len(invalid) > 0 {
			fmt.Fprintf(&sb, "%s\n", style.Error(fmt.Sprintf("%d invalid nodes", len(invalid))))
		}
		for _, n := range invalid {
			if d := ctx.Types.ByID(n.ID()).Error(); d != nil {
				sb.WriteString("  " + style.Error(d.String()) + "\n")
			}
		}
	}
	for _, err := range ctx.Errors {
		sb.WriteString(style.Error("error: "+err.Error()) + "\n")
	}
	if !ctx.Failed() && ctx.Types != nil && len(analyzer.Invalid(ctx.Tree, ctx.Types)) == 0 {
		sb.WriteString(style.OK("ok") + "\n")
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

// writeNodes dumps the tree with one node per line, indented by depth.
func writeNodes(sb *strings.Builder, tree *ast.Tree, types *typesystem.Table) {
	sb.WriteString("\n")
	depth := 0
	_ = ast.Walk(tree.Root, func(n ast.Node) error {
		line := strings.Repeat("  ", depth) + string(n.Kind())
		if e, ok := n.(ast.Expression); ok {
			line += " " + ast.Describe(e)
		}
		if info, ok := types.Lookup(n); ok {
			line += " : " + NodeAnnotation(info)
		}
		sb.WriteString(line + "\n")
		depth++
		return nil
	}, func(ast.Node) error {
		depth--
		return nil
	})
	sb.WriteString("\n")
}

// NodeAnnotation renders an annotation as `type[/kind] = constant`, or
// `INVALID: error` for failed nodes.
func NodeAnnotation(info *typesystem.Annotation) string {
	if info.IsValid() {
		return info.String()
	}
	if d := info.Error(); d != nil {
		return "INVALID: " + d.String()
	}
	return "INVALID"
}

// ReportProcessor writes the result of the pipeline to Out.
type ReportProcessor struct {
	Out     io.Writer
	Style   *Style
	JSON    bool
	Verbose bool
}

func (p ReportProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	var err error
	if p.JSON {
		err = NewReport(ctx).WriteJSON(p.Out)
	} else {
		err = WriteText(p.Out, ctx, p.Style, p.Verbose)
	}
	if err != nil {
		ctx.Errors = append(ctx.Errors, fmt.Errorf("writing report: %w", err))
	}
	return ctx
}
