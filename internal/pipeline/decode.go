package pipeline

import "github.com/funvibe/jsti/internal/ast"

// DecodeProcessor turns the ESTree JSON source into a syntax tree.
type DecodeProcessor struct{}

func (DecodeProcessor) Process(ctx *PipelineContext) *PipelineContext {
	if ctx.Tree != nil || ctx.Failed() {
		return ctx
	}
	tree, err := ast.Decode(ctx.Source, ctx.FilePath)
	if err != nil {
		ctx.Errors = append(ctx.Errors, err)
		return ctx
	}
	ctx.Tree = tree
	return ctx
}
