package analyzer

import (
	"fmt"

	"github.com/funvibe/jsti/internal/builtins"
	"github.com/funvibe/jsti/internal/pipeline"
	"github.com/funvibe/jsti/internal/registry"
	"github.com/funvibe/jsti/internal/symbols"
)

// InferProcessor runs type inference on the decoded tree. Without a scope
// in the context it builds one from the configuration: builtins first, then
// the configured globals.
type InferProcessor struct{}

func (InferProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if ctx.Tree == nil || ctx.Failed() {
		return ctx
	}
	if ctx.Scope == nil {
		scope, reg, err := NewScope(ctx)
		if err != nil {
			ctx.Errors = append(ctx.Errors, err)
			return ctx
		}
		ctx.Scope, ctx.Registry = scope, reg
	}
	if ctx.Registry == nil {
		ctx.Registry = builtins.Standard()
	}

	a := New(ctx.Scope, ctx.Registry)
	a.Context.Uniforms = ctx.Config.UniformsEnabled()
	res, err := a.Analyze(ctx.Tree, ctx.Types)
	ctx.Types = res.Types
	if err != nil {
		ctx.Errors = append(ctx.Errors, fmt.Errorf("%s: %w", ctx.FilePath, err))
	}
	return ctx
}

// NewScope builds the global scope described by the context's configuration.
func NewScope(ctx *pipeline.PipelineContext) (*symbols.Scope, registry.Registry, error) {
	reg := builtins.Standard()
	scope := symbols.NewGlobalScope()
	if ctx.Config.BuiltinsEnabled() {
		builtins.Declare(scope, reg)
	}
	bindings, err := ctx.Config.Bindings()
	if err != nil {
		return nil, nil, err
	}
	for _, b := range bindings {
		scope.Declare(b.Name, b.Info)
	}
	return scope, reg, nil
}
