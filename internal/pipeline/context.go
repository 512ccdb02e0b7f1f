package pipeline

import (
	"github.com/funvibe/jsti/internal/ast"
	"github.com/funvibe/jsti/internal/config"
	"github.com/funvibe/jsti/internal/registry"
	"github.com/funvibe/jsti/internal/symbols"
	"github.com/funvibe/jsti/internal/typesystem"
)

// PipelineContext carries one input through the stages.
type PipelineContext struct {
	FilePath string
	Source   []byte
	Config   *config.Config

	Tree     *ast.Tree
	Scope    *symbols.Scope
	Registry registry.Registry
	Types    *typesystem.Table

	// Errors collects stage failures. A fatal inference error is a
	// *diagnostics.Error.
	Errors []error
}

func NewPipelineContext(path string, source []byte) *PipelineContext {
	return &PipelineContext{FilePath: path, Source: source, Config: config.Default()}
}

// Failed reports whether any stage recorded an error.
func (ctx *PipelineContext) Failed() bool {
	return len(ctx.Errors) > 0
}
