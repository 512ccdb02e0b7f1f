package store

import (
	"context"
	"fmt"
	"log"

	"github.com/funvibe/jsti/internal/diagnostics"
	"github.com/funvibe/jsti/internal/pipeline"
)

// StoreProcessor records every pipeline result in a Store. The run keeps
// the inference error that aborted the pass, or else the first failure of
// an earlier stage.
type StoreProcessor struct {
	Store   *Store
	Verbose bool
}

func (p StoreProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if p.Store == nil {
		return ctx
	}
	var fatal error
	for _, err := range ctx.Errors {
		if _, ok := diagnostics.AsError(err); ok {
			fatal = err
			break
		}
	}
	if fatal == nil && len(ctx.Errors) > 0 {
		fatal = ctx.Errors[0]
	}

	run, err := p.Store.Record(context.Background(), ctx.FilePath, ctx.Tree, ctx.Types, fatal)
	if err != nil {
		ctx.Errors = append(ctx.Errors, fmt.Errorf("storing %s: %w", ctx.FilePath, err))
		return ctx
	}
	if p.Verbose {
		log.Printf("%s: recorded run %s (%d invalid)", ctx.FilePath, run.ID, run.Invalid)
	}
	return ctx
}
