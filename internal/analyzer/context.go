package analyzer

import "github.com/funvibe/jsti/internal/registry"

// Context is the analysis state passed down the traversal. It replaces
// ambient flags: every rule reads it from the walker that invokes it, and
// builtin calls receive it in registry.Call.
type Context = registry.Context
