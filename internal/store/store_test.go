package store

import (
	"bytes"
	"context"
	"errors"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/funvibe/jsti/internal/analyzer"
	"github.com/funvibe/jsti/internal/ast"
	"github.com/funvibe/jsti/internal/pipeline"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var b = ast.NewBuilder()

func openStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "nested", "runs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func analyzed(t *testing.T, items ...ast.Node) (*ast.Tree, *analyzer.Result, error) {
	t.Helper()
	tree := b.Tree(items...)
	res, err := analyzer.Infer(tree, nil)
	return tree, res, err
}

func TestRecordAndLoad(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	tree, res, err := analyzed(t,
		b.Var("a", b.Lit("5")),
		b.Binary("-", b.Str("x"), b.Ident("a")),
	)
	require.NoError(t, err)

	run, err := s.Record(ctx, "input.json", tree, res.Types, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, run.Invalid)
	assert.False(t, run.OK())

	loaded, err := s.Run(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, run.ID, loaded.ID)
	assert.Equal(t, "input.json", loaded.File)
	assert.True(t, run.CreatedAt.Equal(loaded.CreatedAt))

	nodes, err := s.Nodes(ctx, run.ID)
	require.NoError(t, err)
	require.NotEmpty(t, nodes)
	for i := 1; i < len(nodes); i++ {
		assert.Less(t, nodes[i-1].NodeID, nodes[i].NodeID)
	}

	var binary *Node
	for i := range nodes {
		if nodes[i].NodeKind == string(ast.KindBinaryExpression) {
			binary = &nodes[i]
		}
	}
	require.NotNil(t, binary)
	assert.Equal(t, "('x' - a)", binary.Description)
	assert.Equal(t, "invalid", binary.Type)
	assert.Contains(t, binary.Error, "NotANumberError")
}

func TestRecordFatalRun(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	tree, res, err := analyzed(t, b.Ident("nope"))
	require.Error(t, err)
	run, err := s.Record(ctx, "fatal.json", tree, res.Types, err)
	require.NoError(t, err)
	assert.Equal(t, "ReferenceError: nope is not defined", run.Fatal)
	assert.False(t, run.OK())

	undecoded, err := s.Record(ctx, "bad.json", nil, nil, errors.New("decoding bad.json: unexpected end"))
	require.NoError(t, err)
	nodes, err := s.Nodes(ctx, undecoded.ID)
	require.NoError(t, err)
	assert.Empty(t, nodes)
}

func TestRunsNewestFirst(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()
	tree, res, err := analyzed(t, b.Lit("1"))
	require.NoError(t, err)

	first, err := s.Record(ctx, "a.json", tree, res.Types, nil)
	require.NoError(t, err)
	second, err := s.Record(ctx, "a.json", tree, res.Types, nil)
	require.NoError(t, err)
	_, err = s.Record(ctx, "b.json", tree, res.Types, nil)
	require.NoError(t, err)

	runs, err := s.Runs(ctx, "a.json")
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, second.ID, runs[0].ID)
	assert.Equal(t, first.ID, runs[1].ID)
	assert.True(t, runs[0].OK())
}

func TestUnknownRun(t *testing.T) {
	s := openStore(t)
	_, err := s.Run(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.Diff(context.Background(), uuid.New(), uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDiff(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	// Same shape, different global: only the annotations that depend on a change.
	build := func() *ast.Tree {
		return b.Tree(b.Binary("+", b.Ident("a"), b.Lit("1")))
	}
	before := build()
	scope, _ := analyzer.Infer(b.Tree(b.Var("a", b.Lit("1"))), nil)
	res, err := analyzer.Infer(before, scope.Scope)
	require.NoError(t, err)
	r1, err := s.Record(ctx, "x.json", before, res.Types, nil)
	require.NoError(t, err)

	after := build()
	scope, _ = analyzer.Infer(b.Tree(b.Var("a", b.Lit("1.5"))), nil)
	res, err = analyzer.Infer(after, scope.Scope)
	require.NoError(t, err)
	r2, err := s.Record(ctx, "x.json", after, res.Types, nil)
	require.NoError(t, err)

	changes, err := s.Diff(ctx, r1.ID, r2.ID)
	require.NoError(t, err)
	require.Len(t, changes, 2)
	assert.Equal(t, "", changes[0].Description, "the statement has no description")
	assert.Equal(t, "int = 2", changes[0].Before)
	assert.Equal(t, "number = 2.5", changes[0].After)
	assert.Equal(t, "(a + 1)", changes[1].Description)

	same, err := s.Diff(ctx, r1.ID, r1.ID)
	require.NoError(t, err)
	assert.Empty(t, same)
}

func TestStoreProcessor(t *testing.T) {
	s := openStore(t)
	var logs bytes.Buffer
	log.SetOutput(&logs)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })

	ctx := pipeline.NewPipelineContext("p.json", []byte(`{"type": "Program", "body": [
		{"type": "ExpressionStatement", "expression": {"type": "Literal", "value": 8, "raw": "8"}}]}`))
	out := pipeline.New(pipeline.DecodeProcessor{}, analyzer.InferProcessor{}, StoreProcessor{Store: s, Verbose: true}).Run(ctx)
	require.Empty(t, out.Errors)
	assert.Contains(t, logs.String(), "p.json: recorded run")

	runs, err := s.Runs(context.Background(), "p.json")
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.True(t, runs[0].OK())
}
