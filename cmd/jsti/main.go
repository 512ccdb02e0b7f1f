// Command jsti infers static types for JavaScript programs given as ESTree
// JSON (esprima or acorn output with raw literals and locations).
//
//	jsti [flags] file.json|dir...
package main

import (
	"flag"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/funvibe/jsti/internal/analyzer"
	"github.com/funvibe/jsti/internal/config"
	"github.com/funvibe/jsti/internal/pipeline"
	"github.com/funvibe/jsti/internal/prettyprinter"
	"github.com/funvibe/jsti/internal/store"
)

func main() {
	log.SetFlags(0)          // Disable timestamp in logs
	log.SetOutput(os.Stderr) // stdout carries the report
	os.Exit(run(os.Args[1:], os.Stdout))
}

type options struct {
	verbose    bool
	json       bool
	noBuiltins bool
	dbPath     string
	configPath string
}

// run executes the command and returns its exit code: 0 when every input
// was inferred without failure, 1 otherwise, 2 for usage errors.
func run(args []string, stdout io.Writer) int {
	var opts options
	flags := flag.NewFlagSet("jsti", flag.ContinueOnError)
	flags.BoolVar(&opts.verbose, "v", false, "log progress and dump every node annotation")
	flags.BoolVar(&opts.json, "json", false, "print machine-readable reports")
	flags.BoolVar(&opts.noBuiltins, "no-builtins", false, "do not declare Math and the vector constructors")
	flags.StringVar(&opts.dbPath, "db", "", "record runs in the SQLite database at `path` (e.g. "+config.DefaultStorePath+")")
	flags.StringVar(&opts.configPath, "config", "", "project file `path` (default: search upward from each input)")
	flags.Usage = func() {
		fmt.Fprintf(flags.Output(), "usage: jsti [flags] file%s|dir...\n", config.SourceFileExt)
		flags.PrintDefaults()
	}
	if err := flags.Parse(args); err != nil {
		return 2
	}
	if flags.NArg() == 0 {
		flags.Usage()
		return 2
	}

	files, err := collectFiles(flags.Args())
	if err != nil {
		log.Printf("error: %v", err)
		return 1
	}

	var st *store.Store
	if opts.dbPath != "" {
		if st, err = store.Open(opts.dbPath); err != nil {
			log.Printf("error: %v", err)
			return 1
		}
		defer st.Close()
	}

	style := prettyprinter.Plain()
	if f, ok := stdout.(*os.File); ok && !opts.json {
		style = prettyprinter.DetectStyle(f)
	}

	configs := newConfigCache(opts)
	p := pipeline.New(
		pipeline.DecodeProcessor{},
		analyzer.InferProcessor{},
		store.StoreProcessor{Store: st, Verbose: opts.verbose},
		prettyprinter.ReportProcessor{Out: stdout, Style: style, JSON: opts.json, Verbose: opts.verbose},
	)

	failed := false
	for _, path := range files {
		cfg, err := configs.forFile(path)
		if err != nil {
			log.Printf("error: %v", err)
			failed = true
			continue
		}
		source, err := os.ReadFile(path)
		if err != nil {
			log.Printf("error: %v", err)
			failed = true
			continue
		}

		ctx := pipeline.NewPipelineContext(path, source)
		ctx.Config = cfg
		out := p.Run(ctx)
		if out.Failed() || (out.Tree != nil && out.Types != nil && len(analyzer.Invalid(out.Tree, out.Types)) > 0) {
			failed = true
		}
	}
	if failed {
		return 1
	}
	return 0
}

// isSourceFile checks if a file has a recognized source extension
func isSourceFile(path string) bool {
	for _, ext := range config.SourceFileExtensions {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}

// collectFiles expands directories into the source files below them.
// Files named explicitly are kept whatever their extension.
func collectFiles(args []string) ([]string, error) {
	var files []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			files = append(files, arg)
			continue
		}
		err = filepath.WalkDir(arg, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && isSourceFile(path) {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("scanning %s: %w", arg, err)
		}
	}
	return files, nil
}

// configCache loads each project file once.
type configCache struct {
	opts   options
	loaded map[string]*config.Config
}

func newConfigCache(opts options) *configCache {
	return &configCache{opts: opts, loaded: make(map[string]*config.Config)}
}

func (c *configCache) forFile(path string) (*config.Config, error) {
	cfgPath := c.opts.configPath
	if cfgPath == "" {
		found, err := config.FindConfig(filepath.Dir(path))
		if err != nil {
			return nil, err
		}
		cfgPath = found
	}
	if cfg, ok := c.loaded[cfgPath]; ok {
		return cfg, nil
	}

	cfg := config.Default()
	if cfgPath != "" {
		var err error
		if cfg, err = config.LoadConfig(cfgPath); err != nil {
			return nil, err
		}
	}
	if c.opts.noBuiltins {
		off := false
		cfg.Options.Builtins = &off
	}
	if c.opts.verbose {
		if cfgPath == "" {
			log.Printf("%s: no project file, using defaults", path)
		} else {
			log.Printf("%s: using %s", path, cfgPath)
		}
	}
	c.loaded[cfgPath] = cfg
	return cfg, nil
}
