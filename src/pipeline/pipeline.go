// Package pipeline wires the file-selection, reload, reshape and chart
// stages into an explicit reactive dependency graph. Every derived value is
// a pumped executor recomputed from its declared dependencies; widget events
// update the source executors and everything downstream is invalidated.
package pipeline

import (
	"errors"

	pumped "github.com/pumped-fn/pumped-go"
	"go.uber.org/zap"

	"github.com/benchview/benchview/src/reshape"
	"github.com/benchview/benchview/src/table"
)

// Loader reads a table from disk. Injected so tests can count invocations
// and simulate failures.
type Loader func(path string) (*table.Table, error)

// loaded bundles the table with its resolved index column and the derived
// selectable set, so downstream stages share one load cycle.
type loaded struct {
	tbl       *table.Table
	index     string
	available []string
}

// Result is the outcome of one recomputation cycle. On failure, Stage is
// StageError and Component/Err describe where and why; fields below the
// failed stage are zero. No partial chart is produced from a failed cycle.
type Result struct {
	Stage     Stage
	Component Component
	Err       error

	Path      string
	Table     *table.Table
	Index     string
	Available []string
	Long      *reshape.Long
}

// Pipeline owns the reactive graph and the pieces of UI-driven state:
// browsed path, fallback path, reload generation and column selection.
// It is meant to be driven from a single goroutine (the event loop).
type Pipeline struct {
	scope *pumped.Scope
	log   *zap.Logger

	gen      int
	selected []string

	browsed    *pumped.Controller[string]
	fallback   *pumped.Controller[string]
	reloadCtrl *pumped.Controller[int]
	selCtrl    *pumped.Controller[[]string]

	pathExec *pumped.Executor[string]
	loadExec *pumped.Executor[*loaded]
	longExec *pumped.Executor[*reshape.Long]
}

// New builds the graph. The loader is typically table.Load.
func New(loader Loader, log *zap.Logger) *Pipeline {
	if log == nil {
		log = zap.NewNop()
	}

	browsedExec := pumped.Provide(func(*pumped.ResolveCtx) (string, error) { return "", nil })
	fallbackExec := pumped.Provide(func(*pumped.ResolveCtx) (string, error) { return "", nil })
	reloadExec := pumped.Provide(func(*pumped.ResolveCtx) (int, error) { return 0, nil })
	selectedExec := pumped.Provide(func(*pumped.ResolveCtx) ([]string, error) { return nil, nil })

	pathExec := pumped.Derive2(
		browsedExec.Reactive(),
		fallbackExec.Reactive(),
		func(_ *pumped.ResolveCtx, browsed, fallback *pumped.Controller[string]) (string, error) {
			b, err := browsed.Get()
			if err != nil {
				return "", err
			}
			f, err := fallback.Get()
			if err != nil {
				return "", err
			}
			return ResolvePath(b, f)
		},
	)

	loadExec := pumped.Derive2(
		pathExec.Reactive(),
		reloadExec.Reactive(),
		func(_ *pumped.ResolveCtx, path *pumped.Controller[string], gen *pumped.Controller[int]) (*loaded, error) {
			p, err := path.Get()
			if err != nil {
				return nil, err
			}
			// The generation value itself is unused; depending on it keys
			// recomputation on (path, generation) so a reload with an
			// unchanged path still re-reads the file.
			if _, err := gen.Get(); err != nil {
				return nil, err
			}
			tbl, err := loader(p)
			if err != nil {
				return nil, err
			}
			index, err := tbl.IndexColumn()
			if err != nil {
				return nil, err
			}
			return &loaded{tbl: tbl, index: index, available: table.Selectable(tbl, index)}, nil
		},
	)

	longExec := pumped.Derive2(
		loadExec.Reactive(),
		selectedExec.Reactive(),
		func(_ *pumped.ResolveCtx, load *pumped.Controller[*loaded], sel *pumped.Controller[[]string]) (*reshape.Long, error) {
			lo, err := load.Get()
			if err != nil {
				return nil, err
			}
			cols, err := sel.Get()
			if err != nil {
				return nil, err
			}
			return reshape.Melt(lo.tbl, lo.index, cols)
		},
	)

	scope := pumped.NewScope()
	return &Pipeline{
		scope:      scope,
		log:        log,
		browsed:    pumped.Accessor(scope, browsedExec),
		fallback:   pumped.Accessor(scope, fallbackExec),
		reloadCtrl: pumped.Accessor(scope, reloadExec),
		selCtrl:    pumped.Accessor(scope, selectedExec),
		pathExec:   pathExec,
		loadExec:   loadExec,
		longExec:   longExec,
	}
}

// SetBrowsedPath records an interactive file choice. Empty string clears it
// so the fallback takes over again.
func (p *Pipeline) SetBrowsedPath(path string) {
	p.log.Debug("browsed path changed", zap.String("path", path))
	_ = p.browsed.Update(path)
}

// SetFallbackPath records the externally supplied path (CLI argument).
func (p *Pipeline) SetFallbackPath(path string) {
	p.log.Debug("fallback path changed", zap.String("path", path))
	_ = p.fallback.Update(path)
}

// Reload advances the generation counter, forcing the next recomputation to
// re-read the active file even if the path is unchanged. Returns the new
// generation.
func (p *Pipeline) Reload() int {
	p.gen++
	p.log.Debug("reload triggered", zap.Int("generation", p.gen))
	_ = p.reloadCtrl.Update(p.gen)
	return p.gen
}

// Generation returns the current reload generation.
func (p *Pipeline) Generation() int { return p.gen }

// Select stores the chosen column subset. No validation against the current
// table happens here; the table may change after selection and stale names
// are filtered during reshape.
func (p *Pipeline) Select(cols []string) {
	p.selected = append([]string(nil), cols...)
	p.log.Debug("selection changed", zap.Strings("columns", p.selected))
	_ = p.selCtrl.Update(p.selected)
}

// Selected returns a copy of the current selection.
func (p *Pipeline) Selected() []string {
	return append([]string(nil), p.selected...)
}

// Recompute resolves the graph as far as it goes and reports the outcome.
// Failed cycles leave the pipeline recoverable: a new path, selection or
// reload event invalidates the failed stage and the next Recompute retries.
func (p *Pipeline) Recompute() Result {
	var res Result

	path, err := pumped.Resolve(p.scope, p.pathExec)
	if err != nil {
		if errors.Is(err, ErrNoPathAvailable) {
			res.Stage = StageNoPath
			res.Component = ComponentResolver
			res.Err = err
			return res
		}
		return p.fail(res, ComponentResolver, err)
	}
	res.Path = path
	res.Stage = StagePathResolved

	lo, err := pumped.Resolve(p.scope, p.loadExec)
	if err != nil {
		return p.fail(res, classify(err), err)
	}
	res.Table = lo.tbl
	res.Index = lo.index
	res.Available = lo.available
	res.Stage = StageLoaded

	long, err := pumped.Resolve(p.scope, p.longExec)
	if err != nil {
		return p.fail(res, ComponentReshaper, err)
	}
	res.Long = long
	res.Stage = StageReshaped
	p.log.Debug("recompute finished",
		zap.String("path", res.Path),
		zap.String("index", res.Index),
		zap.Int("rows", long.Len()))
	return res
}

// Dispose releases the underlying scope.
func (p *Pipeline) Dispose() error { return p.scope.Dispose() }

func (p *Pipeline) fail(res Result, comp Component, err error) Result {
	res.Stage = StageError
	res.Component = comp
	res.Err = err
	p.log.Warn("pipeline cycle failed",
		zap.String("component", string(comp)),
		zap.String("path", res.Path),
		zap.Error(err))
	return res
}

// classify attributes a load-stage error to the component the error
// taxonomy assigns it to: index ambiguity belongs to the reshaper contract,
// everything else to the loader.
func classify(err error) Component {
	if errors.Is(err, table.ErrAmbiguousIndex) {
		return ComponentReshaper
	}
	return ComponentLoader
}
