package gridpath

import (
	"container/heap"
	"runtime"

	"go.uber.org/zap"

	"github.com/pdrpinto/gridpath/internal"
)

// Result contains the outcome of a search
type Result struct {
	Path          Path
	Cost          int
	ExpandedNodes int
	Found         bool
}

// Options defines parameters for the search.
type Options struct {
	// NumberOfWorkers bounds the goroutines used by SolveAll. A single search never fans out.
	NumberOfWorkers int
	Heuristic       Heuristic
	Logger          *zap.Logger
}

// Option is a function that modifies Options.
type Option func(*Options)

// WithWorkers specifies how many worker goroutines SolveAll runs.
func WithWorkers(numberOfWorkers int) Option {
	return func(options *Options) { options.NumberOfWorkers = numberOfWorkers }
}

// WithHeuristic replaces the Manhattan heuristic.
func WithHeuristic(heuristic Heuristic) Option {
	return func(options *Options) { options.Heuristic = heuristic }
}

// WithLogger attaches a logger that traces search outcomes at debug level.
func WithLogger(logger *zap.Logger) Option {
	return func(options *Options) { options.Logger = logger }
}

func applyOptions(options []Option) Options {
	searchOptions := Options{
		NumberOfWorkers: runtime.NumCPU(),
		Heuristic:       Manhattan,
		Logger:          zap.NewNop(),
	}
	for _, option := range options {
		option(&searchOptions)
	}
	if searchOptions.NumberOfWorkers < 1 {
		searchOptions.NumberOfWorkers = 1
	}
	if searchOptions.Heuristic == nil {
		searchOptions.Heuristic = Manhattan
	}
	if searchOptions.Logger == nil {
		searchOptions.Logger = zap.NewNop()
	}
	return searchOptions
}

// FindPath returns a shortest path from start to goal, or an empty Path when
// the goal is unreachable or an endpoint is off-grid or blocked.
func FindPath(grid *Grid, start, goal Cell, options ...Option) Path {
	result, err := Search(grid, start, goal, options...)
	if err != nil {
		return nil
	}
	return result.Path
}

// Search runs A* to completion. An unreachable goal is not an error: the
// Result has Found == false and an empty Path.
func Search(grid *Grid, start, goal Cell, options ...Option) (Result, error) {
	searchOptions := applyOptions(options)
	logger := searchOptions.Logger

	e, err := newEngine(grid, start, goal, searchOptions.Heuristic)
	if err != nil {
		logger.Debug("search rejected", zap.Stringer("start", start), zap.Stringer("goal", goal), zap.Error(err))
		return Result{}, err
	}
	for !e.done {
		e.step()
	}

	result := e.result()
	logger.Debug("search finished",
		zap.Stringer("start", start),
		zap.Stringer("goal", goal),
		zap.Bool("found", result.Found),
		zap.Int("cost", result.Cost),
		zap.Int("expanded", result.ExpandedNodes),
	)
	return result, nil
}

// engine holds the state of one A* invocation. It is driven either to
// completion by Search or one expansion at a time by a Stepper.
type engine struct {
	grid      *Grid
	start     Cell
	goal      Cell
	heuristic Heuristic

	openSet           PriorityQueue
	openSetMap        map[Cell]*PriorityQueueItem
	cameFrom          map[Cell]Cell
	pathCostFromStart map[Cell]int
	closedSet         map[Cell]bool

	seq      uint64
	expanded int
	current  Cell
	done     bool
	found    bool
}

func newEngine(grid *Grid, start, goal Cell, heuristic Heuristic) (*engine, error) {
	for _, endpoint := range [2]Cell{start, goal} {
		if !grid.InBounds(endpoint) {
			return nil, cellError("search", endpoint, ErrOutOfBounds)
		}
		if !grid.IsTraversable(endpoint) {
			return nil, cellError("search", endpoint, ErrBlockedEndpoint)
		}
	}

	e := &engine{
		grid:              grid,
		start:             start,
		goal:              goal,
		heuristic:         heuristic,
		openSet:           make(PriorityQueue, 0, grid.Rows()+grid.Cols()),
		openSetMap:        make(map[Cell]*PriorityQueueItem),
		cameFrom:          make(map[Cell]Cell),
		pathCostFromStart: map[Cell]int{start: 0},
		closedSet:         make(map[Cell]bool),
	}
	heap.Init(&e.openSet)
	startItem := &PriorityQueueItem{Cell: start, GScore: 0, FCost: heuristic(start, goal), Seq: 0}
	heap.Push(&e.openSet, startItem)
	e.openSetMap[start] = startItem
	return e, nil
}

// step expands the best frontier cell. It marks the engine done when the
// goal is dequeued or the frontier is exhausted.
func (e *engine) step() {
	if e.done {
		return
	}
	if e.openSet.Len() == 0 {
		e.done = true
		return
	}

	currentItem := heap.Pop(&e.openSet).(*PriorityQueueItem)
	current := currentItem.Cell
	delete(e.openSetMap, current)
	e.current = current
	e.closedSet[current] = true
	e.expanded++

	if current == e.goal {
		e.done = true
		e.found = true
		return
	}

	currentG := e.pathCostFromStart[current]
	for _, neighbor := range e.grid.Neighbors(current) {
		if !e.grid.IsTraversable(neighbor) {
			continue
		}
		tentativeG := currentG + 1
		if previousG, seen := e.pathCostFromStart[neighbor]; seen && tentativeG >= previousG {
			continue
		}
		e.pathCostFromStart[neighbor] = tentativeG
		e.cameFrom[neighbor] = current

		// a cell already queued keeps its original priority and position
		if _, inOpen := e.openSetMap[neighbor]; inOpen {
			continue
		}
		e.seq++
		fCost := tentativeG + e.heuristic(neighbor, e.goal)
		item := &PriorityQueueItem{Cell: neighbor, GScore: tentativeG, FCost: fCost, Seq: e.seq}
		heap.Push(&e.openSet, item)
		e.openSetMap[neighbor] = item
	}
}

func (e *engine) path() Path {
	if !e.found {
		return nil
	}
	cost := e.pathCostFromStart[e.goal]
	return Path(internal.ReconstructPath(e.cameFrom, e.goal, e.start, cost+1))
}

func (e *engine) result() Result {
	if !e.found {
		return Result{ExpandedNodes: e.expanded}
	}
	return Result{
		Path:          e.path(),
		Cost:          e.pathCostFromStart[e.goal],
		ExpandedNodes: e.expanded,
		Found:         true,
	}
}
