package gridpath

// StepSnapshot exposes the per-iteration state of the search
type StepSnapshot struct {
	Current   Cell
	Open      map[Cell]bool
	Closed    map[Cell]bool
	CameFrom  map[Cell]Cell
	Done      bool
	Found     bool
	Path      Path
	StepIndex int
}

// Stepper drives the same search as Search one expansion at a time, for
// playback and debugging tools. The grid must not change while stepping.
type Stepper struct {
	engine    *engine
	stepCount int
}

// NewStepper prepares a search from start to goal without expanding anything.
func NewStepper(grid *Grid, start, goal Cell, options ...Option) (*Stepper, error) {
	searchOptions := applyOptions(options)
	e, err := newEngine(grid, start, goal, searchOptions.Heuristic)
	if err != nil {
		return nil, err
	}
	return &Stepper{engine: e}, nil
}

// Done reports whether the search has finished.
func (s *Stepper) Done() bool { return s.engine.done }

// Step advances the search by one node expansion and returns a snapshot.
// Once the search is finished every call returns the final state again.
func (s *Stepper) Step() StepSnapshot {
	e := s.engine
	if !e.done {
		e.step()
		s.stepCount = e.expanded
	}
	return s.snapshot()
}

// Run steps until the search finishes and returns the final snapshot.
func (s *Stepper) Run() StepSnapshot {
	for !s.engine.done {
		s.Step()
	}
	return s.snapshot()
}

// Result reports the outcome so far; it equals Search's result once Done.
func (s *Stepper) Result() Result { return s.engine.result() }

func (s *Stepper) snapshot() StepSnapshot {
	e := s.engine
	return StepSnapshot{
		Current:   e.current,
		Open:      s.openSetToBoolMap(),
		Closed:    copyBoolMap(e.closedSet),
		CameFrom:  copyCameFrom(e.cameFrom),
		Done:      e.done,
		Found:     e.found,
		Path:      e.path(),
		StepIndex: s.stepCount,
	}
}

func (s *Stepper) openSetToBoolMap() map[Cell]bool {
	m := make(map[Cell]bool, len(s.engine.openSetMap))
	for k := range s.engine.openSetMap {
		m[k] = true
	}
	return m
}

func copyBoolMap[T comparable](m map[T]bool) map[T]bool {
	if m == nil {
		return nil
	}
	c := make(map[T]bool, len(m))
	for k, v := range m {
		c[k] = v
	}
	return c
}

func copyCameFrom[T comparable](m map[T]T) map[T]T {
	if m == nil {
		return nil
	}
	c := make(map[T]T, len(m))
	for k, v := range m {
		c[k] = v
	}
	return c
}
