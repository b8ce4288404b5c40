package web

import (
	"slices"

	"github.com/pdrpinto/gridpath"
)

// point is a cell on the wire: [row, col].
type point = [2]int

func toPoint(c gridpath.Cell) point { return point{c.Row, c.Col} }
func toCell(p point) gridpath.Cell  { return gridpath.Cell{Row: p[0], Col: p[1]} }

type createSessionRequest struct {
	Kind      string  `json:"kind" binding:"required,oneof=scatter polygon"`
	Rows      int     `json:"rows" binding:"omitempty,min=1,max=200"`
	Cols      int     `json:"cols" binding:"omitempty,min=1,max=200"`
	Start     point   `json:"start"`
	Goal      point   `json:"goal"`
	Vertices  []point `json:"vertices" binding:"omitempty,len=4"`
	Obstacles *int    `json:"obstacles" binding:"omitempty,min=0"`
	Seed      uint64  `json:"seed"`
}

type createSessionResponse struct {
	ID    string  `json:"id"`
	Rows  int     `json:"rows"`
	Cols  int     `json:"cols"`
	Start point   `json:"start"`
	Goal  point   `json:"goal"`
	Walls []point `json:"walls"`
}

type snapshot struct {
	Step    int     `json:"step"`
	Open    []point `json:"open,omitempty"`
	Closed  []point `json:"closed,omitempty"`
	Current point   `json:"current"`
	Done    bool    `json:"done"`
	Found   bool    `json:"found"`
	Path    []point `json:"path,omitempty"`
}

type pathResponse struct {
	Found    bool    `json:"found"`
	Cost     int     `json:"cost"`
	Expanded int     `json:"expanded"`
	Valid    bool    `json:"valid"`
	Path     []point `json:"path"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func toSnapshot(st gridpath.StepSnapshot) snapshot {
	return snapshot{
		Step:    st.StepIndex,
		Open:    setToList(st.Open),
		Closed:  setToList(st.Closed),
		Current: toPoint(st.Current),
		Done:    st.Done,
		Found:   st.Found,
		Path:    pathToList(st.Path),
	}
}

// setToList flattens a cell set in row-major order so responses are stable.
func setToList(m map[gridpath.Cell]bool) []point {
	res := make([]point, 0, len(m))
	for c, ok := range m {
		if ok {
			res = append(res, toPoint(c))
		}
	}
	slices.SortFunc(res, func(a, b point) int {
		if a[0] != b[0] {
			return a[0] - b[0]
		}
		return a[1] - b[1]
	})
	return res
}

func pathToList(p gridpath.Path) []point {
	if p.Empty() {
		return nil
	}
	res := make([]point, len(p))
	for i, c := range p {
		res[i] = toPoint(c)
	}
	return res
}

func wallsOf(g *gridpath.Grid) []point {
	walls := make([]point, 0, g.BlockedCount())
	for row := 0; row < g.Rows(); row++ {
		for col := 0; col < g.Cols(); col++ {
			c := gridpath.Cell{Row: row, Col: col}
			if !g.IsTraversable(c) {
				walls = append(walls, toPoint(c))
			}
		}
	}
	return walls
}
