// Package spreadsheet is the computational core of a two-dimensional
// spreadsheet: a grid of cells holding literal text or arithmetic formulas
// over other cells, with dependency tracking, cycle rejection, and lazy
// cached evaluation with invalidation.
package spreadsheet

import (
	"io"

	"github.com/elliotchance/orderedmap/v3"

	"github.com/arjunv/go-spreadsheet/position"
)

// ColDelimiter and RowDelimiter separate fields when printing a sheet.
const (
	ColDelimiter = '\t'
	RowDelimiter = '\n'
)

// Sheet is the grid container: it owns every cell, performs cycle checks
// and edge wiring on every edit, tracks cache invalidation, and maintains
// the occupancy accounting GetPrintableSize relies on.
type Sheet struct {
	cells map[position.Position]*Cell

	// rowCounts/colCounts track, for each occupied row/column, how many
	// non-empty cells it holds. Ordered maps double as the sparse index
	// GetPrintableSize scans for the bounding box; see DESIGN.md for why
	// this is a linear scan rather than a true O(log n) max-key lookup.
	rowCounts *orderedmap.OrderedMap[int, int]
	colCounts *orderedmap.OrderedMap[int, int]
}

// CreateSheet returns a new, empty sheet.
func CreateSheet() *Sheet {
	return &Sheet{
		cells:     make(map[position.Position]*Cell),
		rowCounts: orderedmap.NewOrderedMap[int, int](),
		colCounts: orderedmap.NewOrderedMap[int, int](),
	}
}

// GetCell returns the cell at pos, or nil if pos is out of bounds or the
// slot is unoccupied.
func (s *Sheet) GetCell(pos position.Position) *Cell {
	if !pos.IsValid() {
		return nil
	}
	return s.cells[pos]
}

// SetCell parses text into a prospective cell, rejects the edit if it would
// introduce a cycle, and otherwise splices the new cell into the grid,
// rewiring edges and invalidating every transitive ancestor.
func (s *Sheet) SetCell(pos position.Position, text string) error {
	if !pos.IsValid() {
		return newInvalidPositionError(pos)
	}

	next, err := newCell(s, pos, text)
	if err != nil {
		return err
	}

	if err := s.checkCycle(pos, next.children); err != nil {
		return err
	}

	prev := s.cells[pos]

	if prev != nil {
		for _, childPos := range prev.children {
			s.removeParentEdge(childPos, pos)
		}
	}

	for _, childPos := range next.children {
		child := s.fetchOrCreatePlaceholder(childPos)
		child.parents[pos] = struct{}{}
	}

	if prev != nil {
		next.parents = prev.parents
	}

	wasEmpty := prev == nil || prev.IsEmpty()
	switch {
	case wasEmpty && !next.IsEmpty():
		s.bumpCount(s.rowCounts, pos.Row, 1)
		s.bumpCount(s.colCounts, pos.Col, 1)
	case !wasEmpty && next.IsEmpty():
		s.bumpCount(s.rowCounts, pos.Row, -1)
		s.bumpCount(s.colCounts, pos.Col, -1)
	}

	s.cells[pos] = next
	s.invalidateAncestors(pos)

	return nil
}

// ClearCell removes pos's content. A cell still referenced by other
// formulas is replaced with an Empty placeholder that keeps its parents;
// otherwise the slot is deleted outright.
func (s *Sheet) ClearCell(pos position.Position) error {
	if !pos.IsValid() {
		return newInvalidPositionError(pos)
	}

	cell, ok := s.cells[pos]
	if !ok || cell.IsEmpty() {
		return nil
	}

	for _, childPos := range cell.children {
		s.removeParentEdge(childPos, pos)
	}

	if len(cell.parents) > 0 {
		placeholder := newEmptyPlaceholder(s, pos)
		placeholder.parents = cell.parents
		s.cells[pos] = placeholder
	} else {
		delete(s.cells, pos)
	}

	s.bumpCount(s.rowCounts, pos.Row, -1)
	s.bumpCount(s.colCounts, pos.Col, -1)

	s.invalidateAncestors(pos)
	return nil
}

// GetPrintableSize returns the bounding box from the origin that contains
// every non-empty cell, or (0,0) if none exist.
func (s *Sheet) GetPrintableSize() position.Size {
	if s.rowCounts.Len() == 0 {
		return position.Size{}
	}

	maxRow := -1
	for row := range s.rowCounts.Keys() {
		if row > maxRow {
			maxRow = row
		}
	}
	maxCol := -1
	for col := range s.colCounts.Keys() {
		if col > maxCol {
			maxCol = col
		}
	}

	return position.Size{Rows: maxRow + 1, Cols: maxCol + 1}
}

// PrintValues writes every cell's value over the printable rectangle,
// tab-delimited within a row and newline-terminated per row.
func (s *Sheet) PrintValues(w io.Writer) error {
	return s.print(w, func(c *Cell) string {
		if c == nil {
			return ""
		}
		return c.GetValue().String()
	})
}

// PrintTexts writes every cell's text over the printable rectangle, in the
// same delimiter scheme as PrintValues.
func (s *Sheet) PrintTexts(w io.Writer) error {
	return s.print(w, func(c *Cell) string {
		if c == nil {
			return ""
		}
		return c.GetText()
	})
}

func (s *Sheet) print(w io.Writer, render func(*Cell) string) error {
	size := s.GetPrintableSize()
	for row := 0; row < size.Rows; row++ {
		for col := 0; col < size.Cols; col++ {
			if col > 0 {
				if _, err := io.WriteString(w, string(rune(ColDelimiter))); err != nil {
					return err
				}
			}
			cell := s.GetCell(position.Position{Row: row, Col: col})
			if _, err := io.WriteString(w, render(cell)); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, string(rune(RowDelimiter))); err != nil {
			return err
		}
	}
	return nil
}

// checkCycle runs a DFS from each child of a prospective cell at target,
// following existing children edges and ignoring absent cells, to see
// whether target would become reachable from its own children.
func (s *Sheet) checkCycle(target position.Position, children []position.Position) error {
	visited := make(map[position.Position]struct{})

	var dfs func(p position.Position) bool
	dfs = func(p position.Position) bool {
		if p == target {
			return true
		}
		if _, ok := visited[p]; ok {
			return false
		}
		visited[p] = struct{}{}

		cell := s.cells[p]
		if cell == nil {
			return false
		}
		for _, childPos := range cell.children {
			if dfs(childPos) {
				return true
			}
		}
		return false
	}

	for _, childPos := range children {
		if dfs(childPos) {
			return newCircularDependencyError(target)
		}
	}
	return nil
}

// invalidateAncestors clears the cache of pos and every transitive parent,
// visited-set guarded so shared ancestors are only cleared once.
func (s *Sheet) invalidateAncestors(pos position.Position) {
	visited := make(map[position.Position]struct{})

	var dfs func(p position.Position)
	dfs = func(p position.Position) {
		if _, ok := visited[p]; ok {
			return
		}
		visited[p] = struct{}{}

		cell, ok := s.cells[p]
		if !ok {
			return
		}
		cell.invalidate()
		for parentPos := range cell.parents {
			dfs(parentPos)
		}
	}

	dfs(pos)
}

// fetchOrCreatePlaceholder returns the cell at pos, creating an Empty
// placeholder if none exists yet. Creating a placeholder never bumps
// occupancy counters: placeholders are not non-empty cells.
func (s *Sheet) fetchOrCreatePlaceholder(pos position.Position) *Cell {
	if cell, ok := s.cells[pos]; ok {
		return cell
	}
	cell := newEmptyPlaceholder(s, pos)
	s.cells[pos] = cell
	return cell
}

// removeParentEdge removes parentPos from childPos's parents set, deleting
// childPos's slot if it is thereby left both empty and parent-less.
func (s *Sheet) removeParentEdge(childPos, parentPos position.Position) {
	child, ok := s.cells[childPos]
	if !ok {
		return
	}
	delete(child.parents, parentPos)
	if child.IsEmpty() && len(child.parents) == 0 {
		delete(s.cells, childPos)
	}
}

func (s *Sheet) bumpCount(m *orderedmap.OrderedMap[int, int], key int, delta int) {
	cur, _ := m.Get(key)
	cur += delta
	if cur <= 0 {
		m.Delete(key)
		return
	}
	m.Set(key, cur)
}
