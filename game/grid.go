package game

import (
	"fmt"
	"strings"
)

// Cell is a (row, column) coordinate on the grid.
type Cell struct {
	Row int
	Col int
}

func (c Cell) String() string {
	return fmt.Sprintf("(%d, %d)", c.Row, c.Col)
}

// Grid is a square matrix of cards. Once a cell holds a card it is never
// overwritten or cleared.
type Grid struct {
	size   int
	cells  []Card // Row-major, NoCard for empty cells
	filled int
}

// NewGrid initializes an empty size x size grid.
func NewGrid(size int) *Grid {
	if size <= 0 {
		panic("grid size must be positive")
	}
	g := &Grid{
		size:  size,
		cells: make([]Card, size*size),
	}
	g.Reset()
	return g
}

// Reset empties every cell.
func (g *Grid) Reset() {
	for i := range g.cells {
		g.cells[i] = NoCard
	}
	g.filled = 0
}

func (g *Grid) Size() int {
	return g.size
}

// NumCells is the number of cells, size * size.
func (g *Grid) NumCells() int {
	return len(g.cells)
}

// Filled is the number of cards placed so far.
func (g *Grid) Filled() int {
	return g.filled
}

func (g *Grid) IsFull() bool {
	return g.filled == len(g.cells)
}

func (g *Grid) InBounds(cell Cell) bool {
	return cell.Row >= 0 && cell.Row < g.size && cell.Col >= 0 && cell.Col < g.size
}

func (g *Grid) At(cell Cell) Card {
	return g.cells[g.index(cell)]
}

func (g *Grid) IsEmpty(cell Cell) bool {
	return g.At(cell) == NoCard
}

// Place puts card into an empty cell.
func (g *Grid) Place(cell Cell, card Card) {
	i := g.index(cell)
	if g.cells[i] != NoCard {
		panic(fmt.Sprintf("cell %v already holds %v", cell, g.cells[i]))
	}
	g.cells[i] = card
	g.filled++
}

// EmptyCells lists the empty cells in row-major order.
func (g *Grid) EmptyCells() []Cell {
	empty := make([]Cell, 0, len(g.cells)-g.filled)
	for i, card := range g.cells {
		if card == NoCard {
			empty = append(empty, g.cell(i))
		}
	}
	return empty
}

// Clone returns a deep copy.
func (g *Grid) Clone() *Grid {
	clone := &Grid{}
	clone.CopyFrom(g)
	return clone
}

// CopyFrom overwrites g with src, reusing g's storage when it is large enough.
func (g *Grid) CopyFrom(src *Grid) {
	if cap(g.cells) < len(src.cells) {
		g.cells = make([]Card, len(src.cells))
	}
	g.cells = g.cells[:len(src.cells)]
	copy(g.cells, src.cells)
	g.size = src.size
	g.filled = src.filled
}

// Diff returns the first cell, row-major, that is empty in g and filled in other.
func (g *Grid) Diff(other *Grid) (Cell, bool) {
	if g.size != other.size {
		panic("cannot diff grids of different sizes")
	}
	for i, card := range g.cells {
		if card == NoCard && other.cells[i] != NoCard {
			return g.cell(i), true
		}
	}
	return Cell{}, false
}

// Row returns a copy of the cards in row r.
func (g *Grid) Row(r int) []Card {
	row := make([]Card, g.size)
	copy(row, g.cells[r*g.size:(r+1)*g.size])
	return row
}

// Col returns a copy of the cards in column c.
func (g *Grid) Col(c int) []Card {
	col := make([]Card, g.size)
	for r := 0; r < g.size; r++ {
		col[r] = g.cells[r*g.size+c]
	}
	return col
}

// Cards lists the placed cards in row-major order.
func (g *Grid) Cards() []Card {
	cards := make([]Card, 0, g.filled)
	for _, card := range g.cells {
		if card != NoCard {
			cards = append(cards, card)
		}
	}
	return cards
}

func (g *Grid) String() string {
	var sb strings.Builder
	for r := 0; r < g.size; r++ {
		for c := 0; c < g.size; c++ {
			if c > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(g.cells[r*g.size+c].String())
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func (g *Grid) index(cell Cell) int {
	if !g.InBounds(cell) {
		panic(fmt.Sprintf("cell %v is outside a %dx%d grid", cell, g.size, g.size))
	}
	return cell.Row*g.size + cell.Col
}

func (g *Grid) cell(index int) Cell {
	return Cell{Row: index / g.size, Col: index % g.size}
}
