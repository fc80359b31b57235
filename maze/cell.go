package maze

import "fmt"

// Cell is a grid coordinate. Cells are values; their identity is the coordinate.
type Cell struct {
	Col int `json:"col" bson:"col"` // Column index, 0 <= Col < width
	Row int `json:"row" bson:"row"` // Row index, 0 <= Row < height
}

// String renders the cell as "(col,row)".
func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.Col, c.Row)
}

// Direction names one of the four sides of a cell.
type Direction int

// Directions in the order the flood examines neighbours.
const (
	Up Direction = iota
	Right
	Down
	Left
)

// Directions lists every direction in examination order.
var Directions = [4]Direction{Up, Right, Down, Left}

var directionNames = [4]string{"Up", "Right", "Down", "Left"}

// offsets holds the (dCol, dRow) step for each direction.
var offsets = [4][2]int{{0, -1}, {1, 0}, {0, 1}, {-1, 0}}

func (d Direction) String() string {
	if d < Up || d > Left {
		return fmt.Sprintf("Direction(%d)", int(d))
	}
	return directionNames[d]
}

// Opposite returns the direction pointing back.
func (d Direction) Opposite() Direction {
	return (d + 2) % 4
}

// Step returns the neighbour of c in direction d. The result may be out of bounds.
func (c Cell) Step(d Direction) Cell {
	o := offsets[d]
	return Cell{Col: c.Col + o[0], Row: c.Row + o[1]}
}
