package engine

// neighborOffsets lists the 8-connected neighbourhood clockwise, starting
// at the up-left diagonal.
var neighborOffsets = [8]struct{ dr, dc int }{
	{-1, -1}, // up-left
	{-1, 0},  // up
	{-1, 1},  // up-right
	{0, 1},   // right
	{1, 1},   // down-right
	{1, 0},   // down
	{1, -1},  // down-left
	{0, -1},  // left
}

// Neighbors returns the in-bounds cells adjacent to p on a rows×cols grid.
// It does not look at visitation state.
func Neighbors(p Position, rows, cols int) []Position {
	return AppendNeighbors(make([]Position, 0, 8), p, rows, cols)
}

// AppendNeighbors appends the in-bounds neighbours of p to dst in the same
// order as Neighbors and returns the extended slice.
func AppendNeighbors(dst []Position, p Position, rows, cols int) []Position {
	for _, off := range neighborOffsets {
		r, c := p.Row+off.dr, p.Col+off.dc
		if r < 0 || r >= rows || c < 0 || c >= cols {
			continue
		}
		dst = append(dst, Position{Row: r, Col: c})
	}
	return dst
}
