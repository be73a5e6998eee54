package solver

// rowColFromIndex converts a cell index in the range 0-80 (index = row*9 +
// col) back to its row and column.
func rowColFromIndex(index int) (row, col int) {
	return index / 9, index % 9
}
