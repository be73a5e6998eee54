package exactcover

// node is one cell of the toroidal four-way linked structure. It
// participates in two circular doubly-linked lists: the horizontal list of
// its row and the vertical list of its column.
//
// Column headers are themselves nodes (their embedded node is the sentinel
// of their own vertical list), so the same layout serves both ordinary
// cells and headers. column is self-referential on a header's embedded
// node, which lets any node reach its owning header through the same field
// without resorting to unsafe pointer arithmetic.
type node[E any] struct {
	left, right, up, down *node[E]
	column                *header[E]
	row                   *Row[E]
}

// header is a column header: a node whose vertical list is the column it
// heads, plus the bookkeeping the search needs to pick columns.
type header[E any] struct {
	node[E]
	size  int
	label E
}

func (h *header[E]) sentinel() *node[E] { return &h.node }

// matrix is the toroidal sparse 0/1 incidence matrix. root is the master
// sentinel heading the horizontal list of column headers; its own vertical
// list is always empty.
type matrix[E any] struct {
	root    *header[E]
	headers []*header[E]
}

func newMatrix[E any]() *matrix[E] {
	root := &header[E]{}
	root.left = root.sentinel()
	root.right = root.sentinel()
	root.up = root.sentinel()
	root.down = root.sentinel()
	return &matrix[E]{root: root}
}

// findOrCreateColumn looks up elem among existing column headers by
// equality (a linear scan of the horizontal header list, per the build
// protocol). If none match, a new header is appended to the right end of
// the header list.
func findOrCreateColumn[E any](m *matrix[E], elem E, equal Equal[E]) (*header[E], error) {
	for n := m.root.right; n != m.root.sentinel(); n = n.right {
		h := n.column
		ok, err := equal(h.label, elem)
		if err != nil {
			return nil, err
		}
		if ok {
			return h, nil
		}
	}

	h := &header[E]{label: elem}
	h.column = h
	h.up = h.sentinel()
	h.down = h.sentinel()

	h.right = m.root.sentinel()
	h.left = m.root.left
	m.root.left.right = h.sentinel()
	m.root.left = h.sentinel()

	m.headers = append(m.headers, h)
	return h, nil
}

// appendColumnBottom links cell into h's vertical list just above the
// header, i.e. at the bottom of the column, and bumps the column count.
func appendColumnBottom[E any](h *header[E], cell *node[E]) {
	cell.down = h.sentinel()
	cell.up = h.up
	h.up.down = cell
	h.up = cell
	h.size++
}

// spliceRow links cell into the current row's horizontal circular list.
// The first cell of a row forms a singleton loop; later cells are inserted
// just to the left of that first cell, so that traversing right from the
// first cell visits cells in input order.
func spliceRow[E any](first, cell *node[E]) *node[E] {
	if first == nil {
		cell.left = cell
		cell.right = cell
		return cell
	}
	cell.right = first
	cell.left = first.left
	first.left.right = cell
	first.left = cell
	return first
}

// smallestColumn scans the header list once from root.right to root,
// returning the header with the minimum count. Ties are broken by first
// encountered, i.e. leftmost, i.e. earliest inserted among the tied set.
// ok is false if no columns remain (the matrix is a solution state).
func (m *matrix[E]) smallestColumn() (h *header[E], ok bool) {
	if m.root.right == m.root.sentinel() {
		return nil, false
	}
	best := m.root.right.column
	for n := m.root.right.right; n != m.root.sentinel(); n = n.right {
		if n.column.size < best.size {
			best = n.column
		}
	}
	return best, true
}

// cover reduces the matrix by hiding column h from the header list, and
// hiding every row that intersects h from the other columns it touches.
// Traversal walks down then right; uncover must walk up then left to undo
// in exactly the reverse order.
func (m *matrix[E]) cover(h *header[E]) {
	h.right.left = h.left
	h.left.right = h.right
	for i := h.down; i != h.sentinel(); i = i.down {
		for j := i.right; j != i; j = j.right {
			j.down.up = j.up
			j.up.down = j.down
			j.column.size--
		}
	}
}

// uncover is the exact inverse of cover. It relies on the dancing-links
// property that a node's own left/right/up/down fields are left untouched
// while it is unlinked, so restoring them is just x.left.right = x;
// x.right.left = x (and the vertical equivalent), reproducing the exact
// prior topology in O(1) per node.
func (m *matrix[E]) uncover(h *header[E]) {
	for i := h.up; i != h.sentinel(); i = i.up {
		for j := i.left; j != i; j = j.left {
			j.column.size++
			j.down.up = j
			j.up.down = j
		}
	}
	h.right.left = h.sentinel()
	h.left.right = h.sentinel()
}

// coverRow covers every column touched by row r, including r's own
// column, walking in the right direction starting at r.
func (m *matrix[E]) coverRow(r *node[E]) {
	m.cover(r.column)
	for j := r.right; j != r; j = j.right {
		m.cover(j.column)
	}
}

// uncoverRow is the exact inverse of coverRow: it walks left from r.left,
// undoing each cover, and finally restores r's own column. The order is
// the reverse of coverRow so that symmetric relinking reproduces the
// topology exactly.
func (m *matrix[E]) uncoverRow(r *node[E]) {
	for j := r.left; j != r; j = j.left {
		m.uncover(j.column)
	}
	m.uncover(r.column)
}

// checkInvariants verifies the structural invariants that must hold
// whenever the search is between steps. It is used by tests, not by the
// search itself — the search's allocation discipline forbids the sort of
// bookkeeping a continuously-running check would need.
//
// Every comparison here uses == (not =); an earlier, unrelated dancing-links
// implementation is known to have confused the two inside its own assertion
// macros, which silently turned every check into a tautology.
func (m *matrix[E]) checkInvariants() error {
	for n := m.root.right; n != m.root.sentinel(); n = n.right {
		h := n.column
		if h.left.right != h.sentinel() || h.right.left != h.sentinel() {
			return errInvariant("column header horizontal links broken")
		}
		count := 0
		for c := h.down; c != h.sentinel(); c = c.down {
			if c.up.down != c || c.down.up != c {
				return errInvariant("column vertical links broken")
			}
			if c.left.right != c || c.right.left != c {
				return errInvariant("row horizontal links broken")
			}
			count++
		}
		if count != h.size {
			return errInvariant("column size does not match live cell count")
		}
	}
	if m.root.up != m.root.sentinel() || m.root.down != m.root.sentinel() {
		return errInvariant("root vertical list is not empty")
	}
	return nil
}
