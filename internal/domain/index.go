package domain

// SelectionIndex is an immutable snapshot mapping row identifiers to
// positions in the task list they were built from. It is rebuilt in full on
// every refresh; a row identifier captured before a refresh must be
// re-resolved through the new index before use.
type SelectionIndex struct {
	order     []string
	positions map[string]int
}

// NewSelectionIndex builds an index over the given tasks, in order.
func NewSelectionIndex(tasks []Task) *SelectionIndex {
	order := make([]string, len(tasks))
	positions := make(map[string]int, len(tasks))
	for i, task := range tasks {
		order[i] = task.ID
		positions[task.ID] = i
	}
	return &SelectionIndex{order: order, positions: positions}
}

// Resolve returns the position of the given row identifier, or false when
// the identifier does not belong to this snapshot.
func (idx *SelectionIndex) Resolve(rowID string) (int, bool) {
	pos, ok := idx.positions[rowID]
	return pos, ok
}

// At returns the row identifier at the given position.
func (idx *SelectionIndex) At(pos int) (string, bool) {
	if pos < 0 || pos >= len(idx.order) {
		return "", false
	}
	return idx.order[pos], true
}

// IDs returns the row identifiers in task-list order.
func (idx *SelectionIndex) IDs() []string {
	ids := make([]string, len(idx.order))
	copy(ids, idx.order)
	return ids
}

// Len returns the number of rows in the snapshot.
func (idx *SelectionIndex) Len() int {
	return len(idx.order)
}
