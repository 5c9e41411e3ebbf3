package observable

// FlatTable pages a flattened row sequence. Page is 0-based.
type FlatTable struct {
	Rows    []*FlatRow
	Page    int
	PerPage int
}

func NewFlatTable(rows []*FlatRow, page, perPage int) *FlatTable {
	if perPage <= 0 {
		perPage = 10
	}
	t := &FlatTable{Rows: rows, PerPage: perPage}
	t.Page = min(max(page, 0), max(t.NumPages()-1, 0))
	return t
}

func (t *FlatTable) NumPages() int {
	return (len(t.Rows) + t.PerPage - 1) / t.PerPage
}

// Offset is the index of the first row on the current page.
func (t *FlatTable) Offset() int {
	return t.Page * t.PerPage
}

// Visible returns the rows of the current page.
func (t *FlatTable) Visible() []*FlatRow {
	start := min(t.Offset(), len(t.Rows))
	end := min(start+t.PerPage, len(t.Rows))
	return t.Rows[start:end]
}

// RowSpan is the number of table rows the group cell of row index spans on
// the current page. Rows outside a composition span one row.
func (t *FlatTable) RowSpan(index int) int {
	length := t.Rows[index].ComposedLength
	if length == 0 {
		return 1
	}
	start := 0
	for i := index; i >= 0; i-- {
		if l := t.Rows[i].ComposedLength; l != 0 && l != length {
			start = i
			break
		}
	}
	remaining := start + length - t.Offset()
	if remaining > 0 {
		if start > 0 {
			remaining++
		}
		return remaining
	}
	return t.PerPage + remaining
}

// WriteGroupCell reports whether row index opens a group cell. Inside a
// composition only the first row of the group, or the first row of a page
// cutting through it, does.
func (t *FlatTable) WriteGroupCell(index int) bool {
	if index == 0 || t.Rows[index].ComposedLength == 0 {
		return true
	}
	if t.Rows[index-1].ComposedLength == t.Rows[index].ComposedLength {
		return index == t.Offset()
	}
	return true
}
