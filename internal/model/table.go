package model

// Table is a raw result set: column names in select order and rows of driver values
type Table struct {
	Columns []string
	Rows    [][]any
}

// Empty means no columns were read, so there is nothing to lay out
func (t Table) Empty() bool {
	return len(t.Columns) == 0
}

// Project returns table restricted to given columns, unknown names are skipped
func (t Table) Project(columns ...string) Table {
	idx := make([]int, 0, len(columns))
	names := make([]string, 0, len(columns))
	for _, name := range columns {
		for i, col := range t.Columns {
			if col == name {
				idx = append(idx, i)
				names = append(names, col)
				break
			}
		}
	}

	rows := make([][]any, 0, len(t.Rows))
	for _, row := range t.Rows {
		projected := make([]any, len(idx))
		for j, i := range idx {
			projected[j] = row[i]
		}
		rows = append(rows, projected)
	}
	return Table{Columns: names, Rows: rows}
}
