package table

// Format identifies the on-disk serialization family of a table.
type Format int

const (
	FormatCSV Format = iota
	FormatXLSX
	FormatJSON
	FormatNDJSON
)

// Row maps a column name to a cell value. A nil pointer is a null cell.
type Row map[string]*string

// Table is a mutable ordered collection of rows. Column order is preserved
// across load, enrichment and save. Column presence is not guaranteed until
// the schema normalizer has run.
type Table struct {
	Columns []string
	Rows    []Row

	// Format records the serialization family the table was loaded from, so
	// a save can stay in the same family.
	Format Format
}

// New creates an empty table with the given columns.
func New(columns ...string) *Table {
	return &Table{Columns: append([]string{}, columns...)}
}

// HasColumn reports whether the column is part of the table schema.
func (t *Table) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// EnsureColumn adds the column with null cells if it is absent.
// Returns true if the column was added. Idempotent.
func (t *Table) EnsureColumn(name string) bool {
	if t.HasColumn(name) {
		return false
	}
	t.Columns = append(t.Columns, name)
	return true
}

// Append adds a row. Cells for columns not in the schema are ignored on save.
func (t *Table) Append(r Row) {
	if r == nil {
		r = Row{}
	}
	t.Rows = append(t.Rows, r)
}

// Get returns the cell value at row i, or nil if the column is absent.
func (t *Table) Get(i int, col string) *string {
	return t.Rows[i][col]
}

// Set writes a cell value at row i, ensuring the column exists in the schema.
func (t *Table) Set(i int, col string, v *string) {
	t.EnsureColumn(col)
	t.Rows[i][col] = v
}

// Val is a shorthand for taking the address of a string literal.
func Val(s string) *string {
	return &s
}
