package dbschema

// StoredRecord is a mapping from stored-column name to a value of that
// column's type — the shape a row takes once it is fully materialized.
type StoredRecord map[string]any

// InsertRecord is the same shape as StoredRecord, except that columns
// carrying a default-value factory may be omitted; the storage layer (or
// the table schema itself, via FillDefaults) supplies them.
type InsertRecord map[string]any

// FillDefaults returns a copy of rec with every stored column's default
// factory applied to any column rec omits. It does not validate the result
// against each column's Type — that is the storage layer's job.
func (t *TableSchema) FillDefaults(rec InsertRecord) StoredRecord {
	out := make(StoredRecord, len(t.storedColumns))
	for _, col := range t.storedColumns {
		if v, ok := rec[col.Name()]; ok {
			out[col.Name()] = v
		} else if col.HasDefault() {
			out[col.Name()] = col.Default()
		}
	}
	return out
}
