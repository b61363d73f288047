package dbschema

import "github.com/pcardune/pauldb/coltype"

// IndexConfig is the indexing configuration carried by a column, mirroring
// `indexed: {shouldIndex, order?, inMemory?}`.
type IndexConfig struct {
	ShouldIndex bool
	Order       int
	InMemory    bool
}

// defaultIndexConfig is applied by StoredColumn.Unique() when no explicit
// IndexConfig is given, and by NewSerialColumn.
var defaultIndexConfig = IndexConfig{ShouldIndex: true, Order: 2, InMemory: false}

// Column is the common surface of StoredColumn and ComputedColumn.
type Column interface {
	Name() string
	Type() coltype.Type
	IsUnique() bool
	Indexed() IndexConfig
}

// StoredColumn is a column whose value lives in every row on disk.
type StoredColumn struct {
	name      string
	typ       coltype.Type
	isUnique  bool
	indexed   IndexConfig
	defaultFn func() any
}

// NewColumn starts a stored-column builder for a value of type t.
func NewColumn(name string, t coltype.Type) StoredColumn {
	return StoredColumn{name: name, typ: t}
}

// NewSerialColumn builds the always-unique, always-indexed auto-increment
// column. The default factory returns the zero value; the monotonic-id
// contract itself belongs to the storage layer that owns the table, not to
// this descriptor.
func NewSerialColumn(name string) StoredColumn {
	return StoredColumn{
		name:      name,
		typ:       coltype.Serial,
		isUnique:  true,
		indexed:   defaultIndexConfig,
		defaultFn: func() any { return uint32(0) },
	}
}

func (c StoredColumn) Name() string             { return c.name }
func (c StoredColumn) Type() coltype.Type        { return c.typ }
func (c StoredColumn) IsUnique() bool            { return c.isUnique }
func (c StoredColumn) Indexed() IndexConfig      { return c.indexed }
func (c StoredColumn) HasDefault() bool          { return c.defaultFn != nil }
func (c StoredColumn) Default() any {
	if c.defaultFn == nil {
		return nil
	}
	return c.defaultFn()
}

// Unique marks the column as a uniqueness constraint, applying
// defaultIndexConfig unless cfg is given.
func (c StoredColumn) Unique(cfg ...IndexConfig) StoredColumn {
	c.isUnique = true
	if len(cfg) > 0 {
		c.indexed = cfg[0]
	} else {
		c.indexed = defaultIndexConfig
	}
	return c
}

// Index marks the column as indexed without implying uniqueness.
func (c StoredColumn) Index(cfg ...IndexConfig) StoredColumn {
	if len(cfg) > 0 {
		c.indexed = cfg[0]
	} else {
		c.indexed = IndexConfig{ShouldIndex: true}
	}
	return c
}

// Named returns a clone of c carrying a new name.
func (c StoredColumn) Named(name string) StoredColumn {
	c.name = name
	return c
}

// DefaultTo attaches a default-value factory, making the column optional in
// an InsertRecord.
func (c StoredColumn) DefaultTo(factory func() any) StoredColumn {
	c.defaultFn = factory
	return c
}

// Nullable wraps the column's type in coltype.Nullable.
func (c StoredColumn) Nullable() StoredColumn {
	c.typ = coltype.Nullable(c.typ)
	return c
}

// Array wraps the column's type in coltype.Array.
func (c StoredColumn) Array() StoredColumn {
	c.typ = coltype.Array(c.typ)
	return c
}

// ComputedColumn is a column whose value is derived from previously
// declared stored columns and never persisted.
type ComputedColumn struct {
	name      string
	typ       coltype.Type
	isUnique  bool
	indexed   IndexConfig
	inputCols []string
	compute   func(input StoredRecord) (any, error)
}

// NewComputedColumn builds a computed column over the given input column
// names (which must already be declared — enforced by
// TableSchema.WithComputedColumn).
func NewComputedColumn(name string, t coltype.Type, inputCols []string, compute func(StoredRecord) (any, error)) ComputedColumn {
	return ComputedColumn{name: name, typ: t, inputCols: inputCols, compute: compute}
}

func (c ComputedColumn) Name() string        { return c.name }
func (c ComputedColumn) Type() coltype.Type   { return c.typ }
func (c ComputedColumn) IsUnique() bool       { return c.isUnique }
func (c ComputedColumn) Indexed() IndexConfig { return c.indexed }
func (c ComputedColumn) InputColumns() []string {
	out := make([]string, len(c.inputCols))
	copy(out, c.inputCols)
	return out
}

// Compute evaluates the column against a record containing (at least) its
// input columns.
func (c ComputedColumn) Compute(input StoredRecord) (any, error) {
	return c.compute(input)
}

// withUniqueConstraint marks the computed column as a uniqueness constraint
// key, as built by TableSchema.WithUniqueConstraint.
func (c ComputedColumn) withUniqueConstraint() ComputedColumn {
	c.isUnique = true
	c.indexed = IndexConfig{ShouldIndex: true}
	return c
}
