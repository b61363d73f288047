package plan

import (
	"github.com/pcardune/pauldb/dbschema"
	"github.com/pcardune/pauldb/rowctx"
	"github.com/pcardune/pauldb/storage"
)

// TableScan reads one heap table in insertion order, emitting contexts keyed
// by its alias (the table name, unless an alias overrides it).
type TableScan struct {
	tableName string
	alias     string
}

// NewTableScan builds a scan over tableName, keyed in row contexts under
// alias (which defaults to tableName when empty).
func NewTableScan(tableName, alias string) *TableScan {
	if alias == "" {
		alias = tableName
	}
	return &TableScan{tableName: tableName, alias: alias}
}

func (n *TableScan) Alias() string { return n.alias }

func (n *TableScan) Execute(db storage.DbFile) Stream {
	return func(yield func(rowctx.Context, error) bool) {
		table, err := db.GetTable(n.tableName)
		if err != nil {
			yieldErr(yield, err)
			return
		}
		for rec, err := range table.Iterate() {
			if err != nil {
				if !yield(nil, err) {
					return
				}
				continue
			}
			row := make(rowctx.Row, len(rec))
			for k, v := range rec {
				row[k] = v
			}
			if !yield(rowctx.Context{n.alias: row}, nil) {
				return
			}
		}
	}
}

func (n *TableScan) Schema(db storage.DbFile) (*dbschema.TableSchema, error) {
	table, err := db.GetTable(n.tableName)
	if err != nil {
		return nil, err
	}
	return table.Schema(), nil
}
