package dbschema

import (
	"fmt"
	"strings"

	"github.com/pcardune/pauldb/coltype"
)

// Describe renders t as a CREATE TABLE statement, the §4.6 CREATE TABLE
// translation direction run backwards: used by the CLI's --export flag and
// by migration diagnostics. Computed columns are omitted since they are
// never persisted and have no SQL type in registry.
func (t *TableSchema) Describe(registry *coltype.Registry) (string, error) {
	var cols []string
	for _, col := range t.storedColumns {
		sqlType, err := registry.ToSQL(col.Type())
		if err != nil {
			return "", err
		}
		cols = append(cols, fmt.Sprintf("%s %s", col.Name(), sqlType))
	}
	return fmt.Sprintf("CREATE TABLE %s (%s)", t.name, strings.Join(cols, ", ")), nil
}
