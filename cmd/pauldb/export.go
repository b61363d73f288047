package main

import (
	"log"

	"github.com/pcardune/pauldb"
)

// exportSchemas renders every table currently in db's storage back to its
// CREATE TABLE text, the way mysqldef/psqldef's --export dumps the live
// schema instead of applying a desired one.
func exportSchemas(db *pauldb.DB) []string {
	schemas, err := db.File().GetSchemas()
	if err != nil {
		log.Fatal(err)
	}
	out := make([]string, 0, len(schemas))
	for _, schema := range schemas {
		ddl, err := schema.Describe(db.Registry())
		if err != nil {
			log.Fatal(err)
		}
		out = append(out, ddl)
	}
	return out
}
