// Package plan implements the relational operator tree that executes a
// translated query against a storage.DbFile: TableScan, Filter, Join,
// OrderBy, Limit, Select, and Aggregate, each consuming and producing a lazy
// stream of keyed row contexts.
package plan

import (
	"iter"

	"github.com/pcardune/pauldb/dbschema"
	"github.com/pcardune/pauldb/rowctx"
	"github.com/pcardune/pauldb/storage"
)

// Stream is the lazy, single-pass, non-restartable sequence of row contexts
// that flows between plan nodes. A non-nil error is yielded as an element of
// the stream; the consumer decides whether to keep pulling after one. Most
// Node implementations in this package forward a child's error and keep
// going if the consumer keeps pulling; Aggregate, and OrderBy on a sort-key
// evaluation error, end the stream after yielding it.
type Stream = iter.Seq2[rowctx.Context, error]

// Node is the common interface every plan operator satisfies.
type Node interface {
	// Execute returns a lazy stream of row contexts against db.
	Execute(db storage.DbFile) Stream
	// Schema returns the node's output schema, querying db for any schema
	// this node doesn't already know statically.
	Schema(db storage.DbFile) (*dbschema.TableSchema, error)
}

func yieldErr(yield func(rowctx.Context, error) bool, err error) {
	yield(nil, err)
}
