// Package recordcodec implements a binary record serializer assembled from
// the codecs of a table schema's stored columns, in declaration order.
package recordcodec

import (
	"encoding/binary"
	"fmt"

	"github.com/pcardune/pauldb/dbschema"
)

// TableCodec encodes/decodes StoredRecords for one table schema's stored
// columns, in declaration order.
type TableCodec struct {
	columns []dbschema.StoredColumn
}

// ForTable builds a TableCodec for t. It returns ok=false if any stored
// column's type carries no Codec, since such a table has no uniform binary
// layout to encode.
func ForTable(t *dbschema.TableSchema) (codec *TableCodec, ok bool) {
	cols := t.StoredColumns()
	for _, col := range cols {
		if col.Type().Codec == nil {
			return nil, false
		}
	}
	return &TableCodec{columns: cols}, true
}

// Encode serializes rec as: a 4-byte big-endian payload length (excluding
// these 4 bytes) followed by each column's bytes in declared order.
func (tc *TableCodec) Encode(rec dbschema.StoredRecord) ([]byte, error) {
	var payload []byte
	for _, col := range tc.columns {
		v, ok := rec[col.Name()]
		if !ok {
			return nil, fmt.Errorf("recordcodec: record is missing column %q", col.Name())
		}
		var err error
		payload, err = col.Type().Codec.Encode(payload, v)
		if err != nil {
			return nil, fmt.Errorf("recordcodec: encoding column %q: %w", col.Name(), err)
		}
	}

	out := make([]byte, 0, 4+len(payload))
	out = binary.BigEndian.AppendUint32(out, uint32(len(payload)))
	out = append(out, payload...)
	return out, nil
}

// Decode reads one record from the front of buf, returning the record and
// the total number of bytes consumed (4 + payload length).
func (tc *TableCodec) Decode(buf []byte) (dbschema.StoredRecord, int, error) {
	if len(buf) < 4 {
		return nil, 0, fmt.Errorf("recordcodec: need 4-byte length prefix, have %d bytes", len(buf))
	}
	length := binary.BigEndian.Uint32(buf)
	if uint32(len(buf)-4) < length {
		return nil, 0, fmt.Errorf("recordcodec: payload length %d exceeds available %d bytes", length, len(buf)-4)
	}
	payload := buf[4 : 4+length]

	rec := make(dbschema.StoredRecord, len(tc.columns))
	offset := 0
	for _, col := range tc.columns {
		v, n, err := col.Type().Codec.Decode(payload[offset:])
		if err != nil {
			return nil, 0, fmt.Errorf("recordcodec: decoding column %q: %w", col.Name(), err)
		}
		rec[col.Name()] = v
		offset += n
	}
	return rec, 4 + int(length), nil
}

// Size returns the number of bytes Encode would produce for rec. It encodes
// and measures rather than summing per-column sizes, since variable-width
// codecs (string, array) don't expose a cheaper way to predict their size.
func (tc *TableCodec) Size(rec dbschema.StoredRecord) (int, error) {
	buf, err := tc.Encode(rec)
	if err != nil {
		return 0, err
	}
	return len(buf), nil
}
