package coltype

import (
	"encoding/binary"
	"fmt"
	"math"
)

// fixedCodec implements Codec for any value whose wire form is a constant
// number of bytes, via a pair of pure encode/decode functions.
type fixedCodec struct {
	size   int
	encode func(buf []byte, v any) ([]byte, error)
	decode func(buf []byte) (any, error)
}

func (c fixedCodec) Encode(buf []byte, v any) ([]byte, error) {
	return c.encode(buf, v)
}

func (c fixedCodec) Decode(buf []byte) (any, int, error) {
	if len(buf) < c.size {
		return nil, 0, fmt.Errorf("coltype: need %d bytes, have %d", c.size, len(buf))
	}
	v, err := c.decode(buf[:c.size])
	return v, c.size, err
}

var uint16Codec = fixedCodec{
	size: 2,
	encode: func(buf []byte, v any) ([]byte, error) {
		n, ok := v.(uint16)
		if !ok {
			return nil, &ErrInvalidValue{TypeName: "uint16", Value: v}
		}
		return binary.BigEndian.AppendUint16(buf, n), nil
	},
	decode: func(buf []byte) (any, error) {
		return binary.BigEndian.Uint16(buf), nil
	},
}

var uint32Codec = fixedCodec{
	size: 4,
	encode: func(buf []byte, v any) ([]byte, error) {
		n, ok := v.(uint32)
		if !ok {
			return nil, &ErrInvalidValue{TypeName: "uint32", Value: v}
		}
		return binary.BigEndian.AppendUint32(buf, n), nil
	},
	decode: func(buf []byte) (any, error) {
		return binary.BigEndian.Uint32(buf), nil
	},
}

var int16Codec = fixedCodec{
	size: 2,
	encode: func(buf []byte, v any) ([]byte, error) {
		n, ok := v.(int16)
		if !ok {
			return nil, &ErrInvalidValue{TypeName: "int16", Value: v}
		}
		return binary.BigEndian.AppendUint16(buf, uint16(n)), nil
	},
	decode: func(buf []byte) (any, error) {
		return int16(binary.BigEndian.Uint16(buf)), nil
	},
}

var int32Codec = fixedCodec{
	size: 4,
	encode: func(buf []byte, v any) ([]byte, error) {
		n, ok := v.(int32)
		if !ok {
			return nil, &ErrInvalidValue{TypeName: "int32", Value: v}
		}
		return binary.BigEndian.AppendUint32(buf, uint32(n)), nil
	},
	decode: func(buf []byte) (any, error) {
		return int32(binary.BigEndian.Uint32(buf)), nil
	},
}

var boolCodec = fixedCodec{
	size: 1,
	encode: func(buf []byte, v any) ([]byte, error) {
		b, ok := v.(bool)
		if !ok {
			return nil, &ErrInvalidValue{TypeName: "boolean", Value: v}
		}
		if b {
			return append(buf, 1), nil
		}
		return append(buf, 0), nil
	},
	decode: func(buf []byte) (any, error) {
		return buf[0] != 0, nil
	},
}

var floatCodec = fixedCodec{
	size: 8,
	encode: func(buf []byte, v any) ([]byte, error) {
		f, ok := v.(float64)
		if !ok {
			return nil, &ErrInvalidValue{TypeName: "float", Value: v}
		}
		return binary.BigEndian.AppendUint64(buf, math.Float64bits(f)), nil
	},
	decode: func(buf []byte) (any, error) {
		return math.Float64frombits(binary.BigEndian.Uint64(buf)), nil
	},
}

// epochMillisCodec implements an 8-byte milliseconds-since-epoch
// signed-integer codec shared by `date` and `timestamp`.
var epochMillisCodec = fixedCodec{
	size: 8,
	encode: func(buf []byte, v any) ([]byte, error) {
		ms, ok := v.(int64)
		if !ok {
			return nil, &ErrInvalidValue{TypeName: "timestamp", Value: v}
		}
		return binary.BigEndian.AppendUint64(buf, uint64(ms)), nil
	},
	decode: func(buf []byte) (any, error) {
		return int64(binary.BigEndian.Uint64(buf)), nil
	},
}

// stringCodec implements a 4-byte big-endian length prefix followed
// by UTF-8 bytes.
type stringCodecT struct{}

func (stringCodecT) Encode(buf []byte, v any) ([]byte, error) {
	s, ok := v.(string)
	if !ok {
		return nil, &ErrInvalidValue{TypeName: "string", Value: v}
	}
	buf = binary.BigEndian.AppendUint32(buf, uint32(len(s)))
	return append(buf, s...), nil
}

func (stringCodecT) Decode(buf []byte) (any, int, error) {
	if len(buf) < 4 {
		return nil, 0, fmt.Errorf("coltype: string length prefix needs 4 bytes, have %d", len(buf))
	}
	n := int(binary.BigEndian.Uint32(buf))
	if len(buf) < 4+n {
		return nil, 0, fmt.Errorf("coltype: string needs %d bytes, have %d", n, len(buf)-4)
	}
	return string(buf[4 : 4+n]), 4 + n, nil
}

var stringCodec = stringCodecT{}

// nullableCodec implements a 1-byte tag (0=null, 1=present) wrapper.
type nullableCodec struct {
	inner Codec
}

func (c nullableCodec) Encode(buf []byte, v any) ([]byte, error) {
	if v == nil {
		return append(buf, 0), nil
	}
	buf = append(buf, 1)
	return c.inner.Encode(buf, v)
}

func (c nullableCodec) Decode(buf []byte) (any, int, error) {
	if len(buf) < 1 {
		return nil, 0, fmt.Errorf("coltype: nullable tag needs 1 byte, have 0")
	}
	if buf[0] == 0 {
		return nil, 1, nil
	}
	v, n, err := c.inner.Decode(buf[1:])
	return v, n + 1, err
}

// arrayCodec implements a 4-byte count followed by element-codec
// output for each element.
type arrayCodec struct {
	elem Codec
}

func (c arrayCodec) Encode(buf []byte, v any) ([]byte, error) {
	elems, ok := v.([]any)
	if !ok {
		return nil, &ErrInvalidValue{TypeName: "array", Value: v}
	}
	buf = binary.BigEndian.AppendUint32(buf, uint32(len(elems)))
	for _, e := range elems {
		var err error
		buf, err = c.elem.Encode(buf, e)
		if err != nil {
			return nil, err
		}
	}
	return buf, nil
}

func (c arrayCodec) Decode(buf []byte) (any, int, error) {
	if len(buf) < 4 {
		return nil, 0, fmt.Errorf("coltype: array count needs 4 bytes, have %d", len(buf))
	}
	count := int(binary.BigEndian.Uint32(buf))
	offset := 4
	elems := make([]any, 0, count)
	for i := 0; i < count; i++ {
		v, n, err := c.elem.Decode(buf[offset:])
		if err != nil {
			return nil, 0, err
		}
		elems = append(elems, v)
		offset += n
	}
	return elems, offset, nil
}
