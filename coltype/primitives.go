package coltype

// Primitive column types. Serial shares Uint32's codec since both are
// wire-compatible uint32 values; only the default-value contract differs.
var (
	String = New("string", func(string) bool { return true }, stringCodec)

	Boolean = New("boolean", func(bool) bool { return true }, boolCodec)

	Uint16 = New("uint16", func(uint16) bool { return true }, uint16Codec)
	Uint32 = New("uint32", func(uint32) bool { return true }, uint32Codec)
	Int16  = New("int16", func(int16) bool { return true }, int16Codec)
	Int32  = New("int32", func(int32) bool { return true }, int32Codec)

	Float = New("float", func(float64) bool { return true }, floatCodec)

	// Date and Timestamp both carry milliseconds-since-epoch as an int64;
	// the distinction between the two is purely nominal at this layer.
	Date      = New("date", func(int64) bool { return true }, epochMillisCodec)
	Timestamp = New("timestamp", func(int64) bool { return true }, epochMillisCodec)

	// Serial is an auto-increment uint32. isValid accepts any uint32; the
	// monotonic-id contract is supplied by the storage layer that owns the
	// column's default factory.
	Serial = New("serial", func(uint32) bool { return true }, uint32Codec)

	// Never is the nominal type of a computed column's output: it is never
	// persisted and therefore carries no codec.
	Never = Type{Name: "never", IsValid: func(any) bool { return false }, Codec: nil}
)
