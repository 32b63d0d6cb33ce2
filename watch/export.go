package watch

import (
	"io"

	"github.com/vmihailenco/msgpack/v5"
)

// WriteRecordsMsgpack writes records in MessagePack format as an array
// stream, for downstream tooling.
func WriteRecordsMsgpack(w io.Writer, recs []Record) error {
	enc := msgpack.NewEncoder(w)
	if err := enc.EncodeArrayLen(len(recs)); err != nil {
		return err
	}
	for i := range recs {
		if err := enc.Encode(&recs[i]); err != nil {
			return err
		}
	}
	return nil
}

// ReadRecordsMsgpack reads an array stream of records, invoking fn for
// each one.
func ReadRecordsMsgpack(r io.Reader, fn func(Record) error) error {
	dec := msgpack.NewDecoder(r)
	n, err := dec.DecodeArrayLen()
	if err != nil {
		return err
	}
	for i := 0; i < n; i++ {
		var rec Record
		if err := dec.Decode(&rec); err != nil {
			return err
		}
		if err := fn(rec); err != nil {
			return err
		}
	}
	return nil
}
