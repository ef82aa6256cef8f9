package value

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"sync"
)

// FromJSON decodes a JSON document into a Value tree. Objects keep their
// source key order; numbers without a fraction or exponent decode as Int,
// everything else numeric as Float.
func FromJSON(data []byte) (Value, error) {
	dec := json.NewDecoder(newByteReader(data))
	dec.UseNumber()
	v, err := decodeValue(dec)
	if err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("trailing data after JSON document")
	}
	return v, nil
}

func newByteReader(data []byte) io.Reader {
	return &byteReader{data: data}
}

type byteReader struct {
	data []byte
	pos  int
}

func (r *byteReader) Read(p []byte) (int, error) {
	if r.pos >= len(r.data) {
		return 0, io.EOF
	}
	n := copy(p, r.data[r.pos:])
	r.pos += n
	return n, nil
}

func decodeValue(dec *json.Decoder) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	return decodeToken(dec, tok)
}

func decodeToken(dec *json.Decoder, tok json.Token) (Value, error) {
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return decodeObject(dec)
		case '[':
			return decodeArray(dec)
		default:
			return nil, fmt.Errorf("unexpected delimiter %q", t)
		}
	case json.Number:
		return decodeNumber(t)
	case string:
		return t, nil
	case bool:
		return t, nil
	case nil:
		return TheNull, nil
	default:
		return nil, fmt.Errorf("unsupported JSON token %T", t)
	}
}

func decodeNumber(n json.Number) (Value, error) {
	s := n.String()
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i, nil
	}
	f, err := n.Float64()
	if err != nil {
		return nil, err
	}
	return f, nil
}

func decodeObject(dec *json.Decoder) (Value, error) {
	obj := NewObject()
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("object key is not a string")
		}
		val, err := decodeValue(dec)
		if err != nil {
			return nil, err
		}
		obj.Set(key, val)
	}
	if _, err := dec.Token(); err != nil { // consume closing '}'
		return nil, err
	}
	return obj, nil
}

func decodeArray(dec *json.Decoder) (Value, error) {
	arr := make([]Value, 0)
	for dec.More() {
		val, err := decodeValue(dec)
		if err != nil {
			return nil, err
		}
		arr = append(arr, val)
	}
	if _, err := dec.Token(); err != nil { // consume closing ']'
		return nil, err
	}
	return arr, nil
}

// ToJSON renders v as encoded JSON bytes, preserving object key order. The
// working buffer comes from a process-wide pool, since encoding happens on
// the CLI's output path for every result; the returned slice is always
// a fresh copy, so the caller can keep it after the buffer goes back to the
// pool.
func ToJSON(v Value, indent string) ([]byte, error) {
	buf := acquireJSONBuf()
	defer releaseJSONBuf(buf)
	if err := buf.write(v, indent, ""); err != nil {
		return nil, err
	}
	out := make([]byte, len(buf.b))
	copy(out, buf.b)
	return out, nil
}

type jsonBuf struct{ b []byte }

var jsonBufPool = sync.Pool{New: func() interface{} { return new(jsonBuf) }}

func acquireJSONBuf() *jsonBuf {
	b := jsonBufPool.Get().(*jsonBuf)
	b.b = b.b[:0]
	return b
}

// releaseJSONBuf returns b to the pool unless its backing array has grown
// past a size worth retaining, mirroring the pool's size-capped retention.
func releaseJSONBuf(b *jsonBuf) {
	if cap(b.b) <= 64*1024 {
		jsonBufPool.Put(b)
	}
}

func (j *jsonBuf) write(v Value, indent, prefix string) error {
	switch x := v.(type) {
	case NullValue:
		j.b = append(j.b, "null"...)
	case nil:
		j.b = append(j.b, "null"...)
	case bool:
		if x {
			j.b = append(j.b, "true"...)
		} else {
			j.b = append(j.b, "false"...)
		}
	case int64:
		j.b = append(j.b, strconv.FormatInt(x, 10)...)
	case float64:
		j.b = append(j.b, strconv.FormatFloat(x, 'g', -1, 64)...)
	case string:
		q, err := json.Marshal(x)
		if err != nil {
			return err
		}
		j.b = append(j.b, q...)
	case *Object:
		return j.writeObject(x, indent, prefix)
	case []Value:
		return j.writeArray(x, indent, prefix)
	case *Deferred:
		return fmt.Errorf("cannot encode a deferred value: it was never resolved against an input")
	default:
		return fmt.Errorf("cannot encode value of type %T", x)
	}
	return nil
}

func (j *jsonBuf) writeObject(o *Object, indent, prefix string) error {
	if o.Len() == 0 {
		j.b = append(j.b, "{}"...)
		return nil
	}
	childPrefix := prefix + indent
	j.b = append(j.b, '{')
	for i, k := range o.Keys {
		if i > 0 {
			j.b = append(j.b, ',')
		}
		j.newline(indent, childPrefix)
		key, _ := json.Marshal(k)
		j.b = append(j.b, key...)
		j.b = append(j.b, ':')
		if indent != "" {
			j.b = append(j.b, ' ')
		}
		if err := j.write(o.Values[k], indent, childPrefix); err != nil {
			return err
		}
	}
	j.newline(indent, prefix)
	j.b = append(j.b, '}')
	return nil
}

func (j *jsonBuf) writeArray(a []Value, indent, prefix string) error {
	if len(a) == 0 {
		j.b = append(j.b, "[]"...)
		return nil
	}
	childPrefix := prefix + indent
	j.b = append(j.b, '[')
	for i, e := range a {
		if i > 0 {
			j.b = append(j.b, ',')
		}
		j.newline(indent, childPrefix)
		if err := j.write(e, indent, childPrefix); err != nil {
			return err
		}
	}
	j.newline(indent, prefix)
	j.b = append(j.b, ']')
	return nil
}

// newline emits a line break and prefix when pretty-printing is enabled
// (indent != ""); compact mode emits nothing.
func (j *jsonBuf) newline(indent, prefix string) {
	if indent == "" {
		return
	}
	j.b = append(j.b, '\n')
	j.b = append(j.b, prefix...)
}
