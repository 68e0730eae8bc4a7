package codec

import segjson "github.com/segmentio/encoding/json"

// Segment is a JSON codec backed by github.com/segmentio/encoding/json.
type Segment struct{}

// Marshal encodes the value to JSON.
func (Segment) Marshal(v any) ([]byte, error) { return segjson.Marshal(v) }

// Unmarshal decodes the JSON data into v.
func (Segment) Unmarshal(data []byte, v any) error { return segjson.Unmarshal(data, v) }

// Name returns the unique name of the codec ("segment-json").
func (Segment) Name() string { return "segment-json" }

// Append encodes the value to JSON and appends it to dst.
func (Segment) Append(dst []byte, v any) ([]byte, error) {
	return segjson.Append(dst, v, segjson.EscapeHTML|segjson.SortMapKeys)
}
