package api

import "encoding/json"

// Codec marshals messages as plain JSON. It registers under the name "json",
// replacing Connect's default protobuf-JSON codec, so both handlers and
// clients must be built with connect.WithCodec(api.Codec{}).
type Codec struct{}

// Name implements connect.Codec.
func (Codec) Name() string { return "json" }

// Marshal implements connect.Codec.
func (Codec) Marshal(v any) ([]byte, error) { return json.Marshal(v) }

// Unmarshal implements connect.Codec.
func (Codec) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }
