package pb

import (
	"encoding/json"

	"google.golang.org/grpc/encoding"
)

// jsonCodec carries messages as JSON instead of the protobuf wire
// format, since this repo hand-writes its pb types rather than running
// protoc. Registered under the name "json"; clients opt in with
// grpc.CallContentSubtype("json") or grpc.ForceCodec.
type jsonCodec struct{}

func (jsonCodec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (jsonCodec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

func (jsonCodec) Name() string {
	return "json"
}

func init() {
	encoding.RegisterCodec(jsonCodec{})
}
