package llmclient

import "encoding/json"

// jsonCodecName is registered with grpc's encoding package and selected per
// call via grpc.CallContentSubtype, in place of a generated protobuf codec.
const jsonCodecName = "json"

// jsonCodec implements encoding.Codec by marshaling messages as JSON. The
// backend service is expected to speak the same wire shape rather than a
// .proto-generated one.
type jsonCodec struct{}

func (jsonCodec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (jsonCodec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

func (jsonCodec) Name() string {
	return jsonCodecName
}
