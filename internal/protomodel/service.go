package protomodel

// Service is a named collection of RPC methods plus options. Services carry
// a ProtoType identity like types do, but are not part of the Type variant
// set: they never nest and are tracked separately per file.
type Service struct {
	Name    ProtoType
	Methods []Method
	Options []Option
}

// Identity returns the fully-qualified name of the service.
func (s *Service) Identity() ProtoType { return s.Name }

// Method is a single RPC method.
type Method struct {
	// Name is the method name.
	Name string

	// RequestType is the request type reference as written in source.
	RequestType string

	// ResponseType is the response type reference as written in source.
	ResponseType string

	// ClientStreaming marks stream requests.
	ClientStreaming bool

	// ServerStreaming marks stream responses.
	ServerStreaming bool
}
