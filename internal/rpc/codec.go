// Package rpc holds the connect plumbing shared by the services: a JSON codec
// for plain Go message structs and helpers to mount handlers and build clients.
package rpc

import (
	"context"
	"encoding/json"
	"net/http"

	"connectrpc.com/connect"
)

// Package name used to build procedure paths.
const Package = "travel.v1"

// JSONCodec marshals request and response structs with encoding/json. It
// replaces connect's default "json" codec, which only accepts proto messages.
type JSONCodec struct{}

var _ connect.Codec = JSONCodec{}

func (JSONCodec) Name() string { return "json" }

func (JSONCodec) Marshal(msg any) ([]byte, error) {
	return json.Marshal(msg)
}

func (JSONCodec) Unmarshal(data []byte, msg any) error {
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, msg)
}

// Procedure returns the connect procedure path for a method, e.g.
// "/travel.v1.TripService/CreateTrip".
func Procedure(service, method string) string {
	return "/" + Package + "." + service + "/" + method
}

// Mount registers a unary handler for procedure on mux.
func Mount[Req, Res any](
	mux *http.ServeMux,
	procedure string,
	fn func(context.Context, *connect.Request[Req]) (*connect.Response[Res], error),
	opts ...connect.HandlerOption,
) {
	opts = append([]connect.HandlerOption{connect.WithCodec(JSONCodec{})}, opts...)
	mux.Handle(procedure, connect.NewUnaryHandler(procedure, fn, opts...))
}

// NewClient returns a unary client for procedure that speaks the JSON codec.
func NewClient[Req, Res any](httpClient connect.HTTPClient, baseURL, procedure string, opts ...connect.ClientOption) *connect.Client[Req, Res] {
	opts = append([]connect.ClientOption{connect.WithCodec(JSONCodec{})}, opts...)
	return connect.NewClient[Req, Res](httpClient, baseURL+procedure, opts...)
}
