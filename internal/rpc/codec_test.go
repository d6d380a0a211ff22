package rpc

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"connectrpc.com/connect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type echoRequest struct {
	Text string `json:"text"`
}

type echoResponse struct {
	Text   string `json:"text"`
	Length int    `json:"length"`
}

func TestProcedure(t *testing.T) {
	assert.Equal(t, "/travel.v1.TripService/CreateTrip", Procedure("TripService", "CreateTrip"))
}

func TestJSONCodec_EmptyPayload(t *testing.T) {
	var req echoRequest
	require.NoError(t, JSONCodec{}.Unmarshal(nil, &req))
	assert.Empty(t, req.Text)
}

func TestMountAndClient(t *testing.T) {
	mux := http.NewServeMux()
	procedure := Procedure("EchoService", "Echo")
	Mount(mux, procedure, func(ctx context.Context, req *connect.Request[echoRequest]) (*connect.Response[echoResponse], error) {
		if req.Msg.Text == "" {
			return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("text is required"))
		}
		return connect.NewResponse(&echoResponse{Text: req.Msg.Text, Length: len(req.Msg.Text)}), nil
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client := NewClient[echoRequest, echoResponse](http.DefaultClient, server.URL, procedure)

	resp, err := client.CallUnary(context.Background(), connect.NewRequest(&echoRequest{Text: "hello"}))
	require.NoError(t, err)
	assert.Equal(t, "hello", resp.Msg.Text)
	assert.Equal(t, 5, resp.Msg.Length)

	_, err = client.CallUnary(context.Background(), connect.NewRequest(&echoRequest{}))
	require.Error(t, err)
	assert.Equal(t, connect.CodeInvalidArgument, connect.CodeOf(err))
}
