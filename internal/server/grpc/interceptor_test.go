package grpc

import (
	"context"
	"errors"
	"testing"

	"github.com/dmitrijs2005/studynotes/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
)

func TestLoggingInterceptor_PassesThrough(t *testing.T) {
	s := NewHealthServer("", logging.Nop())
	info := &grpc.UnaryServerInfo{FullMethod: "/grpc.health.v1.Health/Check"}

	called := false
	resp, err := s.loggingInterceptor(context.Background(), "req", info, func(ctx context.Context, req interface{}) (interface{}, error) {
		called = true
		assert.Equal(t, "req", req)
		return "ok", nil
	})
	require.NoError(t, err)
	assert.True(t, called)
	assert.Equal(t, "ok", resp)
}

func TestLoggingInterceptor_ReturnsHandlerError(t *testing.T) {
	s := NewHealthServer("", logging.Nop())
	boom := errors.New("boom")

	_, err := s.loggingInterceptor(context.Background(), nil, &grpc.UnaryServerInfo{FullMethod: "/x/Y"},
		func(context.Context, interface{}) (interface{}, error) { return nil, boom })
	require.ErrorIs(t, err, boom)
}
