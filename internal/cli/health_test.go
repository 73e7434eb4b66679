package cli

import (
	"bytes"
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/urjitutjit/creditapprovalsystem/pkg/tlsutil"
)

func startHealthServer(t *testing.T, creds credentials.TransportCredentials) (string, *health.Server) {
	t.Helper()
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	var opts []grpc.ServerOption
	if creds != nil {
		opts = append(opts, grpc.Creds(creds))
	}
	srv := grpc.NewServer(opts...)
	hs := health.NewServer()
	healthpb.RegisterHealthServer(srv, hs)
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)
	return lis.Addr().String(), hs
}

func TestHealthCommand_TLS(t *testing.T) {
	files, err := tlsutil.GenerateDevCertificates([]string{"localhost", "127.0.0.1"}, t.TempDir(), time.Hour)
	require.NoError(t, err)
	serverCreds, err := tlsutil.ServerCredentials(files.CertFile, files.KeyFile, "")
	require.NoError(t, err)
	addr, _ := startHealthServer(t, serverCreds)

	var out bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"health", "--addr", addr, "--ca", files.CAFile})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, addr+": SERVING\n", out.String())
}

func TestRunHealth_NotServing(t *testing.T) {
	addr, hs := startHealthServer(t, nil)
	hs.SetServingStatus("credit.v1.CreditService", healthpb.HealthCheckResponse_NOT_SERVING)

	var out bytes.Buffer
	err := runHealth(context.Background(), &out, healthOptions{
		addr:    addr,
		service: "credit.v1.CreditService",
		timeout: 5 * time.Second,
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "NOT_SERVING")
	assert.Contains(t, out.String(), "NOT_SERVING")
}

func TestRunHealth_UntrustedServer(t *testing.T) {
	dir := t.TempDir()
	files, err := tlsutil.GenerateDevCertificates([]string{"127.0.0.1"}, dir, time.Hour)
	require.NoError(t, err)
	serverCreds, err := tlsutil.ServerCredentials(files.CertFile, files.KeyFile, "")
	require.NoError(t, err)
	addr, _ := startHealthServer(t, serverCreds)

	other, err := tlsutil.GenerateDevCertificates([]string{"127.0.0.1"}, t.TempDir(), time.Hour)
	require.NoError(t, err)

	err = runHealth(context.Background(), &bytes.Buffer{}, healthOptions{
		addr:    addr,
		caFile:  other.CAFile,
		timeout: 2 * time.Second,
	})
	assert.Error(t, err)
}
