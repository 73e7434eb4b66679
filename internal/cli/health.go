package cli

import (
	"context"
	"fmt"
	"io"
	"net"
	"time"

	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/urjitutjit/creditapprovalsystem/pkg/tlsutil"
)

type healthOptions struct {
	addr       string
	caFile     string
	serverName string
	service    string
	timeout    time.Duration
	useTLS     bool
}

func healthCmd() *cobra.Command {
	var opts healthOptions

	c := &cobra.Command{
		Use:   "health",
		Short: "Query the gRPC health service of a running creditd",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runHealth(cmd.Context(), cmd.OutOrStdout(), opts)
		},
	}

	c.Flags().StringVar(&opts.addr, "addr", "localhost:9090", "creditd gRPC address")
	c.Flags().BoolVar(&opts.useTLS, "tls", false, "Connect over TLS")
	c.Flags().StringVar(&opts.caFile, "ca", "", "CA certificate to trust (implies --tls; default system roots)")
	c.Flags().StringVar(&opts.serverName, "server-name", "", "TLS server name (default: host part of --addr)")
	c.Flags().StringVar(&opts.service, "service", "", "Health service name (empty checks the whole server)")
	c.Flags().DurationVar(&opts.timeout, "timeout", 5*time.Second, "Request timeout")
	return c
}

func runHealth(ctx context.Context, w io.Writer, opts healthOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}

	creds := insecure.NewCredentials()
	if opts.useTLS || opts.caFile != "" {
		serverName := opts.serverName
		if serverName == "" {
			host, _, err := net.SplitHostPort(opts.addr)
			if err != nil {
				return fmt.Errorf("parse --addr: %w", err)
			}
			serverName = host
		}
		var err error
		if creds, err = tlsutil.ClientCredentials(opts.caFile, serverName); err != nil {
			return err
		}
	}

	status, err := checkHealth(ctx, opts.addr, creds, opts.service, opts.timeout)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "%s: %s\n", opts.addr, status)
	if status != healthpb.HealthCheckResponse_SERVING {
		return fmt.Errorf("%s is %s", opts.addr, status)
	}
	return nil
}

func checkHealth(
	ctx context.Context,
	addr string,
	creds credentials.TransportCredentials,
	service string,
	timeout time.Duration,
) (healthpb.HealthCheckResponse_ServingStatus, error) {
	conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(creds))
	if err != nil {
		return healthpb.HealthCheckResponse_UNKNOWN, fmt.Errorf("dial %s: %w", addr, err)
	}
	defer conn.Close()

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	resp, err := healthpb.NewHealthClient(conn).Check(ctx, &healthpb.HealthCheckRequest{Service: service})
	if err != nil {
		return healthpb.HealthCheckResponse_UNKNOWN, fmt.Errorf("health check %s: %w", addr, err)
	}
	return resp.GetStatus(), nil
}
