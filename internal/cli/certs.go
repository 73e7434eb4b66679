package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/urjitutjit/creditapprovalsystem/pkg/tlsutil"
)

func certsCmd() *cobra.Command {
	var hosts []string
	var outDir string
	var validFor time.Duration

	c := &cobra.Command{
		Use:   "certs",
		Short: "Generate a development CA and server certificate for gRPC TLS",
		RunE: func(cmd *cobra.Command, _ []string) error {
			files, err := tlsutil.GenerateDevCertificates(hosts, outDir, validFor)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "GRPC_TLS_CERT_FILE=%s\n", files.CertFile)
			fmt.Fprintf(w, "GRPC_TLS_KEY_FILE=%s\n", files.KeyFile)
			fmt.Fprintf(w, "# clients trust %s\n", files.CAFile)
			return nil
		},
	}

	c.Flags().StringSliceVar(&hosts, "host", []string{"localhost", "127.0.0.1"}, "DNS name or IP the certificate covers (repeatable)")
	c.Flags().StringVar(&outDir, "out", "certs", "Output directory")
	c.Flags().DurationVar(&validFor, "valid-for", 30*24*time.Hour, "Certificate lifetime")
	return c
}
