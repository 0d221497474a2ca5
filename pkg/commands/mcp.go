package commands

import (
	"fmt"
	"net"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/calgrid/pkg/runner/mcp"
)

type mcpOptions struct {
	transport string
	host      string
	port      int
	path      string
	tlsCert   string
	tlsKey    string
}

func (o *mcpOptions) runner() (mcp.Runner, error) {
	r := mcp.Runner{
		Name:    "calgrid",
		Version: version,
		Path:    o.path,
		TLSCert: strings.TrimSpace(o.tlsCert),
		TLSKey:  strings.TrimSpace(o.tlsKey),
	}
	switch t := mcp.Transport(strings.ToLower(strings.TrimSpace(o.transport))); t {
	case "", mcp.TransportHTTP:
		if o.port < 0 || o.port > 65535 {
			return r, fmt.Errorf("invalid http-port %d", o.port)
		}
		host := strings.TrimSpace(o.host)
		if host == "" {
			host = "127.0.0.1"
		}
		r.Transport = mcp.TransportHTTP
		r.Addr = net.JoinHostPort(host, strconv.Itoa(o.port))
	case mcp.TransportStdio:
		r.Transport = t
	default:
		return r, fmt.Errorf("unsupported transport %q (expected http or stdio)", o.transport)
	}
	return r, nil
}

func addMCP(topLevel *cobra.Command) {
	o := &mcpOptions{}

	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "start the Model Context Protocol server",
		Long: `Launch an MCP server that exposes month grids and day notes through the
Model Context Protocol.`,
		Example: `
calgrid mcp --http-port 0
calgrid mcp --transport stdio
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, err := o.runner()
			if err != nil {
				return err
			}
			e, err := loadEnv("mcp")
			if err != nil {
				return err
			}
			runner.Persistence = e.persistence
			runner.WeekStart = e.config.WeekStart()
			runner.Log = e.log
			runner.OnListening = func(url string) {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "MCP HTTP server listening on %s\n", url)
			}
			return runner.Do(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&o.transport, "transport", string(mcp.TransportHTTP), "transport to use: http or stdio")
	cmd.Flags().StringVar(&o.host, "http-host", "127.0.0.1", "host/interface for HTTP transport")
	cmd.Flags().IntVar(&o.port, "http-port", 8080, "port for HTTP transport (use 0 for random)")
	cmd.Flags().StringVar(&o.path, "http-path", "/mcp", "HTTP endpoint path")
	cmd.Flags().StringVar(&o.tlsCert, "http-tls-cert", "", "TLS certificate file for HTTPS")
	cmd.Flags().StringVar(&o.tlsKey, "http-tls-key", "", "TLS private key file for HTTPS")

	topLevel.AddCommand(cmd)
}
