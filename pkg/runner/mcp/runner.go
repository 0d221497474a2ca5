package mcp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/server"

	"tableflip.dev/calgrid/pkg/logging"
	"tableflip.dev/calgrid/pkg/store"
)

// Transport selects the mechanism used to expose the MCP server.
type Transport string

const (
	// TransportHTTP serves MCP via the streamable HTTP transport.
	TransportHTTP Transport = "http"
	// TransportStdio serves MCP over stdio.
	TransportStdio Transport = "stdio"
)

// Runner serves the calendar over MCP until its context is cancelled.
type Runner struct {
	Persistence store.Persistence
	WeekStart   time.Weekday
	Name        string
	Version     string
	Log         *slog.Logger

	Transport Transport
	// Addr is the host:port the HTTP transport listens on.
	Addr string
	// Path is the HTTP endpoint path, "/mcp" when empty.
	Path    string
	TLSCert string
	TLSKey  string
	// OnListening receives the endpoint URL once the HTTP listener is bound.
	OnListening func(url string)
}

// Do starts the server on the configured transport.
func (r Runner) Do(ctx context.Context) error {
	if r.Persistence == nil {
		return errors.New("mcp: persistence is required")
	}
	name := r.Name
	if name == "" {
		name = "calgrid"
	}
	version := r.Version
	if version == "" {
		version = "dev"
	}
	svc := NewService(r.Persistence, r.WeekStart)
	svc.App.Log = r.logger()
	srv := NewServer(name+" MCP", version, svc)

	switch r.Transport {
	case "", TransportHTTP:
		return r.serveHTTP(ctx, srv)
	case TransportStdio:
		r.logger().Debug("serving mcp on stdio")
		return server.ServeStdio(srv)
	default:
		return fmt.Errorf("mcp: unknown transport %q", r.Transport)
	}
}

func (r Runner) logger() *slog.Logger {
	if r.Log == nil {
		return logging.Discard()
	}
	return r.Log
}

// NewServer builds an MCP server exposing the month grid and day notes of svc.
func NewServer(name, version string, svc *Service) *server.MCPServer {
	srv := server.NewMCPServer(
		name,
		version,
		server.WithResourceCapabilities(false, false),
		server.WithToolCapabilities(false),
		server.WithInstructions("Read month calendar grids and manage the notes attached to calendar days."),
		server.WithResourceRecovery(),
		server.WithRecovery(),
	)
	registerResources(srv, svc)
	registerTools(srv, svc)
	return srv
}

func (r Runner) serveHTTP(ctx context.Context, srv *server.MCPServer) error {
	useTLS := r.TLSCert != "" || r.TLSKey != ""
	if useTLS && (r.TLSCert == "" || r.TLSKey == "") {
		return errors.New("mcp: tls needs both a certificate and a key")
	}

	path := EndpointPath(r.Path)
	addr := r.Addr
	if addr == "" {
		addr = "127.0.0.1:8080"
	}
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		return fmt.Errorf("mcp: listen address %q: %w", addr, err)
	}

	mux := http.NewServeMux()
	mux.Handle(path, server.NewStreamableHTTPServer(srv))
	httpSrv := &http.Server{Handler: mux, ReadHeaderTimeout: 10 * time.Second}

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	url := ListenURL(ln.Addr(), host, path, useTLS)
	r.logger().Info("mcp server listening", "url", url)
	if r.OnListening != nil {
		r.OnListening(url)
	}

	stop := context.AfterFunc(ctx, func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = httpSrv.Shutdown(shutdownCtx)
	})
	defer stop()

	if useTLS {
		err = httpSrv.ServeTLS(ln, r.TLSCert, r.TLSKey)
	} else {
		err = httpSrv.Serve(ln)
	}
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// EndpointPath normalizes an HTTP endpoint path, defaulting to "/mcp".
func EndpointPath(p string) string {
	p = strings.TrimSpace(p)
	if p == "" {
		return "/mcp"
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return p
}

// ListenURL is the URL clients should use for a listener bound to a. host is
// the requested host; unspecified hosts are replaced by the bound IP, or
// loopback when that is unspecified too.
func ListenURL(a net.Addr, host, path string, useTLS bool) string {
	scheme := "http"
	if useTLS {
		scheme = "https"
	}
	tcp, ok := a.(*net.TCPAddr)
	if !ok {
		return scheme + "://" + a.String() + path
	}
	if host == "" || host == "0.0.0.0" || host == "::" {
		host = "127.0.0.1"
		if tcp.IP != nil && !tcp.IP.IsUnspecified() {
			host = tcp.IP.String()
		}
	}
	return scheme + "://" + net.JoinHostPort(host, strconv.Itoa(tcp.Port)) + path
}
