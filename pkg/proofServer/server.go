package proofServer

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/Layr-Labs/allocation-merkle-go/pkg/exporter"
	"github.com/Layr-Labs/allocation-merkle-go/pkg/types"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"go.uber.org/zap"
)

/*
Server answers proof requests for a single exported round.

Endpoints:

	GET /root
	  - Returns the round root and entry count

	GET /proof?address=0x...&amount=123
	  - Returns the entry's index and proof
	  - 404 when the (address, amount) pair is not in the round

	POST /verify
	  - Request: { index, address, amount, proof, root? }
	  - root defaults to the served round's root
	  - Response: { valid }

	GET /health
	  - Liveness probe, never rate limited

All endpoints except /health share a per-client token bucket when a rate limit is configured.
*/
type Server struct {
	artifact   *exporter.Artifact
	root       common.Hash
	byKey      map[string]*exporter.ArtifactEntry
	logger     *zap.Logger
	httpServer *http.Server
	limiter    *clientLimiter
}

// Config holds the listening and limiting settings of the server
type Config struct {
	Port int
	// RateLimit is the per-client requests per second, 0 disables limiting
	RateLimit float64
	Burst     int
}

// NewServer creates a server for artifact. The artifact is indexed once and never modified.
func NewServer(artifact *exporter.Artifact, cfg *Config, logger *zap.Logger) (*Server, error) {
	if artifact == nil || len(artifact.Entries) == 0 {
		return nil, exporter.ErrEmptyTree
	}
	if !isHash(artifact.Root) {
		return nil, fmt.Errorf("artifact root %q is not a 32 byte hex value", artifact.Root)
	}

	s := &Server{
		artifact: artifact,
		root:     common.HexToHash(artifact.Root),
		byKey:    make(map[string]*exporter.ArtifactEntry, len(artifact.Entries)),
		logger:   logger,
	}

	for i := range artifact.Entries {
		e := &artifact.Entries[i]
		entry, err := e.Entry()
		if err != nil {
			return nil, fmt.Errorf("artifact record %d: %w", i, err)
		}
		key := entry.Allocation().Key()
		if _, ok := s.byKey[key]; ok {
			return nil, fmt.Errorf("%w: artifact record %d repeats (%s, %s)", types.ErrInvalidEntry, i, e.Address, e.Amount)
		}
		s.byKey[key] = e
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/root", s.handleRoot)
	mux.HandleFunc("/proof", s.handleProof)
	mux.HandleFunc("/verify", s.handleVerify)

	var handler http.Handler = mux
	if cfg.RateLimit > 0 {
		s.limiter = newClientLimiter(cfg.RateLimit, cfg.Burst)
		handler = s.limiter.middleware(mux)
	}

	// Health bypasses the limiter
	root := http.NewServeMux()
	root.HandleFunc("/health", s.handleHealth)
	root.Handle("/", handler)

	s.httpServer = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           root,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return s, nil
}

// Start starts the HTTP server
func (s *Server) Start() error {
	go func() {
		s.logger.Sugar().Infow("Starting proof server", "port", s.httpServer.Addr, "root", s.artifact.Root, "entries", len(s.artifact.Entries))
		if err := s.httpServer.ListenAndServe(); err != http.ErrServerClosed {
			s.logger.Sugar().Errorw("HTTP server error", "error", err)
		}
	}()
	return nil
}

// Shutdown gracefully stops the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// Stop stops the HTTP server
func (s *Server) Stop() error {
	return s.httpServer.Close()
}

// GetHandler returns the HTTP handler (for testing)
func (s *Server) GetHandler() http.Handler {
	return s.httpServer.Handler
}

func isHash(s string) bool {
	b, err := hexutil.Decode(s)
	return err == nil && len(b) == common.HashLength
}
