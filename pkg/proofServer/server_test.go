package proofServer

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/Layr-Labs/allocation-merkle-go/pkg/exporter"
	"github.com/Layr-Labs/allocation-merkle-go/pkg/testutil"
	"github.com/Layr-Labs/allocation-merkle-go/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestServer(t *testing.T, n int, cfg *Config) (*Server, *exporter.Artifact, []*types.Allocation) {
	t.Helper()
	tree, allocs := testutil.NewTestAllocationTree(t, n)
	artifact, err := tree.Export()
	require.NoError(t, err)

	if cfg == nil {
		cfg = &Config{Port: 0}
	}
	s, err := NewServer(artifact, cfg, zap.NewNop())
	require.NoError(t, err)
	return s, artifact, allocs
}

func doRequest(t *testing.T, h http.Handler, method, target string, body []byte) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func proofURL(address, amount string) string {
	q := url.Values{}
	q.Set("address", address)
	q.Set("amount", amount)
	return "/proof?" + q.Encode()
}

func TestNewServer_Invalid(t *testing.T) {
	_, err := NewServer(nil, &Config{}, zap.NewNop())
	require.ErrorIs(t, err, exporter.ErrEmptyTree)

	_, err = NewServer(&exporter.Artifact{Root: "0x01", Entries: []exporter.ArtifactEntry{{Address: "0x1111111111111111111111111111111111111111", Amount: "1"}}}, &Config{}, zap.NewNop())
	require.Error(t, err)
}

func TestNewServer_RejectsDuplicateRecords(t *testing.T) {
	tree, _ := testutil.NewTestAllocationTree(t, 2)
	artifact, err := tree.Export()
	require.NoError(t, err)

	artifact.Entries = append(artifact.Entries, artifact.Entries[1])
	_, err = NewServer(artifact, &Config{}, zap.NewNop())
	require.ErrorIs(t, err, types.ErrInvalidEntry)
}

func TestHandleRoot(t *testing.T) {
	s, artifact, _ := newTestServer(t, 7, nil)

	w := doRequest(t, s.GetHandler(), http.MethodGet, "/root", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp rootResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, artifact.Root, resp.Root)
	assert.Equal(t, 7, resp.Entries)

	w = doRequest(t, s.GetHandler(), http.MethodPost, "/root", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestHandleProof(t *testing.T) {
	s, artifact, allocs := newTestServer(t, 9, nil)

	t.Run("Known allocation", func(t *testing.T) {
		w := doRequest(t, s.GetHandler(), http.MethodGet, proofURL(allocs[4].Account.Hex(), allocs[4].Amount.String()), nil)
		require.Equal(t, http.StatusOK, w.Code)

		var resp proofResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, uint64(4), resp.Index)
		assert.Equal(t, artifact.Entries[4].Proof, resp.Proof)
		assert.Equal(t, artifact.Root, resp.Root)
	})

	t.Run("Lowercase address and padded amount", func(t *testing.T) {
		addr := strings.ToLower(allocs[0].Account.Hex())
		w := doRequest(t, s.GetHandler(), http.MethodGet, proofURL(addr, "000"+allocs[0].Amount.String()), nil)
		require.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Wrong amount", func(t *testing.T) {
		w := doRequest(t, s.GetHandler(), http.MethodGet, proofURL(allocs[0].Account.Hex(), "1"), nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Invalid input", func(t *testing.T) {
		w := doRequest(t, s.GetHandler(), http.MethodGet, proofURL("0x1234", "1"), nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)

		w = doRequest(t, s.GetHandler(), http.MethodGet, proofURL(allocs[0].Account.Hex(), "-5"), nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHandleVerify(t *testing.T) {
	s, artifact, allocs := newTestServer(t, 6, nil)

	verify := func(req verifyRequest) (*httptest.ResponseRecorder, verifyResponse) {
		body, err := json.Marshal(req)
		require.NoError(t, err)
		w := doRequest(t, s.GetHandler(), http.MethodPost, "/verify", body)
		var resp verifyResponse
		if w.Code == http.StatusOK {
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		}
		return w, resp
	}

	entry := artifact.Entries[2]

	t.Run("Valid proof", func(t *testing.T) {
		w, resp := verify(verifyRequest{Index: entry.Index, Address: entry.Address, Amount: entry.Amount, Proof: entry.Proof})
		require.Equal(t, http.StatusOK, w.Code)
		assert.True(t, resp.Valid)
		assert.Equal(t, artifact.Root, resp.Root)
	})

	t.Run("Wrong index", func(t *testing.T) {
		w, resp := verify(verifyRequest{Index: 3, Address: entry.Address, Amount: entry.Amount, Proof: entry.Proof})
		require.Equal(t, http.StatusOK, w.Code)
		assert.False(t, resp.Valid)
	})

	t.Run("Other account", func(t *testing.T) {
		w, resp := verify(verifyRequest{Index: entry.Index, Address: allocs[0].Account.Hex(), Amount: entry.Amount, Proof: entry.Proof})
		require.Equal(t, http.StatusOK, w.Code)
		assert.False(t, resp.Valid)
	})

	t.Run("Explicit root", func(t *testing.T) {
		_, otherArtifact, _ := newTestServer(t, 3, nil)
		w, resp := verify(verifyRequest{Index: entry.Index, Address: entry.Address, Amount: entry.Amount, Proof: entry.Proof, Root: otherArtifact.Root})
		require.Equal(t, http.StatusOK, w.Code)
		assert.False(t, resp.Valid)
	})

	t.Run("Malformed proof", func(t *testing.T) {
		w, _ := verify(verifyRequest{Index: entry.Index, Address: entry.Address, Amount: entry.Amount, Proof: []string{"0x1234"}})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Invalid JSON", func(t *testing.T) {
		w := doRequest(t, s.GetHandler(), http.MethodPost, "/verify", []byte("invalid json"))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Method not allowed", func(t *testing.T) {
		w := doRequest(t, s.GetHandler(), http.MethodGet, "/verify", nil)
		assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	})
}

func TestRateLimit(t *testing.T) {
	s, _, _ := newTestServer(t, 2, &Config{Port: 0, RateLimit: 1, Burst: 2})

	// Freeze time so the bucket does not refill
	frozen := time.Now()
	s.limiter.now = func() time.Time { return frozen }

	for i := 0; i < 2; i++ {
		w := doRequest(t, s.GetHandler(), http.MethodGet, "/root", nil)
		require.Equal(t, http.StatusOK, w.Code)
	}

	w := doRequest(t, s.GetHandler(), http.MethodGet, "/root", nil)
	require.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "1", w.Header().Get("Retry-After"))

	// Health is never limited
	w = doRequest(t, s.GetHandler(), http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// A different client has its own bucket
	req := httptest.NewRequest(http.MethodGet, "/root", nil)
	req.RemoteAddr = "10.0.0.9:4000"
	rec := httptest.NewRecorder()
	s.GetHandler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestClientLimiter_DropsIdleBuckets(t *testing.T) {
	cl := newClientLimiter(1, 1)
	start := time.Now()
	cl.now = func() time.Time { return start }

	require.True(t, cl.allow("a"))
	require.False(t, cl.allow("a"))

	cl.now = func() time.Time { return start.Add(2 * limiterIdleTTL) }
	require.True(t, cl.allow("b"))

	cl.mu.Lock()
	_, ok := cl.limiters["a"]
	cl.mu.Unlock()
	assert.False(t, ok)
}
