package proofServer

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Layr-Labs/allocation-merkle-go/pkg/merkle"
	"github.com/Layr-Labs/allocation-merkle-go/pkg/types"
)

type errorResponse struct {
	Error string `json:"error"`
}

type rootResponse struct {
	Root    string `json:"root"`
	Entries int    `json:"entries"`
}

type proofResponse struct {
	Root    string   `json:"root"`
	Index   uint64   `json:"index"`
	Address string   `json:"address"`
	Amount  string   `json:"amount"`
	Proof   []string `json:"proof"`
}

type verifyRequest struct {
	Index   uint64   `json:"index"`
	Address string   `json:"address"`
	Amount  string   `json:"amount"`
	Proof   []string `json:"proof"`
	Root    string   `json:"root,omitempty"`
}

type verifyResponse struct {
	Valid bool   `json:"valid"`
	Root  string `json:"root"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	writeJSON(w, http.StatusOK, rootResponse{Root: s.artifact.Root, Entries: len(s.artifact.Entries)})
}

func (s *Server) handleProof(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	query := r.URL.Query()
	account, err := types.ParseAddress(query.Get("address"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	amount, err := types.ParseAmount(query.Get("amount"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	key := (&types.Allocation{Account: account, Amount: amount}).Key()
	entry, ok := s.byKey[key]
	if !ok {
		s.logger.Sugar().Debugw("Proof requested for unknown allocation", "address", account.Hex(), "amount", amount.String())
		writeError(w, http.StatusNotFound, "allocation not found")
		return
	}

	writeJSON(w, http.StatusOK, proofResponse{
		Root:    s.artifact.Root,
		Index:   entry.Index,
		Address: entry.Address,
		Amount:  entry.Amount,
		Proof:   entry.Proof,
	})
}

func (s *Server) handleVerify(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req verifyRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20))
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "failed to parse request")
		return
	}

	account, err := types.ParseAddress(req.Address)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	amount, err := types.ParseAmount(req.Amount)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	root := s.artifact.Root
	if req.Root != "" {
		root = req.Root
	}

	leaf, err := merkle.HashEntry(&types.Entry{Index: req.Index, Account: account, Amount: amount})
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	valid, err := merkle.VerifyHexProof(leaf.Hex(), req.Proof, root)
	if err != nil {
		if errors.Is(err, merkle.ErrMalformedProof) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		s.logger.Sugar().Errorw("Failed to verify proof", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, verifyResponse{Valid: valid, Root: root})
}
