package core

import (
	"encoding/hex"
	"encoding/json"
	"math/big"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

// AdminAPI exposes an orchestrator's state over HTTP for operational
// tooling, grounded on the ambient chi router already wired through the
// pack (go-chi/chi/v5).
type AdminAPI struct {
	orch *Orchestrator
}

// NewAdminAPI wraps an orchestrator for HTTP exposure.
func NewAdminAPI(o *Orchestrator) *AdminAPI {
	return &AdminAPI{orch: o}
}

// Router builds the chi mux per spec's admin API surface: read-only
// GET /health, /status, /identity, /peers, /identity/did/{did}; write
// POST /credentials/issue, /credentials/verify, /proofs/generate,
// /trust/attest, /payments.
func (a *AdminAPI) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)

	r.Get("/health", a.handleHealth)
	r.Get("/status", a.handleStatus)
	r.Get("/identity", a.handleIdentity)
	r.Get("/peers", a.handlePeers)
	r.Get("/identity/did/{did}", a.handleResolveDID)
	r.Post("/credentials/issue", a.handleIssueCredential)
	r.Post("/credentials/verify", a.handleVerifyCredential)
	r.Post("/proofs/generate", a.handleGenerateProof)
	r.Post("/trust/attest", a.handleTrustAttest)
	r.Post("/payments", a.handlePayments)

	return r
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func (a *AdminAPI) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (a *AdminAPI) handleStatus(w http.ResponseWriter, r *http.Request) {
	peers := 0
	if a.orch.Net != nil {
		peers = len(a.orch.Net.Peers())
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"peers":        peers,
		"destinations": len(a.orch.DRT.Destinations()),
	})
}

func (a *AdminAPI) handleIdentity(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"did":        a.orch.self,
		"public_key": hex.EncodeToString(a.orch.Keys.PublicKey()),
	})
}

func (a *AdminAPI) handlePeers(w http.ResponseWriter, r *http.Request) {
	if a.orch.Net == nil {
		writeJSON(w, http.StatusOK, []PeerInfo{})
		return
	}
	writeJSON(w, http.StatusOK, a.orch.Peers.DiscoverPeers())
}

func (a *AdminAPI) handleResolveDID(w http.ResponseWriter, r *http.Request) {
	did := DID(chi.URLParam(r, "did"))
	doc, found, err := a.orch.DIDs.Resolve(did)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, DidDocumentPayload{Found: found, Document: doc})
}

func (a *AdminAPI) handleIssueCredential(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Subject          DID                    `json:"subject"`
		Types            []string               `json:"types"`
		Claims           map[string]interface{} `json:"claims"`
		ExpiresInSeconds int64                  `json:"expires_in_seconds,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	now := time.Now()
	vc := &VerifiableCredential{
		ID:           uuid.New(),
		Types:        req.Types,
		IssuerDID:    a.orch.self,
		SubjectDID:   req.Subject,
		IssuanceDate: now,
		Claims:       req.Claims,
		Status:       VCIssued,
	}
	if req.ExpiresInSeconds > 0 {
		exp := now.Add(time.Duration(req.ExpiresInSeconds) * time.Second)
		vc.ExpirationDate = &exp
	}

	payload, err := vc.SigningPayload()
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	sig, err := a.orch.Keys.Sign(payload)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	vc.Proof = &VCProof{Signature: hex.EncodeToString(sig), Method: "Ed25519VerificationKey2020", Created: now}

	writeJSON(w, http.StatusOK, vc)
}

func (a *AdminAPI) handleVerifyCredential(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Credential   VerifiableCredential `json:"credential"`
		IssuerPubKey []byte               `json:"issuer_pub_key"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	result := a.orch.Verifier.Check(&req.Credential, req.IssuerPubKey, time.Now())
	writeJSON(w, http.StatusOK, result)
}

func (a *AdminAPI) handleGenerateProof(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Kind     string   `json:"kind"`
		DOB      string   `json:"dob,omitempty"`
		MinAge   int64    `json:"min_age,omitempty"`
		Region   string   `json:"region,omitempty"`
		Allowed  []string `json:"allowed,omitempty"`
		Level    int64    `json:"level,omitempty"`
		MinLevel int64    `json:"min_level,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	var (
		proof interface{}
		err   error
	)
	switch req.Kind {
	case "age":
		dob, perr := time.Parse("2006-01-02", req.DOB)
		if perr != nil {
			writeError(w, http.StatusBadRequest, perr)
			return
		}
		proof, err = CreateAgeProof(dob, req.MinAge, time.Now())
	case "residency":
		proof, err = CreateResidencyProof(req.Region, req.Allowed)
	case "kyc_level":
		proof, err = CreateKycLevelProof(req.Level, req.MinLevel)
	default:
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "unknown proof kind: " + req.Kind})
		return
	}
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	encoded, err := json.Marshal(proof)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, ProofResponsePayload{Found: true, Kind: req.Kind, Proof: encoded})
}

func (a *AdminAPI) handleTrustAttest(w http.ResponseWriter, r *http.Request) {
	var req TrustAttestationPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if err := a.orch.Trust.AddEdge(req.Edge); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "recorded"})
}

func (a *AdminAPI) handlePayments(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Receiver          DID     `json:"receiver"`
		Amount            string  `json:"amount"`
		Currency          string  `json:"currency"`
		K                 int     `json:"k"`
		MaxHops           int     `json:"max_hops"`
		MinTrustThreshold float64 `json:"min_trust_threshold"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	value, ok := new(big.Int).SetString(req.Amount, 10)
	if !ok {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid amount: " + req.Amount})
		return
	}

	pm, err := NewPaymentMessageBuilder().
		Sender(a.orch.self).
		Receiver(req.Receiver).
		Amount(Amount{Value: value, Currency: Currency{Kind: CurrencyCrypto, Code: req.Currency}}).
		TimestampMs(uint64(Now())).
		Build()
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	sig, err := a.orch.Keys.Sign(pm.SigningPayload())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	copy(pm.Signature[:], sig)

	k, maxHops := req.K, req.MaxHops
	if k <= 0 {
		k = 3
	}
	if maxHops <= 0 {
		maxHops = 6
	}
	routes, err := a.orch.RouteRequest(r.Context(), req.Receiver, pm.Amount, k, maxHops, req.MinTrustThreshold, DefaultScoringWeights)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"payment_message": pm,
		"routes":          routes,
	})
}
