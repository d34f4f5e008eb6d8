package core

// ProtocolMessageType discriminates the payload carried in a
// JSON-framed ProtocolEnvelope. This package defines the envelope types
// only; no libp2p stream handler for them is registered.
type ProtocolMessageType string

const (
	MsgRouteRequest       ProtocolMessageType = "route_request"
	MsgRouteResponse      ProtocolMessageType = "route_response"
	MsgPaymentMessage     ProtocolMessageType = "payment_message"
	MsgCredentialRequest  ProtocolMessageType = "credential_request"
	MsgCredentialResponse ProtocolMessageType = "credential_response"
	MsgProofRequest       ProtocolMessageType = "proof_request"
	MsgProofResponse      ProtocolMessageType = "proof_response"
	MsgDidResolve         ProtocolMessageType = "did_resolve"
	MsgDidDocument        ProtocolMessageType = "did_document"
	MsgTrustAttestation   ProtocolMessageType = "trust_attestation"
	MsgTrustUpdate        ProtocolMessageType = "trust_update"
	MsgPing               ProtocolMessageType = "ping"
	MsgPong               ProtocolMessageType = "pong"
	MsgError              ProtocolMessageType = "error"
)

// ProtocolEnvelope is the JSON-framed wire wrapper for every direct
// request/response exchanged between peers.
type ProtocolEnvelope struct {
	Type    ProtocolMessageType `json:"type"`
	ReqID   string              `json:"req_id"`
	Payload []byte              `json:"payload"`
}

// RouteRequestPayload asks a peer to find routes toward Destination.
type RouteRequestPayload struct {
	Destination DID    `json:"destination"`
	Amount      Amount `json:"amount"`
	MaxHops     int    `json:"max_hops"`
	K           int    `json:"k"`
}

// RouteResponsePayload carries the routes a peer found, or an error.
type RouteResponsePayload struct {
	Found  bool    `json:"found"`
	Routes []Route `json:"routes,omitempty"`
	Error  string  `json:"error,omitempty"`
}

// CredentialRequestPayload asks a peer for a credential of one of Types
// about Subject.
type CredentialRequestPayload struct {
	Subject DID      `json:"subject"`
	Types   []string `json:"types"`
}

// CredentialResponsePayload carries the requested credential, if any.
type CredentialResponsePayload struct {
	Found      bool                  `json:"found"`
	Credential *VerifiableCredential `json:"credential,omitempty"`
	Error      string                `json:"error,omitempty"`
}

// ProofRequestPayload asks a peer to produce a zero-knowledge proof of
// Kind over Claim, e.g. "age", "residency", "kyc_level".
type ProofRequestPayload struct {
	Subject DID    `json:"subject"`
	Kind    string `json:"kind"`
	Claim   string `json:"claim"`
}

// ProofResponsePayload carries the produced proof, opaquely encoded
// (one of RangeProof/SetMembershipProof marshaled as JSON).
type ProofResponsePayload struct {
	Found bool   `json:"found"`
	Kind  string `json:"kind"`
	Proof []byte `json:"proof,omitempty"`
	Error string `json:"error,omitempty"`
}

// DidResolvePayload requests resolution of a DID.
type DidResolvePayload struct {
	DID DID `json:"did"`
}

// DidDocumentPayload carries a resolved DID Document, if found.
type DidDocumentPayload struct {
	Found    bool        `json:"found"`
	Document DidDocument `json:"document,omitempty"`
}

// TrustAttestationPayload is a first-hand trust observation a peer
// contributes about another.
type TrustAttestationPayload struct {
	Edge TrustEdge `json:"edge"`
}

// TrustUpdatePayload broadcasts a recomputed composite trust score.
type TrustUpdatePayload struct {
	Subject DID     `json:"subject"`
	Score   float64 `json:"score"`
}

// PingPayload/PongPayload are liveness probes.
type PingPayload struct{ Nonce uint64 `json:"nonce"` }
type PongPayload struct{ Nonce uint64 `json:"nonce"` }

// ErrorPayload reports a protocol-level failure for a given request id.
type ErrorPayload struct {
	Message string `json:"message"`
}
