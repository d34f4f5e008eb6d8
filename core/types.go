package core

import (
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DID is a Decentralized Identifier URI: did:<ns>:<method>:<identifier>.
type DID string

// DidParts holds the decomposed segments of a DID URI.
type DidParts struct {
	Namespace  string
	Method     string
	Identifier string
}

// Parts splits the DID into its namespace, method and identifier segments.
// Returns an error if the URI does not have the did:<ns>:<method>:<id> shape.
func (d DID) Parts() (DidParts, error) {
	segs := strings.SplitN(string(d), ":", 4)
	if len(segs) != 4 || segs[0] != "did" || segs[1] == "" || segs[2] == "" || segs[3] == "" {
		return DidParts{}, fmt.Errorf("%w: %q", ErrInvalidDID, d)
	}
	return DidParts{Namespace: segs[1], Method: segs[2], Identifier: segs[3]}, nil
}

func (d DID) Valid() bool {
	_, err := d.Parts()
	return err == nil
}

// NewDID builds a DID URI from its parts.
func NewDID(ns, method, identifier string) DID {
	return DID(fmt.Sprintf("did:%s:%s:%s", ns, method, identifier))
}

// CurrencyKind distinguishes fiat rails from crypto-native ones.
type CurrencyKind uint8

const (
	CurrencyFiat CurrencyKind = iota
	CurrencyCrypto
)

// Currency identifies the unit an Amount is denominated in.
type Currency struct {
	Kind CurrencyKind `json:"kind"`
	Code string       `json:"code"`
}

// Amount is a 128-bit-range unsigned value with its currency. Value must
// never be negative and must fit in 16 bytes for the canonical encoding.
type Amount struct {
	Value    *big.Int `json:"value"`
	Currency Currency `json:"currency"`
}

var maxUint128 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 128), big.NewInt(1))

// FitsUint128 reports whether the amount's value can be represented in the
// canonical 16-byte big-endian encoding.
func (a Amount) FitsUint128() bool {
	return a.Value != nil && a.Value.Sign() >= 0 && a.Value.Cmp(maxUint128) <= 0
}

// ConditionKind enumerates the settlement-condition kinds of a PM.
type ConditionKind string

const (
	ConditionTimeExpiry ConditionKind = "TimeExpiry"
	ConditionHashlock    ConditionKind = "Hashlock"
	ConditionMultiSig    ConditionKind = "MultiSig"
	ConditionEscrow      ConditionKind = "Escrow"
)

// Condition is one settlement precondition attached to a PM.
type Condition struct {
	Kind   ConditionKind `json:"kind"`
	Params []byte        `json:"params"`
}

// SettlementPreference orders a candidate settlement adapter for a PM.
// Priority 0 is highest.
type SettlementPreference struct {
	AdapterID string            `json:"adapter_id"`
	Priority  int               `json:"priority"`
	Params    map[string][]byte `json:"params"`
}

// RoutingHint steers the pathfinder toward a target DID via preferred
// adapters, bounded by a maximum hop count.
type RoutingHint struct {
	TargetDID         DID      `json:"target_did"`
	PreferredAdapters []string `json:"preferred_adapters"`
	MaxHops           int      `json:"max_hops"`
}

// PMState is one of the eight Payment-Message lifecycle states.
type PMState string

const (
	PMCreated   PMState = "Created"
	PMRouted    PMState = "Routed"
	PMAccepted  PMState = "Accepted"
	PMSettling  PMState = "Settling"
	PMSettled   PMState = "Settled"
	PMFailed    PMState = "Failed"
	PMExpired   PMState = "Expired"
	PMCancelled PMState = "Cancelled"
)

// IsTerminal reports whether the state accepts no further events.
func (s PMState) IsTerminal() bool {
	return s == PMSettled || s == PMExpired || s == PMCancelled
}

// PaymentMessage is the unit transported by the GPPN routing overlay.
type PaymentMessage struct {
	PMID                  uuid.UUID              `json:"pm_id"`
	Version               uint8                  `json:"version"`
	Sender                DID                    `json:"sender"`
	Receiver              DID                    `json:"receiver"`
	Amount                Amount                 `json:"amount"`
	SettlementPreferences []SettlementPreference `json:"settlement_preferences"`
	Conditions            []Condition            `json:"conditions"`
	Metadata              []byte                 `json:"metadata"`
	TTLSeconds            uint32                 `json:"ttl_seconds"`
	TimestampMs           uint64                 `json:"timestamp_ms"`
	Signature             [64]byte               `json:"signature"`
	RoutingHints          []RoutingHint          `json:"routing_hints"`
	State                 PMState                `json:"state"`
}

// RouteEntry is one row of the Distributed Routing Table, keyed by
// (Destination, NextHopPeerID).
type RouteEntry struct {
	Destination         DID             `json:"destination_did_uri"`
	NextHopPeerID        string          `json:"next_hop_peer_id"`
	SupportedCurrencies  map[string]bool `json:"supported_currencies"`
	AvailableLiquidity   *big.Int        `json:"available_liquidity"`
	FeeRate              float64         `json:"fee_rate"`
	AvgLatencyMs         float64         `json:"avg_latency_ms"`
	TrustScore           float64         `json:"trust_score"`
	LastUpdated          int64           `json:"last_updated"`
	TTL                  int64           `json:"ttl"`
	HopCount             int             `json:"hop_count"`
}

// Key returns the composite DRT key for this entry.
func (e RouteEntry) Key() string {
	return string(e.Destination) + "|" + e.NextHopPeerID
}

// Expired reports whether the entry is sweepable at time now (ms).
func (e RouteEntry) Expired(nowMs int64) bool {
	return nowMs-e.LastUpdated >= e.TTL
}

// DestinationAnnouncement is one destination entry inside an Advertisement.
type DestinationAnnouncement struct {
	Destination         DID             `json:"destination"`
	SupportedCurrencies map[string]bool `json:"supported_currencies"`
	AvailableLiquidity  *big.Int        `json:"available_liquidity"`
	FeeRate             float64         `json:"fee_rate"`
	AvgLatencyMs        float64         `json:"avg_latency_ms"`
	TrustScore          float64         `json:"trust_score"`
	HopCount            int             `json:"hop_count"`
}

// Advertisement is gossiped by a node to announce reachable destinations.
type Advertisement struct {
	AdvertiserDID    DID                       `json:"advertiser_did"`
	AdvertiserPeerID string                    `json:"advertiser_peer_id"`
	Destinations     []DestinationAnnouncement `json:"destinations"`
	CreatedAt        int64                     `json:"created_at"`
	Sequence         uint64                    `json:"sequence"`
	TTL              int64                     `json:"ttl"`
}

// TrustEdge is a directed, weighted edge in the TrustGraph.
type TrustEdge struct {
	From         DID     `json:"from_did"`
	To           DID     `json:"to_did"`
	Weight       float64 `json:"weight"`
	Interactions uint64  `json:"interactions"`
	LastUpdated  int64   `json:"last_updated"`
}

// SettlementStatus is the lifecycle state of a SettlementRecord.
type SettlementStatus string

const (
	SettlementInitiated  SettlementStatus = "Initiated"
	SettlementPending    SettlementStatus = "Pending"
	SettlementConfirmed  SettlementStatus = "Confirmed"
	SettlementFailed     SettlementStatus = "Failed"
	SettlementRolledBack SettlementStatus = "RolledBack"
)

// SettlementRecord tracks one in-flight or completed settlement.
type SettlementRecord struct {
	SettlementID uuid.UUID        `json:"settlement_id"`
	PMID         uuid.UUID        `json:"pm_id"`
	Amount       Amount           `json:"amount"`
	Sender       DID              `json:"sender"`
	Receiver     DID              `json:"receiver"`
	Status       SettlementStatus `json:"status"`
}

// SettlementReceipt is returned by a successful adapter confirm().
type SettlementReceipt struct {
	SettlementID uuid.UUID        `json:"settlement_id"`
	AdapterID    string           `json:"adapter_id"`
	Status       SettlementStatus `json:"status"`
	Amount       Amount           `json:"amount"`
	Sender       DID              `json:"sender"`
	Receiver     DID              `json:"receiver"`
	ConfirmedAt  int64            `json:"confirmed_at"`
	TxRef        string           `json:"tx_ref,omitempty"`
}

// LedgerEntry is one append-only posting against a DID's balance in a
// given currency.
type LedgerEntry struct {
	ID           uuid.UUID `json:"id"`
	DID          DID       `json:"did"`
	SignedDelta  *big.Int  `json:"signed_delta"`
	SettlementID uuid.UUID `json:"settlement_id"`
	Currency     string    `json:"currency"`
}

// HTLCStatus is the lifecycle state of a Hash Time-Locked Contract.
type HTLCStatus string

const (
	HTLCActive   HTLCStatus = "Active"
	HTLCClaimed  HTLCStatus = "Claimed"
	HTLCRefunded HTLCStatus = "Refunded"
	HTLCExpired  HTLCStatus = "Expired"
)

// HTLC is a conditional escrow unlocked by a preimage before a deadline.
type HTLC struct {
	ID            uuid.UUID  `json:"id"`
	HashLock      [32]byte   `json:"hash_lock"`
	TimeLockAbsMs int64      `json:"time_lock"`
	Amount        Amount     `json:"amount"`
	Sender        DID        `json:"sender"`
	Receiver      DID        `json:"receiver"`
	Status        HTLCStatus `json:"status"`
}

// VCStatus is the lifecycle state of a Verifiable Credential.
type VCStatus string

const (
	VCDraft     VCStatus = "Draft"
	VCIssued    VCStatus = "Issued"
	VCActive    VCStatus = "Active"
	VCSuspended VCStatus = "Suspended"
	VCRevoked   VCStatus = "Revoked"
	VCExpired   VCStatus = "Expired"
)

// VCProof carries the issuer's signature over a credential's canonical
// signing payload.
type VCProof struct {
	Signature string    `json:"signature"`
	Method    string    `json:"signing_method"`
	Created   time.Time `json:"created"`
}

// VerifiableCredential is an issuer-signed assertion about a subject.
type VerifiableCredential struct {
	ID             uuid.UUID              `json:"id"`
	Types          []string               `json:"type"`
	IssuerDID      DID                    `json:"issuer"`
	SubjectDID     DID                    `json:"subject"`
	IssuanceDate   time.Time              `json:"issuanceDate"`
	ExpirationDate *time.Time             `json:"expirationDate,omitempty"`
	Claims         map[string]interface{} `json:"claims"`
	Proof          *VCProof               `json:"proof,omitempty"`
	Status         VCStatus               `json:"-"`
}

// VerificationCheck records the pass/fail outcome of one verifier check.
type VerificationCheck struct {
	Name   string `json:"name"`
	Passed bool   `json:"passed"`
	Detail string `json:"detail,omitempty"`
}

// VerificationResult is the outcome of verifying a credential.
type VerificationResult struct {
	Valid  bool                 `json:"valid"`
	Checks []VerificationCheck  `json:"checks"`
}

// VerificationMethod is one key material entry in a DidDocument.
type VerificationMethod struct {
	ID              string `json:"id"`
	Type            string `json:"type"`
	Controller      DID    `json:"controller"`
	PublicKeyBase58 string `json:"publicKeyBase58"`
}

// ServiceEndpoint advertises a service associated with a DID.
type ServiceEndpoint struct {
	ID       string `json:"id"`
	Type     string `json:"type"`
	Endpoint string `json:"serviceEndpoint"`
}

// DidDocument resolves a DID to its verification methods and services.
type DidDocument struct {
	ID                  DID                   `json:"id"`
	VerificationMethods []VerificationMethod  `json:"verificationMethod"`
	Authentication      []string              `json:"authentication"`
	Service             []ServiceEndpoint     `json:"service,omitempty"`
}

//---------------------------------------------------------------------
// P2P substrate shapes
//---------------------------------------------------------------------

// NodeID identifies a peer on the gossip+DHT substrate (its libp2p peer id).
type NodeID string

// Peer is a known remote participant.
type Peer struct {
	ID      NodeID        `json:"id"`
	Addr    string        `json:"addr"`
	Latency time.Duration `json:"latency"`
}

// PeerInfo is the PeerManager-facing view of a Peer, associated with the
// DID it has announced (if any).
type PeerInfo struct {
	DID     DID     `json:"did,omitempty"`
	PeerID  NodeID  `json:"peer_id"`
	RTT     float64 `json:"rtt_ms"`
	Updated int64   `json:"updated"`
}

// Config configures a Node's P2P substrate.
type Config struct {
	Namespace      string   `mapstructure:"namespace" json:"namespace"`
	ListenAddr     string   `mapstructure:"listen_addr" json:"listen_addr"`
	BootstrapPeers []string `mapstructure:"bootstrap_peers" json:"bootstrap_peers"`
	DiscoveryTag   string   `mapstructure:"discovery_tag" json:"discovery_tag"`
	EnableDHT      bool     `mapstructure:"enable_dht" json:"enable_dht"`
}

// InboundMsg is one message delivered off a gossip subscription.
type InboundMsg struct {
	PeerID  string `json:"peer_id"`
	Payload []byte `json:"payload"`
	Topic   string `json:"topic"`
	Ts      int64  `json:"ts"`
}

// NetworkMessage is a unit of data published to a gossip topic.
type NetworkMessage struct {
	Topic string `json:"topic"`
	Data  []byte `json:"data"`
}

// PeerManager is the discovery/connection/advertisement surface a Node
// exposes to the rest of the system.
type PeerManager interface {
	DiscoverPeers() []PeerInfo
	Connect(addr string) error
	Disconnect(id NodeID) error
	AdvertiseSelf(topic string) error
	Peers() []PeerInfo
	Sample(n int) []string
	SendAsync(peerID, proto string, code byte, payload []byte) error
	Subscribe(proto string) <-chan InboundMsg
	Unsubscribe(proto string)
}

//---------------------------------------------------------------------
// Persisted-state shapes
//---------------------------------------------------------------------

// StateIterator walks a prefix range of a column family.
type StateIterator interface {
	Next() bool
	Key() []byte
	Value() []byte
	Error() error
}

// StateRW is the opaque column-family key/value contract the core
// depends on for persistence. Column families are named strings;
// ordering/indexing beyond point get/put/delete is not required.
type StateRW interface {
	GetState(key []byte) ([]byte, error)
	SetState(key, value []byte) error
	DeleteState(key []byte) error
	HasState(key []byte) (bool, error)
	PrefixIterator(prefix []byte) StateIterator
}
