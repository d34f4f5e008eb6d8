package core

import (
	crand "crypto/rand"
	"bytes"
	"sort"
)

// Commitment is a BLAKE3 hiding/binding commitment to a value.
type Commitment struct {
	Digest [32]byte `json:"digest"`
	Nonce  [32]byte `json:"nonce"`
}

// Commit produces Commitment{H(value||nonce), nonce} with a fresh
// cryptographically random nonce.
func Commit(value []byte) (Commitment, error) {
	var nonce [32]byte
	if _, err := crand.Read(nonce[:]); err != nil {
		return Commitment{}, err
	}
	return Commitment{Digest: HashConcat(value, nonce[:]), Nonce: nonce}, nil
}

// VerifyCommitment reports whether digest is the commitment to value
// under nonce.
func VerifyCommitment(digest [32]byte, value, nonce []byte) bool {
	return bytes.Equal(HashConcat(value, nonce)[:], digest[:])
}

// Disclosure is one revealed claim: its commitment plus the nonce needed
// to open it.
type Disclosure struct {
	ClaimName string     `json:"claim_name"`
	Value     []byte     `json:"value"`
	Commitment Commitment `json:"commitment"`
}

// SelectiveDisclosure maps claim names to their commitments, used to
// publish a commitment root while revealing only a chosen subset.
type SelectiveDisclosure struct {
	commitments map[string]Commitment
	claimOrder  []string
}

// NewSelectiveDisclosure commits to every entry in claims.
func NewSelectiveDisclosure(claims map[string][]byte) (*SelectiveDisclosure, error) {
	sd := &SelectiveDisclosure{commitments: make(map[string]Commitment, len(claims))}
	names := make([]string, 0, len(claims))
	for name := range claims {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		c, err := Commit(claims[name])
		if err != nil {
			return nil, err
		}
		sd.commitments[name] = c
		sd.claimOrder = append(sd.claimOrder, name)
	}
	return sd, nil
}

// Reveal returns the commitment/nonce pair for a claim name.
func (sd *SelectiveDisclosure) Reveal(claimName string) (Commitment, bool) {
	c, ok := sd.commitments[claimName]
	return c, ok
}

// CommitmentRoot is the Merkle root of the commitment digests, ordered
// deterministically by claim name.
func (sd *SelectiveDisclosure) CommitmentRoot() [32]byte {
	leaves := make([][]byte, 0, len(sd.claimOrder))
	for _, name := range sd.claimOrder {
		c := sd.commitments[name]
		leaves = append(leaves, c.Digest[:])
	}
	return BuildMerkleRoot(leaves)
}
