package core

import (
	"bytes"
	"fmt"
)

// SetMembershipProof is a Sigma-style proof that a hidden value is a
// member of a known set, without revealing which other members exist.
type SetMembershipProof struct {
	Commitment      Commitment `json:"commitment"`
	Root            [32]byte   `json:"root"`
	Path            [][]byte   `json:"path"`
	DirectionFlags  []bool     `json:"direction_flags"`
	Challenge       [32]byte   `json:"challenge"`
	Response        [32]byte   `json:"response"`
}

func setChallenge(commit Commitment, root [32]byte) [32]byte {
	buf := make([]byte, 0, 64)
	buf = append(buf, commit.Digest[:]...)
	buf = append(buf, root[:]...)
	return Hash(buf)
}

// CreateSetMembershipProof builds a proof that value belongs to set.
// Fails if value is not present in set.
func CreateSetMembershipProof(value string, set []string) (*SetMembershipProof, error) {
	idx := -1
	leaves := make([][]byte, len(set))
	for i, item := range set {
		leaves[i] = []byte(item)
		if item == value {
			idx = i
		}
	}
	if idx < 0 {
		return nil, fmt.Errorf("%w: value %q not in set", ErrZkpError, value)
	}

	path, root, err := MerkleProof(leaves, idx)
	if err != nil {
		return nil, err
	}
	flags := make([]bool, len(path))
	for i := range path {
		flags[i] = (idx>>uint(i))&1 == 0 // true: sibling is on the right
	}

	commit, err := Commit([]byte(value))
	if err != nil {
		return nil, err
	}
	challenge := setChallenge(commit, root)
	response := Hash(append(append([]byte(value), commit.Nonce[:]...), challenge[:]...))

	return &SetMembershipProof{
		Commitment:     commit,
		Root:           root,
		Path:           path,
		DirectionFlags: flags,
		Challenge:      challenge,
		Response:       response,
	}, nil
}

// VerifySetMembershipProof accepts iff expectedRoot matches the proof's
// root and the recomputed Fiat-Shamir challenge matches the stored one.
func VerifySetMembershipProof(p *SetMembershipProof, expectedRoot [32]byte) bool {
	if p == nil {
		return false
	}
	if !bytes.Equal(p.Root[:], expectedRoot[:]) {
		return false
	}
	recomputed := setChallenge(p.Commitment, p.Root)
	return bytes.Equal(recomputed[:], p.Challenge[:])
}
