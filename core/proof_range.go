package core

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// RangeProof is a Sigma-style (Fiat-Shamir) proof that a hidden value
// lies within [Min, Max].
type RangeProof struct {
	Commitment       Commitment   `json:"commitment"`
	Challenge        [32]byte     `json:"challenge"`
	Response         [32]byte     `json:"response"`
	Min              int64        `json:"min"`
	Max              int64        `json:"max"`
	BoundaryCommits  [2]Commitment `json:"boundary_commitments"`
}

func le64(v int64) []byte {
	b := make([]byte, 8)
	binary.LittleEndian.PutUint64(b, uint64(v))
	return b
}

func rangeChallenge(commit, lower, upper Commitment, min, max int64) [32]byte {
	buf := make([]byte, 0, 32*3+16)
	buf = append(buf, commit.Digest[:]...)
	buf = append(buf, lower.Digest[:]...)
	buf = append(buf, upper.Digest[:]...)
	buf = append(buf, le64(min)...)
	buf = append(buf, le64(max)...)
	return Hash(buf)
}

// CreateRangeProof builds a RangeProof that value lies in [min, max].
func CreateRangeProof(value, min, max int64) (*RangeProof, error) {
	if value < min || value > max {
		return nil, fmt.Errorf("%w: value %d outside [%d,%d]", ErrZkpError, value, min, max)
	}
	commit, err := Commit(le64(value))
	if err != nil {
		return nil, err
	}
	lower, err := Commit(le64(value - min))
	if err != nil {
		return nil, err
	}
	upper, err := Commit(le64(max - value))
	if err != nil {
		return nil, err
	}
	challenge := rangeChallenge(commit, lower, upper, min, max)
	response := Hash(append(append(le64(value), commit.Nonce[:]...), challenge[:]...))

	return &RangeProof{
		Commitment:      commit,
		Challenge:       challenge,
		Response:        response,
		Min:             min,
		Max:             max,
		BoundaryCommits: [2]Commitment{lower, upper},
	}, nil
}

// VerifyRangeProof recomputes the challenge from the proof's public
// fields and accepts iff it matches the stored challenge and exactly two
// boundary commitments are present.
func VerifyRangeProof(p *RangeProof) bool {
	if p == nil {
		return false
	}
	if len(p.BoundaryCommits) != 2 {
		return false
	}
	recomputed := rangeChallenge(p.Commitment, p.BoundaryCommits[0], p.BoundaryCommits[1], p.Min, p.Max)
	return bytes.Equal(recomputed[:], p.Challenge[:])
}
