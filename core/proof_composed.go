package core

import "time"

// AgeFromDOB computes a whole-years age for dob as of now.
func AgeFromDOB(dob time.Time, now time.Time) int64 {
	years := now.Year() - dob.Year()
	anniversary := time.Date(now.Year(), dob.Month(), dob.Day(), 0, 0, 0, 0, now.Location())
	if now.Before(anniversary) {
		years--
	}
	return int64(years)
}

// AgeProof proves a subject's age (derived from date of birth) is at
// least minAge, without revealing the exact age.
type AgeProof struct {
	*RangeProof
}

// CreateAgeProof builds an AgeProof for dob against [minAge, 150].
func CreateAgeProof(dob time.Time, minAge int64, now time.Time) (*AgeProof, error) {
	age := AgeFromDOB(dob, now)
	rp, err := CreateRangeProof(age, minAge, 150)
	if err != nil {
		return nil, err
	}
	return &AgeProof{rp}, nil
}

// Verify checks the underlying range proof.
func (p *AgeProof) Verify() bool { return VerifyRangeProof(p.RangeProof) }

// ResidencyProof proves a subject's country is one of a set of allowed
// countries without revealing which one (beyond set membership).
type ResidencyProof struct {
	*SetMembershipProof
}

// CreateResidencyProof builds a ResidencyProof for country against the
// allowed set.
func CreateResidencyProof(country string, allowed []string) (*ResidencyProof, error) {
	smp, err := CreateSetMembershipProof(country, allowed)
	if err != nil {
		return nil, err
	}
	return &ResidencyProof{smp}, nil
}

// Verify checks the underlying set-membership proof against root(allowed).
func (p *ResidencyProof) Verify(allowed []string) bool {
	leaves := make([][]byte, len(allowed))
	for i, c := range allowed {
		leaves[i] = []byte(c)
	}
	root := BuildMerkleRoot(leaves)
	return VerifySetMembershipProof(p.SetMembershipProof, root)
}

// KycLevelProof proves a subject's KYC level is at least minLevel without
// revealing the exact level. Levels range 0..3.
type KycLevelProof struct {
	*RangeProof
}

// CreateKycLevelProof builds a KycLevelProof for actual against [min, 3].
func CreateKycLevelProof(actual, min int64) (*KycLevelProof, error) {
	rp, err := CreateRangeProof(actual, min, 3)
	if err != nil {
		return nil, err
	}
	return &KycLevelProof{rp}, nil
}

// Verify checks the underlying range proof.
func (p *KycLevelProof) Verify() bool { return VerifyRangeProof(p.RangeProof) }

// HumanityBundle aggregates optional identity proofs and vouches into a
// single confidence score.
type HumanityBundle struct {
	Age       *AgeProof
	Residency *ResidencyProof
	Kyc       *KycLevelProof
	Vouches   int
}

// Confidence computes the weighted humanity-bundle score, clipped to 1.
func (b HumanityBundle) Confidence() float64 {
	has := func(present bool) float64 {
		if present {
			return 1
		}
		return 0
	}
	vouchTerm := float64(b.Vouches)
	if vouchTerm > 3 {
		vouchTerm = 3
	}
	score := 0.20*has(b.Age != nil) +
		0.20*has(b.Residency != nil) +
		0.30*has(b.Kyc != nil) +
		0.30*(vouchTerm/3)
	if score > 1 {
		score = 1
	}
	return score
}
