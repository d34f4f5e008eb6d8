package core

import (
	"errors"
	"testing"
)

func TestCreateAndVerifySetMembershipProof(t *testing.T) {
	allowed := []string{"US", "CA", "GB", "DE"}
	p, err := CreateSetMembershipProof("CA", allowed)
	if err != nil {
		t.Fatalf("CreateSetMembershipProof: %v", err)
	}
	leaves := make([][]byte, len(allowed))
	for i, c := range allowed {
		leaves[i] = []byte(c)
	}
	root := BuildMerkleRoot(leaves)
	if !VerifySetMembershipProof(p, root) {
		t.Fatalf("expected set-membership proof to verify")
	}
}

func TestCreateSetMembershipProofRejectsNonMember(t *testing.T) {
	allowed := []string{"US", "CA"}
	if _, err := CreateSetMembershipProof("FR", allowed); !errors.Is(err, ErrZkpError) {
		t.Fatalf("expected ErrZkpError for non-member value, got %v", err)
	}
}

func TestVerifySetMembershipProofRejectsWrongRoot(t *testing.T) {
	allowed := []string{"US", "CA", "GB"}
	p, err := CreateSetMembershipProof("GB", allowed)
	if err != nil {
		t.Fatalf("CreateSetMembershipProof: %v", err)
	}
	wrongRoot := BuildMerkleRoot([][]byte{[]byte("other")})
	if VerifySetMembershipProof(p, wrongRoot) {
		t.Fatalf("expected verification to fail against wrong root")
	}
}

func TestVerifySetMembershipProofRejectsNil(t *testing.T) {
	if VerifySetMembershipProof(nil, [32]byte{}) {
		t.Fatalf("expected nil proof to fail verification")
	}
}
