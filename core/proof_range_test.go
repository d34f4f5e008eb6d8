package core

import (
	"errors"
	"testing"
)

func TestCreateAndVerifyRangeProof(t *testing.T) {
	p, err := CreateRangeProof(25, 18, 65)
	if err != nil {
		t.Fatalf("CreateRangeProof: %v", err)
	}
	if !VerifyRangeProof(p) {
		t.Fatalf("expected range proof to verify")
	}
}

func TestCreateRangeProofRejectsOutOfBounds(t *testing.T) {
	if _, err := CreateRangeProof(10, 18, 65); !errors.Is(err, ErrZkpError) {
		t.Fatalf("expected ErrZkpError for value below min, got %v", err)
	}
	if _, err := CreateRangeProof(100, 18, 65); !errors.Is(err, ErrZkpError) {
		t.Fatalf("expected ErrZkpError for value above max, got %v", err)
	}
}

func TestVerifyRangeProofRejectsTamperedChallenge(t *testing.T) {
	p, err := CreateRangeProof(30, 18, 65)
	if err != nil {
		t.Fatalf("CreateRangeProof: %v", err)
	}
	p.Challenge[0] ^= 0xFF
	if VerifyRangeProof(p) {
		t.Fatalf("expected tampered proof to fail verification")
	}
}

func TestVerifyRangeProofRejectsNil(t *testing.T) {
	if VerifyRangeProof(nil) {
		t.Fatalf("expected nil proof to fail verification")
	}
}
