package core

import (
	"errors"
	"testing"
	"time"
)

func TestAgeFromDOB(t *testing.T) {
	now := time.Date(2026, 7, 29, 0, 0, 0, 0, time.UTC)
	dob := time.Date(2000, 8, 1, 0, 0, 0, 0, time.UTC)
	if age := AgeFromDOB(dob, now); age != 25 {
		t.Fatalf("expected age 25 (birthday not yet reached), got %d", age)
	}
	dob2 := time.Date(2000, 7, 1, 0, 0, 0, 0, time.UTC)
	if age := AgeFromDOB(dob2, now); age != 26 {
		t.Fatalf("expected age 26 (birthday already passed), got %d", age)
	}
}

func TestAgeProofVerify(t *testing.T) {
	now := time.Date(2026, 7, 29, 0, 0, 0, 0, time.UTC)
	dob := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	p, err := CreateAgeProof(dob, 18, now)
	if err != nil {
		t.Fatalf("CreateAgeProof: %v", err)
	}
	if !p.Verify() {
		t.Fatalf("expected age proof to verify")
	}
}

func TestAgeProofRejectsUnderage(t *testing.T) {
	now := time.Date(2026, 7, 29, 0, 0, 0, 0, time.UTC)
	dob := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	if _, err := CreateAgeProof(dob, 18, now); !errors.Is(err, ErrZkpError) {
		t.Fatalf("expected ErrZkpError for underage subject, got %v", err)
	}
}

func TestResidencyProofVerify(t *testing.T) {
	allowed := []string{"US", "CA", "GB"}
	p, err := CreateResidencyProof("CA", allowed)
	if err != nil {
		t.Fatalf("CreateResidencyProof: %v", err)
	}
	if !p.Verify(allowed) {
		t.Fatalf("expected residency proof to verify")
	}
	if p.Verify([]string{"FR", "DE"}) {
		t.Fatalf("expected residency proof to fail against a different allowed set")
	}
}

func TestKycLevelProofVerify(t *testing.T) {
	p, err := CreateKycLevelProof(2, 1)
	if err != nil {
		t.Fatalf("CreateKycLevelProof: %v", err)
	}
	if !p.Verify() {
		t.Fatalf("expected kyc level proof to verify")
	}
	if _, err := CreateKycLevelProof(0, 1); !errors.Is(err, ErrZkpError) {
		t.Fatalf("expected ErrZkpError for level below min, got %v", err)
	}
}

func TestHumanityBundleConfidence(t *testing.T) {
	empty := HumanityBundle{}
	if empty.Confidence() != 0 {
		t.Fatalf("expected 0 confidence for empty bundle, got %v", empty.Confidence())
	}

	now := time.Date(2026, 7, 29, 0, 0, 0, 0, time.UTC)
	dob := time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC)
	age, err := CreateAgeProof(dob, 18, now)
	if err != nil {
		t.Fatalf("CreateAgeProof: %v", err)
	}
	res, err := CreateResidencyProof("US", []string{"US", "CA"})
	if err != nil {
		t.Fatalf("CreateResidencyProof: %v", err)
	}
	kyc, err := CreateKycLevelProof(3, 0)
	if err != nil {
		t.Fatalf("CreateKycLevelProof: %v", err)
	}
	full := HumanityBundle{Age: age, Residency: res, Kyc: kyc, Vouches: 5}
	if full.Confidence() != 1.0 {
		t.Fatalf("expected full bundle to score 1.0, got %v", full.Confidence())
	}
}
