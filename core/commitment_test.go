package core

import "testing"

func TestCommitVerify(t *testing.T) {
	value := []byte("age=27")
	c, err := Commit(value)
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}
	if !VerifyCommitment(c.Digest, value, c.Nonce[:]) {
		t.Fatalf("expected commitment to verify")
	}
	if VerifyCommitment(c.Digest, []byte("age=30"), c.Nonce[:]) {
		t.Fatalf("expected commitment to reject wrong value")
	}
}

func TestSelectiveDisclosureRevealAndRoot(t *testing.T) {
	claims := map[string][]byte{
		"age":       []byte("27"),
		"residency": []byte("US"),
	}
	sd, err := NewSelectiveDisclosure(claims)
	if err != nil {
		t.Fatalf("NewSelectiveDisclosure: %v", err)
	}
	c, ok := sd.Reveal("age")
	if !ok {
		t.Fatalf("expected to reveal age claim")
	}
	if !VerifyCommitment(c.Digest, claims["age"], c.Nonce[:]) {
		t.Fatalf("expected revealed commitment to verify against original claim")
	}
	if _, ok := sd.Reveal("missing"); ok {
		t.Fatalf("expected no commitment for unknown claim")
	}

	root1 := sd.CommitmentRoot()
	sd2, _ := NewSelectiveDisclosure(claims)
	root2 := sd2.CommitmentRoot()
	if root1 == root2 {
		t.Fatalf("expected distinct roots across independently-committed disclosures (fresh nonces)")
	}
}
