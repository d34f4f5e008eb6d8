package core

import "testing"

func TestMemoryStoreSetGetDelete(t *testing.T) {
	s := NewMemoryStore()
	if err := s.SetState([]byte("k1"), []byte("v1")); err != nil {
		t.Fatalf("SetState: %v", err)
	}
	v, err := s.GetState([]byte("k1"))
	if err != nil || string(v) != "v1" {
		t.Fatalf("expected v1, got %q (err=%v)", v, err)
	}
	has, err := s.HasState([]byte("k1"))
	if err != nil || !has {
		t.Fatalf("expected key present")
	}
	if err := s.DeleteState([]byte("k1")); err != nil {
		t.Fatalf("DeleteState: %v", err)
	}
	has, _ = s.HasState([]byte("k1"))
	if has {
		t.Fatalf("expected key absent after delete")
	}
}

func TestMemoryStoreGetMissingReturnsNilNoError(t *testing.T) {
	s := NewMemoryStore()
	v, err := s.GetState([]byte("missing"))
	if err != nil {
		t.Fatalf("expected no error for missing key, got %v", err)
	}
	if v != nil {
		t.Fatalf("expected nil value for missing key")
	}
}

func TestMemoryStorePrefixIteratorSortedAndScoped(t *testing.T) {
	s := NewMemoryStore()
	s.SetState([]byte("a:2"), []byte("v2"))
	s.SetState([]byte("a:1"), []byte("v1"))
	s.SetState([]byte("b:1"), []byte("other"))

	it := s.PrefixIterator([]byte("a:"))
	var keys []string
	for it.Next() {
		keys = append(keys, string(it.Key()))
	}
	if err := it.Error(); err != nil {
		t.Fatalf("iterator error: %v", err)
	}
	if len(keys) != 2 {
		t.Fatalf("expected 2 keys under prefix a:, got %v", keys)
	}
	if keys[0] != "a:1" || keys[1] != "a:2" {
		t.Fatalf("expected sorted keys [a:1 a:2], got %v", keys)
	}
}

func TestMemoryStoreValueIsolation(t *testing.T) {
	s := NewMemoryStore()
	v := []byte("original")
	s.SetState([]byte("k"), v)
	v[0] = 'X'
	got, _ := s.GetState([]byte("k"))
	if string(got) != "original" {
		t.Fatalf("expected stored value to be isolated from caller mutation, got %q", got)
	}
}
