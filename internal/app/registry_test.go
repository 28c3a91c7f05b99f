package app

import "testing"

func TestRegistryUnregisterOnlyMatchingSink(t *testing.T) {
	reg := NewSessionRegistry()
	old, fresh := &recordingSink{}, &recordingSink{}

	reg.Register("1", old)
	reg.Register("1", fresh)
	if reg.Unregister("1", old) {
		t.Fatalf("stale sink should not unregister the newer one")
	}
	if reg.Len() != 1 {
		t.Fatalf("len = %d, want 1", reg.Len())
	}
	if !reg.Unregister("1", fresh) {
		t.Fatalf("current sink should unregister")
	}
	if reg.Unregister("1", nil) {
		t.Fatalf("unknown user should report false")
	}
}

func TestRegistryUnregisterNilSinkIsUnconditional(t *testing.T) {
	reg := NewSessionRegistry()
	reg.Register("1", &recordingSink{})
	if !reg.Unregister("1", nil) {
		t.Fatalf("nil sink should remove any binding")
	}
	if _, ok := reg.Lookup("1"); ok {
		t.Fatalf("user still registered")
	}
}

func TestRegistryBroadcastSkipsMissingAndFailing(t *testing.T) {
	reg := NewSessionRegistry()
	ok1, ok2, broken := &recordingSink{}, &recordingSink{}, &recordingSink{fail: true}
	reg.Register("a", ok1)
	reg.Register("b", ok2)
	reg.Register("c", broken)

	got := reg.Broadcast([]string{"a", "b", "c", "ghost"}, []byte(`{}`))
	if got != 2 {
		t.Fatalf("delivered = %d, want 2", got)
	}
	if ok1.count() != 1 || ok2.count() != 1 {
		t.Fatalf("healthy sinks should each receive one message")
	}
}
