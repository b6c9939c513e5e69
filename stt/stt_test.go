package stt

import "testing"

// fakeProvider is a minimal Provider for registry tests.
type fakeProvider struct {
	name   string
	closed bool
}

func (f *fakeProvider) Name() string          { return f.name }
func (f *fakeProvider) DisplayName() string   { return f.name }
func (f *fakeProvider) IsLocal() bool         { return true }
func (f *fakeProvider) RequiresSetup() bool   { return false }
func (f *fakeProvider) IsReady() bool         { return true }
func (f *fakeProvider) SetupProgress() int    { return 100 }
func (f *fakeProvider) Setup(func(int)) error { return nil }
func (f *fakeProvider) Close() error          { f.closed = true; return nil }
func (f *fakeProvider) Transcribe([]float32, int) (*Result, error) {
	return &Result{Text: "ok"}, nil
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()

	a := &fakeProvider{name: "a"}
	b := &fakeProvider{name: "b"}
	r.Register(a)
	r.Register(b)

	if got := r.Get("a"); got != Provider(a) {
		t.Errorf("Get(a) = %v, want the registered provider", got)
	}
	if got := r.Get("missing"); got != nil {
		t.Errorf("Get(missing) = %v, want nil", got)
	}
	if got := len(r.List()); got != 2 {
		t.Errorf("len(List()) = %d, want 2", got)
	}

	if err := r.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if !a.closed || !b.closed {
		t.Error("Close() did not close every registered provider")
	}
}
