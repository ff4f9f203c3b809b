package logger

import "testing"

func TestNew(t *testing.T) {
	for _, env := range []string{"production", "development", "test", ""} {
		l, err := New(env)
		if err != nil {
			t.Fatalf("New(%q): %v", env, err)
		}
		if l == nil {
			t.Fatalf("New(%q) returned nil logger", env)
		}
		l.Info("hello")
	}
}
