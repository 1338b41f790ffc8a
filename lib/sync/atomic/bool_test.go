package atomic

import "testing"

func TestBoolean(t *testing.T) {
	var b Boolean
	if b.Get() {
		t.Error("zero value should be false")
	}
	b.Set(true)
	if !b.Get() {
		t.Error("Set(true) error")
	}
	b.Set(false)
	if b.Get() {
		t.Error("Set(false) error")
	}
}
