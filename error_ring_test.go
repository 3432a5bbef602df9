package vista

import (
	"errors"
	"testing"
)

func TestErrorRing_NilSafe(t *testing.T) {
	var r *errorRing

	r.push(errors.New("test"))

	if r.all() != nil {
		t.Error("expected nil from nil ring")
	}
}

func TestErrorRing_ZeroSize(t *testing.T) {
	if r := newErrorRing(0); r != nil {
		t.Error("expected nil ring for size 0")
	}
}

func TestErrorRing_NegativeSize(t *testing.T) {
	if r := newErrorRing(-1); r != nil {
		t.Error("expected nil ring for negative size")
	}
}

func TestErrorRing_Empty(t *testing.T) {
	r := newErrorRing(2)
	if r.all() != nil {
		t.Error("expected nil from empty ring")
	}
}

func TestErrorRing_KeepsOrder(t *testing.T) {
	r := newErrorRing(3)
	r.push(errors.New("error1"))
	r.push(errors.New("error2"))

	errs := r.all()
	if len(errs) != 2 {
		t.Fatalf("expected 2 errors, got %d", len(errs))
	}
	if errs[0].Error() != "error1" || errs[1].Error() != "error2" {
		t.Errorf("expected oldest first, got %v", errs)
	}
}

func TestErrorRing_EvictsOldest(t *testing.T) {
	r := newErrorRing(2)
	r.push(errors.New("error1"))
	r.push(errors.New("error2"))
	r.push(errors.New("error3"))
	r.push(errors.New("error4"))

	errs := r.all()
	if len(errs) != 2 {
		t.Fatalf("expected 2 errors, got %d", len(errs))
	}
	if errs[0].Error() != "error3" {
		t.Errorf("expected error3 first, got %v", errs[0])
	}
	if errs[1].Error() != "error4" {
		t.Errorf("expected error4 second, got %v", errs[1])
	}
}

func TestErrorRing_AllReturnsCopy(t *testing.T) {
	r := newErrorRing(2)
	r.push(errors.New("error1"))

	errs := r.all()
	errs[0] = errors.New("mutated")

	if r.all()[0].Error() != "error1" {
		t.Error("expected ring contents to be unaffected by caller mutation")
	}
}
