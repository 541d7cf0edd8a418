package gscounting

import "testing"

func TestNewDenseShapeMismatch(t *testing.T) {
	_, err := NewDense(2, 3, []float32{1, 2, 3, 4})
	if err == nil {
		t.Fatalf("expected an error")
	}
	if _, ok := err.(*ShapeMismatchError); !ok {
		t.Fatalf("want *ShapeMismatchError, got %T", err)
	}
}

func TestNewDenseOK(t *testing.T) {
	d, err := NewDense(2, 2, []float32{1, 2, 3, 4})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.At(1, 0) != 3 {
		t.Fatalf("want 3, got %v", d.At(1, 0))
	}
}

func TestDenseEqual(t *testing.T) {
	a, _ := NewDense(2, 2, []float32{1, 2, 3, 4})
	b, _ := NewDense(2, 2, []float32{1, 2, 3, 4})
	c, _ := NewDense(2, 2, []float32{1, 2, 3, 5})

	if !a.Equal(b) {
		t.Fatalf("expected equal")
	}
	if a.Equal(c) {
		t.Fatalf("expected unequal")
	}
}
