package trackcodec

import "testing"

func TestReconstructWIdentity(t *testing.T) {
	if w := ReconstructW(0, 0, 0, false); w != 1 {
		t.Fatalf("expected w=1, got %v", w)
	}
	if w := ReconstructW(0, 0, 0, true); w != -1 {
		t.Fatalf("expected w=-1, got %v", w)
	}
}

func TestReconstructWTreatsNegativeRadicandAsZero(t *testing.T) {
	// x^2+y^2+z^2 > 1 here, which would make w imaginary.
	w := ReconstructW(0.7, 0.7, 0.7, false)
	if w != 0 {
		t.Fatalf("expected w=0 for a negative radicand, got %v", w)
	}
}

func TestValidateUnitQuaternionRejectsNonUnitLength(t *testing.T) {
	err := ValidateUnitQuaternion(1, 1, 1, 1, QuaternionTolerance)
	if _, ok := err.(*NonUnitQuaternionError); !ok {
		t.Fatalf("expected *NonUnitQuaternionError, got %v", err)
	}
}

func TestValidateUnitQuaternionAcceptsUnitLength(t *testing.T) {
	if err := ValidateUnitQuaternion(0, 0, 0, 1, QuaternionTolerance); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}
