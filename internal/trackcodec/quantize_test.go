package trackcodec

import "testing"

func TestChooseF32CompressionConstantChannelUsesZeroBitWidth(t *testing.T) {
	c, err := ChooseF32Compression([]float32{3.5, 3.5, 3.5}, DefaultErrorBound)
	if err != nil {
		t.Fatalf("choose: %v", err)
	}
	if c.BitWidth != 0 {
		t.Fatalf("expected bit width 0 for a constant channel, got %d", c.BitWidth)
	}
	if c.Dequantize(0) != 3.5 {
		t.Fatalf("expected constant value 3.5, got %v", c.Dequantize(0))
	}
}

func TestChooseF32CompressionRoundTripsWithinErrorBound(t *testing.T) {
	values := []float32{0, 0.25, 0.5, 0.75, 1, 0.1, 0.9}
	c, err := ChooseF32Compression(values, DefaultErrorBound)
	if err != nil {
		t.Fatalf("choose: %v", err)
	}
	for _, v := range values {
		got := c.Dequantize(c.Quantize(v))
		diff := got - v
		if diff < 0 {
			diff = -diff
		}
		if diff > DefaultErrorBound {
			t.Errorf("value %v: dequantized %v exceeds error bound (bit width %d)", v, got, c.BitWidth)
		}
	}
}

func TestChooseU32CompressionExactBitWidth(t *testing.T) {
	c := ChooseU32Compression([]uint32{10, 20, 13})
	if c.Min != 10 || c.Max != 20 {
		t.Fatalf("unexpected min/max: %+v", c)
	}
	for _, v := range []uint32{10, 20, 13} {
		if got := c.Dequantize(c.Quantize(v)); got != v {
			t.Errorf("value %d: round trip got %d", v, got)
		}
	}
}

func TestChooseU32CompressionConstantUsesZeroBitWidth(t *testing.T) {
	c := ChooseU32Compression([]uint32{7, 7, 7})
	if c.BitWidth != 0 {
		t.Fatalf("expected bit width 0, got %d", c.BitWidth)
	}
}
