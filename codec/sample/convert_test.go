package sample

import "testing"

func TestConvertShortToFloat(t *testing.T) {
	tests := []struct {
		name string
		src  []int16
		want []float32
	}{
		{name: "zero", src: []int16{0}, want: []float32{0}},
		{name: "max", src: []int16{32767}, want: []float32{1}},
		{name: "min", src: []int16{-32768}, want: []float32{-32768.0 / 32767.0}},
		{name: "empty", src: nil, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dst := make([]float32, len(tt.src))
			n := ConvertShortToFloat(tt.src, dst)
			if n != len(tt.want) {
				t.Fatalf("ConvertShortToFloat() n = %d, want %d", n, len(tt.want))
			}
			for i := range tt.want {
				if dst[i] != tt.want[i] {
					t.Errorf("dst[%d] = %v, want %v", i, dst[i], tt.want[i])
				}
			}
		})
	}
}

func TestConvertFloatToShortSaturates(t *testing.T) {
	src := []float32{2.0, -2.0, 0.5}
	dst := make([]int16, len(src))
	ConvertFloatToShort(src, dst)

	if dst[0] != 32767 {
		t.Errorf("dst[0] = %d, want 32767 (saturated)", dst[0])
	}
	if dst[1] != -32768 {
		t.Errorf("dst[1] = %d, want -32768 (saturated)", dst[1])
	}
	if dst[2] != 16384 {
		t.Errorf("dst[2] = %d, want 16384", dst[2])
	}
}

func TestConvertZeroLength(t *testing.T) {
	if n := ConvertShortToFloat(nil, nil); n != 0 {
		t.Errorf("ConvertShortToFloat(nil, nil) = %d, want 0", n)
	}
	if n := ConvertFloatToShort(nil, nil); n != 0 {
		t.Errorf("ConvertFloatToShort(nil, nil) = %d, want 0", n)
	}
}
