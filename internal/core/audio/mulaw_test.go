package audio

import (
	"bytes"
	"errors"
	"testing"
)

func TestMuLawToPCM16kLength(t *testing.T) {
	tests := []struct {
		name string
		in   int
		want int
	}{
		{name: "empty", in: 0, want: 0},
		{name: "one sample", in: 1, want: 4},
		{name: "20ms frame", in: 160, want: 640},
		{name: "arbitrary", in: 333, want: 1332},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := MuLawToPCM16k(make([]byte, tt.in))
			if len(out) != tt.want {
				t.Errorf("expected %d bytes, got %d", tt.want, len(out))
			}
		})
	}
}

func TestMuLawSilenceDecodesToZero(t *testing.T) {
	in := bytes.Repeat([]byte{0xFF}, 160)
	out := MuLawToPCM16k(in)
	if len(out) != 640 {
		t.Fatalf("expected 640 bytes, got %d", len(out))
	}
	for i, b := range out {
		if b != 0 {
			t.Fatalf("byte %d: expected 0, got %#x", i, b)
		}
	}
}

func TestMuLawUpsampleDuplicatesSamples(t *testing.T) {
	out := MuLawToPCM16k([]byte{0x80})
	if len(out) != 4 {
		t.Fatalf("expected 4 bytes, got %d", len(out))
	}
	s0 := int16(uint16(out[0]) | uint16(out[1])<<8)
	s1 := int16(uint16(out[2]) | uint16(out[3])<<8)
	if s0 != s1 {
		t.Errorf("upsampled pair differs: %d vs %d", s0, s1)
	}
	if s0 != DecodeMuLawSample(0x80) {
		t.Errorf("expected %d, got %d", DecodeMuLawSample(0x80), s0)
	}
}

func TestPCM24kToMuLawLength(t *testing.T) {
	tests := []struct {
		name string
		in   int
		want int
	}{
		{name: "empty", in: 0, want: 0},
		{name: "three samples", in: 6, want: 1},
		{name: "20ms at 24k", in: 960, want: 160},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := PCM24kToMuLaw(make([]byte, tt.in))
			if err != nil {
				t.Fatal(err)
			}
			if len(out) != tt.want {
				t.Errorf("expected %d bytes, got %d", tt.want, len(out))
			}
		})
	}
}

func TestPCM24kToMuLawOddLength(t *testing.T) {
	_, err := PCM24kToMuLaw(make([]byte, 7))
	if !errors.Is(err, ErrOddPCMLength) {
		t.Fatalf("expected ErrOddPCMLength, got %v", err)
	}
}

func TestPCM24kToMuLawPicksEveryThirdSample(t *testing.T) {
	samples := []int16{1000, 0, 0, -2000, 0, 0}
	in := make([]byte, len(samples)*2)
	for i, s := range samples {
		in[i*2] = byte(s)
		in[i*2+1] = byte(uint16(s) >> 8)
	}

	out, err := PCM24kToMuLaw(in)
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 bytes, got %d", len(out))
	}
	if got := DecodeMuLawSample(out[0]); got < 900 || got > 1100 {
		t.Errorf("sample 0: expected ~1000, got %d", got)
	}
	if got := DecodeMuLawSample(out[1]); got < -2200 || got > -1800 {
		t.Errorf("sample 1: expected ~-2000, got %d", got)
	}
}

func TestEncodeMuLawKnownValues(t *testing.T) {
	tests := []struct {
		name string
		in   int16
		want byte
	}{
		{name: "zero is silence", in: 0, want: 0xFF},
		{name: "max positive", in: 32767, want: 0x80},
		{name: "max negative", in: -32768, want: 0x00},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EncodeMuLawSample(tt.in); got != tt.want {
				t.Errorf("expected %#x, got %#x", tt.want, got)
			}
		})
	}
}

// Re-encoding a decoded mu-law byte must land within one quantization step
// of the original value, for every possible byte.
func TestMuLawRoundTripBounded(t *testing.T) {
	for i := 0; i < 256; i++ {
		u := byte(i)
		orig := DecodeMuLawSample(u)
		round := DecodeMuLawSample(EncodeMuLawSample(orig))

		exp := (^u >> 4) & 0x07
		step := int32(8) << exp
		diff := int32(round) - int32(orig)
		if diff < 0 {
			diff = -diff
		}
		if diff > step {
			t.Errorf("byte %#x: decoded %d re-decoded %d, diff %d exceeds step %d",
				u, orig, round, diff, step)
		}
	}
}
