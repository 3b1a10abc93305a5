// Package audio converts between 8 kHz G.711 mu-law telephony audio and
// 16-bit little-endian linear PCM. Conversions are pure functions over raw
// byte buffers; base64 framing belongs to the caller.
package audio

import "errors"

// ErrOddPCMLength reports a 16-bit PCM buffer with an odd byte count.
var ErrOddPCMLength = errors.New("audio: pcm buffer has odd byte length")

const (
	muLawBias = 0x84
	muLawClip = 32635
)

// decodeTable maps each mu-law byte to its linear sample.
var decodeTable [256]int16

func init() {
	for i := 0; i < 256; i++ {
		u := ^byte(i)
		sign := u & 0x80
		exp := (u >> 4) & 0x07
		mant := u & 0x0F
		value := (int(mant)<<3 + muLawBias) << uint(exp)
		value -= muLawBias
		if sign != 0 {
			value = -value
		}
		decodeTable[i] = int16(value)
	}
}

// DecodeMuLawSample expands one mu-law byte to a linear 16-bit sample.
func DecodeMuLawSample(u byte) int16 {
	return decodeTable[u]
}

// EncodeMuLawSample compresses one linear 16-bit sample to a mu-law byte.
func EncodeMuLawSample(s int16) byte {
	sign := byte(0)
	v := int(s)
	if v < 0 {
		v = -v
		sign = 0x80
	}
	if v > muLawClip {
		v = muLawClip
	}
	v += muLawBias

	exp := byte(7)
	for mask := 0x4000; exp > 0 && v&mask == 0; mask >>= 1 {
		exp--
	}
	mant := byte((v >> (uint(exp) + 3)) & 0x0F)
	return ^(sign | exp<<4 | mant)
}

// MuLawToPCM16k decodes 8 kHz mu-law audio to 16 kHz little-endian PCM16.
// Each input byte yields two identical output samples (plain 2x upsample,
// no interpolation filter), so the output is always 4x the input length.
func MuLawToPCM16k(in []byte) []byte {
	out := make([]byte, len(in)*4)
	for i, u := range in {
		s := decodeTable[u]
		lo := byte(s)
		hi := byte(uint16(s) >> 8)
		out[i*4] = lo
		out[i*4+1] = hi
		out[i*4+2] = lo
		out[i*4+3] = hi
	}
	return out
}

// PCM24kToMuLaw encodes 24 kHz little-endian PCM16 audio to 8 kHz mu-law by
// taking every third sample (no anti-aliasing filter). The output is the
// input length divided by six. An odd input length is a contract violation.
func PCM24kToMuLaw(in []byte) ([]byte, error) {
	if len(in)%2 != 0 {
		return nil, ErrOddPCMLength
	}
	samples := len(in) / 2
	out := make([]byte, samples/3)
	for i := range out {
		j := i * 3 * 2
		s := int16(uint16(in[j]) | uint16(in[j+1])<<8)
		out[i] = EncodeMuLawSample(s)
	}
	return out, nil
}
