package stt

import (
	"bytes"
	"encoding/binary"
)

// wavHeader is the canonical 44-byte header for a PCM WAV file.
type wavHeader struct {
	RiffID        [4]byte
	RiffSize      uint32
	WaveID        [4]byte
	FmtID         [4]byte
	FmtSize       uint32
	AudioFormat   uint16
	NumChannels   uint16
	SampleRate    uint32
	ByteRate      uint32
	BlockAlign    uint16
	BitsPerSample uint16
	DataID        [4]byte
	DataSize      uint32
}

// float32ToWAV encodes mono float32 samples as a 16-bit PCM WAV file.
// Samples are clamped to [-1, 1] before conversion.
func float32ToWAV(samples []float32, sampleRate int) []byte {
	dataSize := uint32(len(samples) * 2)

	hdr := wavHeader{
		RiffID:        [4]byte{'R', 'I', 'F', 'F'},
		RiffSize:      36 + dataSize,
		WaveID:        [4]byte{'W', 'A', 'V', 'E'},
		FmtID:         [4]byte{'f', 'm', 't', ' '},
		FmtSize:       16,
		AudioFormat:   1, // PCM
		NumChannels:   1,
		SampleRate:    uint32(sampleRate),
		ByteRate:      uint32(sampleRate * 2),
		BlockAlign:    2,
		BitsPerSample: 16,
		DataID:        [4]byte{'d', 'a', 't', 'a'},
		DataSize:      dataSize,
	}

	buf := bytes.NewBuffer(make([]byte, 0, 44+int(dataSize)))
	// Writes into a bytes.Buffer cannot fail.
	_ = binary.Write(buf, binary.LittleEndian, hdr)

	var sample [2]byte
	for _, s := range samples {
		if s > 1 {
			s = 1
		} else if s < -1 {
			s = -1
		}
		binary.LittleEndian.PutUint16(sample[:], uint16(int16(s*32767)))
		buf.Write(sample[:])
	}

	return buf.Bytes()
}
