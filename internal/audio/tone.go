package audio

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"sort"
	"time"
)

// PCM format used for every generated tone: 8 kHz, mono, signed 16-bit LE.
const (
	SampleRate = 8000
	Amplitude  = 0.4
)

// Tone is a plain sine beep.
type Tone struct {
	Freq     float64       // Hz
	Duration time.Duration // length of the beep
}

// Bank maps a game's cues to their tones.
type Bank map[Cue]Tone

// Cues returns the bank's cue names in sorted order.
func (b Bank) Cues() []Cue {
	cues := make([]Cue, 0, len(b))
	for c := range b {
		cues = append(cues, c)
	}
	sort.Slice(cues, func(i, j int) bool { return cues[i] < cues[j] })
	return cues
}

// Samples returns how many samples the tone spans.
func (t Tone) Samples() int {
	return int(t.Duration.Seconds() * SampleRate)
}

// Synthesize renders the tone as little-endian 16-bit PCM.
func Synthesize(t Tone) []byte {
	n := t.Samples()
	buf := make([]byte, 2*n)
	step := 2 * math.Pi * t.Freq / SampleRate
	angle := 0.0
	for i := 0; i < n; i++ {
		v := int16(math.Sin(angle) * 32767 * Amplitude)
		binary.LittleEndian.PutUint16(buf[2*i:], uint16(v))
		angle += step
	}
	return buf
}

// WriteWAV writes the tone as a RIFF/WAVE file.
func WriteWAV(w io.Writer, t Tone) error {
	pcm := Synthesize(t)

	const (
		channels      = 1
		bitsPerSample = 16
		blockAlign    = channels * bitsPerSample / 8
		byteRate      = SampleRate * blockAlign
	)

	header := []any{
		[4]byte{'R', 'I', 'F', 'F'},
		uint32(36 + len(pcm)),
		[4]byte{'W', 'A', 'V', 'E'},
		[4]byte{'f', 'm', 't', ' '},
		uint32(16), // fmt chunk size
		uint16(1),  // PCM
		uint16(channels),
		uint32(SampleRate),
		uint32(byteRate),
		uint16(blockAlign),
		uint16(bitsPerSample),
		[4]byte{'d', 'a', 't', 'a'},
		uint32(len(pcm)),
	}
	for _, field := range header {
		if err := binary.Write(w, binary.LittleEndian, field); err != nil {
			return fmt.Errorf("audio: write wav header: %w", err)
		}
	}
	if _, err := w.Write(pcm); err != nil {
		return fmt.Errorf("audio: write wav data: %w", err)
	}
	return nil
}
