package audio

import (
	"errors"
	"fmt"
	"io"

	"github.com/gopxl/beep/wav"
)

// EncodeWAV renders a sound as a 16-bit stereo WAV file.
func (s *Synth) EncodeWAV(w io.WriteSeeker, snd Sound) error {
	if err := wav.Encode(w, s.Streamer(snd), s.Format()); err != nil {
		return fmt.Errorf("audio: cannot encode %s: %w", snd.Name(), err)
	}
	return nil
}

// WAV renders a sound to an in-memory WAV file.
func (s *Synth) WAV(snd Sound) ([]byte, error) {
	var buf memFile
	if err := s.EncodeWAV(&buf, snd); err != nil {
		return nil, err
	}
	return buf.data, nil
}

// memFile is an in-memory io.WriteSeeker; wav.Encode seeks back to patch
// the header sizes.
type memFile struct {
	data []byte
	pos  int
}

func (m *memFile) Write(p []byte) (int, error) {
	if end := m.pos + len(p); end > len(m.data) {
		m.data = append(m.data, make([]byte, end-len(m.data))...)
	}
	n := copy(m.data[m.pos:], p)
	m.pos += n
	return n, nil
}

func (m *memFile) Seek(offset int64, whence int) (int64, error) {
	var abs int64
	switch whence {
	case io.SeekStart:
		abs = offset
	case io.SeekCurrent:
		abs = int64(m.pos) + offset
	case io.SeekEnd:
		abs = int64(len(m.data)) + offset
	default:
		return 0, errors.New("audio: invalid whence")
	}
	if abs < 0 {
		return 0, errors.New("audio: negative position")
	}
	m.pos = int(abs)
	return abs, nil
}
