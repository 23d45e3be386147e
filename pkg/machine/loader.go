package machine

import (
	"encoding/binary"
	"fmt"
	"io"
)

// LoadImage parses an .obj stream: big-endian 16-bit words, the first of
// which is the load origin. Returns machine state ready to run.
func LoadImage(r io.Reader) (*State, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if len(raw)%2 != 0 {
		return nil, fmt.Errorf("object file is not aligned to 16-bit words")
	}
	if len(raw) < 2 {
		return nil, fmt.Errorf("object file has no origin word")
	}

	words := make([]uint16, len(raw)/2)
	for i := range words {
		words[i] = binary.BigEndian.Uint16(raw[i*2:])
	}
	return NewState(words[0], words[1:])
}

// WriteImage emits the .obj representation of an origin and word image.
func WriteImage(w io.Writer, orig uint16, image []uint16) error {
	scratch := make([]byte, 2)
	for _, word := range append([]uint16{orig}, image...) {
		binary.BigEndian.PutUint16(scratch, word)
		if _, err := w.Write(scratch); err != nil {
			return err
		}
	}
	return nil
}
