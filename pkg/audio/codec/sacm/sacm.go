// Package sacm is the boundary between record parsing and the speech
// codecs that turn a record payload into PCM.
//
// Codecs register a Factory per codec type. Only the uncompressed types
// are built in; compressed codecs (A3400Pro, S480, ...) plug in through
// Register.
package sacm

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/gpspeech/gpspeech/pkg/audio/pcm"
)

// ErrNoDecoder is returned by Lookup for codec types without a decoder.
var ErrNoDecoder = errors.New("sacm: no decoder for codec type")

// EndMarker is a trailing command record emitted by a decoder after the
// audio stream. Data holds the auxiliary byte pairs of the command.
type EndMarker struct {
	Sample  int       `json:"sample" yaml:"sample"`
	Command int       `json:"command" yaml:"command"`
	Data    [][2]byte `json:"data" yaml:"data"`
}

// String formats the marker as "sample:command aa.bb, cc.dd".
func (m EndMarker) String() string {
	pairs := make([]string, len(m.Data))
	for i, p := range m.Data {
		pairs[i] = fmt.Sprintf("%02x.%02x", p[0], p[1])
	}
	return fmt.Sprintf("%d:%d %s", m.Sample, m.Command, strings.Join(pairs, ", "))
}

// Decoder turns a compressed payload into PCM chunks written to w. It
// reads r until the end of the stream or the codec's end mark.
type Decoder interface {
	Decode(r io.Reader, w pcm.Writer) ([]EndMarker, error)
}

// DecoderFunc adapts a function to the Decoder interface.
type DecoderFunc func(r io.Reader, w pcm.Writer) ([]EndMarker, error)

// Decode implements Decoder.
func (f DecoderFunc) Decode(r io.Reader, w pcm.Writer) ([]EndMarker, error) {
	return f(r, w)
}

// Factory creates a decoder producing audio in the given format.
type Factory func(format pcm.Format) Decoder

var (
	mu       sync.RWMutex
	registry = map[uint16]Factory{}
)

// Register installs a decoder factory for a codec type, replacing any
// previous one.
func Register(codec uint16, f Factory) {
	mu.Lock()
	defer mu.Unlock()
	registry[codec] = f
}

// Lookup returns the factory registered for a codec type.
func Lookup(codec uint16) (Factory, error) {
	mu.RLock()
	defer mu.RUnlock()
	f, ok := registry[codec]
	if !ok {
		return nil, fmt.Errorf("%w %#04x", ErrNoDecoder, codec)
	}
	return f, nil
}

// Codecs returns the registered codec types in ascending order.
func Codecs() []uint16 {
	mu.RLock()
	defer mu.RUnlock()
	ids := make([]uint16, 0, len(registry))
	for id := range registry {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Decode looks up the decoder for codec and runs it.
func Decode(codec uint16, format pcm.Format, r io.Reader, w pcm.Writer) ([]EndMarker, error) {
	f, err := Lookup(codec)
	if err != nil {
		return nil, err
	}
	return f(format).Decode(r, w)
}
