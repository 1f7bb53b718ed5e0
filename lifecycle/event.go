package lifecycle

import "fmt"

// Kind identifies a lifecycle transition.
type Kind uint8

const (
	KindConstructed Kind = iota
	KindCopied
	KindMoved
	KindDestroyed
	KindVacated
	KindDoubleRelease
)

var kindNames = [...]string{
	KindConstructed:   "constructed",
	KindCopied:        "copied",
	KindMoved:         "moved",
	KindDestroyed:     "destroyed",
	KindVacated:       "vacated",
	KindDoubleRelease: "double_release",
}

// String returns the wire name of the kind.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(text []byte) error {
	for i, name := range kindNames {
		if name == string(text) {
			*k = Kind(i)
			return nil
		}
	}
	return fmt.Errorf("unknown lifecycle kind %q", text)
}

// Event is a single lifecycle transition of one value.
type Event struct {
	Seq  uint64 `json:"seq" yaml:"seq"`
	Kind Kind   `json:"kind" yaml:"kind"`
	ID   int    `json:"id" yaml:"id"`
}

func (e Event) String() string {
	return fmt.Sprintf("#%d %s(%d)", e.Seq, e.Kind, e.ID)
}

// Sink receives lifecycle events in the order they occur.
type Sink interface {
	Record(Event)
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(Event)

// Record calls f(e).
func (f SinkFunc) Record(e Event) {
	f(e)
}

// MultiSink fans every event out to each sink in order.
type MultiSink []Sink

// Record implements Sink.
func (m MultiSink) Record(e Event) {
	for _, s := range m {
		s.Record(e)
	}
}
