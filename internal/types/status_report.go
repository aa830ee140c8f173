package types

import (
	"bytes"
	"encoding/json"
)

// StatusReport maps metric display names to condition statuses while
// preserving the order in which names were first inserted. Setting a name
// that already exists replaces its status but keeps its original position.
type StatusReport struct {
	names  []string
	status map[string]string
}

func NewStatusReport() *StatusReport {
	return &StatusReport{status: make(map[string]string)}
}

// Set records the status for a metric name. First insertion fixes the
// name's position; later calls with the same name only update the status.
func (r *StatusReport) Set(name, status string) {
	if _, ok := r.status[name]; !ok {
		r.names = append(r.names, name)
	}
	r.status[name] = status
}

// Get returns the status for a metric name.
func (r *StatusReport) Get(name string) (string, bool) {
	s, ok := r.status[name]
	return s, ok
}

// Names returns metric names in insertion order. The returned slice is a
// copy and safe to modify.
func (r *StatusReport) Names() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

func (r *StatusReport) Len() int {
	return len(r.names)
}

// MarshalJSON encodes the report as a JSON object with keys in insertion
// order. encoding/json would otherwise sort map keys.
func (r *StatusReport) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range r.names {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(r.status[name])
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
