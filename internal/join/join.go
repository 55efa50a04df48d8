package join

// Marshaler marshaler
type Marshaler interface {
	Marshal() []byte
}

// Joiner concatenates a fixed header and a payload into one frame
type Joiner struct {
	header  Marshaler
	payload Marshaler
}

// New create joiner
func New(header, payload Marshaler) *Joiner {
	return &Joiner{header: header, payload: payload}
}

// Marshal returns a freshly allocated header+payload frame
func (j *Joiner) Marshal() []byte {
	var hdr, payload []byte
	if j.header != nil {
		hdr = j.header.Marshal()
	}
	if j.payload != nil {
		payload = j.payload.Marshal()
	}
	out := make([]byte, 0, len(hdr)+len(payload))
	out = append(out, hdr...)
	return append(out, payload...)
}
