package join

// Bytes raw payload
type Bytes []byte

// Marshal marshal bytes
func (b Bytes) Marshal() []byte {
	return b
}
