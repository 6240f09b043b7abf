package models

// Envelope is an encoded protocol message ready for the wire together with
// the route it was sealed against. Only Data is transmitted.
type Envelope struct {
	Route Route
	Data  []byte
}
