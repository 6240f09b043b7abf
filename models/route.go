package models

// Hop is one network hop of a route: where to send and whom to encrypt for.
type Hop struct {
	Address   string `json:"addr"`
	PublicKey Key    `json:"public_key"`
}

// Route is an ordered list of hops. Element 0 is always the final
// destination; the remaining elements are relay candidates.
type Route []Hop

// Destination returns the first hop of the route and false if the route
// is empty.
func (r Route) Destination() (Hop, bool) {
	if len(r) == 0 {
		return Hop{}, false
	}
	return r[0], true
}

// Relays returns the hops after the destination.
func (r Route) Relays() []Hop {
	if len(r) < 2 {
		return nil
	}
	return r[1:]
}
