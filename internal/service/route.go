// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import "github.com/MKhiriev/go-secmsg-directory/models"

// DefaultRelayHops is the number of relay candidates appended after the
// destination of a connection route.
const DefaultRelayHops = 3

// BuildDirectRoute returns a one-hop route to address/key. Responses to
// login, register and public key requests travel back to the requester
// over such a route.
func BuildDirectRoute(address string, key models.Key) models.Route {
	return models.Route{{Address: address, PublicKey: key}}
}

// BuildRelayRoute returns destination followed by the first hops peers,
// in the order given. Selection is deterministic: identical inputs always
// produce the identical route, so the route provides no unlinkability.
func BuildRelayRoute(destination models.Hop, peers []models.User, hops int) models.Route {
	n := max(0, min(hops, len(peers)))

	route := make(models.Route, 0, n+1)
	route = append(route, destination)
	for _, p := range peers[:n] {
		route = append(route, p.Hop())
	}

	return route
}
