package utils

import (
	"errors"
	"net"
	"strconv"
)

// ErrNoPeerAddress is returned when a connection has no usable remote IP.
var ErrNoPeerAddress = errors.New("peer address is not an IP endpoint")

// PeerAddress derives the directory-visible address of a peer: the remote
// IP of its connection joined with the well-known peer listening port.
// The ephemeral source port of the connection is discarded.
//
// IPv4 peers (including IPv4-mapped IPv6) yield "a.b.c.d:port"; IPv6 peers
// yield "[addr]:port".
func PeerAddress(remote net.Addr, peerPort int) (string, error) {
	ip, err := remoteIP(remote)
	if err != nil {
		return "", err
	}

	if v4 := ip.To4(); v4 != nil {
		ip = v4
	}

	return net.JoinHostPort(ip.String(), strconv.Itoa(peerPort)), nil
}

func remoteIP(remote net.Addr) (net.IP, error) {
	switch a := remote.(type) {
	case *net.TCPAddr:
		if a == nil || a.IP == nil {
			return nil, ErrNoPeerAddress
		}
		return a.IP, nil
	case nil:
		return nil, ErrNoPeerAddress
	default:
		host, _, err := net.SplitHostPort(remote.String())
		if err != nil {
			return nil, ErrNoPeerAddress
		}
		ip := net.ParseIP(host)
		if ip == nil {
			return nil, ErrNoPeerAddress
		}
		return ip, nil
	}
}

// HostOf returns the IP part of a remote address, or the address string
// itself if it cannot be split. Used as the rate-limit key.
func HostOf(remote net.Addr) string {
	if ip, err := remoteIP(remote); err == nil {
		return ip.String()
	}
	if remote == nil {
		return ""
	}
	return remote.String()
}
