package utils

import (
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pipeAddr struct{}

func (pipeAddr) Network() string { return "pipe" }
func (pipeAddr) String() string  { return "pipe" }

func TestPeerAddress(t *testing.T) {
	tests := []struct {
		name   string
		remote net.Addr
		want   string
	}{
		{"ipv4", &net.TCPAddr{IP: net.ParseIP("192.168.1.7"), Port: 53211}, "192.168.1.7:5000"},
		{"ipv4 mapped", &net.TCPAddr{IP: net.ParseIP("::ffff:10.0.0.1"), Port: 1}, "10.0.0.1:5000"},
		{"ipv6", &net.TCPAddr{IP: net.ParseIP("2001:db8::1"), Port: 40000}, "[2001:db8::1]:5000"},
		{"udp addr string form", &net.UDPAddr{IP: net.ParseIP("127.0.0.1"), Port: 9}, "127.0.0.1:5000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := PeerAddress(tt.remote, 5000)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPeerAddress_NotAnIP(t *testing.T) {
	_, err := PeerAddress(pipeAddr{}, 5000)
	assert.ErrorIs(t, err, ErrNoPeerAddress)

	_, err = PeerAddress(nil, 5000)
	assert.ErrorIs(t, err, ErrNoPeerAddress)

	_, err = PeerAddress(&net.TCPAddr{}, 5000)
	assert.ErrorIs(t, err, ErrNoPeerAddress)
}

func TestHostOf(t *testing.T) {
	assert.Equal(t, "10.1.2.3", HostOf(&net.TCPAddr{IP: net.ParseIP("10.1.2.3"), Port: 80}))
	assert.Equal(t, "pipe", HostOf(pipeAddr{}))
	assert.Equal(t, "", HostOf(nil))
}
