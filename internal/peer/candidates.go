package peer

import (
	"net"
	"strconv"
	"strings"

	"github.com/MKhiriev/go-balance-sync/internal/config"
)

// gatherCandidates lists the addresses the initiator should try when dialing
// this device, most likely to succeed first.
//
// When the listener is bound to a specific host, that host is the only local
// candidate. Otherwise every usable interface address is offered: LAN
// addresses first, loopback last so two agents on one machine can still
// pair. The remote profile appends the user's relay servers after the local
// candidates; any other profile value behaves like local.
func gatherCandidates(profile, listenHost string, port int, relays []string) ([]string, error) {
	var candidates []string

	if ip := net.ParseIP(listenHost); listenHost != "" && (ip == nil || !ip.IsUnspecified()) {
		candidates = append(candidates, net.JoinHostPort(listenHost, strconv.Itoa(port)))
	} else {
		candidates = append(candidates, interfaceCandidates(port)...)
	}

	if profile == config.PairingProfileRemote {
		for _, relay := range relays {
			relay = strings.TrimSpace(relay)
			if relay == "" {
				continue
			}
			candidates = append(candidates, relay)
		}
	}

	if len(candidates) == 0 {
		return nil, ErrNoCandidates
	}
	return candidates, nil
}

// interfaceCandidates enumerates local interface addresses and stitches the
// listener port onto each. Link-local addresses are skipped; loopback goes
// to the end of the list.
func interfaceCandidates(port int) []string {
	addrs, err := net.InterfaceAddrs()
	if err != nil {
		return []string{net.JoinHostPort("127.0.0.1", strconv.Itoa(port))}
	}

	var lan, loopback []string
	for _, addr := range addrs {
		ipNet, ok := addr.(*net.IPNet)
		if !ok || ipNet.IP == nil {
			continue
		}
		ip := ipNet.IP
		if ip.IsLinkLocalUnicast() || ip.IsLinkLocalMulticast() {
			continue
		}

		host := ip.String()
		if v4 := ip.To4(); v4 != nil {
			host = v4.String()
		}
		candidate := net.JoinHostPort(host, strconv.Itoa(port))

		if ip.IsLoopback() {
			loopback = append(loopback, candidate)
			continue
		}
		lan = append(lan, candidate)
	}

	return append(lan, loopback...)
}
