package derive

import "github.com/newthinker/treasury/internal/core"

// PeerAverage holds industry averages computed from peers.
type PeerAverage struct {
	PERatio      float64
	CurrentRatio float64
	Count        int
}

// PeerAverages averages P/E and current ratio over every peer except the
// first, which is the queried company. It returns false with fewer than
// two peers.
func PeerAverages(peers []core.Peer) (PeerAverage, bool) {
	if len(peers) < 2 {
		return PeerAverage{}, false
	}

	others := peers[1:]
	var pe, cr float64
	for _, p := range others {
		pe += p.PERatio.Float()
		cr += p.CurrentRatio.Float()
	}

	n := float64(len(others))
	return PeerAverage{
		PERatio:      pe / n,
		CurrentRatio: cr / n,
		Count:        len(others),
	}, true
}
