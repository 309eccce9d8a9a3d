package ctcnet

// subnetwork adapts a Network to the Contractor interface so that it can be
// nested in a larger network with AddNetwork.
type subnetwork struct {
	net *Network
}

func (s *subnetwork) Arity() int { return Variadic }

// Contract runs the nested network to its fixpoint. The parent passes the
// nested network's own domains, so changes are detected by revision.
func (s *subnetwork) Contract(doms []Domain) bool {
	before := make([]uint64, len(doms))
	for i, d := range doms {
		before[i] = d.Revision()
	}
	s.net.Contract(true)
	for i, d := range doms {
		if d.Revision() != before[i] {
			return true
		}
	}
	return false
}

func (s *subnetwork) String() string {
	return "network " + shortID(s.net.id)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[len(id)-8:]
	}
	return id
}
