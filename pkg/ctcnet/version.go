// Package ctcnet implements Contractor Networks: constraint propagation over
// shared, shrink-only domains such as intervals and interval vectors.
//
// Version: 0.3.0
//
// A network is a bipartite graph of domains and contractors. Each
// contractor narrows the domains it is wired to without removing any
// solution; the network schedules contractors on a worklist until no
// domain shrinks significantly any more (a fixpoint) or a time or
// iteration budget runs out. Reaching an empty domain means the
// constraints have no solution and is reported as a state, not an error.
//
//	x := ctcnet.NewVar(interval.New(0, 10))
//	y := ctcnet.NewVar(interval.New(0, 10))
//	n := ctcnet.New()
//	if err := n.Add(ctc.NewOffset(1), x, y); err != nil { // y = x + 1
//		return err
//	}
//	n.Contract(true) // x = [0, 9], y = [1, 10]
package ctcnet

import "runtime"

// Version represents the current version of the ctcnet engine.
const Version = "0.3.0"

// VersionInfo provides detailed version information.
type VersionInfo struct {
	Version   string `json:"version"`
	GoVersion string `json:"go_version"`
	GitCommit string `json:"git_commit,omitempty"`
	BuildDate string `json:"build_date,omitempty"`
}

// GetVersion returns the current version string.
func GetVersion() string {
	return Version
}

// GetVersionInfo returns detailed version information. GitCommit and
// BuildDate are filled by the CLI from linker flags.
func GetVersionInfo() VersionInfo {
	return VersionInfo{
		Version:   Version,
		GoVersion: runtime.Version(),
	}
}
