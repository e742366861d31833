package finder

import "github.com/poiesic/smartfind/highlight"

// Monitor provides hooks to observe a search.
// Implement this interface to track intermediate steps and results.
// Hooks run on the searching goroutine; Start and Finish run with the
// finder locked and must not call back into it.
type Monitor interface {
	Start(query string)
	AfterExpansion(related []string, err error)
	AfterMatch(groups []highlight.NodeMatches)
	Finish(result Result)
}

// noopMonitor is a no-op implementation of Monitor
type noopMonitor struct{}

var _ Monitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string) {}
func (n *noopMonitor) AfterExpansion(_ []string, _ error) {}
func (n *noopMonitor) AfterMatch(_ []highlight.NodeMatches) {}
func (n *noopMonitor) Finish(_ Result) {}
