package node

import "github.com/irisforge/irisd/internal/profile"

// ShouldDelegateToRemote returns the id of a node to delegate to, iff the
// registry has an available node matching the "general" capability and
// the profile's risk/speed knobs favor offloading work remotely.
func ShouldDelegateToRemote(registry *Registry, p profile.Profile) (string, bool) {
	if p.RiskTolerance < 0.3 || p.SpeedVsAccuracy > 0.7 {
		return "", false
	}
	n, ok := registry.FindAvailable([]string{"general"})
	if !ok {
		return "", false
	}
	return n.ID, true
}
