package statement

import (
	"regexp"

	"github.com/de-tools/paas-statements/pkg/models/domain"
)

const ConduitTunnelName = "conduit-tunnel"

var conduitPattern = regexp.MustCompile(`__conduit_\d+__`)

// Normalize returns a copy of events with every per-session conduit resource
// name collapsed into ConduitTunnelName. Order is preserved.
func Normalize(events []domain.BillableEvent) []domain.BillableEvent {
	out := make([]domain.BillableEvent, len(events))
	for i, ev := range events {
		ev.ResourceName = CanonicalResourceName(ev.ResourceName)
		out[i] = ev
	}
	return out
}

func CanonicalResourceName(name string) string {
	if conduitPattern.MatchString(name) {
		return ConduitTunnelName
	}
	return name
}
