package analysis

import (
	"synaptology/domain/psp"
)

// AfferentClass is the presumed afferent origin of a deep radial PSP
type AfferentClass string

const (
	IaMonosynaptic AfferentClass = "ia_monosynaptic_epsp"
	IbMonosynaptic AfferentClass = "ib_monosynaptic_epsp"
	IaDisynaptic   AfferentClass = "ia_disynaptic_ipsp"
	IbDisynaptic   AfferentClass = "ib_disynaptic_ipsp"
	Unclassified   AfferentClass = "unclassified"
)

// AfferentClasses lists the classes in display order.
var AfferentClasses = []AfferentClass{IaMonosynaptic, IbMonosynaptic, IaDisynaptic, IbDisynaptic, Unclassified}

// AfferentWindows are the corrected mean latency boundaries (ms) separating Ia from Ib input
type AfferentWindows struct {
	EPSPSeparation float64
	EPSPUpper      float64
	IPSPSeparation float64
}

// DefaultAfferentWindows returns the boundaries used for deep radial recordings.
func DefaultAfferentWindows() AfferentWindows {
	return AfferentWindows{
		EPSPSeparation: 0.85,
		EPSPUpper:      2.3,
		IPSPSeparation: 2.4,
	}
}

// ClassifyAfferent assigns a deep radial record to an afferent class by its mean latency.
// Skin records and EPSPs slower than the upper window are unclassified.
func ClassifyAfferent(r psp.Record, w AfferentWindows) AfferentClass {
	if r.Metadata.SourceClass() != psp.SourceDeepRadial {
		return Unclassified
	}
	l := r.Latency.Mean
	switch {
	case r.Metadata.Excitatory() && l < w.EPSPSeparation:
		return IaMonosynaptic
	case r.Metadata.Excitatory() && l <= w.EPSPUpper:
		return IbMonosynaptic
	case r.Metadata.Inhibitory() && l < w.IPSPSeparation:
		return IaDisynaptic
	case r.Metadata.Inhibitory():
		return IbDisynaptic
	default:
		return Unclassified
	}
}

// ByAfferent groups the deep radial records of c by afferent class, keeping order.
func (c Collection) ByAfferent(w AfferentWindows) map[AfferentClass]Collection {
	out := make(map[AfferentClass]Collection, len(AfferentClasses))
	for _, r := range c.Filter(FromDeepRadial) {
		class := ClassifyAfferent(r, w)
		out[class] = append(out[class], r)
	}
	return out
}
