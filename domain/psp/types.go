// Package psp models postsynaptic potential measurements: the metadata encoded in a
// recording's filename and the corrected latency/amplitude samples loaded from it.
package psp

// Source codes are the canonical (lowercased, sorted) electrode letters.
const (
	SourceCodeSkin       = "ikns"
	SourceCodeSkinRS     = "rs"
	SourceCodeSkinMulti  = "iklnnsu"
	SourceCodeDeepRadial = "dr"
)

// UnknownSkinLatency is substituted when a subject has no skin latency on record.
const UnknownSkinLatency = 101010.0

// SentinelThreshold marks skin latencies at or above it as unknown.
const SentinelThreshold = 100.0

// DefaultDeepRadialCorrection is the conduction delay (ms) subtracted from deep radial latencies.
const DefaultDeepRadialCorrection = 1.7

// SourceClass groups source codes by electrode placement.
type SourceClass string

const (
	SourceSkin       SourceClass = "skin"
	SourceDeepRadial SourceClass = "deep_radial"
	SourceUnknown    SourceClass = "unknown"
)

var skinCodes = map[string]bool{
	SourceCodeSkin:      true,
	SourceCodeSkinRS:    true,
	SourceCodeSkinMulti: true,
}

// ClassifySource maps a canonical source code to its class.
func ClassifySource(code string) SourceClass {
	switch {
	case skinCodes[code]:
		return SourceSkin
	case code == SourceCodeDeepRadial:
		return SourceDeepRadial
	default:
		return SourceUnknown
	}
}

// FilenameMetadata is the typed content of a measurement filename.
type FilenameMetadata struct {
	SubjectID        string `json:"subject_id"`
	Description      string `json:"description"`
	Source           string `json:"source"`
	StimulationLevel int    `json:"stimulation_level"`
	SynapticSign     int    `json:"synaptic_sign"`
	Amplitude        int    `json:"amplitude"`
}

// SourceClass returns the electrode class of the metadata's source.
func (m FilenameMetadata) SourceClass() SourceClass {
	return ClassifySource(m.Source)
}

// Inhibitory reports a negative synaptic sign.
func (m FilenameMetadata) Inhibitory() bool { return m.SynapticSign < 0 }

// Excitatory reports a positive synaptic sign.
func (m FilenameMetadata) Excitatory() bool { return m.SynapticSign > 0 }

// Stats holds the summary statistics of one measured quantity.
type Stats struct {
	Mean     float64 `json:"mean"`
	Variance float64 `json:"variance"`
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
}

// Correction configures latency offsets applied at load time.
type Correction struct {
	DeepRadialMs float64
}

// DefaultCorrection returns the standard deep radial conduction delay.
func DefaultCorrection() Correction {
	return Correction{DeepRadialMs: DefaultDeepRadialCorrection}
}
