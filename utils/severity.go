package utils

// Severity weights are fixed design constants: blood is weighted highest
// (clinical priority), Bristol deviation lowest. Downstream statistics depend
// on this function being deterministic, so keep it free of floats-from-env,
// randomness, or clock reads.
const (
	BristolReference = 4 // Bristol type 4 is the "normal" reference point

	bristolWeight = 1
	urgencyWeight = 2
	bloodWeight   = 3
	painWeight    = 2
)

// SymptomSeverity converts one symptom event into a scalar severity:
//
//	|bristol - 4|*1 + urgency*2 + blood*3 + pain*2
func SymptomSeverity(bristolType, urgency, blood, pain int) float64 {
	dev := bristolType - BristolReference
	if dev < 0 {
		dev = -dev
	}
	return float64(dev*bristolWeight + urgency*urgencyWeight + blood*bloodWeight + pain*painWeight)
}
