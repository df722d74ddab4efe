package layout

import "fmt"

// SignalKind identifies the source of a score contribution
type SignalKind int

const (
	// SignalFontSize rewards text set larger than the body size
	SignalFontSize SignalKind = iota
	// SignalFontWeight rewards bold text
	SignalFontWeight
	// SignalPattern rewards structural patterns such as "2.3" or "Chapter 4"
	SignalPattern
	// SignalPosition rewards text near the top of the first page
	SignalPosition
	// SignalLength rewards title-like word counts
	SignalLength
	// SignalProximity rewards lines with a comparable neighbour
	SignalProximity
)

// String returns a string representation of the signal kind
func (k SignalKind) String() string {
	switch k {
	case SignalFontSize:
		return "size"
	case SignalFontWeight:
		return "bold"
	case SignalPattern:
		return "pattern"
	case SignalPosition:
		return "position"
	case SignalLength:
		return "length"
	case SignalProximity:
		return "proximity"
	default:
		return "unknown"
	}
}

// Signal is one weighted contribution to a candidate's score
type Signal struct {
	Kind  SignalKind
	Value float64
}

// String returns the signal as "kind=value"
func (s Signal) String() string {
	return fmt.Sprintf("%s=%.2f", s.Kind, s.Value)
}

// Reduce sums the values of signals
func Reduce(signals []Signal) float64 {
	total := 0.0
	for _, s := range signals {
		total += s.Value
	}
	return total
}

// appendSignal adds a signal when it contributes
func appendSignal(signals []Signal, kind SignalKind, value float64) []Signal {
	if value == 0 {
		return signals
	}
	return append(signals, Signal{Kind: kind, Value: value})
}
