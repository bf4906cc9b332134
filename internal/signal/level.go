package signal

// RSRP thresholds in dBm, inclusive lower bounds
const (
	rsrpExcellent = -80
	rsrpGood      = -90
	rsrpFair      = -100
	rsrpPoor      = -110
	rsrpVeryPoor  = -120
)

// RSRQ thresholds in dB, inclusive lower bounds
const (
	rsrqExcellent = -3
	rsrqGood      = -8
	rsrqFair      = -12
	rsrqPoor      = -16
	rsrqVeryPoor  = -19
)

// Level represents a signal quality band, ordered worst to best
type Level int

const (
	NoSignal Level = iota
	VeryPoor
	Poor
	Fair
	Good
	Excellent
)

// levelInfo holds the display attributes for each level
type levelInfo struct {
	label string
	color string
}

var levelTable = map[Level]levelInfo{
	Excellent: {"Excellent", "#00C851"},
	Good:      {"Good", "#7CB342"},
	Fair:      {"Fair", "#FFB300"},
	Poor:      {"Poor", "#FF6F00"},
	VeryPoor:  {"Very Poor", "#F44336"},
	NoSignal:  {"No Signal", "#FF8080"},
}

// Label returns the human-readable name of the level
func (l Level) Label() string {
	return levelTable[l].label
}

// Color returns the hex color associated with the level
func (l Level) Color() string {
	return levelTable[l].color
}

func (l Level) String() string {
	return l.Label()
}

// ClassifyRSRP maps an RSRP value (dBm) to a signal level
func ClassifyRSRP(rsrp int) Level {
	switch {
	case rsrp >= rsrpExcellent:
		return Excellent
	case rsrp >= rsrpGood:
		return Good
	case rsrp >= rsrpFair:
		return Fair
	case rsrp >= rsrpPoor:
		return Poor
	case rsrp >= rsrpVeryPoor:
		return VeryPoor
	default:
		return NoSignal
	}
}

// ClassifyRSRQ maps an RSRQ value (dB) to a signal level
func ClassifyRSRQ(rsrq int) Level {
	switch {
	case rsrq >= rsrqExcellent:
		return Excellent
	case rsrq >= rsrqGood:
		return Good
	case rsrq >= rsrqFair:
		return Fair
	case rsrq >= rsrqPoor:
		return Poor
	case rsrq >= rsrqVeryPoor:
		return VeryPoor
	default:
		return NoSignal
	}
}

// Combined returns the worse of the RSRP and RSRQ levels
func Combined(rsrp, rsrq int) Level {
	rsrpLevel := ClassifyRSRP(rsrp)
	rsrqLevel := ClassifyRSRQ(rsrq)
	if rsrpLevel < rsrqLevel {
		return rsrpLevel
	}
	return rsrqLevel
}
