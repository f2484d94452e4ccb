package render

// Mode is the rendering algorithm picked for a zoom level.
type Mode int

const (
	// ModeInterpolated draws one interpolated vertex per column. Used when a
	// raw sample spans more than one column.
	ModeInterpolated Mode = iota
	// ModePeak reduces the raw samples under each column to their extremes.
	ModePeak
	// ModeOverview reduces overview entries under each column.
	ModeOverview
)

func (m Mode) String() string {
	switch m {
	case ModeInterpolated:
		return "INTERPOLATED"
	case ModePeak:
		return "PEAK"
	case ModeOverview:
		return "OVERVIEW"
	default:
		return "UNKNOWN"
	}
}

// Style is how column extremes are drawn.
type Style int

const (
	// StyleLine strokes the column maxima.
	StyleLine Style = iota
	// StyleEnvelope fills between the column maxima and minima.
	StyleEnvelope
)

func (s Style) String() string {
	switch s {
	case StyleLine:
		return "line"
	case StyleEnvelope:
		return "envelope"
	default:
		return "unknown"
	}
}

// SelectMode picks the mode for zoomX pixels per raw sample. With
// samplesPerPixel = 1/zoomX:
//
//	samplesPerPixel < 1               interpolated
//	1 <= samplesPerPixel < decimation peak
//	samplesPerPixel >= decimation     overview
//
// The thresholds are fixed; there is no hysteresis between modes.
func SelectMode(zoomX float64, decimation int) Mode {
	switch {
	case zoomX > 1:
		return ModeInterpolated
	case zoomX*float64(decimation) > 1:
		return ModePeak
	default:
		return ModeOverview
	}
}
