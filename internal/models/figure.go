package models

const (
	TraceLines   = "lines"
	TraceMarkers = "markers"
	TraceBar     = "bar"
)

// Trace is one data series of a figure. Bar traces carry category Labels
// instead of numeric X values; scatter traces carry point labels in Text.
type Trace struct {
	Type   string    `json:"type"`
	Mode   string    `json:"mode,omitempty"`
	Name   string    `json:"name"`
	X      []float64 `json:"x,omitempty"`
	Labels []string  `json:"labels,omitempty"`
	Y      []float64 `json:"y"`
	Text   []string  `json:"text,omitempty"`
}

type Layout struct {
	Title      string `json:"title"`
	Subtitle   string `json:"subtitle,omitempty"`
	XAxisTitle string `json:"xaxis_title"`
	YAxisTitle string `json:"yaxis_title"`
}

type Figure struct {
	ID     string  `json:"id"`
	Data   []Trace `json:"data"`
	Layout Layout  `json:"layout"`
}

func (f Figure) Empty() bool {
	for _, t := range f.Data {
		if len(t.Y) > 0 {
			return false
		}
	}
	return true
}
