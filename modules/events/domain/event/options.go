package event

import "strings"

// Values accepted by the backend for the event classification fields.
var (
	Statuses = []string{"Confirmed", "Draft", "Deleted", "Expired"}
	Risks    = []string{"Undefined", "None", "Low", "Medium", "High", "Critical"}
	TLPs     = []string{"Red", "Amber", "Green", "White"}
	Analyses = []string{"None", "Opened", "Stalled", "Completed", "Unknown"}
)

var tlpColours = map[string]string{
	"red":   "#FF0000",
	"amber": "#FFC000",
	"green": "#33FF00",
	"white": "#FFFFFF",
}

// TLPColour returns the display colour of a traffic light protocol level.
func TLPColour(tlp string) string {
	if c, ok := tlpColours[strings.ToLower(tlp)]; ok {
		return c
	}
	return "#FFFFFF"
}
