package seatmap

import "strings"

// Seat characteristic codes (IATA PADIS 9825 subset used by the seatmap display API).
const (
	CodeExit      = "E"
	CodeLegroom   = "L"
	CodeBulkhead  = "K"
	CodePreferred = "O"
	CodeWindow    = "W"
	CodeAisle     = "A"
	CodeCenter    = "9"
	CodeBassinet  = "B"
)

// Facility codes.
const (
	FacilityLavatory = "LA"
	FacilityGalley   = "GA"
	FacilityStairs   = "ST"
	FacilityCloset   = "CL"
	FacilityStorage  = "SO"
	FacilityBar      = "BA"
	FacilityExitDoor = "D"
)

var facilityNames = map[string]string{
	FacilityLavatory: "Lavatory",
	FacilityGalley:   "Galley",
	FacilityStairs:   "Stairs",
	FacilityCloset:   "Closet",
	FacilityStorage:  "Storage",
	FacilityBar:      "Bar",
	FacilityExitDoor: "Exit door",
}

// FacilityName resolves a facility code, preferring the dictionary sent with the seatmap.
func FacilityName(code string, dictionary map[string]string) string {
	if name, ok := dictionary[code]; ok && name != "" {
		return name
	}
	if name, ok := facilityNames[strings.ToUpper(code)]; ok {
		return name
	}
	return code
}

var premiumCabins = map[string]bool{
	"FIRST":           true,
	"BUSINESS":        true,
	"PREMIUM_ECONOMY": true,
}

func isPremiumCabin(cabin string) bool {
	return premiumCabins[strings.ToUpper(strings.TrimSpace(cabin))]
}
