package greenops

import (
	"fmt"
	"slices"
)

// sdgNames holds the short UN titles of the goals the catalog may carry.
//
//nolint:gochecknoglobals // Read-only lookup table.
var sdgNames = map[int]string{
	SDGGoodHealth:        "Good Health and Well-being",
	SDGCleanWater:        "Clean Water and Sanitation",
	SDGCleanEnergy:       "Affordable and Clean Energy",
	SDGDecentWork:        "Decent Work and Economic Growth",
	SDGIndustry:          "Industry, Innovation and Infrastructure",
	SDGSustainableCities: "Sustainable Cities and Communities",
	SDGConsumption:       "Responsible Consumption and Production",
	SDGClimateAction:     "Climate Action",
	SDGLifeBelowWater:    "Life Below Water",
	SDGLifeOnLand:        "Life on Land",
}

// SDGIconURL returns the UN icon URL for goal id.
func SDGIconURL(id int) string {
	return fmt.Sprintf(SDGIconURLFormat, id)
}

// SDGName returns the goal's title, or "SDG n" for goals without one.
func SDGName(id int) string {
	if name, ok := sdgNames[id]; ok {
		return name
	}
	return fmt.Sprintf("SDG %d", id)
}

// SDGIcons maps goal ids to display metadata, sorted by id.
func SDGIcons(ids []int) []SDGIcon {
	sorted := slices.Clone(ids)
	slices.Sort(sorted)
	sorted = slices.Compact(sorted)

	icons := make([]SDGIcon, 0, len(sorted))
	for _, id := range sorted {
		icons = append(icons, SDGIcon{ID: id, Name: SDGName(id), IconURL: SDGIconURL(id)})
	}
	return icons
}
