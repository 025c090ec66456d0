package service

import (
	"github.com/shopspring/decimal"

	"memorial-backend/internal/domains/provider/model"
)

// SeedCatalog is the built-in provider directory, centered on the
// Portland metro area.
func SeedCatalog() []model.Provider {
	return []model.Provider{
		{
			ID:            "prov-riverview-funeral",
			Name:          "Riverview Funeral Home",
			Category:      model.CategoryFuneralHome,
			Description:   "Full-service funeral home with chapel and reception hall.",
			Phone:         "+1-503-555-0101",
			Website:       "https://riverview-funeral.example.com",
			City:          "Portland",
			Latitude:      45.5231,
			Longitude:     -122.6765,
			StartingPrice: decimal.NewFromInt(2950),
			Rating:        4.8,
		},
		{
			ID:            "prov-evergreen-cremation",
			Name:          "Evergreen Cremation Services",
			Category:      model.CategoryFuneralHome,
			Description:   "Simple cremation and memorial planning.",
			Phone:         "+1-503-555-0102",
			City:          "Beaverton",
			Latitude:      45.4871,
			Longitude:     -122.8037,
			StartingPrice: decimal.NewFromInt(1195),
			Rating:        4.6,
		},
		{
			ID:            "prov-lily-and-fern",
			Name:          "Lily & Fern Florists",
			Category:      model.CategoryFlorist,
			Description:   "Sympathy arrangements, casket sprays and standing wreaths.",
			Phone:         "+1-503-555-0110",
			Website:       "https://lilyandfern.example.com",
			City:          "Portland",
			Latitude:      45.5152,
			Longitude:     -122.6784,
			StartingPrice: decimal.NewFromInt(85),
			Rating:        4.9,
		},
		{
			ID:            "prov-gather-table",
			Name:          "Gather Table Catering",
			Category:      model.CategoryCaterer,
			Description:   "Reception catering for memorial services, 20 to 300 guests.",
			Phone:         "+1-503-555-0120",
			City:          "Lake Oswego",
			Latitude:      45.4207,
			Longitude:     -122.6706,
			StartingPrice: decimal.NewFromInt(450),
			Rating:        4.5,
		},
		{
			ID:            "prov-granite-legacy",
			Name:          "Granite Legacy Monuments",
			Category:      model.CategoryMonument,
			Description:   "Custom headstones, markers and memorial benches.",
			Phone:         "+1-503-555-0130",
			City:          "Gresham",
			Latitude:      45.5001,
			Longitude:     -122.4302,
			StartingPrice: decimal.NewFromInt(1200),
			Rating:        4.7,
		},
		{
			ID:            "prov-stillwater-counseling",
			Name:          "Stillwater Grief Counseling",
			Category:      model.CategoryGriefCare,
			Description:   "Individual and group grief support, in person and online.",
			Phone:         "+1-503-555-0140",
			Website:       "https://stillwater-counseling.example.com",
			City:          "Portland",
			Latitude:      45.5428,
			Longitude:     -122.6544,
			StartingPrice: decimal.NewFromInt(120),
			Rating:        5.0,
		},
	}
}
