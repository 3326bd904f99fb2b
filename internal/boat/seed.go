package boat

const unsplash = "https://images.unsplash.com/photo-"
const imageParams = "?auto=format&fit=crop&q=80&w=600"

func img(id string) string { return unsplash + id + imageParams }

// SeedCatalog returns the initial boat catalog. The same rows are inserted by
// the postgres seed migration.
func SeedCatalog() []*Boat {
	return []*Boat{
		{
			ID:          1,
			Name:        "Yamaha 190 FSH Sport",
			Description: "The ideal boat for fishing and family trips, combining comfort and practicality.",
			Price:       5000,
			Capacity:    6,
			Length:      5.8,
			Year:        2022,
			Rating:      4.8,
			Categories:  []string{"fishing", "family"},
			Features:    []string{"Echo sounder", "GPS navigator", "Rod holders", "Cooler", "Audio system"},
			Images:      []string{img("1569263979104-865ab7cd8d13"), img("1575362247640-5981fca3d0d3"), img("1588533588400-9ee75bdf82ce")},
			IsNew:       true,
			Specifications: Specifications{
				Engine: "Yamaha Marine", Power: "115 hp", MaxSpeed: "68 km/h", Fuel: "95 l",
			},
		},
		{
			ID:          2,
			Name:        "Bayliner VR6",
			Description: "A comfortable cruiser for family days and water sports with a spacious deck.",
			Price:       7500,
			Capacity:    8,
			Length:      6.5,
			Year:        2021,
			Rating:      4.6,
			Categories:  []string{"family", "sport"},
			Features:    []string{"Shower", "Sun loungers", "Audio system", "Cooler", "Table"},
			Images:      []string{img("1542902093-d55926049754"), img("1609764441108-25e52be9ab53"), img("1575362247640-5981fca3d0d3")},
			Specifications: Specifications{
				Engine: "MerCruiser", Power: "230 hp", MaxSpeed: "75 km/h", Fuel: "132 l",
			},
		},
		{
			ID:          3,
			Name:        "Sea Ray 250 SLX",
			Description: "A premium cruiser with refined design and top-tier comfort for an unforgettable trip.",
			Price:       9000,
			Capacity:    10,
			Length:      7.6,
			Year:        2023,
			Rating:      4.9,
			Categories:  []string{"luxury", "family"},
			Features:    []string{"Air conditioning", "Premium audio system", "Bar", "Shower", "Toilet", "Cabin"},
			Images:      []string{img("1554254648-2d58a1bc3fd5"), img("1567899378494-47b22a2ae96a"), img("1622022526774-27add6fc6a7d")},
			IsNew:       true,
			Specifications: Specifications{
				Engine: "Mercury", Power: "350 hp", MaxSpeed: "82 km/h", Fuel: "180 l",
			},
		},
		{
			ID:          4,
			Name:        "Boston Whaler 170 Montauk",
			Description: "A dependable fishing boat with excellent stability and plenty of angling features.",
			Price:       4500,
			Capacity:    4,
			Length:      5.2,
			Year:        2020,
			Rating:      4.5,
			Categories:  []string{"fishing"},
			Features:    []string{"Live well", "Rod holders", "Navigation system", "Echo sounder"},
			Images:      []string{img("1564667009085-e5a1c2155df7"), img("1546500840-ae38253aba9b"), img("1575223970966-76ae61ee7838")},
			Specifications: Specifications{
				Engine: "Mercury", Power: "90 hp", MaxSpeed: "60 km/h", Fuel: "75 l",
			},
		},
		{
			ID:          5,
			Name:        "MasterCraft X24",
			Description: "A sport boat for wakeboarding and water skiing with a powerful engine and dedicated gear.",
			Price:       8500,
			Capacity:    6,
			Length:      7.3,
			Year:        2022,
			Rating:      4.7,
			Categories:  []string{"sport", "luxury"},
			Features:    []string{"Wakeboard tower", "Ballast system", "Sport steering wheel", "Audio system"},
			Images:      []string{img("1605281317010-fe5ffe798166"), img("1566526974056-c9e9c8f47405"), img("1577715970163-d449d3689e07")},
			Specifications: Specifications{
				Engine: "Ilmor", Power: "420 hp", MaxSpeed: "85 km/h", Fuel: "155 l",
			},
		},
		{
			ID:          6,
			Name:        "Starcraft SVX 171",
			Description: "A compact and affordable boat for active days on the water and fishing.",
			Price:       3500,
			Capacity:    5,
			Length:      5.2,
			Year:        2019,
			Rating:      4.3,
			Categories:  []string{"fishing", "family"},
			Features:    []string{"Rod holders", "Audio system", "Gear storage"},
			Images:      []string{img("1627416124694-2f9128c64683"), img("1572120360610-d971b9d7767c"), img("1607153333879-c174d265f1d2")},
			Specifications: Specifications{
				Engine: "Yamaha", Power: "75 hp", MaxSpeed: "55 km/h", Fuel: "68 l",
			},
		},
	}
}
