package stats

import (
	"math"
	"time"

	"github.com/nekogravitycat/boat-rental-backend/internal/boat"
)

const recommendationMonths = 3

type PriceRecommendation struct {
	YearMonth
	Recommended float64
	Min         float64
	Max         float64
	ChangePct   float64
}

type BoatRecommendations struct {
	BoatID          int64
	BoatName        string
	CurrentPrice    float64
	Recommendations []PriceRecommendation
}

// Recommendations suggests per-boat prices for up to three months starting at
// now's month. Each month pairs with the next positive forecast in points.
// For demand and occupancy the price also moves by a tenth of the forecast's
// ratio to the first observed value.
func Recommendations(boats []*boat.Boat, points []ForecastPoint, metric Metric, now time.Time) []BoatRecommendations {
	out := make([]BoatRecommendations, 0, len(boats))
	if len(points) == 0 {
		return out
	}

	var forecasts []ForecastPoint
	for _, p := range points {
		if p.IsForecast && p.Forecast > 0 {
			forecasts = append(forecasts, p)
		}
	}
	if len(forecasts) > recommendationMonths {
		forecasts = forecasts[:recommendationMonths]
	}

	reference := points[0].Actual
	if reference == 0 {
		reference = 1
	}
	current := monthOf(now)

	for _, b := range boats {
		recs := make([]PriceRecommendation, 0, len(forecasts))
		for i, f := range forecasts {
			month := current.Add(i)

			var adjustment float64
			if metric == MetricDemand || metric == MetricOccupancy {
				adjustment = (f.Forecast/reference - 1) * 0.1
			}

			recommended := math.Round(b.Price * (1 + (seasonality(month.Month)-1)*0.5 + adjustment))
			recs = append(recs, PriceRecommendation{
				YearMonth:   month,
				Recommended: recommended,
				Min:         math.Round(recommended * 0.9),
				Max:         math.Round(recommended * 1.1),
				ChangePct:   math.Round((recommended/b.Price - 1) * 100),
			})
		}
		out = append(out, BoatRecommendations{
			BoatID:          b.ID,
			BoatName:        b.Name,
			CurrentPrice:    b.Price,
			Recommendations: recs,
		})
	}
	return out
}
