package http

import (
	"fmt"
	"time"

	"github.com/nekogravitycat/boat-rental-backend/internal/stats"
)

func label(ym stats.YearMonth) string {
	return fmt.Sprintf("%04d-%02d", ym.Year, int(ym.Month))
}

type ForecastRequest struct {
	Metric string `form:"metric" binding:"omitempty,oneof=occupancy revenue demand"`
	Period string `form:"period" binding:"omitempty,oneof=month quarter year"`
}

type OccupancyRequest struct {
	Period string `form:"period" binding:"omitempty,oneof=week month quarter"`
	BoatID int64  `form:"boatId" binding:"omitempty,min=1"`
}

type StatusCountResponse struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

type MonthCountResponse struct {
	Month string `json:"month"`
	Count int    `json:"count"`
}

type MonthIncomeResponse struct {
	Month  string  `json:"month"`
	Income float64 `json:"income"`
}

type IncomeResponse struct {
	TotalIncome         float64               `json:"totalIncome"`
	AverageBookingValue float64               `json:"averageBookingValue"`
	IncomeByMonth       []MonthIncomeResponse `json:"incomeByMonth"`
}

type SummaryResponse struct {
	Statuses []StatusCountResponse `json:"statuses"`
	Monthly  []MonthCountResponse  `json:"monthly"`
	Income   IncomeResponse        `json:"income"`
}

func NewSummaryResponse(d *stats.Dashboard) SummaryResponse {
	resp := SummaryResponse{
		Statuses: make([]StatusCountResponse, len(d.Statuses)),
		Monthly:  make([]MonthCountResponse, len(d.Monthly)),
		Income: IncomeResponse{
			TotalIncome:         d.Income.Total,
			AverageBookingValue: d.Income.Average,
			IncomeByMonth:       make([]MonthIncomeResponse, len(d.Income.ByMonth)),
		},
	}
	for i, s := range d.Statuses {
		resp.Statuses[i] = StatusCountResponse{Status: string(s.Status), Count: s.Count}
	}
	for i, m := range d.Monthly {
		resp.Monthly[i] = MonthCountResponse{Month: label(m.YearMonth), Count: m.Count}
	}
	for i, m := range d.Income.ByMonth {
		resp.Income.IncomeByMonth[i] = MonthIncomeResponse{Month: label(m.YearMonth), Income: m.Income}
	}
	return resp
}

type ForecastPointResponse struct {
	Period     string  `json:"period"`
	Actual     float64 `json:"actual"`
	Forecast   float64 `json:"forecast"`
	IsForecast bool    `json:"isForecast"`
}

type ForecastResponse struct {
	Metric string                  `json:"metric"`
	Period string                  `json:"period"`
	Points []ForecastPointResponse `json:"points"`
}

func NewForecastResponse(metric stats.Metric, period stats.Period, points []stats.ForecastPoint) ForecastResponse {
	resp := ForecastResponse{
		Metric: string(metric),
		Period: string(period),
		Points: make([]ForecastPointResponse, len(points)),
	}
	for i, p := range points {
		resp.Points[i] = ForecastPointResponse{
			Period:     label(p.YearMonth),
			Actual:     p.Actual,
			Forecast:   p.Forecast,
			IsForecast: p.IsForecast,
		}
	}
	return resp
}

type PriceRecommendationResponse struct {
	Month       string  `json:"month"`
	Recommended float64 `json:"recommended"`
	Min         float64 `json:"min"`
	Max         float64 `json:"max"`
	Change      float64 `json:"change"`
}

type BoatRecommendationsResponse struct {
	ID              int64                         `json:"id"`
	Name            string                        `json:"name"`
	CurrentPrice    float64                       `json:"currentPrice"`
	Recommendations []PriceRecommendationResponse `json:"recommendations"`
}

func NewRecommendationsResponse(recs []stats.BoatRecommendations) []BoatRecommendationsResponse {
	out := make([]BoatRecommendationsResponse, len(recs))
	for i, r := range recs {
		items := make([]PriceRecommendationResponse, len(r.Recommendations))
		for j, p := range r.Recommendations {
			items[j] = PriceRecommendationResponse{
				Month:       label(p.YearMonth),
				Recommended: p.Recommended,
				Min:         p.Min,
				Max:         p.Max,
				Change:      p.ChangePct,
			}
		}
		out[i] = BoatRecommendationsResponse{
			ID:              r.BoatID,
			Name:            r.BoatName,
			CurrentPrice:    r.CurrentPrice,
			Recommendations: items,
		}
	}
	return out
}

type DayStatusResponse struct {
	Date       string  `json:"date"`
	IsBooked   bool    `json:"isBooked"`
	BookingID  *string `json:"bookingId,omitempty"`
	ClientName *string `json:"clientName,omitempty"`
}

type BoatOccupancyResponse struct {
	BoatID        int64               `json:"boatId"`
	BoatName      string              `json:"boatName"`
	Dates         []DayStatusResponse `json:"dates"`
	OccupancyRate float64             `json:"occupancyRate"`
}

func NewOccupancyResponse(occ []stats.BoatOccupancy) []BoatOccupancyResponse {
	out := make([]BoatOccupancyResponse, len(occ))
	for i, o := range occ {
		days := make([]DayStatusResponse, len(o.Days))
		for j, d := range o.Days {
			days[j] = DayStatusResponse{Date: d.Date.Format(time.DateOnly), IsBooked: d.Booked}
			if d.Booked {
				id, name := d.BookingID, d.ClientName
				days[j].BookingID, days[j].ClientName = &id, &name
			}
		}
		out[i] = BoatOccupancyResponse{
			BoatID:        o.BoatID,
			BoatName:      o.BoatName,
			Dates:         days,
			OccupancyRate: o.Rate,
		}
	}
	return out
}
