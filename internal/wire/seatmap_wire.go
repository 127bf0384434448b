package wire

import (
	"seatmap-engine/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireSeatmap(r chi.Router, seatmapHandler *adaptor.SeatmapHandler) {
	r.Route("/api/itineraries", func(r chi.Router) {
		// POST /api/itineraries - Load a seatmap response for a set of travelers
		r.Post("/", seatmapHandler.LoadItinerary)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", seatmapHandler.GetItinerary)
			r.Delete("/", seatmapHandler.DeleteItinerary)

			// POST /api/itineraries/{id}/close - Freeze selections
			r.Post("/close", seatmapHandler.CloseItinerary)

			// Rendering
			r.Get("/segments/{segment}/decks/{deck}", seatmapHandler.GetCabinView)
			r.Get("/segments/{segment}/seats/{seat}", seatmapHandler.GetSeatStatus)

			// Selection
			r.Get("/selections", seatmapHandler.GetSelections)
			r.Post("/selections", seatmapHandler.SelectSeat)
			r.Delete("/selections", seatmapHandler.DeselectSeat)
			r.Get("/total", seatmapHandler.GetTotal)
		})
	})
}
