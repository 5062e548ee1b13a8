package handlers

import (
	"net/http"

	qrcode "github.com/skip2/go-qrcode"
)

// handleGameQR returns a QR code PNG pointing at a game's join page
func (h *Handlers) handleGameQR(w http.ResponseWriter, r *http.Request) {
	id, err := requireParam(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	// Verify the game exists before encoding a link to it
	if _, err := h.Game.GetGame(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}

	joinURL := h.BaseURL + "/imposters/" + id + "/join"
	png, err := qrcode.Encode(joinURL, qrcode.Medium, 256)
	if err != nil {
		respondError(w, InternalError(err))
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Write(png)
}
