/*
Package handler provides the HTTP handler rendering a room join link as a QR code.

The encoded URL points at the public client with the room id preselected, so a
player on another device can join a live room by scanning the host's screen.
*/
package handler

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/skip2/go-qrcode"

	"emoteguessr/internal/pkg/errs"
	"emoteguessr/internal/pkg/logx"
	"emoteguessr/internal/pkg/resp"
)

// qrPixelSize is the edge length of the rendered PNG.
const qrPixelSize = 256

// HandleRoomQR renders a PNG QR code containing the join link of a live room.
// Expired or unknown room ids answer 404 so stale codes fail fast.
func HandleRoomQR(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		roomID := chi.URLParam(r, "id")
		if roomID == "" {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidParams))
			return
		}

		if !deps.Directory.RoomExists(roomID) {
			resp.RespondError(w, r, errs.NewError(errs.ErrRoomNotFound))
			return
		}

		joinURL := fmt.Sprintf("%s/?room=%s", deps.Config.PublicURL, roomID)

		png, err := qrcode.Encode(joinURL, qrcode.Medium, qrPixelSize)
		if err != nil {
			logx.Error(err, "Failed to render QR code", "room_id", roomID)
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		w.Header().Set("Content-Type", "image/png")
		w.Header().Set("Cache-Control", "no-store")
		w.WriteHeader(http.StatusOK)

		if _, err := w.Write(png); err != nil {
			logx.Warn("Failed to write QR code response", "error", err.Error())
		}
	}
}
