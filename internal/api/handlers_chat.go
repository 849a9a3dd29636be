// RideWise - Bike Demand Prediction Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ridewise

package api

import (
	"net/http"

	"github.com/tomtom215/ridewise/internal/logging"
)

// ChatResponse is the body of a chat reply.
type ChatResponse struct {
	Reply string `json:"reply"`
}

// Chat handles POST /chat.
//
// Body: {"message": "...", "prediction": {...}}. prediction is optional
// context forwarded to the model; non-object values are ignored.
func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	payload, err := decodeObject(r)
	if err != nil {
		respondError(w, r, http.StatusBadRequest, ErrCodeBadRequest, msgChatMessage, err)
		return
	}

	req := ChatRequest{Message: stringField(payload, "message")}
	if p, ok := payload["prediction"].(map[string]any); ok {
		req.Prediction = p
	}
	if req.Message == "" {
		respondError(w, r, http.StatusBadRequest, ErrCodeValidation, msgChatMessage, nil)
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondError(w, r, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return
	}

	logging.Ctx(r.Context()).Info().
		Int("message_length", len(req.Message)).
		Bool("has_prediction", len(req.Prediction) > 0).
		Msg("[/chat] request received")

	reply, source := h.assistant.Reply(r.Context(), req.Message, req.Prediction)

	logging.Ctx(r.Context()).Debug().Str("source", source).Msg("[/chat] reply sent")
	respondJSON(w, http.StatusOK, ChatResponse{Reply: reply})
}
