package api

import (
	"net/http"

	"healthdash/internal/model"
)

/* ---------------- POST /api/assistant/sessions ---------------- */

func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusCreated, h.assistant.Create())
}

/* ---------------- GET /api/assistant/sessions/{id} ---------------- */

func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	s, err := h.assistant.Get(r.PathValue("id"))
	if err != nil {
		h.writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s)
}

/* ---------------- DELETE /api/assistant/sessions/{id} ---------------- */

func (h *Handler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := h.assistant.Delete(r.PathValue("id")); err != nil {
		h.writeErr(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

/* ---------------- POST /api/assistant/sessions/{id}/messages ---------------- */

type messageRequest struct {
	Content string `json:"content"`
}

func (h *Handler) PostMessage(w http.ResponseWriter, r *http.Request) {
	var req messageRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}

	reply, err := h.assistant.Ask(r.Context(), r.PathValue("id"), req.Content)
	if err != nil {
		h.writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, reply)
}

/* ---------------- POST /api/assistant/ask ---------------- */

type askRequest struct {
	Question string `json:"question"`
}

type askResponse struct {
	Answer model.ChatMessage `json:"answer"`
}

func (h *Handler) Ask(w http.ResponseWriter, r *http.Request) {
	var req askRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}

	reply, err := h.assistant.AskOnce(r.Context(), req.Question)
	if err != nil {
		h.writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, askResponse{Answer: reply})
}
