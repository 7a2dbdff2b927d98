package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/scry-testkit/internal/api/shared"
	"github.com/phrazzld/scry-testkit/internal/service"
)

// NoteHandler handles the notes endpoints.
type NoteHandler struct {
	notes  service.NoteService
	logger *slog.Logger
}

// NewNoteHandler creates a NoteHandler.
func NewNoteHandler(notes service.NoteService, logger *slog.Logger) *NoteHandler {
	return &NoteHandler{notes: notes, logger: logger.With("component", "note_handler")}
}

// Create handles POST /notes.
func (h *NoteHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req CreateNoteRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithException(w, r, shared.InvalidRequestException.Raise(r.Context(), err.Error()))
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithException(w, r, shared.ValidationException.Raise(r.Context(), err.Error()))
		return
	}

	note, err := h.notes.CreateNote(r.Context(), userID, req.Title, req.Body)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	h.logger.Debug("note created", "note_id", note.ID, "user_id", userID)
	shared.RespondWithJSON(w, r, http.StatusCreated, noteToResponse(note))
}

// List handles GET /notes?page=&page_size=.
func (h *NoteHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	page, err := queryInt(r, "page", 1)
	if err != nil {
		shared.RespondWithException(w, r, shared.ValidationException.Raise(r.Context(), err.Error()))
		return
	}
	pageSize, err := queryInt(r, "page_size", service.DefaultPageSize)
	if err != nil {
		shared.RespondWithException(w, r, shared.ValidationException.Raise(r.Context(), err.Error()))
		return
	}

	result, err := h.notes.ListNotes(r.Context(), userID, page, pageSize)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	resp := NoteListResponse{
		Results:    make([]NoteResponse, 0, len(result.Notes)),
		Pagination: result.Pagination,
	}
	for _, note := range result.Notes {
		resp.Results = append(resp.Results, noteToResponse(note))
	}
	shared.RespondWithJSON(w, r, http.StatusOK, resp)
}

// Get handles GET /notes/{id}.
func (h *NoteHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	noteID, ok := pathUUID(w, r, "id", shared.NoteNotFoundException)
	if !ok {
		return
	}

	note, err := h.notes.GetNote(r.Context(), userID, noteID)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, noteToResponse(note))
}

// Update handles PATCH /notes/{id}.
func (h *NoteHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	noteID, ok := pathUUID(w, r, "id", shared.NoteNotFoundException)
	if !ok {
		return
	}

	var req UpdateNoteRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithException(w, r, shared.InvalidRequestException.Raise(r.Context(), err.Error()))
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithException(w, r, shared.ValidationException.Raise(r.Context(), err.Error()))
		return
	}

	note, err := h.notes.UpdateNote(r.Context(), userID, noteID, service.NoteUpdate{
		Title: req.Title,
		Body:  req.Body,
	})
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, noteToResponse(note))
}

// Delete handles DELETE /notes/{id}.
func (h *NoteHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	noteID, ok := pathUUID(w, r, "id", shared.NoteNotFoundException)
	if !ok {
		return
	}

	if err := h.notes.DeleteNote(r.Context(), userID, noteID); err != nil {
		HandleAPIError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
