package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/mcoot/playerbase/internal/api/request"
	"github.com/mcoot/playerbase/internal/api/response"
	"github.com/mcoot/playerbase/internal/model"
	"github.com/mcoot/playerbase/internal/services/players"
)

// PlayerHandler handles player-related endpoints
type PlayerHandler struct {
	playerService *players.Service
}

// NewPlayerHandler creates a new player handler
func NewPlayerHandler(playerService *players.Service) *PlayerHandler {
	return &PlayerHandler{
		playerService: playerService,
	}
}

// List handles GET /players
func (h *PlayerHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	filter, err := request.ParseFilter(query)
	if err != nil {
		WriteError(w, NewInvalidRequestError(err.Error()))
		return
	}
	page, err := request.ParsePage(query)
	if err != nil {
		WriteError(w, NewInvalidRequestError(err.Error()))
		return
	}

	result, err := h.playerService.List(r.Context(), filter, page)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PlayersFromModel(result))
}

// Count handles GET /players/count
func (h *PlayerHandler) Count(w http.ResponseWriter, r *http.Request) {
	filter, err := request.ParseFilter(r.URL.Query())
	if err != nil {
		WriteError(w, NewInvalidRequestError(err.Error()))
		return
	}

	count, err := h.playerService.Count(r.Context(), filter)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, count)
}

// Create handles POST /players
func (h *PlayerHandler) Create(w http.ResponseWriter, r *http.Request) {
	in, err := decodePlayerInput(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	player, err := h.playerService.Create(r.Context(), in)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PlayerFromModel(player))
}

// Get handles GET /players/{id}
func (h *PlayerHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := playerIDFromPath(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	player, err := h.playerService.Get(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PlayerFromModel(player))
}

// Update handles POST /players/{id}
func (h *PlayerHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := playerIDFromPath(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	in, err := decodePlayerInput(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	player, err := h.playerService.Update(r.Context(), id, in)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PlayerFromModel(player))
}

// Delete handles DELETE /players/{id}
func (h *PlayerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := playerIDFromPath(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	deleted, err := h.playerService.Delete(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}
	if !deleted {
		WriteError(w, model.ErrPlayerNotFound)
		return
	}

	response.OK(w)
}

func playerIDFromPath(r *http.Request) (model.PlayerID, error) {
	raw := mux.Vars(r)["id"]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, NewInvalidRequestError("player id must be an integer")
	}
	return model.PlayerID(id), nil
}

// decodePlayerInput reads a player body. An empty body is an empty input.
func decodePlayerInput(r *http.Request) (model.PlayerInput, error) {
	var req request.PlayerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		return model.PlayerInput{}, NewInvalidRequestError("invalid request body")
	}

	in, err := req.ToInput()
	if err != nil {
		return model.PlayerInput{}, err
	}
	return in, nil
}
