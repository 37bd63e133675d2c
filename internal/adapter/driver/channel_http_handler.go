package driver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/alorle/iptv-player/internal/application"
	"github.com/alorle/iptv-player/internal/channel"
)

// ChannelHTTPHandler handles HTTP requests for the channel list.
// net/http serves requests concurrently; the handler delivers them to the
// controller one at a time.
type ChannelHTTPHandler struct {
	mu         sync.Mutex
	controller application.ChannelEventHandler
	view       *ChannelListView
}

// NewChannelHTTPHandler creates a new HTTP handler for channels. view must be
// the observer the controller notifies.
func NewChannelHTTPHandler(controller application.ChannelEventHandler, view *ChannelListView) *ChannelHTTPHandler {
	return &ChannelHTTPHandler{controller: controller, view: view}
}

// errorResponse represents a JSON error response.
type errorResponse struct {
	Error string `json:"error"`
}

// channelRequest is the add/edit form. Every key must be present; empty
// values are allowed.
type channelRequest struct {
	Name *string `json:"name"`
	URL  *string `json:"url"`
	Logo *string `json:"logo"`
}

// channelResponse represents a channel in JSON format.
type channelResponse struct {
	Index int    `json:"index"`
	Name  string `json:"name"`
	URL   string `json:"url"`
	Logo  string `json:"logo"`
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// ServeHTTP routes the request to the appropriate handler based on method and path.
func (h *ChannelHTTPHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := strings.Trim(strings.TrimPrefix(r.URL.Path, "/channels"), "/")

	if path == "" {
		switch r.Method {
		case http.MethodGet:
			h.handleList(w, r)
		case http.MethodPost:
			h.handleAdd(w, r)
		default:
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		}
		return
	}

	segments := strings.Split(path, "/")
	index, err := strconv.Atoi(segments[0])
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid channel index")
		return
	}

	// POST /channels/{index}/play - play a channel
	if len(segments) == 2 && segments[1] == "play" {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		h.handleSelect(w, r, index)
		return
	}

	if len(segments) != 1 {
		writeError(w, http.StatusNotFound, "not found")
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.handleGet(w, r, index)
	case http.MethodPut:
		h.handleEdit(w, r, index)
	case http.MethodDelete:
		h.handleDelete(w, r, index)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func toChannelResponse(index int, ch channel.Channel) channelResponse {
	return channelResponse{
		Index: index,
		Name:  ch.Name(),
		URL:   ch.URL(),
		Logo:  ch.Logo(),
	}
}

func decodeChannelRequest(r *http.Request) (channel.Channel, error) {
	var req channelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return channel.Channel{}, err
	}
	if req.Name == nil || req.URL == nil || req.Logo == nil {
		return channel.Channel{}, errors.New("name, url and logo are required")
	}
	return channel.NewChannel(*req.Name, *req.URL, *req.Logo), nil
}

// writeControllerError maps a controller error to a response.
func writeControllerError(w http.ResponseWriter, err error) {
	if errors.Is(err, channel.ErrIndexOutOfRange) {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeError(w, http.StatusInternalServerError, "internal server error")
}

// handleList handles GET /channels
func (h *ChannelHTTPHandler) handleList(w http.ResponseWriter, r *http.Request) {
	channels := h.view.Channels()

	response := make([]channelResponse, len(channels))
	for i, ch := range channels {
		response[i] = toChannelResponse(i, ch)
	}

	writeJSON(w, http.StatusOK, response)
}

// handleGet handles GET /channels/{index}, the seed for an edit form.
func (h *ChannelHTTPHandler) handleGet(w http.ResponseWriter, r *http.Request, index int) {
	ch, ok := h.view.At(index)
	if !ok {
		writeError(w, http.StatusNotFound, channel.ErrIndexOutOfRange.Error())
		return
	}

	writeJSON(w, http.StatusOK, toChannelResponse(index, ch))
}

// handleAdd handles POST /channels
func (h *ChannelHTTPHandler) handleAdd(w http.ResponseWriter, r *http.Request) {
	ch, err := decodeChannelRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.controller.OnAdd(r.Context(), ch); err != nil {
		writeControllerError(w, err)
		return
	}

	index := len(h.view.Channels()) - 1
	writeJSON(w, http.StatusCreated, toChannelResponse(index, ch))
}

// handleEdit handles PUT /channels/{index}
func (h *ChannelHTTPHandler) handleEdit(w http.ResponseWriter, r *http.Request, index int) {
	ch, err := decodeChannelRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.controller.OnEdit(r.Context(), index, ch); err != nil {
		writeControllerError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toChannelResponse(index, ch))
}

// handleDelete handles DELETE /channels/{index}
func (h *ChannelHTTPHandler) handleDelete(w http.ResponseWriter, r *http.Request, index int) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.controller.OnDelete(r.Context(), index); err != nil {
		writeControllerError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// handleSelect handles POST /channels/{index}/play
func (h *ChannelHTTPHandler) handleSelect(w http.ResponseWriter, r *http.Request, index int) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.controller.OnSelect(r.Context(), index); err != nil {
		if errors.Is(err, channel.ErrIndexOutOfRange) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusBadGateway, "player error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Start delivers the start event under the same serialization as requests.
func (h *ChannelHTTPHandler) Start(ctx context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	return h.controller.OnStart(ctx)
}

// Stop delivers the stop event under the same serialization as requests.
func (h *ChannelHTTPHandler) Stop(ctx context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	return h.controller.OnStop(ctx)
}
