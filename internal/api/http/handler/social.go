package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/dtroode/socialnet-server/internal/logger"
	"github.com/dtroode/socialnet-server/internal/model"
)

// Social serves the friend-request and privacy endpoints. They hold no state yet
// and only acknowledge what they were sent.
type Social struct {
	contextManager model.ContextManager
	logger         *logger.Logger
}

func NewSocial(contextManager model.ContextManager, logger *logger.Logger) *Social {
	return &Social{
		contextManager: contextManager,
		logger:         logger,
	}
}

type socialRequest struct {
	RequestType json.RawMessage `json:"requestType"`
	TargetUser  json.RawMessage `json:"targetUser"`
}

type acceptRequest struct {
	RequestID json.RawMessage `json:"requestId"`
}

type pendingRequestsResponse struct {
	Message  string `json:"message"`
	Requests []any  `json:"requests"`
}

func (h *Social) Request(w http.ResponseWriter, r *http.Request) {
	var req socialRequest
	if err := decodeBody(r, &req); err != nil {
		WriteError(w, h.logger, err)
		return
	}

	username, _ := h.contextManager.GetUsernameFromContext(r.Context())
	h.logger.Debug("Social handler: request received",
		"username", username,
		"requestType", echo(req.RequestType),
		"targetUser", echo(req.TargetUser))

	writeMessage(w, http.StatusOK,
		fmt.Sprintf("Handled request type: %s for user: %s", echo(req.RequestType), echo(req.TargetUser)))
}

func (h *Social) PendingRequests(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, pendingRequestsResponse{
		Message:  "Fetched pending requests successfully",
		Requests: []any{},
	})
}

func (h *Social) AcceptRequest(w http.ResponseWriter, r *http.Request) {
	var req acceptRequest
	if err := decodeBody(r, &req); err != nil {
		WriteError(w, h.logger, err)
		return
	}

	writeMessage(w, http.StatusOK,
		fmt.Sprintf("Request %s accepted successfully", echo(req.RequestID)))
}

func (h *Social) UpdatePrivacySettings(w http.ResponseWriter, _ *http.Request) {
	writeMessage(w, http.StatusOK, "Privacy settings updated successfully")
}

// echo renders a raw JSON field for a message: absent fields read "undefined",
// null reads "null", scalars read as their plain value.
func echo(raw json.RawMessage) string {
	if len(raw) == 0 {
		return "undefined"
	}

	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return string(raw)
	}

	switch val := v.(type) {
	case nil:
		return "null"
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	default:
		return string(raw)
	}
}
