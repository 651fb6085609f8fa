package wheel

import (
	"errors"
	"net/http"
	"strconv"
	dto "wheel_backend/internal/api/dto/wheel"
	"wheel_backend/internal/converter"
	"wheel_backend/internal/service"
	"wheel_backend/internal/service/wheel/engine"
	"wheel_backend/pkg/req"
	"wheel_backend/pkg/resp"

	"go.uber.org/zap"
)

type HandlerDeps struct {
	Serv service.WheelService
	Log  *zap.Logger
}

type Handler struct {
	serv service.WheelService
	log  *zap.Logger
}

func NewHandler(deps HandlerDeps) *Handler {
	return &Handler{serv: deps.Serv, log: deps.Log}
}

// State текущее состояние колеса игрока
func (h *Handler) State(w http.ResponseWriter, r *http.Request) {
	state, err := h.serv.State(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToStateResponse(*state))
}

// Segments текст поля ввода количества секторов
func (h *Handler) Segments(w http.ResponseWriter, r *http.Request) {
	payload, err := req.Decode[dto.SegmentsRequest](r.Body)
	if err != nil {
		resp.WriteError(w, http.StatusBadRequest, "invalid request")
		return
	}

	applied, state, err := h.serv.SetSegments(r.Context(), payload.Text)
	if err != nil {
		h.writeError(w, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, dto.SegmentsResponse{
		Text:    state.InputText,
		Applied: applied,
		State:   converter.ToStateResponse(*state),
	})
}

// Fling отпускание жеста
func (h *Handler) Fling(w http.ResponseWriter, r *http.Request) {
	payload, err := req.Decode[dto.FlingRequest](r.Body)
	if err != nil {
		resp.WriteError(w, http.StatusBadRequest, "invalid request")
		return
	}

	accepted, state, err := h.serv.Fling(r.Context(), converter.ToFling(payload))
	if err != nil {
		h.writeError(w, err)
		return
	}

	status := http.StatusAccepted
	if !accepted {
		status = http.StatusOK
	}
	resp.WriteJSONResponse(w, status, dto.FlingResponse{
		Accepted: accepted,
		State:    converter.ToStateResponse(*state),
	})
}

// History ?limit= сохраненные спины игрока
func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	var limit uint64
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			resp.WriteError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = parsed
	}

	spins, err := h.serv.History(r.Context(), limit)
	if err != nil {
		h.writeError(w, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToHistoryResponse(spins))
}

// Stats статистика призов по всем игрокам
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	resp.WriteJSONResponse(w, http.StatusOK, converter.ToStatsResponse(h.serv.Stats()))
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrUnauthorized):
		resp.WriteError(w, http.StatusUnauthorized, "unauthorized")
	case errors.Is(err, engine.ErrWheelClosed):
		resp.WriteError(w, http.StatusServiceUnavailable, "wheel is closed")
	default:
		h.log.Error("wheel request failed", zap.Error(err))
		resp.WriteError(w, http.StatusInternalServerError, "internal error")
	}
}
