package wheel

import (
	"net/http"
	"time"
	"wheel_backend/internal/converter"
	"wheel_backend/pkg/resp"

	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"
)

const keepAlive = 15 * time.Second

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Frames поток кадров анимации в формате server-sent events.
// Первым событием идет state, затем frame на каждый кадр
func (h *Handler) Frames(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		resp.WriteError(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	ctx := r.Context()
	// Подписка до снимка, иначе кадры между ними теряются
	frames, cancel, err := h.serv.Subscribe(ctx)
	if err != nil {
		h.writeError(w, err)
		return
	}
	defer cancel()

	state, err := h.serv.State(ctx)
	if err != nil {
		h.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)

	if err := writeEvent(w, "state", converter.ToStateResponse(*state)); err != nil {
		return
	}
	flusher.Flush()

	ticker := time.NewTicker(keepAlive)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := w.Write([]byte(": ping\n\n")); err != nil {
				return
			}
			flusher.Flush()
		case frame, open := <-frames:
			if !open {
				return
			}
			if err := writeEvent(w, "frame", converter.ToFrameResponse(frame)); err != nil {
				h.log.Debug("frame stream closed", zap.Error(err))
				return
			}
			flusher.Flush()
		}
	}
}

func writeEvent(w http.ResponseWriter, event string, data any) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return err
	}
	buf := make([]byte, 0, len(payload)+len(event)+16)
	buf = append(buf, "event: "...)
	buf = append(buf, event...)
	buf = append(buf, "\ndata: "...)
	buf = append(buf, payload...)
	buf = append(buf, "\n\n"...)
	_, err = w.Write(buf)
	return err
}
