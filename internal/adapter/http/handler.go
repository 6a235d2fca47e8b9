package http

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/soundforge/seller/internal/infrastructure/logger"
	"github.com/soundforge/seller/internal/port"
)

const maxNotificationBytes = 1 << 20 // 1 MiB

type Handlers struct {
	engine Engine
}

func NewHandlers(engine Engine) *Handlers {
	return &Handlers{engine: engine}
}

// JobNotification receives one job notification and hands it to the engine.
// The response is 202: fulfillment happens in the background and the source
// learns the outcome through its own callbacks, never through this reply.
func (h *Handlers) JobNotification() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		trace := uuid.NewString()

		var n port.Notification
		if err := decodeBody(w, r, &n); err != nil {
			logger.Warn.Printf("webhook %s: bad notification: %v", trace, err)
			http.Error(w, "invalid notification payload", http.StatusBadRequest)
			return
		}
		if n.JobID == "" {
			logger.Warn.Printf("webhook %s: notification without jobId", trace)
			http.Error(w, "jobId is required", http.StatusBadRequest)
			return
		}

		logger.Info.Printf("webhook %s: job %s service=%s phase=%d",
			trace, logger.SanitizeForLog(n.JobID), logger.SanitizeForLog(n.Service), n.Phase)

		h.engine.HandleNotification(r.Context(), n)
		w.WriteHeader(http.StatusAccepted)
	}
}

type evaluationRequest struct {
	JobID string `json:"jobId"`
}

// EvaluationRequest is called once the source reports a job reached its
// terminal phase.
func (h *Handlers) EvaluationRequest() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body evaluationRequest
		if err := decodeBody(w, r, &body); err != nil {
			http.Error(w, "invalid evaluation payload", http.StatusBadRequest)
			return
		}
		if body.JobID == "" {
			http.Error(w, "jobId is required", http.StatusBadRequest)
			return
		}

		h.engine.HandleEvaluation(r.Context(), body.JobID)
		w.WriteHeader(http.StatusAccepted)
	}
}

func (h *Handlers) Health() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxNotificationBytes)
	dec := json.NewDecoder(r.Body)
	return dec.Decode(dst)
}
