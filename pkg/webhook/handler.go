package webhook

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	shared "github.com/runtimeexceptions/server/pkg"
	infrapubsub "github.com/runtimeexceptions/server/pkg/infrastructure/pubsub"
	"github.com/runtimeexceptions/server/pkg/observability"
	"github.com/runtimeexceptions/server/pkg/types"
)

// Handler serves the push-event endpoint.
type Handler struct {
	DB  shared.Database
	Pub shared.Publisher

	// VerifyToken is the handshake secret; DefaultVerifyToken when empty.
	VerifyToken string

	// Now overrides time.Now, for tests.
	Now func() time.Time
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.handleVerification(w, r)
	case http.MethodPost:
		h.handleEvent(w, r)
	default:
		observability.WebhooksReceived.WithLabelValues("method_not_allowed").Inc()
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// handleVerification implements the provider's subscription handshake: echo
// the challenge when the shared token matches, refuse otherwise.
func (h *Handler) handleVerification(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("hub.verify_token")
	challenge := r.URL.Query().Get("hub.challenge")

	if token != h.verifyToken() {
		slog.Warn("Webhook verification with wrong token")
		observability.WebhooksReceived.WithLabelValues("bad_verify_token").Inc()
		w.WriteHeader(http.StatusForbidden)
		return
	}

	slog.Info("Webhook verification succeeded")
	observability.WebhooksReceived.WithLabelValues("verified").Inc()
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"hub.challenge": challenge})
}

// handleEvent validates, persists and fans out one push event. The response
// is fire-and-forget: once the jobs are enqueued the provider gets a 200 and
// enrichment outcomes are the worker's problem.
func (h *Handler) handleEvent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var payload EventWebhook
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		slog.Warn("Webhook body is not valid JSON", "error", err)
		observability.WebhooksReceived.WithLabelValues("invalid").Inc()
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}
	if err := payload.Validate(); err != nil {
		slog.Warn("Webhook payload failed validation", "error", err)
		observability.WebhooksReceived.WithLabelValues("invalid").Inc()
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}

	logger := slog.With("owner_id", string(payload.OwnerID), "object_id", payload.ObjectID)

	// A webhook cannot arrive before account linking, so a missing runner
	// is a broken installation, not a bad request.
	runner, err := h.DB.GetRunner(ctx, string(payload.OwnerID))
	if err != nil {
		logger.Error("No runner for webhook owner", "error", err)
		observability.WebhooksReceived.WithLabelValues("unknown_owner").Inc()
		http.Error(w, "unknown owner", http.StatusInternalServerError)
		return
	}

	event := &types.Event{
		ID:             uuid.New().String(),
		ObjectType:     payload.ObjectType,
		ObjectID:       payload.ObjectID,
		AspectType:     payload.AspectType,
		Updates:        payload.Updates,
		OwnerID:        runner.StravaID,
		SubscriptionID: payload.SubscriptionID,
		EventTime:      time.Unix(payload.EventTime, 0).UTC(),
		CreatedAt:      h.now(),
	}
	if err := h.DB.CreateEvent(ctx, event); err != nil {
		logger.Error("Failed to persist event", "error", err)
		observability.WebhooksReceived.WithLabelValues("persist_failed").Inc()
		http.Error(w, "failed to persist event", http.StatusInternalServerError)
		return
	}
	observability.EventsPersisted.Inc()
	logger.Info("Persisted event", "event_id", event.ID, "aspect_type", event.AspectType)

	job := &types.EnrichmentJob{
		RunnerID:   runner.StravaID,
		ActivityID: payload.ObjectID,
		EventID:    event.ID,
	}
	for _, topic := range shared.EnrichmentTopics {
		ce, err := infrapubsub.NewEnrichmentJobEvent(job)
		if err != nil {
			logger.Error("Failed to build job event", "topic", topic, "error", err)
			continue
		}
		msgID, err := h.Pub.PublishCloudEvent(ctx, topic, ce)
		if err != nil {
			// Enqueue failures are logged, never surfaced: the provider
			// retries the whole webhook on non-200 and would duplicate
			// the event row.
			logger.Error("Failed to enqueue job", "topic", topic, "error", err)
			continue
		}
		observability.JobsEnqueued.WithLabelValues(topic).Inc()
		logger.Info("Enqueued enrichment job", "topic", topic, "message_id", msgID)
	}

	observability.WebhooksReceived.WithLabelValues("ok").Inc()
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) verifyToken() string {
	if h.VerifyToken != "" {
		return h.VerifyToken
	}
	return DefaultVerifyToken
}

func (h *Handler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}
