package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/cards-api/internal/api/shared"
	"github.com/phrazzld/cards-api/internal/domain"
	"github.com/phrazzld/cards-api/internal/platform/logger"
	"github.com/phrazzld/cards-api/internal/store"
)

// Success messages returned on mutations.
const (
	MsgCardCreated = "Card create successfully"
	MsgCardUpdated = "Card updated successfully"
	MsgCardDeleted = "Card deleted successfully"
)

// CardHandler handles card-related HTTP requests.
type CardHandler struct {
	cardStore store.CardStore
	logger    *slog.Logger
}

// NewCardHandler creates a new CardHandler backed by cardStore.
func NewCardHandler(cardStore store.CardStore, logger *slog.Logger) *CardHandler {
	if cardStore == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("cardStore cannot be nil for CardHandler")
	}
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for CardHandler")
	}

	return &CardHandler{
		cardStore: cardStore,
		logger:    logger.With(slog.String("component", "card_handler")),
	}
}

// CreateCard handles POST /cards requests.
func (h *CardHandler) CreateCard(w http.ResponseWriter, r *http.Request) {
	r = h.withLogger(r)
	log := logger.FromContext(r.Context())

	raw, err := shared.DecodeJSON(w, r)
	if err != nil {
		HandleAPIError(w, r, err, OpCreate)
		return
	}

	in, err := domain.ParseCreate(raw)
	if err != nil {
		HandleAPIError(w, r, err, OpCreate)
		return
	}

	card, err := h.cardStore.Create(r.Context(), in)
	if err != nil {
		HandleAPIError(w, r, err, OpCreate)
		return
	}

	log.Debug("card created", slog.Int64("card_id", card.ID))
	shared.RespondWithEnvelope(w, r, http.StatusCreated,
		shared.Success(*card, shared.WithMessage(MsgCardCreated)))
}

// ListCards handles GET /cards requests. Cards are returned newest first.
func (h *CardHandler) ListCards(w http.ResponseWriter, r *http.Request) {
	r = h.withLogger(r)

	cards, err := h.cardStore.List(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, OpFetch)
		return
	}
	if cards == nil {
		cards = []domain.Card{}
	}

	shared.RespondWithEnvelope(w, r, http.StatusOK,
		shared.Success(cards, shared.WithCount(len(cards))))
}

// UpdateCard handles PATCH /cards/{id} requests. The ID is validated before
// the body is read.
func (h *CardHandler) UpdateCard(w http.ResponseWriter, r *http.Request) {
	r = h.withLogger(r)
	log := logger.FromContext(r.Context())

	id, err := domain.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		HandleAPIError(w, r, err, OpUpdate)
		return
	}

	raw, err := shared.DecodeJSON(w, r)
	if err != nil {
		HandleAPIError(w, r, err, OpUpdate)
		return
	}

	in, err := domain.ParseUpdate(raw)
	if err != nil {
		HandleAPIError(w, r, err, OpUpdate)
		return
	}

	card, err := h.cardStore.Update(r.Context(), id, in)
	if err != nil {
		HandleAPIError(w, r, err, OpUpdate)
		return
	}

	log.Debug("card updated", slog.Int64("card_id", card.ID))
	shared.RespondWithEnvelope(w, r, http.StatusOK,
		shared.Success(*card, shared.WithSuccess(), shared.WithMessage(MsgCardUpdated)))
}

// DeleteCard handles DELETE /cards/{id} requests.
func (h *CardHandler) DeleteCard(w http.ResponseWriter, r *http.Request) {
	r = h.withLogger(r)
	log := logger.FromContext(r.Context())

	id, err := domain.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		HandleAPIError(w, r, err, OpDelete)
		return
	}

	if err := h.cardStore.Delete(r.Context(), id); err != nil {
		HandleAPIError(w, r, err, OpDelete)
		return
	}

	log.Debug("card deleted", slog.Int64("card_id", id))
	shared.RespondWithEnvelope(w, r, http.StatusOK,
		shared.Ack(shared.WithSuccess(), shared.WithMessage(MsgCardDeleted)))
}

// withLogger makes sure the request context carries a logger, preferring the
// request-scoped one installed by the trace middleware.
func (h *CardHandler) withLogger(r *http.Request) *http.Request {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	return r.WithContext(logger.WithLogger(r.Context(), log))
}
