package v1

import (
	"net/http"
	"time"

	"github.com/creatureworks/creature-api/internal/entities"
	metrics "github.com/creatureworks/creature-api/internal/observability/metrics/prometheus"
	"github.com/creatureworks/creature-api/internal/services/game"
)

func (h *Handler) createAccount(w http.ResponseWriter, r *http.Request) {
	s, c := time.Now(), http.StatusCreated
	const op = "game.createAccount.hdl"
	defer func() { metrics.ObserveRequest(time.Since(s), c, op) }()

	id, ok := accountID(w, r)
	if !ok {
		c = http.StatusUnauthorized
		return
	}

	var req struct {
		DisplayName string `json:"display_name"`
	}
	if !decodeBody(w, r, &req) {
		c = http.StatusBadRequest
		return
	}

	out, err := h.service.CreateAccount(r.Context(), &game.CreateAccountInput{
		AccountID:   id,
		DisplayName: req.DisplayName,
	})
	if err != nil {
		c = writeError(w, err)
		return
	}

	writeJSON(w, c, out.Account)
}

func (h *Handler) getBalance(w http.ResponseWriter, r *http.Request) {
	s, c := time.Now(), http.StatusOK
	const op = "game.getBalance.hdl"
	defer func() { metrics.ObserveRequest(time.Since(s), c, op) }()

	id, ok := accountID(w, r)
	if !ok {
		c = http.StatusUnauthorized
		return
	}

	out, err := h.service.GetBalance(r.Context(), &game.GetBalanceInput{AccountID: id})
	if err != nil {
		c = writeError(w, err)
		return
	}

	writeJSON(w, c, map[string]int64{"balance": out.Balance})
}

func (h *Handler) getInventory(w http.ResponseWriter, r *http.Request) {
	s, c := time.Now(), http.StatusOK
	const op = "game.getInventory.hdl"
	defer func() { metrics.ObserveRequest(time.Since(s), c, op) }()

	id, ok := accountID(w, r)
	if !ok {
		c = http.StatusUnauthorized
		return
	}

	out, err := h.service.GetInventory(r.Context(), &game.GetInventoryInput{AccountID: id})
	if err != nil {
		c = writeError(w, err)
		return
	}

	writeJSON(w, c, map[string]any{"items": out.Items})
}

func (h *Handler) summon(w http.ResponseWriter, r *http.Request) {
	s, c := time.Now(), http.StatusOK
	const op = "game.summon.hdl"
	defer func() { metrics.ObserveRequest(time.Since(s), c, op) }()

	id, ok := accountID(w, r)
	if !ok {
		c = http.StatusUnauthorized
		return
	}

	out, err := h.service.SummonCreature(r.Context(), &game.SummonCreatureInput{AccountID: id})
	if err != nil {
		c = writeError(w, err)
		return
	}

	writeJSON(w, c, map[string]any{
		"species_id": out.SpeciesID,
		"name":       out.Name,
		"image":      out.Image,
		"types":      out.Types,
		"rarity":     out.Rarity,
	})
}

func (h *Handler) capture(w http.ResponseWriter, r *http.Request) {
	s, c := time.Now(), http.StatusOK
	const op = "game.capture.hdl"
	defer func() { metrics.ObserveRequest(time.Since(s), c, op) }()

	id, ok := accountID(w, r)
	if !ok {
		c = http.StatusUnauthorized
		return
	}

	var req struct {
		SpeciesID int32  `json:"species_id"`
		Item      string `json:"item"`
	}
	if !decodeBody(w, r, &req) {
		c = http.StatusBadRequest
		return
	}

	out, err := h.service.AttemptCapture(r.Context(), &game.AttemptCaptureInput{
		AccountID: id,
		SpeciesID: req.SpeciesID,
		Item:      entities.ItemType(req.Item),
	})
	if err != nil {
		c = writeError(w, err)
		return
	}

	metrics.ObserveCapture(string(out.Rarity), out.Captured)

	writeJSON(w, c, map[string]any{
		"captured":  out.Captured,
		"rarity":    out.Rarity,
		"reward":    out.Reward,
		"remaining": out.Remaining,
		"instance":  out.Instance,
	})
}

func (h *Handler) listCollection(w http.ResponseWriter, r *http.Request) {
	s, c := time.Now(), http.StatusOK
	const op = "game.listCollection.hdl"
	defer func() { metrics.ObserveRequest(time.Since(s), c, op) }()

	id, ok := accountID(w, r)
	if !ok {
		c = http.StatusUnauthorized
		return
	}

	out, err := h.service.ListCollection(r.Context(), &game.ListCollectionInput{AccountID: id})
	if err != nil {
		c = writeError(w, err)
		return
	}

	writeJSON(w, c, map[string]any{"instances": out.Instances})
}

func (h *Handler) listMarket(w http.ResponseWriter, r *http.Request) {
	s, c := time.Now(), http.StatusOK
	const op = "game.listMarket.hdl"
	defer func() { metrics.ObserveRequest(time.Since(s), c, op) }()

	out, err := h.service.ListMarket(r.Context(), &game.ListMarketInput{})
	if err != nil {
		c = writeError(w, err)
		return
	}

	writeJSON(w, c, map[string]any{"entries": out.Entries})
}

func (h *Handler) listInstance(w http.ResponseWriter, r *http.Request) {
	s, c := time.Now(), http.StatusCreated
	const op = "game.listInstance.hdl"
	defer func() { metrics.ObserveRequest(time.Since(s), c, op) }()

	id, ok := accountID(w, r)
	if !ok {
		c = http.StatusUnauthorized
		return
	}

	var req struct {
		InstanceID string `json:"instance_id"`
		Price      int64  `json:"price"`
	}
	if !decodeBody(w, r, &req) {
		c = http.StatusBadRequest
		return
	}

	out, err := h.service.ListInstance(r.Context(), &game.ListInstanceInput{
		AccountID:  id,
		InstanceID: req.InstanceID,
		Price:      req.Price,
	})
	if err != nil {
		c = writeError(w, err)
		return
	}

	writeJSON(w, c, out.Listing)
}

func (h *Handler) withdrawListing(w http.ResponseWriter, r *http.Request) {
	s, c := time.Now(), http.StatusOK
	const op = "game.withdrawListing.hdl"
	defer func() { metrics.ObserveRequest(time.Since(s), c, op) }()

	id, ok := accountID(w, r)
	if !ok {
		c = http.StatusUnauthorized
		return
	}

	out, err := h.service.WithdrawListing(r.Context(), &game.WithdrawListingInput{
		AccountID:  id,
		InstanceID: r.PathValue("id"),
	})
	if err != nil {
		c = writeError(w, err)
		return
	}

	writeJSON(w, c, out.Instance)
}

func (h *Handler) purchase(w http.ResponseWriter, r *http.Request) {
	s, c := time.Now(), http.StatusOK
	const op = "game.purchase.hdl"
	defer func() { metrics.ObserveRequest(time.Since(s), c, op) }()

	id, ok := accountID(w, r)
	if !ok {
		c = http.StatusUnauthorized
		return
	}

	out, err := h.service.PurchaseInstance(r.Context(), &game.PurchaseInstanceInput{
		AccountID:  id,
		InstanceID: r.PathValue("id"),
	})
	if err != nil {
		c = writeError(w, err)
		return
	}

	metrics.ObservePurchase()

	writeJSON(w, c, map[string]any{
		"instance": out.Instance,
		"price":    out.Price,
		"balance":  out.Balance,
	})
}

func (h *Handler) proposeTrade(w http.ResponseWriter, r *http.Request) {
	s, c := time.Now(), http.StatusCreated
	const op = "game.proposeTrade.hdl"
	defer func() { metrics.ObserveRequest(time.Since(s), c, op) }()

	id, ok := accountID(w, r)
	if !ok {
		c = http.StatusUnauthorized
		return
	}

	var req struct {
		ToID        string `json:"to_id"`
		OfferedID   string `json:"offered_id"`
		RequestedID string `json:"requested_id"`
	}
	if !decodeBody(w, r, &req) {
		c = http.StatusBadRequest
		return
	}

	requested := entities.RequestAny()
	if req.RequestedID != "" {
		requested = entities.RequestSpecific(req.RequestedID)
	}

	out, err := h.service.ProposeTrade(r.Context(), &game.ProposeTradeInput{
		AccountID: id,
		ToID:      req.ToID,
		OfferedID: req.OfferedID,
		Requested: requested,
	})
	if err != nil {
		c = writeError(w, err)
		return
	}

	writeJSON(w, c, out.Offer)
}

func (h *Handler) listTrades(w http.ResponseWriter, r *http.Request) {
	s, c := time.Now(), http.StatusOK
	const op = "game.listTrades.hdl"
	defer func() { metrics.ObserveRequest(time.Since(s), c, op) }()

	id, ok := accountID(w, r)
	if !ok {
		c = http.StatusUnauthorized
		return
	}

	out, err := h.service.ListTrades(r.Context(), &game.ListTradesInput{AccountID: id})
	if err != nil {
		c = writeError(w, err)
		return
	}

	writeJSON(w, c, map[string]any{"offers": out.Offers})
}

func (h *Handler) acceptTrade(w http.ResponseWriter, r *http.Request) {
	s, c := time.Now(), http.StatusOK
	const op = "game.acceptTrade.hdl"
	defer func() { metrics.ObserveRequest(time.Since(s), c, op) }()

	id, ok := accountID(w, r)
	if !ok {
		c = http.StatusUnauthorized
		return
	}

	out, err := h.service.AcceptTrade(r.Context(), &game.AcceptTradeInput{
		AccountID: id,
		TradeID:   r.PathValue("id"),
	})
	if err != nil {
		c = writeError(w, err)
		return
	}

	metrics.ObserveTradeResolved(string(out.Offer.Status))

	writeJSON(w, c, map[string]any{
		"offer":    out.Offer,
		"received": out.Received,
		"sent":     out.Sent,
	})
}

func (h *Handler) rejectTrade(w http.ResponseWriter, r *http.Request) {
	s, c := time.Now(), http.StatusOK
	const op = "game.rejectTrade.hdl"
	defer func() { metrics.ObserveRequest(time.Since(s), c, op) }()

	id, ok := accountID(w, r)
	if !ok {
		c = http.StatusUnauthorized
		return
	}

	out, err := h.service.RejectTrade(r.Context(), &game.RejectTradeInput{
		AccountID: id,
		TradeID:   r.PathValue("id"),
	})
	if err != nil {
		c = writeError(w, err)
		return
	}

	metrics.ObserveTradeResolved(string(out.Offer.Status))

	writeJSON(w, c, out.Offer)
}

func (h *Handler) getCompanion(w http.ResponseWriter, r *http.Request) {
	s, c := time.Now(), http.StatusOK
	const op = "game.getCompanion.hdl"
	defer func() { metrics.ObserveRequest(time.Since(s), c, op) }()

	id, ok := accountID(w, r)
	if !ok {
		c = http.StatusUnauthorized
		return
	}

	out, err := h.service.GetCompanion(r.Context(), &game.GetCompanionInput{AccountID: id})
	if err != nil {
		c = writeError(w, err)
		return
	}

	writeJSON(w, c, map[string]any{"companion": out.Instance})
}

func (h *Handler) setCompanion(w http.ResponseWriter, r *http.Request) {
	s, c := time.Now(), http.StatusOK
	const op = "game.setCompanion.hdl"
	defer func() { metrics.ObserveRequest(time.Since(s), c, op) }()

	id, ok := accountID(w, r)
	if !ok {
		c = http.StatusUnauthorized
		return
	}

	var req struct {
		InstanceID string `json:"instance_id"`
	}
	if !decodeBody(w, r, &req) {
		c = http.StatusBadRequest
		return
	}

	out, err := h.service.SetCompanion(r.Context(), &game.SetCompanionInput{
		AccountID:  id,
		InstanceID: req.InstanceID,
	})
	if err != nil {
		c = writeError(w, err)
		return
	}

	writeJSON(w, c, map[string]any{"companion": out.Instance})
}
