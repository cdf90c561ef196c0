package api

import (
	"context"
	"errors"
	"hash/fnv"
	"io"
	"net/http"
	"strconv"
	"sync"
	"time"

	"menux/config"
	"menux/models"
	"menux/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Notifier forwards a composed order to restaurant staff.
type Notifier interface {
	NotifyOrder(ctx context.Context, rc models.RestaurantConfig, text string) error
}

type Handler struct {
	Catalogs services.CatalogProvider
	Sessions services.SessionStore
	Cfg      *config.Config
	Notifier Notifier                  // nil disables the relay
	Throttle *services.CheckoutThrottle // nil disables the cooldown

	locks [sessionLockStripes]sync.Mutex
}

// sessionLockStripes bounds lock memory; session ids are client supplied.
const sessionLockStripes = 64

const sideEffectTimeout = 10 * time.Second

type createSessionRequest struct {
	Lang string `json:"lang"`
}

// GetMenu returns the localized menu snapshot.
func (h *Handler) GetMenu(c *gin.Context) {
	cat, err := h.Catalogs.Catalog(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, "Menu retrieved", services.BuildMenuView(cat, c.Query("lang")))
}

func (h *Handler) CreateSession(c *gin.Context) {
	var req createSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body"})
		return
	}
	if req.Lang == "" {
		req.Lang = c.Query("lang")
	}

	ctx := c.Request.Context()
	cat, err := h.Catalogs.Catalog(ctx, c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	s := services.NewSession(uuid.NewString(), cat, req.Lang)
	if err := h.Sessions.Save(ctx, s); err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusCreated, "Session created", s.View())
}

func (h *Handler) GetSession(c *gin.Context) {
	s, err := h.Sessions.Get(c.Request.Context(), c.Param("sid"))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, "Session retrieved", s.View())
}

// PostEvent applies one UI event and returns the new view. A rejected event
// leaves the stored session as it was.
func (h *Handler) PostEvent(c *gin.Context) {
	var ev services.Event
	if err := c.ShouldBindJSON(&ev); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid event"})
		return
	}

	sid := c.Param("sid")
	unlock := h.lockSession(sid)
	defer unlock()

	ctx := c.Request.Context()
	s, cat, err := h.load(ctx, sid)
	if err != nil {
		fail(c, err)
		return
	}
	effect, err := s.Dispatch(cat, ev, h.Cfg.Checkout.Strict)
	if err != nil {
		fail(c, err)
		return
	}
	if err := h.Sessions.Save(ctx, s); err != nil {
		fail(c, err)
		return
	}

	view := s.View()
	if effect.ScrollTo != nil {
		view.Effect = &effect
	}
	ok(c, http.StatusOK, "Event applied", view)
}

// Checkout composes the order and hands the deep link back to the client.
// Relay and order log run after the response and never fail the request.
func (h *Handler) Checkout(c *gin.Context) {
	sid := c.Param("sid")
	unlock := h.lockSession(sid)
	defer unlock()

	ctx := c.Request.Context()
	if wait, err := h.Throttle.WaitSeconds(ctx, sid); err != nil {
		log.Warn().Err(err).Str("session", sid).Msg("checkout throttle unavailable")
	} else if wait > 0 {
		c.Header("Retry-After", strconv.Itoa(wait))
		c.JSON(http.StatusTooManyRequests, gin.H{"success": false, "message": "Order just sent, try again shortly", "data": gin.H{"retryAfter": wait}})
		return
	}

	s, cat, err := h.load(ctx, sid)
	if err != nil {
		fail(c, err)
		return
	}
	opener := services.OpenerFunc(func(_ context.Context, link string) {
		log.Debug().Str("session", sid).Str("url", link).Msg("deep link handed to client")
	})
	order, err := s.Checkout(ctx, h.Cfg.Checkout, cat.Restaurant, opener)
	if err != nil {
		fail(c, err)
		return
	}
	if err := h.Throttle.RecordCheckout(ctx, sid); err != nil {
		log.Warn().Err(err).Str("session", sid).Msg("record checkout")
	}

	go h.afterCheckout(cat.Restaurant, sid, order, s.Cart.Total().StringFixed(2))

	ok(c, http.StatusOK, "Order composed", order)
}

func (h *Handler) afterCheckout(rc models.RestaurantConfig, sid string, order services.Order, total string) {
	ctx, cancel := context.WithTimeout(context.Background(), sideEffectTimeout)
	defer cancel()

	meta := map[string]interface{}{"total": total, "url": order.URL}
	if err := services.SaveOrderMessage(ctx, rc.ID, sid, services.ChannelDeepLink, order.Recipient, order.Message, meta); err != nil {
		log.Error().Err(err).Str("session", sid).Msg("save order message")
	}

	if h.Notifier == nil || rc.TelegramChatID == 0 {
		return
	}
	if err := h.Notifier.NotifyOrder(ctx, rc, order.Message); err != nil {
		log.Error().Err(err).Str("session", sid).Int64("chat", rc.TelegramChatID).Msg("telegram relay")
		return
	}
	if err := services.SaveOrderMessage(ctx, rc.ID, sid, services.ChannelTelegram, "", order.Message, nil); err != nil {
		log.Error().Err(err).Str("session", sid).Msg("save relay message")
	}
}

func (h *Handler) load(ctx context.Context, sid string) (*services.Session, *models.Catalog, error) {
	s, err := h.Sessions.Get(ctx, sid)
	if err != nil {
		return nil, nil, err
	}
	cat, err := h.Catalogs.Catalog(ctx, s.RestaurantID)
	if err != nil {
		return nil, nil, err
	}
	return s, cat, nil
}

// lockSession serialises requests for one session. Sessions sharing a
// stripe also wait on each other.
func (h *Handler) lockSession(sid string) func() {
	mu := h.lockFor(sid)
	mu.Lock()
	return mu.Unlock
}

func (h *Handler) lockFor(sid string) *sync.Mutex {
	f := fnv.New32a()
	_, _ = f.Write([]byte(sid))
	return &h.locks[f.Sum32()%sessionLockStripes]
}

func ok(c *gin.Context, status int, message string, data interface{}) {
	c.JSON(status, gin.H{
		"success": true,
		"message": message,
		"data":    data,
	})
}

func fail(c *gin.Context, err error) {
	status := statusFor(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		log.Error().Err(err).Str("path", c.FullPath()).Msg("request failed")
		message = "Internal server error"
	}
	c.JSON(status, gin.H{"success": false, "message": message})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, services.ErrRestaurantNotFound), errors.Is(err, services.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrEmptyCart):
		return http.StatusConflict
	case errors.Is(err, services.ErrInvalidForm), errors.Is(err, services.ErrMissingModifier):
		return http.StatusUnprocessableEntity
	case errors.Is(err, services.ErrUnknownEvent),
		errors.Is(err, services.ErrUnknownField),
		errors.Is(err, services.ErrUnknownItem),
		errors.Is(err, services.ErrInvalidFulfillment),
		errors.Is(err, services.ErrNoItemOpen):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
