package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"volnasup.ru/shop/internal/http/cartcookie"
	"volnasup.ru/shop/internal/http/middleware"
	"volnasup.ru/shop/internal/http/render"
	"volnasup.ru/shop/internal/http/validation"
	"volnasup.ru/shop/internal/modules/cart"
	"volnasup.ru/shop/internal/modules/users"
	"volnasup.ru/shop/internal/shared/apperr"
)

type AuthHandler struct {
	svc      *users.Service
	sessCfg  middleware.SessionCfg
	cartRepo *cart.Repo
	codec    *cartcookie.Codec
}

func NewAuthHandler(svc *users.Service, sessCfg middleware.SessionCfg, cartRepo *cart.Repo, codec *cartcookie.Codec) *AuthHandler {
	return &AuthHandler{svc: svc, sessCfg: sessCfg, cartRepo: cartRepo, codec: codec}
}

type registerInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8,max=72"`
	Name     string `json:"name" binding:"required,min=2,max=255"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var in registerInput
	if err := c.ShouldBindJSON(&in); err != nil {
		middleware.Fail(c, apperr.InvalidErr("Проверьте введённые данные.", validation.FromBindError(err, &in)))
		return
	}

	u, err := h.svc.Register(c.Request.Context(), in.Email, in.Password, in.Name)
	if err != nil {
		middleware.Fail(c, err)
		return
	}

	h.startSession(c, u)
	render.JSON(c, http.StatusCreated, gin.H{"email": u.Email, "name": u.Name})
}

type loginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var in loginInput
	if err := c.ShouldBindJSON(&in); err != nil {
		middleware.Fail(c, apperr.InvalidErr("Проверьте введённые данные.", validation.FromBindError(err, &in)))
		return
	}

	u, err := h.svc.Login(c.Request.Context(), in.Email, in.Password)
	if err != nil {
		middleware.Fail(c, err)
		return
	}

	h.startSession(c, u)
	render.JSON(c, http.StatusOK, gin.H{"email": u.Email, "name": u.Name, "role": u.Role})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	if v, ok := c.Get("session"); ok {
		if sess, ok := v.(*middleware.Session); ok {
			_ = middleware.DeleteSession(h.sessCfg, sess.ID)
		}
	}
	c.SetCookie(h.sessCfg.CookieName, "", -1, "/", "", h.sessCfg.Secure, true)
	render.NoContent(c)
}

// Me runs behind RequireAuth, so the user is always present.
func (h *AuthHandler) Me(c *gin.Context) {
	u, _ := middleware.CurrentUser(c)
	render.JSON(c, http.StatusOK, gin.H{"email": u.Email, "role": u.Role})
}

// startSession issues the session cookie and folds a guest cart into
// the user's DB cart.
func (h *AuthHandler) startSession(c *gin.Context, u users.User) {
	sess, err := middleware.CreateSession(h.sessCfg, u.ID)
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.sessCfg.CookieName, sess.ID, int(h.sessCfg.TTL.Seconds()), "/", "", h.sessCfg.Secure, true)

	if guest, _ := h.codec.Get(c); guest != nil && len(guest.Items) > 0 {
		if dbCart, err := h.cartRepo.GetOrCreateOpenCart(c.Request.Context(), u.ID); err == nil {
			_ = h.cartRepo.MergeGuestItems(c.Request.Context(), dbCart.ID, guest)
		}
		h.codec.Clear(c)
	}
}
