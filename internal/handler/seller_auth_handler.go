package handler

import (
	"net/http"
	"time"

	"github.com/Raviram02/HostelBite/internal/config"
	"github.com/Raviram02/HostelBite/internal/middleware"
	"github.com/Raviram02/HostelBite/internal/usecase"
	"github.com/Raviram02/HostelBite/internal/validator"

	"github.com/labstack/echo/v4"
)

// /api/seller
type SellerAuthHandler struct {
	uc  *usecase.SellerAuthUsecase
	cfg config.Config
}

func NewSellerAuthHandler(uc *usecase.SellerAuthUsecase, cfg config.Config) *SellerAuthHandler {
	return &SellerAuthHandler{uc: uc, cfg: cfg}
}

type SellerLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SellerLoginResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Token   string `json:"token"`
}

func (h *SellerAuthHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api/seller")

	g.POST("/login", h.login)
	g.GET("/is-auth", h.isAuth, middleware.AuthJWT(h.cfg), middleware.SellerRoleGuard())
	g.POST("/logout", h.logout)
}

func (h *SellerAuthHandler) login(c echo.Context) error {
	var req SellerLoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, fail("invalid body"))
	}
	if err := validator.ValidateSellerLogin(req.Email, req.Password); err != nil {
		return c.JSON(http.StatusBadRequest, fail("Enter a valid email and password"))
	}

	out, err := h.uc.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return writeError(c, err)
	}

	c.SetCookie(h.sellerCookie(out.Token, out.ExpiresAt))
	return c.JSON(http.StatusOK, SellerLoginResponse{Success: true, Message: "Logged In", Token: out.Token})
}

func (h *SellerAuthHandler) isAuth(c echo.Context) error {
	return c.JSON(http.StatusOK, success("Authorized"))
}

func (h *SellerAuthHandler) logout(c echo.Context) error {
	ck := h.sellerCookie("", time.Unix(0, 0))
	ck.MaxAge = -1
	c.SetCookie(ck)
	return c.JSON(http.StatusOK, success("Logged Out"))
}

// cross-site in production, where the dashboard and API live on different hosts
func (h *SellerAuthHandler) sellerCookie(value string, expires time.Time) *http.Cookie {
	sameSite := http.SameSiteStrictMode
	if h.cfg.CookieSecure {
		sameSite = http.SameSiteNoneMode
	}
	return &http.Cookie{
		Name:     middleware.SellerCookie,
		Value:    value,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   h.cfg.CookieSecure,
		SameSite: sameSite,
	}
}
