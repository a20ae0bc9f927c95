package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// NewRouter assembles the route table. Login, MFA verification, registration
// and the health probe are public; everything else sits behind the bearer
// middleware.
func NewRouter(h *Handlers, secretKey []byte) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/healthz", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) })

	public := r.Group("/auth")
	public.POST("/login", h.Login)
	public.POST("/mfa/verify", h.VerifyMFA)
	public.POST("/register", h.Register)

	private := r.Group("/", AuthRequired(h.auth, secretKey))
	private.GET("/auth/me", h.Me)
	private.POST("/auth/logout", h.Logout)
	private.POST("/auth/onboarding", h.Onboarding)
	private.POST("/auth/photo", h.Photo)
	private.POST("/documents/presign", h.PresignDocument)
	private.POST("/documents/confirm", h.ConfirmDocument)
	private.GET("/documents", h.ListDocuments)

	return r
}
