package auth

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

const (
	AccessCookieName  = "accessToken"
	RefreshCookieName = "refreshToken"
)

// CookieConfig says how the session cookies are written. Both cookies
// are always httpOnly.
type CookieConfig struct {
	Path       string
	Domain     string
	Secure     bool
	SameSite   string // "Lax", "None" or "Strict"
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

func (cc CookieConfig) sameSiteMode() http.SameSite {
	switch strings.ToLower(cc.SameSite) {
	case "none":
		return http.SameSiteNoneMode
	case "strict":
		return http.SameSiteStrictMode
	default:
		return http.SameSiteLaxMode
	}
}

func (cc CookieConfig) setSession(c *gin.Context, access, refresh string) {
	cc.setAccess(c, access)
	c.SetSameSite(cc.sameSiteMode())
	c.SetCookie(RefreshCookieName, refresh, int(cc.RefreshTTL.Seconds()), cc.Path, cc.Domain, cc.Secure, true)
}

func (cc CookieConfig) setAccess(c *gin.Context, access string) {
	c.SetSameSite(cc.sameSiteMode())
	c.SetCookie(AccessCookieName, access, int(cc.AccessTTL.Seconds()), cc.Path, cc.Domain, cc.Secure, true)
}

// clearSession drops both cookies regardless of which were present.
func (cc CookieConfig) clearSession(c *gin.Context) {
	c.SetSameSite(cc.sameSiteMode())
	c.SetCookie(AccessCookieName, "", -1, cc.Path, cc.Domain, cc.Secure, true)
	c.SetCookie(RefreshCookieName, "", -1, cc.Path, cc.Domain, cc.Secure, true)
}
