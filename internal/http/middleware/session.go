package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SessionCfg struct {
	DB         *gorm.DB
	CookieName string
	Secure     bool
	TTL        time.Duration
}

// Session is a database-backed session row. The cookie carries only the
// session id; everything else lives server side.
type Session struct {
	ID         string    `gorm:"primaryKey;type:char(36)"`
	UserID     string    `gorm:"type:char(36);not null;index:ix_sessions_user_id"`
	ExpiresAt  time.Time `gorm:"type:datetime(3);not null"`
	CreatedAt  time.Time `gorm:"type:datetime(3);not null"`
	LastSeenAt time.Time `gorm:"type:datetime(3);not null"`
}

func (Session) TableName() string { return "sessions" }

// SessionMiddleware resolves the session cookie to a user and puts the
// user on the context. Anonymous requests pass through untouched.
func SessionMiddleware(cfg SessionCfg) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, err := c.Cookie(cfg.CookieName)
		if err != nil || sessionID == "" {
			c.Next()
			return
		}

		var sess Session
		if err := cfg.DB.WithContext(c.Request.Context()).
			Where("id = ? AND expires_at > ?", sessionID, time.Now()).
			First(&sess).Error; err != nil {
			// Expired or unknown session, drop the cookie.
			c.SetCookie(cfg.CookieName, "", -1, "/", "", cfg.Secure, true)
			c.Next()
			return
		}

		var email, role string
		row := cfg.DB.WithContext(c.Request.Context()).
			Table("users").Select("email", "role").
			Where("id = ?", sess.UserID).Row()
		if err := row.Scan(&email, &role); err != nil {
			c.Next()
			return
		}

		c.Set("session", &sess)
		c.Set("current_user", ContextUser{ID: sess.UserID, Email: email, Role: role})

		c.Next()
	}
}

func CreateSession(cfg SessionCfg, userID string) (*Session, error) {
	now := time.Now()
	sess := &Session{
		ID:         uuid.NewString(),
		UserID:     userID,
		ExpiresAt:  now.Add(cfg.TTL),
		CreatedAt:  now,
		LastSeenAt: now,
	}
	if err := cfg.DB.Create(sess).Error; err != nil {
		return nil, err
	}
	return sess, nil
}

func DeleteSession(cfg SessionCfg, sessionID string) error {
	return cfg.DB.Delete(&Session{}, "id = ?", sessionID).Error
}

// ContextUser is the authenticated user as seen by handlers.
type ContextUser struct {
	ID    string
	Email string
	Role  string
}

func CurrentUser(c *gin.Context) (ContextUser, bool) {
	v, ok := c.Get("current_user")
	if !ok {
		return ContextUser{}, false
	}
	u, ok := v.(ContextUser)
	if !ok || u.ID == "" {
		return ContextUser{}, false
	}
	return u, true
}
