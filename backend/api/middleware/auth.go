package middleware

import (
	"net/http"

	"campus-board/backend/common"
	"campus-board/backend/service"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// SessionGateToken is the session key the gate unlock handlers write.
const SessionGateToken = "gate_token"

func gateHelper(c *gin.Context, requiredScope string) {
	session := sessions.Default(c)
	raw := session.Get(SessionGateToken)
	tokenString, ok := raw.(string)
	if !ok || tokenString == "" {
		common.RespErrorStr(c, http.StatusUnauthorized, "this area is locked, unlock it first")
		c.Abort()
		return
	}
	claims, err := service.ValidateGateToken(tokenString)
	if err != nil {
		// Expired or tampered token behaves exactly like no token; drop it so
		// the next request goes straight to the unlock flow.
		session.Delete(SessionGateToken)
		_ = session.Save()
		common.RespErrorStr(c, http.StatusUnauthorized, "this area is locked, unlock it first")
		c.Abort()
		return
	}
	if !service.ScopeSatisfies(claims.Scope, requiredScope) {
		common.RespErrorStr(c, http.StatusForbidden, "insufficient access for this area")
		c.Abort()
		return
	}
	c.Set("gate_scope", claims.Scope)
	c.Next()
}

// HubAuth guards the landlord submission hub.
func HubAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		gateHelper(c, service.GateScopeHub)
	}
}

// AdminAuth guards the moderation console.
func AdminAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		gateHelper(c, service.GateScopeAdmin)
	}
}

// GateUnlocked reports whether the current session satisfies the scope without
// aborting the request. Used by the GET/POST branching on the gated pages.
func GateUnlocked(c *gin.Context, requiredScope string) bool {
	session := sessions.Default(c)
	raw := session.Get(SessionGateToken)
	tokenString, ok := raw.(string)
	if !ok || tokenString == "" {
		return false
	}
	claims, err := service.ValidateGateToken(tokenString)
	if err != nil {
		return false
	}
	return service.ScopeSatisfies(claims.Scope, requiredScope)
}
