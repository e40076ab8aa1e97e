package handler

import (
	"encoding/gob"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const sessionFlashKey = "flash"

func init() {
	// Flash notices ride the session as a string slice.
	gob.Register([]string{})
}

// addFlash queues a transient notice for the next page load.
func addFlash(c *gin.Context, message string) {
	session := sessions.Default(c)
	notices, _ := session.Get(sessionFlashKey).([]string)
	notices = append(notices, message)
	session.Set(sessionFlashKey, notices)
	_ = session.Save()
}

// popFlashes drains queued notices. Never nil, so the JSON field is always an
// array.
func popFlashes(c *gin.Context) []string {
	session := sessions.Default(c)
	notices, _ := session.Get(sessionFlashKey).([]string)
	if len(notices) > 0 {
		session.Delete(sessionFlashKey)
		_ = session.Save()
	}
	if notices == nil {
		notices = []string{}
	}
	return notices
}
