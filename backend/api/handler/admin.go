package handler

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"campus-board/backend/api/middleware"
	"campus-board/backend/common"
	"campus-board/backend/model"
	"campus-board/backend/service"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// GetAdminConsole renders the console state: locked, or the full review queue.
func GetAdminConsole(c *gin.Context) {
	if !middleware.GateUnlocked(c, service.GateScopeAdmin) {
		common.RespSuccess(c, gin.H{"unlocked": false})
		return
	}
	respondReviewQueue(c, true)
}

// GetReviewQueue is the JSON mirror of the console, guarded by AdminAuth.
func GetReviewQueue(c *gin.Context) {
	respondReviewQueue(c, false)
}

func respondReviewQueue(c *gin.Context, withNotices bool) {
	houses, err := model.GetAllBoardingsForReview()
	if err != nil {
		common.RespError(c, http.StatusInternalServerError, "failed to load listings", err)
		return
	}
	schools, err := model.GetAllSchools()
	if err != nil {
		common.RespError(c, http.StatusInternalServerError, "failed to load schools", err)
		return
	}
	data := gin.H{
		"unlocked": true,
		"houses":   houses,
		"schools":  schools,
	}
	if withNotices {
		data["notices"] = popFlashes(c)
	}
	common.RespSuccess(c, data)
}

// PostAdminConsole multiplexes the console POST: gate unlock when locked,
// otherwise exactly one moderation action.
func PostAdminConsole(c *gin.Context) {
	if !middleware.GateUnlocked(c, service.GateScopeAdmin) {
		unlockGate(c, service.GateScopeAdmin, c.PostForm("admin_password"), common.AdminPasswordHash, "Incorrect Admin Password")
		return
	}

	_, verify := c.GetPostForm("verify")
	_, remove := c.GetPostForm("delete")
	_, addSchool := c.GetPostForm("add_school")

	markers := 0
	for _, set := range []bool{verify, remove, addSchool} {
		if set {
			markers++
		}
	}
	if markers != 1 {
		common.RespErrorStr(c, http.StatusBadRequest, "exactly one action is expected")
		return
	}

	switch {
	case verify:
		verifyListing(c)
	case remove:
		deleteListing(c)
	case addSchool:
		addSchoolAction(c)
	}
}

func postFormID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.PostForm("id"), 10, 64)
	if err != nil || id <= 0 {
		common.RespErrorStr(c, http.StatusBadRequest, "invalid listing id")
		return 0, false
	}
	return id, true
}

func verifyListing(c *gin.Context) {
	id, ok := postFormID(c)
	if !ok {
		return
	}
	if err := model.VerifyBoardingById(id); err != nil {
		common.RespError(c, http.StatusInternalServerError, "failed to verify listing", err)
		return
	}
	addFlash(c, fmt.Sprintf("House #%d is now LIVE.", id))
	c.Redirect(http.StatusFound, "/admin")
}

func deleteListing(c *gin.Context) {
	id, ok := postFormID(c)
	if !ok {
		return
	}

	// File cleanup runs before the row goes away; a file that is already
	// missing is skipped, and a failed removal does not block the delete.
	boarding, err := model.GetBoardingById(id)
	if err == nil {
		removeUploadFiles(boarding.ImageList())
	}

	if _, err := model.DeleteBoardingById(id); err != nil {
		common.RespError(c, http.StatusInternalServerError, "failed to delete listing", err)
		return
	}
	addFlash(c, fmt.Sprintf("House #%d deleted successfully.", id))
	c.Redirect(http.StatusFound, "/admin")
}

func removeUploadFiles(names []string) {
	for _, name := range names {
		if name == "" {
			continue
		}
		// Base strips any path a hostile row value could smuggle in.
		path := filepath.Join(common.UploadPath, filepath.Base(name))
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			common.SysError("failed to remove upload " + path + ": " + err.Error())
		}
	}
}

func addSchoolAction(c *gin.Context) {
	name := c.PostForm("school_name")
	if name == "" {
		common.RespErrorStr(c, http.StatusBadRequest, "school_name is required")
		return
	}
	if err := model.AddSchoolIfAbsent(name, c.PostForm("lat"), c.PostForm("lng")); err != nil {
		common.RespError(c, http.StatusInternalServerError, "failed to add school", err)
		return
	}
	addFlash(c, "School list updated.")
	c.Redirect(http.StatusFound, "/admin")
}

// AdminLogout clears the whole session, gate token and pending notices alike.
func AdminLogout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	if err := session.Save(); err != nil {
		common.RespError(c, http.StatusInternalServerError, "failed to clear session", err)
		return
	}
	c.Redirect(http.StatusFound, "/")
}
