package handler

import (
	"net/http"
	"strconv"

	"campus-board/backend/api/middleware"
	"campus-board/backend/common"
	"campus-board/backend/library/photo"
	"campus-board/backend/model"
	"campus-board/backend/service"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// GetPublicListings is the student view: verified listings newest first, the
// school list for filtering, and any queued notices.
func GetPublicListings(c *gin.Context) {
	houses, err := model.GetVerifiedBoardings()
	if err != nil {
		common.RespError(c, http.StatusInternalServerError, "failed to load listings", err)
		return
	}
	schools, err := model.GetAllSchools()
	if err != nil {
		common.RespError(c, http.StatusInternalServerError, "failed to load schools", err)
		return
	}
	common.RespSuccess(c, gin.H{
		"houses":  houses,
		"schools": schools,
		"notices": popFlashes(c),
	})
}

// GetLandlordHub renders the hub state: locked, or the submission form data.
func GetLandlordHub(c *gin.Context) {
	if !middleware.GateUnlocked(c, service.GateScopeHub) {
		common.RespSuccess(c, gin.H{"unlocked": false})
		return
	}
	schools, err := model.GetAllSchools()
	if err != nil {
		common.RespError(c, http.StatusInternalServerError, "failed to load schools", err)
		return
	}
	common.RespSuccess(c, gin.H{
		"unlocked": true,
		"schools":  schools,
	})
}

// PostLandlordHub multiplexes the hub POST the same way the page does: a
// locked session makes it a gate-unlock attempt, an unlocked one a listing
// submission.
func PostLandlordHub(c *gin.Context) {
	if !middleware.GateUnlocked(c, service.GateScopeHub) {
		unlockGate(c, service.GateScopeHub, c.PostForm("hub_password"), common.HubPinHash, "Invalid Access PIN")
		return
	}
	submitListing(c)
}

// unlockGate checks a submitted secret against the configured credential hash
// and, on match, stores a fresh signed gate token in the session. A bad
// credential is an inline error, no lockout beyond the rate limiter.
func unlockGate(c *gin.Context, scope string, submitted string, credentialHash string, badCredentialMsg string) {
	if submitted == "" || !common.ValidatePasswordAndHash(submitted, credentialHash) {
		common.RespErrorStr(c, http.StatusUnauthorized, badCredentialMsg)
		return
	}
	token, err := service.GenerateGateToken(scope)
	if err != nil {
		common.RespError(c, http.StatusInternalServerError, "failed to issue gate token", err)
		return
	}
	session := sessions.Default(c)
	session.Set(middleware.SessionGateToken, token)
	if err := session.Save(); err != nil {
		common.RespError(c, http.StatusInternalServerError, "failed to save session", err)
		return
	}
	c.Redirect(http.StatusFound, c.Request.URL.Path)
}

type submissionPayload struct {
	Name     string `validate:"required"`
	Location string
	Phone    string
	Distance string
	MapURL   string
}

func submitListing(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		common.RespError(c, http.StatusBadRequest, "invalid submission form", err)
		return
	}

	payload := submissionPayload{
		Name:     c.PostForm("name"),
		Location: c.PostForm("location"),
		Phone:    c.PostForm("phone"),
		Distance: c.PostForm("distance"),
		MapURL:   c.PostForm("map_url"),
	}
	if err := common.Validate.Struct(&payload); err != nil {
		common.RespError(c, http.StatusBadRequest, "invalid submission", err)
		return
	}

	// Price is stored as given; a non-numeric value degrades to zero.
	price, _ := strconv.Atoi(c.PostForm("price"))

	// Best-effort image processing: broken files are dropped from the report
	// and the submission carries on with the rest.
	report := photo.ProcessUploads(form.File["photos"], common.UploadPath)

	boarding := &model.Boarding{
		Name:     payload.Name,
		Location: payload.Location,
		Price:    price,
		Phone:    payload.Phone,
		Distance: payload.Distance,
		MapURL:   payload.MapURL,
	}
	boarding.SetInstitutions(form.Value["institution"])
	boarding.SetAmenityList(form.Value["amenities"])
	boarding.SetImageList(report.Saved)

	if err := boarding.Insert(); err != nil {
		// Saved image files are orphaned here; accepted, there is no
		// transactional link between the upload dir and the row.
		common.RespError(c, http.StatusInternalServerError, "failed to store listing", err)
		return
	}

	addFlash(c, "Property submitted! It will appear once verified by admin.")
	c.Redirect(http.StatusFound, "/")
}

// GetHubSchools serves the institution choices for the gated submission form.
func GetHubSchools(c *gin.Context) {
	schools, err := model.GetAllSchools()
	if err != nil {
		common.RespError(c, http.StatusInternalServerError, "failed to load schools", err)
		return
	}
	common.RespSuccess(c, schools)
}
