package handler_test

import (
	"encoding/json"
	"net/http"
	"net/url"
	"os"
	"strings"
	"testing"

	"campus-board/backend/common"
	"campus-board/backend/library/photo"
	"campus-board/backend/model"

	"github.com/stretchr/testify/assert"
)

type publicViewData struct {
	Houses  []model.Boarding `json:"houses"`
	Schools []model.School   `json:"schools"`
	Notices []string         `json:"notices"`
}

func TestHubStartsLocked(t *testing.T) {
	router, teardown := setupHandlerTest(t)
	defer teardown()

	resp := getWithCookie(t, router, "/landlord", "")
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"unlocked":false`)
}

func TestHubUnlockWithWrongPin(t *testing.T) {
	router, teardown := setupHandlerTest(t)
	defer teardown()

	resp := postForm(t, router, "/landlord", url.Values{"hub_password": {"0000"}}, "")
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
	assert.Contains(t, resp.Body.String(), "Invalid Access PIN")
}

func TestHubUnlockShowsSchools(t *testing.T) {
	router, teardown := setupHandlerTest(t)
	defer teardown()

	assert.NoError(t, model.AddSchoolIfAbsent("Tech U", "1", "2"))
	hubCookie := unlockHub(t, router)

	resp := getWithCookie(t, router, "/landlord", hubCookie)
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"unlocked":true`)
	assert.Contains(t, resp.Body.String(), "Tech U")
}

func TestSubmitListingScenario(t *testing.T) {
	router, teardown := setupHandlerTest(t)
	defer teardown()

	hubCookie := unlockHub(t, router)

	resp := postSubmission(t, router, submission{
		fields: map[string]string{
			"name":     "Blue House",
			"location": "12 Campus Road",
			"price":    "5000",
			"phone":    "0771234567",
			"distance": "500m",
			"map_url":  "https://maps.example/blue-house",
		},
		multi: map[string][]string{
			"institution": {"Tech U", "City College"},
			"amenities":   {"wifi", "laundry"},
		},
		photos: map[string][]byte{
			"front view.jpg": testJPEGBytes(t, 640, 480),
		},
	}, hubCookie)
	assert.Equal(t, http.StatusFound, resp.Code)
	assert.Equal(t, "/", resp.Header().Get("Location"))

	houses, err := model.GetAllBoardingsForReview()
	assert.NoError(t, err)
	assert.Len(t, houses, 1)

	house := houses[0]
	assert.Equal(t, "Blue House", house.Name)
	assert.Equal(t, 5000, house.Price)
	assert.False(t, house.Verified)
	assert.Equal(t, "Tech U|City College", house.Institution)
	assert.Equal(t, "wifi,laundry", house.Amenities)

	images := house.ImageList()
	assert.Len(t, images, 1)
	assert.True(t, strings.HasSuffix(images[0], photo.Extension))

	_, err = os.Stat(common.UploadPath + "/" + images[0])
	assert.NoError(t, err)

	// The confirmation notice is queued for the public page.
	publicResp := getWithCookie(t, router, "/", sessionCookie(resp, hubCookie))
	apiResp := decodeAPIResponse(t, publicResp)
	var data publicViewData
	assert.NoError(t, json.Unmarshal(apiResp.Data, &data))
	assert.Contains(t, data.Notices, "Property submitted! It will appear once verified by admin.")
	// Not verified yet, so not publicly visible.
	assert.Empty(t, data.Houses)
}

func TestSubmitWithoutUnlockIsAGateAttempt(t *testing.T) {
	router, teardown := setupHandlerTest(t)
	defer teardown()

	resp := postSubmission(t, router, submission{
		fields: map[string]string{"name": "Sneaky House"},
	}, "")
	assert.Equal(t, http.StatusUnauthorized, resp.Code)

	houses, err := model.GetAllBoardingsForReview()
	assert.NoError(t, err)
	assert.Empty(t, houses)
}

func TestSubmitSkipsCorruptPhotos(t *testing.T) {
	router, teardown := setupHandlerTest(t)
	defer teardown()

	hubCookie := unlockHub(t, router)
	resp := postSubmission(t, router, submission{
		fields: map[string]string{"name": "Patchy House"},
		photos: map[string][]byte{
			"broken.jpg": []byte("not an image at all"),
		},
	}, hubCookie)
	assert.Equal(t, http.StatusFound, resp.Code)

	houses, err := model.GetAllBoardingsForReview()
	assert.NoError(t, err)
	assert.Len(t, houses, 1)
	assert.Empty(t, houses[0].ImageList())
}

func TestSubmitWithoutNameIsRejected(t *testing.T) {
	router, teardown := setupHandlerTest(t)
	defer teardown()

	hubCookie := unlockHub(t, router)
	resp := postSubmission(t, router, submission{
		fields: map[string]string{"location": "nowhere"},
	}, hubCookie)
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestPublicViewShowsOnlyVerified(t *testing.T) {
	router, teardown := setupHandlerTest(t)
	defer teardown()

	hidden := &model.Boarding{Name: "Hidden"}
	assert.NoError(t, hidden.Insert())
	visible := &model.Boarding{Name: "Visible"}
	assert.NoError(t, visible.Insert())
	assert.NoError(t, model.VerifyBoardingById(visible.ID))

	resp := getWithCookie(t, router, "/", "")
	apiResp := decodeAPIResponse(t, resp)
	var data publicViewData
	assert.NoError(t, json.Unmarshal(apiResp.Data, &data))
	assert.Len(t, data.Houses, 1)
	assert.Equal(t, "Visible", data.Houses[0].Name)
}

func TestHubSchoolsAPIRequiresGate(t *testing.T) {
	router, teardown := setupHandlerTest(t)
	defer teardown()

	resp := getWithCookie(t, router, "/api/hub/schools", "")
	assert.Equal(t, http.StatusUnauthorized, resp.Code)

	hubCookie := unlockHub(t, router)
	resp = getWithCookie(t, router, "/api/hub/schools", hubCookie)
	assert.Equal(t, http.StatusOK, resp.Code)
}
