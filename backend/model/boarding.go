package model

import (
	"errors"
	"strings"

	cberrors "campus-board/backend/common/errors"

	"github.com/burugo/thing"
	thingCommon "github.com/burugo/thing/common"
)

// Boarding represents a single boarding-house listing. Multi-value fields are
// stored as delimited text and only touched through the typed accessors below;
// the delimiters are a storage detail, not part of the API.
type Boarding struct {
	thing.BaseModel
	Name        string `db:"name" json:"name"`
	Location    string `db:"location" json:"location"`
	Price       int    `db:"price" json:"price"`
	Phone       string `db:"phone" json:"phone"`
	Institution string `db:"institution" json:"institution"` // pipe-joined institution names
	Distance    string `db:"distance" json:"distance"`
	Images      string `db:"images" json:"images"` // comma-joined stored filenames, upload order
	MapURL      string `db:"map_url" json:"map_url"`
	Amenities   string `db:"amenities" json:"amenities"` // comma-joined amenity tags
	Verified    bool   `db:"verified" json:"verified"`
}

func (b *Boarding) TableName() string {
	return "boarding"
}

var BoardingDB *thing.Thing[*Boarding]

func BoardingInit() error {
	var err error
	BoardingDB, err = thing.Use[*Boarding]()
	return err
}

func splitList(joined string, sep string) []string {
	if joined == "" {
		return nil
	}
	return strings.Split(joined, sep)
}

// Institutions returns the associated institution names.
func (b *Boarding) Institutions() []string {
	return splitList(b.Institution, "|")
}

func (b *Boarding) SetInstitutions(names []string) {
	b.Institution = strings.Join(names, "|")
}

// Amenities as a tag list.
func (b *Boarding) AmenityList() []string {
	return splitList(b.Amenities, ",")
}

func (b *Boarding) SetAmenityList(tags []string) {
	b.Amenities = strings.Join(tags, ",")
}

// ImageList returns the stored image filenames in upload order.
func (b *Boarding) ImageList() []string {
	return splitList(b.Images, ",")
}

func (b *Boarding) SetImageList(names []string) {
	b.Images = strings.Join(names, ",")
}

// Insert stores the listing. New listings are never publicly visible until an
// admin verifies them, whatever the caller put in the struct.
func (b *Boarding) Insert() error {
	b.Verified = false
	return BoardingDB.Save(b)
}

// GetBoardingById fetches one listing.
func GetBoardingById(id int64) (*Boarding, error) {
	if id == 0 {
		return nil, cberrors.New(cberrors.ErrEmptyID, "listing id is empty")
	}
	boarding, err := BoardingDB.ByID(id)
	if err != nil {
		return nil, mapFetchError(err)
	}
	return boarding, nil
}

// mapFetchError classifies an ORM fetch failure. Only the absent-row sentinel
// becomes ErrListingNotFound; anything else keeps surfacing as an error so
// callers never mistake a broken fetch for a stale id.
func mapFetchError(err error) error {
	if errors.Is(err, thingCommon.ErrNotFound) {
		return cberrors.Wrap(err, cberrors.ErrListingNotFound, "listing not found")
	}
	return err
}

// GetVerifiedBoardings returns the public view: verified listings only, most
// recent first.
func GetVerifiedBoardings() ([]*Boarding, error) {
	return BoardingDB.Where("verified = ?", true).Order("id DESC").All()
}

// GetAllBoardingsForReview returns every listing for the admin console,
// unverified rows first, most recent first within each group.
func GetAllBoardingsForReview() ([]*Boarding, error) {
	return BoardingDB.Order("verified ASC, id DESC").All()
}

// VerifyBoardingById flips the verified flag to true. There is no reverse
// operation. A stale id is an explicit no-op, not an error.
func VerifyBoardingById(id int64) error {
	boarding, err := GetBoardingById(id)
	if err != nil {
		if cberrors.Is(err, cberrors.ErrListingNotFound) {
			return nil
		}
		return err
	}
	if boarding.Verified {
		return nil
	}
	boarding.Verified = true
	return BoardingDB.Save(boarding)
}

// DeleteBoardingById removes the row and returns the image filenames it
// referenced so the caller can reconcile the upload directory. A stale id is an
// explicit no-op returning no filenames.
func DeleteBoardingById(id int64) ([]string, error) {
	boarding, err := GetBoardingById(id)
	if err != nil {
		if cberrors.Is(err, cberrors.ErrListingNotFound) {
			return nil, nil
		}
		return nil, err
	}
	images := boarding.ImageList()
	if err := BoardingDB.Delete(boarding); err != nil {
		return nil, err
	}
	return images, nil
}
