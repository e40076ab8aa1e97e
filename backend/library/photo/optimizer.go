package photo

import (
	"image"
	"image/color"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"campus-board/backend/common"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
)

// Every stored asset is normalized to the same shape: flattened to RGB,
// capped at MaxDimension on the longest side and re-encoded as WEBP.
const (
	MaxDimension = 1200
	Quality      = 80
	Extension    = ".webp"
)

var unsafeNameChars = regexp.MustCompile(`[^A-Za-z0-9_.-]`)

// SaveOptimized decodes an uploaded image, flattens transparency, downscales
// it to fit MaxDimension (never upscales) and writes it into dir as
// `<6 hex chars>_<sanitized stem>.webp`. The random prefix makes collisions
// unlikely, not impossible.
func SaveOptimized(r io.Reader, originalName string, dir string) (string, error) {
	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return "", err
	}

	img = flatten(img)

	bounds := img.Bounds()
	if bounds.Dx() > MaxDimension || bounds.Dy() > MaxDimension {
		img = imaging.Fit(img, MaxDimension, MaxDimension, imaging.Lanczos)
	}

	name := common.RandomHex(3) + "_" + sanitizeStem(originalName) + Extension
	out, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return "", err
	}
	defer out.Close()

	if err := webp.Encode(out, img, &webp.Options{Quality: Quality}); err != nil {
		return "", err
	}
	return name, nil
}

// flatten composites the image onto a white canvas, permanently discarding any
// alpha channel or palette. Accepted lossy step.
func flatten(img image.Image) image.Image {
	bounds := img.Bounds()
	canvas := imaging.New(bounds.Dx(), bounds.Dy(), color.White)
	return imaging.Overlay(canvas, img, image.Pt(0, 0), 1.0)
}

// sanitizeStem strips the extension and anything shell- or path-hostile from a
// client-supplied filename.
func sanitizeStem(originalName string) string {
	base := filepath.Base(originalName)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	stem = strings.ReplaceAll(stem, " ", "_")
	stem = unsafeNameChars.ReplaceAllString(stem, "")
	stem = strings.Trim(stem, "._")
	if stem == "" {
		stem = "photo"
	}
	return stem
}

// FileResult records the outcome for one uploaded file.
type FileResult struct {
	OriginalName string `json:"original_name"`
	StoredName   string `json:"stored_name,omitempty"`
	Error        string `json:"error,omitempty"`
}

// Report aggregates per-file outcomes of a multi-file upload. Saved keeps the
// upload order of the files that made it to disk.
type Report struct {
	Saved   []string     `json:"saved"`
	Results []FileResult `json:"results"`
}

func (r *Report) FailedCount() int {
	failed := 0
	for _, result := range r.Results {
		if result.Error != "" {
			failed++
		}
	}
	return failed
}

// ProcessUploads pushes every uploaded file through SaveOptimized.
// Processing is best-effort per file: a corrupt or unsupported file is
// recorded in the report and logged, and the remaining files still go through.
func ProcessUploads(files []*multipart.FileHeader, dir string) Report {
	var report Report
	for _, fileHeader := range files {
		if fileHeader == nil || fileHeader.Filename == "" {
			continue
		}
		name, err := processOne(fileHeader, dir)
		if err != nil {
			common.SysError("failed to process upload " + fileHeader.Filename + ": " + err.Error())
			report.Results = append(report.Results, FileResult{
				OriginalName: fileHeader.Filename,
				Error:        err.Error(),
			})
			continue
		}
		report.Saved = append(report.Saved, name)
		report.Results = append(report.Results, FileResult{
			OriginalName: fileHeader.Filename,
			StoredName:   name,
		})
	}
	return report
}

func processOne(fileHeader *multipart.FileHeader, dir string) (string, error) {
	file, err := fileHeader.Open()
	if err != nil {
		return "", err
	}
	defer file.Close()
	return SaveOptimized(file, fileHeader.Filename, dir)
}
