package api

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Skufu/healthlens/internal/detect"
	"github.com/Skufu/healthlens/internal/gamification"
	"github.com/Skufu/healthlens/internal/risk"
)

type riskRequest struct {
	risk.HealthProfile
	JourneyID string `json:"journeyId"`
}

type riskResponse struct {
	risk.Assessment
	Events []gamification.Event `json:"events,omitempty"`
}

func (h *handler) assessRisk(c *gin.Context) {
	var req riskRequest
	if !bindJSON(c, &req) {
		return
	}

	tracker, ok := h.optionalJourney(c, req.JourneyID)
	if !ok {
		return
	}

	resp := riskResponse{Assessment: risk.Assess(req.HealthProfile)}
	if tracker != nil {
		evs, err := tracker.Progress(gamification.AchievementRiskAssessment, 1)
		if err != nil {
			h.Log.Error("risk achievement progress failed", zap.Error(err))
		}
		resp.Events = evs
	}
	c.JSON(http.StatusOK, resp)
}

type uploadFailure struct {
	File  string `json:"file"`
	Error string `json:"error"`
}

type detection struct {
	File string `json:"file"`
	detect.Result
}

type detectResponse struct {
	Results  []detection     `json:"results"`
	Rejected []uploadFailure `json:"rejected,omitempty"`
}

// detectImages analyzes the valid uploads and reports the rest per file. Files
// past MaxImages are skipped. It fails only when nothing could be analyzed.
func (h *handler) detectImages(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			abort(c, http.StatusRequestEntityTooLarge, detect.ErrImageTooLarge.Error())
			return
		}
		abort(c, http.StatusBadRequest, "expected multipart form with images")
		return
	}

	files := form.File["images"]
	if len(files) == 0 {
		abort(c, http.StatusBadRequest, detect.ErrNoImages.Error())
		return
	}

	images := make([]detect.Image, 0, detect.MaxImages)
	var rejected []uploadFailure
	for i, fh := range files {
		if i >= detect.MaxImages {
			rejected = append(rejected, uploadFailure{File: fh.Filename, Error: detect.ErrTooManyImages.Error()})
			continue
		}
		data, err := readUpload(fh)
		if err == nil {
			err = detect.ValidateImage(fh.Filename, data)
		}
		if err != nil {
			rejected = append(rejected, uploadFailure{File: fh.Filename, Error: userMessage(err)})
			continue
		}
		images = append(images, detect.Image{Name: fh.Filename, Data: data})
	}
	if len(images) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_upload", "files": rejected})
		return
	}

	results, err := h.Analyzer.AnalyzeAll(c.Request.Context(), images)
	if err != nil {
		h.Log.Warn("image analysis aborted", zap.Error(err))
		abort(c, http.StatusServiceUnavailable, "analysis canceled")
		return
	}

	resp := detectResponse{Results: make([]detection, len(results)), Rejected: rejected}
	for i, r := range results {
		resp.Results[i] = detection{File: images[i].Name, Result: r}
	}
	c.JSON(http.StatusOK, resp)
}

func readUpload(fh *multipart.FileHeader) ([]byte, error) {
	if fh.Size > detect.MaxImageSize {
		return nil, detect.ErrImageTooLarge
	}
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, detect.MaxImageSize+1))
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	return data, nil
}

// userMessage strips the file prefix from upload errors; the file is reported
// separately.
func userMessage(err error) string {
	var ue *detect.UploadError
	if errors.As(err, &ue) {
		return ue.Err.Error()
	}
	return err.Error()
}

func (h *handler) listDiseases(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"diseases": h.Analyzer.Catalog().All(), "disclaimer": detect.Disclaimer})
}

func (h *handler) getDisease(c *gin.Context) {
	cand, ok := h.Analyzer.Catalog().Lookup(c.Param("name"))
	if !ok {
		abort(c, http.StatusNotFound, "disease not found")
		return
	}
	c.JSON(http.StatusOK, cand)
}
