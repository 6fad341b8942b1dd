package handlers

import (
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"yt-transcript/errors"
	"yt-transcript/middleware"
	"yt-transcript/models"
	"yt-transcript/transcript"
	"yt-transcript/utils"
	"yt-transcript/validation"
	"yt-transcript/web"
)

type Handler struct {
	service   *transcript.Service
	templates *web.Templates
	startTime time.Time
}

func New(service *transcript.Service, templates *web.Templates) *Handler {
	return &Handler{
		service:   service,
		templates: templates,
		startTime: time.Now(),
	}
}

type transcriptPage struct {
	VideoID   string
	Language  string
	ProxyUsed string
	Segments  []models.FormattedSegment
}

type errorPage struct {
	Message string
}

// Index serves the home page with usage instructions.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	h.renderHTML(w, r, http.StatusOK, "index", nil)
}

// Watch resolves the v query parameter to a video ID, fetches its
// transcript and renders it as HTML. Missing or unresolvable input gets a
// 400 error page; fetch failures get a 500 one.
func (h *Handler) Watch(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	raw := r.URL.Query().Get("v")
	if raw == "" {
		h.renderError(w, r, http.StatusBadRequest, "No video ID provided. Please use /watch?v=VIDEO_ID")
		return
	}

	videoID, ok := validation.ExtractVideoID(raw)
	if !ok {
		logger.WithField("input", raw).Warn("Could not resolve video ID")
		h.renderError(w, r, http.StatusBadRequest, "Invalid video ID format")
		return
	}

	result, err := h.service.Fetch(r.Context(), videoID)
	if err != nil {
		h.renderError(w, r, errors.Code(err), errors.Message(err))
		return
	}

	logger.WithFields(logrus.Fields{
		"video_id": videoID,
		"segments": len(result.Segments),
		"language": result.Language,
	}).Info("Transcript fetched")

	h.renderHTML(w, r, http.StatusOK, "transcript", transcriptPage{
		VideoID:   result.VideoID,
		Language:  result.Language,
		ProxyUsed: result.ProxyUsed,
		Segments:  result.Segments,
	})
}

// APITranscript serves a transcript as JSON. The path segment accepts the
// same inputs as the HTML page: a bare video ID or a full YouTube URL.
func (h *Handler) APITranscript(w http.ResponseWriter, r *http.Request) {
	const op = "Handler.APITranscript"
	logger := middleware.GetLogger(r.Context())

	raw := r.PathValue("id")
	if raw == "" {
		utils.RespondWithError(w, r, errors.InvalidInput(op, nil, "No video ID provided"))
		return
	}

	videoID, ok := validation.ExtractVideoID(raw)
	if !ok {
		utils.RespondWithError(w, r, errors.InvalidInput(op, nil, "Invalid video ID format"))
		return
	}

	result, err := h.service.Fetch(r.Context(), videoID)
	if err != nil {
		utils.RespondWithError(w, r, err)
		return
	}

	logger.WithFields(logrus.Fields{
		"video_id": videoID,
		"segments": len(result.Segments),
	}).Info("Transcript fetched")

	if err := utils.RespondJSON(w, http.StatusOK, models.NewTranscriptResponse(result)); err != nil {
		logger.WithError(err).Error("Failed to encode response")
	}
}

func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	response := struct {
		Status string `json:"status"`
		Uptime string `json:"uptime"`
	}{
		Status: "ok",
		Uptime: time.Since(h.startTime).Round(time.Second).String(),
	}

	if err := utils.RespondJSON(w, http.StatusOK, response); err != nil {
		middleware.GetLogger(r.Context()).WithError(err).Error("Failed to encode health check response")
	}
}

func (h *Handler) renderHTML(w http.ResponseWriter, r *http.Request, statusCode int, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(statusCode)
	if err := h.templates.Render(w, name, data); err != nil {
		middleware.GetLogger(r.Context()).WithFields(logrus.Fields{
			"template": name,
		}).WithError(err).Error("Failed to render template")
	}
}

func (h *Handler) renderError(w http.ResponseWriter, r *http.Request, statusCode int, message string) {
	logger := middleware.GetLogger(r.Context())
	if statusCode >= http.StatusInternalServerError {
		logger.WithField("message", message).Error("Transcript request failed")
	}
	h.renderHTML(w, r, statusCode, "error", errorPage{Message: message})
}
