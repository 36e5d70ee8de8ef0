package api

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"classtrack/internal/attendance"
	"classtrack/internal/qrlink"
)

// Handler serves the attendance endpoints over an injected service.
type Handler struct {
	svc        *attendance.Service
	trackerURL string
	qrSize     int
}

// NewHandler creates a handler. trackerURL is the front-end page the QR
// code points at.
func NewHandler(svc *attendance.Service, trackerURL string, qrSize int) *Handler {
	return &Handler{svc: svc, trackerURL: trackerURL, qrSize: qrSize}
}

type signInRequest struct {
	Name string `json:"name"`
}

func (h *Handler) SignIn(c *gin.Context) {
	var req signInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id, err := h.svc.SignIn(c.Request.Context(), req.Name)
	if err != nil {
		serverError(c, "sign in", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"record_id": id, "message": "Clocked In Successfully"})
}

func (h *Handler) SignOut(c *gin.Context) {
	id, ok := recordID(c)
	if !ok {
		return
	}

	rec, err := h.svc.SignOut(c.Request.Context(), id)
	switch {
	case errors.Is(err, attendance.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Session ID not found"})
	case errors.Is(err, attendance.ErrSessionClosed):
		c.JSON(http.StatusConflict, gin.H{"error": "session already signed out"})
	case err != nil:
		serverError(c, "sign out", err)
	default:
		c.JSON(http.StatusOK, gin.H{"status": rec.Status, "duration": rec.TotalHours})
	}
}

type regularizeRequest struct {
	Name   string `json:"name"`
	Date   string `json:"date" binding:"required"`
	Reason string `json:"reason" binding:"required"`
}

func (h *Handler) Regularize(c *gin.Context) {
	var req regularizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if _, err := h.svc.Regularize(c.Request.Context(), req.Name, req.Date, req.Reason); err != nil {
		serverError(c, "regularize", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Submitted to Professor"})
}

func (h *Handler) MonthSummary(c *gin.Context) {
	summary, err := h.svc.MonthSummary(c.Request.Context())
	if err != nil {
		serverError(c, "month summary", err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (h *Handler) Activities(c *gin.Context) {
	activities, err := h.svc.RecentActivity(c.Request.Context())
	if err != nil {
		serverError(c, "activities", err)
		return
	}
	if activities == nil {
		activities = []attendance.Activity{}
	}
	c.JSON(http.StatusOK, activities)
}

func (h *Handler) PresentCount(c *gin.Context) {
	count, err := h.svc.PresentCount(c.Request.Context())
	if err != nil {
		serverError(c, "attendance count", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": count})
}

func (h *Handler) Pending(c *gin.Context) {
	pending, err := h.svc.Pending(c.Request.Context())
	if err != nil {
		serverError(c, "pending requests", err)
		return
	}
	if pending == nil {
		pending = []attendance.Record{}
	}
	c.JSON(http.StatusOK, pending)
}

type actionRequest struct {
	Status string `json:"status" binding:"required"`
}

func (h *Handler) Action(c *gin.Context) {
	id, ok := recordID(c)
	if !ok {
		return
	}
	var req actionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if _, err := h.svc.Resolve(c.Request.Context(), id, req.Status); err != nil {
		if errors.Is(err, attendance.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Request not found"})
			return
		}
		serverError(c, "professor action", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("Request %s", req.Status)})
}

// QRCode renders the tracker page URL as a PNG. Pure, no store access.
func (h *Handler) QRCode(c *gin.Context) {
	png, err := qrlink.PNG(h.trackerURL, h.qrSize)
	if err != nil {
		serverError(c, "qr code", err)
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}

func recordID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("record_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid record id"})
		return 0, false
	}
	return id, true
}

func serverError(c *gin.Context, op string, err error) {
	log.Printf("%s failed: %v", op, err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}
