package api

import "github.com/gin-gonic/gin"

// Register mounts the attendance routes. Paths are fixed: the tracker
// front end hardcodes them.
func Register(r *gin.Engine, h *Handler) {
	att := r.Group("/attendance")
	{
		att.POST("/signin", h.SignIn)
		att.POST("/signout/:record_id", h.SignOut)
		att.POST("/regularize", h.Regularize)
		att.GET("/month-summary", h.MonthSummary)
		att.GET("/qrcode", h.QRCode)
		att.GET("", h.PresentCount)
	}

	r.GET("/activities", h.Activities)

	prof := r.Group("/professor")
	{
		prof.GET("/pending", h.Pending)
		prof.PUT("/action/:record_id", h.Action)
	}
}
