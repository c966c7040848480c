package handler

import "github.com/gin-gonic/gin"

// Handlers groups the API handlers mounted under the API prefix.
type Handlers struct {
	Students      *StudentHandler
	Points        *PointsHandler
	Statistics    *StatisticsHandler
	Notifications *NotificationHandler
}

// Register mounts the tracker routes on the group.
func Register(api *gin.RouterGroup, h Handlers) {
	students := api.Group("/students")
	students.GET("", h.Students.List)
	students.POST("", h.Students.Create)
	students.GET("/lookup", h.Students.Lookup)
	students.GET("/:id", h.Students.Get)
	students.DELETE("/:id", h.Students.Delete)
	students.POST("/:id/points", h.Points.Add)

	awards := api.Group("/awards")
	awards.GET("", h.Points.ListAwards)
	awards.GET("/:id", h.Points.GetAward)
	awards.DELETE("/:id", h.Points.DeleteAward)

	api.GET("/courses", ListCourses)
	api.POST("/admin/reset", h.Points.Reset)

	stats := api.Group("/statistics")
	stats.GET("", h.Statistics.Overall)
	stats.GET("/courses/:course", h.Statistics.Course)
	stats.GET("/courses/:course/export", h.Statistics.Export)

	notifications := api.Group("/notifications")
	notifications.GET("/pending", h.Notifications.Pending)
	notifications.POST("/dispatch", h.Notifications.Dispatch)
}
