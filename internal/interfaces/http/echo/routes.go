package echo

import e "github.com/labstack/echo/v4"

func RegisterRoutes(server *e.Echo, rosterHandler *RosterHandler, studentHandler *StudentHandler) {
	if rosterHandler != nil {
		server.POST("/api/v1/roster/upload", rosterHandler.Upload)
	}
	if studentHandler != nil {
		server.GET("/api/v1/students/:roll_no", studentHandler.GetStudent)
	}
}
