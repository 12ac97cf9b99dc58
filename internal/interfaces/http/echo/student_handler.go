package echo

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	app "github.com/hostelhub/roster-import/internal/application/roster"
)

type StudentHandler struct {
	useCase app.GetStudent
}

func NewStudentHandler(useCase app.GetStudent) *StudentHandler {
	return &StudentHandler{useCase: useCase}
}

func (h *StudentHandler) GetStudent(c echo.Context) error {
	out, err := h.useCase.Execute(c.Request().Context(), app.GetStudentInput{
		RollNo: c.Param("roll_no"),
	})
	if err != nil {
		if errors.Is(err, app.ErrInvalidRollNo) {
			return c.JSON(http.StatusBadRequest, apiResponse{Error: &errorBody{
				Code:    "invalid_roll_no",
				Message: "roll_no must be a non-empty value without commas",
			}})
		}
		if errors.Is(err, app.ErrStudentNotFound) {
			return c.JSON(http.StatusNotFound, apiResponse{Error: &errorBody{
				Code:    "not_found",
				Message: "student not found",
			}})
		}

		return c.JSON(http.StatusInternalServerError, apiResponse{Error: &errorBody{
			Code:    "internal_error",
			Message: "failed to get student",
		}})
	}

	return c.JSON(http.StatusOK, apiResponse{Data: out})
}
