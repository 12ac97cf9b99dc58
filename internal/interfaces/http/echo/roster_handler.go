package echo

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	app "github.com/hostelhub/roster-import/internal/application/roster"
	"github.com/hostelhub/roster-import/internal/pkg/logger"
)

// rosterFileFields are the multipart field names tried in order before
// falling back to the first uploaded file.
var rosterFileFields = []string{"file", "csv", "roster"}

var errNoRosterFile = errors.New("no roster file in multipart form")

type RosterHandler struct {
	useCase app.IngestRoster
}

type rosterUploadResponse struct {
	Success bool `json:"success"`
	app.IngestRosterOutput
}

type schemaMismatchDetails struct {
	MissingColumns []string `json:"missing_columns"`
}

func NewRosterHandler(useCase app.IngestRoster) *RosterHandler {
	return &RosterHandler{useCase: useCase}
}

func (h *RosterHandler) Upload(c echo.Context) error {
	payload, source, err := readRosterPayload(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, apiResponse{Error: &errorBody{
			Code:    "bad_request",
			Message: "request must carry a roster file or a text body",
		}})
	}

	out, err := h.useCase.Execute(c.Request().Context(), app.IngestRosterInput{
		Payload: payload,
		Source:  source,
	})
	if err != nil {
		var mismatch *app.SchemaMismatchError
		switch {
		case errors.As(err, &mismatch):
			return c.JSON(http.StatusBadRequest, apiResponse{Error: &errorBody{
				Code:    "schema_mismatch",
				Message: fmt.Sprintf("Invalid CSV format. Missing columns: %s", strings.Join(mismatch.Missing, ", ")),
				Details: schemaMismatchDetails{MissingColumns: mismatch.Missing},
			}})
		case errors.Is(err, app.ErrMalformedRoster):
			return c.JSON(http.StatusBadRequest, apiResponse{Error: &errorBody{
				Code:    "malformed_input",
				Message: "CSV must have a header row and at least one data row",
			}})
		}

		logger.Error().Err(err).Str("source", source).Msg("roster upload failed")
		return c.JSON(http.StatusInternalServerError, apiResponse{Error: &errorBody{
			Code:    "internal_error",
			Message: "failed to process roster",
		}})
	}

	return c.JSON(http.StatusOK, apiResponse{Data: rosterUploadResponse{
		Success:            true,
		IngestRosterOutput: out,
	}})
}

// readRosterPayload accepts either a multipart upload or the raw body.
func readRosterPayload(c echo.Context) (string, string, error) {
	contentType := c.Request().Header.Get(echo.HeaderContentType)
	if !strings.HasPrefix(contentType, echo.MIMEMultipartForm) {
		body, err := io.ReadAll(c.Request().Body)
		if err != nil {
			return "", "", fmt.Errorf("read body: %w", err)
		}
		return string(body), "body", nil
	}

	form, err := c.MultipartForm()
	if err != nil {
		return "", "", fmt.Errorf("parse multipart form: %w", err)
	}

	header := pickRosterFile(form)
	if header == nil {
		return "", "", errNoRosterFile
	}

	f, err := header.Open()
	if err != nil {
		return "", "", fmt.Errorf("open upload %s: %w", header.Filename, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return "", "", fmt.Errorf("read upload %s: %w", header.Filename, err)
	}
	return string(data), header.Filename, nil
}

func pickRosterFile(form *multipart.Form) *multipart.FileHeader {
	for _, field := range rosterFileFields {
		if files := form.File[field]; len(files) > 0 {
			return files[0]
		}
	}
	for _, files := range form.File {
		if len(files) > 0 {
			return files[0]
		}
	}
	return nil
}
