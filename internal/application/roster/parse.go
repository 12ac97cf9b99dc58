package roster

import (
	"errors"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	domain "github.com/hostelhub/roster-import/internal/domain/roster"
)

const delimiter = ","

type rosterLine struct {
	number int
	text   string
}

const byteOrderMark = "\ufeff"

// splitLines returns the non-blank lines of payload with their 1-based line
// numbers in the original text. A leading UTF-8 byte order mark is dropped.
func splitLines(payload string) []rosterLine {
	raw := strings.Split(strings.TrimPrefix(payload, byteOrderMark), "\n")
	lines := make([]rosterLine, 0, len(raw))
	for i, text := range raw {
		text = strings.TrimRight(text, "\r")
		if strings.TrimSpace(text) == "" {
			continue
		}
		lines = append(lines, rosterLine{number: i + 1, text: text})
	}
	return lines
}

func splitFields(text string) []string {
	fields := strings.Split(text, delimiter)
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}
	return fields
}

// columnIndex maps a header name to its position. The first occurrence of a
// duplicated name wins.
type columnIndex map[string]int

func newColumnIndex(header []string) columnIndex {
	idx := make(columnIndex, len(header))
	for i, name := range header {
		if _, seen := idx[name]; !seen {
			idx[name] = i
		}
	}
	return idx
}

type rawRow struct {
	RollNo           string `col:"roll_no" validate:"required"`
	FullName         string `col:"full_name" validate:"required"`
	Department       string `col:"department" validate:"required"`
	Batch            string `col:"batch" validate:"required"`
	RoomNumber       string `col:"room_number"`
	HostelBlock      string `col:"hostel_block"`
	FeesPaid         string `col:"fees_paid"`
	EmergencyContact string `col:"emergency_contact"`
	Email            string `col:"email"`
	InStatus         string `col:"in_status"`
	UnitNo           string `col:"unit_no"`
	FloorNo          string `col:"Floor_no"`
	Degree           string `col:"Degree"`
	Gender           string `col:"gender"`
}

func (idx columnIndex) decode(text string) rawRow {
	values := splitFields(text)
	get := func(column string) string {
		i, ok := idx[column]
		if !ok || i >= len(values) {
			return ""
		}
		return values[i]
	}

	return rawRow{
		RollNo:           get(domain.ColRollNo),
		FullName:         get(domain.ColFullName),
		Department:       get(domain.ColDepartment),
		Batch:            get(domain.ColBatch),
		RoomNumber:       get(domain.ColRoomNumber),
		HostelBlock:      get(domain.ColHostelBlock),
		FeesPaid:         get(domain.ColFeesPaid),
		EmergencyContact: get(domain.ColEmergencyContact),
		Email:            get(domain.ColEmail),
		InStatus:         get(domain.ColInStatus),
		UnitNo:           get(domain.ColUnitNo),
		FloorNo:          get(domain.ColFloorNo),
		Degree:           get(domain.ColDegree),
		Gender:           get(domain.ColGender),
	}
}

var rowValidator = newRowValidator()

func newRowValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		return field.Tag.Get("col")
	})
	return v
}

// missingFields lists required columns with an empty value, in struct order.
func (r rawRow) missingFields() []string {
	err := rowValidator.Struct(r)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return []string{err.Error()}
	}

	fields := make([]string, 0, len(validationErrs))
	for _, fieldErr := range validationErrs {
		fields = append(fields, fieldErr.Field())
	}
	return fields
}

// toDomain converts typed columns. It returns the names of supplied numeric
// columns that are not integers.
func (r rawRow) toDomain() (domain.RosterRow, []string) {
	var invalid []string

	batch, err := strconv.Atoi(r.Batch)
	if err != nil {
		invalid = append(invalid, domain.ColBatch)
	}
	unitNo, ok := optionalInt(r.UnitNo)
	if !ok {
		invalid = append(invalid, domain.ColUnitNo)
	}
	floorNo, ok := optionalInt(r.FloorNo)
	if !ok {
		invalid = append(invalid, domain.ColFloorNo)
	}
	if len(invalid) > 0 {
		return domain.RosterRow{}, invalid
	}

	return domain.RosterRow{
		RollNo:           r.RollNo,
		FullName:         r.FullName,
		Department:       r.Department,
		Batch:            batch,
		RoomNumber:       optionalString(r.RoomNumber),
		HostelBlock:      optionalString(r.HostelBlock),
		FeesPaid:         truthy(r.FeesPaid),
		EmergencyContact: optionalString(r.EmergencyContact),
		Email:            optionalString(r.Email),
		InStatus:         truthy(r.InStatus),
		UnitNo:           unitNo,
		FloorNo:          floorNo,
		Degree:           optionalString(r.Degree),
		Gender:           optionalString(r.Gender),
	}, nil
}

func optionalString(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}

func optionalInt(value string) (*int, bool) {
	if value == "" {
		return nil, true
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return nil, false
	}
	return &n, true
}

func truthy(value string) bool {
	return strings.EqualFold(value, "true")
}
