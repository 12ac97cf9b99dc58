package roster

const (
	ColRollNo           = "roll_no"
	ColFullName         = "full_name"
	ColDepartment       = "department"
	ColBatch            = "batch"
	ColRoomNumber       = "room_number"
	ColHostelBlock      = "hostel_block"
	ColFeesPaid         = "fees_paid"
	ColEmergencyContact = "emergency_contact"
	ColEmail            = "email"
	ColInStatus         = "in_status"
	ColUnitNo           = "unit_no"
	ColFloorNo          = "Floor_no"
	ColDegree           = "Degree"
	ColGender           = "gender"
)

// ExpectedColumns is the roster header contract. Order is only used when
// reporting missing columns; uploads may list them in any order.
var ExpectedColumns = []string{
	ColRollNo,
	ColFullName,
	ColDepartment,
	ColBatch,
	ColRoomNumber,
	ColHostelBlock,
	ColFeesPaid,
	ColEmergencyContact,
	ColEmail,
	ColInStatus,
	ColUnitNo,
	ColFloorNo,
	ColDegree,
	ColGender,
}

// MissingColumns returns the expected columns absent from header, in
// ExpectedColumns order.
func MissingColumns(header []string) []string {
	present := make(map[string]struct{}, len(header))
	for _, name := range header {
		present[name] = struct{}{}
	}

	var missing []string
	for _, name := range ExpectedColumns {
		if _, ok := present[name]; !ok {
			missing = append(missing, name)
		}
	}
	return missing
}

// UnknownColumns returns header names that are not part of the contract.
func UnknownColumns(header []string) []string {
	expected := make(map[string]struct{}, len(ExpectedColumns))
	for _, name := range ExpectedColumns {
		expected[name] = struct{}{}
	}

	var unknown []string
	for _, name := range header {
		if _, ok := expected[name]; !ok {
			unknown = append(unknown, name)
		}
	}
	return unknown
}
