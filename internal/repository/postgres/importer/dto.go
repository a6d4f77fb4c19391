package importer

// Required header columns of each import sheet.
var (
	FacultyColumns = []string{"faculty_id", "name", "mobile_number", "email_id", "is_admin"}
	VenueColumns   = []string{"venue_id", "name", "location", "capacity"}
)

const rfidColumn = "rfid_tag"

type Response struct {
	Imported int `json:"imported"`
	Updated  int `json:"updated"`
}
