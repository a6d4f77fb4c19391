package faculty

type Filter struct {
	Limit   *int
	Offset  *int
	Page    *int
	Search  *string
	IsAdmin *bool
}

type GetListResponse struct {
	ID           int     `json:"faculty_id"    bun:"faculty_id"`
	Name         string  `json:"name"          bun:"name"`
	MobileNumber string  `json:"mobile_number" bun:"mobile_number"`
	EmailID      string  `json:"email_id"      bun:"email_id"`
	RFIDTag      *string `json:"rfid_tag"      bun:"rfid_tag"`
	IsAdmin      bool    `json:"is_admin"      bun:"is_admin"`
}

type GetDetailByIdResponse struct {
	ID           int     `json:"faculty_id"    bun:"faculty_id"`
	Name         string  `json:"name"          bun:"name"`
	MobileNumber string  `json:"mobile_number" bun:"mobile_number"`
	EmailID      string  `json:"email_id"      bun:"email_id"`
	RFIDTag      *string `json:"rfid_tag"      bun:"rfid_tag"`
	IsAdmin      bool    `json:"is_admin"      bun:"is_admin"`
	Allocations  int     `json:"allocations"   bun:"allocations"`
}

type CreateRequest struct {
	Name         *string `json:"name"          form:"name"`
	MobileNumber *string `json:"mobile_number" form:"mobile_number"`
	EmailID      *string `json:"email_id"      form:"email_id"`
	RFIDTag      *string `json:"rfid_tag"      form:"rfid_tag"`
	IsAdmin      bool    `json:"is_admin"      form:"is_admin"`
}

type CreateResponse struct {
	ID           int     `json:"faculty_id"`
	Name         string  `json:"name"`
	MobileNumber string  `json:"mobile_number"`
	EmailID      string  `json:"email_id"`
	RFIDTag      *string `json:"rfid_tag"`
	IsAdmin      bool    `json:"is_admin"`
}
