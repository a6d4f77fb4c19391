package venue

type Filter struct {
	Limit  *int
	Offset *int
	Page   *int
	Search *string
}

type GetListResponse struct {
	ID       int    `json:"venue_id" bun:"venue_id"`
	Name     string `json:"name"     bun:"name"`
	Location string `json:"location" bun:"location"`
	Capacity int    `json:"capacity" bun:"capacity"`
}

type GetDetailByIdResponse struct {
	ID          int    `json:"venue_id"    bun:"venue_id"`
	Name        string `json:"name"        bun:"name"`
	Location    string `json:"location"    bun:"location"`
	Capacity    int    `json:"capacity"    bun:"capacity"`
	Allocations int    `json:"allocations" bun:"allocations"`
}

type CreateRequest struct {
	Name     *string `json:"name"     form:"name"`
	Location *string `json:"location" form:"location"`
	Capacity *int    `json:"capacity" form:"capacity"`
}

type CreateResponse struct {
	ID       int    `json:"venue_id"`
	Name     string `json:"name"`
	Location string `json:"location"`
	Capacity int    `json:"capacity"`
}
