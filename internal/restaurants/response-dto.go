package restaurants

type RestaurantResponse struct {
	ID             string         `json:"id"`
	Name           string         `json:"name"`
	Slug           string         `json:"slug"`
	Cuisine        string         `json:"cuisine"`
	Rating         float64        `json:"rating"`
	Image          string         `json:"image"`
	Address        string         `json:"address"`
	District       string         `json:"district"`
	Occupancy      int            `json:"occupancy"`
	OccupancyLevel OccupancyLevel `json:"occupancy_level"`
	OwnerID        string         `json:"owner_id,omitempty"`
}

func toResponse(r *Restaurant) RestaurantResponse {
	resp := RestaurantResponse{
		ID:             r.ID.String(),
		Name:           r.Name,
		Slug:           r.Slug,
		Cuisine:        r.Cuisine,
		Rating:         r.Rating,
		Image:          r.Image,
		Address:        r.Address,
		District:       r.District,
		Occupancy:      r.Occupancy,
		OccupancyLevel: LevelOf(r.Occupancy),
	}
	if r.OwnerID != nil {
		resp.OwnerID = r.OwnerID.String()
	}
	return resp
}
