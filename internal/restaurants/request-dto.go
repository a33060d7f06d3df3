package restaurants

type CreateRestaurantRequest struct {
	Name     string  `json:"name" validate:"required,min=2,max=120"`
	Cuisine  string  `json:"cuisine" validate:"required,max=60"`
	District string  `json:"district" validate:"required,max=60"`
	Address  string  `json:"address" validate:"omitempty,max=255"`
	Image    string  `json:"image" validate:"omitempty,max=500"`
	Rating   float64 `json:"rating" validate:"gte=0,lte=5"`
}

// UpdateRestaurantRequest applies only the fields that are present
type UpdateRestaurantRequest struct {
	Name     *string  `json:"name" validate:"omitempty,min=2,max=120"`
	Cuisine  *string  `json:"cuisine" validate:"omitempty,max=60"`
	District *string  `json:"district" validate:"omitempty,max=60"`
	Address  *string  `json:"address" validate:"omitempty,max=255"`
	Image    *string  `json:"image" validate:"omitempty,max=500"`
	Rating   *float64 `json:"rating" validate:"omitempty,gte=0,lte=5"`
}
