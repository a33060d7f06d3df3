package reservations

type ItemRequest struct {
	MenuItemID string `json:"menu_item_id" validate:"required,uuid"`
	Quantity   int    `json:"quantity" validate:"required,gte=1,lte=99"`
}

// CreateReservationRequest is the direct create call; prices are looked up, never taken from the client
type CreateReservationRequest struct {
	CustomerName string        `json:"customer_name" validate:"required,max=100"`
	RestaurantID string        `json:"restaurant_id" validate:"required,uuid"`
	Date         string        `json:"date" validate:"required,datetime=2006-01-02"`
	Time         string        `json:"time" validate:"required,datetime=15:04"`
	Seats        []string      `json:"seats" validate:"required,min=1,dive,required,max=4"`
	Items        []ItemRequest `json:"items" validate:"omitempty,dive"`
}

// PatchReservationRequest merges the present fields into the stored reservation
type PatchReservationRequest struct {
	CustomerName *string   `json:"customer_name" validate:"omitempty,max=100"`
	Date         *string   `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Time         *string   `json:"time" validate:"omitempty,datetime=15:04"`
	Seats        *[]string `json:"seats" validate:"omitempty,min=1,dive,required,max=4"`
	Status       *string   `json:"status" validate:"omitempty,oneof=pending confirmed completed cancelled"`
}

// SetItemRequest sets a draft line to an absolute quantity
type SetItemRequest struct {
	MenuItemID string `json:"menu_item_id" validate:"required,uuid"`
	Quantity   int    `json:"quantity"`
}

type ScheduleRequest struct {
	Date string `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Time string `json:"time" validate:"omitempty,datetime=15:04"`
}
