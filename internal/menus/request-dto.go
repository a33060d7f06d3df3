package menus

type CreateMenuItemRequest struct {
	Name        string `json:"name" validate:"required,max=120"`
	Description string `json:"description" validate:"omitempty,max=500"`
	Price       int64  `json:"price" validate:"required,gt=0"`
	Image       string `json:"image" validate:"omitempty,max=500"`
	Category    string `json:"category" validate:"required,oneof=APPETIZER MAIN DESSERT DRINK SIDE"`
	Available   *bool  `json:"available" copier:"-"`
}

// UpdateMenuItemRequest applies only the fields that are present
type UpdateMenuItemRequest struct {
	Name        *string `json:"name" validate:"omitempty,max=120"`
	Description *string `json:"description" validate:"omitempty,max=500"`
	Price       *int64  `json:"price" validate:"omitempty,gt=0"`
	Image       *string `json:"image" validate:"omitempty,max=500"`
	Category    *string `json:"category" validate:"omitempty,oneof=APPETIZER MAIN DESSERT DRINK SIDE"`
}
