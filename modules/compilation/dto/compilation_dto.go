package dto

import eventdto "github.com/OmatthewY/explore-with-me/modules/event/dto"

type NewCompilationRequest struct {
	Events []int64 `json:"events" validate:"omitempty,dive,gt=0"`
	Pinned *bool   `json:"pinned"`
	Title  string  `json:"title" validate:"required,notblank,min=1,max=50"`
}

// UpdateCompilationRequest replaces events when present; title only when
// non-blank.
type UpdateCompilationRequest struct {
	Events *[]int64 `json:"events" validate:"omitempty,dive,gt=0"`
	Pinned *bool    `json:"pinned"`
	Title  *string  `json:"title" validate:"omitempty,max=50"`
}

type CompilationResponse struct {
	Events []eventdto.EventShortResponse `json:"events"`
	ID     int64                         `json:"id"`
	Pinned bool                          `json:"pinned"`
	Title  string                        `json:"title"`
}
