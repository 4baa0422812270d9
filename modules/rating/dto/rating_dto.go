package dto

import "github.com/OmatthewY/explore-with-me/core/utils"

type RatingResponse struct {
	ID      int64          `json:"id"`
	UserID  int64          `json:"userId"`
	EventID int64          `json:"eventId"`
	IsLike  bool           `json:"isLike"`
	Created utils.DateTime `json:"created"`
}
