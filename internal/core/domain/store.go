package domain

// Store mirrors the backend's store record. AvgRating is the aggregate the
// backend recomputes after every rating submission; it is displayed as-is
// and never recalculated here. MyRating is the calling user's own rating,
// zero when the user has not rated the store yet.
type Store struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Email     string  `json:"email"`
	Address   string  `json:"address"`
	OwnerID   int64   `json:"ownerId"`
	AvgRating float64 `json:"avgRating"`
	MyRating  int     `json:"myRating,omitempty"`
}

// Rating is a single user's rating of a store, 1 to 5. The one-rating-per
// (user, store) invariant is enforced by the backend, not here.
type Rating struct {
	StoreID int64 `json:"storeId"`
	UserID  int64 `json:"userId"`
	Rating  int   `json:"rating"`
}

// Stats are the admin dashboard counters.
type Stats struct {
	Users   int64 `json:"users"`
	Stores  int64 `json:"stores"`
	Ratings int64 `json:"ratings"`
}

// RatingRow is a store rating joined with the rater's profile for the
// store-owner dashboard. Raters that can no longer be resolved keep the
// placeholder values.
type RatingRow struct {
	Rating
	RaterName  string
	RaterEmail string
}
