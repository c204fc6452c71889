package state

// Fixed failure messages shown by the data-bound pages. The underlying error
// is logged, never rendered, unless a page is built WithDetail.
const (
	RidersFailure = "Failed to load riders. Please try again later."
	RacesFailure  = "Failed to load races. Please try again later."
	RiderFailure  = "Failed to load rider. Please try again later."
)
