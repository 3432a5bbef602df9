package vista

import "slices"

// APIError is the message published when a fetch fails, regardless of what
// the data source reported.
const APIError = "500 - Internal Server Error"

// Component is the part record embedded in every Item.
type Component struct {
	ID    int    `json:"id"`
	Model string `json:"model"`
}

// Item is a single entry of a fetched list.
type Item struct {
	ID        int       `json:"id"`
	Component Component `json:"component"`
	Position  int       `json:"position"`
	Category  string    `json:"category"`
}

// Status tags the outcome carried by a ViewState.
type Status int32

const (
	// StatusInitial is the pre-fetch default.
	StatusInitial Status = iota

	// StatusSuccess marks a completed fetch with a populated item list.
	StatusSuccess

	// StatusError marks a failed fetch.
	StatusError
)

// String returns the string representation of the status.
func (s Status) String() string {
	switch s {
	case StatusInitial:
		return "initial"
	case StatusSuccess:
		return "success"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// MarshalText encodes the status by name.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// ViewState is a snapshot of a list view. The zero value is the INITIAL
// default: no items, StatusInitial and an empty error.
type ViewState struct {
	Items  []Item `json:"items"`
	Status Status `json:"status"`
	Error  string `json:"error"`
}

// Merge folds an incoming fetch outcome into the receiver and returns the
// result. A success replaces only the items, a failure replaces only the
// error (with APIError). Fields not touched by the outcome keep their previous
// values and the status tag is never rewritten. Any other status is a no-op.
func (v ViewState) Merge(incoming ViewState) ViewState {
	switch incoming.Status {
	case StatusSuccess:
		v.Items = slices.Clone(incoming.Items)
	case StatusError:
		v.Error = APIError
	}
	return v
}

// Equal reports whether two snapshots carry the same items, status and error.
// A nil item list equals an empty one.
func (v ViewState) Equal(other ViewState) bool {
	return v.Status == other.Status &&
		v.Error == other.Error &&
		slices.Equal(v.Items, other.Items)
}

// PasswordState pairs the debounced password with its validity.
type PasswordState struct {
	Password string `json:"password"`
	Valid    bool   `json:"valid"`
}
