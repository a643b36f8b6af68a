package model

// Service represents a workshop service offered by the garage, as stored in
// the `services` table.  Image holds a data-URI string (the upload is
// validated and base64-encoded server side) so the frontend can inline it
// without another round trip.
type Service struct {
    ID          uint64  `json:"id"`          // services.id
    Name        string  `json:"name"`        // services.name
    Amount      float64 `json:"amount"`      // services.amount (decimal, >= 0)
    Description string  `json:"description"` // services.description
    Image       string  `json:"image"`       // services.image (data URI)
}
