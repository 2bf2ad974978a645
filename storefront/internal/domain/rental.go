package domain

// RentalOrder is a server-confirmed checkout. Dates are kept as the API
// sends them.
type RentalOrder struct {
	ID         int64        `json:"id"`
	RentalDate string       `json:"rentalDate"`
	Items      []RentalItem `json:"items"`
}

type RentalItem struct {
	MovieID          int64  `json:"movieId"`
	Quantity         int    `json:"quantity"`
	MovieTitle       string `json:"movieTitle"`
	MovieDescription string `json:"movieDescription"`
	ReleaseYear      int    `json:"releaseYear"`
	ReturnDate       string `json:"returnDate,omitempty"`
}

// TotalQuantity is the number of copies rented in the order.
func (o RentalOrder) TotalQuantity() int {
	total := 0
	for _, item := range o.Items {
		total += item.Quantity
	}
	return total
}

// RentalRequest is the body of a rental creation call. Every line carries
// its own return date.
type RentalRequest struct {
	Items []RentalRequestItem `json:"items"`
}

type RentalRequestItem struct {
	MovieID    int64  `json:"movieId"`
	Quantity   int    `json:"quantity"`
	ReturnDate string `json:"returnDate"`
}
