package domain

type CartLine struct {
	Movie    Movie `json:"movie"`
	Quantity int   `json:"quantity"`
}
