package domain

// Session is the in-memory view of who the browser is logged in as.
type Session struct {
	Authenticated bool `json:"authenticated"`
	IsAdmin       bool `json:"is_admin"`
}
