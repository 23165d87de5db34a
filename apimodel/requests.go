package apimodel

// LoginRequest is the body posted to the login endpoint.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RefreshRequest is the body posted to both the refresh and logout endpoints.
// On logout the server blacklists the token so it can no longer be exchanged.
type RefreshRequest struct {
	Refresh string `json:"refresh"`
}
