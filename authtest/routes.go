package authtest

// Route path constants served by the fake API
const (
	RouteLogin     = "/api/login/"
	RouteRefresh   = "/api/refresh/"
	RouteLogout    = "/api/logout/"
	RouteIncidents = "/api/incidents/"
)
