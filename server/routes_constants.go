package server

// Route path constants
// All application routes are defined here to ensure consistency and prevent typos
const (
	RouteIndex = "/"

	// Auth Routes
	RouteLogin    = "/login"
	RouteRegister = "/register"
	RouteLogout   = "/logout"

	// Admin Routes
	RouteAdminDashboard = "/admin"

	RouteHealth = "/healthz"

	// Static Asset Routes (patterns)
	RouteStaticCSS = "/css/{file}"
)

// Dashboard query parameters
const (
	QueryTab  = "tab"
	QueryPage = "page"
)
