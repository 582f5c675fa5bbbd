package server

// Route path constants
// All application routes are defined here to ensure consistency and prevent typos
const (
	// Auth Routes - everything under this prefix bypasses the session gate
	RouteAuthPrefix   = "/auth"
	RouteAuthLogin    = "/auth/login"
	RouteAuthGoogle   = "/auth/google"
	RouteAuthCallback = "/auth/callback"
	RouteAuthLogout   = "/auth/logout"

	// Application Routes
	RouteIndex           = "/{$}"
	RouteExpenses        = "/api/expenses"
	RouteExpensesPeriod  = "/api/expenses/{period}"
	RouteExpensesSummary = "/api/expenses/{period}/summary"
	RouteExpensesEntries = "/api/expenses/{period}/entries"
)
