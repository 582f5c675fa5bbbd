package server

func (s *Server) initRoutes() {
	// AUTH
	s.RegisterRouteFunc("GET "+RouteAuthLogin, s.LoginHandler())
	s.RegisterRouteFunc("GET "+RouteAuthGoogle, s.ConsentRedirectHandler())
	s.RegisterRouteFunc("GET "+RouteAuthCallback, s.OAuthCallbackHandler())
	s.RegisterRouteFunc("GET "+RouteAuthLogout, s.LogoutHandler())

	// APPLICATION
	s.RegisterRouteFunc("GET "+RouteIndex, s.IndexHandler())
	s.RegisterRouteFunc("GET "+RouteExpenses, s.ExpensesGetHandler())
	s.RegisterRouteFunc("GET "+RouteExpensesPeriod, s.ExpensesGetHandler())
	s.RegisterRouteFunc("PATCH "+RouteExpensesSummary, s.SummaryPatchHandler())
	s.RegisterRouteFunc("POST "+RouteExpensesEntries, s.EntryPostHandler())
}
