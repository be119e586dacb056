package httpserver

func (s *Server) setupRoutes() {
	s.echo.GET("/health", s.healthCheck)
	s.echo.GET("/metrics", s.metricsEndpoint())

	api := s.echo.Group("/api/v1")

	clients := api.Group("/clients")
	clients.GET("", s.listClients)
	clients.POST("", s.createClient)
	clients.GET("/:id", s.getClient)
	clients.PUT("/:id", s.updateClient)
	clients.DELETE("/:id", s.deleteClient)
}
