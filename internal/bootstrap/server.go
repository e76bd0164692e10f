package bootstrap

import (
	"github.com/LerianStudio/docker-api/pkg"
	"github.com/LerianStudio/docker-api/pkg/server"
)

// Server runs the HTTP server manager as a launcher app.
type Server struct {
	manager *server.ServerManager
}

// NewServer wraps manager.
func NewServer(manager *server.ServerManager) *Server {
	return &Server{manager: manager}
}

// Run serves until shutdown and returns once the server is drained.
func (s *Server) Run(_ *pkg.Launcher) error {
	return s.manager.StartWithGracefulShutdownWithError()
}
