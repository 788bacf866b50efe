package lsp

import (
	"github.com/tliron/glsp/server"
	"wryneck/internal/config"
)

// Serve runs the language server over standard input and output until the
// client disconnects.
func Serve(version string, cfg *config.Config, debug bool) error {
	handler := NewWryneckHandler(version, cfg)
	s := server.NewServer(handler.Protocol(), lsName, debug)

	log.Noticef("starting %s language server %s", lsName, version)
	return s.RunStdio()
}
