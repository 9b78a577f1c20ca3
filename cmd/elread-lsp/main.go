// SPDX-License-Identifier: Apache-2.0
package main

import (
	"os"

	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	"elread/internal/lsp"
)

const lsName = "elread"

var (
	version = "0.1.0"
	handler protocol.Handler
)

func main() {
	// Logs go to stderr; stdout carries the protocol.
	commonlog.Configure(1, nil)
	log := commonlog.GetLogger("elread.lsp")

	elHandler := lsp.NewHandler()

	handler = protocol.Handler{
		Initialize:                     elHandler.Initialize,
		Initialized:                    elHandler.Initialized,
		Shutdown:                       elHandler.Shutdown,
		SetTrace:                       elHandler.SetTrace,
		TextDocumentDidOpen:            elHandler.TextDocumentDidOpen,
		TextDocumentDidClose:           elHandler.TextDocumentDidClose,
		TextDocumentDidChange:          elHandler.TextDocumentDidChange,
		TextDocumentCompletion:         elHandler.TextDocumentCompletion,
		TextDocumentSemanticTokensFull: elHandler.TextDocumentSemanticTokensFull,
	}

	s := server.NewServer(&handler, lsName, false)

	log.Noticef("starting %s language server %s", lsName, version)

	if err := s.RunStdio(); err != nil {
		log.Errorf("language server stopped: %s", err)
		os.Exit(1)
	}
}
