//	@title			PDF Blob API
//	@version		1.0
//	@description	Upload, list, update and delete PDF files in an external blob store.
//
//	@host		localhost:8080
//	@BasePath	/api
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				HS256 JWT. Format: **Bearer {token}**. Only enforced when the server has JWT_SECRET set.

package main

import (
	"os"

	cliruntime "github.com/tomasbasham/cli-runtime"

	"github.com/pdfdesk/service/internal/cmd"
)

func main() {
	command := cmd.NewRootCommand()
	if code := cliruntime.Run(command); code != 0 {
		os.Exit(code)
	}
}
