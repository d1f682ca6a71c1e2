// cmd/clonexport/main.go
package main

import (
	"clonexport/internal/app"
	"clonexport/internal/appshell"
)

func main() {
	appshell.Main(app.RunContext)
}
