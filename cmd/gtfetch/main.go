// cmd/gtfetch/main.go
package main

import (
	"gtfetch/internal/app"
	"gtfetch/internal/appshell"
)

func main() {
	appshell.Main(app.RunContext)
}
