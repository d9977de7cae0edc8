// cmd/bwaidx/main.go
package main

import (
	"bwaidx/internal/app"
	"bwaidx/internal/appshell"
)

func main() {
	appshell.Main(app.RunContext)
}
