// cmd/promoscan/main.go
package main

import (
	"promoscan/internal/app"
	"promoscan/internal/appshell"
)

func main() { appshell.Main(app.RunContext) }
