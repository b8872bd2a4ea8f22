package main

import (
	"github.com/hasan75/tourism-htt-server/app/routes"
	"github.com/hasan75/tourism-htt-server/pkg/app"

	_ "github.com/hasan75/tourism-htt-server/database/seeders"
)

func main() {
	app.New().
		Routes(routes.RegisterAPI).
		Run()
}
