package main

import (
	"go.uber.org/fx"

	"SchoolBridge/internal/bootstrap"
	"SchoolBridge/pkg/routes"
)

func main() {
	bootstrap.LoadEnv()

	app := fx.New(routes.Module)
	app.Run()
}
