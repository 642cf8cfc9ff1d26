package main

import "github.com/adanyl0v/go-task-planner/internal/app"

func main() {
	app.InitDefaultLogger()
	app.MustReadEnv()
	app.MustInitApplicationLogger()

	mongoClient := app.MustConnectMongo()
	defer app.DisconnectMongo(mongoClient)

	app.MustListenAndServeHTTP(mongoClient)
}
