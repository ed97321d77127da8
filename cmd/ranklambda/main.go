package main

import (
	"log"
	"os"
	"rankwatch/internal/di"
	"rankwatch/internal/structures"

	"github.com/aws/aws-lambda-go/lambda"
)

func main() {
	handler, err := di.InitLambda(&structures.CliFlags{ConfigPath: os.Getenv("RW_CONFIG")})
	if err != nil {
		log.Fatalf("init: %s", err)
	}
	lambda.Start(handler.Handle)
}
