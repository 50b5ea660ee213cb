package main

// Build the Lambda handler binary:
//   GOOS=linux GOARCH=arm64 CGO_ENABLED=0 go build -o bootstrap ./cmd/lambda-http

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	ginadapter "github.com/awslabs/aws-lambda-go-api-proxy/gin"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"formulator-backend/internal/bootstrap"
	"formulator-backend/internal/shared/config"
	"formulator-backend/internal/shared/server/respond"
	"formulator-backend/internal/shared/telemetry"
)

type proxyFunc func(ctx context.Context, req events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error)

// newHandler builds the router on the first invocation and reuses it for
// every warm invocation. A failed build is reported on each call.
func newHandler(build func() (*gin.Engine, error)) proxyFunc {
	var (
		once  sync.Once
		err   error
		proxy *ginadapter.GinLambdaV2
	)
	return func(ctx context.Context, req events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
		once.Do(func() {
			var router *gin.Engine
			router, err = build()
			if err == nil {
				proxy = ginadapter.NewV2(router)
			}
		})
		if err != nil {
			telemetry.L().Error("bootstrap error", zap.Error(err))
			return errorResponse("bootstrap failed"), err
		}
		return proxy.ProxyWithContext(ctx, req)
	}
}

func errorResponse(message string) events.APIGatewayV2HTTPResponse {
	body, _ := json.Marshal(respond.ErrorResponse{Error: message})
	return events.APIGatewayV2HTTPResponse{
		StatusCode: http.StatusInternalServerError,
		Body:       string(body),
		Headers:    map[string]string{"Content-Type": "application/json"},
	}
}

func main() {
	cfg := config.Load()
	telemetry.Init(cfg.LogLevel)

	lambda.Start(newHandler(func() (*gin.Engine, error) {
		app, err := bootstrap.Build(cfg)
		if err != nil {
			return nil, err
		}
		return app.Router, nil
	}))
}
