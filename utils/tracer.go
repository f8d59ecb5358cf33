package utils

import (
	"github.com/retronet/feedranker/utils/flag"
	Logger "github.com/retronet/feedranker/utils/log"
	"gopkg.in/DataDog/dd-trace-go.v1/ddtrace/tracer"
)

// StartTracer enables the Datadog tracer for the current process.
func StartTracer() {
	env := "development"
	if flag.IsProdEnv() {
		env = "production"
	}

	tracer.Start(
		tracer.WithService(*flag.ServiceName),
		tracer.WithEnv(env),
	)

	Logger.Log.Info("tracer initialized")
}

// CloseTracer stops the tracer, OK to be closed multiple times
func CloseTracer() {
	tracer.Stop()
}
