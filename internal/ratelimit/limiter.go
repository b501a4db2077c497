// Package ratelimit throttles MCP tool calls per tool name.
package ratelimit

import (
	"fmt"
	"time"

	"golang.org/x/time/rate"
)

// Tool names with a configured limit.
const (
	ToolBuild   = "bionet_build"
	ToolInspect = "bionet_inspect"
	ToolGraph   = "bionet_graph"
)

// ToolLimiters maps tool names to their token buckets.
type ToolLimiters map[string]*rate.Limiter

// Every returns a limit of n events per interval.
func Every(n int, interval time.Duration) rate.Limit {
	return rate.Every(interval / time.Duration(n))
}

// NewToolLimiters creates the default per-tool limits. Builds read a whole
// workbook and rewrite a file, so they get the tightest budget.
func NewToolLimiters() ToolLimiters {
	return ToolLimiters{
		ToolBuild:   rate.NewLimiter(Every(10, time.Minute), 2),
		ToolInspect: rate.NewLimiter(Every(60, time.Minute), 10),
		ToolGraph:   rate.NewLimiter(Every(30, time.Minute), 5),
	}
}

// CheckLimit reports an error when toolName has used up its budget. Tools
// without a limiter are always allowed.
func CheckLimit(limiters ToolLimiters, toolName string) error {
	limiter, ok := limiters[toolName]
	if !ok {
		return nil
	}
	if !limiter.Allow() {
		return fmt.Errorf("rate limit exceeded for %s, please try again shortly", toolName)
	}
	return nil
}
