package middleware

import (
	"fmt"
	"io"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

// Logging middleware that logs route, status code and response time to output.
func Logging(output io.Writer) fiber.Handler {
	return logger.New(logger.Config{
		Format:     "${time} | ${status} | ${latency} | ${method} | ${path} | ${search_depth}\n",
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   "Local",
		Output:     output,
		CustomTags: map[string]logger.LogFunc{
			"latency": func(output logger.Buffer, _ *fiber.Ctx, data *logger.Data, _ string) (int, error) {
				latency := float64(data.Stop.Sub(data.Start).Nanoseconds()) / float64(time.Millisecond)
				return fmt.Fprintf(output, "%6.1fms", latency)
			},
			"search_depth": func(output logger.Buffer, c *fiber.Ctx, _ *logger.Data, _ string) (int, error) {
				depth, ok := c.Locals(SearchDepthKey).(int)
				if !ok {
					return output.WriteString("-")
				}
				return fmt.Fprintf(output, "depth=%d", depth)
			},
		},
	})
}

// SearchDepthKey is the Locals key handlers set so the search depth ends up in the request log.
const SearchDepthKey = "search_depth"
