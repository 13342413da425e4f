// internal/engine/aigateway/config.go
package aigateway

// Config carries the generation-service options explicitly; nothing is
// baked into the call site. Request bounding is the caller's job via
// context, so there is no timeout here.
type Config struct {
	BaseURL     string
	APIKey      string
	Provider    string
	Model       string
	Temperature float64
	MaxTokens   int
}
