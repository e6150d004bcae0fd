package llm

// Config holds the provider settings for the chat-completions client.
// The model and temperature are fixed per deployment; callers never choose
// them per request.
type Config struct {
	BaseURL     string  `mapstructure:"base_url"`
	APIKey      string  `mapstructure:"api_key"`
	Model       string  `mapstructure:"model"`
	Temperature float64 `mapstructure:"temperature"`
	TimeoutMs   int     `mapstructure:"timeout_ms"`
	MaxRetries  int     `mapstructure:"max_retries"`
}

// DefaultConfig returns provider settings matching the original deployment:
// Groq's OpenAI-compatible endpoint.
func DefaultConfig() Config {
	return Config{
		BaseURL:     "https://api.groq.com/openai/v1",
		Model:       "llama-3.3-70b-versatile",
		Temperature: 0.5,
		TimeoutMs:   60000,
		MaxRetries:  1,
	}
}
