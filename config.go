package dinneragent

// StoreConfig selects and configures the record-store driver.
type StoreConfig struct {
	Driver      string `env:"STORE_DRIVER,default=notion"`
	APIKey      string `env:"NOTION_API_KEY"`
	BaseURL     string `env:"NOTION_BASE_URL,default=https://api.notion.com"`
	Version     string `env:"NOTION_VERSION,default=2022-06-28"`
	InventoryDB string `env:"NOTION_DATABASE_INVENTORY_ID"`
	RunLogDB    string `env:"NOTION_DATABASE_AIDATA_ID"`
	SQLitePath  string `env:"STORE_SQLITE_PATH,default=dinneragent.db"`
}

// ModelConfig configures the completion backend.
type ModelConfig struct {
	Provider    string  `env:"MODEL_PROVIDER,default=openai"`
	APIURL      string  `env:"API_URL,default=https://api.openai.com/v1/chat/completions"`
	APIKey      string  `env:"OPENAI_API_KEY"`
	ModelID     string  `env:"MODEL,default=gpt-4o-mini"`
	MaxTokens   int32   `env:"MAX_TOKENS,default=900"`
	Temperature float32 `env:"TEMPERATURE,default=0.4"`
}

// TemplateConfig locates the prompt template. Template wins over Path wins
// over the S3 pair; at least one must be set.
type TemplateConfig struct {
	Template string `env:"PROMPT_TEMPLATE"`
	Path     string `env:"PROMPT_TEMPLATE_PATH"`
	S3Bucket string `env:"PROMPT_TEMPLATE_S3_BUCKET"`
	S3Key    string `env:"PROMPT_TEMPLATE_S3_KEY"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Addr string `env:"ADDR,default=:8080"`
}
