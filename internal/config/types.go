package config

// Config holds all configuration for the application.
type Config struct {
	DBName    string `env:"DB_NAME" envDefault:"court-queue.db"`
	Port      string `env:"PORT" envDefault:"8080"`
	Slack     SlackConfig
	Turso     TursoConfig
	ProjectID string `env:"GCP_PROJECT"`
	Topic     string `env:"PUBSUB_TOPIC" envDefault:"court-queue-events"`
}
type SlackConfig struct {
	Token         string `env:"SLACK_BOT_TOKEN"`
	ChannelID     string `env:"SLACK_CHANNEL_ID"`
	SigningSecret string `env:"SLACK_SIGNING_SECRET"`
}
type TursoConfig struct {
	PrimaryURL string `env:"TURSO_PRIMARY_URL"`
	AuthToken  string `env:"TURSO_AUTH_TOKEN"`
}

// SlackEnabled reports whether court calls should be posted for real.
func (c Config) SlackEnabled() bool {
	return c.Slack.Token != "" && c.Slack.ChannelID != ""
}

// PubSubEnabled reports whether events go through Google Cloud Pub/Sub.
func (c Config) PubSubEnabled() bool {
	return c.ProjectID != ""
}
