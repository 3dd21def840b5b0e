package config

type AppConfig struct {
	APIPort         string `env:"PORT,required" envDefault:"12222"`
	APIKey          string `env:"API_KEY,required"`
	WebhookUsername string `env:"WEBHOOK_USERNAME"`
	WebhookPassword string `env:"WEBHOOK_PASSWORD"`
	SupportEmail    string `env:"SUPPORT_EMAIL" envDefault:"support@example.com"`
	SupportName     string `env:"SUPPORT_NAME" envDefault:"Support"`
	PublicURL       string `env:"PUBLIC_URL" envDefault:"http://localhost:12222"`
}

type DatabaseConfig struct {
	Host            string `env:"TICKETING_POSTGRES_HOST,required"`
	Port            string `env:"TICKETING_POSTGRES_PORT,required"`
	User            string `env:"TICKETING_POSTGRES_USER,required"`
	DBName          string `env:"TICKETING_POSTGRES_DB_NAME,required"`
	Password        string `env:"TICKETING_POSTGRES_PASSWORD,required"`
	MaxConn         int    `env:"TICKETING_POSTGRES_DB_MAX_CONN" envDefault:"25"`
	MaxIdleConn     int    `env:"TICKETING_POSTGRES_DB_MAX_IDLE_CONN" envDefault:"10"`
	ConnMaxLifetime int    `env:"TICKETING_POSTGRES_DB_CONN_MAX_LIFETIME" envDefault:"60"`
	LogLevel        string `env:"TICKETING_POSTGRES_LOG_LEVEL" envDefault:"WARN"`
	SSLMode         string `env:"TICKETING_POSTGRES_SSL_MODE" envDefault:"require"`
}

// StorageConfig selects the object store for attachment bytes. Provider is
// "r2" (Cloudflare) or "s3" (AWS).
type StorageConfig struct {
	Provider               string `env:"STORAGE_PROVIDER" envDefault:"r2"`
	AccountID              string `env:"CLOUDFLARE_R2_ACCOUNT_ID"`
	AWSRegion              string `env:"AWS_REGION" envDefault:"us-east-1"`
	AccessKeyID            string `env:"STORAGE_ACCESS_KEY_ID,required"`
	AccessKeySecret        string `env:"STORAGE_ACCESS_KEY_SECRET,required"`
	TicketAttachmentBucket string `env:"BUCKET_NAME_TICKET_ATTACHMENT" envDefault:"ticket-attachments"`
	CDNDomain              string `env:"STORAGE_CDN_DOMAIN"`
}

// SMTPConfig points at the Postmark SMTP relay. Postmark accepts the server
// token as both username and password.
type SMTPConfig struct {
	Host     string `env:"POSTMARK_SMTP_HOST" envDefault:"smtp.postmarkapp.com"`
	Port     string `env:"POSTMARK_SMTP_PORT" envDefault:"587"`
	Username string `env:"POSTMARK_SERVER_TOKEN"`
	Password string `env:"POSTMARK_SMTP_PASSWORD"`
}

type RedisConfig struct {
	URL      string `env:"REDIS_URL"`
	DedupTTL int    `env:"REDIS_DEDUP_TTL_HOURS" envDefault:"24"`
}
