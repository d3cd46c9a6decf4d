package email

// Config selects and configures the delivery transport. The Postmark
// tokens are only needed when Provider is "postmark".
type Config struct {
	Provider             string `env:"EMAIL_PROVIDER" envDefault:"dev"`
	PostmarkServerToken  string `env:"POSTMARK_SERVER_TOKEN"`
	PostmarkAccountToken string `env:"POSTMARK_ACCOUNT_TOKEN"`
	SenderEmail          string `env:"SENDER_EMAIL,required"`
	SenderName           string `env:"SENDER_NAME"`
	ReplyTo              string `env:"REPLY_TO_EMAIL"`
	DevDir               string `env:"EMAIL_DEV_DIR" envDefault:"./tmp/emails"`
}

const (
	ProviderPostmark = "postmark"
	ProviderDev      = "dev"
)
