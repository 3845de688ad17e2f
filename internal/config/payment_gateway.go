package config

type PaymentConfig struct {
	DefaultProvider string          `yaml:"default_provider"`
	Razorpay        *RazorpayConfig `yaml:"razorpay"`
	Stripe          *StripeConfig   `yaml:"stripe"`
	Currency        string          `yaml:"currency"`
}

type RazorpayConfig struct {
	KeyID     string `yaml:"key_id"`
	KeySecret string `yaml:"key_secret"`
}

type StripeConfig struct {
	PublishableKey string `yaml:"publishable_key"`
	SecretKey      string `yaml:"secret_key"`
	SigningSecret  string `yaml:"signing_secret"`
}

func loadPaymentConfig() *PaymentConfig {
	return &PaymentConfig{
		DefaultProvider: getEnv("PAYMENT_DEFAULT_PROVIDER", "razorpay"),
		Razorpay: &RazorpayConfig{
			KeyID:     getEnv("RAZORPAY_KEY_ID", ""),
			KeySecret: getEnv("RAZORPAY_KEY_SECRET", ""),
		},
		Stripe: &StripeConfig{
			PublishableKey: getEnv("STRIPE_PUBLISHABLE_KEY", ""),
			SecretKey:      getEnv("STRIPE_SECRET_KEY", ""),
			SigningSecret:  getEnv("STRIPE_SIGNING_SECRET", ""),
		},
		Currency: getEnv("PAYMENT_CURRENCY", "INR"),
	}
}
