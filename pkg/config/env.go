package config

// EnvPrefix namespaces every storefront environment variable.
const EnvPrefix = "STOREFRONT"

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

const (
	EnvAppEnv = "STOREFRONT_APP_ENV"
	EnvDBDSN  = "STOREFRONT_DB_DSN"
	EnvDBHost = "STOREFRONT_DB_HOST"
	EnvDBUser = "STOREFRONT_DB_USER"
	EnvDBName = "STOREFRONT_DB_NAME"
)

// Checkout validation profiles (see internal/checkout).
const (
	CheckoutProfileStandard = "standard"
	CheckoutProfileLegacy   = "legacy"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
