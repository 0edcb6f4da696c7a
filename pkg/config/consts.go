package config

// EnvPrefix is left empty because every variable carries the MENUDIGITAL_ prefix
// explicitly in its envconfig tag.
const EnvPrefix = ""

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvDBDSN  = "MENUDIGITAL_DB_DSN"
	EnvDBHost = "MENUDIGITAL_DB_HOST"
	EnvDBUser = "MENUDIGITAL_DB_USER"
	EnvDBName = "MENUDIGITAL_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
