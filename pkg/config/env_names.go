package config

// EnvPrefix is passed to envconfig; individual fields carry explicit names so
// the prefix only matters for variables without a tag.
const EnvPrefix = "DISHPATCH"

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

const (
	EnvAppEnv = "DISHPATCH_APP_ENV"
	EnvPort   = "DISHPATCH_APP_PORT"

	EnvDBDSN  = "DISHPATCH_DB_DSN"
	EnvDBHost = "DISHPATCH_DB_HOST"
	EnvDBUser = "DISHPATCH_DB_USER"
	EnvDBName = "DISHPATCH_DB_NAME"

	EnvRedisURL = "DISHPATCH_REDIS_URL"

	EnvJWTSecret     = "DISHPATCH_JWT_SECRET"
	EnvJWTIssuer     = "DISHPATCH_JWT_ISSUER"
	EnvJWTExpiration = "DISHPATCH_JWT_EXPIRATION_MINUTES"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
