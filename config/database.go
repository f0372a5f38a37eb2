package config

// DBConfig contains PostgreSQL job-store configuration. Leaving HOST empty
// disables the live store entirely; searches then serve fixture data.
type DBConfig struct {
	Host     string `env:"HOST"     envDefault:""`
	Port     int    `env:"PORT"     envDefault:"5432"`
	User     string `env:"USER"     envDefault:"smsjobs"`
	Password string `env:"PASSWORD" envDefault:"smsjobs"`
	Name     string `env:"NAME"     envDefault:"marketplace"`
	SSLMode  string `env:"SSL_MODE" envDefault:"disable"` // Use 'disable' for local dev, 'require' for production
}

// RedisConfig contains Redis session-store configuration. Leaving ADDR empty
// keeps sessions in process memory.
type RedisConfig struct {
	Addr     string `env:"ADDR"     envDefault:""`
	Password string `env:"PASSWORD" envDefault:""`
	DB       int    `env:"DB"       envDefault:"0"`
}
