package env

// Prefix is the env variable prefix for CLI flag overrides
const Prefix = "VESDASH"
