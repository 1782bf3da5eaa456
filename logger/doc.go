// Package logger provides structured logging for authkit built on zerolog.
//
// The middleware and the token services log through component loggers
// ("auth", "token", "store") derived from a single configured logger, so a
// host application can tell at a glance which part of the pipeline emitted
// a line.
//
// Usage:
//
//	log := logger.NewDefault("my-service")
//	authLog := log.WithComponent("auth")
//	authLog.Warn("unauthorized access attempt", logger.Fields(
//	    logger.FieldURL, "/admin",
//	    logger.FieldMethod, "GET",
//	))
package logger
