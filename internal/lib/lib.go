// Package lib holds the modules that do not fit strictly into a layer:
// background jobs (Redis/Asynq), the email client (Resend) and
// dependency health checks.
package lib
