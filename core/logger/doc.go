// Package logger is a standardized event logging framework for the shell.
//
// Events are written as newline delimited JSON objects so they can be
// replayed into a Report later.
package logger
