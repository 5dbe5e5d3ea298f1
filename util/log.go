// Copyright 2018, RadiantBlue Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//   http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package util

import (
	"crypto/rand"
	"fmt"
	"log"
	"os"
)

// Severity is the level at which a message is logged
type Severity int

// Severity levels, ordered per RFC 5424
const (
	EMERGENCY Severity = iota
	ALERT
	CRITICAL
	ERROR
	WARNING
	NOTICE
	INFO
	DEBUG
)

var severityNames = map[Severity]string{
	EMERGENCY: "EMERGENCY",
	ALERT:     "ALERT",
	CRITICAL:  "CRITICAL",
	ERROR:     "ERROR",
	WARNING:   "WARNING",
	NOTICE:    "NOTICE",
	INFO:      "INFO",
	DEBUG:     "DEBUG",
}

// String returns the severity's log name
func (s Severity) String() string {
	if name, ok := severityNames[s]; ok {
		return name
	}
	return "UNKNOWN"
}

// LogContext is the interface for contextual information that log entries
// carry: the operation's application name, a session ID for correlating the
// entries of one operation, and an optional root directory for log output
type LogContext interface {
	AppName() string
	SessionID() string
	LogRootDir() string
}

// BasicLogContext is a minimal LogContext for when no richer one is available
type BasicLogContext struct {
	sessionID string
}

// AppName returns an empty string
func (c *BasicLogContext) AppName() string {
	return ""
}

// SessionID returns a Session ID, creating one if needed
func (c *BasicLogContext) SessionID() string {
	if c.sessionID == "" {
		c.sessionID, _ = PsuUUID()
	}
	return c.sessionID
}

// LogRootDir returns an empty string
func (c *BasicLogContext) LogRootDir() string {
	return ""
}

var logger = log.New(os.Stdout, "", log.LstdFlags|log.LUTC)

func logMessage(context LogContext, severity Severity, message string) {
	app := context.AppName()
	if app == "" {
		app = "-"
	}
	logger.Printf("[%v] %s (%s) %s", severity, app, context.SessionID(), message)
}

// LogInfo logs a message at INFO severity
func LogInfo(context LogContext, message string) {
	logMessage(context, INFO, message)
}

// LogAlert logs a message at ALERT severity
func LogAlert(context LogContext, message string) {
	logMessage(context, ALERT, message)
}

// LogAuditInput is the set of fields recorded by an audit log entry
type LogAuditInput struct {
	Actor    string
	Action   string
	Actee    string
	Message  string
	Severity Severity
}

// LogAudit logs an actor/action/actee audit record
func LogAudit(context LogContext, input LogAuditInput) {
	logMessage(context, input.Severity, fmt.Sprintf("AUDIT [actor: %s] [action: %s] [actee: %s] %s", input.Actor, input.Action, input.Actee, input.Message))
}

// LogSimpleErr logs a message and its underlying error, returning an Error
// wrapping both for the caller to propagate
func LogSimpleErr(context LogContext, message string, err error) Error {
	result := Error{SimpleMsg: message, LogMsg: message + " " + err.Error()}
	result.Log(context, "")
	return result
}

// Error is a rich error containing the detailed message to log and the
// simpler message to return to callers, plus any upstream response details
type Error struct {
	LogMsg     string
	SimpleMsg  string
	Response   string
	URL        string
	HTTPStatus int
	hasLogged  bool
}

// Error implements the error interface; the simple message wins when present
func (err Error) Error() string {
	if err.SimpleMsg != "" {
		return err.SimpleMsg
	}
	return err.LogMsg
}

// Log records the detailed form of the error, prefixed if a prefix is given,
// and returns the error for propagation
func (err Error) Log(context LogContext, prefix string) Error {
	if !err.hasLogged {
		message := err.LogMsg
		if prefix != "" {
			message = prefix + ": " + message
		}
		if err.URL != "" {
			message += fmt.Sprintf("\nURL: %v", err.URL)
		}
		if err.HTTPStatus != 0 {
			message += fmt.Sprintf("\nHTTP Status: %v", err.HTTPStatus)
		}
		if err.Response != "" {
			message += fmt.Sprintf("\nResponse: %v", err.Response)
		}
		logMessage(context, ERROR, message)
		err.hasLogged = true
	}
	return err
}

// HTTPErr is an error holding the HTTP status that should be reported
type HTTPErr struct {
	Status  int
	Message string
}

// Error implements the error interface
func (err HTTPErr) Error() string {
	return err.Message
}

// PsuUUID generates a pseudorandom UUID-shaped string
func PsuUUID() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return fmt.Sprintf("%X-%X-%X-%X-%X", b[0:4], b[4:6], b[6:8], b[8:10], b[10:]), nil
}
