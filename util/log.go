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
	"fmt"
	"log"
	"net/http"

	"github.com/google/uuid"
)

// Severity is a syslog-style message severity
type Severity int

// Severities, in decreasing order of importance
const (
	FATAL Severity = iota + 2
	ERROR
	WARN
	NOTICE
	INFO
	DEBUG
)

func (s Severity) String() string {
	switch s {
	case FATAL:
		return "FATAL"
	case ERROR:
		return "ERROR"
	case WARN:
		return "WARN"
	case NOTICE:
		return "NOTICE"
	case INFO:
		return "INFO"
	case DEBUG:
		return "DEBUG"
	}
	return "UNKNOWN"
}

// LogContext is the context for a logged operation
type LogContext interface {
	AppName() string
	SessionID() string
	LogRootDir() string
}

// BasicLogContext is a minimal LogContext for operations that have no richer one
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

// PsuUUID returns a V4 UUID suitable for session tracking
func PsuUUID() (string, error) {
	u, err := uuid.NewRandom()
	if err != nil {
		return "", err
	}
	return u.String(), nil
}

func logMessage(context LogContext, severity Severity, message string) {
	app := context.AppName()
	if app == "" {
		app = "-"
	}
	log.Printf("[%v] %s (session: %s) %s", severity, app, context.SessionID(), message)
}

// LogInfo logs an informational message
func LogInfo(context LogContext, message string) {
	logMessage(context, INFO, message)
}

// LogAlert logs a message that needs operator attention but is not
// necessarily an error
func LogAlert(context LogContext, message string) {
	logMessage(context, WARN, message)
}

// LogSimpleErr logs a message and its causing error, returning an error
// wrapping both for the caller to hand back up
func LogSimpleErr(context LogContext, message string, err error) error {
	logMessage(context, ERROR, fmt.Sprintf("%s %v", message, err))
	return Error{LogMsg: message, SimpleMsg: message}
}

// LogAuditInput is the set of fields for a single audit log record
type LogAuditInput struct {
	Actor    string
	Action   string
	Actee    string
	Message  string
	Severity Severity
}

// LogAudit writes an audit record tracking who did what to whom
func LogAudit(context LogContext, input LogAuditInput) {
	logMessage(context, input.Severity, fmt.Sprintf("AUDIT %s [%s] %s: %s", input.Actor, input.Action, input.Actee, input.Message))
}

// HTTPError writes an error message to the response writer, logging it on the way
func HTTPError(request *http.Request, writer http.ResponseWriter, context LogContext, message string, status int) {
	LogAudit(context, LogAuditInput{
		Actor:    request.RemoteAddr,
		Action:   request.Method + " response",
		Actee:    request.URL.String(),
		Message:  message,
		Severity: ERROR,
	})
	http.Error(writer, message, status)
}
