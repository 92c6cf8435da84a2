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

import "fmt"

// Error is a richer error containing both an operator-facing log message and
// a simpler message safe to return to API consumers
type Error struct {
	LogMsg     string
	SimpleMsg  string
	Response   string
	URL        string
	HTTPStatus int
}

// Error implements the error interface
func (e Error) Error() string {
	if e.SimpleMsg != "" {
		return e.SimpleMsg
	}
	return e.LogMsg
}

// Log writes the full detail of the error to the log, optionally prefixed,
// and returns the error for the caller to hand back up
func (e Error) Log(context LogContext, prefix string) error {
	message := e.LogMsg
	if prefix != "" {
		message = prefix + ": " + message
	}
	if e.URL != "" {
		message += fmt.Sprintf("\nURL: %s", e.URL)
	}
	if e.HTTPStatus != 0 {
		message += fmt.Sprintf("\nHTTP Status: %d", e.HTTPStatus)
	}
	if e.Response != "" {
		message += fmt.Sprintf("\nResponse: %s", e.Response)
	}
	logMessage(context, ERROR, message)
	return e
}

// HTTPErr is an error carrying an HTTP status code
type HTTPErr struct {
	Status  int
	Message string
}

// Error implements the error interface
func (e HTTPErr) Error() string {
	return e.Message
}
