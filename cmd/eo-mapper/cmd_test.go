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

package main

import (
	"database/sql"
	"io/ioutil"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/venicegeo/eo-mapper/util"
)

func TestMain(m *testing.M) {
	// The router builds database-backed handlers at startup
	mockDb, _, _ := sqlmock.New()
	getDbConnectionFunc = func(util.LogContext) (*sql.DB, error) { return mockDb, nil }
	code := m.Run()
	os.Exit(code)
}

func TestServe_CallsLaunchServer(t *testing.T) {
	success := make(chan bool)
	launchServerFunc = func(portStr string, router *mux.Router) { // Mock
		success <- true
	}
	timer := time.NewTimer(1 * time.Second)

	go serveAction(nil)

	select {
	case <-success:
	case <-timer.C:
		assert.Fail(t, "launchServer not called within 1 second of serve()")
	}
}

func TestServe_BaseHealthCheckEndpoint(t *testing.T) {
	success := make(chan bool)
	launchServerFunc = func(portStr string, router *mux.Router) { // Mock
		req := httptest.NewRequest("GET", "/", strings.NewReader(""))
		response := httptest.NewRecorder()
		router.ServeHTTP(response, req)
		responseBody, _ := ioutil.ReadAll(response.Result().Body)
		success <- (string(responseBody) == "OK")
	}

	timer := time.NewTimer(1 * time.Second)

	go serveAction(nil)

	select {
	case <-success:
	case <-timer.C:
		assert.Fail(t, "launchServer not called within 1 second of serve()")
	}
}

func TestGetPortStr(t *testing.T) {
	os.Unsetenv("PORT")
	assert.Equal(t, ":8080", getPortStr())

	os.Setenv("PORT", "9090")
	defer os.Unsetenv("PORT")
	assert.Equal(t, ":9090", getPortStr())
}

func TestGetTimerDuration(t *testing.T) {
	os.Unsetenv(ingestFrequencyEnv)
	assert.Equal(t, defaultIngestFrequency, getTimerDuration())

	os.Setenv(ingestFrequencyEnv, "2h")
	defer os.Unsetenv(ingestFrequencyEnv)
	assert.Equal(t, 2*time.Hour, getTimerDuration())
}

func TestGetLookbackDuration(t *testing.T) {
	os.Unsetenv(ingestLookbackEnv)
	assert.Equal(t, defaultIngestLookback, getLookbackDuration())

	os.Setenv(ingestLookbackEnv, "72h")
	defer os.Unsetenv(ingestLookbackEnv)
	assert.Equal(t, 72*time.Hour, getLookbackDuration())
}
