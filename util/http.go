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
	"net/http"
	"sync"
	"time"
)

type retryTransport struct {
	transport http.RoundTripper
	retries   int
}

// RoundTrip implements http.RoundTripper, retrying transport-level failures
// and 5xx responses up to the configured retry count
func (t retryTransport) RoundTrip(request *http.Request) (*http.Response, error) {
	var (
		response *http.Response
		err      error
	)
	for attempt := 0; attempt <= t.retries; attempt++ {
		if attempt > 0 {
			// The previous attempt consumed the body; requests whose
			// bodies cannot be recreated are not replayed
			if request.Body != nil {
				if request.GetBody == nil {
					break
				}
				body, bodyErr := request.GetBody()
				if bodyErr != nil {
					break
				}
				request.Body = body
			}
			time.Sleep(time.Duration(attempt) * time.Second)
		}
		response, err = t.transport.RoundTrip(request)
		if err != nil {
			continue
		}
		if response.StatusCode < 500 {
			return response, nil
		}
	}
	return response, err
}

var (
	httpClient     *http.Client
	httpClientOnce sync.Once
)

// HTTPClient returns the shared HTTP client for outbound catalog and
// archive requests
func HTTPClient() *http.Client {
	httpClientOnce.Do(func() {
		httpClient = &http.Client{
			Timeout: 120 * time.Second,
			Transport: retryTransport{
				transport: http.DefaultTransport,
				retries:   GetHTTPSRetries(),
			},
		}
	})
	return httpClient
}
