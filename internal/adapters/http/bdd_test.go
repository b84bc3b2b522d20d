package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/cucumber/godog"
)

var errNoResponse = errors.New("no response received")

// testContext holds state shared across step definitions within a scenario.
type testContext struct {
	t            *testing.T
	server       *httptest.Server
	client       *http.Client
	status       int
	responseBody []byte
}

// reset stops the scenario's server and clears response state.
func (tc *testContext) reset() {
	if tc.server != nil {
		tc.server.Close()
	}

	tc.server = nil
	tc.status = 0
	tc.responseBody = nil
}

// initializeScenario registers step definitions for each scenario.
func initializeScenario(t *testing.T) func(*godog.ScenarioContext) {
	return func(ctx *godog.ScenarioContext) {
		tc := &testContext{
			t:      t,
			client: &http.Client{Timeout: 10 * time.Second},
		}

		ctx.Before(func(ctx context.Context, _ *godog.Scenario) (context.Context, error) {
			tc.reset()
			return ctx, nil
		})

		ctx.After(func(ctx context.Context, _ *godog.Scenario, _ error) (context.Context, error) {
			tc.reset()
			return ctx, nil
		})

		ctx.Step(`^the service is running$`, tc.theServiceIsRunning)
		ctx.Step(`^I request (GET|DELETE) "([^"]*)"$`, tc.iRequest)
		ctx.Step(`^I POST "([^"]*)" with:$`, tc.iPOSTWith)
		ctx.Step(`^the response status should be (\d+)$`, tc.theResponseStatusShouldBe)
		ctx.Step(`^the response should contain "([^"]*)"$`, tc.theResponseShouldContain)
		ctx.Step(`^the response should be a list of (\d+) items$`, tc.theResponseShouldBeAListOf)
	}
}

// theServiceIsRunning starts a freshly seeded service and verifies it is live.
func (tc *testContext) theServiceIsRunning() error {
	tc.server = httptest.NewServer(newStack(tc.t))

	if err := tc.iRequest(http.MethodGet, "/-/live"); err != nil {
		return fmt.Errorf("service is not running: %w", err)
	}

	if tc.status != http.StatusOK {
		return fmt.Errorf("service liveness check failed with status %d", tc.status)
	}

	return nil
}

func (tc *testContext) iRequest(method, path string) error {
	return tc.send(method, path, nil)
}

func (tc *testContext) iPOSTWith(path string, body *godog.DocString) error {
	return tc.send(http.MethodPost, path, strings.NewReader(body.Content))
}

func (tc *testContext) send(method, path string, body io.Reader) error {
	if tc.server == nil {
		return errors.New("service is not running")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, method, tc.server.URL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := tc.client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	tc.status = resp.StatusCode

	tc.responseBody, err = io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	return nil
}

// theResponseStatusShouldBe asserts the response status code.
func (tc *testContext) theResponseStatusShouldBe(expectedCode int) error {
	if tc.status == 0 {
		return errNoResponse
	}

	if tc.status != expectedCode {
		return fmt.Errorf("expected status %d, got %d. Body: %s",
			expectedCode, tc.status, string(tc.responseBody))
	}

	return nil
}

// theResponseShouldContain asserts the response body contains the given text.
func (tc *testContext) theResponseShouldContain(text string) error {
	if tc.responseBody == nil {
		return errNoResponse
	}

	if body := string(tc.responseBody); !strings.Contains(body, text) {
		return fmt.Errorf("response body does not contain %q.\nBody: %s", text, body)
	}

	return nil
}

func (tc *testContext) theResponseShouldBeAListOf(n int) error {
	var items []json.RawMessage
	if err := json.Unmarshal(tc.responseBody, &items); err != nil {
		return fmt.Errorf("response is not a JSON list: %w", err)
	}

	if len(items) != n {
		return fmt.Errorf("expected %d items, got %d", n, len(items))
	}

	return nil
}

// TestFeatures runs the GoDog BDD suite against an in-process server.
func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: initializeScenario(t),
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"testdata/features"},
			TestingT: t,
			Tags:     os.Getenv("GODOG_TAGS"),
			Strict:   true,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}
