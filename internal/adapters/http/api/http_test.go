package api_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/podium/internal/adapters/http/api"
	service "github.com/okian/podium/internal/app"
	"github.com/okian/podium/pkg/logger"
)

func init() {
	// Initialize logging for tests
	if err := logger.Init(); err != nil {
		panic(err)
	}
	// Scores cross the wire as JSON numbers, matching production wiring
	decimal.MarshalJSONWithoutQuotes = true
}

// newTestServer builds a full service + API stack on an httptest server.
func newTestServer(t *testing.T, development bool) (*httptest.Server, *service.Service) {
	t.Helper()

	svc := service.New()
	if err := svc.Start(context.Background()); err != nil {
		t.Fatalf("failed to start service: %v", err)
	}
	t.Cleanup(svc.Stop)

	mux := http.NewServeMux()
	api.NewServer(svc, svc, development).Register(context.Background(), mux)

	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)
	return ts, svc
}

func postScore(t *testing.T, ts *httptest.Server, path string) (*http.Response, string) {
	t.Helper()
	resp, err := http.Post(ts.URL+path, "text/plain", nil)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	body, err := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if err != nil {
		t.Fatalf("failed to read body: %v", err)
	}
	return resp, string(body)
}

func getJSON(t *testing.T, ts *httptest.Server, path string, v any) *http.Response {
	t.Helper()
	resp, err := http.Get(ts.URL + path)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()
	if v != nil && resp.StatusCode == http.StatusOK {
		if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
			t.Fatalf("failed to decode body: %v", err)
		}
	}
	return resp
}

func TestAPI_PostScore(t *testing.T) {
	Convey("Given a running API server", t, func() {
		ts, _ := newTestServer(t, false)

		Convey("When posting a valid delta", func() {
			resp, body := postScore(t, ts, "/customer/1/score/100.5")

			Convey("Then the new score comes back as decimal text", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusOK)
				So(body, ShouldEqual, "100.5")
			})
		})

		Convey("When posting successive deltas", func() {
			_, _ = postScore(t, ts, "/customer/1/score/100.5")
			resp, body := postScore(t, ts, "/customer/1/score/-0.5")

			Convey("Then the score accumulates exactly", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusOK)
				got, err := decimal.NewFromString(body)
				So(err, ShouldBeNil)
				So(got.Equal(decimal.NewFromInt(100)), ShouldBeTrue)
			})
		})

		Convey("When the customer id is not positive", func() {
			resp, _ := postScore(t, ts, "/customer/0/score/10")

			Convey("Then the request is rejected with 400", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)
			})
		})

		Convey("When the delta is out of range", func() {
			resp, _ := postScore(t, ts, "/customer/1/score/1001")

			Convey("Then the request is rejected with 400", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)
			})
		})

		Convey("When the path is malformed", func() {
			resp, _ := postScore(t, ts, "/customer/abc/score/10")
			respMissing, _ := postScore(t, ts, "/customer/1/points/10")

			Convey("Then the requests are rejected with 400", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)
				So(respMissing.StatusCode, ShouldEqual, http.StatusBadRequest)
			})
		})

		Convey("When using the wrong method", func() {
			resp := getJSON(t, ts, "/customer/1/score/10", nil)

			Convey("Then the route is not found", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusNotFound)
			})
		})
	})
}

func TestAPI_GetLeaderboard(t *testing.T) {
	Convey("Given a running API server with three ranked customers", t, func() {
		ts, _ := newTestServer(t, false)

		_, _ = postScore(t, ts, "/customer/1/score/100")
		_, _ = postScore(t, ts, "/customer/2/score/200")
		_, _ = postScore(t, ts, "/customer/3/score/150")

		Convey("When fetching the full window", func() {
			var entries []api.Entry
			resp := getJSON(t, ts, "/leaderboard?start=1&end=3", &entries)

			Convey("Then entries come back ranked and shaped", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusOK)
				So(len(entries), ShouldEqual, 3)
				So(entries[0].CustomerID, ShouldEqual, 2)
				So(entries[0].Rank, ShouldEqual, 1)
				So(entries[2].CustomerID, ShouldEqual, 1)
				So(entries[2].Rank, ShouldEqual, 3)
			})
		})

		Convey("When checking the raw JSON shape", func() {
			resp, err := http.Get(ts.URL + "/leaderboard?start=1&end=1")
			So(err, ShouldBeNil)
			body, err := io.ReadAll(resp.Body)
			_ = resp.Body.Close()
			So(err, ShouldBeNil)

			Convey("Then field names match the wire contract and scores are numbers", func() {
				payload := strings.TrimSpace(string(body))
				So(payload, ShouldEqual, `[{"customerId":2,"score":200,"rank":1}]`)
			})
		})

		Convey("When the window starts past the board", func() {
			resp, err := http.Get(ts.URL + "/leaderboard?start=10&end=12")
			So(err, ShouldBeNil)
			body, err := io.ReadAll(resp.Body)
			_ = resp.Body.Close()
			So(err, ShouldBeNil)

			Convey("Then an empty array is returned, not null", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusOK)
				So(strings.TrimSpace(string(body)), ShouldEqual, "[]")
			})
		})

		Convey("When parameters are missing or invalid", func() {
			missing := getJSON(t, ts, "/leaderboard?start=1", nil)
			invalid := getJSON(t, ts, "/leaderboard?start=a&end=3", nil)
			inverted := getJSON(t, ts, "/leaderboard?start=3&end=1", nil)

			Convey("Then all are rejected with 400", func() {
				So(missing.StatusCode, ShouldEqual, http.StatusBadRequest)
				So(invalid.StatusCode, ShouldEqual, http.StatusBadRequest)
				So(inverted.StatusCode, ShouldEqual, http.StatusBadRequest)
			})
		})
	})
}

func TestAPI_GetNeighbors(t *testing.T) {
	Convey("Given a running API server with five ranked customers", t, func() {
		ts, _ := newTestServer(t, false)

		_, _ = postScore(t, ts, "/customer/1/score/100")
		_, _ = postScore(t, ts, "/customer/2/score/200")
		_, _ = postScore(t, ts, "/customer/3/score/150")
		_, _ = postScore(t, ts, "/customer/4/score/120")
		_, _ = postScore(t, ts, "/customer/5/score/80")

		Convey("When fetching one neighbor on each side", func() {
			var entries []api.Entry
			resp := getJSON(t, ts, "/leaderboard/3?high=1&low=1", &entries)

			Convey("Then the window surrounds the customer", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusOK)
				So(len(entries), ShouldEqual, 3)
				So(entries[0].CustomerID, ShouldEqual, 2)
				So(entries[1].CustomerID, ShouldEqual, 3)
				So(entries[2].CustomerID, ShouldEqual, 4)
			})
		})

		Convey("When omitting the neighbor parameters", func() {
			var entries []api.Entry
			resp := getJSON(t, ts, "/leaderboard/3", &entries)

			Convey("Then they default to zero and a singleton comes back", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusOK)
				So(len(entries), ShouldEqual, 1)
				So(entries[0].CustomerID, ShouldEqual, 3)
			})
		})

		Convey("When the customer is unknown", func() {
			resp := getJSON(t, ts, "/leaderboard/42", nil)

			Convey("Then 404 is returned", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusNotFound)
			})
		})

		Convey("When the customer is not ranked", func() {
			_, _ = postScore(t, ts, "/customer/6/score/-10")
			resp := getJSON(t, ts, "/leaderboard/6", nil)

			Convey("Then 404 is returned", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusNotFound)
			})
		})

		Convey("When parameters are invalid", func() {
			negative := getJSON(t, ts, "/leaderboard/3?high=-1", nil)
			badID := getJSON(t, ts, "/leaderboard/abc", nil)

			Convey("Then the requests are rejected with 400", func() {
				So(negative.StatusCode, ShouldEqual, http.StatusBadRequest)
				So(badID.StatusCode, ShouldEqual, http.StatusBadRequest)
			})
		})
	})
}

func TestAPI_Clear(t *testing.T) {
	Convey("Given a development-profile API server", t, func() {
		ts, _ := newTestServer(t, true)
		_, _ = postScore(t, ts, "/customer/1/score/100")

		Convey("When deleting /leaderboard/clear", func() {
			req, err := http.NewRequest(http.MethodDelete, ts.URL+"/leaderboard/clear", nil)
			So(err, ShouldBeNil)
			resp, err := http.DefaultClient.Do(req)
			So(err, ShouldBeNil)
			_ = resp.Body.Close()

			Convey("Then the board is wiped", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusOK)

				var entries []api.Entry
				lbResp := getJSON(t, ts, "/leaderboard?start=1&end=10", &entries)
				So(lbResp.StatusCode, ShouldEqual, http.StatusOK)
				So(entries, ShouldBeEmpty)
			})
		})
	})

	Convey("Given a production-profile API server", t, func() {
		ts, _ := newTestServer(t, false)

		Convey("When deleting /leaderboard/clear", func() {
			req, err := http.NewRequest(http.MethodDelete, ts.URL+"/leaderboard/clear", nil)
			So(err, ShouldBeNil)
			resp, err := http.DefaultClient.Do(req)
			So(err, ShouldBeNil)
			_ = resp.Body.Close()

			Convey("Then the route does not exist", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusNotFound)
			})
		})
	})
}

func TestAPI_Observability(t *testing.T) {
	Convey("Given a running API server", t, func() {
		ts, _ := newTestServer(t, false)

		Convey("When fetching /stats", func() {
			var stats map[string]interface{}
			resp := getJSON(t, ts, "/stats", &stats)

			Convey("Then service statistics come back", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusOK)
				So(stats["started"], ShouldEqual, true)
			})
		})

		Convey("When fetching /healthz", func() {
			resp := getJSON(t, ts, "/healthz", nil)

			Convey("Then the metrics scrape responds", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusOK)
			})
		})

		Convey("When posting a score", func() {
			resp, _ := postScore(t, ts, "/customer/1/score/10")

			Convey("Then a request id is attached to the response", func() {
				So(resp.Header.Get("X-Request-Id"), ShouldNotBeEmpty)
			})
		})
	})
}
