package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	kitlog "github.com/go-kit/kit/log"
	"github.com/skyops/sgp4"
	"golang.org/x/time/rate"
)

// fetch downloads orbital elements from the Celestrak GP API in OMM JSON
// format and writes them to stdout or a file. Requests are rate limited so
// repeated invocations in a shell loop stay polite to the upstream service.

const gpURL = "https://celestrak.org/NORAD/elements/gp.php"

var (
	catnr   int
	name    string
	group   string
	output  string
	timeout time.Duration
)

func init() {
	flag.IntVar(&catnr, "catnr", 0, "NORAD catalog number to fetch")
	flag.StringVar(&name, "name", "", "satellite name to search for")
	flag.StringVar(&group, "group", "", "element group to fetch (e.g. stations, weather)")
	flag.StringVar(&output, "output", "", "output file (default stdout)")
	flag.DurationVar(&timeout, "timeout", 30*time.Second, "request timeout")
}

// one request per 2 seconds, small burst for group queries
var limiter = rate.NewLimiter(rate.Every(2*time.Second), 2)

func main() {
	flag.Parse()

	logger := kitlog.NewLogfmtLogger(kitlog.NewSyncWriter(os.Stderr))
	logger = kitlog.With(logger, "ts", kitlog.DefaultTimestampUTC)

	query := url.Values{"FORMAT": []string{"json"}}
	switch {
	case catnr != 0:
		query.Set("CATNR", fmt.Sprintf("%d", catnr))
	case name != "":
		query.Set("NAME", name)
	case group != "":
		query.Set("GROUP", group)
	default:
		logger.Log("err", "one of -catnr, -name or -group is required")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := limiter.Wait(ctx); err != nil {
		logger.Log("err", err)
		os.Exit(1)
	}

	requestURL := gpURL + "?" + query.Encode()
	logger.Log("msg", "fetching", "url", requestURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		logger.Log("err", err)
		os.Exit(1)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		logger.Log("err", err)
		os.Exit(1)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		logger.Log("err", "unexpected status", "status", resp.Status)
		os.Exit(1)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		logger.Log("err", err)
		os.Exit(1)
	}

	// Celestrak answers "No GP data found" as plain text with a 200.
	trimmed := strings.TrimSpace(string(body))
	if !strings.HasPrefix(trimmed, "[") && !strings.HasPrefix(trimmed, "{") {
		logger.Log("err", "no GP data found", "response", trimmed)
		os.Exit(1)
	}

	objects, err := sgp4.ParseOMMGroup(body)
	if err != nil {
		logger.Log("err", err)
		os.Exit(1)
	}
	for i := range objects {
		omm := &objects[i]
		epoch, err := omm.EpochTime()
		if err != nil {
			logger.Log("object", omm.ObjectName, "err", err)
			continue
		}
		constants, err := sgp4.NewConstantsFromOMM(omm)
		if err != nil {
			logger.Log("object", omm.ObjectName, "err", err)
			continue
		}
		// quick propagation at epoch and one day out
		p0 := constants.Propagate(0.0)
		p1 := constants.Propagate(1440.0)
		logger.Log("object", omm.ObjectName, "norad", omm.NoradCatID,
			"epoch", epoch.Format(time.RFC3339),
			"r_epoch_km", fmt.Sprintf("%.3f", norm(p0.Position)),
			"r_next_day_km", fmt.Sprintf("%.3f", norm(p1.Position)))
	}

	pretty, err := json.MarshalIndent(objects, "", "  ")
	if err != nil {
		logger.Log("err", err)
		os.Exit(1)
	}
	if output == "" {
		fmt.Println(string(pretty))
		return
	}
	if err := os.WriteFile(output, pretty, 0644); err != nil {
		logger.Log("err", err)
		os.Exit(1)
	}
	logger.Log("msg", "written", "file", output, "objects", len(objects))
}

func norm(v [3]float64) float64 {
	return math.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
}
