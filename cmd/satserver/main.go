package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	kitlog "github.com/go-kit/kit/log"
	"github.com/skyops/sgp4"
	"github.com/skyops/sgp4/internal/metrics"
)

// satserver serves orbit propagation and pass prediction over HTTP. It
// loads a set of orbital elements at startup, either a Celestrak OMM JSON
// group file or a concatenated TLE file, and keeps the derived propagation
// constants in memory.

var (
	addr     string
	elements string
)

func init() {
	flag.StringVar(&addr, "addr", ":8080", "listen address")
	flag.StringVar(&elements, "elements", "", "OMM JSON group or TLE file to serve")
}

type server struct {
	logger     kitlog.Logger
	satellites map[int]*sgp4.Satellite
}

func loadSatellites(path string) (map[int]*sgp4.Satellite, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	satellites := make(map[int]*sgp4.Satellite)

	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, "[") || strings.HasPrefix(trimmed, "{") {
		group, err := sgp4.ParseOMMGroup(data)
		if err != nil {
			return nil, err
		}
		for i := range group {
			satellite, err := sgp4.SatelliteFromOMM(&group[i])
			if err != nil {
				return nil, fmt.Errorf("object %s: %w", group[i].ObjectName, err)
			}
			satellites[satellite.NoradID] = satellite
		}
		return satellites, nil
	}

	// TLE file: optional name line followed by the two element lines.
	lines := strings.Split(trimmed, "\n")
	for i := 0; i < len(lines); {
		end := i + 2
		if !strings.HasPrefix(strings.TrimSpace(lines[i]), "1 ") {
			end = i + 3
		}
		if end > len(lines) {
			return nil, fmt.Errorf("truncated TLE at line %d", i+1)
		}
		satellite, err := sgp4.SatelliteFromTLE(strings.Join(lines[i:end], "\n"))
		if err != nil {
			return nil, fmt.Errorf("TLE at line %d: %w", i+1, err)
		}
		satellites[satellite.NoradID] = satellite
		i = end
	}
	return satellites, nil
}

func (s *server) satellite(w http.ResponseWriter, r *http.Request) (*sgp4.Satellite, bool) {
	norad, err := strconv.Atoi(r.URL.Query().Get("norad"))
	if err != nil {
		http.Error(w, "invalid norad parameter", http.StatusBadRequest)
		return nil, false
	}
	satellite, ok := s.satellites[norad]
	if !ok {
		http.Error(w, "unknown satellite", http.StatusNotFound)
		return nil, false
	}
	return satellite, true
}

type propagateResponse struct {
	Name      string      `json:"name"`
	NoradID   int         `json:"norad_id"`
	Time      time.Time   `json:"time"`
	Position  sgp4.Vector `json:"position_km"`
	Velocity  sgp4.Vector `json:"velocity_km_s"`
	Latitude  float64     `json:"latitude_deg"`
	Longitude float64     `json:"longitude_deg"`
	Altitude  float64     `json:"altitude_km"`
}

func (s *server) handlePropagate(w http.ResponseWriter, r *http.Request) {
	satellite, ok := s.satellite(w, r)
	if !ok {
		metrics.PropagationsTotal.WithLabelValues("error").Inc()
		return
	}
	t := time.Now().UTC()
	if raw := r.URL.Query().Get("time"); raw != "" {
		var err error
		t, err = time.Parse(time.RFC3339, raw)
		if err != nil {
			http.Error(w, "invalid time parameter, want RFC3339", http.StatusBadRequest)
			metrics.PropagationsTotal.WithLabelValues("error").Inc()
			return
		}
	}

	state := satellite.StateAt(t)
	lat, lon, alt := state.ToGeodetic()
	metrics.PropagationsTotal.WithLabelValues("ok").Inc()

	writeJSON(w, propagateResponse{
		Name:      satellite.Name,
		NoradID:   satellite.NoradID,
		Time:      t,
		Position:  state.Position,
		Velocity:  state.Velocity,
		Latitude:  lat,
		Longitude: lon,
		Altitude:  alt,
	})
}

func (s *server) handlePasses(w http.ResponseWriter, r *http.Request) {
	satellite, ok := s.satellite(w, r)
	if !ok {
		return
	}
	query := r.URL.Query()
	lat, errLat := strconv.ParseFloat(query.Get("lat"), 64)
	lon, errLon := strconv.ParseFloat(query.Get("lon"), 64)
	if errLat != nil || errLon != nil {
		http.Error(w, "invalid lat/lon parameters", http.StatusBadRequest)
		return
	}
	alt, _ := strconv.ParseFloat(query.Get("alt"), 64)
	hours, err := strconv.ParseFloat(query.Get("hours"), 64)
	if err != nil || hours <= 0 || hours > 168 {
		hours = 24
	}
	minElevation, err := strconv.ParseFloat(query.Get("min-elevation"), 64)
	if err != nil {
		minElevation = 10
	}

	observer := &sgp4.Location{Latitude: lat, Longitude: lon, Altitude: alt}
	start := time.Now().UTC()
	passes, err := satellite.GeneratePasses(observer, start, start.Add(time.Duration(hours*float64(time.Hour))), 10*time.Second, minElevation)
	if err != nil {
		s.logger.Log("handler", "passes", "norad", satellite.NoradID, "err", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, passes)
}

func (s *server) handleSatellites(w http.ResponseWriter, r *http.Request) {
	type entry struct {
		Name    string    `json:"name"`
		NoradID int       `json:"norad_id"`
		Epoch   time.Time `json:"epoch"`
	}
	list := make([]entry, 0, len(s.satellites))
	for _, satellite := range s.satellites {
		list = append(list, entry{Name: satellite.Name, NoradID: satellite.NoradID, Epoch: satellite.Epoch})
	}
	writeJSON(w, list)
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func main() {
	flag.Parse()

	logger := kitlog.NewLogfmtLogger(kitlog.NewSyncWriter(os.Stdout))
	logger = kitlog.With(logger, "ts", kitlog.DefaultTimestampUTC)

	if elements == "" {
		logger.Log("err", "no -elements file provided")
		os.Exit(1)
	}
	satellites, err := loadSatellites(elements)
	if err != nil {
		logger.Log("err", err)
		os.Exit(1)
	}
	logger.Log("msg", "elements loaded", "file", elements, "satellites", len(satellites))

	s := &server{logger: logger, satellites: satellites}

	mux := http.NewServeMux()
	mux.HandleFunc("/satellites", s.handleSatellites)
	mux.HandleFunc("/propagate", s.handlePropagate)
	mux.HandleFunc("/passes", s.handlePasses)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, "ok")
	})
	mux.Handle("/metrics", metrics.Handler())

	logger.Log("msg", "listening", "addr", addr)
	if err := http.ListenAndServe(addr, metrics.Middleware(mux)); err != nil {
		logger.Log("err", err)
		os.Exit(1)
	}
}
