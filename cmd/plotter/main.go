package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/skyops/sgp4"
	"github.com/spf13/viper"
)

// plotter reads a scenario TOML file describing a satellite and a ground
// station, predicts the passes over the prediction window, and writes one
// polar sky plot per pass.
//
// Scenario file layout:
//
//	[satellite]
//	tle = "path/to/satellite.tle"
//
//	[observer]
//	latitude = 46.829853
//	longitude = -71.254028
//	altitude = 0.0
//
//	[prediction]
//	start = "2026-08-30 00:00:00"
//	duration = "48h"
//	step = "10s"
//	min-elevation = 10.0

const (
	defaultScenario = "~~unset~~"
	dateFormat      = "2006-01-02 15:04:05"
)

var (
	scenario string
	verbose  bool
)

func init() {
	flag.StringVar(&scenario, "scenario", defaultScenario, "pass prediction scenario TOML file")
	flag.BoolVar(&verbose, "verbose", false, "log every predicted data point")
}

func main() {
	flag.Parse()
	if scenario == defaultScenario {
		log.Fatal("no scenario provided")
	}
	scenario = strings.Replace(scenario, ".toml", "", 1)
	viper.AddConfigPath(".")
	viper.SetConfigName(scenario)
	if err := viper.ReadInConfig(); err != nil {
		log.Fatalf("./%s.toml: Error %s", scenario, err)
	}

	tlePath := viper.GetString("satellite.tle")
	tleData, err := os.ReadFile(tlePath)
	if err != nil {
		log.Fatalf("reading %s: %s", tlePath, err)
	}
	satellite, err := sgp4.SatelliteFromTLE(string(tleData))
	if err != nil {
		log.Fatalf("parsing %s: %s", tlePath, err)
	}
	if verbose {
		log.Printf("[conf] satellite: %s (%d), epoch %s\n", satellite.Name, satellite.NoradID, satellite.Epoch)
	}

	observer := &sgp4.Location{
		Latitude:  viper.GetFloat64("observer.latitude"),
		Longitude: viper.GetFloat64("observer.longitude"),
		Altitude:  viper.GetFloat64("observer.altitude"),
	}

	start := time.Now().UTC()
	if raw := viper.GetString("prediction.start"); raw != "" {
		start, err = time.Parse(dateFormat, raw)
		if err != nil {
			log.Fatalf("parsing prediction.start: %s", err)
		}
	}
	duration := viper.GetDuration("prediction.duration")
	if duration == 0 {
		duration = 24 * time.Hour
	}
	step := viper.GetDuration("prediction.step")
	if step == 0 {
		step = 10 * time.Second
	}
	minElevation := viper.GetFloat64("prediction.min-elevation")

	passes, err := satellite.GeneratePasses(observer, start, start.Add(duration), step, minElevation)
	if err != nil {
		log.Fatalf("generating passes: %s", err)
	}

	fmt.Printf("Predicted passes for %s over Lat:%.2f Lon:%.2f:\n", satellite.Name, observer.Latitude, observer.Longitude)
	if len(passes) == 0 {
		fmt.Println("No passes found in the given time window.")
		return
	}
	for i, pass := range passes {
		fmt.Printf("Pass %d:\n", i+1)
		fmt.Printf("  AOS: %s (Az: %.1f°)\n", pass.AOS.Format(dateFormat), pass.AOSAzimuth)
		fmt.Printf("  Max elevation: %.1f° (Az: %.1f° at %s)\n", pass.MaxElevation, pass.MaxElevationAz, pass.MaxElevationTime.Format(dateFormat))
		fmt.Printf("  LOS: %s (Az: %.1f°)\n", pass.LOS.Format(dateFormat), pass.LOSAzimuth)
		fmt.Printf("  Duration: %v\n", pass.Duration.Truncate(time.Second))
		if verbose {
			for _, point := range pass.DataPoints {
				log.Printf("[pass %d] %s az=%.1f el=%.1f range=%.1f\n", i+1, point.Timestamp.Format(dateFormat), point.Azimuth, point.Elevation, point.Range)
			}
		}

		fileName := fmt.Sprintf("pass_%d_polar_plot.svg", i+1)
		if err := os.WriteFile(fileName, []byte(pass.PolarSVG()), 0644); err != nil {
			log.Printf("writing %s: %s", fileName, err)
			continue
		}
		fmt.Printf("  Polar plot saved to %s\n", fileName)
	}
}
