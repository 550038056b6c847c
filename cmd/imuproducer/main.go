// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

// Command imuproducer opens a real MPU-9250 over SPI, converts its raw
// readings into accelerometer/gyroscope/magnetometer events, and feeds
// them to a tracker.Tracker, logging the fused orientation, velocity
// and displacement as they update.
package main

import (
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/relabs-tech/inertial-tracker/internal/config"
	"github.com/relabs-tech/inertial-tracker/internal/event"
	"github.com/relabs-tech/inertial-tracker/internal/sensors"
	"github.com/relabs-tech/inertial-tracker/internal/tracker"
)

func main() {
	configPath := flag.String("config", "tracker.conf", "path to the key=value configuration file")
	rateHz := flag.Float64("rate", 100, "sampling rate in Hz")
	flag.Parse()

	log.Println("starting imuproducer")

	cfg := config.New()
	if err := cfg.Load(*configPath); err != nil {
		log.Printf("imuproducer: no configuration file at %s, using defaults: %v", *configPath, err)
	}

	src, err := sensors.NewIMUSource(cfg)
	if err != nil {
		log.Fatalf("imuproducer: failed to open IMU: %v", err)
	}

	t := tracker.New(cfg)
	t.SetOrientationCallback(func(e event.OrientationEvent) {
		log.Printf("orientation: %+v", e.Value)
	})
	t.SetVelocityCallback(func(e event.AxesEvent) {
		log.Printf("velocity: %.3f %.3f %.3f", e.Value[0], e.Value[1], e.Value[2])
	})
	t.SetDisplacementCallback(func(e event.AxesEvent) {
		log.Printf("displacement: %.3f %.3f %.3f", e.Value[0], e.Value[1], e.Value[2])
	})
	t.Start()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	ticker := time.NewTicker(time.Duration(float64(time.Second) / *rateHz))
	defer ticker.Stop()

	for {
		select {
		case now := <-ticker.C:
			ts := now.UnixNano()
			accel, gyro, mag, err := src.Sample(ts)
			if err != nil {
				log.Printf("imuproducer: sample error: %v", err)
				continue
			}
			t.ReceiveEvent(accel)
			t.ReceiveEvent(gyro)
			t.ReceiveEvent(mag)
		case <-sigCh:
			log.Println("imuproducer: shutting down")
			t.Stop()
			return
		}
	}
}
