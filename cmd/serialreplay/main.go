// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

// Command serialreplay opens a serial port (or, with -file, any
// recorded file of wire-codec frames) and decodes a stream of fixed
// 25-byte records into tracker events. Grounded in gps_producer.go's
// go-serial OpenOptions idiom, generalized from NMEA text lines to the
// tracker's fixed-size binary frames.
package main

import (
	"flag"
	"io"
	"log"
	"os"

	serial "github.com/jacobsa/go-serial/serial"

	"github.com/relabs-tech/inertial-tracker/internal/config"
	"github.com/relabs-tech/inertial-tracker/internal/event"
	"github.com/relabs-tech/inertial-tracker/internal/tracker"
	"github.com/relabs-tech/inertial-tracker/internal/wire"
)

func main() {
	configPath := flag.String("config", "tracker.conf", "path to the key=value configuration file")
	portName := flag.String("port", "", "serial device to read 25-byte frames from, e.g. /dev/ttyUSB0")
	filePath := flag.String("file", "", "alternative to -port: replay frames from a recorded file")
	baud := flag.Uint("baud", 115200, "serial baud rate")
	flag.Parse()

	if *portName == "" && *filePath == "" {
		log.Fatal("serialreplay: one of -port or -file is required")
	}

	log.Println("starting serialreplay")

	cfg := config.New()
	if err := cfg.Load(*configPath); err != nil {
		log.Printf("serialreplay: no configuration file at %s, using defaults: %v", *configPath, err)
	}

	var src io.ReadCloser
	if *filePath != "" {
		f, err := os.Open(*filePath)
		if err != nil {
			log.Fatalf("serialreplay: open %s: %v", *filePath, err)
		}
		src = f
		log.Printf("serialreplay: replaying frames from %s", *filePath)
	} else {
		port, err := serial.Open(serial.OpenOptions{
			PortName:        *portName,
			BaudRate:        *baud,
			DataBits:        8,
			StopBits:        1,
			MinimumReadSize: wire.FrameSize,
		})
		if err != nil {
			log.Fatalf("serialreplay: open %s: %v", *portName, err)
		}
		src = port
		log.Printf("serialreplay: reading frames from %s at %d baud", *portName, *baud)
	}
	defer src.Close()

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
	defer t.Stop()

	buf := make([]byte, wire.FrameSize)
	for {
		if _, err := io.ReadFull(src, buf); err != nil {
			if err == io.EOF || err == io.ErrUnexpectedEOF {
				log.Println("serialreplay: end of stream")
				return
			}
			log.Fatalf("serialreplay: read error: %v", err)
		}

		e := wire.Decode(buf)
		if e.Kind == event.Unknown {
			log.Println("serialreplay: stopping on undecodable record")
			return
		}
		t.ReceiveEvent(e)
	}
}
