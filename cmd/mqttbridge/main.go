// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

// Command mqttbridge subscribes to an MQTT topic carrying the
// tracker's 25-byte wire-codec frames (e.g. republished by a phone
// app's sensor capture), decodes and feeds them to a tracker.Tracker,
// and republishes the fused orientation, velocity and displacement as
// JSON on their own topics. Grounded in web.go/
// imu_producer.go MQTT connect/subscribe/publish idiom.
package main

import (
	"encoding/json"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/relabs-tech/inertial-tracker/internal/config"
	"github.com/relabs-tech/inertial-tracker/internal/event"
	"github.com/relabs-tech/inertial-tracker/internal/tracker"
	"github.com/relabs-tech/inertial-tracker/internal/wire"
)

func main() {
	configPath := flag.String("config", "tracker.conf", "path to the key=value configuration file")
	broker := flag.String("broker", "tcp://localhost:1883", "MQTT broker URL")
	rawTopic := flag.String("raw-topic", "inertial/raw", "topic carrying 25-byte wire-codec frames")
	orientTopic := flag.String("orientation-topic", "inertial/orientation", "topic to publish orientation JSON on")
	velocityTopic := flag.String("velocity-topic", "inertial/velocity", "topic to publish velocity JSON on")
	displacementTopic := flag.String("displacement-topic", "inertial/displacement", "topic to publish displacement JSON on")
	flag.Parse()

	log.Println("starting mqttbridge")

	cfg := config.New()
	if err := cfg.Load(*configPath); err != nil {
		log.Printf("mqttbridge: no configuration file at %s, using defaults: %v", *configPath, err)
	}

	opts := mqtt.NewClientOptions().
		AddBroker(*broker).
		SetClientID("inertial-tracker-mqttbridge")
	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		log.Fatalf("mqttbridge: MQTT connect error: %v", token.Error())
	}
	defer client.Disconnect(250)
	log.Printf("mqttbridge: connected to MQTT broker at %s", *broker)

	publish := func(topic string, v interface{}) {
		payload, err := json.Marshal(v)
		if err != nil {
			log.Printf("mqttbridge: json marshal error for %s: %v", topic, err)
			return
		}
		if token := client.Publish(topic, 0, false, payload); token.Wait() && token.Error() != nil {
			log.Printf("mqttbridge: publish error on %s: %v", topic, token.Error())
		}
	}

	t := tracker.New(cfg)
	t.SetOrientationCallback(func(e event.OrientationEvent) { publish(*orientTopic, e) })
	t.SetVelocityCallback(func(e event.AxesEvent) { publish(*velocityTopic, e) })
	t.SetDisplacementCallback(func(e event.AxesEvent) { publish(*displacementTopic, e) })
	t.Start()
	defer t.Stop()

	token := client.Subscribe(*rawTopic, 0, func(_ mqtt.Client, msg mqtt.Message) {
		t.ReceiveEvent(wire.Decode(msg.Payload()))
	})
	token.Wait()
	if token.Error() != nil {
		log.Fatalf("mqttbridge: subscribe error: %v", token.Error())
	}
	log.Printf("mqttbridge: subscribed to %s, publishing fused state on %s/%s/%s",
		*rawTopic, *orientTopic, *velocityTopic, *displacementTopic)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh
	log.Println("mqttbridge: shutting down")
}
