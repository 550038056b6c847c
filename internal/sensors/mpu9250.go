// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

// Package sensors opens a real MPU-9250 over SPI and converts its raw
// register counts to the physical units the tracker's AxesEvent
// expects. Grounded in imu_source.go, trimmed from its dual-IMU
// (left/right) form to a single handheld device.
package sensors

import (
	"fmt"
	"log"

	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/devices/v3/mpu9250"
	"periph.io/x/host/v3"

	"github.com/relabs-tech/inertial-tracker/internal/config"
	"github.com/relabs-tech/inertial-tracker/internal/event"
)

// Configuration keys read by NewIMUSource, generalized from a
// left/right pair of IMU config fields down to a single device.
const (
	KeySPIDevice   = "IMU_SPI_DEVICE"
	KeyCSPin       = "IMU_CS_PIN"
	KeyAccelRange  = "IMU_ACCEL_RANGE"
	KeyGyroRange   = "IMU_GYRO_RANGE"
	KeySampleRateD = "IMU_SAMPLE_RATE_DIV"
	KeyDLPFConfig  = "IMU_DLPF_CONFIG"

	defaultSPIDevice   = "/dev/spidev0.0"
	defaultCSPin       = "GPIO8"
	defaultAccelRange  = 0 // ±2g
	defaultGyroRange   = 0 // ±250 deg/s
	defaultSampleRateD = 0
	defaultDLPFConfig  = 3
)

var accelGPerLSB = [4]float64{2.0 / 32768, 4.0 / 32768, 8.0 / 32768, 16.0 / 32768}
var gyroDPSPerLSB = [4]float64{250.0 / 32768, 500.0 / 32768, 1000.0 / 32768, 2000.0 / 32768}

const gravity = 9.81
const degToRad = 3.14159265358979323846 / 180

// IMUSource reads accelerometer, gyroscope and magnetometer samples
// from a physical MPU-9250 and converts them to the physical units
// (m/s^2, rad/s, microtesla) the tracker's filter chains expect.
type IMUSource struct {
	dev      *mpu9250.MPU9250
	magCal   *mpu9250.MagCal
	magReady bool
	accelLSB float64
	gyroLSB  float64
}

// NewIMUSource opens the MPU-9250 over SPI using the SPI device and
// chip-select pin named in cfg, applies the configured accelerometer
// and gyroscope ranges, sample rate divider and DLPF mode, runs the
// device self-test and calibration, and attempts magnetometer
// initialization (non-fatal: IMUSource.Sample reports zero magnetic
// field if it is unavailable).
func NewIMUSource(cfg *config.Config) (*IMUSource, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("sensors: periph host init: %w", err)
	}

	csPin := cfg.AsString(KeyCSPin, defaultCSPin)
	cs := gpioreg.ByName(csPin)
	if cs == nil {
		return nil, fmt.Errorf("sensors: CS pin %q not found", csPin)
	}

	spiDev := cfg.AsString(KeySPIDevice, defaultSPIDevice)
	tr, err := mpu9250.NewSpiTransport(spiDev, cs)
	if err != nil {
		return nil, fmt.Errorf("sensors: SPI transport (%s): %w", spiDev, err)
	}

	dev, err := mpu9250.New(tr)
	if err != nil {
		return nil, fmt.Errorf("sensors: device creation: %w", err)
	}
	if err := dev.Init(); err != nil {
		return nil, fmt.Errorf("sensors: initialization: %w", err)
	}

	accelRange := int(cfg.AsU64(KeyAccelRange, defaultAccelRange))
	if err := dev.SetAccelRange(accelRange); err != nil {
		return nil, fmt.Errorf("sensors: set accel range: %w", err)
	}
	gyroRange := int(cfg.AsU64(KeyGyroRange, defaultGyroRange))
	if err := dev.SetGyroRange(gyroRange); err != nil {
		return nil, fmt.Errorf("sensors: set gyro range: %w", err)
	}
	if err := dev.SetSampleRateDivider(int(cfg.AsU64(KeySampleRateD, defaultSampleRateD))); err != nil {
		return nil, fmt.Errorf("sensors: set sample rate divider: %w", err)
	}
	if err := dev.SetDLPFMode(int(cfg.AsU64(KeyDLPFConfig, defaultDLPFConfig))); err != nil {
		return nil, fmt.Errorf("sensors: set DLPF config: %w", err)
	}

	if _, err := dev.SelfTest(); err != nil {
		log.Printf("sensors: self-test failed (continuing): %v", err)
	}
	if err := dev.Calibrate(); err != nil {
		log.Printf("sensors: calibration failed (continuing): %v", err)
	}

	s := &IMUSource{
		dev:      dev,
		accelLSB: accelGPerLSB[accelRange%4] * gravity,
		gyroLSB:  gyroDPSPerLSB[gyroRange%4] * degToRad,
	}

	magCal, err := dev.InitMag()
	if err != nil {
		log.Printf("sensors: magnetometer init failed, continuing without it: %v", err)
		return s, nil
	}
	s.magCal = magCal
	s.magReady = true
	return s, nil
}

// Sample reads one instantaneous accelerometer, gyroscope and
// magnetometer triple and returns them as AxesEvents stamped with ts.
// If the magnetometer is unavailable the magnetometer event carries a
// zero value rather than an error, matching
// best-effort magnetometer handling.
func (s *IMUSource) Sample(ts int64) (accel, gyro, mag event.AxesEvent, err error) {
	ax, err := s.dev.GetAccelerationX()
	if err != nil {
		return event.AxesEvent{}, event.AxesEvent{}, event.AxesEvent{}, fmt.Errorf("sensors: accel X: %w", err)
	}
	ay, err := s.dev.GetAccelerationY()
	if err != nil {
		return event.AxesEvent{}, event.AxesEvent{}, event.AxesEvent{}, fmt.Errorf("sensors: accel Y: %w", err)
	}
	az, err := s.dev.GetAccelerationZ()
	if err != nil {
		return event.AxesEvent{}, event.AxesEvent{}, event.AxesEvent{}, fmt.Errorf("sensors: accel Z: %w", err)
	}

	gx, err := s.dev.GetRotationX()
	if err != nil {
		return event.AxesEvent{}, event.AxesEvent{}, event.AxesEvent{}, fmt.Errorf("sensors: gyro X: %w", err)
	}
	gy, err := s.dev.GetRotationY()
	if err != nil {
		return event.AxesEvent{}, event.AxesEvent{}, event.AxesEvent{}, fmt.Errorf("sensors: gyro Y: %w", err)
	}
	gz, err := s.dev.GetRotationZ()
	if err != nil {
		return event.AxesEvent{}, event.AxesEvent{}, event.AxesEvent{}, fmt.Errorf("sensors: gyro Z: %w", err)
	}

	accel = event.AxesEvent{
		Kind: event.Accelerometer, Timestamp: ts,
		Value: [3]float64{float64(ax) * s.accelLSB, float64(ay) * s.accelLSB, float64(az) * s.accelLSB},
	}
	gyro = event.AxesEvent{
		Kind: event.Gyroscope, Timestamp: ts,
		Value: [3]float64{float64(gx) * s.gyroLSB, float64(gy) * s.gyroLSB, float64(gz) * s.gyroLSB},
	}
	mag = event.AxesEvent{Kind: event.MagneticField, Timestamp: ts}

	if s.magReady {
		reading, merr := s.dev.ReadMag(s.magCal)
		if merr != nil {
			log.Printf("sensors: magnetometer read error: %v", merr)
		} else if reading.Overflow {
			log.Printf("sensors: magnetometer overflow")
		} else {
			mag.Value = [3]float64{reading.X, reading.Y, reading.Z}
		}
	}
	return accel, gyro, mag, nil
}
