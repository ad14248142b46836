// Command acurite-monitor watches a 433MHz RF receiver's GPIO data pin,
// decodes AcuRite 00523/00609 sensor transmissions, and publishes
// readings to MQTT.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sweeney/acurite-monitor/internal/acurite"
	"github.com/sweeney/acurite-monitor/internal/gpio"
	"github.com/sweeney/acurite-monitor/internal/mqtt"
	"github.com/sweeney/acurite-monitor/internal/status"
	"github.com/sweeney/acurite-monitor/internal/web"
)

func main() {
	broker := flag.String("broker", "tcp://192.168.1.200:1883", "MQTT broker address")
	heartbeat := flag.Duration("heartbeat", 15*time.Minute, "Heartbeat interval (0 to disable)")
	pin := flag.Int("pin", gpio.DefaultPin, "BCM pin number for the RF receiver data line")
	httpAddr := flag.String("http", ":80", "HTTP status address (empty to disable, also serves /ws)")
	availableTimeout := flag.Duration("timeout", 250*time.Millisecond, "Session.Available poll interval")

	flag.Parse()

	if err := run(*broker, *heartbeat, *pin, *httpAddr, *availableTimeout); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}

func run(broker string, heartbeat time.Duration, pin int, httpAddr string, availableTimeout time.Duration) error {
	gpioReader, err := gpio.NewRealReader(pin)
	if err != nil {
		return fmt.Errorf("init gpio: %w", err)
	}
	defer gpioReader.Close()

	publisher, err := mqtt.NewRealPublisher(broker)
	if err != nil {
		return fmt.Errorf("init mqtt: %w", err)
	}
	defer publisher.Close()

	tracker := status.NewTracker(time.Now(), status.Config{
		Broker:      broker,
		HTTPPort:    httpAddr,
		HeartbeatMs: heartbeat.Milliseconds(),
	})

	snap := tracker.Snapshot()
	startupEvent := mqtt.SystemEvent{
		Timestamp:  snap.Now,
		Event:      "STARTUP",
		Retained:   true,
		RawPayload: status.FormatStatusEvent(snap, "STARTUP", ""),
	}
	if err := publisher.PublishSystem(startupEvent); err != nil {
		log.Printf("failed to publish startup event: %v", err)
	} else {
		log.Printf("published startup event")
	}

	var webServer *web.Server
	if httpAddr != "" {
		webServer = web.New(httpAddr, tracker)
		go func() {
			if err := webServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Printf("http server error: %v", err)
			}
		}()
		defer webServer.Shutdown(context.Background())
		log.Printf("http status server listening on %s", httpAddr)
	}

	session := acurite.NewSession(
		acurite.NewModel523(
			acurite.NewDevice523(acurite.DeviceFreezer),
			acurite.NewDevice523(acurite.DeviceFridge),
		),
		acurite.NewModel609(
			acurite.NewDevice609(acurite.DeviceOutdoor),
		),
	)
	defer session.Close()
	session.Start(gpioReader.Events())

	log.Printf("started: pin=%d broker=%s heartbeat=%v", pin, broker, heartbeat)

	var heartbeatTick <-chan time.Time = make(chan time.Time)
	var heartbeatTicker *time.Ticker
	if heartbeat > 0 {
		heartbeatTicker = time.NewTicker(heartbeat)
		defer heartbeatTicker.Stop()
		heartbeatTick = heartbeatTicker.C
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	done := make(chan struct{})
	defer close(done)
	readings := sessionReadings(session, availableTimeout, done)

	return runLoop(readings, publisher, publisher, tracker, webServer, time.Now, heartbeatTick, sigCh)
}

// sessionReadings polls session.Available on a dedicated goroutine and
// republishes each decoded payload on the returned channel, until done
// is closed.
func sessionReadings(session *acurite.Session, timeout time.Duration, done <-chan struct{}) <-chan acurite.Payload {
	out := make(chan acurite.Payload)
	go func() {
		for {
			payload, ok := session.Available(timeout)
			select {
			case <-done:
				return
			default:
			}
			if !ok {
				continue
			}
			select {
			case out <- payload:
			case <-done:
				return
			}
		}
	}()
	return out
}

func runLoop(readings <-chan acurite.Payload, publisher mqtt.Publisher, mqttStatus mqtt.ConnectionStatus, tracker *status.Tracker, webServer *web.Server, now func() time.Time, heartbeatTick <-chan time.Time, sig <-chan os.Signal) error {
	for {
		select {
		case s := <-sig:
			log.Printf("received %v, shutting down", s)
			signalName := "UNKNOWN"
			if s == syscall.SIGINT {
				signalName = "SIGINT"
			} else if s == syscall.SIGTERM {
				signalName = "SIGTERM"
			}
			event := mqtt.SystemEvent{
				Timestamp: now(),
				Event:     "SHUTDOWN",
				Reason:    signalName,
				Retained:  true,
			}
			if tracker != nil {
				if mqttStatus != nil {
					tracker.SetMQTTConnected(mqttStatus.IsConnected())
				}
				snap := tracker.Snapshot()
				event.RawPayload = status.FormatStatusEvent(snap, "SHUTDOWN", signalName)
			}
			if err := publisher.PublishSystem(event); err != nil {
				log.Printf("failed to publish shutdown event: %v", err)
			} else {
				log.Printf("published shutdown event")
			}
			return nil

		case payload := <-readings:
			t := now()
			if err := publisher.Publish(payload); err != nil {
				log.Printf("publish error: %v", err)
			}
			if tracker != nil {
				tracker.Record(payload, t)
				if mqttStatus != nil {
					tracker.SetMQTTConnected(mqttStatus.IsConnected())
				}
			}
			if webServer != nil {
				webServer.Broadcast(payload)
			}

		case t := <-heartbeatTick:
			log.Printf("heartbeat: uptime check at %v", t)
			hbEvent := mqtt.SystemEvent{
				Timestamp: t,
				Event:     "HEARTBEAT",
			}
			if tracker != nil {
				if mqttStatus != nil {
					tracker.SetMQTTConnected(mqttStatus.IsConnected())
				}
				snap := tracker.Snapshot()
				readCounts := make(map[string]int64, len(snap.Devices))
				for name, d := range snap.Devices {
					readCounts[name] = d.ReadCount
				}
				hbEvent.Heartbeat = &mqtt.HeartbeatInfo{
					UptimeSeconds: int64(snap.Uptime().Seconds()),
					Readings:      readCounts,
				}
				hbEvent.RawPayload = status.FormatStatusEvent(snap, "HEARTBEAT", "")
			}
			if err := publisher.PublishSystem(hbEvent); err != nil {
				log.Printf("heartbeat publish error: %v", err)
			}
		}
	}
}
