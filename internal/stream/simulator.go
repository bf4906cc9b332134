package stream

import (
	"context"
	"log"
	"math/rand"
	"time"
)

// simulated walking loop around Jamsil, one segment between consecutive waypoints
var simulatorPath = [][2]float64{
	{37.509815, 127.097662},
	{37.506635, 127.097452},
	{37.506639, 127.099296},
	{37.508722, 127.103625},
	{37.510870, 127.101626},
	{37.510013, 127.099767},
	{37.509815, 127.097662},
}

const pointsPerSegment = 80

// Simulator publishes synthetic location and signal samples to the bus,
// replacing the OS streams during development.
type Simulator struct {
	bus      *Bus
	interval time.Duration
	rng      *rand.Rand
}

// NewSimulator creates a simulator emitting one sample pair per interval
func NewSimulator(bus *Bus, interval time.Duration) *Simulator {
	if interval <= 0 {
		interval = time.Second
	}
	return &Simulator{
		bus:      bus,
		interval: interval,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Run publishes samples until the context is cancelled
func (s *Simulator) Run(ctx context.Context) {
	log.Printf("Signal simulator started, interval %v", s.interval)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	step := 0
	for {
		select {
		case <-ctx.Done():
			log.Println("Signal simulator stopped")
			return
		case <-ticker.C:
			lat, lon := s.position(step)
			step++

			s.bus.Publish(TopicSignal, SignalReading{
				RSRP: -110 + s.rng.Intn(31), // [-110, -80]
				RSRQ: -14 + s.rng.Intn(9),   // [-14, -6]
			})
			s.bus.Publish(TopicLocation, LocationFix{
				Timestamp: time.Now().UnixMilli(),
				Latitude:  lat,
				Longitude: lon,
			})
		}
	}
}

// position interpolates along the waypoint loop
func (s *Simulator) position(step int) (float64, float64) {
	segments := len(simulatorPath) - 1
	total := segments * pointsPerSegment
	step = step % total

	segment := step / pointsPerSegment
	ratio := float64(step%pointsPerSegment) / float64(pointsPerSegment)

	lat1, lon1 := simulatorPath[segment][0], simulatorPath[segment][1]
	lat2, lon2 := simulatorPath[segment+1][0], simulatorPath[segment+1][1]

	return lat1 + (lat2-lat1)*ratio, lon1 + (lon2-lon1)*ratio
}
