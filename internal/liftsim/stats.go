package liftsim

type PassengerStats struct {
	ID   int `json:"id"`
	Wait int `json:"wait"` //Release to collection complete
	Ride int `json:"ride"` //Collection complete to drop complete
}

type Stats struct {
	Passengers      []PassengerStats `json:"passengers"` //In drop order
	FloorsTravelled int              `json:"floors_travelled"`
	EmergencyCycles int              `json:"emergency_cycles"`
}

func (s Stats) MeanWait() float64 {
	if len(s.Passengers) == 0 {
		return 0
	}
	sum := 0
	for _, p := range s.Passengers {
		sum += p.Wait
	}
	return float64(sum) / float64(len(s.Passengers))
}

func (s Stats) MeanRide() float64 {
	if len(s.Passengers) == 0 {
		return 0
	}
	sum := 0
	for _, p := range s.Passengers {
		sum += p.Ride
	}
	return float64(sum) / float64(len(s.Passengers))
}

func (s Stats) MaxWait() int {
	longest := 0
	for _, p := range s.Passengers {
		if p.Wait > longest {
			longest = p.Wait
		}
	}
	return longest
}
