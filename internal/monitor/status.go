package monitor

import "time"

type Status struct {
	Projects   int           `json:"projects"`
	Users      int           `json:"users"`
	Activities int           `json:"activities"`
	Listeners  int           `json:"listeners"`
	Uptime     time.Duration `json:"uptime_ns"`
	LastCheck  time.Time     `json:"last_check"`
}
