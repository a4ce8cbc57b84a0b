package model

import "time"

// Assignment is the synthetic capture context given to one logical group
// of uploads (or to a single ungrouped file): one timestamp, one catalog
// location and a service label. Only Service may change after creation.
type Assignment struct {
	Timestamp time.Time
	Location  NamedLocation
	Service   string
}

// GeneratedPhoto is one finished output image: stamped bytes plus the
// filename it will carry in the delivered ZIP.
type GeneratedPhoto struct {
	Name string
	Data []byte
}
