package entity

const (
	SeedStatusCreated = "created"
	SeedStatusSkipped = "skipped"

	ProbeStatusOK    = "ok"
	ProbeStatusError = "error"

	DefaultListLimit int64 = 50
)

// ProductQuery narrows a product listing. Empty Category and nil Featured
// add no constraint.
type ProductQuery struct {
	Category string
	Featured *bool
	Limit    int64
}

type SeedResult struct {
	Status  string `json:"status"`
	Count   int    `json:"count,omitempty"`
	Message string `json:"message,omitempty"`
}

type ProbeResult struct {
	Status string `json:"status"`
	Detail string `json:"detail,omitempty"`
}
