package domain

// AppealType is an immutable classification row, seeded out-of-band.
type AppealType struct {
	ID          int64  `json:"id"`
	Code        string `json:"code"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	SortOrder   int    `json:"sort_order"`
}

// SeverityLevel is an immutable severity row, seeded out-of-band.
type SeverityLevel struct {
	ID       int64  `json:"id"`
	Code     string `json:"code"`
	Name     string `json:"name"`
	Priority int    `json:"priority"`
}

// AppealStatus is an immutable status row, seeded out-of-band.
type AppealStatus struct {
	ID        int64  `json:"id"`
	Code      string `json:"code"`
	Name      string `json:"name"`
	SortOrder int    `json:"sort_order"`
}
