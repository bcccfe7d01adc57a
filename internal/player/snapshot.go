package player

type Snapshot struct {
	SchemaVersion int     `json:"schema_version"`
	PositionMs    int64   `json:"position_ms"`
	DurationMs    int64   `json:"duration_ms"`
	Position      string  `json:"position"`
	Duration      string  `json:"duration"`
	Frame         int     `json:"frame"`
	Frames        int     `json:"frames"`
	Percent       float64 `json:"percent"`
	Speed         float64 `json:"speed"`
	Paused        bool    `json:"paused"`
	Done          bool    `json:"done"`
}
