package dto

// SeriesResponse はリクエストごとに生成された系列のレスポンスDTOです。
type SeriesResponse struct {
	Symbol    string           `json:"symbol"`
	Timeframe string           `json:"timeframe"`
	Start     string           `json:"start"`
	End       string           `json:"end"`
	Seed      int64            `json:"seed"`
	Candles   []CandleResponse `json:"candles"`
}

// DescriptionResponse はスクリーンリーダー向けの説明です。
type DescriptionResponse struct {
	Title   string             `json:"title"`
	XLabel  string             `json:"x_label"`
	YLabel  string             `json:"y_label"`
	Summary string             `json:"summary"`
	Seed    int64              `json:"seed"`
	Points  []DescriptionPoint `json:"points"`
}

// DescriptionPoint は1本分の説明文と音の高さ(Hz)です。
type DescriptionPoint struct {
	Label string  `json:"label"`
	Text  string  `json:"text"`
	Tone  float64 `json:"tone_hz"`
}
