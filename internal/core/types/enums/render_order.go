package enums

// RenderOrder - порядок отрисовки: большие значения рисуются поверх.
type RenderOrder uint8

const (
	RenderStairs RenderOrder = iota
	RenderCorpse
	RenderItem
	RenderActor
)
