package cmd

type Config struct {
	HTTPPort         string
	KitchenPrepTime  string
	TransitLegTime   string
	RedispatchMaxAge string
}
