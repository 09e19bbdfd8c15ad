package models

// District is one kecamatan of the city, bound to exactly one NJOP zone.
// The catalog is defined at configuration load and immutable for the session.
type District struct {
	Name    string  `json:"name" bson:"name" yaml:"name"`
	Code    string  `json:"kdkec" bson:"kdkec" yaml:"kdkec"`
	BPSName string  `json:"nmkec" bson:"nmkec" yaml:"nmkec"`
	Lat     float64 `json:"lat" bson:"lat" yaml:"lat"`
	Lon     float64 `json:"lon" bson:"lon" yaml:"lon"`
	RadiusM float64 `json:"radius_m" bson:"radius_m" yaml:"radius_m"`
	Zone    string  `json:"zone" bson:"zone" yaml:"zone"`
}
