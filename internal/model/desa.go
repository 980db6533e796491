package model

// Desa is a village in the regency. Reference data, maintained outside this app.
type Desa struct {
	ID        string `bson:"_id" json:"id"`
	Name      string `bson:"name" json:"name"`
	Kecamatan string `bson:"kecamatan" json:"kecamatan"`
	Kabupaten string `bson:"kabupaten" json:"kabupaten"`
}
