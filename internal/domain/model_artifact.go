package domain

import "time"

// ModelArtifact es una version serializada del clasificador guardada en la
// base de datos. El servicio solo la lee.
type ModelArtifact struct {
	Name      string    `json:"name"`
	Version   string    `json:"version"`
	Payload   []byte    `json:"-"`
	Checksum  string    `json:"checksum,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
